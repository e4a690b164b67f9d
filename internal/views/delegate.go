package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"rhystmorgan/nymWallet/internal/delegation"
	"rhystmorgan/nymWallet/internal/mixnet"
	"rhystmorgan/nymWallet/internal/models"
	"rhystmorgan/nymWallet/internal/utils"
)

type delegateField int

const (
	fieldIdentityKey delegateField = iota
	fieldAmount
)

// DelegateModel is the delegation wizard. All flow decisions live in the
// controller; the model only routes key events and renders the session.
type DelegateModel struct {
	controller *delegation.Controller
	account    *models.Account

	keyInput     textinput.Model
	amountInput  textinput.Model
	focusedField delegateField

	spinner   *utils.Spinner
	busyFrame int

	terminalWidth  int
	terminalHeight int
}

type spinnerTickMsg struct{}

func NewDelegateModel(client *mixnet.Client, account *models.Account, minDelegation decimal.Decimal, debounce time.Duration) *DelegateModel {
	keyInput := textinput.New()
	keyInput.Placeholder = "Node identity key (base58)"
	keyInput.CharLimit = 50
	keyInput.Focus()
	keyInput.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Blue))
	keyInput.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Text))

	amountInput := textinput.New()
	amountInput.Placeholder = fmt.Sprintf("Amount in %s", mixnet.Denom)
	amountInput.CharLimit = 30
	amountInput.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Blue))
	amountInput.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Text))

	return &DelegateModel{
		controller:  delegation.NewController(client, account.Address, minDelegation, debounce),
		account:     account,
		keyInput:    keyInput,
		amountInput: amountInput,
		spinner:     utils.NewSpinner(),
	}
}

func (m DelegateModel) Init() tea.Cmd {
	return tea.Batch(m.controller.Init(), textinput.Blink)
}

// Abandon closes the underlying session. Called by the app shell when the
// wizard is dismissed from outside.
func (m *DelegateModel) Abandon() {
	m.controller.Close()
}

func (m DelegateModel) Update(msg tea.Msg) (DelegateModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth = msg.Width
		m.terminalHeight = msg.Height

	case spinnerTickMsg:
		if m.busy() {
			m.busyFrame++
			cmds = append(cmds, m.spinnerTick())
		}

	case tea.KeyMsg:
		phase := m.controller.Session().Phase

		switch msg.String() {
		case "esc":
			switch phase {
			case delegation.PhaseAwaitingFee, delegation.PhaseConfirming, delegation.PhaseFeeError:
				m.controller.Back()
			case delegation.PhaseSubmitting:
				// Hand-off in flight, nothing to go back to.
			default:
				m.controller.Close()
				return m, NavigateTo(ViewDashboard, nil)
			}

		case "enter":
			switch phase {
			case delegation.PhaseEditing:
				if cmd := m.controller.Confirm(); cmd != nil {
					cmds = append(cmds, cmd, m.spinnerTick())
				}
			case delegation.PhaseConfirming:
				if cmd := m.controller.ConfirmQuote(); cmd != nil {
					cmds = append(cmds, cmd, m.spinnerTick())
				}
			case delegation.PhaseFeeError:
				if cmd := m.controller.Retry(); cmd != nil {
					cmds = append(cmds, cmd, m.spinnerTick())
				}
			}

		case "tab", "shift+tab", "up", "down":
			if phase == delegation.PhaseEditing {
				m.toggleFocus()
			}

		default:
			if phase == delegation.PhaseEditing {
				cmds = append(cmds, m.updateInputs(msg)...)
			}
		}

	case delegation.SubmittedMsg:
		// The session ends on hand-off completion either way; the dashboard
		// reports the outcome.
		m.controller.Update(msg)
		return m, NavigateTo(ViewDashboard, msg)

	default:
		if cmd := m.controller.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *DelegateModel) busy() bool {
	phase := m.controller.Session().Phase
	return phase == delegation.PhaseAwaitingFee || phase == delegation.PhaseSubmitting
}

func (m *DelegateModel) spinnerTick() tea.Cmd {
	return tea.Tick(utils.SpinnerInterval, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

func (m *DelegateModel) toggleFocus() {
	if m.focusedField == fieldIdentityKey {
		m.focusedField = fieldAmount
		m.keyInput.Blur()
		m.amountInput.Focus()
	} else {
		m.focusedField = fieldIdentityKey
		m.amountInput.Blur()
		m.keyInput.Focus()
	}
}

func (m *DelegateModel) updateInputs(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.focusedField == fieldIdentityKey {
		m.keyInput, cmd = m.keyInput.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if cmd := m.controller.SetIdentityKey(m.keyInput.Value()); cmd != nil {
			cmds = append(cmds, cmd)
		}
	} else {
		m.amountInput, cmd = m.amountInput.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if cmd := m.controller.SetAmount(m.amountInput.Value()); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return cmds
}

func (m *DelegateModel) View() string {
	session := m.controller.Session()

	containerStyle := lipgloss.NewStyle().
		Padding(1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Teal))

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Teal)).
		Bold(true)

	stepStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Delegate to Mix Node"))
	content.WriteString("\n")
	content.WriteString(stepStyle.Render(utils.FormatStepIndicator(m.stepFor(session.Phase), 3, []string{"Details", "Fee", "Review"})))
	content.WriteString("\n\n")

	switch session.Phase {
	case delegation.PhaseEditing:
		content.WriteString(m.renderForm(session))
	case delegation.PhaseAwaitingFee:
		content.WriteString(m.renderBusy("Estimating fee"))
	case delegation.PhaseConfirming:
		content.WriteString(m.renderReview(session))
	case delegation.PhaseFeeError:
		content.WriteString(m.renderFeeError(session))
	case delegation.PhaseSubmitting:
		content.WriteString(m.renderBusy("Submitting delegation"))
	case delegation.PhaseClosed:
		content.WriteString("Session closed")
	}

	return containerStyle.Render(content.String())
}

func (m *DelegateModel) stepFor(phase delegation.Phase) int {
	switch phase {
	case delegation.PhaseAwaitingFee, delegation.PhaseFeeError:
		return 1
	case delegation.PhaseConfirming, delegation.PhaseSubmitting:
		return 2
	default:
		return 0
	}
}

func (m *DelegateModel) renderForm(session delegation.Session) string {
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext1)).
		Bold(true)

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Red))

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Yellow))

	okStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Green))

	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)

	var content strings.Builder

	content.WriteString(labelStyle.Render("Node identity key"))
	content.WriteString("\n")
	content.WriteString(m.keyInput.View())
	content.WriteString("\n")
	if session.IdentityError != "" {
		content.WriteString(errorStyle.Render(session.IdentityError))
		content.WriteString("\n")
	} else if session.ResolvedNodeID != 0 {
		content.WriteString(okStyle.Render(fmt.Sprintf("Node #%d", session.ResolvedNodeID)))
		content.WriteString("\n")
	}
	if session.IdentityWarning != "" {
		content.WriteString(warningStyle.Render(session.IdentityWarning))
		content.WriteString("\n")
	}
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("Amount"))
	content.WriteString("\n")
	content.WriteString(m.amountInput.View())
	content.WriteString("\n")
	if session.AmountError != "" {
		content.WriteString(errorStyle.Render(session.AmountError))
		content.WriteString("\n")
	}
	content.WriteString(hintStyle.Render(fmt.Sprintf("Minimum delegation: %s %s", utils.FormatAmount(m.controller.MinDelegation(), 6), mixnet.Denom)))
	content.WriteString("\n\n")

	switch session.Balance.Status {
	case delegation.BalanceAvailable:
		content.WriteString(fmt.Sprintf("Balance: %s", utils.FormatBalance(session.Balance.Amount, mixnet.Denom)))
	default:
		content.WriteString("Balance: loading...")
	}
	content.WriteString("\n")
	if session.Balance.Warning != "" {
		content.WriteString(warningStyle.Render(session.Balance.Warning))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	if m.controller.CanConfirm() {
		content.WriteString(hintStyle.Render("tab: switch field • enter: get fee quote • esc: cancel"))
	} else {
		content.WriteString(hintStyle.Render("tab: switch field • esc: cancel"))
	}

	return content.String()
}

func (m *DelegateModel) renderBusy(action string) string {
	busyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue))

	return busyStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), utils.FormatLoadingText(action, m.busyFrame)))
}

func (m *DelegateModel) renderReview(session delegation.Session) string {
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext1)).
		Width(10)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text))

	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)

	amount, err := delegation.ParseAmount(session.RawAmount)
	if err != nil {
		return "Invalid session state"
	}
	total := amount.Add(session.FeeQuote.Amount)

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
	}

	var content strings.Builder
	content.WriteString(row("Node", fmt.Sprintf("#%d", session.ResolvedNodeID)))
	content.WriteString(row("Identity", utils.TruncateString(session.RawIdentityKey, 24)))
	content.WriteString(row("Amount", utils.FormatBalance(amount, mixnet.Denom)))
	content.WriteString(row("Fee", utils.FormatBalance(session.FeeQuote.Amount, session.FeeQuote.Denom)))
	content.WriteString(row("Total", utils.FormatBalance(total, mixnet.Denom)))
	content.WriteString("\n")
	content.WriteString(hintStyle.Render("enter: confirm and submit • esc: back"))

	return content.String()
}

func (m *DelegateModel) renderFeeError(session delegation.Session) string {
	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Red)).
		Bold(true)

	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)

	var content strings.Builder
	content.WriteString(errorStyle.Render(fmt.Sprintf("Fee estimation failed: %s", session.FeeError)))
	content.WriteString("\n\n")
	content.WriteString(hintStyle.Render("enter: retry • esc: back"))

	return content.String()
}
