package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/nymWallet/internal/delegation"
	"rhystmorgan/nymWallet/internal/mixnet"
	"rhystmorgan/nymWallet/internal/models"
	"rhystmorgan/nymWallet/internal/utils"
)

type DashboardModel struct {
	account      *models.Account
	mixnetClient *mixnet.Client

	// Balance state
	balanceLoading     bool
	balanceError       error
	lastRefresh        time.Time
	lastRefreshRequest time.Time

	// UI state
	selectedMenuItem   int
	showRefreshSpinner bool
	networkStatus      mixnet.NetworkStatus
	feedbackMessage    *FeedbackMessage

	menuItems []string

	terminalWidth  int
	terminalHeight int
}

type FeedbackMessage struct {
	Type     FeedbackType
	Message  string
	Duration time.Duration
	ShowTime time.Time
}

type FeedbackType string

const (
	FeedbackSuccess FeedbackType = "success"
	FeedbackError   FeedbackType = "error"
	FeedbackWarning FeedbackType = "warning"
	FeedbackInfo    FeedbackType = "info"
)

type BalanceUpdateMsg struct {
	Balance *mixnet.Balance
	Error   error
}

type AutoRefreshMsg struct{}

func NewDashboardModel(account *models.Account, client *mixnet.Client) *DashboardModel {
	model := &DashboardModel{
		account:      account,
		mixnetClient: client,
		menuItems: []string{
			"Delegate to Node",
			"Refresh Balance",
			"Quit",
		},
	}
	if client != nil {
		model.networkStatus = client.GetStatus()
	}
	return model
}

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.RefreshBalance(),
		m.startAutoRefresh(),
	)
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth = msg.Width
		m.terminalHeight = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.selectedMenuItem > 0 {
				m.selectedMenuItem--
			}
		case "down", "j":
			if m.selectedMenuItem < len(m.menuItems)-1 {
				m.selectedMenuItem++
			}
		case "enter", " ":
			switch m.selectedMenuItem {
			case 0:
				return m, NavigateTo(ViewDelegate, nil)
			case 1:
				cmds = append(cmds, m.requestRefresh())
			case 2:
				return m, tea.Quit
			}
		case "d", "D":
			return m, NavigateTo(ViewDelegate, nil)
		case "r", "R":
			cmds = append(cmds, m.requestRefresh())
		case "q", "esc":
			return m, tea.Quit
		case "?":
			m.showFeedback(FeedbackInfo, "d: delegate, r: refresh, up/down: navigate, enter: select, q: quit", 5*time.Second)
		}

	case BalanceUpdateMsg:
		m.balanceLoading = false
		m.showRefreshSpinner = false
		if msg.Error != nil {
			m.balanceError = msg.Error
			m.showFeedback(FeedbackError, balanceErrorMessage(msg.Error), 5*time.Second)
		} else {
			m.balanceError = nil
			m.lastRefresh = time.Now()
			if msg.Balance != nil {
				m.account.SetBalance(msg.Balance)
			}
		}

	case AutoRefreshMsg:
		if !m.balanceLoading {
			cmds = append(cmds, m.RefreshBalance())
		}
		cmds = append(cmds, m.startAutoRefresh())
	}

	if m.mixnetClient != nil {
		m.networkStatus = m.mixnetClient.GetStatus()
	}

	if m.feedbackMessage != nil && time.Since(m.feedbackMessage.ShowTime) > m.feedbackMessage.Duration {
		m.feedbackMessage = nil
	}

	return m, tea.Batch(cmds...)
}

func (m *DashboardModel) View() string {
	containerStyle := lipgloss.NewStyle().
		Padding(1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Blue))

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Bold(true).
		Align(lipgloss.Center)

	var content strings.Builder

	content.WriteString(titleStyle.Render(fmt.Sprintf("Account: %s", m.account.Name)))
	content.WriteString("\n\n")

	content.WriteString(m.renderAddressSection())
	content.WriteString("\n\n")

	content.WriteString(m.renderBalanceAndNetworkSection())
	content.WriteString("\n\n")

	content.WriteString(m.renderMenuSection())
	content.WriteString("\n\n")

	content.WriteString(m.renderHelpSection())

	if m.feedbackMessage != nil {
		content.WriteString("\n\n")
		content.WriteString(m.renderFeedbackMessage())
	}

	return containerStyle.Render(content.String())
}

func (m *DashboardModel) renderAddressSection() string {
	addressStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 1).
		Margin(0, 1)

	refreshButtonStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Background(lipgloss.Color(utils.Colours.Surface1)).
		Padding(0, 1).
		Bold(true)

	refreshText := "[Refresh]"
	if m.showRefreshSpinner {
		refreshText = "[...]"
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		addressStyle.Render(fmt.Sprintf("Address: %s", utils.FormatAddress(m.account.Address, 10, 8))),
		" ",
		refreshButtonStyle.Render(refreshText),
	)
}

func (m *DashboardModel) renderBalanceAndNetworkSection() string {
	balanceCard := m.renderBalanceCard()
	networkCard := m.renderNetworkStatusCard()

	// Stack vertically on narrow terminals
	if m.terminalWidth < 80 {
		return lipgloss.JoinVertical(lipgloss.Left, balanceCard, "", networkCard)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, balanceCard, "  ", networkCard)
}

func (m *DashboardModel) renderBalanceCard() string {
	cardWidth := 30
	if m.terminalWidth < 80 && m.terminalWidth > 0 {
		cardWidth = m.terminalWidth - 10
		if cardWidth < 20 {
			cardWidth = 20
		}
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Green)).
		Padding(1).
		Width(cardWidth)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Green)).
		Bold(true).
		Align(lipgloss.Center)

	balanceStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text))

	ageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Balance"))
	content.WriteString("\n\n")

	if m.balanceLoading && m.account.CachedBalance == nil {
		content.WriteString(balanceStyle.Render("Loading..."))
	} else if m.balanceError != nil && m.account.CachedBalance == nil {
		content.WriteString(balanceStyle.Render("Unavailable"))
	} else if m.account.CachedBalance != nil {
		content.WriteString(balanceStyle.Render(utils.FormatBalance(m.account.CachedBalance.Amount, m.account.CachedBalance.Denom)))
	} else {
		content.WriteString(balanceStyle.Render("-"))
	}

	content.WriteString("\n\n")

	if !m.lastRefresh.IsZero() {
		content.WriteString(ageStyle.Render(fmt.Sprintf("Updated %s", utils.FormatTimeAgo(m.lastRefresh))))
	} else {
		content.WriteString(ageStyle.Render("Never updated"))
	}

	return cardStyle.Render(content.String())
}

func (m *DashboardModel) renderNetworkStatusCard() string {
	cardWidth := 25
	if m.terminalWidth < 80 && m.terminalWidth > 0 {
		cardWidth = m.terminalWidth - 10
		if cardWidth < 20 {
			cardWidth = 20
		}
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Blue)).
		Padding(1).
		Width(cardWidth)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Bold(true).
		Align(lipgloss.Center)

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Network"))
	content.WriteString("\n\n")

	statusColor := utils.Colours.Red
	statusText := "Disconnected"
	if m.networkStatus.Connected {
		statusColor = utils.Colours.Green
		statusText = "Connected"
	}
	content.WriteString(statusStyle.Foreground(lipgloss.Color(statusColor)).Render(statusText))
	content.WriteString("\n")

	if m.networkStatus.NetworkID != "" {
		content.WriteString(statusStyle.Render(m.networkStatus.NetworkID))
		content.WriteString("\n")
	}

	if m.networkStatus.BlockHeight > 0 {
		content.WriteString(statusStyle.Render(fmt.Sprintf("Block: %d", m.networkStatus.BlockHeight)))
		content.WriteString("\n")
	}

	if !m.networkStatus.LastChecked.IsZero() {
		ageStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Subtext0)).
			Italic(true)
		content.WriteString("\n")
		content.WriteString(ageStyle.Render(fmt.Sprintf("Checked %s", utils.FormatTimeAgo(m.networkStatus.LastChecked))))
	}

	return cardStyle.Render(content.String())
}

func (m *DashboardModel) renderMenuSection() string {
	menuStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Lavender)).
		Padding(1)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Lavender)).
		Bold(true).
		Align(lipgloss.Center)

	itemStyle := lipgloss.NewStyle().
		Padding(0, 2)

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Green)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 2).
		Bold(true)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Actions"))
	content.WriteString("\n\n")

	for i, item := range m.menuItems {
		cursor := " "
		style := itemStyle
		if m.selectedMenuItem == i {
			cursor = ">"
			style = selectedStyle
		}

		content.WriteString(style.Render(fmt.Sprintf("%s %s", cursor, item)))
		content.WriteString("\n")
	}

	return menuStyle.Render(content.String())
}

func (m *DashboardModel) renderHelpSection() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true).
		Align(lipgloss.Center)

	return helpStyle.Render("up/down: navigate • enter: select • d: delegate • r: refresh • q: quit")
}

func (m *DashboardModel) renderFeedbackMessage() string {
	if m.feedbackMessage == nil {
		return ""
	}

	var color string
	switch m.feedbackMessage.Type {
	case FeedbackSuccess:
		color = utils.Colours.Green
	case FeedbackError:
		color = utils.Colours.Red
	case FeedbackWarning:
		color = utils.Colours.Yellow
	case FeedbackInfo:
		color = utils.Colours.Blue
	default:
		color = utils.Colours.Text
	}

	feedbackStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 1).
		Bold(true)

	return feedbackStyle.Render(m.feedbackMessage.Message)
}

// RefreshBalance bypasses the client cache so the dashboard always shows the
// freshest figure available.
func (m *DashboardModel) RefreshBalance() tea.Cmd {
	if m.mixnetClient == nil || m.account == nil {
		return func() tea.Msg {
			return BalanceUpdateMsg{Error: fmt.Errorf("mixnet client not available")}
		}
	}

	client := m.mixnetClient
	address := m.account.Address
	return func() tea.Msg {
		balance, err := client.RefreshBalance(address)
		return BalanceUpdateMsg{Balance: balance, Error: err}
	}
}

// requestRefresh debounces manual refreshes to avoid hammering the gateway.
func (m *DashboardModel) requestRefresh() tea.Cmd {
	if time.Since(m.lastRefreshRequest) < 2*time.Second {
		m.showFeedback(FeedbackWarning, "Please wait before refreshing again", 2*time.Second)
		return nil
	}

	m.lastRefreshRequest = time.Now()
	m.balanceLoading = true
	m.showRefreshSpinner = true
	m.showFeedback(FeedbackInfo, "Refreshing balance...", 2*time.Second)
	return m.RefreshBalance()
}

func (m *DashboardModel) startAutoRefresh() tea.Cmd {
	return tea.Tick(30*time.Second, func(t time.Time) tea.Msg {
		return AutoRefreshMsg{}
	})
}

// ShowSubmissionResult surfaces the outcome of a delegation hand-off when the
// wizard returns to the dashboard.
func (m *DashboardModel) ShowSubmissionResult(msg delegation.SubmittedMsg) {
	if msg.Err != nil {
		m.showFeedback(FeedbackError, submissionErrorMessage(msg.Err), 8*time.Second)
		return
	}
	m.showFeedback(FeedbackSuccess, fmt.Sprintf("Delegation submitted: %s", utils.FormatTransactionID(msg.TxHash)), 8*time.Second)
}

func (m *DashboardModel) showFeedback(feedbackType FeedbackType, message string, duration time.Duration) {
	m.feedbackMessage = &FeedbackMessage{
		Type:     feedbackType,
		Message:  message,
		Duration: duration,
		ShowTime: time.Now(),
	}
}

func balanceErrorMessage(err error) string {
	if mixnetErr := mixnet.ClassifyError(err); mixnetErr != nil {
		return mixnetErr.UserMessage()
	}
	return fmt.Sprintf("Failed to fetch balance: %s", err.Error())
}

func submissionErrorMessage(err error) string {
	if mixnetErr := mixnet.ClassifyError(err); mixnetErr != nil {
		return fmt.Sprintf("Delegation failed: %s", mixnetErr.UserMessage())
	}
	return fmt.Sprintf("Delegation failed: %s", err.Error())
}
