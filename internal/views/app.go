package views

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/nymWallet/internal/config"
	"rhystmorgan/nymWallet/internal/delegation"
	"rhystmorgan/nymWallet/internal/mixnet"
	"rhystmorgan/nymWallet/internal/models"
	"rhystmorgan/nymWallet/internal/utils"
)

type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewDelegate
)

type AppModel struct {
	state  ViewState
	width  int
	height int

	config        *config.Config
	mixnetClient  *mixnet.Client
	account       *models.Account
	networkStatus mixnet.NetworkStatus

	dashboard *DashboardModel
	delegate  *DelegateModel

	err error
}

type NavigateMsg struct {
	State ViewState
	Data  interface{}
}

type ErrorMsg struct {
	Err error
}

func NewAppModel() (*AppModel, error) {
	appConfig, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if appConfig.Account == "" {
		return nil, fmt.Errorf("no account configured: set NYMTERM_ACCOUNT to a %s1... address", models.AddressPrefix)
	}

	account, err := models.NewAccount(appConfig.AccountName, appConfig.Account)
	if err != nil {
		return nil, fmt.Errorf("invalid account address: %w", err)
	}

	mixnetClient, err := mixnet.NewClient(appConfig.ToMixnetConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mixnet client: %w", err)
	}

	app := &AppModel{
		state:         ViewDashboard,
		config:        appConfig,
		mixnetClient:  mixnetClient,
		account:       account,
		networkStatus: mixnetClient.GetStatus(),
	}

	app.dashboard = NewDashboardModel(account, mixnetClient)

	return app, nil
}

func (m AppModel) Init() tea.Cmd {
	return m.dashboard.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case NavigateMsg:
		return m.navigateTo(msg.State, msg.Data)

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	switch m.state {
	case ViewDashboard:
		if m.dashboard != nil {
			*m.dashboard, cmd = m.dashboard.Update(msg)
		}
	case ViewDelegate:
		if m.delegate != nil {
			*m.delegate, cmd = m.delegate.Update(msg)
		}
	}

	return m, cmd
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content string

	switch m.state {
	case ViewDashboard:
		if m.dashboard != nil {
			content = m.dashboard.View()
		}
	case ViewDelegate:
		if m.delegate != nil {
			content = m.delegate.View()
		}
	default:
		content = "Unknown view"
	}

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Red)).
			Bold(true).
			Padding(1)
		content += "\n" + errorStyle.Render(fmt.Sprintf("Error: %s", m.err.Error()))
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m AppModel) navigateTo(state ViewState, data interface{}) (tea.Model, tea.Cmd) {
	m.state = state
	m.err = nil

	switch state {
	case ViewDashboard:
		// Returning from the wizard abandons its session; make sure a
		// half-open wizard can never receive another message.
		if m.delegate != nil {
			m.delegate.Abandon()
			m.delegate = nil
		}

		if submitted, ok := data.(delegation.SubmittedMsg); ok {
			m.dashboard.ShowSubmissionResult(submitted)
		}
		return m, m.dashboard.RefreshBalance()

	case ViewDelegate:
		// Every entry starts a fresh delegation session.
		m.delegate = NewDelegateModel(
			m.mixnetClient,
			m.account,
			m.config.MinDelegation,
			m.config.DebounceWindow,
		)
		return m, m.delegate.Init()
	}

	return m, nil
}

func NavigateTo(state ViewState, data interface{}) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{State: state, Data: data}
	}
}

func ShowError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

func (m *AppModel) GetNetworkStatus() mixnet.NetworkStatus {
	return m.networkStatus
}

func (m *AppModel) UpdateNetworkStatus() {
	if m.mixnetClient != nil {
		m.networkStatus = m.mixnetClient.GetStatus()
	}
}

func (m *AppModel) Shutdown() {
	if m.mixnetClient != nil {
		m.mixnetClient.Close()
	}
}
