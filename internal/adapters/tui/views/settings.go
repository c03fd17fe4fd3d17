package views

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"indexdeck/internal/adapters/tui/styles"
	"indexdeck/internal/application"
	"indexdeck/internal/domain"
)

// SettingsKeyMap defines key bindings for the settings view
type SettingsKeyMap struct {
	Clear key.Binding
	Edit  key.Binding
	Back  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

var SettingsKeys = SettingsKeyMap{
	Clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear cache"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit config"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Cache clear messages carry the controller they belong to so that
// results reaching a replaced settings view are dropped.
type cacheClearDoneMsg struct {
	ctrl   *application.CacheClearController
	result application.ClearResult
}

type cacheClearDismissMsg struct {
	ctrl *application.CacheClearController
	d    application.Dismissal
}

type clearConfirmedMsg struct{}

type clearCancelledMsg struct{}

// SettingsModel is the settings page. It hosts the cache clear action.
type SettingsModel struct {
	ViewState
	ctrl       *application.CacheClearController
	spinner    spinner.Model
	confirm    ConfirmationModel
	configPath string
	serverURL  string
}

// NewSettingsModel creates a settings view around ctrl. The view owns
// the controller and disposes it in Dispose.
func NewSettingsModel(ctrl *application.CacheClearController, configPath, serverURL string) *SettingsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &SettingsModel{
		ctrl:       ctrl,
		spinner:    s,
		confirm:    NewConfirmationModel("Clear the server search cache?"),
		configPath: configPath,
		serverURL:  serverURL,
	}
}

// Init initializes the settings view
func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

// State returns the cache clear state
func (m *SettingsModel) State() domain.CacheClearState {
	return m.ctrl.State()
}

// Dispose detaches the cache clear controller. Safe to call repeatedly.
func (m *SettingsModel) Dispose() {
	m.ctrl.Dispose()
}

// Update handles messages for the settings view
func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.ctrl.State().Phase == domain.CacheClearClearing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case clearConfirmedMsg:
		return m, m.startClear()

	case clearCancelledMsg:
		m.ClearMessage()
		return m, nil

	case cacheClearDoneMsg:
		if msg.ctrl != m.ctrl {
			return m, nil
		}
		d, ok := m.ctrl.Complete(msg.result)
		if !ok {
			return m, nil
		}
		return m, m.scheduleDismiss(d)

	case cacheClearDismissMsg:
		if msg.ctrl == m.ctrl {
			m.ctrl.Dismiss(msg.d)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *SettingsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if handled, cmd := m.confirm.HandleKeyMsg(msg,
		func() tea.Msg { return clearConfirmedMsg{} },
		func() tea.Msg { return clearCancelledMsg{} },
	); handled {
		return m, cmd
	}

	switch {
	case key.Matches(msg, SettingsKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, SettingsKeys.Back):
		return m, func() tea.Msg { return SwitchToIndexersMsg{} }

	case key.Matches(msg, SettingsKeys.Help):
		return m, func() tea.Msg { return SwitchToHelpMsg{} }

	case key.Matches(msg, SettingsKeys.Edit):
		if m.configPath == "" {
			m.SetMessage("No config file in use", true)
			return m, nil
		}
		path := m.configPath
		return m, func() tea.Msg { return OpenEditorMsg{Path: path} }

	case key.Matches(msg, SettingsKeys.Clear):
		if m.ctrl.State().Phase == domain.CacheClearClearing {
			m.SetMessage("Cache clear already in progress", true)
			return m, nil
		}
		m.ClearMessage()
		m.confirm.Ask()
		return m, nil
	}

	return m, nil
}

func (m *SettingsModel) startClear() tea.Cmd {
	attempt, ok := m.ctrl.Trigger()
	if !ok {
		return nil
	}
	ctrl := m.ctrl
	run := func() tea.Msg {
		return cacheClearDoneMsg{ctrl: ctrl, result: attempt.Run(context.Background())}
	}
	return tea.Batch(m.spinner.Tick, run)
}

func (m *SettingsModel) scheduleDismiss(d application.Dismissal) tea.Cmd {
	ctrl := m.ctrl
	return tea.Tick(d.After, func(time.Time) tea.Msg {
		return cacheClearDismissMsg{ctrl: ctrl, d: d}
	})
}

// View renders the settings view
func (m *SettingsModel) View() string {
	v := NewViewBuilder().Title("Settings", "Server and cache maintenance")

	v.Line(RenderLabelValue("Server", m.serverURL))
	if m.configPath != "" {
		v.Line(RenderLabelValue("Config", m.configPath))
	}
	v.BlankLine()

	v.Section("Search cache")
	v.Line(m.renderCacheStatus())
	v.BlankLine()

	if m.confirm.Active {
		v.Line(m.confirm.View()).BlankLine()
	}
	v.Message(m.Message, m.MessageErr)

	clearKey := SettingsKeys.Clear
	clearKey.SetEnabled(m.ctrl.State().Phase != domain.CacheClearClearing)
	return v.Help(clearKey, SettingsKeys.Edit, SettingsKeys.Back, SettingsKeys.Help, SettingsKeys.Quit).String()
}

func (m *SettingsModel) renderCacheStatus() string {
	state := m.ctrl.State()
	switch state.Phase {
	case domain.CacheClearClearing:
		return m.spinner.View() + " " + state.Summary()
	case domain.CacheClearSucceeded:
		return styles.Success.Render(state.Summary())
	case domain.CacheClearFailed:
		return styles.ErrorMsg.Render(state.Summary())
	default:
		return styles.MutedText.Render("Cached search results are kept on the server")
	}
}
