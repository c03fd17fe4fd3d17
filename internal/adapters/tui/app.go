package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"indexdeck/internal/adapters/tui/views"
	"indexdeck/internal/application"
	"indexdeck/internal/domain"
	"indexdeck/internal/logging"
	"indexdeck/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewIndexers ViewState = iota
	ViewSettings
	ViewHelp
)

// Deps are the collaborators the TUI needs
type Deps struct {
	Catalog    ports.IndexerCatalog
	Store      *domain.SelectionStore
	Cache      ports.CacheService
	Editor     ports.EditorOpener // nil disables config editing
	Browser    ports.URLOpener    // nil disables opening mirrors
	ConfigPath string
	ServerURL  string
	Logger     *slog.Logger

	// ControllerOptions are applied to every cache clear controller
	ControllerOptions []application.ControllerOption
}

// App is the main TUI application model
type App struct {
	deps   Deps
	logger *slog.Logger

	state    ViewState
	previous ViewState // view to return to from help
	indexers *views.IndexersModel
	settings *views.SettingsModel // nil unless the settings view is mounted
	help     *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(deps Deps) *App {
	if deps.Store == nil {
		deps.Store = domain.NewSelectionStore()
	}
	return &App{
		deps:     deps,
		logger:   logging.Default(deps.Logger).With("component", "tui"),
		state:    ViewIndexers,
		indexers: views.NewIndexersModel(deps.Catalog, deps.Store, deps.Browser),
		help:     views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.indexers.Init()
}

// State returns the current view
func (a *App) State() ViewState {
	return a.state
}

// Settings returns the mounted settings view, or nil
func (a *App) Settings() *views.SettingsModel {
	return a.settings
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.indexers.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		if a.settings != nil {
			a.settings.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	// View switching messages
	case views.SwitchToSettingsMsg:
		if a.settings == nil {
			a.mountSettings()
		}
		a.state = ViewSettings
		return a, a.settings.Init()

	case views.SwitchToHelpMsg:
		if a.state != ViewHelp {
			a.previous = a.state
		}
		a.state = ViewHelp
		return a, nil

	case views.SwitchToIndexersMsg:
		if a.state == ViewHelp && a.previous == ViewSettings && a.settings != nil {
			a.state = ViewSettings
			return a, nil
		}
		a.unmountSettings()
		a.state = ViewIndexers
		return a, a.indexers.Reload()

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case views.EditorFinishedMsg:
		if a.settings != nil {
			if msg.Err != nil {
				a.settings.SetMessage(fmt.Sprintf("Editor failed: %v", msg.Err), true)
			} else {
				a.settings.SetMessage("Config saved. Restart to apply changes.", false)
			}
		}
		return a, nil
	}

	// A clear may finish while help is shown on top of settings
	if a.state == ViewHelp && a.settings != nil {
		if _, isKey := msg.(tea.KeyMsg); !isKey {
			_, cmd := a.settings.Update(msg)
			return a, cmd
		}
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewIndexers:
		_, cmd = a.indexers.Update(msg)
	case ViewSettings:
		_, cmd = a.settings.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

func (a *App) mountSettings() {
	ctrl := application.NewCacheClearController(a.deps.Cache, a.deps.Logger, a.deps.ControllerOptions...)
	a.settings = views.NewSettingsModel(ctrl, a.configPathForEditing(), a.deps.ServerURL)
	a.settings.SetSize(a.width, a.height)
	a.logger.Debug("settings mounted")
}

// unmountSettings disposes the settings view. Results of a clear still in
// flight are dropped when they arrive.
func (a *App) unmountSettings() {
	if a.settings == nil {
		return
	}
	a.settings.Dispose()
	a.settings = nil
	a.logger.Debug("settings unmounted")
}

func (a *App) configPathForEditing() string {
	if a.deps.Editor == nil {
		return ""
	}
	return a.deps.ConfigPath
}

func (a *App) openEditor(path string) tea.Cmd {
	if a.deps.Editor == nil {
		return nil
	}

	cmd, err := a.deps.Editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return views.EditorFinishedMsg{Err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return views.EditorFinishedMsg{Err: err}
	})
}

// Close releases view resources. Call after the program exits.
func (a *App) Close() {
	a.unmountSettings()
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewSettings:
		return a.settings.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.indexers.View()
	}
}
