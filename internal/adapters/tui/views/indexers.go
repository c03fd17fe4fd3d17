package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"

	"indexdeck/internal/adapters/tui/styles"
	"indexdeck/internal/application/commands"
	"indexdeck/internal/domain"
	"indexdeck/internal/ports"
)

const indexersPerPage = 10

// IndexersKeyMap defines key bindings for the indexer list
type IndexersKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PrevMirror key.Binding
	NextMirror key.Binding
	Copy       key.Binding
	Open       key.Binding
	Reload     key.Binding
	Settings   key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var IndexersKeys = IndexersKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevMirror: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev mirror"),
	),
	NextMirror: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next mirror"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy url"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open in browser"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Settings: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "settings"),
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

type indexersLoadedMsg struct {
	listings []*commands.MirrorListing
	err      error
}

// IndexersModel lists indexers and lets the user pick the active mirror
// of the highlighted one
type IndexersModel struct {
	ViewState
	catalog   ports.IndexerCatalog
	store     *domain.SelectionStore
	listings  []*commands.MirrorListing
	cursor    int
	paginator paginator.Model
	loaded    bool
	copyFn    func(string) error
	opener    ports.URLOpener
}

// NewIndexersModel creates a new indexer list view. A nil opener disables
// opening mirrors in the browser.
func NewIndexersModel(catalog ports.IndexerCatalog, store *domain.SelectionStore, opener ports.URLOpener) *IndexersModel {
	p := paginator.New()
	p.Type = paginator.Dots
	p.PerPage = indexersPerPage
	p.ActiveDot = styles.HelpKey.Render("•")
	p.InactiveDot = styles.MutedText.Render("•")

	return &IndexersModel{
		catalog:   catalog,
		store:     store,
		paginator: p,
		copyFn:    clipboard.WriteAll,
		opener:    opener,
	}
}

// Init loads the indexers
func (m *IndexersModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload re-reads the catalog
func (m *IndexersModel) Reload() tea.Cmd {
	catalog, store := m.catalog, m.store
	return func() tea.Msg {
		indexers, err := commands.NewListIndexersCommand(catalog).Execute(context.Background())
		if err != nil {
			return indexersLoadedMsg{err: err}
		}
		listings := make([]*commands.MirrorListing, len(indexers))
		for i := range indexers {
			listings[i] = commands.BuildMirrorListing(&indexers[i], store)
		}
		return indexersLoadedMsg{listings: listings}
	}
}

// Selected returns the highlighted listing, or nil when the list is empty
func (m *IndexersModel) Selected() *commands.MirrorListing {
	if m.cursor < 0 || m.cursor >= len(m.listings) {
		return nil
	}
	return m.listings[m.cursor]
}

// Update handles messages for the indexer list
func (m *IndexersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case indexersLoadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.SetMessage(fmt.Sprintf("Failed to load indexers: %v", msg.err), true)
			return m, nil
		}
		m.listings = msg.listings
		if m.cursor >= len(m.listings) {
			m.cursor = max(len(m.listings)-1, 0)
		}
		m.paginator.SetTotalPages(len(m.listings))
		m.syncPage()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *IndexersModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, IndexersKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, IndexersKeys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.syncPage()
		}

	case key.Matches(msg, IndexersKeys.Down):
		if m.cursor < len(m.listings)-1 {
			m.cursor++
			m.syncPage()
		}

	case key.Matches(msg, IndexersKeys.PrevMirror):
		m.cycleMirror(-1)

	case key.Matches(msg, IndexersKeys.NextMirror):
		m.cycleMirror(1)

	case key.Matches(msg, IndexersKeys.Copy):
		m.copyActive()

	case key.Matches(msg, IndexersKeys.Open):
		m.openActive()

	case key.Matches(msg, IndexersKeys.Reload):
		m.ClearMessage()
		return m, m.Reload()

	case key.Matches(msg, IndexersKeys.Settings):
		return m, func() tea.Msg { return SwitchToSettingsMsg{} }

	case key.Matches(msg, IndexersKeys.Help):
		return m, func() tea.Msg { return SwitchToHelpMsg{} }
	}

	return m, nil
}

func (m *IndexersModel) syncPage() {
	m.paginator.Page = m.cursor / m.paginator.PerPage
}

// cycleMirror moves the active mirror of the highlighted indexer by delta,
// wrapping around. Indexers without a choice are left alone.
func (m *IndexersModel) cycleMirror(delta int) {
	listing := m.Selected()
	if listing == nil || !listing.Offer {
		return
	}

	n := len(listing.Options)
	next := ((listing.Active.GlobalIndex+delta)%n + n) % n
	if err := m.store.SelectMirror(listing.Indexer.ID, next, listing.Options); err != nil {
		m.SetMessage(err.Error(), true)
		return
	}

	m.listings[m.cursor] = commands.BuildMirrorListing(listing.Indexer, m.store)
	m.SetMessage(fmt.Sprintf("%s now uses %s", listing.Indexer.Name, m.listings[m.cursor].Labels[next]), false)
}

func (m *IndexersModel) copyActive() {
	listing := m.Selected()
	if listing == nil || len(listing.Options) == 0 {
		m.SetMessage("Nothing to copy", true)
		return
	}
	url := listing.Active.URL
	if err := m.copyFn(url); err != nil {
		m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
		return
	}
	m.SetMessage("Copied "+url, false)
}

func (m *IndexersModel) openActive() {
	listing := m.Selected()
	if m.opener == nil || listing == nil || len(listing.Options) == 0 {
		return
	}
	if err := m.opener.Open(listing.Active.URL); err != nil {
		m.SetMessage(fmt.Sprintf("Open failed: %v", err), true)
		return
	}
	m.SetMessage("Opened "+listing.Active.URL, false)
}

// View renders the indexer list
func (m *IndexersModel) View() string {
	v := NewViewBuilder().Title("Indexers", fmt.Sprintf("%d configured", len(m.listings)))

	switch {
	case !m.loaded:
		v.Muted("Loading...")
	case len(m.listings) == 0:
		v.Muted("No indexers yet. Add one with: indexdeck-cli indexers add")
	default:
		start, end := m.paginator.GetSliceBounds(len(m.listings))
		for i := start; i < end; i++ {
			v.Line(m.renderRow(i))
		}
		if m.paginator.TotalPages > 1 {
			v.BlankLine().Line(m.paginator.View())
		}
	}
	v.BlankLine()

	if listing := m.Selected(); listing != nil {
		v.Section("Mirrors")
		v.Line(renderMirrors(listing))
		v.BlankLine()
	}

	v.Message(m.Message, m.MessageErr)

	listing := m.Selected()
	prev, next := IndexersKeys.PrevMirror, IndexersKeys.NextMirror
	offer := listing != nil && listing.Offer
	prev.SetEnabled(offer)
	next.SetEnabled(offer)

	open := IndexersKeys.Open
	open.SetEnabled(m.opener != nil)

	return v.Help(IndexersKeys.Up, IndexersKeys.Down, prev, next, IndexersKeys.Copy, open,
		IndexersKeys.Settings, IndexersKeys.Help, IndexersKeys.Quit).String()
}

func (m *IndexersModel) renderRow(i int) string {
	listing := m.listings[i]
	count := styles.MirrorCount.Render(fmt.Sprintf("(%d mirrors)", len(listing.Options)))
	if len(listing.Options) == 1 {
		count = styles.MirrorCount.Render("(1 mirror)")
	}

	name := listing.Indexer.Name
	if i == m.cursor {
		return styles.IndexerSelected.Render("> "+name) + " " + count
	}
	return styles.IndexerRow.Render("  "+name) + " " + count
}

// renderMirrors draws the chooser, or just the single link when there is
// nothing to choose
func renderMirrors(listing *commands.MirrorListing) string {
	if len(listing.Options) == 0 {
		return styles.MutedText.Render("  no links")
	}
	if !listing.Offer {
		return styles.MutedText.Render("  " + listing.Active.URL)
	}

	var b strings.Builder
	for i, opt := range listing.Options {
		label := listing.Labels[i]
		switch {
		case opt.GlobalIndex == listing.Active.GlobalIndex:
			b.WriteString("  " + styles.MirrorActive.Render(styles.MirrorMarkerOn+label))
		case opt.IsLegacy():
			b.WriteString("  " + styles.MirrorLegacy.Render(styles.MirrorMarkerOff+label))
		default:
			b.WriteString("  " + styles.MirrorInactive.Render(styles.MirrorMarkerOff+label))
		}
		if i < len(listing.Options)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
