package views

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"indexdeck/internal/application"
	"indexdeck/internal/domain"
)

type stubCatalog struct {
	indexers []domain.Indexer
	err      error
}

func (c *stubCatalog) Open(string) error { return nil }
func (c *stubCatalog) Close() error      { return nil }

func (c *stubCatalog) ListIndexers() ([]domain.Indexer, error) {
	return c.indexers, c.err
}

func (c *stubCatalog) GetIndexer(id string) (*domain.Indexer, error) {
	for i := range c.indexers {
		if c.indexers[i].ID == id {
			return &c.indexers[i], nil
		}
	}
	return nil, fmt.Errorf("indexer %s: %w", id, application.ErrNotFound)
}

func (c *stubCatalog) SaveIndexer(ix *domain.Indexer) error {
	c.indexers = append(c.indexers, *ix)
	return nil
}

func (c *stubCatalog) DeleteIndexer(string) error { return nil }

type stubCache struct {
	mu      sync.Mutex
	calls   int
	deleted int
	err     error
}

func (c *stubCache) Clear(context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.deleted, c.err
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect runs cmd and flattens batches into their messages.
// Only use it with commands that return promptly.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}
