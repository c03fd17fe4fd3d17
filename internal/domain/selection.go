package domain

import (
	"errors"
	"fmt"
	"sync"
)

// ErrMirrorOutOfRange is returned when a selection does not address
// one of the options it claims to come from.
var ErrMirrorOutOfRange = errors.New("mirror index out of range")

// SelectionStore holds the chosen mirror per indexer ID.
// Indexers without an entry are on global index 0.
type SelectionStore struct {
	mu       sync.RWMutex
	selected map[string]MirrorOption
}

// NewSelectionStore creates an empty selection store
func NewSelectionStore() *SelectionStore {
	return &SelectionStore{
		selected: make(map[string]MirrorOption),
	}
}

// Selected returns the selected global index for an indexer
func (s *SelectionStore) Selected(indexerID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if opt, ok := s.selected[indexerID]; ok {
		return opt.GlobalIndex
	}
	return 0
}

// SelectMirror records globalIndex for the indexer after checking it
// against the options the caller rendered. On failure the store is unchanged.
func (s *SelectionStore) SelectMirror(indexerID string, globalIndex int, options []MirrorOption) error {
	if globalIndex < 0 || globalIndex >= len(options) || options[globalIndex].GlobalIndex != globalIndex {
		return fmt.Errorf("%w: %d (indexer %s has %d mirrors)", ErrMirrorOutOfRange, globalIndex, indexerID, len(options))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected[indexerID] = options[globalIndex]
	return nil
}

// Current returns the active option among options.
// If the stored choice no longer matches the option set (lists changed
// since it was made) the default option is returned instead.
func (s *SelectionStore) Current(indexerID string, options []MirrorOption) (MirrorOption, bool) {
	if len(options) == 0 {
		return MirrorOption{}, false
	}

	s.mu.RLock()
	opt, ok := s.selected[indexerID]
	s.mu.RUnlock()

	if !ok || opt.GlobalIndex < 0 || opt.GlobalIndex >= len(options) || options[opt.GlobalIndex] != opt {
		return options[0], true
	}
	return opt, true
}

// Forget drops the entry for an indexer
func (s *SelectionStore) Forget(indexerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selected, indexerID)
}

// Len returns the number of indexers with an explicit selection
func (s *SelectionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selected)
}
