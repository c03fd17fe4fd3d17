package commands

import (
	"context"
	"errors"
	"fmt"

	"indexdeck/internal/application"
	"indexdeck/internal/domain"
	"indexdeck/internal/ports"
)

// MirrorListing is an indexer's resolved mirror set ready for display
type MirrorListing struct {
	Indexer *domain.Indexer
	Options []domain.MirrorOption
	Labels  []string
	Offer   bool                // false: render no chooser
	Active  domain.MirrorOption // zero value when Options is empty
}

// ListMirrorsCommand resolves the mirror options of one indexer
type ListMirrorsCommand struct {
	catalog   ports.IndexerCatalog
	store     *domain.SelectionStore
	IndexerID string
}

// NewListMirrorsCommand creates a new ListMirrorsCommand
func NewListMirrorsCommand(catalog ports.IndexerCatalog, store *domain.SelectionStore, indexerID string) *ListMirrorsCommand {
	return &ListMirrorsCommand{
		catalog:   catalog,
		store:     store,
		IndexerID: indexerID,
	}
}

// Validate checks the command arguments
func (c *ListMirrorsCommand) Validate() error {
	return application.ValidateRequired("indexerID", c.IndexerID)
}

// Execute runs the list mirrors command
func (c *ListMirrorsCommand) Execute(ctx context.Context) (*MirrorListing, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ix, err := c.catalog.GetIndexer(c.IndexerID)
	if err != nil {
		return nil, err
	}
	return BuildMirrorListing(ix, c.store), nil
}

// BuildMirrorListing resolves and labels the mirrors of ix.
// store may be nil, in which case the default mirror is active.
func BuildMirrorListing(ix *domain.Indexer, store *domain.SelectionStore) *MirrorListing {
	options := ix.Options()
	labels := make([]string, len(options))
	for i, opt := range options {
		labels[i] = domain.FormatLabel(opt)
	}

	listing := &MirrorListing{
		Indexer: ix,
		Options: options,
		Labels:  labels,
		Offer:   domain.ShouldOffer(options),
	}
	if store != nil {
		listing.Active, _ = store.Current(ix.ID, options)
	} else if len(options) > 0 {
		listing.Active = options[0]
	}
	return listing
}

// SelectMirrorResult contains the result of a mirror selection
type SelectMirrorResult struct {
	IndexerID string
	Selected  domain.MirrorOption
	Message   string
}

// SelectMirrorCommand selects one of an indexer's mirrors by global index
type SelectMirrorCommand struct {
	catalog     ports.IndexerCatalog
	store       *domain.SelectionStore
	IndexerID   string
	GlobalIndex int
}

// NewSelectMirrorCommand creates a new SelectMirrorCommand
func NewSelectMirrorCommand(catalog ports.IndexerCatalog, store *domain.SelectionStore, indexerID string, globalIndex int) *SelectMirrorCommand {
	return &SelectMirrorCommand{
		catalog:     catalog,
		store:       store,
		IndexerID:   indexerID,
		GlobalIndex: globalIndex,
	}
}

// Validate checks the command arguments
func (c *SelectMirrorCommand) Validate() error {
	if err := application.ValidateRequired("indexerID", c.IndexerID); err != nil {
		return err
	}
	if c.GlobalIndex < 0 {
		return &application.ValidationError{
			Field:   "globalIndex",
			Message: fmt.Sprintf("mirror index must not be negative, got %d", c.GlobalIndex),
		}
	}
	return nil
}

// Execute runs the select mirror command
func (c *SelectMirrorCommand) Execute(ctx context.Context) (*SelectMirrorResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ix, err := c.catalog.GetIndexer(c.IndexerID)
	if err != nil {
		return nil, err
	}

	options := ix.Options()
	if !domain.ShouldOffer(options) {
		return nil, &application.SelectionError{
			IndexerID: c.IndexerID,
			Index:     c.GlobalIndex,
			Reason:    fmt.Sprintf("indexer has %d mirror(s), nothing to choose", len(options)),
		}
	}

	if err := c.store.SelectMirror(c.IndexerID, c.GlobalIndex, options); err != nil {
		if errors.Is(err, domain.ErrMirrorOutOfRange) {
			return nil, &application.SelectionError{
				IndexerID: c.IndexerID,
				Index:     c.GlobalIndex,
				Reason:    fmt.Sprintf("valid range is 0-%d", len(options)-1),
			}
		}
		return nil, err
	}

	selected := options[c.GlobalIndex]
	return &SelectMirrorResult{
		IndexerID: c.IndexerID,
		Selected:  selected,
		Message:   fmt.Sprintf("%s now uses %s", ix.Name, domain.FormatLabel(selected)),
	}, nil
}
