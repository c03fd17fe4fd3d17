package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"indexdeck/internal/application"
	"indexdeck/internal/domain"
	"indexdeck/internal/ports"
)

// ListIndexersCommand lists all indexers in the catalog
type ListIndexersCommand struct {
	catalog ports.IndexerCatalog
}

// NewListIndexersCommand creates a new ListIndexersCommand
func NewListIndexersCommand(catalog ports.IndexerCatalog) *ListIndexersCommand {
	return &ListIndexersCommand{catalog: catalog}
}

// Execute runs the list indexers command
func (c *ListIndexersCommand) Execute(ctx context.Context) ([]domain.Indexer, error) {
	return c.catalog.ListIndexers()
}

// AddIndexerResult contains the result of adding an indexer
type AddIndexerResult struct {
	Indexer *domain.Indexer
	Message string
}

// AddIndexerCommand registers a new indexer with its mirror links
type AddIndexerCommand struct {
	catalog      ports.IndexerCatalog
	Name         string
	PrimaryLinks []string
	LegacyLinks  []string
}

// NewAddIndexerCommand creates a new AddIndexerCommand
func NewAddIndexerCommand(catalog ports.IndexerCatalog, name string, primary, legacy []string) *AddIndexerCommand {
	return &AddIndexerCommand{
		catalog:      catalog,
		Name:         name,
		PrimaryLinks: primary,
		LegacyLinks:  legacy,
	}
}

// Validate checks the indexer definition
func (c *AddIndexerCommand) Validate() error {
	if err := application.ValidateRequired("name", c.Name); err != nil {
		return err
	}
	return application.ValidateLinks(c.PrimaryLinks, c.LegacyLinks)
}

// Execute runs the add indexer command
func (c *AddIndexerCommand) Execute(ctx context.Context) (*AddIndexerResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ix := &domain.Indexer{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(c.Name),
		PrimaryLinks: application.NormalizeLinks(c.PrimaryLinks),
		LegacyLinks:  application.NormalizeLinks(c.LegacyLinks),
		CreatedAt:    time.Now().UTC(),
	}
	if err := c.catalog.SaveIndexer(ix); err != nil {
		return nil, fmt.Errorf("failed to save indexer: %w", err)
	}

	return &AddIndexerResult{
		Indexer: ix,
		Message: fmt.Sprintf("Added %s (%s) with %d mirrors", ix.Name, ix.ID, ix.MirrorCount()),
	}, nil
}

// RemoveIndexerResult contains the result of removing an indexer
type RemoveIndexerResult struct {
	RemovedID string
	Message   string
}

// RemoveIndexerCommand deletes an indexer and forgets its mirror selection
type RemoveIndexerCommand struct {
	catalog   ports.IndexerCatalog
	store     *domain.SelectionStore
	IndexerID string
}

// NewRemoveIndexerCommand creates a new RemoveIndexerCommand.
// store may be nil when no selection state is held.
func NewRemoveIndexerCommand(catalog ports.IndexerCatalog, store *domain.SelectionStore, indexerID string) *RemoveIndexerCommand {
	return &RemoveIndexerCommand{
		catalog:   catalog,
		store:     store,
		IndexerID: indexerID,
	}
}

// Validate checks if the remove operation is valid
func (c *RemoveIndexerCommand) Validate() error {
	return application.ValidateRequired("indexerID", c.IndexerID)
}

// Execute runs the remove indexer command
func (c *RemoveIndexerCommand) Execute(ctx context.Context) (*RemoveIndexerResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.catalog.DeleteIndexer(c.IndexerID); err != nil {
		return nil, fmt.Errorf("failed to remove %s: %w", c.IndexerID, err)
	}
	if c.store != nil {
		c.store.Forget(c.IndexerID)
	}

	return &RemoveIndexerResult{
		RemovedID: c.IndexerID,
		Message:   fmt.Sprintf("Removed %s", c.IndexerID),
	}, nil
}
