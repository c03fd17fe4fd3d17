package ports

import "indexdeck/internal/domain"

// IndexerCatalog supplies indexers and their mirror link lists
type IndexerCatalog interface {
	// Lifecycle
	Open(path string) error
	Close() error

	// Queries
	ListIndexers() ([]domain.Indexer, error)
	GetIndexer(id string) (*domain.Indexer, error)

	// Mutations
	SaveIndexer(ix *domain.Indexer) error
	DeleteIndexer(id string) error
}
