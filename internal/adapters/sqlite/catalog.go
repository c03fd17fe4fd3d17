package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"indexdeck/internal/application"
	"indexdeck/internal/domain"
	"indexdeck/internal/ports"
)

const schemaVersion = "1"

const (
	poolPrimary = "primary"
	poolLegacy  = "legacy"
)

// Catalog implements ports.IndexerCatalog using SQLite
type Catalog struct {
	db   *sql.DB
	path string
}

// Ensure Catalog implements IndexerCatalog
var _ ports.IndexerCatalog = (*Catalog)(nil)

// NewCatalog creates a new SQLite catalog
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Open opens (creating if needed) the catalog database at path
func (c *Catalog) Open(path string) error {
	// Expand ~ in path
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	c.path = path

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	c.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS indexers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS indexer_links (
			indexer_id TEXT NOT NULL REFERENCES indexers(id) ON DELETE CASCADE,
			pool TEXT NOT NULL,
			position INTEGER NOT NULL,
			url TEXT NOT NULL,
			PRIMARY KEY (indexer_id, pool, position)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_indexers_created ON indexers(created_at);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (c *Catalog) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Path returns the database file path
func (c *Catalog) Path() string {
	return c.path
}

// ListIndexers returns all indexers in insertion order
func (c *Catalog) ListIndexers() ([]domain.Indexer, error) {
	rows, err := c.db.Query(`SELECT id, name, created_at FROM indexers ORDER BY created_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var indexers []domain.Indexer
	byID := make(map[string]int)
	for rows.Next() {
		var ix domain.Indexer
		var created int64
		if err := rows.Scan(&ix.ID, &ix.Name, &created); err != nil {
			return nil, err
		}
		ix.CreatedAt = time.Unix(0, created).UTC()
		byID[ix.ID] = len(indexers)
		indexers = append(indexers, ix)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	links, err := c.db.Query(`SELECT indexer_id, pool, url FROM indexer_links ORDER BY indexer_id, pool, position`)
	if err != nil {
		return nil, err
	}
	defer links.Close()

	for links.Next() {
		var id, pool, url string
		if err := links.Scan(&id, &pool, &url); err != nil {
			return nil, err
		}
		if i, ok := byID[id]; ok {
			appendLink(&indexers[i], pool, url)
		}
	}

	return indexers, links.Err()
}

// GetIndexer retrieves one indexer by ID
func (c *Catalog) GetIndexer(id string) (*domain.Indexer, error) {
	var ix domain.Indexer
	var created int64

	err := c.db.QueryRow(`SELECT id, name, created_at FROM indexers WHERE id = ?`, id).
		Scan(&ix.ID, &ix.Name, &created)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("indexer %s: %w", id, application.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	ix.CreatedAt = time.Unix(0, created).UTC()

	rows, err := c.db.Query(`
		SELECT pool, url FROM indexer_links
		WHERE indexer_id = ?
		ORDER BY pool, position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var pool, url string
		if err := rows.Scan(&pool, &url); err != nil {
			return nil, err
		}
		appendLink(&ix, pool, url)
	}

	return &ix, rows.Err()
}

// SaveIndexer inserts or replaces an indexer and both of its link lists
func (c *Catalog) SaveIndexer(ix *domain.Indexer) error {
	tx, err := c.beginTx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if ix.CreatedAt.IsZero() {
		ix.CreatedAt = time.Now().UTC()
	}
	if err := tx.upsertIndexer(ix); err != nil {
		return fmt.Errorf("failed to save indexer %s: %w", ix.ID, err)
	}
	if err := tx.replaceLinks(ix.ID, poolPrimary, ix.PrimaryLinks); err != nil {
		return fmt.Errorf("failed to save primary links: %w", err)
	}
	if err := tx.replaceLinks(ix.ID, poolLegacy, ix.LegacyLinks); err != nil {
		return fmt.Errorf("failed to save legacy links: %w", err)
	}

	return tx.Commit()
}

// DeleteIndexer removes an indexer and its links
func (c *Catalog) DeleteIndexer(id string) error {
	tx, err := c.beginTx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	deleted, err := tx.deleteIndexer(id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("indexer %s: %w", id, application.ErrNotFound)
	}
	return tx.Commit()
}

func appendLink(ix *domain.Indexer, pool, url string) {
	switch pool {
	case poolPrimary:
		ix.PrimaryLinks = append(ix.PrimaryLinks, url)
	case poolLegacy:
		ix.LegacyLinks = append(ix.LegacyLinks, url)
	}
}
