package sqlite

import (
	"database/sql"

	"indexdeck/internal/domain"
)

// catalogTx groups catalog writes into one transaction
type catalogTx struct {
	tx *sql.Tx
}

func (c *Catalog) beginTx() (*catalogTx, error) {
	tx, err := c.db.Begin()
	if err != nil {
		return nil, err
	}
	return &catalogTx{tx: tx}, nil
}

// upsertIndexer inserts an indexer or renames an existing one
func (t *catalogTx) upsertIndexer(ix *domain.Indexer) error {
	_, err := t.tx.Exec(`
		INSERT INTO indexers (id, name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name
	`, ix.ID, ix.Name, ix.CreatedAt.UnixNano())
	return err
}

// replaceLinks rewrites one link pool of an indexer, keeping list order
func (t *catalogTx) replaceLinks(indexerID, pool string, links []string) error {
	if _, err := t.tx.Exec(`DELETE FROM indexer_links WHERE indexer_id = ? AND pool = ?`, indexerID, pool); err != nil {
		return err
	}

	stmt, err := t.tx.Prepare(`
		INSERT INTO indexer_links (indexer_id, pool, position, url)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, link := range links {
		if _, err := stmt.Exec(indexerID, pool, i, link); err != nil {
			return err
		}
	}
	return nil
}

// deleteIndexer removes an indexer and its links, reporting whether it existed
func (t *catalogTx) deleteIndexer(id string) (bool, error) {
	if _, err := t.tx.Exec(`DELETE FROM indexer_links WHERE indexer_id = ?`, id); err != nil {
		return false, err
	}
	res, err := t.tx.Exec(`DELETE FROM indexers WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Commit commits the transaction
func (t *catalogTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *catalogTx) Rollback() error {
	return t.tx.Rollback()
}
