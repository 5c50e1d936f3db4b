package sqlite

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/fwojciec/regchat"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ regchat.Index = (*Collection)(nil)

// Collection is a named set of embedded chunks. It implements regchat.Index
// with brute-force cosine similarity search.
type Collection struct {
	db *DB

	ID        string
	Name      string
	CreatedAt time.Time
}

// CreateCollection registers a new, empty collection.
func CreateCollection(ctx context.Context, db *DB, name string) (*Collection, error) {
	if name == "" {
		return nil, regchat.Errorf(regchat.EINVALID, "collection name required")
	}

	c := &Collection{
		db:        db,
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO collections (id, name, created_at)
		VALUES (?, ?, ?)
	`, c.ID, c.Name, c.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to create collection %q: %w", name, err)
	}

	return c, nil
}

// Add stores chunks in a single transaction, assigning IDs and content hashes.
func (c *Collection) Add(ctx context.Context, chunks []*regchat.Chunk) error {
	for _, ch := range chunks {
		if err := ch.Validate(); err != nil {
			return err
		}
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, collection_id, content, content_hash, position, dimensions, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ch := range chunks {
		if ch.ID == "" {
			ch.ID = uuid.New().String()
		}
		ch.ContentHash = hashContent(ch.Content)

		if _, err := stmt.ExecContext(ctx, ch.ID, c.ID, ch.Content, ch.ContentHash,
			ch.Position, len(ch.Embedding), encodeEmbedding(ch.Embedding)); err != nil {
			return fmt.Errorf("failed to insert chunk %d: %w", ch.Position, err)
		}
	}

	return tx.Commit()
}

// Search scores every chunk against embedding and returns the best limit
// matches, highest score first. Ties keep corpus order.
func (c *Collection) Search(ctx context.Context, embedding []float32, limit int) ([]regchat.SearchResult, error) {
	if len(embedding) == 0 {
		return nil, regchat.Errorf(regchat.EINVALID, "query embedding required")
	}
	if limit < 1 {
		return nil, regchat.Errorf(regchat.EINVALID, "search limit must be at least 1")
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT id, content, content_hash, position, embedding
		FROM chunks
		WHERE collection_id = ? AND dimensions = ?
		ORDER BY position ASC
	`, c.ID, len(embedding))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []regchat.SearchResult
	for rows.Next() {
		var ch regchat.Chunk
		var blob []byte

		if err := rows.Scan(&ch.ID, &ch.Content, &ch.ContentHash, &ch.Position, &blob); err != nil {
			return nil, err
		}
		if ch.Embedding, err = decodeEmbedding(blob); err != nil {
			return nil, err
		}

		results = append(results, regchat.SearchResult{
			Chunk: &ch,
			Score: cosineSimilarity(embedding, ch.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(results, func(a, b regchat.SearchResult) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Count returns the number of chunks in the collection.
func (c *Collection) Count(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks WHERE collection_id = ?", c.ID).Scan(&n)
	return n, err
}

// Drop deletes the collection and its chunks. Dropping twice is not an error.
func (c *Collection) Drop(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, "DELETE FROM collections WHERE id = ?", c.ID)
	if err != nil {
		return fmt.Errorf("failed to drop collection %q: %w", c.Name, err)
	}
	return nil
}
