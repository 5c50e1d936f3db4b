package regchat

import (
	"context"
)

// Chunk represents a section of the corpus optimized for embedding and retrieval.
type Chunk struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	Position    int       `json:"position"` // Order within the corpus
	Embedding   []float32 `json:"embedding,omitempty"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	if len(c.Embedding) == 0 {
		return Errorf(EINVALID, "chunk embedding required")
	}
	return nil
}

// SearchResult represents a search match.
type SearchResult struct {
	Chunk *Chunk  `json:"chunk"`
	Score float32 `json:"score"`
}

// Index is a vector collection scoped to a single chat session.
// Drop must be called when the session ends, including on error paths.
type Index interface {
	// Add stores chunks with their embeddings.
	Add(ctx context.Context, chunks []*Chunk) error

	// Search returns up to limit chunks ordered by similarity to embedding.
	Search(ctx context.Context, embedding []float32, limit int) ([]SearchResult, error)

	// Drop removes the collection and everything stored in it.
	Drop(ctx context.Context) error
}

// Embedder turns texts into embedding vectors.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
