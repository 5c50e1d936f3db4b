package mock

import (
	"context"

	"github.com/fwojciec/regchat"
)

var _ regchat.Index = (*Index)(nil)

// Index is a mock implementation of regchat.Index.
type Index struct {
	AddFn    func(ctx context.Context, chunks []*regchat.Chunk) error
	SearchFn func(ctx context.Context, embedding []float32, limit int) ([]regchat.SearchResult, error)
	DropFn   func(ctx context.Context) error
}

func (i *Index) Add(ctx context.Context, chunks []*regchat.Chunk) error {
	return i.AddFn(ctx, chunks)
}

func (i *Index) Search(ctx context.Context, embedding []float32, limit int) ([]regchat.SearchResult, error) {
	return i.SearchFn(ctx, embedding, limit)
}

func (i *Index) Drop(ctx context.Context) error {
	return i.DropFn(ctx)
}

var _ regchat.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of regchat.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, texts []string) ([][]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedFn(ctx, texts)
}
