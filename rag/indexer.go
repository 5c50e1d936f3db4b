package rag

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/regchat"
	"github.com/fwojciec/regchat/bloom"
	"golang.org/x/time/rate"
)

// duplicateFalsePositiveRate bounds how often a distinct chunk is mistaken
// for a duplicate and skipped.
const duplicateFalsePositiveRate = 0.0001

// Indexer splits a corpus into chunks, embeds them and stores them in an
// Index.
type Indexer struct {
	Splitter *regchat.Splitter
	Embedder regchat.Embedder
	Index    regchat.Index

	// Limiter paces embedding requests. Nil means unlimited.
	Limiter *rate.Limiter

	// BatchSize is the number of texts per embedding request.
	BatchSize int

	Logger *slog.Logger
}

// NewLimiter returns a limiter allowing rps requests per second without
// bursting. A non-positive rps disables limiting.
func NewLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// IndexText indexes text and returns the number of chunks stored.
// Repeated chunk contents are stored once.
func (ix *Indexer) IndexText(ctx context.Context, text string) (int, error) {
	logger := loggerOrDiscard(ix.Logger)
	start := time.Now()

	pieces := ix.Splitter.Split(text)
	if len(pieces) == 0 {
		return 0, regchat.Errorf(regchat.ENOTFOUND, "document has no indexable text")
	}

	seen := bloom.NewFilter(uint(len(pieces)), duplicateFalsePositiveRate)
	unique := pieces[:0:0]
	for _, p := range pieces {
		if seen.Seen(p) {
			logger.Debug("skipping duplicate chunk", "chars", len(p))
			continue
		}
		unique = append(unique, p)
	}

	batchSize := ix.BatchSize
	if batchSize < 1 {
		batchSize = len(unique)
	}

	stored := 0
	for i := 0; i < len(unique); i += batchSize {
		batch := unique[i:min(i+batchSize, len(unique))]

		if ix.Limiter != nil {
			if err := ix.Limiter.Wait(ctx); err != nil {
				return stored, err
			}
		}

		vectors, err := ix.Embedder.Embed(ctx, batch)
		if err != nil {
			return stored, err
		}
		if len(vectors) != len(batch) {
			return stored, regchat.Errorf(regchat.EINTERNAL,
				"embedder returned %d vectors for %d texts", len(vectors), len(batch))
		}

		chunks := make([]*regchat.Chunk, len(batch))
		for j, content := range batch {
			chunks[j] = &regchat.Chunk{
				Content:   content,
				Position:  i + j,
				Embedding: vectors[j],
			}
		}
		if err := ix.Index.Add(ctx, chunks); err != nil {
			return stored, err
		}
		stored += len(chunks)
	}

	logger.Info("indexed document",
		"chunks", stored,
		"duplicates", len(pieces)-len(unique),
		"filter_estimate", seen.EstimatedCount(),
		"duration", time.Since(start))

	return stored, nil
}
