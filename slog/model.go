package slog

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/fwojciec/regchat"
)

// Ensure LoggingEmbedder implements regchat.Embedder.
var _ regchat.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with debug logging.
type LoggingEmbedder struct {
	next   regchat.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next regchat.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Embed delegates to the wrapped embedder and logs the operation.
func (e *LoggingEmbedder) Embed(ctx context.Context, texts []string) (vectors [][]float32, err error) {
	defer func(begin time.Time) {
		dims := 0
		if len(vectors) > 0 {
			dims = len(vectors[0])
		}
		e.logger.Debug("embed",
			"texts", len(texts),
			"dimensions", dims,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, texts)
}

// Ensure LoggingStreamer implements regchat.Streamer.
var _ regchat.Streamer = (*LoggingStreamer)(nil)

// LoggingStreamer wraps a Streamer, logging the prompt at debug level and a
// summary once the stream ends.
type LoggingStreamer struct {
	next   regchat.Streamer
	logger *slog.Logger
}

// NewLoggingStreamer creates a new LoggingStreamer.
func NewLoggingStreamer(next regchat.Streamer, logger *slog.Logger) *LoggingStreamer {
	return &LoggingStreamer{next: next, logger: logger}
}

// Stream delegates to the wrapped streamer.
func (s *LoggingStreamer) Stream(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		s.logger.Debug("prompt", "text", prompt)

		var (
			fragments, chars int
			streamErr        error
		)
		defer func(begin time.Time) {
			s.logger.Info("completion",
				"fragments", fragments,
				"chars", chars,
				"duration", time.Since(begin),
				"err", streamErr,
			)
		}(time.Now())

		for fragment, err := range s.next.Stream(ctx, prompt) {
			if err != nil {
				streamErr = err
				yield("", err)
				return
			}
			fragments++
			chars += len(fragment)
			if !yield(fragment, nil) {
				return
			}
		}
	}
}
