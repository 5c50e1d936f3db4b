package rag

import (
	"context"
	"iter"
	"log/slog"

	"github.com/fwojciec/regchat"
)

// Ensure Pipeline implements regchat.Asker at compile time.
var _ regchat.Asker = (*Pipeline)(nil)

// Pipeline answers a question by retrieving the closest chunks, rendering
// them into the prompt template together with the question and history, and
// streaming the model's completion.
type Pipeline struct {
	Embedder regchat.Embedder
	Index    regchat.Index
	Streamer regchat.Streamer
	Template *regchat.PromptTemplate
	TopK     int

	// TokenCounter is optional. When set, prompt sizes are logged.
	TokenCounter regchat.TokenCounter

	Logger *slog.Logger
}

// Ask streams the answer to question. Retrieval failures are yielded as the
// stream's only element.
func (p *Pipeline) Ask(ctx context.Context, question, history string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		prompt, err := p.Prompt(ctx, question, history)
		if err != nil {
			yield("", err)
			return
		}

		for fragment, err := range p.Streamer.Stream(ctx, prompt) {
			if !yield(fragment, err) || err != nil {
				return
			}
		}
	}
}

// Prompt renders the prompt sent to the model for question.
func (p *Pipeline) Prompt(ctx context.Context, question, history string) (string, error) {
	logger := loggerOrDiscard(p.Logger)

	vectors, err := p.Embedder.Embed(ctx, []string{question})
	if err != nil {
		return "", err
	}
	if len(vectors) != 1 {
		return "", regchat.Errorf(regchat.EINTERNAL, "embedder returned %d vectors for 1 text", len(vectors))
	}

	results, err := p.Index.Search(ctx, vectors[0], max(p.TopK, 1))
	if err != nil {
		return "", err
	}
	logger.Debug("retrieved context", "chunks", len(results))

	prompt := p.Template.Render(regchat.PromptValues{
		Context:      regchat.FormatContext(results),
		Question:     question,
		Conversation: history,
	})

	if p.TokenCounter != nil {
		if n, err := p.TokenCounter.CountTokens(ctx, prompt); err != nil {
			logger.Warn("failed to count prompt tokens", "error", err)
		} else {
			logger.Info("prompt tokens", "count", n)
		}
	}

	return prompt, nil
}
