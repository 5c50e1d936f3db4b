package regchat

import (
	"context"
	"iter"
)

// Asker answers questions about the indexed document.
type Asker interface {
	// Ask composes retrieved context, the question and the conversation
	// history into a prompt and streams the model's answer. A failure at any
	// point is yielded as the stream's error.
	Ask(ctx context.Context, question, history string) iter.Seq2[string, error]
}

// Streamer requests a streamed completion from a language model.
type Streamer interface {
	// Stream yields response fragments in arrival order. Iteration ends when
	// the response is complete or after an error is yielded.
	Stream(ctx context.Context, prompt string) iter.Seq2[string, error]
}
