package mock

import (
	"context"
	"iter"

	"github.com/fwojciec/regchat"
)

var _ regchat.Asker = (*Asker)(nil)

// Asker is a mock implementation of regchat.Asker.
type Asker struct {
	AskFn func(ctx context.Context, question, history string) iter.Seq2[string, error]
}

func (a *Asker) Ask(ctx context.Context, question, history string) iter.Seq2[string, error] {
	return a.AskFn(ctx, question, history)
}

var _ regchat.Streamer = (*Streamer)(nil)

// Streamer is a mock implementation of regchat.Streamer.
type Streamer struct {
	StreamFn func(ctx context.Context, prompt string) iter.Seq2[string, error]
}

func (s *Streamer) Stream(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return s.StreamFn(ctx, prompt)
}

// Fragments returns a stream that yields parts in order.
func Fragments(parts ...string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, p := range parts {
			if !yield(p, nil) {
				return
			}
		}
	}
}

// FailingStream returns a stream that yields parts and then err.
func FailingStream(err error, parts ...string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, p := range parts {
			if !yield(p, nil) {
				return
			}
		}
		yield("", err)
	}
}

var _ regchat.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of regchat.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
