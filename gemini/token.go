package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/regchat"
	"google.golang.org/genai/tokenizer"
)

// TokenizerModel is the model whose local tokenizer is used to size prompts.
// Prompt sizes are informational, so one tokenizer serves every provider.
const TokenizerModel = "gemini-2.5-flash"

var _ regchat.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts prompt tokens offline with the Gemini tokenizer.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the tokenizer for model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer for %s: %w", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens returns the number of tokens text occupies as one user turn.
func (tc *TokenCounter) CountTokens(_ context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens(BuildContents(text), nil)
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}
