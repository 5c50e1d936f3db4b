package regchat

import "context"

// TokenCounter counts model tokens in a prompt.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
