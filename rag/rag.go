// Package rag wires retrieval, prompting and streaming into a chat session.
package rag

import "log/slog"

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
