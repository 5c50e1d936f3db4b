package rag_test

import (
	"testing"

	"github.com/fwojciec/regchat"
	"github.com/fwojciec/regchat/rag"
	"github.com/stretchr/testify/assert"
)

func TestCorpus(t *testing.T) {
	t.Parallel()

	page := &regchat.Page{Paragraphs: []regchat.Paragraph{
		{Text: "(a) Purpose."},
		{Text: "(1) Scope."},
		{Text: "Applies to servicers."},
	}}

	t.Run("joins paragraphs by newline", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "(a) Purpose.\n(1) Scope.\nApplies to servicers.", rag.Corpus(page, false))
	})

	t.Run("appends extra paragraphs", func(t *testing.T) {
		t.Parallel()

		got := rag.Corpus(page, false, regchat.DefaultSanityCheckStatement)

		assert.Equal(t, "(a) Purpose.\n(1) Scope.\nApplies to servicers.\n"+regchat.DefaultSanityCheckStatement, got)
	})

	t.Run("indents by outline level", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "(a) Purpose.\n  (1) Scope.\n    Applies to servicers.", rag.Corpus(page, true))
	})
}
