package regchat_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/regchat"
	"github.com/stretchr/testify/assert"
)

func TestSplitter_Split(t *testing.T) {
	t.Parallel()

	t.Run("short text is a single chunk", func(t *testing.T) {
		t.Parallel()

		s := regchat.NewSplitter(100, 20)

		assert.Equal(t, []string{"(a) Definitions.\nBorrower means a person."}, s.Split("(a) Definitions.\nBorrower means a person."))
	})

	t.Run("empty text has no chunks", func(t *testing.T) {
		t.Parallel()

		s := regchat.NewSplitter(100, 20)

		assert.Empty(t, s.Split(""))
	})

	t.Run("splits on lines and respects chunk size", func(t *testing.T) {
		t.Parallel()

		s := regchat.NewSplitter(10, 0)

		chunks := s.Split("aaaa\nbbbb\ncccc")

		assert.Equal(t, []string{"aaaa\nbbbb", "cccc"}, chunks)
	})

	t.Run("carries overlap into next chunk", func(t *testing.T) {
		t.Parallel()

		s := regchat.NewSplitter(10, 4)

		chunks := s.Split("aaaa bbbb cccc")

		assert.Equal(t, []string{"aaaa bbbb", "bbbb cccc"}, chunks)
	})

	t.Run("falls back to words inside long paragraphs", func(t *testing.T) {
		t.Parallel()

		s := regchat.NewSplitter(12, 0)

		chunks := s.Split("one two three four five\n\nsix")

		assert.Equal(t, []string{"one two", "three four", "five", "six"}, chunks)
	})

	t.Run("falls back to characters for long words", func(t *testing.T) {
		t.Parallel()

		s := regchat.NewSplitter(4, 0)

		chunks := s.Split("abcdefghij")

		assert.Equal(t, []string{"abcd", "efgh", "ij"}, chunks)
	})

	t.Run("no chunk exceeds chunk size", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("The servicer shall respond to the borrower within thirty days.\n", 40)
		s := regchat.NewSplitter(100, 20)

		chunks := s.Split(text)

		assert.Greater(t, len(chunks), 1)
		for _, c := range chunks {
			assert.LessOrEqual(t, utf8.RuneCountInString(c), 100)
			assert.NotEmpty(t, c)
		}
	})
}
