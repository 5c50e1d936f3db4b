package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/regchat"
	"github.com/fwojciec/regchat/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPromptTemplate(t *testing.T) {
	t.Parallel()

	t.Run("loads template with all placeholders", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "prompt.txt")
		require.NoError(t, os.WriteFile(path, []byte("{context}|{conversation}|{question}"), 0o644))

		tmpl, err := fs.LoadPromptTemplate(path)

		require.NoError(t, err)
		assert.Equal(t, "c|h|q", tmpl.Render(regchat.PromptValues{Context: "c", Conversation: "h", Question: "q"}))
	})

	t.Run("returns ENOTFOUND for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.LoadPromptTemplate(filepath.Join(t.TempDir(), "missing.txt"))

		assert.Equal(t, regchat.ENOTFOUND, regchat.ErrorCode(err))
	})

	t.Run("returns EINVALID for missing placeholder", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "prompt.txt")
		require.NoError(t, os.WriteFile(path, []byte("{context} {question}"), 0o644))

		_, err := fs.LoadPromptTemplate(path)

		assert.Equal(t, regchat.EINVALID, regchat.ErrorCode(err))
		assert.Contains(t, regchat.ErrorMessage(err), "{conversation}")
	})

	t.Run("ships a valid default template", func(t *testing.T) {
		t.Parallel()

		_, err := fs.LoadPromptTemplate(filepath.Join("..", regchat.DefaultPromptPath))

		assert.NoError(t, err)
	})
}
