package main_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/regchat"
	main "github.com/fwojciec/regchat/cmd/regchat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) regchat.Config {
	t.Helper()

	cli := &main.CLI{}
	parser, err := main.NewParser(cli, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)
	_, err = parser.Parse(args)
	require.NoError(t, err)
	return cli.Config()
}

func TestCLI_Defaults(t *testing.T) {
	t.Parallel()

	cfg := parse(t)

	assert.Equal(t, regchat.DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestCLI_Flags(t *testing.T) {
	t.Parallel()

	cfg := parse(t,
		"--source-url", "https://example.com/1024/18/",
		"--provider", "ollama",
		"--model", "llama3",
		"--chunk-size", "500",
		"--chunk-overlap", "50",
		"--top-k", "6",
		"--max-width", "0",
		"--no-ignore-official-interpretation",
		"--interpretation-prefixes", "Official interpretation,Comment",
		"--history-limit", "3",
		"--embed-rps", "0.5",
		"--fetch-timeout", "5s",
		"--outline",
		"--debug",
	)

	assert.Equal(t, "https://example.com/1024/18/", cfg.SourceURL)
	assert.Equal(t, regchat.ProviderOllama, cfg.Provider)
	assert.Equal(t, "llama3", cfg.Model)
	assert.Equal(t, 500, cfg.ChunkSize)
	assert.Equal(t, 50, cfg.ChunkOverlap)
	assert.Equal(t, 6, cfg.TopK)
	assert.Equal(t, 0, cfg.MaxWidth)
	assert.False(t, cfg.IgnoreOfficialInterpretation)
	assert.Nil(t, cfg.ExcludedPrefixes())
	assert.Equal(t, []string{"Official interpretation", "Comment"}, cfg.InterpretationPrefixes)
	assert.Equal(t, 3, cfg.HistoryLimit)
	assert.InDelta(t, 0.5, cfg.EmbedRPS, 1e-9)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.True(t, cfg.Outline)
	assert.True(t, cfg.Debug)
}

func TestCLI_RejectsUnknownProvider(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := main.NewParser(cli, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	_, err = parser.Parse([]string{"--provider", "anthropic"})

	assert.Error(t, err)
}

func TestCLI_ConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "regchat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source_url: https://example.com/1024/20/
provider: gemini
model: gemini-2.5-flash
chunk_size: 800
max_width: 72
ignore_official_interpretation: false
sanity_check: true
interpretation_prefixes:
  - Official interpretation
  - See interpretation
  - Comment for
test_questions:
  - What is a servicer?
  - Are fees allowed, and when?
`), 0o644))

	t.Run("reads values from file", func(t *testing.T) {
		t.Parallel()

		cfg := parse(t, "--config", path)

		assert.Equal(t, "https://example.com/1024/20/", cfg.SourceURL)
		assert.Equal(t, regchat.ProviderGemini, cfg.Provider)
		assert.Equal(t, "gemini-2.5-flash", cfg.Model)
		assert.Equal(t, 800, cfg.ChunkSize)
		assert.Equal(t, 72, cfg.MaxWidth)
		assert.False(t, cfg.IgnoreOfficialInterpretation)
		assert.True(t, cfg.SanityCheck)
		assert.Equal(t, []string{"Official interpretation", "See interpretation", "Comment for"}, cfg.InterpretationPrefixes)
		assert.Equal(t, []string{"What is a servicer?", "Are fees allowed, and when?"}, cfg.TestQuestions)
		assert.Equal(t, regchat.DefaultChunkOverlap, cfg.ChunkOverlap)
	})

	t.Run("flags take precedence over file", func(t *testing.T) {
		t.Parallel()

		cfg := parse(t, "--config", path, "--max-width", "100", "--provider", "openai")

		assert.Equal(t, 100, cfg.MaxWidth)
		assert.Equal(t, regchat.ProviderOpenAI, cfg.Provider)
		assert.Equal(t, 800, cfg.ChunkSize)
	})
}
