package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/regchat"
	"github.com/fwojciec/regchat/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewClient(context.Background(), "")

	require.Error(t, err)
	assert.Equal(t, regchat.EINVALID, regchat.ErrorCode(err))
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "regulation")
}

func TestBuildConfig_SetsTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.4, *config.Temperature, 0.001)
}

func TestBuildContents_SingleUserTurn(t *testing.T) {
	t.Parallel()

	contents := gemini.BuildContents("What is escrow?")

	require.Len(t, contents, 1)
	assert.Equal(t, "user", contents[0].Role)
	require.Len(t, contents[0].Parts, 1)
	assert.Equal(t, "What is escrow?", contents[0].Parts[0].Text)
}

func TestEmbedder_Embed_EmptyInput(t *testing.T) {
	t.Parallel()

	vectors, err := gemini.NewEmbedder(nil, "").Embed(context.Background(), nil)

	require.NoError(t, err)
	assert.Nil(t, vectors)
}
