package openai_test

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/regchat"
	"github.com/fwojciec/regchat/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(stream iter.Seq2[string, error]) ([]string, error) {
	var out []string
	for s, err := range stream {
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, nil
}

func sseChunk(content string) string {
	return fmt.Sprintf(`data: {"id":"1","object":"chat.completion.chunk","model":"gpt-4o","choices":[{"index":0,"delta":{"content":%q}}]}`+"\n\n", content)
}

func TestStreamer_Stream(t *testing.T) {
	t.Parallel()

	t.Run("yields content deltas in order", func(t *testing.T) {
		t.Parallel()

		var got struct {
			Model    string `json:"model"`
			Stream   bool   `json:"stream"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			w.Header().Set("Content-Type", "text/event-stream")
			fmt.Fprint(w, sseChunk("An escrow "))
			fmt.Fprint(w, sseChunk(""))
			fmt.Fprint(w, sseChunk("account."))
			fmt.Fprint(w, "data: [DONE]\n\n")
		}))
		defer srv.Close()

		s := openai.NewStreamer(openai.NewClient("test-key", srv.URL), "gpt-4o-2024-05-13")

		fragments, err := collect(s.Stream(context.Background(), "What is escrow?"))

		require.NoError(t, err)
		assert.Equal(t, []string{"An escrow ", "account."}, fragments)
		assert.Equal(t, "gpt-4o-2024-05-13", got.Model)
		assert.True(t, got.Stream)
		require.Len(t, got.Messages, 1)
		assert.Equal(t, "user", got.Messages[0].Role)
		assert.Equal(t, "What is escrow?", got.Messages[0].Content)
	})

	t.Run("yields error for failed request", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":{"message":"invalid api key","type":"invalid_request_error"}}`)
		}))
		defer srv.Close()

		s := openai.NewStreamer(openai.NewClient("bad", srv.URL), "gpt-4o")

		_, err := collect(s.Stream(context.Background(), "q"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid api key")
	})
}

func TestEmbedder_Embed(t *testing.T) {
	t.Parallel()

	t.Run("returns vectors in input order", func(t *testing.T) {
		t.Parallel()

		var got struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/embeddings", r.URL.Path)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"object":"list","model":"text-embedding-3-small","data":[
				{"object":"embedding","index":1,"embedding":[0,1]},
				{"object":"embedding","index":0,"embedding":[1,0]}
			]}`)
		}))
		defer srv.Close()

		e := openai.NewEmbedder(openai.NewClient("k", srv.URL), "")

		vectors, err := e.Embed(context.Background(), []string{"first", "second"})

		require.NoError(t, err)
		assert.Equal(t, [][]float32{{1, 0}, {0, 1}}, vectors)
		assert.Equal(t, openai.DefaultEmbeddingModel, got.Model)
		assert.Equal(t, []string{"first", "second"}, got.Input)
	})

	t.Run("rejects mismatched response size", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"object":"list","data":[{"object":"embedding","index":0,"embedding":[1]}]}`)
		}))
		defer srv.Close()

		e := openai.NewEmbedder(openai.NewClient("k", srv.URL), "text-embedding-3-large")

		_, err := e.Embed(context.Background(), []string{"a", "b"})

		assert.Equal(t, regchat.EINTERNAL, regchat.ErrorCode(err))
	})

	t.Run("empty input makes no request", func(t *testing.T) {
		t.Parallel()

		e := openai.NewEmbedder(openai.NewClient("k", "http://127.0.0.1:0"), "")

		vectors, err := e.Embed(context.Background(), nil)

		require.NoError(t, err)
		assert.Nil(t, vectors)
	})
}
