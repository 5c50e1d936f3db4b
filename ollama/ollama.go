// Package ollama implements regchat.Streamer and regchat.Embedder against a
// local Ollama server.
package ollama

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"net/url"

	"github.com/fwojciec/regchat"
	"github.com/ollama/ollama/api"
)

// DefaultEmbeddingModel is used when no embedding model is configured.
const DefaultEmbeddingModel = "nomic-embed-text"

// NewClient creates a client for the server at host.
func NewClient(host string) (*api.Client, error) {
	u, err := url.Parse(host)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, regchat.Errorf(regchat.EINVALID, "invalid ollama host %q", host)
	}
	return api.NewClient(u, &http.Client{}), nil
}

// Ensure Streamer implements regchat.Streamer at compile time.
var _ regchat.Streamer = (*Streamer)(nil)

// Streamer streams completions from the generate endpoint.
type Streamer struct {
	client *api.Client
	model  string
}

// NewStreamer creates a new Streamer.
func NewStreamer(client *api.Client, model string) *Streamer {
	return &Streamer{client: client, model: model}
}

// Stream yields response fragments as the server produces them.
func (s *Streamer) Stream(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		stream := true
		req := api.GenerateRequest{
			Model:  s.model,
			Prompt: prompt,
			Stream: &stream,
		}

		stopped := false
		err := s.client.Generate(ctx, &req, func(res api.GenerateResponse) error {
			if stopped || res.Response == "" {
				return nil
			}
			if !yield(res.Response, nil) {
				stopped = true
				cancel()
			}
			return nil
		})
		if err != nil && !stopped {
			if errors.Is(err, context.Canceled) && ctx.Err() != nil {
				return
			}
			yield("", fmt.Errorf("error sending request: %w", err))
		}
	}
}

// Ensure Embedder implements regchat.Embedder at compile time.
var _ regchat.Embedder = (*Embedder)(nil)

// Embedder computes embeddings with the embed endpoint.
type Embedder struct {
	client *api.Client
	model  string
}

// NewEmbedder creates a new Embedder. An empty model selects
// DefaultEmbeddingModel.
func NewEmbedder(client *api.Client, model string) *Embedder {
	return &Embedder{client: client, model: cmp.Or(model, DefaultEmbeddingModel)}
}

// Embed returns one vector per text, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.Embed(ctx, &api.EmbedRequest{
		Model: e.model,
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating embeddings: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, regchat.Errorf(regchat.EINTERNAL, "ollama returned %d embeddings for %d texts", len(resp.Embeddings), len(texts))
	}
	return resp.Embeddings, nil
}
