// Package openai implements regchat.Streamer and regchat.Embedder using the
// OpenAI API.
package openai

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/fwojciec/regchat"
	goopenai "github.com/sashabaranov/go-openai"
)

// DefaultEmbeddingModel is used when no embedding model is configured.
const DefaultEmbeddingModel = string(goopenai.SmallEmbedding3)

// NewClient creates an API client. An empty baseURL selects the public API.
func NewClient(apiKey, baseURL string) *goopenai.Client {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return goopenai.NewClientWithConfig(cfg)
}

// Ensure Streamer implements regchat.Streamer at compile time.
var _ regchat.Streamer = (*Streamer)(nil)

// Streamer streams chat completions.
type Streamer struct {
	client *goopenai.Client
	model  string
}

// NewStreamer creates a new Streamer.
func NewStreamer(client *goopenai.Client, model string) *Streamer {
	return &Streamer{client: client, model: model}
}

// Stream sends prompt as a single user message and yields content deltas.
func (s *Streamer) Stream(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		stream, err := s.client.CreateChatCompletionStream(ctx, goopenai.ChatCompletionRequest{
			Model: s.model,
			Messages: []goopenai.ChatCompletionMessage{{
				Role:    goopenai.ChatMessageRoleUser,
				Content: prompt,
			}},
			Stream: true,
		})
		if err != nil {
			yield("", fmt.Errorf("error sending request: %w", err))
			return
		}
		defer stream.Close()

		for {
			response, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield("", fmt.Errorf("error receiving response: %w", err))
				return
			}
			if len(response.Choices) == 0 {
				continue
			}
			if delta := response.Choices[0].Delta.Content; delta != "" {
				if !yield(delta, nil) {
					return
				}
			}
		}
	}
}

// Ensure Embedder implements regchat.Embedder at compile time.
var _ regchat.Embedder = (*Embedder)(nil)

// Embedder computes embeddings.
type Embedder struct {
	client *goopenai.Client
	model  string
}

// NewEmbedder creates a new Embedder. An empty model selects
// DefaultEmbeddingModel.
func NewEmbedder(client *goopenai.Client, model string) *Embedder {
	return &Embedder{client: client, model: cmp.Or(model, DefaultEmbeddingModel)}
}

// Embed returns one vector per text, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, goopenai.EmbeddingRequest{
		Input: texts,
		Model: goopenai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("error creating embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, regchat.Errorf(regchat.EINTERNAL, "openai returned %d embeddings for %d texts", len(resp.Data), len(texts))
	}

	data := slices.Clone(resp.Data)
	slices.SortFunc(data, func(a, b goopenai.Embedding) int {
		return cmp.Compare(a.Index, b.Index)
	})

	vectors := make([][]float32, len(data))
	for i, d := range data {
		vectors[i] = d.Embedding
	}
	return vectors, nil
}
