// Package gemini implements regchat.Streamer, regchat.Embedder and
// regchat.TokenCounter using Google Gemini.
package gemini

import (
	"cmp"
	"context"
	"fmt"
	"iter"

	"github.com/fwojciec/regchat"
	"google.golang.org/genai"
)

// DefaultEmbeddingModel is used when no embedding model is configured.
const DefaultEmbeddingModel = "text-embedding-004"

// NewClient creates a Gemini API client.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, regchat.Errorf(regchat.EINVALID, "gemini API key required")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// Ensure Streamer implements regchat.Streamer at compile time.
var _ regchat.Streamer = (*Streamer)(nil)

// Streamer streams generated content.
type Streamer struct {
	client *genai.Client
	model  string
}

// NewStreamer creates a new Streamer.
func NewStreamer(client *genai.Client, model string) *Streamer {
	return &Streamer{client: client, model: model}
}

// Stream yields the text of each streamed response.
func (s *Streamer) Stream(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for resp, err := range s.client.Models.GenerateContentStream(ctx, s.model, BuildContents(prompt), BuildConfig()) {
			if err != nil {
				yield("", fmt.Errorf("error receiving response: %w", err))
				return
			}
			if resp == nil {
				continue
			}
			if text := resp.Text(); text != "" {
				if !yield(text, nil) {
					return
				}
			}
		}
	}
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about a federal regulation. Answer based only on the regulation text provided. If the answer is not in the text, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildContents wraps prompt as a single user turn.
func BuildContents(prompt string) []*genai.Content {
	return []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
}

// Ensure Embedder implements regchat.Embedder at compile time.
var _ regchat.Embedder = (*Embedder)(nil)

// Embedder computes embeddings.
type Embedder struct {
	client *genai.Client
	model  string
}

// NewEmbedder creates a new Embedder. An empty model selects
// DefaultEmbeddingModel.
func NewEmbedder(client *genai.Client, model string) *Embedder {
	return &Embedder{client: client, model: cmp.Or(model, DefaultEmbeddingModel)}
}

// Embed returns one vector per text, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = genai.NewContentFromText(t, genai.RoleUser)
	}

	resp, err := e.client.Models.EmbedContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating embeddings: %w", err)
	}
	if resp == nil || len(resp.Embeddings) != len(texts) {
		got := 0
		if resp != nil {
			got = len(resp.Embeddings)
		}
		return nil, regchat.Errorf(regchat.EINTERNAL, "gemini returned %d embeddings for %d texts", got, len(texts))
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		if emb == nil {
			return nil, regchat.Errorf(regchat.EINTERNAL, "gemini returned empty embedding %d", i)
		}
		vectors[i] = emb.Values
	}
	return vectors, nil
}
