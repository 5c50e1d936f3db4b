package otel

import (
	"context"
	"iter"
	"time"

	"github.com/fwojciec/regchat"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Ensure Streamer implements regchat.Streamer at compile time.
var _ regchat.Streamer = (*Streamer)(nil)

// Streamer traces each completion and records its fragment count and
// duration.
type Streamer struct {
	next      regchat.Streamer
	tracer    trace.Tracer
	fragments metric.Int64Counter
	duration  metric.Float64Histogram
}

// NewStreamer wraps next.
func NewStreamer(next regchat.Streamer, tracer trace.Tracer, meter metric.Meter) (*Streamer, error) {
	fragments, err := meter.Int64Counter("regchat.stream.fragments",
		metric.WithDescription("Response fragments received from the model"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("regchat.stream.duration",
		metric.WithDescription("Time to stream a complete response"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}
	return &Streamer{next: next, tracer: tracer, fragments: fragments, duration: duration}, nil
}

// Stream wraps the next streamer in a span and records fragment and duration metrics.
func (s *Streamer) Stream(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		ctx, span := s.tracer.Start(ctx, "regchat.stream",
			trace.WithAttributes(attribute.Int("prompt.length", len(prompt))))
		defer span.End()

		start := time.Now()
		n := 0
		failed := false
		defer func() {
			status := attribute.Bool("error", failed)
			s.fragments.Add(ctx, int64(n), metric.WithAttributes(status))
			s.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(status))
			span.SetAttributes(attribute.Int("response.fragments", n))
		}()

		for fragment, err := range s.next.Stream(ctx, prompt) {
			if err != nil {
				failed = true
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				yield("", err)
				return
			}
			n++
			if !yield(fragment, nil) {
				return
			}
		}
	}
}

// Ensure Embedder implements regchat.Embedder at compile time.
var _ regchat.Embedder = (*Embedder)(nil)

// Embedder traces embedding requests and counts embedded texts.
type Embedder struct {
	next   regchat.Embedder
	tracer trace.Tracer
	texts  metric.Int64Counter
}

// NewEmbedder wraps next.
func NewEmbedder(next regchat.Embedder, tracer trace.Tracer, meter metric.Meter) (*Embedder, error) {
	texts, err := meter.Int64Counter("regchat.embed.texts",
		metric.WithDescription("Texts sent for embedding"))
	if err != nil {
		return nil, err
	}
	return &Embedder{next: next, tracer: tracer, texts: texts}, nil
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	ctx, span := e.tracer.Start(ctx, "regchat.embed",
		trace.WithAttributes(attribute.Int("texts", len(texts))))
	defer span.End()

	vectors, err := e.next.Embed(ctx, texts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	e.texts.Add(ctx, int64(len(texts)))
	return vectors, nil
}
