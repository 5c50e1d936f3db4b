package regchat

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// StreamFormatter renders an incrementally arriving text stream to a fixed
// width display. Explicit line breaks from the producer are preserved and
// forced wraps never leave a leading space on the next line.
type StreamFormatter struct {
	// MaxWidth is the display width in runes. Zero disables wrapping.
	MaxWidth int

	Logger *slog.Logger
}

// NewStreamFormatter creates a StreamFormatter. A nil logger discards logs.
func NewStreamFormatter(maxWidth int, logger *slog.Logger) *StreamFormatter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &StreamFormatter{MaxWidth: maxWidth, Logger: logger}
}

// Format consumes stream, writing wrapped lines to w as soon as their wrap
// point is known, and returns the rendered response: every emitted line
// terminated by "\n".
//
// If the stream yields an error, consumption stops, whatever is buffered is
// still flushed, and the partial response is returned together with an
// ESTREAM error.
func (f *StreamFormatter) Format(w io.Writer, stream iter.Seq2[string, error]) (string, error) {
	r := &renderer{w: w, width: f.MaxWidth}

	var streamErr error
	for fragment, err := range stream {
		if err != nil {
			f.logger().Error("response stream failed", "err", err, "received", r.received)
			streamErr = Errorf(ESTREAM, "response stream failed: %v", err)
			break
		}
		r.write(fragment)
	}
	r.flush()

	return r.response.String(), streamErr
}

func (f *StreamFormatter) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return f.Logger
}

// renderer holds the state of a single Format call.
type renderer struct {
	w        io.Writer
	width    int
	buf      lineBuffer
	response strings.Builder
	received int
}

func (r *renderer) write(fragment string) {
	r.received += len(fragment)
	r.buf.Append(fragment)

	for {
		i := r.buf.Index("\n")
		if i < 0 {
			break
		}
		line := r.buf.Drain(i + 1)
		r.emit(line[:i])
	}

	for r.width > 0 {
		if r.buf.Width() <= r.width {
			break
		}
		// Leading blanks would be dropped by Wrap anyway; removing them
		// keeps the wrap point measured from the first visible rune.
		r.buf.TrimLeft()
		cut, ok := wrapPoint(r.buf.String(), r.width)
		if !ok {
			break
		}
		r.emit(r.buf.Drain(cut))
		r.buf.TrimLeft()
	}
}

// flush emits anything left in the buffer as the final line.
func (r *renderer) flush() {
	rest := r.buf.Drain(r.buf.Len())
	if strings.TrimSpace(rest) == "" {
		return
	}
	r.emit(rest)
}

func (r *renderer) emit(text string) {
	wrapped := Wrap(text, r.width)
	fmt.Fprintln(r.w, wrapped)
	r.response.WriteString(wrapped)
	r.response.WriteByte('\n')
}

// lineBuffer accumulates fragments that have not been emitted yet.
type lineBuffer struct {
	s string
}

// Append adds text to the end of the buffer.
func (b *lineBuffer) Append(s string) {
	b.s += s
}

// Drain removes and returns the first n bytes of the buffer.
func (b *lineBuffer) Drain(n int) string {
	head := b.s[:n]
	b.s = b.s[n:]
	return head
}

// TrimLeft drops leading whitespace.
func (b *lineBuffer) TrimLeft() {
	b.s = strings.TrimLeftFunc(b.s, unicode.IsSpace)
}

// Index returns the byte offset of the first occurrence of sep, or -1.
func (b *lineBuffer) Index(sep string) int {
	return strings.Index(b.s, sep)
}

// Len returns the buffer length in bytes.
func (b *lineBuffer) Len() int {
	return len(b.s)
}

// Width returns the buffer length in runes.
func (b *lineBuffer) Width() int {
	return utf8.RuneCountInString(b.s)
}

func (b *lineBuffer) String() string {
	return b.s
}
