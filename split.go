package regchat

import (
	"strings"
	"unicode/utf8"
)

// DefaultSeparators are tried in order when splitting text: paragraphs,
// lines, words, then single characters.
var DefaultSeparators = []string{"\n\n", "\n", " ", ""}

// Splitter splits text into overlapping chunks of at most ChunkSize runes.
// Text is split recursively on the first separator that occurs in it and the
// pieces are merged back together up to ChunkSize, carrying roughly
// ChunkOverlap runes from the end of one chunk into the start of the next.
type Splitter struct {
	ChunkSize    int
	ChunkOverlap int
	Separators   []string
}

// NewSplitter creates a Splitter using DefaultSeparators.
func NewSplitter(chunkSize, chunkOverlap int) *Splitter {
	return &Splitter{
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
		Separators:   DefaultSeparators,
	}
}

// Split returns the chunks of text in order. Empty chunks are omitted.
func (s *Splitter) Split(text string) []string {
	seps := s.Separators
	if len(seps) == 0 {
		seps = DefaultSeparators
	}
	return s.split(text, seps)
}

func (s *Splitter) split(text string, seps []string) []string {
	sep := seps[len(seps)-1]
	var rest []string
	for i, candidate := range seps {
		if candidate == "" {
			sep = candidate
			break
		}
		if strings.Contains(text, candidate) {
			sep = candidate
			rest = seps[i+1:]
			break
		}
	}

	var chunks, pending []string
	for _, piece := range strings.Split(text, sep) {
		if piece == "" {
			continue
		}
		if utf8.RuneCountInString(piece) < s.ChunkSize {
			pending = append(pending, piece)
			continue
		}
		if len(pending) > 0 {
			chunks = append(chunks, s.merge(pending, sep)...)
			pending = nil
		}
		if len(rest) == 0 {
			chunks = append(chunks, piece)
		} else {
			chunks = append(chunks, s.split(piece, rest)...)
		}
	}
	if len(pending) > 0 {
		chunks = append(chunks, s.merge(pending, sep)...)
	}
	return chunks
}

// merge joins pieces with sep into chunks no longer than ChunkSize.
func (s *Splitter) merge(pieces []string, sep string) []string {
	sepLen := utf8.RuneCountInString(sep)

	var chunks, current []string
	total := 0
	joined := func(n int) int {
		if n > 0 {
			return sepLen
		}
		return 0
	}

	for _, piece := range pieces {
		n := utf8.RuneCountInString(piece)
		if total+n+joined(len(current)) > s.ChunkSize && len(current) > 0 {
			if chunk := strings.TrimSpace(strings.Join(current, sep)); chunk != "" {
				chunks = append(chunks, chunk)
			}
			// Drop pieces from the front until what remains fits in the
			// overlap and leaves room for the next piece.
			for total > s.ChunkOverlap || (total+n+joined(len(current)) > s.ChunkSize && total > 0) {
				total -= utf8.RuneCountInString(current[0]) + joined(len(current)-1)
				current = current[1:]
			}
		}
		current = append(current, piece)
		total += n + joined(len(current)-1)
	}

	if chunk := strings.TrimSpace(strings.Join(current, sep)); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}
