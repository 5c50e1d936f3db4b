package regchat

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Wrap fills text into lines of at most width runes using a greedy
// algorithm. Lines break only at whitespace; a word longer than width is
// placed on a line of its own rather than split. Runs of whitespace collapse
// to a single space. Lines are joined with "\n" and there is no trailing
// newline. A width of zero or less disables wrapping.
func Wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	if width <= 0 {
		return strings.Join(words, " ")
	}

	var sb strings.Builder
	lineLen := 0
	for _, word := range words {
		n := utf8.RuneCountInString(word)
		switch {
		case lineLen == 0:
		case lineLen+1+n <= width:
			sb.WriteByte(' ')
			lineLen++
		default:
			sb.WriteByte('\n')
			lineLen = 0
		}
		sb.WriteString(word)
		lineLen += n
	}
	return sb.String()
}

// wrapPoint returns the byte offset at which s should be broken so that the
// head fits in width runes. The break is the last whitespace at rune index
// <= width. When no whitespace lies within the limit, the first whitespace
// after it is used so a long word ends up alone on its line. Returns false
// when s fits or contains no whitespace at all.
func wrapPoint(s string, width int) (int, bool) {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return 0, false
	}

	last := -1
	k := 0
	for i, r := range s {
		if k > width {
			break
		}
		if unicode.IsSpace(r) {
			last = i
		}
		k++
	}
	if last > 0 {
		return last, true
	}

	if i := strings.IndexFunc(s, unicode.IsSpace); i > 0 {
		return i, true
	}
	return 0, false
}
