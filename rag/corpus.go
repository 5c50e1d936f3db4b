package rag

import (
	"strings"

	"github.com/fwojciec/regchat"
)

// Corpus returns the text to index for page: its paragraphs in document
// order followed by any extra paragraphs, one per line. With outline set,
// each line is indented by its position in the regulation's hierarchy.
func Corpus(page *regchat.Page, outline bool, extra ...string) string {
	lines := append(page.Lines(), extra...)
	if outline {
		return regchat.FormatOutline(regchat.InferOutline(lines))
	}
	return strings.Join(lines, "\n")
}
