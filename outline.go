package regchat

import (
	"regexp"
	"strings"
)

// OutlineLevel is the depth of a paragraph marker in regulatory numbering:
// (a) → (1) → (i) → (A).
type OutlineLevel int

// Outline levels in nesting order.
const (
	LevelLowercase OutlineLevel = iota
	LevelNumber
	LevelRoman
	LevelUppercase
)

var (
	lowercaseMarkerRe = regexp.MustCompile(`^\(([a-z])\)`)
	numberMarkerRe    = regexp.MustCompile(`^\((\d+)\)`)
	romanMarkerRe     = regexp.MustCompile(`^\((i{1,3}|iv|v|vi{0,3}|ix|x{1,3})\)`)
	uppercaseMarkerRe = regexp.MustCompile(`^\(([A-Z])\)`)
)

// OutlineEntry is a line placed in the inferred hierarchy.
type OutlineEntry struct {
	Depth  int
	Marker string // Empty for content lines
	Text   string
}

// InferOutline assigns a depth to each line from its leading paragraph
// marker. Marker lines take the depth of their level; other lines are placed
// one level below the most recent marker.
//
// Single letters that are also roman numerals (i, v, x) are read as roman
// when the enclosing marker is a number or roman numeral, and as lowercase
// letters otherwise.
func InferOutline(lines []string) []OutlineEntry {
	entries := make([]OutlineEntry, 0, len(lines))
	current := -1

	for _, line := range lines {
		text := strings.TrimSpace(line)
		level, marker, ok := markerLevel(text, current)
		if ok {
			current = int(level)
			entries = append(entries, OutlineEntry{Depth: current, Marker: marker, Text: text})
			continue
		}
		entries = append(entries, OutlineEntry{Depth: current + 1, Text: text})
	}

	return entries
}

// FormatOutline renders entries with two spaces of indentation per level.
func FormatOutline(entries []OutlineEntry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = strings.Repeat("  ", e.Depth) + e.Text
	}
	return strings.Join(lines, "\n")
}

func markerLevel(text string, current int) (OutlineLevel, string, bool) {
	if m := numberMarkerRe.FindStringSubmatch(text); m != nil {
		return LevelNumber, m[1], true
	}
	if m := uppercaseMarkerRe.FindStringSubmatch(text); m != nil {
		return LevelUppercase, m[1], true
	}

	roman := romanMarkerRe.FindStringSubmatch(text)
	lower := lowercaseMarkerRe.FindStringSubmatch(text)
	switch {
	case roman != nil && lower != nil:
		if current >= int(LevelNumber) {
			return LevelRoman, roman[1], true
		}
		return LevelLowercase, lower[1], true
	case roman != nil:
		return LevelRoman, roman[1], true
	case lower != nil:
		return LevelLowercase, lower[1], true
	}
	return 0, "", false
}
