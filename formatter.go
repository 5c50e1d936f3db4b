package regchat

import "strings"

// FormatContext formats retrieved chunks for inclusion in a prompt.
// Chunks keep their retrieval order and are separated by blank lines.
func FormatContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		if r.Chunk == nil || r.Chunk.Content == "" {
			continue
		}
		parts = append(parts, r.Chunk.Content)
	}

	return strings.Join(parts, "\n\n")
}
