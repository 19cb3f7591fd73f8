package vectordb

import (
	"fmt"
	"strings"
)

// FormatResults renders search results as human-readable text.
func FormatResults(results []SearchResult) string {
	if len(results) == 0 {
		return "No results found."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n\n", len(results)))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("--- Result %d (similarity: %.4f) ---\n", i+1, r.Similarity))

		if r.Document.Metadata.Title != "" {
			sb.WriteString(fmt.Sprintf("Title: %s\n", r.Document.Metadata.Title))
		}
		if r.Document.Metadata.AppID != "" {
			sb.WriteString(fmt.Sprintf("AppID: %s\n", r.Document.Metadata.AppID))
		}
		if len(r.Document.Metadata.Genres) > 0 {
			sb.WriteString(fmt.Sprintf("Genres: %s\n", strings.Join(r.Document.Metadata.Genres, ", ")))
		}

		sb.WriteString("\n")
		sb.WriteString(r.Document.Content)
		sb.WriteString("\n\n")
	}

	return sb.String()
}
