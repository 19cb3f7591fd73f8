// Package catalog reads the tabular game catalog and partitions it into
// batches of documents sized for the embedding provider.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gamemate-ai/gamemate/internal/vectordb"
)

const (
	idColumn    = "appid"
	genreColumn = "genres"
	titleColumn = "title"
)

// fieldSeparator joins the "column: value" pairs that form a document's content.
const fieldSeparator = " | "

// RowError records a malformed catalog row that was skipped during loading.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

// LoadResult holds the batched documents produced from a catalog file along
// with any rows that had to be skipped.
type LoadResult struct {
	Batches [][]vectordb.Document
	Skipped []RowError
}

// Documents returns the total number of documents across all batches.
func (r *LoadResult) Documents() int {
	n := 0
	for _, b := range r.Batches {
		n += len(b)
	}
	return n
}

// LoadBatches reads a UTF-8 CSV catalog and partitions its rows into ordered
// batches of at most batchSize documents each. The file must have a header
// row containing at least the appid and genres columns. Malformed rows are
// collected on the result rather than aborting the load; an unreadable file
// or a missing required column is fatal.
func LoadBatches(path string, batchSize int) (*LoadResult, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading catalog header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	idIdx := indexOf(header, idColumn)
	if idIdx < 0 {
		return nil, fmt.Errorf("catalog is missing required column %q", idColumn)
	}
	if indexOf(header, genreColumn) < 0 {
		return nil, fmt.Errorf("catalog is missing required column %q", genreColumn)
	}
	titleIdx := indexOf(header, titleColumn)
	genreIdx := indexOf(header, genreColumn)

	result := &LoadResult{}
	var batch []vectordb.Document
	line := 1 // header was line 1

	for {
		line++
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Field-count mismatches and quoting errors are per-row problems;
			// anything else means the file itself is unreadable.
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				result.Skipped = append(result.Skipped, RowError{Line: line, Err: err})
				continue
			}
			return nil, fmt.Errorf("reading catalog row %d: %w", line, err)
		}

		doc, err := rowToDocument(header, record, idIdx, titleIdx, genreIdx)
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: line, Err: err})
			continue
		}

		batch = append(batch, doc)
		if len(batch) == batchSize {
			result.Batches = append(result.Batches, batch)
			batch = nil
		}
	}

	if len(batch) > 0 {
		result.Batches = append(result.Batches, batch)
	}

	return result, nil
}

// rowToDocument builds the page content as "column: value" pairs for every
// non-id column, preserving the catalog's column order.
func rowToDocument(header, record []string, idIdx, titleIdx, genreIdx int) (vectordb.Document, error) {
	appID := strings.TrimSpace(record[idIdx])
	if appID == "" {
		return vectordb.Document{}, fmt.Errorf("empty %s", idColumn)
	}

	parts := make([]string, 0, len(record)-1)
	for i, value := range record {
		if i == idIdx {
			continue
		}
		parts = append(parts, header[i]+": "+value)
	}

	md := vectordb.DocumentMetadata{
		AppID:  appID,
		Genres: splitGenres(record[genreIdx]),
	}
	if titleIdx >= 0 {
		md.Title = strings.TrimSpace(record[titleIdx])
	}

	return vectordb.Document{
		ID:       appID,
		Content:  strings.Join(parts, fieldSeparator),
		Metadata: md,
	}, nil
}

func splitGenres(s string) []string {
	var genres []string
	for _, g := range strings.Split(s, ",") {
		g = strings.TrimSpace(g)
		if g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}
