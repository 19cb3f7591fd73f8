// Package retriever answers retrieval queries against the vector index.
package retriever

import (
	"context"
	"fmt"

	"github.com/gamemate-ai/gamemate/internal/vectordb"
)

// DefaultTopK is the number of catalog entries fetched per query when no
// explicit value is configured.
const DefaultTopK = 4

// Retriever returns the catalog documents most similar to a query string.
// It holds no state beyond its configuration.
type Retriever struct {
	store vectordb.VectorStore
	topK  int
}

// New creates a Retriever over the given store. topK <= 0 selects DefaultTopK.
func New(store vectordb.VectorStore, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{store: store, topK: topK}
}

// Retrieve returns up to topK documents ordered nearest-first. An empty
// result is valid; it is not an error.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]vectordb.Document, error) {
	results, err := r.store.Search(ctx, query, r.topK)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	docs := make([]vectordb.Document, len(results))
	for i, res := range results {
		docs[i] = res.Document
	}
	return docs, nil
}
