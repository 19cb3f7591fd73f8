package vectordb

import "context"

// VectorStore defines the interface for storing and searching catalog
// documents by embeddings.
type VectorStore interface {
	// AddDocuments embeds and persists a batch of documents. A failed batch
	// returns an error without silently committing part of it.
	AddDocuments(ctx context.Context, docs []Document) error

	// Search returns the documents nearest to the query text, nearest first.
	// It never returns more than limit results and never mutates the store.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)

	// IsEmpty reports whether the store holds zero documents.
	IsEmpty() bool

	// Count returns the total number of documents in the store.
	Count() int
}
