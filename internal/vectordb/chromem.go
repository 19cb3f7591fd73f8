package vectordb

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	chromem "github.com/philippgille/chromem-go"

	"github.com/gamemate-ai/gamemate/internal/embeddings"
)

const collectionName = "games"

// ChromemStore implements VectorStore using chromem-go. When opened with
// OpenChromemStore the underlying database is persisted to disk and survives
// process restarts.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
}

// NewChromemStore creates an in-memory ChromemStore (useful for testing).
func NewChromemStore(embedder embeddings.Embedder) (*ChromemStore, error) {
	return newStore(chromem.NewDB(), embedder)
}

// OpenChromemStore creates or opens a persistent ChromemStore rooted at dir.
func OpenChromemStore(dir string, embedder embeddings.Embedder) (*ChromemStore, error) {
	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		return nil, fmt.Errorf("opening vector database at %s: %w", dir, err)
	}
	return newStore(db, embedder)
}

func newStore(db *chromem.DB, embedder embeddings.Embedder) (*ChromemStore, error) {
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &ChromemStore{
		db:         db,
		collection: col,
		embedFunc:  ef,
	}, nil
}

func (s *ChromemStore) AddDocuments(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	chromDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		chromDocs[i] = chromem.Document{
			ID:       doc.ID,
			Content:  doc.Content,
			Metadata: metadataToMap(doc.Metadata),
		}
	}

	if err := s.collection.AddDocuments(ctx, chromDocs, 1); err != nil {
		return fmt.Errorf("adding %d documents: %w", len(docs), err)
	}
	return nil
}

func (s *ChromemStore) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 4
	}

	// chromem-go requires nResults <= collection size.
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	results, err := s.collection.Query(ctx, query, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	searchResults := make([]SearchResult, len(results))
	for i, r := range results {
		searchResults[i] = SearchResult{
			Document: Document{
				ID:       r.ID,
				Content:  r.Content,
				Metadata: mapToMetadata(r.Metadata),
			},
			Similarity: r.Similarity,
		}
	}

	// chromem returns results nearest-first; break exact score ties by
	// catalog id so repeated queries are deterministic.
	sort.SliceStable(searchResults, func(i, j int) bool {
		a, b := searchResults[i], searchResults[j]
		if a.Similarity != b.Similarity {
			return a.Similarity > b.Similarity
		}
		return lessAppID(a.Document.Metadata.AppID, b.Document.Metadata.AppID)
	})

	return searchResults, nil
}

func (s *ChromemStore) IsEmpty() bool {
	return s.collection.Count() == 0
}

func (s *ChromemStore) Count() int {
	return s.collection.Count()
}

// Reset drops all documents so the index can be rebuilt from scratch.
func (s *ChromemStore) Reset() error {
	if err := s.db.DeleteCollection(collectionName); err != nil {
		return fmt.Errorf("dropping collection: %w", err)
	}
	col, err := s.db.GetOrCreateCollection(collectionName, nil, s.embedFunc)
	if err != nil {
		return fmt.Errorf("recreating collection: %w", err)
	}
	s.collection = col
	return nil
}

// lessAppID orders catalog ids numerically when both sides are numeric,
// falling back to lexicographic order otherwise.
func lessAppID(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}

// metadataToMap converts DocumentMetadata to a flat map[string]string for chromem.
func metadataToMap(m DocumentMetadata) map[string]string {
	return map[string]string{
		"appid":  m.AppID,
		"title":  m.Title,
		"genres": strings.Join(m.Genres, ","),
	}
}

// mapToMetadata converts a flat map[string]string back to DocumentMetadata.
func mapToMetadata(m map[string]string) DocumentMetadata {
	var genres []string
	if m["genres"] != "" {
		genres = strings.Split(m["genres"], ",")
	}
	return DocumentMetadata{
		AppID:  m["appid"],
		Title:  m["title"],
		Genres: genres,
	}
}
