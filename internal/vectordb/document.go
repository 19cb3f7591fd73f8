package vectordb

// Document represents a single catalog entry prepared for semantic search.
type Document struct {
	ID       string
	Content  string
	Metadata DocumentMetadata
}

// DocumentMetadata holds the structured fields attached to a catalog document.
type DocumentMetadata struct {
	AppID  string
	Title  string
	Genres []string
}

// SearchResult pairs a document with its similarity score.
type SearchResult struct {
	Document   Document
	Similarity float32
}
