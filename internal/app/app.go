// Package app wires the assistant's components into one explicit context
// object. Nothing here runs at import time; the hosting process calls
// Initialize once at startup and passes the result around.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gamemate-ai/gamemate/internal/chat"
	"github.com/gamemate-ai/gamemate/internal/config"
	"github.com/gamemate-ai/gamemate/internal/db"
	"github.com/gamemate-ai/gamemate/internal/embeddings"
	"github.com/gamemate-ai/gamemate/internal/history"
	"github.com/gamemate-ai/gamemate/internal/indexer"
	"github.com/gamemate-ai/gamemate/internal/llm"
	"github.com/gamemate-ai/gamemate/internal/retriever"
	"github.com/gamemate-ai/gamemate/internal/vectordb"
)

// App holds every live component of the assistant. It replaces process-wide
// singletons so tests can build isolated instances.
type App struct {
	Config       *config.Config
	Embedder     embeddings.Embedder
	Provider     llm.Provider
	Store        *vectordb.ChromemStore
	History      history.Store
	Retriever    *retriever.Retriever
	Orchestrator *chat.Orchestrator
	IndexResult  *indexer.Result

	database *db.DB
}

// Initialize builds the full assistant: it opens the persistent vector
// index, bootstraps it from the catalog if empty, and wires the conversation
// pipeline. A catalog that cannot be indexed is a startup failure — the
// assistant does not come up half-initialized.
func Initialize(ctx context.Context, cfg *config.Config, onProgress indexer.ProgressFunc) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	embedder, err := NewEmbedder(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}

	provider, err := NewLLMProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}

	store, err := OpenVectorStore(cfg, embedder)
	if err != nil {
		return nil, fmt.Errorf("opening vector store: %w", err)
	}

	init := indexer.New(store, cfg.CatalogPath, cfg.BatchSize)
	init.SetProgressFunc(onProgress)
	result, err := init.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing vector index: %w", err)
	}

	hist, database, err := NewHistoryStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating history store: %w", err)
	}

	ret := retriever.New(store, cfg.TopK)

	orch := chat.NewOrchestrator(ret, provider, hist, chat.Options{
		Model:            cfg.Model,
		ResponseLanguage: cfg.ResponseLanguage,
		TranslateQueries: cfg.TranslateQueries,
	})

	return &App{
		Config:       cfg,
		Embedder:     embedder,
		Provider:     provider,
		Store:        store,
		History:      hist,
		Retriever:    ret,
		Orchestrator: orch,
		IndexResult:  result,
		database:     database,
	}, nil
}

// Close releases resources held by the app.
func (a *App) Close() error {
	if a.database != nil {
		return a.database.Close()
	}
	return nil
}

// NewEmbedder creates an embeddings.Embedder based on config.
func NewEmbedder(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.EmbeddingProvider
	if provider == "" {
		provider = cfg.Provider
	}

	switch provider {
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(cfg.EmbeddingModel, 768, os.Getenv("OLLAMA_HOST")), nil
	default:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(cfg.EmbeddingModel)), nil
	}
}

// NewLLMProvider creates the chat provider, rate limited when configured.
func NewLLMProvider(cfg *config.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, err
	}
	if cfg.RequestsPerMinute > 0 {
		provider = llm.NewRateLimitedProvider(provider, cfg.RequestsPerMinute)
	}
	return provider, nil
}

// OpenVectorStore opens the persistent vector index under the data dir.
func OpenVectorStore(cfg *config.Config, embedder embeddings.Embedder) (*vectordb.ChromemStore, error) {
	return vectordb.OpenChromemStore(filepath.Join(cfg.DataDir, "vectordb"), embedder)
}

// NewHistoryStore creates the configured transcript store. The returned DB is
// nil for the in-memory backend.
func NewHistoryStore(cfg *config.Config) (history.Store, *db.DB, error) {
	switch cfg.HistoryBackend {
	case config.HistorySQLite:
		database, err := db.Open(filepath.Join(cfg.DataDir, "gamemate.db"))
		if err != nil {
			return nil, nil, err
		}
		return history.NewSQLiteStore(database, cfg.MaxHistoryTurns), database, nil
	default:
		return history.NewMemoryStore(cfg.MaxHistoryTurns), nil, nil
	}
}
