package config

// DefaultConfig returns the configuration used when no file or overrides are
// present. The defaults target OpenAI's cheapest chat/embedding pairing.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderOpenAI,
		Model:             "gpt-4o-mini",
		EmbeddingProvider: ProviderOpenAI,
		EmbeddingModel:    "text-embedding-3-small",
		CatalogPath:       "games.csv",
		BatchSize:         100,
		TopK:              4,
		DataDir:           ".gamemate",
		ResponseLanguage:  "korean",
		TranslateQueries:  true,
		HistoryBackend:    HistoryMemory,
		MaxHistoryTurns:   200,
		RequestsPerMinute: 0,
		Server: ServerConfig{
			Port: 8080,
		},
	}
}
