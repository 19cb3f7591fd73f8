package config

// ProviderType identifies an LLM/embedding provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// HistoryBackend selects where session transcripts live.
type HistoryBackend string

const (
	HistoryMemory HistoryBackend = "memory"
	HistorySQLite HistoryBackend = "sqlite"
)

// Config is the top-level gamemate configuration, corresponding to .gamemate.yml.
type Config struct {
	Provider          ProviderType   `yaml:"provider" koanf:"provider"`
	Model             string         `yaml:"model" koanf:"model"`
	EmbeddingProvider ProviderType   `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string         `yaml:"embedding_model" koanf:"embedding_model"`
	CatalogPath       string         `yaml:"catalog_path" koanf:"catalog_path"`
	BatchSize         int            `yaml:"batch_size" koanf:"batch_size"`
	TopK              int            `yaml:"top_k" koanf:"top_k"`
	DataDir           string         `yaml:"data_dir" koanf:"data_dir"`
	ResponseLanguage  string         `yaml:"response_language" koanf:"response_language"`
	TranslateQueries  bool           `yaml:"translate_queries" koanf:"translate_queries"`
	HistoryBackend    HistoryBackend `yaml:"history_backend" koanf:"history_backend"`
	MaxHistoryTurns   int            `yaml:"max_history_turns" koanf:"max_history_turns"`
	RequestsPerMinute int            `yaml:"requests_per_minute" koanf:"requests_per_minute"`
	Server            ServerConfig   `yaml:"server" koanf:"server"`
}

// ServerConfig holds the HTTP chat server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
