package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .gamemate.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to gamemate! Let's configure your assistant.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"openai", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)
	cfg.EmbeddingProvider = cfg.Provider
	if cfg.Provider == ProviderOllama {
		cfg.Model = "llama3.1"
		cfg.EmbeddingModel = "nomic-embed-text"
	}

	// 2. Catalog file.
	catalogPrompt := promptui.Prompt{
		Label:   "Path to the game catalog CSV",
		Default: cfg.CatalogPath,
	}
	catalogPath, err := catalogPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("catalog path: %w", err)
	}
	cfg.CatalogPath = catalogPath

	// 3. Response language.
	languagePrompt := promptui.Select{
		Label: "Answer language",
		Items: []string{"korean", "english", "japanese"},
	}
	_, language, err := languagePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("language selection: %w", err)
	}
	cfg.ResponseLanguage = language

	// 4. Durable transcripts.
	backendPrompt := promptui.Select{
		Label: "Session history backend",
		Items: []string{"memory (reset on restart)", "sqlite (durable)"},
	}
	backendIdx, _, err := backendPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("history backend: %w", err)
	}
	if backendIdx == 1 {
		cfg.HistoryBackend = HistorySQLite
	}

	// 5. Server port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP server port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			_, err := strconv.Atoi(s)
			return err
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(".gamemate.yml"); err != nil {
		return nil, err
	}
	fmt.Println("\nSaved configuration to .gamemate.yml")

	return cfg, nil
}
