package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gamemate",
	Short: "RAG-powered game recommendation chat assistant",
	Long: `Gamemate answers natural-language questions about your game catalog.
It keeps a persistent vector index of the catalog, retrieves the entries
most relevant to each question, and grounds an LLM answer on them while
remembering the conversation per session.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".gamemate.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
