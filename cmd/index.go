package cmd

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/gamemate-ai/gamemate/internal/app"
	"github.com/gamemate-ai/gamemate/internal/indexer"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the vector index from the game catalog",
	Long: `Embeds the catalog and stores it in the persistent vector index.
A non-empty index is left untouched unless --rebuild is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rebuild, _ := cmd.Flags().GetBool("rebuild")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		embedder, err := app.NewEmbedder(cfg)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}

		store, err := app.OpenVectorStore(cfg, embedder)
		if err != nil {
			return fmt.Errorf("opening vector store: %w", err)
		}

		if rebuild && !store.IsEmpty() {
			fmt.Fprintf(os.Stderr, "dropping existing index (%d documents)\n", store.Count())
			if err := store.Reset(); err != nil {
				return fmt.Errorf("resetting index: %w", err)
			}
		}

		var bar *progressbar.ProgressBar
		init := indexer.New(store, cfg.CatalogPath, cfg.BatchSize)
		init.SetProgressFunc(func(batch, total, docs int) {
			if bar == nil {
				bar = progressbar.Default(int64(total), "indexing catalog")
			}
			bar.Add(1)
		})

		result, err := init.Run(cmd.Context())
		if err != nil {
			return err
		}

		if !result.Built {
			fmt.Printf("Index already holds %d documents; nothing to do. Use --rebuild to force.\n", store.Count())
			return nil
		}

		fmt.Printf("Indexed %d documents from %s.\n", result.Documents, cfg.CatalogPath)
		if len(result.SkippedRows) > 0 {
			fmt.Printf("Skipped %d malformed rows:\n", len(result.SkippedRows))
			for _, re := range result.SkippedRows {
				fmt.Printf("  %v\n", re)
			}
		}
		return nil
	},
}

func init() {
	indexCmd.Flags().Bool("rebuild", false, "drop the existing index and rebuild it from the catalog")
	rootCmd.AddCommand(indexCmd)
}
