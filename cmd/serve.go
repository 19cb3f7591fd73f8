package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gamemate-ai/gamemate/internal/app"
	"github.com/gamemate-ai/gamemate/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP chat server",
	Long: `Starts the chat API. On startup the vector index is opened and, if
empty, built from the catalog before the server accepts requests.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		a, err := app.Initialize(ctx, cfg, func(batch, total, docs int) {
			if verbose {
				fmt.Fprintf(os.Stderr, "indexed batch %d/%d (%d documents)\n", batch, total, docs)
			}
		})
		if err != nil {
			return err
		}
		defer a.Close()

		if a.IndexResult.Built {
			fmt.Fprintf(os.Stderr, "built vector index from %s (%d documents, %d rows skipped)\n",
				cfg.CatalogPath, a.IndexResult.Documents, len(a.IndexResult.SkippedRows))
		} else {
			fmt.Fprintf(os.Stderr, "loaded existing vector index (%d documents)\n", a.Store.Count())
		}

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAllOrigins,
		}, a.Orchestrator, a.History)

		// Graceful shutdown on SIGINT/SIGTERM.
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-stop
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "gamemate listening on :%d\n", cfg.Server.Port)
		return srv.Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
