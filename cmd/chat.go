package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gamemate-ai/gamemate/internal/app"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Chat with the assistant from the terminal",
	Long: `Sends a single message when given as an argument, or starts an
interactive session otherwise. All turns share one session so the
assistant remembers the conversation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		a, err := app.Initialize(ctx, cfg, nil)
		if err != nil {
			return err
		}
		defer a.Close()

		sessionID := uuid.New().String()

		if len(args) == 1 {
			answer, err := a.Orchestrator.HandleTurn(ctx, sessionID, args[0])
			if err != nil {
				return err
			}
			fmt.Println(answer)
			return nil
		}

		fmt.Println("Type your question, or \"exit\" to quit.")
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			input := strings.TrimSpace(scanner.Text())
			if input == "" {
				continue
			}
			if input == "exit" || input == "quit" {
				return nil
			}

			answer, err := a.Orchestrator.HandleTurn(ctx, sessionID, input)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				continue
			}
			fmt.Println(answer)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
