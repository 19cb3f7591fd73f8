package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gamemate-ai/gamemate/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize gamemate configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the assistant and generates a .gamemate.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
