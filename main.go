package main

import (
	"os"

	"github.com/gamemate-ai/gamemate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
