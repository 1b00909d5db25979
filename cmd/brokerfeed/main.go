package main

import (
	"os"

	"github.com/brokerfeed-dev/brokerfeed/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
