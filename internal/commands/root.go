package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brokerfeed-dev/brokerfeed/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "brokerfeed",
		Short:   "Classify broker statement rows into normalized operation records",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newVocabCommand())

	return rootCmd
}
