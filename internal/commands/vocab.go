package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/brokerfeed-dev/brokerfeed/internal/classify"
	"github.com/brokerfeed-dev/brokerfeed/internal/config"
	"github.com/brokerfeed-dev/brokerfeed/internal/refdata"
)

func newVocabCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Show the effective classification vocabulary and rule order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			classifier := classify.New(cfg.Vocabulary, refdata.NewTable(nil))
			fmt.Fprintf(cmd.OutOrStdout(), "# rule priority: %s\n", strings.Join(classifier.RuleNames(), " > "))

			data, err := yaml.Marshal(cfg.Vocabulary)
			if err != nil {
				return fmt.Errorf("marshaling vocabulary: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file (defaults to built-in vocabulary)")
	return cmd
}
