package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/brokerfeed-dev/brokerfeed/internal/config"
	"github.com/brokerfeed-dev/brokerfeed/internal/ingest"
	"github.com/brokerfeed-dev/brokerfeed/internal/pipeline"
	"github.com/brokerfeed-dev/brokerfeed/internal/refdata"
	"github.com/brokerfeed-dev/brokerfeed/internal/report"
	"github.com/brokerfeed-dev/brokerfeed/internal/runlog"
)

func newParseCommand() *cobra.Command {
	var (
		refPath    string
		configPath string
		outPath    string
		xlsxPath   string
		runlogPath string
		source     string
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "parse <input-file>",
		Short: "Classify a broker export and extract operation records",
		Long: `Parse reads a broker CSV or XLSX export, classifies each row into an
operation category, and writes one JSON record per row. Rows that cannot
be classified are reported explicitly; they never abort the batch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]

			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if workers > 0 {
				cfg.Workers = workers
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

			table, err := refdata.Load(refPath)
			if err != nil {
				return err
			}

			parser, err := ingest.ForFile(input)
			if err != nil {
				return err
			}
			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("opening input: %w", err)
			}
			defer f.Close()

			rows, err := parser.Parse(f)
			if err != nil {
				return err
			}

			if source == "" {
				source = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
			}

			orch := pipeline.New(cfg, table,
				pipeline.WithSource(source),
				pipeline.WithLogger(logger),
			)
			results, summary := orch.Process(rows)

			out := cmd.OutOrStdout()
			if outPath != "" {
				outFile, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating output: %w", err)
				}
				defer outFile.Close()
				out = outFile
			}
			if err := report.WriteJSONL(out, results); err != nil {
				return err
			}

			if xlsxPath != "" {
				xlsxFile, err := os.Create(xlsxPath)
				if err != nil {
					return fmt.Errorf("creating workbook: %w", err)
				}
				defer xlsxFile.Close()
				if err := report.WriteXLSX(xlsxFile, results); err != nil {
					return err
				}
			}

			if runlogPath != "" {
				entry := runlog.Entry{
					Timestamp:    time.Now(),
					BatchID:      summary.BatchID.String(),
					Source:       summary.Source,
					Rows:         summary.Total,
					Extracted:    summary.Extracted,
					Income:       summary.Income,
					Unclassified: summary.Unclassified,
					Failed:       summary.Failed,
					Warnings:     summary.Warnings,
				}
				if err := runlog.Append(runlogPath, entry); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&refPath, "reference", "r", "", "instrument reference CSV (required)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file (defaults to built-in vocabulary)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "JSONL output file (default stdout)")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write extracted records to an XLSX workbook")
	cmd.Flags().StringVar(&runlogPath, "runlog", "", "append a batch summary to this run log CSV")
	cmd.Flags().StringVar(&source, "source", "", "source name for record references (default input file name)")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent row workers (overrides config)")
	_ = cmd.MarkFlagRequired("reference")

	return cmd
}

// newLogger builds the JSON logger the pipeline reports through.
func newLogger(w io.Writer, levelStr string) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
