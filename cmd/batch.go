package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/fakecheck/internal/intake"
	"github.com/sells-group/fakecheck/internal/model"
)

var (
	batchInput string
	batchLimit int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Check every row of a CSV file",
	Long: `Reads a CSV with a header row naming any of title, content and url,
checks each row concurrently and writes one JSON result per line to stdout.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		items, err := intake.ParseCSVFile(batchInput)
		if err != nil {
			return err
		}
		zap.L().Info("parsed csv", zap.Int("items", len(items)))

		return checkAll(cmd, items, batchLimit)
	},
}

// checkAll runs a bulk check with the configured concurrency and prints the
// results as JSON lines.
func checkAll(cmd *cobra.Command, items []model.CheckRequest, limit int) error {
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}

	results := intake.Run(cmd.Context(), engine, items, cfg.Batch.MaxConcurrent)
	return writeJSONLines(cmd.OutOrStdout(), results)
}

func init() {
	batchCmd.Flags().StringVar(&batchInput, "input", "", "path to the input CSV")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "check at most this many rows (0 = all)")
	_ = batchCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(batchCmd)
}
