package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/fakecheck/internal/model"
)

var (
	checkTitle   string
	checkContent string
	checkURL     string
	checkFormat  string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a single news item",
	Example: `  fakecheck check --title "BREAKING: shocking secret revealed"
  fakecheck check --url https://example.com/story --format yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		req := model.CheckRequest{Title: checkTitle, Content: checkContent, URL: checkURL}
		if req.Title == "" && req.Content == "" && req.URL == "" {
			return eris.New("check: one of --title, --content or --url is required")
		}

		engine, err := newEngine(cfg)
		if err != nil {
			return err
		}

		v := engine.CheckText(cmd.Context(), req)
		return writeOutput(cmd.OutOrStdout(), checkFormat, v)
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkTitle, "title", "", "headline")
	checkCmd.Flags().StringVar(&checkContent, "content", "", "article body")
	checkCmd.Flags().StringVar(&checkURL, "url", "", "article URL")
	checkCmd.Flags().StringVar(&checkFormat, "format", formatJSON, "output format: json or yaml")
	rootCmd.AddCommand(checkCmd)
}
