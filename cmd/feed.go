package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/fakecheck/internal/intake"
)

var (
	feedURL   string
	feedLimit int
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Check every item of an RSS or Atom feed",
	RunE: func(cmd *cobra.Command, _ []string) error {
		items, err := intake.FetchFeed(cmd.Context(), feedURL)
		if err != nil {
			return err
		}
		zap.L().Info("parsed feed", zap.String("url", feedURL), zap.Int("items", len(items)))

		return checkAll(cmd, items, feedLimit)
	},
}

func init() {
	feedCmd.Flags().StringVar(&feedURL, "url", "", "feed URL")
	feedCmd.Flags().IntVar(&feedLimit, "limit", 0, "check at most this many items (0 = all)")
	_ = feedCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(feedCmd)
}
