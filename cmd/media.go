package main

import (
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/fakecheck/internal/model"
)

var (
	mediaFile   string
	mediaType   string
	mediaFormat string
)

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Check an image or video file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := os.ReadFile(mediaFile)
		if err != nil {
			return eris.Wrap(err, "media: read file")
		}

		contentType := mediaType
		if contentType == "" {
			contentType = mimetype.Detect(data).String()
		}

		engine, err := newEngine(cfg)
		if err != nil {
			return err
		}

		v := engine.CheckMedia(cmd.Context(), model.MediaCheckRequest{
			Data:        data,
			ContentType: contentType,
			Filename:    filepath.Base(mediaFile),
		})
		return writeOutput(cmd.OutOrStdout(), mediaFormat, v)
	},
}

func init() {
	mediaCmd.Flags().StringVar(&mediaFile, "file", "", "path to the media file")
	mediaCmd.Flags().StringVar(&mediaType, "type", "", "MIME type (sniffed from content when empty)")
	mediaCmd.Flags().StringVar(&mediaFormat, "format", formatJSON, "output format: json or yaml")
	_ = mediaCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(mediaCmd)
}
