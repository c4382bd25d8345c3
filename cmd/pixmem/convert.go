package main

import (
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kpfaulkner/pixmem/image"
	"github.com/kpfaulkner/pixmem/imageformats"
)

var flagFormat string

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Decode an image and write it in another format",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := readInput(args[0])
		if err != nil {
			return err
		}
		defer img.Clear()
		return writeOutput(img, args[1], flagFormat)
	},
}

func init() {
	convertCmd.Flags().StringVar(&flagFormat, "format", "", "output format: png, pfm, tiff or bmp (default: from extension, then config)")
}

func readInput(path string) (*image.DynImage, error) {
	var messages imageformats.MessageLog
	img, _, err := imageformats.ReadImageFile(path, cfg.ImageOptions(), &messages)
	for _, m := range messages.Warnings() {
		log.Warnf("%s: %s", path, m.Text)
	}
	return img, err
}

// outputFormat picks the explicit format, else the output extension, else
// the configured default.
func outputFormat(path, explicit string) string {
	if explicit != "" {
		return strings.ToLower(explicit)
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, f := range imageformats.Formats {
		if f == ext || (ext == "tif" && f == "tiff") {
			return f
		}
	}
	return cfg.OutputFormat
}

func writeOutput(src image.DynImageOrView, path, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := imageformats.Write(src, f, outputFormat(path, format)); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
