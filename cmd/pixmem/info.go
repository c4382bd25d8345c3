package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kpfaulkner/pixmem/image"
	"github.com/kpfaulkner/pixmem/imageformats"
	"github.com/kpfaulkner/pixmem/util"
)

var flagJSON bool

type imageInfo struct {
	Path              string   `json:"path"`
	Format            string   `json:"format"`
	Width             int      `json:"width"`
	Height            int      `json:"height"`
	NrChannels        int      `json:"nr_channels"`
	NrBytesPerChannel int      `json:"nr_bytes_per_channel"`
	StrideBytes       int      `json:"stride_bytes"`
	PixelFormat       string   `json:"pixel_format"`
	SampleFormat      string   `json:"sample_format"`
	Capacity          int      `json:"capacity"`
	Packed            bool     `json:"packed"`
	Warnings          []string `json:"warnings,omitempty"`
}

var infoCmd = &cobra.Command{
	Use:   "info <image>",
	Short: "Print the layout and semantics of a decoded image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInfo(cmd.OutOrStdout(), args[0], flagJSON)
	},
}

func init() {
	infoCmd.Flags().BoolVar(&flagJSON, "json", false, "output as JSON")
}

func describeImage(path, format string, img *image.DynImage, messages *imageformats.MessageLog) imageInfo {
	info := imageInfo{
		Path:              path,
		Format:            format,
		Width:             img.Width(),
		Height:            img.Height(),
		NrChannels:        img.NrChannels(),
		NrBytesPerChannel: img.NrBytesPerChannel(),
		StrideBytes:       img.StrideBytes(),
		PixelFormat:       img.PixelFormat().String(),
		SampleFormat:      img.SampleFormat().String(),
		Capacity:          img.Capacity(),
		Packed:            img.IsPacked(),
	}
	for _, m := range messages.Warnings() {
		info.Warnings = append(info.Warnings, m.Text)
	}
	return info
}

func runInfo(out io.Writer, path string, asJSON bool) error {
	var messages imageformats.MessageLog
	img, format, err := imageformats.ReadImageFile(path, cfg.ImageOptions(), &messages)
	if err != nil {
		return err
	}
	defer img.Clear()

	info := describeImage(path, format, img, &messages)
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Fprintf(out, "%s: %s %dx%d, %d channel(s) of %d byte(s), %s/%s\n",
		info.Path, info.Format, info.Width, info.Height, info.NrChannels, info.NrBytesPerChannel, info.PixelFormat, info.SampleFormat)
	fmt.Fprintf(out, "stride %d bytes (%s), buffer %d bytes\n",
		info.StrideBytes, util.IfThenElse(info.Packed, "packed", "padded"), info.Capacity)
	for _, w := range info.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	return nil
}
