package main

import (
	"github.com/spf13/cobra"

	"github.com/kpfaulkner/pixmem/image"
)

var (
	flagX0       int
	flagY0       int
	flagWidth    int
	flagHeight   int
	flagSanitize bool
)

var cropCmd = &cobra.Command{
	Use:   "crop <input> <output>",
	Short: "Crop a region out of an image",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := readInput(args[0])
		if err != nil {
			return err
		}
		defer img.Clear()

		region := image.NewRegion(flagX0, flagY0, flagWidth, flagHeight)
		if flagSanitize {
			region = region.Sanitize(img.Width(), img.Height())
		}
		if err := image.CropDyn(img, region); err != nil {
			return err
		}
		return writeOutput(img, args[1], flagFormat)
	},
}

func init() {
	cropCmd.Flags().IntVar(&flagX0, "x", 0, "left edge of the region")
	cropCmd.Flags().IntVar(&flagY0, "y", 0, "top edge of the region")
	cropCmd.Flags().IntVar(&flagWidth, "width", 0, "region width")
	cropCmd.Flags().IntVar(&flagHeight, "height", 0, "region height")
	cropCmd.Flags().BoolVar(&flagSanitize, "clip", false, "clip the region to the image instead of failing")
	cropCmd.Flags().StringVar(&flagFormat, "format", "", "output format (default: from extension, then config)")
}
