package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/pixmem/imageformats"
	"github.com/kpfaulkner/pixmem/options"
	"github.com/kpfaulkner/pixmem/util"
)

func main() {
	infile := flag.String("i", "", "input image file")
	outfile := flag.String("o", "", "output png file")
	iccFile := flag.String("icc", "", "optional ICC profile to embed")
	rowAlignment := flag.Int("align", 0, "row alignment in bytes, 0 for packed rows")
	flag.Parse()

	if *infile == "" || *outfile == "" {
		fmt.Printf("both input and output files must be specified\n")
		os.Exit(1)
	}

	opts := options.NewImageOptions(nil).WithRowAlignment(*rowAlignment)
	var messages imageformats.MessageLog

	start := time.Now()
	img, format, err := imageformats.ReadImageFile(*infile, opts, &messages)
	if err != nil {
		log.Fatalf("decoding %s: %v", *infile, err)
	}
	defer img.Clear()
	for _, m := range messages.Warnings() {
		log.Warnf("%s", m.Text)
	}
	fmt.Printf("decoding %s took %d ms\n", format, time.Since(start).Milliseconds())
	fmt.Printf("layout %s, semantics %s\n", img.Layout(), img.Semantics())
	fmt.Printf("stride %d bytes, divisible by %d\n", img.StrideBytes(), util.LargestPowerOfTwoDivisor(uint64(img.StrideBytes()), 128))

	var icc []byte
	if *iccFile != "" {
		if icc, err = os.ReadFile(*iccFile); err != nil {
			log.Fatalf("reading ICC profile: %v", err)
		}
	}

	startEncoding := time.Now()
	f, err := os.Create(*outfile)
	if err != nil {
		log.Fatalf("creating %s: %v", *outfile, err)
	}
	if err := imageformats.WritePNG(img, f, icc); err != nil {
		f.Close()
		log.Fatalf("encoding: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("closing %s: %v", *outfile, err)
	}
	fmt.Printf("encoding took %d ms\n", time.Since(startEncoding).Milliseconds())
}
