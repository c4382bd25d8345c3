package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/pixmem/image"
	"github.com/kpfaulkner/pixmem/memory"
	"github.com/kpfaulkner/pixmem/options"
	"github.com/kpfaulkner/pixmem/pixel"
)

const (
	width      = 4096
	height     = 3072
	iterations = 50
)

func run(name string, opts *options.ImageOptions) error {
	src, err := image.NewImage[pixel.RGBA8](image.NewTypedLayout(width, height), opts)
	if err != nil {
		return err
	}
	defer src.Clear()
	image.Fill[pixel.RGBA8](src, pixel.RGBA8{10, 20, 30, 255})

	start := time.Now()
	for count := 0; count < iterations; count++ {
		clone, err := image.Clone[pixel.RGBA8](src, opts)
		if err != nil {
			return err
		}
		region := image.NewRegion(count%64, count%32, width/2, height/2)
		if err := image.Crop(clone, region); err != nil {
			return err
		}
		image.Fill[pixel.RGBA8](clone, pixel.RGBA8{uint8(count), 0, 0, 255})
		clone.Clear()
	}
	fmt.Printf("%s: %d clone/crop/fill rounds took %d ms\n", name, iterations, time.Since(start).Milliseconds())
	return nil
}

func main() {

	//p := profile.Start(profile.MemProfileHeap, profile.ProfilePath("."))
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."))
	defer p.Stop()

	pool := memory.NewPoolAllocator(0)
	allocators := []struct {
		name string
		opts *options.ImageOptions
	}{
		{"aligned", options.NewImageOptions(nil)},
		{"aligned, simd rows", options.NewImageOptions(nil).WithRowAlignment(memory.PreferredRowAlignment())},
		{"pool", options.NewImageOptions(nil).WithAllocator(pool)},
	}

	for _, a := range allocators {
		if err := run(a.name, a.opts); err != nil {
			log.Errorf("%s: %v", a.name, err)
			os.Exit(1)
		}
	}
	hits, misses := pool.Metrics()
	fmt.Printf("pool hits %d misses %d\n", hits, misses)
}
