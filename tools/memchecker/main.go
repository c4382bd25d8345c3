package main

import (
	"fmt"
	"reflect"

	"github.com/kpfaulkner/pixmem/image"
	"github.com/kpfaulkner/pixmem/memory"
	"github.com/kpfaulkner/pixmem/pixel"
)

// displays sizes of the container and view structs to spot padding waste
func memStats(input any) {

	rType := reflect.TypeOf(input)
	fmt.Printf("Size of %s : %d bytes\n", rType.Name(), rType.Size())

	if rType.Kind() == reflect.Struct {
		for i := 0; i < rType.NumField(); i++ {
			field := rType.Field(i)
			fmt.Printf("  Name %s\n", field.Name)
			fmt.Printf("    Offset of    : %d bytes\n", field.Offset)
			fmt.Printf("    Size of      : %d bytes\n", field.Type.Size())
			fmt.Printf("    Alignment of : %d bytes\n", field.Type.Align())
			fmt.Println()
		}
	}
}

func main() {
	memStats(image.TypedLayout{})
	memStats(image.UntypedLayout{})
	memStats(image.Region{})
	memStats(memory.Block{})
	memStats(image.Image[pixel.RGB8]{})
	memStats(image.DynImage{})
	memStats(image.ConstImageView[pixel.RGB8]{})
	memStats(image.MutableDynImageView{})
}
