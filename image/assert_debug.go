//go:build pixmemdebug

package image

import "fmt"

func assertRow(l UntypedLayout, y int) {
	if y < 0 || y >= l.Height {
		panic(fmt.Sprintf("row %d outside image of height %d", y, l.Height))
	}
}

func assertPixel(l UntypedLayout, x, y int) {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		panic(fmt.Sprintf("pixel (%d,%d) outside %dx%d image", x, y, l.Width, l.Height))
	}
}
