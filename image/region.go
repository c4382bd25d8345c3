package image

import (
	"fmt"

	"github.com/kpfaulkner/pixmem/util"
)

// Region is an axis-aligned rectangle of pixels. X1 and Y1 are exclusive.
type Region struct {
	X0     int
	Y0     int
	Width  int
	Height int
}

func NewRegion(x0, y0, width, height int) Region {
	return Region{X0: x0, Y0: y0, Width: width, Height: height}
}

func (r Region) X1() int {
	return r.X0 + r.Width
}

func (r Region) Y1() int {
	return r.Y0 + r.Height
}

func (r Region) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Sanitize clips the region to a width x height image.
func (r Region) Sanitize(width, height int) Region {
	x0 := util.Min(util.Max(r.X0, 0), width)
	y0 := util.Min(util.Max(r.Y0, 0), height)
	x1 := util.Min(util.Max(r.X1(), x0), width)
	y1 := util.Min(util.Max(r.Y1(), y0), height)
	return Region{X0: x0, Y0: y0, Width: x1 - x0, Height: y1 - y0}
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d) %dx%d", r.X0, r.Y0, r.Width, r.Height)
}

func (r Region) within(width, height int) bool {
	return r.X0 >= 0 && r.Y0 >= 0 && r.Width >= 0 && r.Height >= 0 &&
		r.X1() <= width && r.Y1() <= height
}

func (r Region) check(l UntypedLayout) error {
	if !r.within(l.Width, l.Height) {
		return fmt.Errorf("region %s outside %dx%d image: %w", r, l.Width, l.Height, ErrOutOfRange)
	}
	return nil
}
