// Package draw contains the drawing primitives used to populate a frame buffer.
//
// Primitives only mutate the destination image, they never talk to a display.
package draw

import (
	"errors"
	"image"

	"golang.org/x/image/draw"
)

// ErrBounds is returned when a shape does not fit inside the destination image.
var ErrBounds = errors.New("draw: coordinates out of bounds")

// Image is an alias for [golang.org/x/image/draw.Image].
type Image = draw.Image

// Op is an alias for [golang.org/x/image/draw.Op].
type Op = draw.Op

const (
	// Over specifies ``(src in mask) over dst''.
	Over Op = draw.Over

	// Src specifies ``src in mask''.
	Src Op = draw.Src
)

// Draw calls [DrawMask] with a nil mask.
func Draw(dst Image, r image.Rectangle, src image.Image, sp image.Point, op Op) {
	DrawMask(dst, r, src, sp, nil, image.Point{}, op)
}

// DrawMask aligns r.Min in dst with sp in src and mp in mask and then replaces the rectangle r
// in dst with the result of a Porter-Duff composition. A nil mask is treated as opaque.
func DrawMask(dst Image, r image.Rectangle, src image.Image, sp image.Point, mask image.Image, mp image.Point, op Op) {
	draw.DrawMask(dst, r, src, sp, mask, mp, op)
}

// Fit scales src to cover all of dst, using nearest neighbour sampling so thin
// lines stay crisp on 1-bit displays.
func Fit(dst Image, src image.Image) {
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
}

func inside(dst Image, r image.Rectangle) bool {
	return r.In(dst.Bounds())
}
