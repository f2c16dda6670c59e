package draw

import (
	"image"
	"image/color"
)

// Line draws a line between two points.
func Line(dst Image, a, b image.Point, c color.Color) {
	bresenham(dst, a.X, a.Y, b.X, b.Y, c)
}

// HorizontalLine draws a line between (x,y) and (x+w-1,y).
func HorizontalLine(dst Image, x, y, w int, c color.Color) {
	bresenham(dst, x, y, x+w-1, y, c)
}

// VerticalLine draws a line between (x,y) and (x,y+h-1).
func VerticalLine(dst Image, x, y, h int, c color.Color) {
	bresenham(dst, x, y, x, y+h-1, c)
}

// Rectangle draws the outline of rect.
func Rectangle(dst Image, rect image.Rectangle, c color.Color) error {
	if rect.Empty() {
		return nil
	}
	if !inside(dst, rect) {
		return ErrBounds
	}
	var (
		x = rect.Min.X
		y = rect.Min.Y
		w = rect.Dx()
		h = rect.Dy()
	)
	HorizontalLine(dst, x, y, w, c)
	HorizontalLine(dst, x, y+h-1, w, c)
	VerticalLine(dst, x, y, h, c)
	VerticalLine(dst, x+w-1, y, h, c)
	return nil
}

// Circle draws a one pixel wide circle outline of radius r around center.
//
// The whole call is rejected with [ErrBounds] if any part of the circle falls
// outside dst, no pixel is changed in that case.
func Circle(dst Image, center image.Point, r int, c color.Color) error {
	if err := checkCircle(dst, center, r); err != nil {
		return err
	}

	var (
		x0 = center.X
		y0 = center.Y
		x  = 0
		y  = r
		p  = 3 - 2*r
	)
	for x <= y {
		dst.Set(x0+x, y0+y, c)
		dst.Set(x0-x, y0+y, c)
		dst.Set(x0+x, y0-y, c)
		dst.Set(x0-x, y0-y, c)
		dst.Set(x0+y, y0+x, c)
		dst.Set(x0-y, y0+x, c)
		dst.Set(x0+y, y0-x, c)
		dst.Set(x0-y, y0-x, c)

		if p < 0 {
			p += 4*x + 6
		} else {
			p += 4*(x-y) + 10
			y--
		}
		x++
	}
	return nil
}

// FilledCircle draws a solid disc of radius r around center by painting
// horizontal spans at every step of the circle, so no separate fill pass is needed.
//
// Bounds are handled like [Circle].
func FilledCircle(dst Image, center image.Point, r int, c color.Color) error {
	if err := checkCircle(dst, center, r); err != nil {
		return err
	}

	var (
		x0 = center.X
		y0 = center.Y
		x  = 0
		y  = r
		p  = 3 - 2*r
	)
	for x <= y {
		HorizontalLine(dst, x0-x, y0+y, 2*x+1, c)
		HorizontalLine(dst, x0-x, y0-y, 2*x+1, c)
		HorizontalLine(dst, x0-y, y0+x, 2*y+1, c)
		HorizontalLine(dst, x0-y, y0-x, 2*y+1, c)

		if p < 0 {
			p += 4*x + 6
		} else {
			p += 4*(x-y) + 10
			y--
		}
		x++
	}
	return nil
}

func checkCircle(dst Image, center image.Point, r int) error {
	if r < 0 {
		return ErrBounds
	}
	box := image.Rect(center.X-r, center.Y-r, center.X+r+1, center.Y+r+1)
	if !inside(dst, box) {
		return ErrBounds
	}
	return nil
}

// Generalized with integer
func bresenham(dst Image, x1, y1, x2, y2 int, c color.Color) {
	var dx, dy, e, slope int

	// Because drawing p1 -> p2 is equivalent to draw p2 -> p1,
	// I sort points in x-axis order to handle only half of possible cases.
	if x1 > x2 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}

	dx, dy = x2-x1, y2-y1
	// Because point is x-axis ordered, dx cannot be negative
	if dy < 0 {
		dy = -dy
	}

	switch {

	// Is line a point ?
	case x1 == x2 && y1 == y2:
		dst.Set(x1, y1, c)

	// Is line an horizontal ?
	case y1 == y2:
		for ; dx != 0; dx-- {
			dst.Set(x1, y1, c)
			x1++
		}
		dst.Set(x1, y1, c)

	// Is line a vertical ?
	case x1 == x2:
		if y1 > y2 {
			y1, y2 = y2, y1
		}
		for ; dy != 0; dy-- {
			dst.Set(x1, y1, c)
			y1++
		}
		dst.Set(x1, y1, c)

	// Is line a diagonal ?
	case dx == dy:
		step := 1
		if y1 > y2 {
			step = -1
		}
		for ; dx != 0; dx-- {
			dst.Set(x1, y1, c)
			x1++
			y1 += step
		}
		dst.Set(x1, y1, c)

	// wider than high ?
	case dx > dy:
		step := 1
		if y1 > y2 {
			step = -1
		}
		dy, e, slope = 2*dy, dx, 2*dx
		for ; dx != 0; dx-- {
			dst.Set(x1, y1, c)
			x1++
			e -= dy
			if e < 0 {
				y1 += step
				e += slope
			}
		}
		dst.Set(x2, y2, c)

	// higher than wide.
	default:
		step := 1
		if y1 > y2 {
			step = -1
		}
		dx, e, slope = 2*dx, dy, 2*dy
		for ; dy != 0; dy-- {
			dst.Set(x1, y1, c)
			y1 += step
			e -= dx
			if e < 0 {
				x1++
				e += slope
			}
		}
		dst.Set(x2, y2, c)
	}
}
