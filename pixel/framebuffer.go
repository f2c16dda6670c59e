package pixel

import (
	"image"
	"image/color"

	"github.com/BeatGlow/oled/draw"
)

// DataMode is the control byte that marks an I²C transaction as display RAM data.
const DataMode = 0x40

// Image is a drawable monochrome image.
type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// FrameBuffer is a 1-bit per pixel image in the SSD1306 display RAM layout.
//
// Pixels are packed in pages: horizontal bands of 8 rows, one byte per column,
// least significant bit on top. The first byte of Pix is reserved for the
// [DataMode] control byte, so the whole slice can be sent to the controller in
// a single transaction.
type FrameBuffer struct {
	// Rect is the image bounding box, Min is always (0, 0).
	Rect image.Rectangle

	// Pix holds the control byte followed by the packed pixel bytes.
	Pix []byte

	// Stride is the number of bytes per page, equal to the width.
	Stride int
}

// NewFrameBuffer allocates a blank frame buffer of w×h pixels.
func NewFrameBuffer(w, h int) *FrameBuffer {
	pages := (h + 7) / 8 // round up to whole pages
	p := &FrameBuffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, 1+pages*w),
		Stride: w,
	}
	p.Pix[0] = DataMode
	return p
}

// Pages is the number of 8 pixel tall bands.
func (p *FrameBuffer) Pages() int {
	return (p.Rect.Dy() + 7) / 8
}

// Offset returns the index into Pix of the byte at (column, page).
func (p *FrameBuffer) Offset(column, page int) int {
	return 1 + page*p.Stride + column
}

// ByteAt returns the byte at (column, page).
func (p *FrameBuffer) ByteAt(column, page int) byte {
	return p.Pix[p.Offset(column, page)]
}

// SetByte replaces the byte at (column, page).
func (p *FrameBuffer) SetByte(column, page int, v byte) {
	p.Pix[p.Offset(column, page)] = v
}

// Data returns the pixel bytes without the control byte.
func (p *FrameBuffer) Data() []byte {
	return p.Pix[1:]
}

// CopyFrom replaces the pixel bytes with those of src, which must have the same size.
func (p *FrameBuffer) CopyFrom(src *FrameBuffer) {
	copy(p.Pix[1:], src.Pix[1:])
}

// Clone returns a deep copy.
func (p *FrameBuffer) Clone() *FrameBuffer {
	c := &FrameBuffer{
		Rect:   p.Rect,
		Pix:    make([]byte, len(p.Pix)),
		Stride: p.Stride,
	}
	copy(c.Pix, p.Pix)
	return c
}

func (p *FrameBuffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *FrameBuffer) ColorModel() color.Model {
	return MonoModel
}

func (p *FrameBuffer) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}

	var (
		pos = p.Offset(x, y>>3)
		bit = byte(1) << uint(y&7)
	)
	return Mono{
		On: p.Pix[pos]&bit != 0,
	}
}

// Set the pixel at (x, y); points outside the image are ignored.
func (p *FrameBuffer) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	p.SetBit(x, y, monoModel(c).(Mono).On)
}

// SetBit sets or clears the pixel at (x, y), which must be inside the image.
func (p *FrameBuffer) SetBit(x, y int, on bool) {
	var (
		pos = p.Offset(x, y>>3)
		bit = byte(1) << uint(y&7)
	)
	if on {
		p.Pix[pos] |= bit
	} else {
		p.Pix[pos] &^= bit
	}
}

// Clear all pixels, the control byte is preserved.
func (p *FrameBuffer) Clear() {
	p.fill(0x00)
}

func (p *FrameBuffer) Fill(c color.Color) {
	var value byte
	if monoModel(c).(Mono).On {
		value = 0xff
	}
	p.fill(value)
}

func (p *FrameBuffer) fill(value byte) {
	for i := 1; i < len(p.Pix); i++ {
		p.Pix[i] = value
	}
}

// Interface checks.
var (
	_ Image = (*FrameBuffer)(nil)
)
