package pixel

import (
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func TestFrameBuffer(t *testing.T) {
	testCases := []image.Point{
		{},
		image.Pt(1, 1),
		image.Pt(2, 2),
		image.Pt(128, 32),
		image.Pt(128, 64),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			i := NewFrameBuffer(test.X, test.Y)

			if v := i.Bounds().Size(); !v.Eq(test) {
				it.Errorf("expected image size %s, got %s", test, v)
			}
			if v := i.ColorModel(); v != MonoModel {
				it.Errorf("expected color model %T, got %T", MonoModel, v)
			}
			if want := 1 + test.X*((test.Y+7)/8); len(i.Pix) != want {
				it.Errorf("expected %d bytes, got %d", want, len(i.Pix))
			}
			if i.Pix[0] != DataMode {
				it.Errorf("expected control byte %#02x, got %#02x", DataMode, i.Pix[0])
			}

			it.Run("in-bounds", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := testRandomColor()
						i.Set(x, y, c)
						if v := MonoModel.Convert(c); i.At(x, y) != v {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
						}
					}
				}
			})

			it.Run("out-bounds", func(itt *testing.T) {
				before := append([]byte(nil), i.Pix...)
				for y := -test.Y - 1; y < test.Y*2+1; y++ {
					for x := -test.X - 1; x < test.X*2+1; x++ {
						if (image.Point{X: x, Y: y}).In(i.Rect) {
							continue
						}
						i.Set(x, y, On)
						if v := i.At(x, y); v != color.Transparent {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected transparent", x, y, v)
						}
					}
				}
				for j := range before {
					if before[j] != i.Pix[j] {
						itt.Fatalf("byte %d changed by out of bounds Set", j)
					}
				}
			})

			it.Run("fill", func(itt *testing.T) {
				i.Fill(color.White)
				if i.Pix[0] != DataMode {
					itt.Fatalf("control byte overwritten by Fill")
				}
				for j, v := range i.Data() {
					if v != 0xff {
						itt.Fatalf("byte %d is %#02x after fill", j, v)
					}
				}
			})

			it.Run("clear", func(itt *testing.T) {
				i.Clear()
				if i.Pix[0] != DataMode {
					itt.Fatalf("control byte overwritten by Clear")
				}
				for j, v := range i.Data() {
					if v != 0x00 {
						itt.Fatalf("byte %d is %#02x after clear", j, v)
					}
				}
			})
		})
	}
}

func TestFrameBufferLayout(t *testing.T) {
	i := NewFrameBuffer(128, 64)

	i.SetBit(5, 3, true)
	if v := i.ByteAt(5, 0); v != 0x08 {
		t.Errorf("expected (5,0) to be 0x08, got %#02x", v)
	}
	if v := i.Pix[1+5]; v != 0x08 {
		t.Errorf("expected storage offset 6 to be 0x08, got %#02x", v)
	}

	i.SetBit(127, 63, true)
	if off := i.Offset(127, 7); off != len(i.Pix)-1 {
		t.Errorf("expected last cell at offset %d, got %d", len(i.Pix)-1, off)
	}
	if v := i.ByteAt(127, 7); v != 0x80 {
		t.Errorf("expected (127,7) to be 0x80, got %#02x", v)
	}

	i.SetBit(5, 3, false)
	if v := i.ByteAt(5, 0); v != 0x00 {
		t.Errorf("expected (5,0) to be cleared, got %#02x", v)
	}
}

func TestFrameBufferClone(t *testing.T) {
	i := NewFrameBuffer(16, 16)
	i.SetByte(3, 1, 0xaa)

	c := i.Clone()
	c.SetByte(3, 1, 0x55)
	if v := i.ByteAt(3, 1); v != 0xaa {
		t.Errorf("clone aliases the original buffer")
	}

	i.CopyFrom(c)
	if v := i.ByteAt(3, 1); v != 0x55 {
		t.Errorf("expected copied byte 0x55, got %#02x", v)
	}
}

func testRandomColor() color.Color {
	return color.RGBA{
		R: uint8(rand.Intn(255)),
		G: uint8(rand.Intn(255)),
		B: uint8(rand.Intn(255)),
		A: 0xFF,
	}
}
