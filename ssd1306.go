package oled

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/oled/draw"
	"github.com/BeatGlow/oled/pixel"
)

// Driver is an SSD1306 display with a double buffered frame.
//
// The pending frame collects drawing operations, the current frame mirrors
// what was last sent to the controller. A Driver is not safe for concurrent use.
type Driver struct {
	c     Conn
	reset gpio.PinOut
	log   logrus.FieldLogger

	current  *pixel.FrameBuffer
	pending  *pixel.FrameBuffer
	commands commandQueue

	// stale forces the next flush to send the whole frame, because the
	// controller RAM is not known to match current.
	stale       bool
	initialized bool
	halted      bool
	stats       FlushStats
}

// New returns a driver that talks to the controller over c. No bus traffic
// happens until [Driver.Init], [Driver.Flush] or a command is sent.
func New(c Conn, config *Config) (*Driver, error) {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}
	if err := config.validate(); err != nil {
		return nil, err
	}

	return &Driver{
		c:        c,
		reset:    config.Reset,
		log:      config.Logger.WithField("display", "ssd1306"),
		current:  pixel.NewFrameBuffer(config.Width, config.Height),
		pending:  pixel.NewFrameBuffer(config.Width, config.Height),
		commands: newCommandQueue(),
	}, nil
}

// Open connects to the display on the I²C bus described by i2cConfig.
func Open(i2cConfig *I2CConfig, config *Config) (*Driver, error) {
	c, err := OpenI2C(i2cConfig)
	if err != nil {
		return nil, err
	}
	d, err := New(c, config)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	return d, nil
}

func (d *Driver) String() string {
	bounds := d.Bounds()
	return fmt.Sprintf("SSD1306 OLED %dx%d on %s", bounds.Dx(), bounds.Dy(), d.c)
}

// Close switches the display off if it was initialised and closes the bus.
func (d *Driver) Close() error {
	if d.initialized && !d.halted {
		if err := d.Show(false); err != nil {
			_ = d.c.Close()
			return err
		}
	}
	return d.c.Close()
}

// Release closes the bus and leaves the display showing its last frame.
func (d *Driver) Release() error {
	return d.c.Close()
}

// Reset pulses the reset pin, if one was configured. The controller loses its
// configuration, so [Driver.Init] must be called afterwards.
func (d *Driver) Reset() error {
	if d.reset == nil || d.reset == gpio.INVALID {
		return nil
	}
	if err := d.reset.Out(gpio.Low); err != nil {
		return err
	}
	time.Sleep(10 * time.Millisecond)
	if err := d.reset.Out(gpio.High); err != nil {
		return err
	}
	d.initialized = false
	d.stale = true
	return nil
}

// Init configures the controller, switches the display on and sends the whole
// pending frame.
func (d *Driver) Init() error {
	d.commands.append(initSequence...)
	if err := d.flushCommands(); err != nil {
		return err
	}
	d.initialized = true
	d.halted = false

	// The controller RAM content is unknown after power up.
	d.stale = true
	return d.Flush()
}

// Command sends a single raw command byte.
func (d *Driver) Command(b byte) error {
	return d.command(b)
}

// Show toggles the display on or off.
func (d *Driver) Show(show bool) error {
	if show {
		if err := d.command(byte(SetDisplayOn)); err != nil {
			return err
		}
		d.halted = false
		return nil
	}
	if err := d.command(byte(SetDisplayOff)); err != nil {
		return err
	}
	d.halted = true
	return nil
}

// Invert toggles between lit pixels on a dark background and the reverse.
func (d *Driver) Invert(invert bool) error {
	if invert {
		return d.command(byte(SetInvertDisplay))
	}
	return d.command(byte(SetNormalDisplay))
}

// SetContrast adjusts the contrast level.
func (d *Driver) SetContrast(level uint8) error {
	return d.command(byte(SetContrast), level)
}

func (d *Driver) command(commands ...byte) error {
	d.commands.append(commands...)
	return d.flushCommands()
}

// flushCommands sends the queued commands as one frame. The queue is emptied
// even if the write fails.
func (d *Driver) flushCommands() error {
	if d.commands.empty() {
		return nil
	}
	defer d.commands.reset()
	return d.send(d.commands.frame)
}

// send writes one frame to the bus.
func (d *Driver) send(f Frame) error {
	n, err := d.c.Write(f)
	if err != nil {
		return fmt.Errorf("%w: %s frame of %d bytes: %w", ErrWrite, f.Mode(), len(f), err)
	}
	if n != len(f) {
		return fmt.Errorf("%w: %s frame: wrote %d of %d bytes", ErrWrite, f.Mode(), n, len(f))
	}
	return nil
}

// Bounds is the display bounding box (dimensions).
func (d *Driver) Bounds() image.Rectangle {
	return d.pending.Bounds()
}

// ColorModel used by the display.
func (d *Driver) ColorModel() color.Model {
	return pixel.MonoModel
}

// At returns the color of the pending pixel at (x, y).
func (d *Driver) At(x, y int) color.Color {
	return d.pending.At(x, y)
}

// Set the pending pixel color at (x, y), points outside the display are ignored.
func (d *Driver) Set(x, y int, c color.Color) {
	d.pending.Set(x, y, c)
}

// SetPixel sets or clears one pending pixel.
func (d *Driver) SetPixel(x, y int, on bool) error {
	if !(image.Point{X: x, Y: y}).In(d.pending.Rect) {
		return fmt.Errorf("%w: pixel (%d,%d)", ErrBounds, x, y)
	}
	d.pending.SetBit(x, y, on)
	return nil
}

// Circle draws a circle outline of radius r around (cx, cy).
func (d *Driver) Circle(cx, cy, r int) error {
	if err := draw.Circle(d.pending, image.Pt(cx, cy), r, pixel.On); err != nil {
		return fmt.Errorf("%w: circle (%d,%d) radius %d", err, cx, cy, r)
	}
	return nil
}

// FilledCircle draws a solid disc of radius r around (cx, cy).
func (d *Driver) FilledCircle(cx, cy, r int) error {
	if err := draw.FilledCircle(d.pending, image.Pt(cx, cy), r, pixel.On); err != nil {
		return fmt.Errorf("%w: disc (%d,%d) radius %d", err, cx, cy, r)
	}
	return nil
}

// Clear the pending frame.
func (d *Driver) Clear() {
	d.pending.Clear()
}

// Fill switches every pending pixel on or off.
func (d *Driver) Fill(on bool) {
	if on {
		d.pending.Fill(pixel.On)
	} else {
		d.pending.Fill(pixel.Off)
	}
}

// FillRandom replaces every pending byte with random noise, for testing the
// panel. A nil source uses the global one.
func (d *Driver) FillRandom(source *rand.Rand) {
	data := d.pending.Data()
	for i := range data {
		if source != nil {
			data[i] = byte(source.Intn(256))
		} else {
			data[i] = byte(rand.Intn(256))
		}
	}
}

// Current returns a copy of the frame last sent to the controller.
func (d *Driver) Current() *pixel.FrameBuffer {
	return d.current.Clone()
}

// Interface checks.
var (
	_ draw.Image = (*Driver)(nil)
)
