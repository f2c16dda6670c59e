// Package oled drives a 128x64 SSD1306 monochrome OLED controller over I²C.
//
// Drawing calls only change an in-memory frame; nothing is sent until [Driver.Flush],
// which compares the pending frame with the one last sent and transmits the smallest
// rectangle of display RAM that covers every change.
package oled

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/oled/draw"
)

// Display geometry.
const (
	Width  = 128
	Height = 64
	Pages  = Height / 8
)

// debug enables flush logging on the default logger.
var debug = os.Getenv("DISPLAY_DEBUG") != ""

// Errors
var (
	ErrOpen    = errors.New("oled: unable to open bus")
	ErrAddress = errors.New("oled: no device acknowledged address")
	ErrWrite   = errors.New("oled: bus write failed")
	ErrBounds  = draw.ErrBounds
	ErrSize    = errors.New("oled: unsupported display size")
)

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels, only 128 is supported.
	Width int

	// Height of the display in pixels, only 64 is supported.
	Height int

	// Reset pin, optional.
	Reset gpio.PinOut

	// Logger receives debug output about flushes, defaults to the standard logrus
	// logger. If DISPLAY_DEBUG is set in the environment the default logger
	// logs at debug level.
	Logger logrus.FieldLogger
}

// DefaultConfig is the configuration used when none is given.
var DefaultConfig = Config{
	Width:  Width,
	Height: Height,
}

func (config *Config) validate() error {
	if config.Width == 0 {
		config.Width = Width
	}
	if config.Height == 0 {
		config.Height = Height
	}
	if config.Width != Width || config.Height != Height {
		return fmt.Errorf("%w %dx%d", ErrSize, config.Width, config.Height)
	}
	if config.Logger == nil {
		if debug {
			logger := logrus.New()
			logger.SetLevel(logrus.DebugLevel)
			config.Logger = logger
		} else {
			config.Logger = logrus.StandardLogger()
		}
	}
	return nil
}
