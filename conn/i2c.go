// Package conn implements the I²C transports used to reach the display controller.
package conn

import (
	"errors"
	"fmt"
	"io"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
)

// Errors
var (
	ErrNoAddress    = errors.New("conn: no target address selected")
	ErrNotSupported = errors.New("conn: not supported on this platform")
)

// probe is a command mode control byte without commands; the controller
// acknowledges it without changing state.
var probe = []byte{0x00}

// I2C is a periph.io I²C bus with a selected target address.
type I2C struct {
	bus i2c.Bus
	dev *i2c.Dev
}

// OpenI2C opens a periph.io I²C bus by name, an empty name opens the first bus.
//
// periph host drivers must be initialised before, see host.Init.
func OpenI2C(name string) (*I2C, error) {
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, err
	}
	return NewI2C(bus), nil
}

// NewI2C wraps an already open bus.
func NewI2C(bus i2c.Bus) *I2C {
	return &I2C{bus: bus}
}

func (c *I2C) String() string {
	if c.dev == nil {
		return fmt.Sprintf("I²C bus %s", c.bus)
	}
	return fmt.Sprintf("I²C bus %s addr %#02x", c.bus, c.dev.Addr)
}

// SetAddress selects the target and checks that it acknowledges.
func (c *I2C) SetAddress(addr uint16) error {
	dev := &i2c.Dev{Bus: c.bus, Addr: addr}
	if err := dev.Tx(probe, nil); err != nil {
		return err
	}
	c.dev = dev
	return nil
}

// SetSpeed changes the bus clock.
func (c *I2C) SetSpeed(f physic.Frequency) error {
	return c.bus.SetSpeed(f)
}

func (c *I2C) Close() error {
	if closer, ok := c.bus.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *I2C) Write(p []byte) (int, error) {
	if c.dev == nil {
		return 0, ErrNoAddress
	}
	if err := c.dev.Tx(p, nil); err != nil {
		return 0, err
	}
	return len(p), nil
}
