package oled

import (
	"fmt"

	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/oled/conn"
)

// Conn is the bus transport used to reach the controller.
//
// Every Write is one bus transaction; a short write is reported as a failure.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Write sends p in a single transaction.
	Write(p []byte) (int, error)
}

// I2CConfig describes the I²C bus configuration.
type I2CConfig struct {
	// Bus name such as "/dev/i2c-1" or "1", empty selects the first available bus.
	Bus string

	// Addr is the I²C address.
	Addr uint16

	// Raw bypasses periph and talks to the Linux i2c-dev character device directly.
	// Bus must then be a device path.
	Raw bool

	// Speed of the bus clock, zero leaves the bus default. Ignored in Raw mode.
	Speed physic.Frequency
}

// DefaultI2CConfig are the default configuration values.
var DefaultI2CConfig = I2CConfig{
	Bus:  "/dev/i2c-1",
	Addr: 0x3c,
}

// OpenI2C opens the bus and selects the display address.
//
// The address is probed; if nothing acknowledges, [ErrAddress] is returned.
func OpenI2C(config *I2CConfig) (Conn, error) {
	if config == nil {
		config = new(I2CConfig)
		*config = DefaultI2CConfig
	}
	if config.Addr == 0 {
		config.Addr = DefaultI2CConfig.Addr
	}

	if config.Raw {
		c, err := conn.OpenDev(config.Bus)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrOpen, config.Bus, err)
		}
		if err = c.SetAddress(config.Addr); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("%w %#02x: %w", ErrAddress, config.Addr, err)
		}
		return c, nil
	}

	c, err := conn.OpenI2C(config.Bus)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrOpen, config.Bus, err)
	}
	if config.Speed > 0 {
		if err = c.SetSpeed(config.Speed); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("%w %q: %w", ErrOpen, config.Bus, err)
		}
	}
	if err = c.SetAddress(config.Addr); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%w %#02x: %w", ErrAddress, config.Addr, err)
	}
	return c, nil
}
