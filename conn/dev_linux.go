package conn

import (
	"os"

	"github.com/BeatGlow/oled/internal/ioctl"
)

// From <linux/i2c-dev.h>
const i2cSlave = 0x0703

// OpenDev opens an i2c-dev device by path, typically /dev/i2c-[0..x].
func OpenDev(path string) (*Dev, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return &Dev{f: f, path: path}, nil
}

// SetAddress binds the file to a target address and checks that it acknowledges.
func (d *Dev) SetAddress(addr uint16) error {
	if err := ioctl.Call(d.f.Fd(), i2cSlave, uintptr(addr)); err != nil {
		return err
	}
	d.addr = addr
	if _, err := d.f.Write(probe); err != nil {
		d.addr = 0
		return err
	}
	return nil
}
