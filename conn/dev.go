package conn

import (
	"fmt"
	"os"
)

// Dev is a Linux i2c-dev character device, written to with plain write(2) calls.
type Dev struct {
	f    *os.File
	path string
	addr uint16
}

func (d *Dev) String() string {
	return fmt.Sprintf("i2c-dev %s addr %#02x", d.path, d.addr)
}

func (d *Dev) Close() error {
	return d.f.Close()
}

// Write sends p as one transaction to the selected address.
func (d *Dev) Write(p []byte) (int, error) {
	if d.addr == 0 {
		return 0, ErrNoAddress
	}
	return d.f.Write(p)
}
