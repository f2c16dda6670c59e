//go:build !linux

package conn

// OpenDev is only available on Linux.
func OpenDev(_ string) (*Dev, error) {
	return nil, ErrNotSupported
}

// SetAddress is only available on Linux.
func (d *Dev) SetAddress(_ uint16) error {
	return ErrNotSupported
}
