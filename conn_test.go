package oled

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestOpenI2CFailure(t *testing.T) {
	tests := []struct {
		name   string
		config *I2CConfig
	}{
		{"unknown bus", &I2CConfig{Bus: "bogus"}},
		{"missing device", &I2CConfig{Bus: filepath.Join(t.TempDir(), "i2c-9"), Raw: true}},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			c, err := OpenI2C(test.config)
			if !errors.Is(err, ErrOpen) {
				it.Errorf("expected ErrOpen, got %v", err)
			}
			if errors.Is(err, ErrAddress) {
				it.Errorf("open failure reported as addressing failure: %v", err)
			}
			if c != nil {
				it.Errorf("expected no connection, got %s", c)
			}
		})
	}
}

func TestOpenFailure(t *testing.T) {
	d, err := Open(&I2CConfig{Bus: filepath.Join(t.TempDir(), "i2c-9"), Raw: true}, nil)
	if !errors.Is(err, ErrOpen) {
		t.Errorf("expected ErrOpen, got %v", err)
	}
	if d != nil {
		t.Errorf("expected no driver")
	}
}
