package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/oled"
)

// fileConfig is the optional YAML configuration file.
type fileConfig struct {
	Bus      string `yaml:"bus"`
	Addr     uint16 `yaml:"addr"`
	Raw      bool   `yaml:"raw"`
	SpeedKHz int64  `yaml:"speedKHz"`
	Reset    string `yaml:"reset"`
	Contrast *uint8 `yaml:"contrast"`
}

func defaultFileConfig() *fileConfig {
	return &fileConfig{
		Bus:  oled.DefaultI2CConfig.Bus,
		Addr: oled.DefaultI2CConfig.Addr,
	}
}

// loadConfig reads name over the defaults. A missing file is not an error.
func loadConfig(name string) (*fileConfig, error) {
	config := defaultFileConfig()
	if name == "" {
		return config, nil
	}

	raw, err := os.ReadFile(name)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	} else if err != nil {
		return nil, err
	}
	if err = yaml.Unmarshal(raw, config); err != nil {
		return nil, fmt.Errorf("unable to interpret config file %s: %w", name, err)
	}
	if err = config.setAddr(uint64(config.Addr)); err != nil {
		return nil, fmt.Errorf("config file %s: %w", name, err)
	}
	return config, nil
}

// maxAddr is the highest 7-bit I²C address.
const maxAddr = 0x7f

// setAddr sets the device address, rejecting values that do not fit in 7 bits.
func (config *fileConfig) setAddr(addr uint64) error {
	if addr > maxAddr {
		return fmt.Errorf("address %#x out of range 0x00-%#02x", addr, maxAddr)
	}
	config.Addr = uint16(addr)
	return nil
}

func (config *fileConfig) i2c() *oled.I2CConfig {
	return &oled.I2CConfig{
		Bus:   config.Bus,
		Addr:  config.Addr,
		Raw:   config.Raw,
		Speed: physic.Frequency(config.SpeedKHz) * physic.KiloHertz,
	}
}
