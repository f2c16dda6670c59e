package conn

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
)

var errNack = errors.New("i2c: nack")

// nackBus fails every transaction.
type nackBus struct {
	closed bool
}

func (b *nackBus) String() string                    { return "nack" }
func (b *nackBus) Tx(_ uint16, _, _ []byte) error    { return errNack }
func (b *nackBus) SetSpeed(_ physic.Frequency) error { return nil }
func (b *nackBus) Close() error                      { b.closed = true; return nil }

func TestI2CWrite(t *testing.T) {
	bus := &i2ctest.Record{}
	c := NewI2C(bus)

	if _, err := c.Write([]byte{0x40, 0x01}); !errors.Is(err, ErrNoAddress) {
		t.Fatalf("expected ErrNoAddress before SetAddress, got %v", err)
	}
	if err := c.SetAddress(0x3c); err != nil {
		t.Fatal(err)
	}
	n, err := c.Write([]byte{0x40, 0x01, 0x02})
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("expected 3 bytes written, got %d", n)
	}

	if len(bus.Ops) != 2 {
		t.Fatalf("expected probe and write, got %d transactions", len(bus.Ops))
	}
	probe, write := bus.Ops[0], bus.Ops[1]
	if probe.Addr != 0x3c || len(probe.W) != 1 || probe.W[0] != 0x00 {
		t.Errorf("unexpected probe %+v", probe)
	}
	if write.Addr != 0x3c || string(write.W) != "\x40\x01\x02" {
		t.Errorf("unexpected write %+v", write)
	}
	if want := "I²C bus record addr 0x3c"; c.String() != want {
		t.Errorf("expected %q, got %q", want, c.String())
	}
	if err = c.Close(); err != nil {
		t.Errorf("close of a bus without Close failed: %v", err)
	}
}

func TestI2CAddressNack(t *testing.T) {
	bus := new(nackBus)
	c := NewI2C(bus)

	if err := c.SetAddress(0x3d); !errors.Is(err, errNack) {
		t.Fatalf("expected nack, got %v", err)
	}
	if _, err := c.Write([]byte{0x00, 0xaf}); !errors.Is(err, ErrNoAddress) {
		t.Errorf("expected no address after failed probe, got %v", err)
	}
	if err := c.Close(); err != nil || !bus.closed {
		t.Errorf("bus not closed: %v", err)
	}
}

func TestI2CWriteFailure(t *testing.T) {
	bus := new(nackBus)
	c := &I2C{bus: bus, dev: &i2c.Dev{Bus: bus, Addr: 0x3c}}

	n, err := c.Write([]byte{0x40, 0xff})
	if !errors.Is(err, errNack) || n != 0 {
		t.Errorf("expected 0 bytes and nack, got %d, %v", n, err)
	}
	if err = c.SetSpeed(400 * physic.KiloHertz); err != nil {
		t.Errorf("set speed: %v", err)
	}
}
