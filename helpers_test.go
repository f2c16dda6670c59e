package oled

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

var errBus = errors.New("bus: nack")

// recordConn records every transaction. Writes with the index failAt fail,
// either with errBus or, if short is set, by reporting one byte less.
type recordConn struct {
	writes [][]byte
	failAt int
	short  bool
	closed bool
}

func newRecordConn() *recordConn {
	return &recordConn{failAt: -1}
}

func (c *recordConn) String() string { return "record" }

func (c *recordConn) Close() error {
	c.closed = true
	return nil
}

func (c *recordConn) Write(p []byte) (int, error) {
	i := len(c.writes)
	c.writes = append(c.writes, append([]byte(nil), p...))
	if i == c.failAt {
		if c.short {
			return len(p) - 1, nil
		}
		return 0, errBus
	}
	return len(p), nil
}

func testDriver(t *testing.T) (*Driver, *recordConn, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	c := newRecordConn()
	d, err := New(c, &Config{Logger: logger})
	if err != nil {
		t.Fatal(err)
	}
	return d, c, hook
}

func equalBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
