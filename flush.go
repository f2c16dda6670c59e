package oled

import (
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/BeatGlow/oled/pixel"
)

// Region is a rectangle of display RAM in column and page units, bounds inclusive.
type Region struct {
	MinColumn, MaxColumn int
	MinPage, MaxPage     int
}

// FullRegion covers the whole display.
var FullRegion = Region{MinColumn: 0, MaxColumn: Width - 1, MinPage: 0, MaxPage: Pages - 1}

func (r Region) String() string {
	return fmt.Sprintf("columns %d-%d pages %d-%d", r.MinColumn, r.MaxColumn, r.MinPage, r.MaxPage)
}

// Empty reports whether the region contains no cells.
func (r Region) Empty() bool {
	return r.MaxColumn < r.MinColumn || r.MaxPage < r.MinPage
}

// Columns is the number of columns covered.
func (r Region) Columns() int {
	if r.Empty() {
		return 0
	}
	return r.MaxColumn - r.MinColumn + 1
}

// Pages is the number of pages covered.
func (r Region) Pages() int {
	if r.Empty() {
		return 0
	}
	return r.MaxPage - r.MinPage + 1
}

// Area is the number of bytes covered.
func (r Region) Area() int {
	return r.Columns() * r.Pages()
}

// Rectangle converts the region to pixel coordinates.
func (r Region) Rectangle() image.Rectangle {
	if r.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(r.MinColumn, r.MinPage*8, r.MaxColumn+1, (r.MaxPage+1)*8)
}

func (r Region) in(columns, pages int) bool {
	return !r.Empty() &&
		r.MinColumn >= 0 && r.MaxColumn < columns &&
		r.MinPage >= 0 && r.MaxPage < pages
}

// FlushStats describes the last [Driver.Flush].
type FlushStats struct {
	// Window programmed into the controller.
	Window Region

	// Cells is the number of bytes that differed.
	Cells int

	// Bytes is the size of the data transaction, including the control byte.
	// It is zero when nothing was sent.
	Bytes int

	// Writes is the number of bus transactions issued.
	Writes int
}

// Stats returns statistics of the last flush.
func (d *Driver) Stats() FlushStats {
	return d.stats
}

// dirtyRegion compares two frames and returns the bounding region of all
// bytes that differ, along with their count. The region is empty if the
// frames are equal.
func dirtyRegion(current, pending *pixel.FrameBuffer) (Region, int) {
	var (
		columns = pending.Stride
		pages   = pending.Pages()
		dirty   = Region{MinColumn: columns, MaxColumn: -1, MinPage: pages, MaxPage: -1}
		cells   int
	)
	for page := 0; page < pages; page++ {
		for column := 0; column < columns; column++ {
			if current.ByteAt(column, page) == pending.ByteAt(column, page) {
				continue
			}
			cells++
			dirty.MinColumn = min(dirty.MinColumn, column)
			dirty.MaxColumn = max(dirty.MaxColumn, column)
			dirty.MinPage = min(dirty.MinPage, page)
			dirty.MaxPage = max(dirty.MaxPage, page)
		}
	}
	return dirty, cells
}

// collect copies the pending bytes inside r into a data frame, in the order
// the controller advances its write cursor: columns first, then pages.
func collect(pending *pixel.FrameBuffer, r Region) Frame {
	f := make(Frame, 1, 1+r.Area())
	f[0] = byte(DataMode)
	for page := r.MinPage; page <= r.MaxPage; page++ {
		off := pending.Offset(r.MinColumn, page)
		f = append(f, pending.Pix[off:off+r.Columns()]...)
	}
	return f
}

// Invalidate marks the controller RAM as unknown, the next flush sends the
// whole frame.
func (d *Driver) Invalidate() {
	d.stale = true
}

// SetWindow programs the controller address window. Data sent afterwards
// fills the window left to right, top to bottom.
func (d *Driver) SetWindow(r Region) error {
	if !r.in(d.pending.Stride, d.pending.Pages()) {
		return fmt.Errorf("%w: window %s", ErrBounds, r)
	}
	d.commands.append(
		byte(SetColumnAddr), byte(r.MinColumn), byte(r.MaxColumn),
		byte(SetPageAddr), byte(r.MinPage), byte(r.MaxPage),
	)
	return d.flushCommands()
}

// Flush sends the pending frame to the display.
//
// Only the smallest region containing every changed byte is sent: the address
// window is set to that region and its bytes are written in one transaction.
// Nothing is sent if the pending frame equals the current one. On success the
// pending frame becomes the current frame; on failure both are left untouched
// so the flush can be retried.
func (d *Driver) Flush() error {
	d.stats = FlushStats{}

	region, cells := dirtyRegion(d.current, d.pending)
	if d.stale {
		region = FullRegion
	} else if cells == 0 {
		return nil
	}

	if err := d.SetWindow(region); err != nil {
		return err
	}

	data := collect(d.pending, region)
	if err := d.send(data); err != nil {
		// Part of the window may have been written.
		d.stale = true
		return err
	}

	d.current.CopyFrom(d.pending)
	d.stale = false
	d.stats = FlushStats{
		Window: region,
		Cells:  cells,
		Bytes:  len(data),
		Writes: 2,
	}
	d.log.WithFields(logrus.Fields{
		"window": region.String(),
		"cells":  cells,
		"bytes":  len(data),
	}).Debug("flushed frame")
	return nil
}
