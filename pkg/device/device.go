// Package device defines the panel a finished frame is shown on.
package device

import (
	"image"

	"github.com/pkg/errors"

	"weatherpaper/pkg/canvas"
)

var ErrSize = errors.New("frame does not match panel")

// Panel is a tri-color display. Show is slow on real hardware, a full
// refresh takes tens of seconds.
type Panel interface {
	Init() error
	Show(c *canvas.Canvas) error
	// Sleep powers the panel down until the next Init.
	Sleep() error
	// Halt releases the panel for good.
	Halt() error
}

// CheckSize fails unless c is exactly size.
func CheckSize(c *canvas.Canvas, size image.Point) error {
	if got := c.Bounds().Size(); got != size {
		return errors.Wrapf(ErrSize, "frame %v, panel %v", got, size)
	}
	return nil
}
