// Package canvas holds the tri-color drawing surface the dashboard is laid
// out on, the primitives drawn onto it and the compositor that places packed
// icons.
package canvas

import (
	"fmt"
	"image"

	"github.com/pkg/errors"

	"weatherpaper/pkg/tricolor"
)

var (
	// ErrDrawFault wraps any failure of the underlying surface. A render
	// pass stops at the first one.
	ErrDrawFault = errors.New("draw fault")
	// ErrSubImageUnsupported is returned for cropped image draws.
	ErrSubImageUnsupported = errors.New("sub-image drawing is not supported")
)

// Pixels is a lazy sequence of inks in row-major order.
type Pixels interface {
	Next() (tricolor.Color, bool)
}

// Target is what the layout draws on.
type Target interface {
	Bounds() image.Rectangle
	// FillContiguous paints r row by row from px. Pixels outside the
	// target are consumed and dropped.
	FillContiguous(r image.Rectangle, px Pixels) error
	DrawLine(l Line) error
	DrawText(t Text) error
}

// Line is a stroked segment.
type Line struct {
	From, To image.Point
	Color    tricolor.Color
	// Width is the stroke width in pixels, at least 1.
	Width int
}

// HAlign positions text horizontally around its anchor.
type HAlign int

const (
	Left HAlign = iota
	Center
	Right
)

// VAlign positions text vertically around its anchor.
type VAlign int

const (
	Baseline VAlign = iota
	Middle
	Bottom
	Top
)

// Text is a string anchored at a point.
type Text struct {
	Value string
	At    image.Point
	Font  Font
	Color tricolor.Color
	H     HAlign
	V     VAlign
}

// Fault marks err as a surface failure while drawing what.
func Fault(err error, what string) error {
	if err == nil || errors.Is(err, ErrDrawFault) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", what, ErrDrawFault, err)
}
