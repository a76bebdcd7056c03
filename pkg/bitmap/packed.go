package bitmap

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrDecodeAsset reports a packed bitmap whose size does not describe a
// whole number of rows.
var ErrDecodeAsset = errors.New("malformed packed bitmap")

// Packed is a one bit per pixel bitmap. Bits run MSB-first through the byte
// sequence, row-major, with no row padding and no header; the width travels
// alongside the data.
type Packed struct {
	width int
	data  []byte
}

// NewPacked validates and wraps data. The slice is copied.
func NewPacked(width int, data []byte) (*Packed, error) {
	if width <= 0 {
		return nil, errors.Wrapf(ErrDecodeAsset, "width %d", width)
	}
	if len(data) == 0 {
		return nil, errors.Wrap(ErrDecodeAsset, "no data")
	}
	if (len(data)*8)%width != 0 {
		return nil, errors.Wrapf(ErrDecodeAsset, "%d bytes are not whole rows of %d pixels", len(data), width)
	}

	return &Packed{
		width: width,
		data:  append([]byte(nil), data...),
	}, nil
}

// MustPacked is NewPacked for compiled-in assets.
func MustPacked(width int, data []byte) *Packed {
	p, err := NewPacked(width, data)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Packed) Width() int {
	return p.width
}

// Height is derived from the data length.
func (p *Packed) Height() int {
	return len(p.data) * 8 / p.width
}

// Len returns the number of pixels.
func (p *Packed) Len() int {
	return len(p.data) * 8
}

// Bytes returns a copy of the packed data.
func (p *Packed) Bytes() []byte {
	return append([]byte(nil), p.data...)
}

func (p *Packed) String() string {
	return fmt.Sprintf("Packed(%dx%d)", p.Width(), p.Height())
}
