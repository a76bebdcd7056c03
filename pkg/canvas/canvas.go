package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"weatherpaper/pkg/tricolor"
)

var _ draw.Image = &Canvas{}
var _ Target = &Canvas{}

// Canvas is an in-memory tri-color frame. It belongs to one render pass and
// is not safe for concurrent use.
type Canvas struct {
	rect image.Rectangle
	pix  []tricolor.Color
}

// New returns a white canvas of w×h pixels.
func New(w, h int) *Canvas {
	return &Canvas{
		rect: image.Rect(0, 0, w, h),
		pix:  make([]tricolor.Color, w*h),
	}
}

// Clear fills the whole canvas with c.
func (c *Canvas) Clear(ink tricolor.Color) {
	for i := range c.pix {
		c.pix[i] = ink
	}
}

func (c *Canvas) Bounds() image.Rectangle {
	return c.rect
}

func (c *Canvas) ColorModel() color.Model {
	return tricolor.Model
}

func (c *Canvas) At(x, y int) color.Color {
	return c.Ink(x, y)
}

// Ink returns the ink at (x, y); outside the canvas it is White.
func (c *Canvas) Ink(x, y int) tricolor.Color {
	if !(image.Point{x, y}).In(c.rect) {
		return tricolor.White
	}
	return c.pix[y*c.rect.Dx()+x]
}

func (c *Canvas) Set(x, y int, col color.Color) {
	c.set(x, y, tricolor.From(col))
}

func (c *Canvas) set(x, y int, ink tricolor.Color) {
	if !(image.Point{x, y}).In(c.rect) {
		return
	}
	c.pix[y*c.rect.Dx()+x] = ink
}

// FillContiguous implements Target.
func (c *Canvas) FillContiguous(r image.Rectangle, px Pixels) error {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			ink, ok := px.Next()
			if !ok {
				return nil
			}
			c.set(x, y, ink)
		}
	}
	return nil
}

// Count returns how many pixels carry ink.
func (c *Canvas) Count(ink tricolor.Color) int {
	n := 0
	for _, p := range c.pix {
		if p == ink {
			n++
		}
	}
	return n
}

// Planes packs the frame the way tri-color controllers take it: one bit per
// pixel, MSB leftmost, rows padded to a whole byte. In the black plane a set
// bit means "not black"; in the chromatic plane a set bit means accent.
func (c *Canvas) Planes() (black, chromatic []byte) {
	w, h := c.rect.Dx(), c.rect.Dy()
	stride := (w + 7) / 8
	black = make([]byte, stride*h)
	chromatic = make([]byte, stride*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*stride + x/8
			mask := byte(0x80) >> (x % 8)
			switch c.pix[y*w+x] {
			case tricolor.Black:
			case tricolor.Chromatic:
				black[i] |= mask
				chromatic[i] |= mask
			default:
				black[i] |= mask
			}
		}
	}

	return black, chromatic
}

// FromPlanes rebuilds a canvas from Planes output.
func FromPlanes(w, h int, black, chromatic []byte) *Canvas {
	c := New(w, h)
	stride := (w + 7) / 8
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*stride + x/8
			if i >= len(black) || i >= len(chromatic) {
				return c
			}
			mask := byte(0x80) >> (x % 8)
			switch {
			case chromatic[i]&mask != 0:
				c.pix[y*w+x] = tricolor.Chromatic
			case black[i]&mask == 0:
				c.pix[y*w+x] = tricolor.Black
			}
		}
	}
	return c
}

// Clone returns a deep copy.
func (c *Canvas) Clone() *Canvas {
	return &Canvas{
		rect: c.rect,
		pix:  append([]tricolor.Color(nil), c.pix...),
	}
}
