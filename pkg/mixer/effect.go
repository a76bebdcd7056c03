package mixer

import (
	"weatherpaper/pkg/canvas"
	"weatherpaper/pkg/tricolor"
)

// Effect rewrites a frame before one panel shows it. The input must not be
// modified.
type Effect interface {
	Name() string
	Process(c *canvas.Canvas) (*canvas.Canvas, error)
}

// EffectRotate turns the frame upside down for panels mounted that way.
func EffectRotate() Effect {
	return rotate{}
}

type rotate struct{}

func (rotate) Name() string {
	return "rotate"
}

func (rotate) Process(c *canvas.Canvas) (*canvas.Canvas, error) {
	r := c.Bounds()
	out := canvas.New(r.Dx(), r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			out.Set(r.Max.X-1-x, r.Max.Y-1-y, c.Ink(x, y))
		}
	}
	return out, nil
}

// EffectInvert swaps black and white; the accent ink stays.
func EffectInvert() Effect {
	return invert{}
}

type invert struct{}

func (invert) Name() string {
	return "invert"
}

func (invert) Process(c *canvas.Canvas) (*canvas.Canvas, error) {
	out := c.Clone()
	r := c.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			switch c.Ink(x, y) {
			case tricolor.Black:
				out.Set(x, y, tricolor.White)
			case tricolor.White:
				out.Set(x, y, tricolor.Black)
			}
		}
	}
	return out, nil
}
