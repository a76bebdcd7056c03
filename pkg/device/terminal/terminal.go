// Package terminal previews frames on an ANSI 256 color console.
package terminal

import (
	"bytes"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"

	"weatherpaper/pkg/canvas"
	"weatherpaper/pkg/device"
	"weatherpaper/pkg/tricolor"
)

// Opts represents the options available for the preview.
type Opts struct {
	// Columns is the console width the frame is scaled down to.
	Columns int
	Palette *ansi256.Palette
}

// Dev prints every frame as colored blocks, one console cell per step by 2*step
// pixels.
type Dev struct {
	w       io.Writer
	columns int
	palette ansi256.Palette
	buf     bytes.Buffer
}

// New returns a Dev that writes to stdout.
func New(opts *Opts) *Dev {
	return NewWriter(colorable.NewColorableStdout(), opts)
}

func NewWriter(w io.Writer, opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	columns := opts.Columns
	if columns <= 0 {
		columns = 100
	}
	return &Dev{w: w, columns: columns, palette: *p}
}

var _ device.Panel = (*Dev)(nil)

func (d *Dev) String() string {
	return "Terminal"
}

func (d *Dev) Init() error  { return nil }
func (d *Dev) Sleep() error { return nil }

// Halt resets the console colors.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

func (d *Dev) Show(c *canvas.Canvas) error {
	r := c.Bounds()
	step := (r.Dx() + d.columns - 1) / d.columns
	if step < 1 {
		step = 1
	}

	d.buf.Reset()
	for y := r.Min.Y; y < r.Max.Y; y += 2 * step {
		_, _ = d.buf.WriteString("\r\033[0m")
		for x := r.Min.X; x < r.Max.X; x += step {
			_, _ = io.WriteString(&d.buf, d.palette.Block(sample(c, x, y, step).NRGBA()))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

// sample picks the most visible ink of the cell at (x, y) so that one pixel
// wide strokes still show up.
func sample(c *canvas.Canvas, x, y, step int) tricolor.Color {
	ink := tricolor.White
	for dy := 0; dy < 2*step; dy++ {
		for dx := 0; dx < step; dx++ {
			switch c.Ink(x+dx, y+dy) {
			case tricolor.Chromatic:
				return tricolor.Chromatic
			case tricolor.Black:
				ink = tricolor.Black
			}
		}
	}
	return ink
}
