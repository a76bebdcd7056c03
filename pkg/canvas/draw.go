package canvas

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// DrawLine implements Target. The stroke is centred on the segment and
// stamped across its minor axis.
func (c *Canvas) DrawLine(l Line) error {
	w := l.Width
	if w < 1 {
		w = 1
	}
	lo := -(w / 2)
	hi := lo + w - 1

	x0, y0 := l.From.X, l.From.Y
	x1, y1 := l.To.X, l.To.Y
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	steep := -dy > dx

	stamp := func(x, y int) {
		for o := lo; o <= hi; o++ {
			if steep {
				c.set(x+o, y, l.Color)
			} else {
				c.set(x, y+o, l.Color)
			}
		}
	}

	e := dx + dy
	for {
		stamp(x0, y0)
		if x0 == x1 && y0 == y1 {
			return nil
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// DrawText implements Target. Glyph coverage is thresholded at one half so
// the panel only ever sees solid pixels.
func (c *Canvas) DrawText(t Text) error {
	if t.Value == "" {
		return nil
	}

	face := t.Font.Face()
	dot := anchor(face, t)

	r := glyphRect(face, t.Value, dot)
	if r.Empty() || !r.Overlaps(c.rect) {
		return nil
	}

	mask := image.NewAlpha(r)
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(dot.X, dot.Y),
	}
	d.DrawString(t.Value)

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if mask.AlphaAt(x, y).A >= 0x80 {
				c.set(x, y, t.Color)
			}
		}
	}
	return nil
}

// anchor returns the baseline origin for t.
func anchor(face font.Face, t Text) image.Point {
	p := t.At

	switch t.H {
	case Center:
		p.X -= font.MeasureString(face, t.Value).Round() / 2
	case Right:
		p.X -= font.MeasureString(face, t.Value).Round()
	}

	m := face.Metrics()
	switch t.V {
	case Top:
		p.Y += m.Ascent.Round()
	case Middle:
		p.Y += (m.Ascent.Round() - m.Descent.Round()) / 2
	case Bottom:
		p.Y -= m.Descent.Round()
	}

	return p
}

// TextBounds returns the rectangle t would cover.
func TextBounds(t Text) image.Rectangle {
	face := t.Font.Face()
	return glyphRect(face, t.Value, anchor(face, t))
}

func glyphRect(face font.Face, s string, dot image.Point) image.Rectangle {
	b, _ := font.BoundString(face, s)
	return image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil()).Add(dot)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
