package layout

import (
	"image"
	"math"
	"strconv"
	"strings"
	"time"

	"weatherpaper/pkg/bitmap"
	"weatherpaper/pkg/canvas"
	"weatherpaper/pkg/forecast"
	"weatherpaper/pkg/icon"
	"weatherpaper/pkg/tricolor"
)

// slot is a sample that falls into a section, with its column.
type slot struct {
	forecast.Sample
	X    int
	Hour int
}

// cursor carries what one chart step needs to know about the samples before
// the current one.
type cursor struct {
	prev      image.Point
	started   bool
	lastRain  float64
	lastDrawn bool
}

// advance moves the polyline end to p and returns the segment to draw, if
// there is one yet.
func (c *cursor) advance(p image.Point) (image.Point, bool) {
	from, ok := c.prev, c.started
	c.prev, c.started = p, true
	return from, ok
}

// rain applies the peak-label rule to the next precipitation value. It
// returns the value to print when a label is due.
func (c *cursor) rain(mm float64) (float64, bool) {
	var label float64
	due := c.lastRain != 0 && !c.lastDrawn
	if due {
		label = math.Max(c.lastRain, mm)
	}
	c.lastDrawn = due
	c.lastRain = mm
	return label, due
}

type pass struct {
	e     *Engine
	t     canvas.Target
	in    Input
	slots []slot
}

type step struct {
	name string
	fn   func(p *pass) error
}

var steps = []step{
	{"headers", (*pass).headers},
	{"legends", (*pass).legends},
	{"temperature", (*pass).temperature},
	{"precipitation", (*pass).precipitation},
	{"probability", (*pass).probability},
	{"daylight", (*pass).daylight},
	{"hours", (*pass).hours},
	{"icons", (*pass).icons},
}

// Render draws in onto t. Only a failing target makes it return an error,
// wrapped in canvas.ErrDrawFault; the pass stops there.
func (e *Engine) Render(t canvas.Target, in Input) error {
	p := &pass{e: e, t: t, in: in}
	if in.Series != nil {
		p.slots = e.slots(in)
	}

	for _, s := range steps {
		if err := s.fn(p); err != nil {
			return canvas.Fault(err, s.name)
		}
	}
	return nil
}

func (e *Engine) slots(in Input) []slot {
	out := make([]slot, 0, len(in.Series.Hourly))
	for _, s := range in.Series.Hourly {
		section, ok := e.section(in.Today, s.Time)
		if !ok {
			continue
		}
		h := s.Time.Hour()
		out = append(out, slot{Sample: s, Hour: h, X: section*e.geo.SectionWidth + h*e.geo.HourWidth + e.geo.Offset})
	}
	return out
}

// section returns the day section t belongs to, counted from today.
func (e *Engine) section(today, t time.Time) (int, bool) {
	i := forecast.DaysBetween(today, t)
	return i, i >= 0 && i < e.geo.Sections
}

func (p *pass) bottom(up int) int {
	return p.e.geo.Height - up
}

func (p *pass) headers() error {
	g := p.e.geo
	for i := 0; i < g.Sections; i++ {
		day := p.in.Today.AddDate(0, 0, i)
		x := g.SectionWidth*i + g.SectionWidth/2

		if err := p.t.DrawText(canvas.Text{
			Value: day.Format(weekdayLayout),
			At:    image.Pt(x, g.WeekdayY),
			Font:  p.e.heading,
			Color: tricolor.Black,
			H:     canvas.Center,
		}); err != nil {
			return err
		}
		if err := p.t.DrawText(canvas.Text{
			Value: day.Format(titleLayout),
			At:    image.Pt(x, g.DateY),
			Font:  p.e.label,
			Color: tricolor.Black,
			H:     canvas.Center,
		}); err != nil {
			return err
		}
	}
	return nil
}

// glyph is a legend pictogram as strokes relative to its center.
type glyph [][2]image.Point

var (
	thermometer = glyph{
		{image.Pt(5, -7), image.Pt(5, 3)},
		{image.Pt(3, 5), image.Pt(7, 5)},
		{image.Pt(4, 7), image.Pt(6, 7)},
	}
	umbrella = glyph{
		{image.Pt(3, -6), image.Pt(9, -6)},
		{image.Pt(0, -3), image.Pt(12, -3)},
		{image.Pt(6, -3), image.Pt(6, 5)},
		{image.Pt(6, 5), image.Pt(3, 5)},
	}
)

func (p *pass) legends() error {
	if len(p.slots) == 0 {
		return nil
	}
	for _, l := range []struct {
		glyph glyph
		text  string
		up    int
		color tricolor.Color
	}{
		{thermometer, "C", p.e.geo.TempBase + 30, tricolor.Black},
		{umbrella, "%", p.e.geo.RainBase + 40, tricolor.Chromatic},
		{umbrella, "mm", p.e.geo.RainBase + 20, tricolor.Black},
	} {
		center := image.Pt(0, p.bottom(l.up-5))
		for _, stroke := range l.glyph {
			if err := p.t.DrawLine(canvas.Line{
				From:  center.Add(stroke[0]),
				To:    center.Add(stroke[1]),
				Color: l.color,
				Width: 2,
			}); err != nil {
				return err
			}
		}
		if err := p.t.DrawText(canvas.Text{
			Value: l.text,
			At:    image.Pt(18, p.bottom(l.up)),
			Font:  p.e.label,
			Color: l.color,
			V:     canvas.Middle,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (p *pass) temperature() error {
	var c cursor
	for _, s := range p.slots {
		deg := int(s.TemperatureC)
		pt := image.Pt(s.X, p.bottom(p.e.geo.TempBase)-(deg+10))

		if s.Hour%3 == 0 {
			if err := p.t.DrawText(canvas.Text{
				Value: strconv.Itoa(deg),
				At:    pt.Sub(image.Pt(0, 10)),
				Font:  p.e.label,
				Color: tricolor.Black,
				H:     canvas.Center,
				V:     canvas.Middle,
			}); err != nil {
				return err
			}
		}

		if from, ok := c.advance(pt); ok {
			if err := p.t.DrawLine(canvas.Line{From: from, To: pt, Color: tricolor.Black, Width: 1}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *pass) precipitation() error {
	g := p.e.geo
	y := p.bottom(g.RainBase)

	var c cursor
	for _, s := range p.slots {
		mm := s.PrecipitationMM

		if peak, due := c.rain(mm); due {
			x := s.X - 5
			if mm == 0 {
				x = s.X - 10
			}
			if err := p.t.DrawText(canvas.Text{
				Value: formatMM(peak),
				At:    image.Pt(x, y-int(peak)*g.RainScale-10),
				Font:  p.e.label,
				Color: tricolor.Black,
				H:     canvas.Center,
				V:     canvas.Middle,
			}); err != nil {
				return err
			}
		}

		if mm <= 0 {
			continue
		}
		if err := p.t.DrawLine(canvas.Line{
			From:  image.Pt(s.X, y),
			To:    image.Pt(s.X, y-int(mm*float64(g.RainScale))),
			Color: tricolor.Black,
			Width: 10,
		}); err != nil {
			return err
		}
	}
	return nil
}

// formatMM prints like "2.0" or "0.4": shortest form, always with a decimal.
func formatMM(v float64) string {
	s := strconv.FormatFloat(float64(float32(v)), 'f', -1, 32)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (p *pass) probability() error {
	var c cursor
	for _, s := range p.slots {
		pt := image.Pt(s.X, p.bottom(p.e.geo.RainBase)-s.Probability/2)
		if from, ok := c.advance(pt); ok {
			if err := p.t.DrawLine(canvas.Line{From: from, To: pt, Color: tricolor.Chromatic, Width: 1}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *pass) daylight() error {
	if p.in.Series == nil {
		return nil
	}
	g := p.e.geo
	for _, d := range p.in.Series.Daily {
		section, ok := p.e.section(p.in.Today, d.Date)
		if !ok || !d.HasSun() {
			continue
		}
		x := func(t time.Time) int {
			return t.Hour()*g.HourWidth + t.Minute()/10 + section*g.SectionWidth + g.Offset - 5
		}
		if err := p.t.DrawLine(canvas.Line{
			From:  image.Pt(x(d.Sunrise), p.bottom(g.SunLine)),
			To:    image.Pt(x(d.Sunset), p.bottom(g.SunLine)),
			Color: tricolor.Chromatic,
			Width: 3,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (p *pass) hours() error {
	for _, s := range p.slots {
		if s.Hour%2 != 0 {
			continue
		}
		if err := p.t.DrawText(canvas.Text{
			Value: strconv.Itoa(s.Hour),
			At:    image.Pt(s.X-5, p.bottom(p.e.geo.Axis)),
			Font:  p.e.label,
			Color: tricolor.Black,
			H:     canvas.Center,
			V:     canvas.Bottom,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (p *pass) icons() error {
	if p.in.Icons == nil || p.in.Daylight == nil {
		return nil
	}
	for _, s := range p.slots {
		if s.Hour%3 != 0 {
			continue
		}
		day, known := p.in.Daylight.IsDay(s.Sample, p.in.Series)
		if !known {
			continue
		}
		id := p.in.Icons.Select(icon.Condition{Code: s.Code, CloudCover: s.CloudCover, Day: day})
		b := p.e.pack.Get(id)
		if b == nil {
			continue
		}
		img := canvas.Image{
			Bitmap: b,
			Colors: bitmap.BlackOnWhite,
			At:     image.Pt(s.X-5-icon.Size/2, p.bottom(p.e.geo.Axis)),
		}
		if err := img.Draw(p.t); err != nil {
			return err
		}
	}
	return nil
}
