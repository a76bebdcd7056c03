// Package layout places a forecast on a tri-color canvas: a header per day
// section, temperature, precipitation and probability charts, daylight bars,
// hour labels and condition glyphs.
package layout

import (
	"time"

	"weatherpaper/pkg/canvas"
	"weatherpaper/pkg/forecast"
	"weatherpaper/pkg/icon"
)

// Geometry fixes where things go. Vertical positions are measured up from
// the bottom edge.
type Geometry struct {
	Width, Height int
	Sections      int
	SectionWidth  int
	HourWidth     int
	// Offset is the x of hour 0 in the first section.
	Offset int

	TitleY    int
	WeekdayY  int
	DateY     int
	TempBase  int
	RainBase  int
	RainScale int
	SunLine   int
	Axis      int
}

// DefaultGeometry fits three days on an 800×480 panel.
var DefaultGeometry = Geometry{
	Width:        800,
	Height:       480,
	Sections:     3,
	SectionWidth: 240,
	HourWidth:    10,
	Offset:       60,

	TitleY:    30,
	WeekdayY:  60,
	DateY:     75,
	TempBase:  135,
	RainBase:  75,
	RainScale: 10,
	SunLine:   60,
	Axis:      35,
}

type Option func(e *Engine)

func WithGeometry(g Geometry) Option {
	return func(e *Engine) {
		e.geo = g
	}
}

// WithFonts replaces the heading and label faces.
func WithFonts(heading, label canvas.Font) Option {
	return func(e *Engine) {
		e.heading = heading
		e.label = label
	}
}

func New(pack *icon.Pack, opts ...Option) *Engine {
	e := &Engine{
		geo:     DefaultGeometry,
		pack:    pack,
		heading: canvas.Bold(14),
		label:   canvas.Small,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Engine renders forecasts. It holds no per-render state and can be shared.
type Engine struct {
	geo     Geometry
	pack    *icon.Pack
	heading canvas.Font
	label   canvas.Font
}

func (e *Engine) Geometry() Geometry {
	return e.geo
}

// Input is everything one render needs. Series must be sorted.
type Input struct {
	Series   *forecast.Series
	Today    time.Time
	Daylight forecast.Daylight
	Icons    icon.Selector
}

// ForSource fills the daylight policy and glyph table from src.
func ForSource(src forecast.Source, series *forecast.Series, today time.Time) Input {
	return Input{
		Series:   series,
		Today:    today,
		Daylight: src.Daylight(),
		Icons:    src.Icons(),
	}
}

const (
	titleLayout   = "_2. Jan 06"
	weekdayLayout = "Monday"
)
