// Package tricolor defines the three inks of a black/white/accent e-paper
// panel and the color model that maps arbitrary colors onto them.
package tricolor

import (
	"image/color"
)

// Color is one of the inks a tri-color panel can show.
type Color uint8

const (
	White Color = iota
	Black
	// Chromatic is the accent ink, red or yellow depending on the panel.
	Chromatic
)

var rgba = [...]color.RGBA{
	White:     {0xFF, 0xFF, 0xFF, 0xFF},
	Black:     {0x00, 0x00, 0x00, 0xFF},
	Chromatic: {0xD0, 0x10, 0x10, 0xFF},
}

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	if int(c) >= len(rgba) {
		return rgba[White].RGBA()
	}
	return rgba[c].RGBA()
}

// NRGBA returns the preview color of the ink.
func (c Color) NRGBA() color.NRGBA {
	if int(c) >= len(rgba) {
		c = White
	}
	return color.NRGBA(rgba[c])
}

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	case Chromatic:
		return "Chromatic"
	}
	return "Color(?)"
}

// Set implements the pflag.Value interface.
func (c *Color) Set(s string) error {
	switch s {
	case "white":
		*c = White
	case "black":
		*c = Black
	case "red", "yellow", "chromatic":
		*c = Chromatic
	default:
		return errUnknownColor(s)
	}
	return nil
}

// Type implements the pflag.Value interface.
func (c *Color) Type() string {
	return "color"
}

// Palette lists the inks in index order.
var Palette = color.Palette{White, Black, Chromatic}

// Model converts any color to the nearest ink. Saturated reds and yellows
// become Chromatic, everything else is split on luminance.
var Model = color.ModelFunc(convert)

func convert(c color.Color) color.Color {
	return From(c)
}

// From returns the ink for c.
func From(c color.Color) Color {
	if t, ok := c.(Color); ok {
		return t
	}
	r, g, b, a := c.RGBA()
	if a < 0x8000 {
		return White
	}
	r, g, b = r>>8, g>>8, b>>8
	if r > 0x80 && b < 0x60 && r > g+0x40 || r > 0xC0 && g > 0xC0 && b < 0x40 {
		return Chromatic
	}
	if (r*30+g*59+b*11)/100 >= 0x80 {
		return White
	}
	return Black
}
