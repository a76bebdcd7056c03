package bitmap

import (
	"image"
	"image/color"
)

// https://github.com/gonutz/framebuffer/blob/master/fb.go

func NewRGB565(r image.Rectangle) *RGB565 {
	return &RGB565{
		pixels:     make([]byte, 2*r.Dx()*r.Dy()),
		stride:     2 * r.Dx(),
		bounds:     r,
		colorModel: rgb565Model{},
	}
}

// RGB565 is a 16 bit image buffer laid out the way the icon assets are:
// two bytes per pixel, high byte first. It implements the draw.Image
// interface.
type RGB565 struct {
	pixels     []byte
	stride     int
	bounds     image.Rectangle
	colorModel color.Model
}

// Bounds implements the image.Image (and draw.Image) interface.
func (d *RGB565) Bounds() image.Rectangle {
	return d.bounds
}

// ColorModel implements the image.Image (and draw.Image) interface.
func (d *RGB565) ColorModel() color.Model {
	return d.colorModel
}

// Pix returns the raw pixel bytes.
func (d *RGB565) Pix() []byte {
	return d.pixels
}

func (d *RGB565) offset(x, y int) int {
	return (y-d.bounds.Min.Y)*d.stride + 2*(x-d.bounds.Min.X)
}

// At implements the image.Image (and draw.Image) interface.
func (d *RGB565) At(x, y int) color.Color {
	if !(image.Point{x, y}).In(d.bounds) {
		return rgb565(0)
	}
	i := d.offset(x, y)
	return rgb565(d.pixels[i])<<8 | rgb565(d.pixels[i+1])
}

// Set implements the draw.Image interface. Transparent pixels are left
// untouched.
func (d *RGB565) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}).In(d.bounds) {
		return
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return
	}
	rgb := toRGB565(r, g, b)
	i := d.offset(x, y)
	d.pixels[i] = byte(rgb >> 8)
	d.pixels[i+1] = byte(rgb & 0xFF)
}

// Each pixel is represented by two bytes, with 5 bits for red, 6 bits for
// green and 5 bits for blue. There is no alpha channel, so alpha is assumed
// to always be 100% opaque.
// This shows the memory layout of a pixel:
//
//	bit 76543210  76543210
//	    RRRRRGGG  GGGBBBBB
//	   high byte  low byte
type rgb565Model struct{}

func (rgb565Model) Convert(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return toRGB565(r, g, b)
}

// toRGB565 helps convert a color.Color to rgb565. In a color.Color each
// channel is represented by the lower 16 bits in a uint32 so the maximum value
// is 0xFFFF. This function simply uses the highest 5 or 6 bits of each channel
// as the RGB values.
func toRGB565(r, g, b uint32) rgb565 {
	// RRRRRGGGGGGBBBBB
	return rgb565((r & 0xF800) +
		((g & 0xFC00) >> 5) +
		((b & 0xF800) >> 11))
}

// rgb565 implements the color.Color interface.
type rgb565 uint16

// channels splits the pixel into its native 5/6/5 bit components.
func (c rgb565) channels() (r, g, b uint32) {
	return uint32(c>>11) & 0x1F, uint32(c>>5) & 0x3F, uint32(c) & 0x1F
}

// RGBA implements the color.Color interface.
func (c rgb565) RGBA() (r, g, b, a uint32) {
	// To convert a color channel from 5 or 6 bits back to 16 bits, the short
	// bit pattern is duplicated to fill all 16 bits.
	// For example the green channel in rgb565 is the middle 6 bits:
	//     00000GGGGGG00000
	//
	// To create a 16 bit channel, these bits are or-ed together starting at the
	// highest bit:
	//     GGGGGG0000000000 shifted << 5
	//     000000GGGGGG0000 shifted >> 1
	//     000000000000GGGG shifted >> 7
	//
	// These patterns map the minimum (all bits 0) and maximum (all bits 1)
	// 5 and 6 bit channel values to the minimum and maximum 16 bit channel
	// values.
	rBits := uint32(c & 0xF800) // RRRRR00000000000
	gBits := uint32(c & 0x7E0)  // 00000GGGGGG00000
	bBits := uint32(c & 0x1F)   // 00000000000BBBBB
	r = uint32(rBits | rBits>>5 | rBits>>10 | rBits>>15)
	g = uint32(gBits<<5 | gBits>>1 | gBits>>7)
	b = uint32(bBits<<11 | bBits<<6 | bBits<<1 | bBits>>4)
	a = 0xFFFF
	return
}
