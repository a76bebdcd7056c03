package canvas

import (
	"image"

	"weatherpaper/pkg/bitmap"
)

// Image places a packed bitmap on a target.
type Image struct {
	Bitmap *bitmap.Packed
	Colors bitmap.Assignment
	At     image.Point
}

// NewImage returns an image drawn black on white at p.
func NewImage(b *bitmap.Packed, p image.Point) Image {
	return Image{Bitmap: b, Colors: bitmap.BlackOnWhite, At: p}
}

// Bounds is the rectangle the image covers on the target.
func (i Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.Bitmap.Width(), i.Bitmap.Height()).Add(i.At)
}

// Draw streams the decoded pixels into the image rectangle. Parts outside the
// target are clipped by the target.
func (i Image) Draw(t Target) error {
	s := bitmap.NewStream(i.Bitmap, i.Colors)
	return Fault(t.FillContiguous(i.Bounds(), s), "image "+i.Bitmap.String())
}

// DrawSubImage would draw only area of the bitmap. Packed bitmaps are decoded
// front to back only, so it always fails.
func (i Image) DrawSubImage(t Target, area image.Rectangle) error {
	return ErrSubImageUnsupported
}
