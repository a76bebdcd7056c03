package canvas

import (
	"image"
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherpaper/pkg/bitmap"
	"weatherpaper/pkg/tricolor"
)

func TestNewIsWhite(t *testing.T) {
	c := New(16, 8)
	assert.Equal(t, 16*8, c.Count(tricolor.White))
	assert.Equal(t, tricolor.White, c.Ink(-1, 0))
	assert.Equal(t, tricolor.Model, c.ColorModel())

	c.Set(3, 3, color.Black)
	assert.Equal(t, tricolor.Black, c.Ink(3, 3))
	c.Set(100, 100, color.Black)
	assert.Equal(t, 1, c.Count(tricolor.Black))
}

func TestHorizontalLineStroke(t *testing.T) {
	c := New(20, 20)
	require.NoError(t, c.DrawLine(Line{
		From:  image.Pt(2, 10),
		To:    image.Pt(11, 10),
		Color: tricolor.Chromatic,
		Width: 3,
	}))

	assert.Equal(t, 10*3, c.Count(tricolor.Chromatic))
	for y := 9; y <= 11; y++ {
		assert.Equal(t, tricolor.Chromatic, c.Ink(2, y))
		assert.Equal(t, tricolor.Chromatic, c.Ink(11, y))
	}
	assert.Equal(t, tricolor.White, c.Ink(12, 10))
}

func TestVerticalBar(t *testing.T) {
	c := New(40, 40)
	require.NoError(t, c.DrawLine(Line{
		From:  image.Pt(20, 30),
		To:    image.Pt(20, 10),
		Color: tricolor.Black,
		Width: 10,
	}))

	assert.Equal(t, 21*10, c.Count(tricolor.Black))
	assert.Equal(t, tricolor.Black, c.Ink(15, 20))
	assert.Equal(t, tricolor.Black, c.Ink(24, 20))
	assert.Equal(t, tricolor.White, c.Ink(25, 20))
}

func TestLineClipped(t *testing.T) {
	c := New(10, 10)
	require.NoError(t, c.DrawLine(Line{From: image.Pt(-5, -5), To: image.Pt(20, 20), Color: tricolor.Black}))
	assert.Equal(t, 10, c.Count(tricolor.Black))
}

func TestDrawTextAlign(t *testing.T) {
	c := New(200, 50)
	txt := Text{Value: "12", At: image.Pt(100, 25), Font: Small, Color: tricolor.Black, H: Center, V: Middle}
	require.NoError(t, c.DrawText(txt))

	r := TextBounds(txt)
	assert.Greater(t, c.Count(tricolor.Black), 0)
	assert.InDelta(t, 100, (r.Min.X+r.Max.X)/2, 2)

	for y := 0; y < 50; y++ {
		for x := 0; x < 200; x++ {
			if c.Ink(x, y) == tricolor.Black {
				assert.True(t, image.Pt(x, y).In(r), "pixel %d,%d outside %v", x, y, r)
			}
		}
	}
}

func TestDrawTextBold(t *testing.T) {
	c := New(300, 60)
	require.NoError(t, c.DrawText(Text{Value: "Monday", At: image.Pt(150, 40), Font: Bold(20), Color: tricolor.Black, H: Center}))
	assert.Greater(t, c.Count(tricolor.Black), 50)
	assert.Zero(t, c.Count(tricolor.Chromatic))
}

func TestDrawTextOutside(t *testing.T) {
	c := New(10, 10)
	require.NoError(t, c.DrawText(Text{Value: "far", At: image.Pt(500, 500)}))
	require.NoError(t, c.DrawText(Text{}))
	assert.Equal(t, 100, c.Count(tricolor.White))
}

func TestImageDraw(t *testing.T) {
	// 8x2, first row ink, second row paper.
	p := bitmap.MustPacked(8, []byte{0x00, 0xFF})
	c := New(10, 10)

	img := Image{Bitmap: p, Colors: bitmap.Assignment{Ink: tricolor.Chromatic, Paper: tricolor.White}, At: image.Pt(1, 1)}
	require.NoError(t, img.Draw(c))
	assert.Equal(t, image.Rect(1, 1, 9, 3), img.Bounds())

	assert.Equal(t, 8, c.Count(tricolor.Chromatic))
	assert.Equal(t, tricolor.Chromatic, c.Ink(1, 1))
	assert.Equal(t, tricolor.White, c.Ink(1, 2))
}

func TestImageDrawClipped(t *testing.T) {
	p := bitmap.MustPacked(8, []byte{0x00, 0x00})
	c := New(4, 4)
	require.NoError(t, NewImage(p, image.Pt(-2, 3)).Draw(c))
	assert.Equal(t, 4, c.Count(tricolor.Black))
}

func TestSubImageUnsupported(t *testing.T) {
	img := NewImage(bitmap.MustPacked(8, []byte{0}), image.Point{})
	err := img.DrawSubImage(New(8, 8), image.Rect(0, 0, 4, 1))
	assert.ErrorIs(t, err, ErrSubImageUnsupported)
}

type brokenTarget struct {
	*Canvas
}

var errBus = errors.New("bus timeout")

func (brokenTarget) FillContiguous(image.Rectangle, Pixels) error {
	return errBus
}

func TestImageDrawFault(t *testing.T) {
	img := NewImage(bitmap.MustPacked(8, []byte{0}), image.Point{})
	err := img.Draw(brokenTarget{New(8, 8)})
	assert.ErrorIs(t, err, ErrDrawFault)
	assert.ErrorIs(t, err, errBus)

	assert.Same(t, err, Fault(err, "again"))
	assert.NoError(t, Fault(nil, "nothing"))
}

func TestPlanes(t *testing.T) {
	c := New(10, 2)
	c.set(0, 0, tricolor.Black)
	c.set(9, 0, tricolor.Chromatic)
	c.set(1, 1, tricolor.Chromatic)

	black, chromatic := c.Planes()
	assert.Equal(t, []byte{0x7F, 0xC0, 0xFF, 0xC0}, black)
	assert.Equal(t, []byte{0x00, 0x40, 0x40, 0x00}, chromatic)

	back := FromPlanes(10, 2, black, chromatic)
	assert.Equal(t, c.pix, back.pix)
	assert.Equal(t, c.pix, c.Clone().pix)
}
