package bitmap

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherpaper/pkg/tricolor"
)

const (
	white565 = 0xFFFF
	black565 = 0x0000
)

func pixels565(px ...uint16) []byte {
	out := make([]byte, 0, 2*len(px))
	for _, p := range px {
		out = append(out, byte(p>>8), byte(p))
	}
	return out
}

func repeat565(p uint16, n int) []byte {
	px := make([]uint16, n)
	for i := range px {
		px[i] = p
	}
	return pixels565(px...)
}

func TestReduceEmpty(t *testing.T) {
	assert.Empty(t, Reduce(nil))
	assert.Empty(t, Reduce([]byte{}))
}

func TestReduceDarkGroup(t *testing.T) {
	out := Reduce(repeat565(black565, 8))
	require.Equal(t, []byte{0x00}, out)

	p, err := NewPacked(8, out)
	require.NoError(t, err)

	got := Collect(NewStream(p, Assignment{Ink: tricolor.Black, Paper: tricolor.White}))
	assert.Equal(t, []tricolor.Color{
		tricolor.Black, tricolor.Black, tricolor.Black, tricolor.Black,
		tricolor.Black, tricolor.Black, tricolor.Black, tricolor.Black,
	}, got)
}

func TestReduceBitOrder(t *testing.T) {
	// First pixel of the first group sets bit 0, then the bytes are reversed.
	rgb := append(pixels565(white565), repeat565(black565, 15)...)
	assert.Equal(t, []byte{0x00, 0x01}, Reduce(rgb))

	rgb = append(repeat565(black565, 15), pixels565(white565)...)
	assert.Equal(t, []byte{0x80, 0x00}, Reduce(rgb))
}

// The reversed byte order combined with MSB-first decoding hands the pixels
// back last to first. Icon assets rely on exactly this orientation.
func TestRoundTripReversesPixelOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const n = 32 * 32

	px := make([]uint16, n)
	want := make([]tricolor.Color, n)
	for i := range px {
		if rng.Intn(2) == 0 {
			px[i] = white565
		} else {
			px[i] = black565
		}
	}
	for i := range px {
		src := px[n-1-i]
		if src == white565 {
			want[i] = tricolor.White
		} else {
			want[i] = tricolor.Black
		}
	}

	p, err := ReduceImage(32, pixels565(px...))
	require.NoError(t, err)
	assert.Equal(t, 32, p.Width())
	assert.Equal(t, 32, p.Height())

	assert.Equal(t, want, Collect(NewStream(p, BlackOnWhite)))
}

func TestRoundTripLength(t *testing.T) {
	for _, n := range []int{8, 16, 64, 1024} {
		rgb := make([]byte, 2*n)
		_, _ = rand.New(rand.NewSource(int64(n))).Read(rgb)

		out := Reduce(rgb)
		require.Len(t, out, n/8)

		p, err := NewPacked(8, out)
		require.NoError(t, err)
		assert.Len(t, Collect(NewStream(p, BlackOnWhite)), n)
	}
}

func TestSwapIsComplement(t *testing.T) {
	data := make([]byte, 128)
	_, _ = rand.New(rand.NewSource(3)).Read(data)
	p := MustPacked(32, data)

	a := Assignment{Ink: tricolor.Chromatic, Paper: tricolor.White}
	plain := Collect(NewStream(p, a))
	swapped := Collect(NewStream(p, a.Swap()))

	require.Len(t, swapped, len(plain))
	for i := range plain {
		if plain[i] == a.Ink {
			assert.Equal(t, a.Paper, swapped[i], "pixel %d", i)
		} else {
			assert.Equal(t, a.Ink, swapped[i], "pixel %d", i)
		}
	}
}

func TestShortTrailingGroup(t *testing.T) {
	out := Reduce(repeat565(white565, 3))
	assert.Equal(t, []byte{0x07}, out)
}

func TestThreshold(t *testing.T) {
	// Mid gray: r=16 g=32 b=16 -> (480+1888+176)/100 = 25.
	gray := uint16(16<<11 | 32<<5 | 16)
	rgb := repeat565(gray, 8)

	assert.Equal(t, []byte{0x00}, Reduce(rgb))
	assert.Equal(t, []byte{0xFF}, Reduce(rgb, WithThreshold(24)))
	assert.Equal(t, []byte{0x00}, Reduce(repeat565(white565, 8), WithThreshold(49)))
}

func TestStreamExhausted(t *testing.T) {
	s := NewStream(MustPacked(4, []byte{0xA5}), BlackOnWhite)
	assert.Equal(t, 4, s.Width())
	assert.Equal(t, 2, s.Height())

	got := Collect(s)
	assert.Equal(t, []tricolor.Color{
		tricolor.White, tricolor.Black, tricolor.White, tricolor.Black,
		tricolor.Black, tricolor.White, tricolor.Black, tricolor.White,
	}, got)

	_, ok := s.Next()
	assert.False(t, ok)
}

func TestNewPacked(t *testing.T) {
	for _, tc := range []struct {
		name  string
		width int
		data  []byte
	}{
		{"zero width", 0, []byte{1}},
		{"negative width", -8, []byte{1}},
		{"empty", 8, nil},
		{"partial row", 3, []byte{1}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPacked(tc.width, tc.data)
			assert.ErrorIs(t, err, ErrDecodeAsset)
		})
	}

	src := []byte{0xFF, 0x00}
	p, err := NewPacked(16, src)
	require.NoError(t, err)
	src[0] = 0
	assert.Equal(t, []byte{0xFF, 0x00}, p.Bytes())
	assert.Equal(t, "Packed(16x1)", p.String())
}

func TestEncode(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{0xFF, 0, 0, 0xFF})
	img.Set(1, 0, color.NRGBA{0, 0xFF, 0, 0xFF})
	img.Set(0, 1, color.NRGBA{0, 0, 0xFF, 0xFF})
	img.Set(1, 1, color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF})

	assert.Equal(t, []byte{
		0xF8, 0x00, 0x07, 0xE0,
		0x00, 0x1F, 0xFF, 0xFF,
	}, Encode(img))
}

func TestRGB565At(t *testing.T) {
	d := NewRGB565(image.Rect(0, 0, 1, 1))
	d.Set(0, 0, color.White)
	r, g, b, a := d.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF}, []uint32{r, g, b, a})

	d.Set(0, 0, color.Transparent)
	assert.Equal(t, []byte{0xFF, 0xFF}, d.Pix())
}
