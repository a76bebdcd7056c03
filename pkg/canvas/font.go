package canvas

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Font selects the face text is rasterized with. The zero value is the
// small bitmap face.
type Font struct {
	face font.Face
}

// FaceFont wraps an arbitrary face.
func FaceFont(face font.Face) Font {
	return Font{face: face}
}

// Small is the 7×13 bitmap face used for axis labels and values.
var Small = Font{face: basicfont.Face7x13}

var (
	parseOnce sync.Once
	bold      *truetype.Font
	regular   *truetype.Font
)

func parseGoFonts() {
	var err error
	if bold, err = truetype.Parse(gobold.TTF); err != nil {
		panic(err)
	}
	if regular, err = truetype.Parse(goregular.TTF); err != nil {
		panic(err)
	}
}

// Bold returns the bold Go face at size points.
func Bold(size float64) Font {
	parseOnce.Do(parseGoFonts)
	return Font{face: newFace(bold, size)}
}

// Regular returns the regular Go face at size points.
func Regular(size float64) Font {
	parseOnce.Do(parseGoFonts)
	return Font{face: newFace(regular, size)}
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func (f Font) Face() font.Face {
	if f.face == nil {
		return basicfont.Face7x13
	}
	return f.face
}
