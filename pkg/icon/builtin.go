package icon

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"weatherpaper/pkg/bitmap"
)

type stroke func(dc *gg.Context)

func sun(x, y, r float64) stroke {
	return func(dc *gg.Context) {
		dc.SetRGB(0, 0, 0)
		dc.DrawCircle(x, y, r)
		dc.Fill()
		dc.SetLineWidth(2)
		for i := 0; i < 8; i++ {
			a := float64(i) * math.Pi / 4
			dc.DrawLine(x+math.Cos(a)*(r+2), y+math.Sin(a)*(r+2), x+math.Cos(a)*(r+5), y+math.Sin(a)*(r+5))
		}
		dc.Stroke()
	}
}

func moon(x, y, r float64) stroke {
	return func(dc *gg.Context) {
		dc.SetRGB(0, 0, 0)
		dc.DrawCircle(x, y, r)
		dc.Fill()
		dc.SetRGB(1, 1, 1)
		dc.DrawCircle(x+r*0.6, y-r*0.4, r*0.9)
		dc.Fill()
	}
}

func cloud(x, y float64) stroke {
	puffs := func(dc *gg.Context, grow float64) {
		dc.DrawCircle(x-7, y+2, 5+grow)
		dc.DrawCircle(x, y-2, 7+grow)
		dc.DrawCircle(x+7, y+2, 5+grow)
		dc.DrawRectangle(x-7-grow, y+2-grow, 14+2*grow, 5+2*grow)
	}
	return func(dc *gg.Context) {
		dc.SetRGB(1, 1, 1)
		puffs(dc, 2)
		dc.Fill()
		dc.SetRGB(0, 0, 0)
		puffs(dc, 0)
		dc.Fill()
	}
}

func drops(n int, long bool) stroke {
	return func(dc *gg.Context) {
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(2)
		length := 3.0
		if long {
			length = 6
		}
		for i := 0; i < n; i++ {
			x := 16 - float64(n-1)*3 + float64(i)*6
			dc.DrawLine(x+1, 23, x-1, 23+length)
		}
		dc.Stroke()
	}
}

func flakes(n int) stroke {
	return func(dc *gg.Context) {
		dc.SetRGB(0, 0, 0)
		for i := 0; i < n; i++ {
			x := 16 - float64(n-1)*3 + float64(i)*6
			dc.DrawCircle(x, 26+float64(i%2)*3, 1.5)
		}
		dc.Fill()
	}
}

func fog(x0, x1 float64) stroke {
	return func(dc *gg.Context) {
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(2)
		for _, y := range []float64{23, 27, 31} {
			dc.DrawLine(x0, y-1, x1, y-1)
		}
		dc.Stroke()
	}
}

func bolt() stroke {
	return func(dc *gg.Context) {
		dc.SetRGB(0, 0, 0)
		dc.MoveTo(17, 20)
		dc.LineTo(12, 27)
		dc.LineTo(16, 27)
		dc.LineTo(14, 32)
		dc.LineTo(21, 24)
		dc.LineTo(17, 24)
		dc.ClosePath()
		dc.Fill()
	}
}

func with(lead stroke, rest ...stroke) []stroke {
	return append([]stroke{lead}, rest...)
}

var (
	daySky   = sun(9, 8, 4)
	nightSky = moon(9, 8, 5)
	bigCloud = cloud(16, 14)
	lowCloud = cloud(18, 12)
)

var glyphs = map[ID][]stroke{
	Cloudy:       {bigCloud},
	Fog:          {cloud(16, 10), fog(5, 27)},
	Raindrops:    {lowCloud, drops(3, false)},
	Rain:         {lowCloud, drops(3, true)},
	RainMix:      {lowCloud, drops(2, true), flakes(3)},
	Sleet:        {lowCloud, drops(1, true), flakes(2)},
	Snow:         {lowCloud, flakes(4)},
	Showers:      {lowCloud, drops(2, false)},
	Thunderstorm: {lowCloud, bolt()},

	DaySunny:        {sun(16, 16, 7)},
	DayCloudy:       with(daySky, bigCloud),
	DayFog:          with(daySky, cloud(18, 10), fog(5, 27)),
	DayRain:         with(daySky, lowCloud, drops(3, true)),
	DayRainMix:      with(daySky, lowCloud, drops(2, true), flakes(3)),
	DaySnow:         with(daySky, lowCloud, flakes(4)),
	DayShowers:      with(daySky, lowCloud, drops(2, false)),
	DayThunderstorm: with(daySky, lowCloud, bolt()),

	NightClear:        {moon(16, 16, 10)},
	NightCloudy:       with(nightSky, bigCloud),
	NightFog:          with(nightSky, cloud(18, 10), fog(5, 27)),
	NightRain:         with(nightSky, lowCloud, drops(3, true)),
	NightRainMix:      with(nightSky, lowCloud, drops(2, true), flakes(3)),
	NightSnow:         with(nightSky, lowCloud, flakes(4)),
	NightShowers:      with(nightSky, lowCloud, drops(2, false)),
	NightThunderstorm: with(nightSky, lowCloud, bolt()),
}

// Render draws the built-in glyph for id, upright, black on white.
func Render(id ID) (image.Image, error) {
	strokes, ok := glyphs[id]
	if !ok {
		return nil, fmt.Errorf("no built-in glyph %q", id)
	}

	dc := gg.NewContext(Size, Size)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	for _, s := range strokes {
		s(dc)
	}
	return dc.Image(), nil
}

// Encode reduces an upright glyph image to the packed form. The reducer hands
// pixels back last to first, so the image is turned half way first.
func Encode(img image.Image, threshold int) (*bitmap.Packed, error) {
	turned := imaging.Rotate180(img)
	return bitmap.ReduceImage(turned.Bounds().Dx(), bitmap.Encode(turned), bitmap.WithThreshold(threshold))
}

// Builtin renders and encodes every glyph in All.
func Builtin(threshold int) (*Pack, error) {
	icons := make(map[ID]*bitmap.Packed, len(All))
	for _, id := range All {
		img, err := Render(id)
		if err != nil {
			return nil, err
		}
		if icons[id], err = Encode(img, threshold); err != nil {
			return nil, fmt.Errorf("encode %s failed: %w", id, err)
		}
	}
	return NewPack(threshold, icons), nil
}
