package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/samber/lo"

	"weatherpaper/pkg/bitmap"
	"weatherpaper/pkg/icon"
	"weatherpaper/pkg/tricolor"
)

// fitIcon scales img into an icon cell and flattens it, centered, on white.
func fitIcon(img image.Image) image.Image {
	fit := imaging.Fit(img, icon.Size, icon.Size, imaging.Lanczos)
	bg := imaging.New(icon.Size, icon.Size, color.White)
	return imaging.OverlayCenter(bg, fit, 1.0)
}

// sources lists the PNG files in dir named after a known glyph.
func sources(dir string) (map[icon.ID]string, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	found := make(map[icon.ID]string)
	var skipped []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".png") {
			continue
		}
		id := icon.ID(strings.TrimSuffix(name, filepath.Ext(name)))
		if !lo.Contains(icon.All, id) {
			skipped = append(skipped, name)
			continue
		}
		found[id] = filepath.Join(dir, name)
	}
	return found, skipped, nil
}

// ascii draws a packed glyph with '#' for ink and '.' for paper.
func ascii(p *bitmap.Packed) string {
	var sb strings.Builder
	s := bitmap.NewStream(p, bitmap.BlackOnWhite)
	for i := 0; ; i++ {
		c, ok := s.Next()
		if !ok {
			break
		}
		if i > 0 && i%p.Width() == 0 {
			sb.WriteByte('\n')
		}
		sb.WriteByte(lo.Ternary(c == tricolor.Black, byte('#'), byte('.')))
	}
	sb.WriteByte('\n')
	return sb.String()
}
