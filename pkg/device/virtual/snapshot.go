// Package virtual holds panels without hardware behind them.
package virtual

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"weatherpaper/pkg/canvas"
	"weatherpaper/pkg/device"
	"weatherpaper/pkg/storage"
)

// PNG encodes img scaled by scale with a thin gray frame around it, the way
// the panel bezel looks.
func PNG(img image.Image, scale int) ([]byte, error) {
	if scale < 1 {
		scale = 1
	}
	b := img.Bounds()
	scaled := imaging.Resize(img, b.Dx()*scale, b.Dy()*scale, imaging.NearestNeighbor)

	const border = 8
	dc := gg.NewContext(scaled.Bounds().Dx()+2*border, scaled.Bounds().Dy()+2*border)
	dc.SetRGB255(0x60, 0x60, 0x60)
	dc.Clear()
	dc.DrawImage(scaled, border, border)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Snapshot writes every shown frame as a PNG into a spool directory.
func Snapshot(spool *storage.Spool, scale int, logger *zap.Logger) *Snapshotter {
	return &Snapshotter{spool: spool, scale: scale, logger: logger}
}

type Snapshotter struct {
	spool  *storage.Spool
	scale  int
	logger *zap.Logger
	last   string
}

var _ device.Panel = (*Snapshotter)(nil)

func (s *Snapshotter) Init() error  { return nil }
func (s *Snapshotter) Sleep() error { return nil }
func (s *Snapshotter) Halt() error  { return nil }

func (s *Snapshotter) Show(c *canvas.Canvas) error {
	if !s.spool.Enabled() {
		return nil
	}

	bs, err := PNG(c, s.scale)
	if err != nil {
		return fmt.Errorf("encode snapshot failed: %w", err)
	}

	name := s.spool.NewFile(".png")
	if err := afero.WriteFile(s.spool.Fs(), name, bs, 0644); err != nil {
		return fmt.Errorf("write snapshot failed: %w", err)
	}

	s.last = name
	s.logger.With(zap.String("file", s.spool.RealPath(name))).Info("snapshot saved")
	return nil
}

// Last is the name of the newest snapshot, empty before the first one.
func (s *Snapshotter) Last() string {
	return s.last
}
