package virtual

import (
	"go.uber.org/zap"

	"weatherpaper/pkg/canvas"
	"weatherpaper/pkg/device"
	"weatherpaper/pkg/tricolor"
)

// Mock is a panel that only logs what it is asked to do.
func Mock(logger *zap.Logger) *Mocker {
	return &Mocker{l: logger}
}

type Mocker struct {
	l     *zap.Logger
	Shown int
}

var _ device.Panel = (*Mocker)(nil)

func (m *Mocker) Init() error {
	m.l.Info("init")
	return nil
}

func (m *Mocker) Sleep() error {
	m.l.Info("sleep")
	return nil
}

func (m *Mocker) Halt() error {
	m.l.Info("halt")
	return nil
}

func (m *Mocker) Show(c *canvas.Canvas) error {
	m.Shown++
	m.l.With(
		zap.Int("w", c.Bounds().Dx()),
		zap.Int("h", c.Bounds().Dy()),
		zap.Int("black", c.Count(tricolor.Black)),
		zap.Int("chromatic", c.Count(tricolor.Chromatic)),
	).Info("show")
	return nil
}
