// Package mixer shows one frame on several panels at once.
package mixer

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"weatherpaper/pkg/canvas"
	"weatherpaper/pkg/device"
)

// Output is one panel and the effects only it gets.
type Output struct {
	Panel   device.Panel
	Effects []Effect
}

func NewDrawer(outs []Output, logger *zap.Logger, opts ...Option) *Drawer {
	d := &Drawer{
		outs:   outs,
		logger: logger,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

type Drawer struct {
	outs   []Output
	effs   []Effect
	logger *zap.Logger
}

var _ device.Panel = (*Drawer)(nil)

func (d *Drawer) Init() error {
	return d.each(device.Panel.Init)
}

func (d *Drawer) Sleep() error {
	return d.each(device.Panel.Sleep)
}

func (d *Drawer) Halt() error {
	return d.each(device.Panel.Halt)
}

// Show hands c to every panel. A failing panel does not keep the others from
// updating; all failures are returned together.
func (d *Drawer) Show(c *canvas.Canvas) error {
	shared, err := apply(c, d.effs)
	if err != nil {
		return err
	}

	var errs error
	for i, out := range d.outs {
		frame, err := apply(shared, out.Effects)
		if err == nil {
			err = out.Panel.Show(frame)
		}
		if err != nil {
			d.logger.With(zap.Int("panel", i), zap.Error(err)).Warn("show failed")
			errs = multierr.Append(errs, fmt.Errorf("panel %d: %w", i, err))
		}
	}
	return errs
}

func (d *Drawer) each(fn func(device.Panel) error) error {
	var errs error
	for i, out := range d.outs {
		if err := fn(out.Panel); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("panel %d: %w", i, err))
		}
	}
	return errs
}

func apply(c *canvas.Canvas, effs []Effect) (*canvas.Canvas, error) {
	for _, eff := range effs {
		next, err := eff.Process(c)
		if err != nil {
			return nil, fmt.Errorf("effect %s failed: %w", eff.Name(), err)
		}
		c = next
	}
	return c, nil
}
