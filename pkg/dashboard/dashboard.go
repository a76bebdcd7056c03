// Package dashboard runs the refresh loop: fetch a forecast, lay it out and
// show it, once a day or whenever asked.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"weatherpaper/pkg/canvas"
	"weatherpaper/pkg/device"
	"weatherpaper/pkg/forecast"
	"weatherpaper/pkg/journal"
	"weatherpaper/pkg/layout"
)

// BannerText is shown when no forecast could be fetched.
const BannerText = "Weather data unavailable"

func New(provider forecast.Provider, src forecast.Source, engine *layout.Engine, panel device.Panel, params *Params, logger *zap.Logger, opts ...Option) *Dashboard {
	d := &Dashboard{
		provider: provider,
		src:      src,
		engine:   engine,
		panel:    panel,
		params:   params,
		logger:   logger,
		history:  NewHistory(),
		now:      time.Now,
		loc:      time.Local,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

type Dashboard struct {
	provider forecast.Provider
	src      forecast.Source
	engine   *layout.Engine
	panel    device.Panel
	params   *Params
	logger   *zap.Logger
	history  *History
	journal  *journal.Journal
	now      func() time.Time
	loc      *time.Location
}

func (d *Dashboard) History() *History {
	return d.history
}

func (d *Dashboard) Params() *Params {
	return d.params
}

func (d *Dashboard) Journal() *journal.Journal {
	return d.journal
}

// clock is the current time in the forecast's zone.
func (d *Dashboard) clock() time.Time {
	return d.now().In(d.loc)
}

// Drawing runs one pass. When the forecast cannot be fetched a banner is
// shown instead and the fetch error is returned.
func (d *Dashboard) Drawing(ctx context.Context) error {
	today := d.clock()
	geo := d.engine.Geometry()
	c := canvas.New(geo.Width, geo.Height)
	frame := &Frame{At: today, Source: d.src.Name(), Canvas: c}

	series, errF := d.provider.Forecast(ctx)
	if errF != nil {
		frame.Err = errF
		if err := d.engine.Banner(c, BannerText); err != nil {
			return fmt.Errorf("draw banner failed: %w", err)
		}
	} else {
		series.Sort()
		frame.Samples = len(series.Hourly)
		if err := d.engine.Title(c, today); err != nil {
			return fmt.Errorf("draw title failed: %w", err)
		}
		if err := d.engine.Render(c, layout.ForSource(d.src, series, today)); err != nil {
			d.record(ctx, frame, err)
			return fmt.Errorf("render failed: %w", err)
		}
	}

	if err := d.show(c); err != nil {
		d.record(ctx, frame, err)
		return fmt.Errorf("show frame failed: %w", err)
	}
	d.history.Add(frame)
	d.record(ctx, frame, errF)

	if errF != nil {
		return fmt.Errorf("get forecast failed: %w", errF)
	}

	d.logger.With(
		zap.String("source", frame.Source),
		zap.Int("samples", frame.Samples),
	).Info("frame shown")
	return nil
}

// show wakes the panel for one refresh and puts it back to sleep.
func (d *Dashboard) show(c *canvas.Canvas) error {
	if err := d.panel.Init(); err != nil {
		return err
	}
	if err := d.panel.Show(c); err != nil {
		return err
	}
	return d.panel.Sleep()
}

func (d *Dashboard) record(ctx context.Context, f *Frame, err error) {
	e := journal.Entry{At: f.At, Source: f.Source, Samples: f.Samples}
	if err != nil {
		e.Err = err.Error()
	}
	if err := d.journal.Record(ctx, e); err != nil {
		d.logger.With(zap.Error(err)).Warn("journal failed")
	}
}

// Run draws now, then at every midnight of the forecast's zone, retrying failed passes after
// ErrorWait, until ctx is done.
func (d *Dashboard) Run(ctx context.Context) error {
	timer := time.NewTimer(time.Nanosecond)
	defer timer.Stop()

	wakeupChan := d.params.WakeupChan()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-wakeupChan:
			timer.Reset(time.Millisecond)
			continue
		case <-timer.C:
			if d.params.Paused() {
				d.logger.Info("refresh paused, skip...")
				continue
			}

			wait := untilMidnight(d.clock())
			if err := d.Drawing(ctx); err != nil {
				d.logger.With(zap.Error(err)).Info("drawing failed")
				wait = d.params.ErrorWait
			}
			d.params.setNext(d.clock().Add(wait))
			timer.Reset(wait)
		}
	}
}
