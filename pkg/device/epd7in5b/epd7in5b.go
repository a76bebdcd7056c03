// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epd7in5b drives the Waveshare 7.5" V2 (B) black/white/red e-paper
// panel over SPI.
package epd7in5b

import (
	"fmt"
	"image"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"weatherpaper/pkg/canvas"
	"weatherpaper/pkg/device"
)

var errBusyTimeout = errors.New("panel stayed busy")

// Opts describes the panel and how it is wired.
type Opts struct {
	Width, Height int
	// MaxTx caps a single SPI transfer; spidev defaults to 4096 bytes.
	MaxTx       int
	BusyTimeout time.Duration
	Speed       physic.Frequency
}

// EPD7in5bV2 is the 800×480 V2 (B) panel.
var EPD7in5bV2 = Opts{
	Width:       800,
	Height:      480,
	MaxTx:       4096,
	BusyTimeout: 60 * time.Second,
	Speed:       4 * physic.MegaHertz,
}

// Pins names the GPIO lines of the HAT. Chip select is left to the SPI port.
type Pins struct {
	SPI  string
	DC   string
	RST  string
	BUSY string
	PWR  string
}

// HatPins is the Waveshare e-Paper HAT wiring on a Raspberry Pi.
var HatPins = Pins{
	SPI:  "",
	DC:   "GPIO25",
	RST:  "GPIO17",
	BUSY: "GPIO24",
	PWR:  "GPIO18",
}

type Dev struct {
	c    conn.Conn
	port spi.PortCloser

	dc   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIO
	pwr  gpio.PinOut

	opts   *Opts
	logger *zap.Logger
}

var _ device.Panel = (*Dev)(nil)

// New connects to a panel on an already opened port.
func New(p spi.Port, dc, rst gpio.PinOut, busy gpio.PinIO, opts *Opts, logger *zap.Logger) (*Dev, error) {
	c, err := p.Connect(opts.Speed, spi.Mode0, 8)
	if err != nil {
		return nil, errors.Wrap(err, "spi connect")
	}

	if err := busy.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return nil, errors.Wrap(err, "busy pin")
	}

	return &Dev{
		c:      c,
		dc:     dc,
		rst:    rst,
		busy:   busy,
		opts:   opts,
		logger: logger,
	}, nil
}

// Open initializes the host drivers and looks the pins up by name.
func Open(pins Pins, opts *Opts, logger *zap.Logger) (*Dev, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "host init")
	}

	port, err := spireg.Open(pins.SPI)
	if err != nil {
		return nil, errors.Wrap(err, "spi open")
	}

	lookup := func(name string) (gpio.PinIO, error) {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("gpio %q not found", name)
		}
		return p, nil
	}

	var dc, rst, busy gpio.PinIO
	for _, l := range []struct {
		name string
		pin  *gpio.PinIO
	}{
		{pins.DC, &dc},
		{pins.RST, &rst},
		{pins.BUSY, &busy},
	} {
		if *l.pin, err = lookup(l.name); err != nil {
			_ = port.Close()
			return nil, err
		}
	}

	d, err := New(port, dc, rst, busy, opts, logger)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	d.port = port

	if pins.PWR != "" {
		if d.pwr, err = lookup(pins.PWR); err != nil {
			_ = port.Close()
			return nil, err
		}
	}

	return d, nil
}

func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.opts.Width, d.opts.Height)
}

// Init powers the panel, resets it and loads the panel settings.
func (d *Dev) Init() error {
	eh := &errorHandler{d: d}

	if d.pwr != nil {
		eh.err = d.pwr.Out(gpio.High)
	}
	eh.reset()
	initDisplay(eh, d.opts)

	d.logger.With(zap.Error(eh.err)).Debug("init")
	return eh.err
}

func (d *Dev) Show(c *canvas.Canvas) error {
	if err := device.CheckSize(c, d.Bounds().Size()); err != nil {
		return err
	}

	black, chromatic := c.Planes()
	start := time.Now()

	eh := &errorHandler{d: d}
	showPlanes(eh, black, chromatic)

	d.logger.With(
		zap.Int("bytes", len(black)+len(chromatic)),
		zap.Duration("cost", time.Since(start)),
		zap.Error(eh.err),
	).Info("refresh")
	return eh.err
}

func (d *Dev) Sleep() error {
	eh := &errorHandler{d: d}
	sleepDisplay(eh)
	if d.pwr != nil && eh.err == nil {
		eh.err = d.pwr.Out(gpio.Low)
	}
	return eh.err
}

// Halt puts the panel to sleep and closes the port.
func (d *Dev) Halt() error {
	err := d.Sleep()
	if d.port != nil {
		if err2 := d.port.Close(); err == nil {
			err = err2
		}
	}
	return err
}

func (d *Dev) String() string {
	return fmt.Sprintf("epd7in5b.Dev{%s, %dx%d}", d.c, d.opts.Width, d.opts.Height)
}
