package main

import (
	"context"
	"fmt"
	"image"
	"net/http"

	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"weatherpaper/internal/logging"
	"weatherpaper/pkg/device"
	"weatherpaper/pkg/device/bridge"
	"weatherpaper/pkg/device/epd7in5b"
	"weatherpaper/pkg/device/remote"
	"weatherpaper/pkg/device/virtual"
	"weatherpaper/pkg/layout"
)

var kind = flag.String("panel", "epd", "local panel: epd, bridge or mock")
var serial = flag.String("serial", "ttyACM0", "serial name of the USB bridge")
var spiPort = flag.String("spi", "", "SPI port, first one when empty")
var listen = flag.String("listen", ":9123", "listen addr")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()

	fx.New(
		fx.Provide(
			func() (*zap.Logger, error) {
				return logging.New(*debug)
			},
			func() *http.Server {
				return &http.Server{Addr: *listen}
			},
			openPanel,
		),
		fx.Invoke(
			remote.Proxy,
		),
	).Run()
}

func openPanel(lifecycle fx.Lifecycle, logger *zap.Logger) (device.Panel, error) {
	var p device.Panel
	var err error

	geo := layout.DefaultGeometry
	switch *kind {
	case "epd":
		pins := epd7in5b.HatPins
		pins.SPI = *spiPort
		p, err = epd7in5b.Open(pins, &epd7in5b.EPD7in5bV2, logger)
	case "bridge":
		p, err = bridge.Open(*serial, image.Pt(geo.Width, geo.Height), logger)
	case "mock":
		p = virtual.Mock(logger)
	default:
		err = fmt.Errorf("unknown panel %q", *kind)
	}
	if err != nil {
		return nil, err
	}

	lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return p.Halt()
		},
	})
	return p, nil
}
