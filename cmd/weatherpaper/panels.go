package main

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"weatherpaper/internal/config"
	"weatherpaper/pkg/device"
	"weatherpaper/pkg/device/bridge"
	"weatherpaper/pkg/device/epd7in5b"
	"weatherpaper/pkg/device/remote"
	"weatherpaper/pkg/device/terminal"
	"weatherpaper/pkg/device/virtual"
	"weatherpaper/pkg/layout"
	"weatherpaper/pkg/mixer"
	"weatherpaper/pkg/storage"
)

func openPanel(kind string, cfg *config.Config, logger *zap.Logger) (device.Panel, error) {
	geo := layout.DefaultGeometry
	size := image.Pt(geo.Width, geo.Height)

	switch kind {
	case config.PanelEPD:
		pins := epd7in5b.HatPins
		pins.SPI = cfg.SPIPort
		return epd7in5b.Open(pins, &epd7in5b.EPD7in5bV2, logger)
	case config.PanelBridge:
		return bridge.Open(cfg.Serial, size, logger)
	case config.PanelRemote:
		return remote.New(cfg.Remote)
	case config.PanelTerminal:
		return terminal.New(&terminal.Opts{}), nil
	case config.PanelSnapshot:
		spool, err := storage.OpenSpool(cfg.PreviewDir)
		if err != nil {
			return nil, err
		}
		return virtual.Snapshot(spool, 1, logger), nil
	case config.PanelMock:
		return virtual.Mock(logger), nil
	}
	return nil, fmt.Errorf("unknown panel %q", kind)
}

// newMixer opens every configured panel. Effects apply to hardware panels
// only; previews stay upright.
func newMixer(cfg *config.Config, logger *zap.Logger) (*mixer.Drawer, error) {
	var effs []mixer.Effect
	if cfg.Rotate {
		effs = append(effs, mixer.EffectRotate())
	}
	if cfg.Invert {
		effs = append(effs, mixer.EffectInvert())
	}

	var outs []mixer.Output
	for _, kind := range cfg.Panels {
		p, err := openPanel(kind, cfg, logger.With(zap.String("panel", kind)))
		if err != nil {
			for _, o := range outs {
				_ = o.Panel.Halt()
			}
			return nil, fmt.Errorf("open %s panel failed: %w", kind, err)
		}

		out := mixer.Output{Panel: p}
		switch kind {
		case config.PanelEPD, config.PanelBridge, config.PanelRemote:
			out.Effects = effs
		}
		outs = append(outs, out)
	}

	return mixer.NewDrawer(outs, logger), nil
}
