package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"weatherpaper/internal/config"
	"weatherpaper/internal/logging"
	"weatherpaper/pkg/dashboard"
	"weatherpaper/pkg/forecast"
	"weatherpaper/pkg/icon"
	"weatherpaper/pkg/journal"
	"weatherpaper/pkg/layout"
	"weatherpaper/pkg/mixer"
)

func main() {
	cfg := config.Bind(flag.CommandLine)
	if err := config.Parse(flag.CommandLine, os.Args[1:], nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fx.New(
		fx.Supply(cfg),
		fx.Provide(
			func(cfg *config.Config) (*zap.Logger, error) {
				return logging.New(cfg.Debug)
			},
			newProvider,
			newPack,
			newJournal,
			newMixer,
			newDashboard,
		),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
		fx.Invoke(
			start,
		),
	).Run()
}

func newProvider(cfg *config.Config, logger *zap.Logger) (forecast.Provider, forecast.Source, error) {
	src, _ := forecast.ByName(cfg.Source)

	q, err := cfg.Query()
	if err != nil {
		return nil, nil, err
	}

	if cfg.Replay != "" {
		return forecast.NewReplay(src, afero.NewOsFs(), cfg.Replay, q.Timezone), src, nil
	}

	var opts []forecast.FetcherOption
	if cfg.CacheDir != "" {
		cache, err := forecast.OpenCache(cfg.CacheDir)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, forecast.WithCache(cache))
	}

	return forecast.NewFetcher(src, q, logger, opts...), src, nil
}

func newPack(cfg *config.Config, logger *zap.Logger) (*icon.Pack, error) {
	pack, err := icon.Open(cfg.IconDir, cfg.Threshold)
	if err != nil {
		return nil, err
	}
	if missing := pack.Missing(); len(missing) > 0 {
		logger.With(zap.Int("count", len(missing))).Warn("icon pack incomplete")
	}
	return pack, nil
}

func newJournal(cfg *config.Config, lifecycle fx.Lifecycle) (*journal.Journal, error) {
	if cfg.Journal == "" {
		return nil, nil
	}
	j, err := journal.Open(cfg.Journal)
	if err != nil {
		return nil, err
	}
	lifecycle.Append(fx.StopHook(j.Close))
	return j, nil
}

func newDashboard(cfg *config.Config, provider forecast.Provider, src forecast.Source, pack *icon.Pack, panel *mixer.Drawer, j *journal.Journal, logger *zap.Logger) (*dashboard.Dashboard, error) {
	loc, err := cfg.TimeLocation()
	if err != nil {
		return nil, err
	}

	params := dashboard.NewParams()
	params.ErrorWait = cfg.ErrorWait

	return dashboard.New(provider, src, layout.New(pack), panel, params, logger,
		dashboard.WithJournal(j),
		dashboard.WithLocation(loc),
	), nil
}

func start(cfg *config.Config, d *dashboard.Dashboard, panel *mixer.Drawer, lifecycle fx.Lifecycle, logger *zap.Logger) error {
	var bot *dashboard.Bot
	if cfg.TgToken != "" {
		var err error
		if bot, err = dashboard.NewBot(cfg.TgToken, d, logger); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	exited := make(chan struct{})

	lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if bot != nil {
				bot.Start()
			}
			go func() {
				defer close(exited)
				_ = d.Run(ctx)
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			if bot != nil {
				bot.Stop()
			}
			cancel()
			<-exited
			logger.Info("halting panels")
			return panel.Halt()
		},
	})

	return nil
}
