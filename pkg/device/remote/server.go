package remote

import (
	"context"
	"net"
	"net/http"
	"net/rpc"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"weatherpaper/pkg/canvas"
	"weatherpaper/pkg/device"
)

var ErrUnknownCommand = errors.New("unknown command")

// Handler serves panel over net/rpc on rpc.DefaultRPCPath.
func Handler(panel device.Panel) (http.Handler, error) {
	server := rpc.NewServer()
	if err := server.Register(&Service{dev: panel}); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(rpc.DefaultRPCPath, server)
	return mux, nil
}

// Proxy exposes panel on srv for the lifetime of the application.
func Proxy(panel device.Panel, srv *http.Server, lifecycle fx.Lifecycle, logger *zap.Logger) error {
	h, err := Handler(panel)
	if err != nil {
		return err
	}
	srv.Handler = h

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.With(zap.String("addr", ln.Addr().String())).Info("panel proxy listening")

			go func() {
				if err := srv.Serve(ln); err != http.ErrServerClosed {
					logger.With(zap.Error(err)).Error("panel proxy stopped")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return nil
}

type Service struct {
	dev device.Panel
}

func (s *Service) Command(name string, _ *EmptyResponse) error {
	switch name {
	case "init":
		return s.dev.Init()
	case "sleep":
		return s.dev.Sleep()
	case "halt":
		return s.dev.Halt()
	}

	return errors.Wrap(ErrUnknownCommand, name)
}

func (s *Service) Show(req *ShowRequest, _ *EmptyResponse) error {
	stride := (req.Width + 7) / 8
	if req.Width <= 0 || req.Height <= 0 ||
		len(req.Black) != stride*req.Height || len(req.Chromatic) != stride*req.Height {
		return errors.Wrapf(device.ErrSize, "planes for %dx%d", req.Width, req.Height)
	}

	return s.dev.Show(canvas.FromPlanes(req.Width, req.Height, req.Black, req.Chromatic))
}
