package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"FxDash/pkg/config"
	xhttp "FxDash/pkg/http"
	applogger "FxDash/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, l *applogger.Logger, srv *xhttp.Server) *App {
	return &App{cfg: cfg, log: l, httpServer: srv}
}

// Run starts the HTTP server and blocks until interrupted or the listener fails.
func (a *App) Run() error {
	errCh := a.httpServer.Start()
	a.log.Info("fxdash started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("upstream", a.cfg.Upstream.BaseURL),
		applogger.Bool("upstream_mock", a.cfg.Upstream.MockData),
		applogger.Bool("dashboard_mock", a.cfg.Dashboard.UseMockData))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			a.log.Error("http server error", applogger.Error(err))
			return err
		}
	case <-sigCh:
		a.log.Info("shutdown signal received")
	}
	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error("http server shutdown error", applogger.Error(err))
		return err
	}
	a.log.Info("shutdown complete")
	return nil
}
