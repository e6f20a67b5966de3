package di

import (
	"fmt"

	"FxDash/internal/dashboard"
	domsvc "FxDash/internal/domain/service"
	"FxDash/internal/handler/api"
	"FxDash/internal/services/analytics"
	"FxDash/internal/services/mock"
	"FxDash/internal/usecase"
	"FxDash/pkg/config"
	xhttp "FxDash/pkg/http"
	"FxDash/pkg/logger"
	"FxDash/pkg/metrics"
	"FxDash/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

// ProvideLogger creates the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder on the default registry served at /metrics.
func ProvideMetrics() domsvc.Metrics {
	return metrics.New(prometheus.DefaultRegisterer)
}

// ProvideMockGenerator creates the shared mock data generator.
func ProvideMockGenerator() *mock.Generator {
	return mock.NewGenerator()
}

// ProvideBackend creates the analytics backend: the remote service, or the
// generator when upstream.mock_data is set.
func ProvideBackend(cfg *config.Config, gen *mock.Generator, m domsvc.Metrics, l *logger.Logger) analytics.Backend {
	if cfg.Upstream.MockData {
		l.Warn("upstream mock data enabled, analytics backend will not be called")
		return analytics.NewMockBackend(gen)
	}
	// Deadlines are set per resource; no client-wide timeout.
	client := xhttp.NewClient(xhttp.WithTimeout(0))
	return analytics.NewHTTPBackend(cfg.Upstream.BaseURL, client, m)
}

// ProvideAnalyticsProxy creates the proxy use case.
func ProvideAnalyticsProxy(backend analytics.Backend, cfg *config.Config, m domsvc.Metrics, l *logger.Logger) *usecase.AnalyticsProxy {
	return usecase.NewAnalyticsProxy(backend, cfg.Upstream, m, l)
}

// ProvideDashboardClient creates the client data-access layer reading the proxy routes.
func ProvideDashboardClient(cfg *config.Config, gen *mock.Generator, m domsvc.Metrics, l *logger.Logger) domsvc.DashboardReader {
	return dashboard.NewClient(dashboard.Options{
		BaseURL:     cfg.Dashboard.BaseURL,
		Timeout:     cfg.Dashboard.Timeout,
		UseMockData: cfg.Dashboard.UseMockData,
	}, xhttp.NewClient(xhttp.WithTimeout(cfg.Dashboard.Timeout)), gen, m, l)
}

// ProvideSnapshotUseCase creates the dashboard snapshot use case.
func ProvideSnapshotUseCase(reader domsvc.DashboardReader, cfg *config.Config) *usecase.DashboardSnapshotUseCase {
	return usecase.NewDashboardSnapshotUseCase(reader, cfg.Dashboard.Timeout)
}

// ProvideHandlers collects every HTTP handler.
func ProvideHandlers(l *logger.Logger, proxy *usecase.AnalyticsProxy, snapshot *usecase.DashboardSnapshotUseCase) []xhttp.Handler {
	return []xhttp.Handler{
		api.NewAnalyticsEchoHandler(l, proxy),
		api.NewDashboardEchoHandler(l, snapshot),
	}
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, handlers []xhttp.Handler, l *logger.Logger) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(handlers,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithMetrics(metricsPath),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithLogger(l),
	)
}

// ProvideApp creates the main application.
func ProvideApp(cfg *config.Config, l *logger.Logger, srv *xhttp.Server) *server.App {
	return server.New(cfg, l, srv)
}
