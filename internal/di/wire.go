//go:build wireinject
// +build wireinject

package di

import (
	"FxDash/pkg/config"
	"FxDash/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Analytics backend and data generators
		ProvideMockGenerator,
		ProvideBackend,

		// Use cases
		ProvideAnalyticsProxy,
		ProvideDashboardClient,
		ProvideSnapshotUseCase,

		// HTTP
		ProvideHandlers,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
