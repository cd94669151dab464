//go:build wireinject
// +build wireinject

package di

import (
	"StockScan/pkg/config"
	"StockScan/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideCache,
		ProvideQuoteProvider,

		// Domain and use cases
		ProvideAnalyzer,
		ProvideScanner,

		// Transport and jobs
		ProvideScanHandler,
		ProvideHTTPServer,
		ProvideWarmup,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
