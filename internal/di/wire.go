//go:build wireinject
// +build wireinject

package di

import (
	"SignalDesk/pkg/config"
	"SignalDesk/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideBytesCache,

		// Repositories
		ProvideBarStore,
		ProvideSignalStore,
		ProvideSentimentStore,
		ProvideSignalPublisher,
		ProvideMarketStream,

		// Scoring
		ProvideScoringEngine,

		// Use cases
		ProvideBarProcessor,
		ProvideBarCollector,
		ProvideSignalGenerator,
		ProvideExecuteSignal,
		ProvideScanner,
		ProvideKafkaHandlers,

		// HTTP
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
