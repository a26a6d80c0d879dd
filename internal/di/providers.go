package di

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"SignalDesk/internal/domain/repository"
	"SignalDesk/internal/handler/api"
	mid "SignalDesk/internal/middleware"
	internalrepo "SignalDesk/internal/repository"
	svccache "SignalDesk/internal/service/cache"
	"SignalDesk/internal/service/marketfeed"
	svcmetrics "SignalDesk/internal/service/metrics"
	"SignalDesk/internal/services/scoring"
	"SignalDesk/internal/usecase"
	pkgch "SignalDesk/pkg/clickhouse"
	"SignalDesk/pkg/config"
	xhttp "SignalDesk/pkg/http"
	pkgkafka "SignalDesk/pkg/kafka"
	applogger "SignalDesk/pkg/logger"
	"SignalDesk/pkg/metrics"
	"SignalDesk/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "json"
	if cfg.Environment == "dev" || cfg.Environment == "local" {
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer; nil when no brokers are
// configured.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	svcmetrics.Register()
	return metrics.New()
}

// ProvideBarStore creates the ClickHouse bar store and ensures its schema.
func ProvideBarStore(chClient *pkgch.Client, l *applogger.Logger) (repository.BarStore, error) {
	store := internalrepo.NewCHBarStore(chClient)
	store.SetLogger(l)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// ProvideSignalStore creates the ClickHouse signal store and ensures its schema.
func ProvideSignalStore(chClient *pkgch.Client) (repository.SignalStore, error) {
	store := internalrepo.NewCHSignalStore(chClient)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// ProvideSentimentStore creates the ClickHouse sentiment store and ensures its schema.
func ProvideSentimentStore(chClient *pkgch.Client) (repository.SentimentStore, error) {
	store := internalrepo.NewCHSentimentStore(chClient)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// ProvideSignalPublisher creates the Kafka signal publisher; nil when Kafka
// is not configured.
func ProvideSignalPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil || cfg.Kafka.SignalsTopic == "" {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.SignalsTopic)
}

// ProvideBytesCache picks Redis when enabled, in-process TTL cache otherwise.
func ProvideBytesCache(cfg *config.Config) svccache.BytesCache {
	if cfg.Redis.Enabled {
		return svccache.NewRedisCache(svccache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	return svccache.NewTTLCache()
}

// ProvideScoringEngine builds the engine from the scoring config section,
// falling back to stock parameters for unset fields.
func ProvideScoringEngine(cfg *config.Config) (*scoring.Engine, error) {
	sc := scoring.DefaultConfig()
	if cfg.Scoring.BuyThreshold != 0 {
		sc.BuyThreshold = cfg.Scoring.BuyThreshold
	}
	if cfg.Scoring.SellThreshold != 0 {
		sc.SellThreshold = cfg.Scoring.SellThreshold
	}
	if cfg.Scoring.MaxPositionSize != 0 {
		sc.MaxPositionSize = cfg.Scoring.MaxPositionSize
	}
	weightsSet := cfg.Scoring.SentimentWeight != 0 || cfg.Scoring.TechnicalWeight != 0 ||
		cfg.Scoring.VolumeWeight != 0 || cfg.Scoring.MomentumWeight != 0
	if weightsSet {
		sc.SentimentWeight = cfg.Scoring.SentimentWeight
		sc.TechnicalWeight = cfg.Scoring.TechnicalWeight
		sc.VolumeWeight = cfg.Scoring.VolumeWeight
		sc.MomentumWeight = cfg.Scoring.MomentumWeight
	}
	if cfg.Scoring.MinBars != 0 {
		sc.MinBars = cfg.Scoring.MinBars
	}
	if cfg.Scoring.SignalTTL != 0 {
		sc.SignalTTL = cfg.Scoring.SignalTTL
	}
	validated, err := scoring.NewConfig(sc)
	if err != nil {
		return nil, fmt.Errorf("scoring config: %w", err)
	}
	return scoring.NewEngine(validated), nil
}

// ProvideMarketStream creates the bar feed WebSocket stream.
func ProvideMarketStream(cfg *config.Config) repository.MarketStream {
	if cfg.Feed.WebSocketURL == "" {
		return nil
	}
	return marketfeed.New(
		cfg.Feed.APIKey,
		cfg.Feed.WebSocketURL,
		cfg.Feed.Symbols,
		cfg.Feed.ReconnectDelay,
		cfg.Feed.PingInterval,
	)
}

// ProvideBarProcessor creates the bar processor use case.
func ProvideBarProcessor(store repository.BarStore, m repository.Metrics, cfg *config.Config) *usecase.BarProcessor {
	return usecase.NewBarProcessor(store, m, cfg.Kafka.Producer.BatchSize, cfg.Kafka.Producer.Linger)
}

// ProvideBarCollector creates the bar collector use case; nil without a feed.
func ProvideBarCollector(
	stream repository.MarketStream,
	processor *usecase.BarProcessor,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.BarCollector {
	if stream == nil {
		return nil
	}
	pipe := mid.NewBarPipeline(processor, m,
		mid.WithMaxRPS(cfg.Feed.MaxRPS),
		mid.WithBufferSize(cfg.Feed.BufferSize),
	)
	return usecase.NewBarCollector(stream, processor, m, pipe)
}

// ProvideSignalGenerator creates the signal generator use case.
func ProvideSignalGenerator(
	engine *scoring.Engine,
	bars repository.BarStore,
	sentiment repository.SentimentStore,
	signals repository.SignalStore,
	pub repository.Publisher,
	cache svccache.BytesCache,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.SignalGenerator {
	return usecase.NewSignalGenerator(engine, bars, sentiment, signals, pub, cache, m, l)
}

// ProvideExecuteSignal creates the execute use case.
func ProvideExecuteSignal(
	signals repository.SignalStore,
	cache svccache.BytesCache,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.ExecuteSignalUseCase {
	return usecase.NewExecuteSignalUseCase(signals, cache, m, l)
}

// ProvideScanner creates the periodic scanner; nil when disabled.
func ProvideScanner(gen *usecase.SignalGenerator, cfg *config.Config, l *applogger.Logger) *usecase.Scanner {
	if !cfg.Scanner.Enabled {
		return nil
	}
	return usecase.NewScanner(gen, cfg.Feed.Symbols, l,
		usecase.WithScanInterval(cfg.Scanner.Interval),
		usecase.WithScanWorkers(cfg.Scanner.Workers),
		usecase.WithScanLookback(cfg.Scanner.Lookback),
		usecase.WithScanTimeframe(repository.NormalizeTimeframe(cfg.Scanner.TF)),
	)
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML; nil
// when no brokers are configured.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideKafkaHandlers registers handlers for the configured topics.
func ProvideKafkaHandlers(
	bars repository.BarStore,
	sentiment repository.SentimentStore,
	m repository.Metrics,
	cfg *config.Config,
) []pkgkafka.MessageHandler {
	var handlers []pkgkafka.MessageHandler
	if cfg.Kafka.BarsTopic != "" {
		handlers = append(handlers, usecase.NewKafkaBarsHandler(cfg.Kafka.BarsTopic, bars, m))
	}
	if cfg.Kafka.NewsTopic != "" {
		handlers = append(handlers, usecase.NewKafkaNewsHandler(cfg.Kafka.NewsTopic, sentiment, m))
	}
	return handlers
}

// ProvideHTTPHandler creates the Echo route handler.
func ProvideHTTPHandler(
	l *applogger.Logger,
	gen *usecase.SignalGenerator,
	exec *usecase.ExecuteSignalUseCase,
	bars repository.BarStore,
) xhttp.Handler {
	return api.NewSignalsEchoHandler(l, gen, exec, bars)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	collector *usecase.BarCollector,
	scanner *usecase.Scanner,
	consumer *pkgkafka.Consumer,
	handlers []pkgkafka.MessageHandler,
	chClient *pkgch.Client,
	httpHandler xhttp.Handler,
	m repository.Metrics,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NewHookChain(
			consumeTimingHook(m),
			pkgkafka.NoopHook{},
		))
	}
	app := server.New(cfg, collector, scanner, consumer, handlers, chClient)
	app.SetHTTPHandler(httpHandler)
	if collector != nil {
		app.BarProc = collector.Processor()
	}
	return app
}

// consumeTimingHook stamps handling start time and records per-topic consume
// latency and errors.
func consumeTimingHook(m repository.Metrics) pkgkafka.ConsumerHook {
	return pkgkafka.HookFuncs{
		Before: func(ctx context.Context, topic string, km kafka.Message, data []byte) (context.Context, kafka.Message, []byte, error) {
			ctx = pkgkafka.WithStartTime(ctx, time.Now())
			ctx = pkgkafka.WithTraceID(ctx, pkgkafka.ExtractTraceID(km))
			return ctx, km, data, nil
		},
		After: func(ctx context.Context, topic string, km kafka.Message, data []byte, err error) {
			if start, ok := ctx.Value(pkgkafka.CtxStartTime).(time.Time); ok {
				m.RecordLatency("consume_"+topic, time.Since(start).Seconds())
			}
		},
		Err: func(ctx context.Context, topic string, km kafka.Message, data []byte, err error) {
			m.RecordError("consume_" + topic)
		},
	}
}
