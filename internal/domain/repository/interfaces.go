package repository

import (
	"context"
	"errors"
	"time"

	"SignalDesk/internal/domain/models"
)

// ErrNotFound is returned by stores when the requested record does not exist.
var ErrNotFound = errors.New("not found")

type MarketStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.Bar, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

type Publisher interface {
	Publish(ctx context.Context, s *models.Signal) error
	Close() error
}

type BarStore interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, b *models.Bar) error
	StoreBatch(ctx context.Context, bars []*models.Bar) error
	Query(ctx context.Context, symbol string, from, to time.Time, tf Timeframe) ([]models.Bar, error)
	LatestN(ctx context.Context, symbol string, n int, tf Timeframe) ([]models.Bar, error)
	Health(ctx context.Context) error // ping
	Close() error
}

type SignalStore interface {
	Init(ctx context.Context) error
	Store(ctx context.Context, s *models.Signal) error
	Get(ctx context.Context, id string) (*models.Signal, error)
	Latest(ctx context.Context, symbol string, limit int) ([]models.Signal, error)
	MarkExecuted(ctx context.Context, id string, at time.Time) error
	Close() error
}

type SentimentStore interface {
	Init(ctx context.Context) error
	Store(ctx context.Context, items []models.SentimentItem) error
	LatestN(ctx context.Context, symbol string, n int) ([]models.SentimentItem, error)
	Close() error
}

type Metrics interface {
	RecordSignal(symbol, signalType string)
	RecordError(kind string)
	RecordScore(symbol string, combined float64)
	RecordLatency(op string, seconds float64)
}
