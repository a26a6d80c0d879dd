package usecase

import (
	"context"
	"fmt"
	"time"

	"SignalDesk/internal/domain/models"
	drepo "SignalDesk/internal/domain/repository"
)

// BarProcessor persists incoming bars into the bar store.
type BarProcessor struct {
	store   drepo.BarStore
	metrics drepo.Metrics
	batchSz int
	batchTO time.Duration
}

// NewBarProcessor creates a new BarProcessor instance.
func NewBarProcessor(store drepo.BarStore, metrics drepo.Metrics, batchSz int, batchTO time.Duration) *BarProcessor {
	return &BarProcessor{store: store, metrics: metrics, batchSz: batchSz, batchTO: batchTO}
}

// Process persists a single bar.
func (p *BarProcessor) Process(ctx context.Context, b *models.Bar) error {
	if b == nil {
		return fmt.Errorf("bar is nil")
	}
	start := time.Now()
	if err := p.store.Store(ctx, b); err != nil {
		p.metrics.RecordError("process")
		return fmt.Errorf("process bar: %w", err)
	}
	p.metrics.RecordLatency("process", time.Since(start).Seconds())
	return nil
}

// ProcessBatch persists multiple bars in a batch.
func (p *BarProcessor) ProcessBatch(ctx context.Context, bars []*models.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	start := time.Now()
	if err := p.store.StoreBatch(ctx, bars); err != nil {
		p.metrics.RecordError("process_batch")
		return fmt.Errorf("process batch: %w", err)
	}
	p.metrics.RecordLatency("process_batch", time.Since(start).Seconds())
	return nil
}

// Close closes underlying resources if available.
func (p *BarProcessor) Close() {
	if p.store != nil {
		_ = p.store.Close()
	}
}
