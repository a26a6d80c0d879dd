package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"SignalDesk/internal/domain/models"
)

type fakeProc struct {
	mu    sync.Mutex
	bars  []*models.Bar
	fail  bool
	calls int
}

func (p *fakeProc) Process(ctx context.Context, b *models.Bar) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.fail {
		return errors.New("downstream down")
	}
	p.bars = append(p.bars, b)
	return nil
}

type fakeMetrics struct {
	mu     sync.Mutex
	errors map[string]int
}

func newFakeMetrics() *fakeMetrics { return &fakeMetrics{errors: map[string]int{}} }

func (m *fakeMetrics) RecordSignal(symbol, signalType string) {}
func (m *fakeMetrics) RecordScore(symbol string, combined float64) {}
func (m *fakeMetrics) RecordLatency(op string, seconds float64) {}
func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	m.errors[kind]++
	m.mu.Unlock()
}

func (m *fakeMetrics) errorCount(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[kind]
}

func validTestBar() *models.Bar {
	return &models.Bar{
		Symbol:    "AAPL",
		Timestamp: time.Now(),
		Open:      100, High: 101, Low: 99, Close: 100,
		Volume: 1000,
	}
}

func TestPipelineForwardsValidBar(t *testing.T) {
	proc := &fakeProc{}
	p := NewBarPipeline(proc, newFakeMetrics())

	if err := p.Process(context.Background(), validTestBar()); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(proc.bars) != 1 {
		t.Fatalf("bar should reach downstream, got %d", len(proc.bars))
	}
}

func TestPipelineRejectsInvalidBar(t *testing.T) {
	proc := &fakeProc{}
	m := newFakeMetrics()
	p := NewBarPipeline(proc, m)

	bad := validTestBar()
	bad.Symbol = ""
	if err := p.Process(context.Background(), bad); err == nil {
		t.Fatalf("empty symbol should be rejected")
	}

	inverted := validTestBar()
	inverted.High, inverted.Low = 99, 101
	if err := p.Process(context.Background(), inverted); err == nil {
		t.Fatalf("high below low should be rejected")
	}
	if proc.calls != 0 {
		t.Fatalf("invalid bars must not reach downstream")
	}
	if m.errorCount("pipeline_validate") != 2 {
		t.Fatalf("validation errors should be recorded, got %d", m.errorCount("pipeline_validate"))
	}
}

func TestPipelineBuffersOnDownstreamError(t *testing.T) {
	proc := &fakeProc{fail: true}
	m := newFakeMetrics()
	p := NewBarPipeline(proc, m, WithBufferSize(4))

	if err := p.Process(context.Background(), validTestBar()); err == nil {
		t.Fatalf("downstream failure should surface")
	}
	if len(p.bufCh) != 1 {
		t.Fatalf("failed bar should be buffered, got %d", len(p.bufCh))
	}
	if m.errorCount("pipeline_process") != 1 {
		t.Fatalf("downstream error should be recorded")
	}
}

func TestPipelineThrottlesPerSymbol(t *testing.T) {
	proc := &fakeProc{}
	m := newFakeMetrics()
	p := NewBarPipeline(proc, m, WithMaxRPS(1))

	// Burst well past the per-second budget; excess is dropped silently.
	for i := 0; i < 10; i++ {
		if err := p.Process(context.Background(), validTestBar()); err != nil {
			t.Fatalf("throttled bars must not error: %v", err)
		}
	}
	if len(proc.bars) >= 10 {
		t.Fatalf("throttle should drop part of the burst, downstream saw %d", len(proc.bars))
	}
	if m.errorCount("pipeline_throttle") == 0 {
		t.Fatalf("throttle drops should be recorded")
	}
}

func TestPipelineTransformHook(t *testing.T) {
	proc := &fakeProc{}
	p := NewBarPipeline(proc, newFakeMetrics(), WithTransform(func(b *models.Bar) *models.Bar {
		b.Timeframe = "1d"
		return b
	}))

	if err := p.Process(context.Background(), validTestBar()); err != nil {
		t.Fatalf("process: %v", err)
	}
	if proc.bars[0].Timeframe != "1d" {
		t.Fatalf("transform should apply before downstream")
	}
}
