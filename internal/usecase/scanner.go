package usecase

import (
	"context"
	"sync"
	"time"

	domrepo "SignalDesk/internal/domain/repository"
	applogger "SignalDesk/pkg/logger"
)

// Scanner periodically re-scores a fixed symbol universe through the
// generator. Symbols are fanned out to a bounded worker pool so one slow
// symbol cannot stall the sweep.
type Scanner struct {
	gen      *SignalGenerator
	symbols  []string
	interval time.Duration
	workers  int
	lookback int
	tf       domrepo.Timeframe
	l        *applogger.Logger

	stopCh  chan struct{}
	stopped sync.Once
	wg      sync.WaitGroup
	started bool
	mu      sync.Mutex
}

type ScannerOption func(*Scanner)

// WithScanInterval sets the sweep period.
func WithScanInterval(d time.Duration) ScannerOption {
	return func(s *Scanner) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithScanWorkers sets the worker pool size.
func WithScanWorkers(n int) ScannerOption {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithScanLookback sets the bar lookback per symbol.
func WithScanLookback(n int) ScannerOption {
	return func(s *Scanner) {
		if n > 0 {
			s.lookback = n
		}
	}
}

// WithScanTimeframe sets the bar timeframe used for sweeps.
func WithScanTimeframe(tf domrepo.Timeframe) ScannerOption {
	return func(s *Scanner) { s.tf = tf }
}

func NewScanner(gen *SignalGenerator, symbols []string, l *applogger.Logger, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		gen:      gen,
		symbols:  symbols,
		interval: 5 * time.Minute,
		workers:  4,
		lookback: defaultBarLookback,
		tf:       domrepo.DefaultTimeframe(),
		l:        l,
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the periodic sweep. The first sweep runs immediately.
func (s *Scanner) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started || len(s.symbols) == 0 {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.sweep(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

// Stop halts the sweep loop and waits for in-flight work.
func (s *Scanner) Stop() {
	s.stopped.Do(func() { close(s.stopCh) })
	s.wg.Wait()
}

func (s *Scanner) sweep(ctx context.Context) {
	start := time.Now()
	jobs := make(chan string)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range jobs {
				if _, err := s.gen.Generate(ctx, symbol, s.lookback, s.tf); err != nil {
					if s.l != nil {
						s.l.Warn("scan generate failed",
							applogger.String("symbol", symbol),
							applogger.Error(err),
						)
					}
				}
			}
		}()
	}

	for _, symbol := range s.symbols {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return
		case jobs <- symbol:
		}
	}
	close(jobs)
	wg.Wait()

	if s.l != nil {
		s.l.Info("scan sweep done",
			applogger.Int("symbols", len(s.symbols)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
}
