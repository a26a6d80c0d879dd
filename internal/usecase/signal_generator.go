package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"SignalDesk/internal/domain/models"
	domrepo "SignalDesk/internal/domain/repository"
	svccache "SignalDesk/internal/service/cache"
	svcmetrics "SignalDesk/internal/service/metrics"
	"SignalDesk/internal/services/scoring"
	applogger "SignalDesk/pkg/logger"
)

const (
	defaultBarLookback  = 200
	sentimentDepth      = 10
	latestSignalKeyTmpl = "signals:latest:%s"
)

// SignalGenerator loads market history, runs the scoring engine, and fans
// the resulting signal out to storage, cache, and the signals topic.
type SignalGenerator struct {
	engine    *scoring.Engine
	bars      domrepo.BarStore
	sentiment domrepo.SentimentStore
	signals   domrepo.SignalStore
	pub       domrepo.Publisher
	cache     svccache.BytesCache
	metrics   domrepo.Metrics
	l         *applogger.Logger
}

func NewSignalGenerator(
	engine *scoring.Engine,
	bars domrepo.BarStore,
	sentiment domrepo.SentimentStore,
	signals domrepo.SignalStore,
	pub domrepo.Publisher,
	cache svccache.BytesCache,
	metrics domrepo.Metrics,
	l *applogger.Logger,
) *SignalGenerator {
	return &SignalGenerator{
		engine:    engine,
		bars:      bars,
		sentiment: sentiment,
		signals:   signals,
		pub:       pub,
		cache:     cache,
		metrics:   metrics,
		l:         l,
	}
}

// Generate scores one symbol from stored history and persists the result.
func (g *SignalGenerator) Generate(ctx context.Context, symbol string, n int, tf domrepo.Timeframe) (*models.Signal, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if n <= 0 {
		n = defaultBarLookback
	}

	bars, err := g.bars.LatestN(ctx, symbol, n, tf)
	if err != nil {
		g.metrics.RecordError("generate_bars")
		return nil, fmt.Errorf("load bars: %w", err)
	}

	// Sentiment is best-effort: a scoring run without news is still valid,
	// the sentiment component just contributes zero.
	items, err := g.sentiment.LatestN(ctx, symbol, sentimentDepth)
	if err != nil {
		g.metrics.RecordError("generate_sentiment")
		if g.l != nil {
			g.l.Warn("sentiment load failed, scoring without news",
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
		items = nil
	}

	sig, err := g.engine.Generate(symbol, bars, items, time.Now().UTC())
	if err != nil {
		g.metrics.RecordError("generate_score")
		return nil, err
	}

	if err := g.signals.Store(ctx, sig); err != nil {
		g.metrics.RecordError("generate_store")
		return nil, fmt.Errorf("store signal: %w", err)
	}
	g.cacheLatest(sig)

	// Publishing is decoupled from the caller's result: the signal is
	// already durable, so a broker hiccup only logs.
	if g.pub != nil {
		if err := g.pub.Publish(ctx, sig); err != nil {
			g.metrics.RecordError("generate_publish")
			if g.l != nil {
				g.l.Error("signal publish failed",
					applogger.String("symbol", symbol),
					applogger.String("id", sig.ID),
					applogger.Error(err),
				)
			}
		}
	}

	g.metrics.RecordSignal(symbol, string(sig.Type))
	g.metrics.RecordScore(symbol, sig.CombinedScore)
	svcmetrics.SignalsGenerated.WithLabelValues(symbol, string(sig.Type)).Inc()
	svcmetrics.CombinedScore.WithLabelValues(symbol).Set(sig.CombinedScore)
	return sig, nil
}

// Score runs the engine over caller-supplied bars and sentiment without
// touching storage. Config override fields replace the configured defaults
// one by one; the merged config must still validate.
func (g *SignalGenerator) Score(ctx context.Context, req *models.ScoreRequest) (*models.Signal, error) {
	engine := g.engine
	if hasOverrides(req) {
		cfg := g.engine.Config()
		applyOverride(&cfg.BuyThreshold, req.BuyThreshold)
		applyOverride(&cfg.SellThreshold, req.SellThreshold)
		applyOverride(&cfg.MaxPositionSize, req.MaxPositionSize)
		applyOverride(&cfg.SentimentWeight, req.SentimentWeight)
		applyOverride(&cfg.TechnicalWeight, req.TechnicalWeight)
		applyOverride(&cfg.VolumeWeight, req.VolumeWeight)
		applyOverride(&cfg.MomentumWeight, req.MomentumWeight)
		validated, err := scoring.NewConfig(cfg)
		if err != nil {
			return nil, err
		}
		engine = scoring.NewEngine(validated)
	}

	bars := make([]models.Bar, len(req.Bars))
	for i, b := range req.Bars {
		bars[i] = models.Bar{
			Symbol:    req.Symbol,
			Timestamp: b.Timestamp,
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    b.Volume,
			Timeframe: req.TF,
		}
	}
	items := make([]models.SentimentItem, len(req.Sentiment))
	for i, it := range req.Sentiment {
		items[i] = models.SentimentItem{
			Symbol:      req.Symbol,
			Score:       it.Score,
			Confidence:  it.Confidence,
			RecencyRank: i,
		}
	}
	return engine.Generate(req.Symbol, bars, items, time.Now().UTC())
}

// Latest returns recent signals for a symbol, newest first. The single
// most recent signal is served from cache when present.
func (g *SignalGenerator) Latest(ctx context.Context, symbol string, limit int) ([]models.Signal, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if limit <= 0 {
		limit = 1
	}
	if limit == 1 && g.cache != nil {
		if b, ok, err := g.cache.GetBytes(latestSignalKey(symbol)); err == nil && ok {
			var sig models.Signal
			if err := json.Unmarshal(b, &sig); err == nil {
				return []models.Signal{sig}, nil
			}
		}
	}
	return g.signals.Latest(ctx, symbol, limit)
}

// Indicators computes the indicator set over stored history.
func (g *SignalGenerator) Indicators(ctx context.Context, symbol string, n int, tf domrepo.Timeframe) (models.IndicatorSet, error) {
	if symbol == "" {
		return models.IndicatorSet{}, fmt.Errorf("symbol required")
	}
	if n <= 0 {
		n = defaultBarLookback
	}
	bars, err := g.bars.LatestN(ctx, symbol, n, tf)
	if err != nil {
		g.metrics.RecordError("indicators_bars")
		return models.IndicatorSet{}, fmt.Errorf("load bars: %w", err)
	}
	set, err := g.engine.Indicators(bars)
	if err != nil {
		return models.IndicatorSet{}, err
	}
	set.Symbol = symbol
	if len(bars) > 0 {
		set.Timestamp = bars[len(bars)-1].Timestamp
	}
	return set, nil
}

func (g *SignalGenerator) cacheLatest(sig *models.Signal) {
	if g.cache == nil {
		return
	}
	b, err := json.Marshal(sig)
	if err != nil {
		return
	}
	if err := g.cache.SetBytes(latestSignalKey(sig.Symbol), b, g.engine.Config().SignalTTL); err != nil && g.l != nil {
		g.l.Warn("latest signal cache set failed",
			applogger.String("symbol", sig.Symbol),
			applogger.Error(err),
		)
	}
}

func latestSignalKey(symbol string) string {
	return fmt.Sprintf(latestSignalKeyTmpl, symbol)
}

func hasOverrides(req *models.ScoreRequest) bool {
	return req.BuyThreshold != nil || req.SellThreshold != nil || req.MaxPositionSize != nil ||
		req.SentimentWeight != nil || req.TechnicalWeight != nil ||
		req.VolumeWeight != nil || req.MomentumWeight != nil
}

func applyOverride(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
