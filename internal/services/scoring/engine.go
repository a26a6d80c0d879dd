package scoring

import (
	"fmt"
	"time"

	"SignalDesk/internal/domain/models"
)

// Engine is the pure composition of the scoring pipeline: indicators and
// sentiment aggregation feed the component scorers, the combiner blends
// them into a decision, and confidence/risk/sizing complete the signal.
// It performs no I/O and holds no mutable state, so one Engine may be
// shared across goroutines scoring distinct symbols.
type Engine struct {
	cfg        Config
	indicators *IndicatorEngine
	sentiment  SentimentAggregator
	technical  TechnicalScorer
	volume     VolumeScorer
	momentum   MomentumScorer
	combiner   ScoreCombiner
	confidence ConfidenceEstimator
	risk       RiskClassifier
	sizer      PositionSizer
}

// NewEngine builds an engine over a validated Config.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg:        cfg,
		indicators: NewIndicatorEngine(cfg.MinBars),
		combiner:   NewScoreCombiner(cfg),
	}
}

// Config returns the engine's scoring configuration.
func (e *Engine) Config() Config { return e.cfg }

// Indicators computes the indicator set for a bar series.
func (e *Engine) Indicators(bars []models.Bar) (models.IndicatorSet, error) {
	return e.indicators.Compute(bars)
}

// Generate scores one symbol. Bars must be ascending by timestamp and
// sentiment items ordered most-recent-first; both are the caller's
// responsibility. The only failure mode is a bar series below the engine
// floor.
func (e *Engine) Generate(symbol string, bars []models.Bar, items []models.SentimentItem, now time.Time) (*models.Signal, error) {
	ind, err := e.indicators.Compute(bars)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", symbol, err)
	}
	price := bars[len(bars)-1].Close

	scores := models.ComponentScores{
		Sentiment: e.sentiment.Aggregate(items),
		Technical: e.technical.Score(ind, price),
		Volume:    e.volume.Score(bars),
		Momentum:  e.momentum.Score(bars),
	}

	combined := e.combiner.Combine(scores)
	sigType := e.combiner.Decide(combined)
	confidence := e.confidence.Estimate([]float64{scores.Sentiment, scores.Technical, scores.Volume, scores.Momentum})
	riskLevel := e.risk.Classify(bars, items, ind, price)
	quantity := e.sizer.Quantity(riskLevel, price, e.cfg.MaxPositionSize)

	return &models.Signal{
		ID:             fmt.Sprintf("%s-%d", symbol, now.UnixNano()),
		Symbol:         symbol,
		Type:           sigType,
		Price:          price,
		Quantity:       quantity,
		Confidence:     confidence,
		SentimentScore: scores.Sentiment,
		TechnicalScore: scores.Technical,
		CombinedScore:  combined,
		Scores:         scores,
		RiskLevel:      riskLevel,
		Reason:         buildReason(symbol, sigType, scores),
		CreatedAt:      now,
		ExpiresAt:      now.Add(e.cfg.SignalTTL),
	}, nil
}
