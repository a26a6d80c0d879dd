package scoring

import "SignalDesk/internal/domain/models"

// ScoreCombiner blends the four component scores under the configured
// weights and maps the result to a decision.
type ScoreCombiner struct {
	cfg Config
}

// NewScoreCombiner builds a combiner over a validated Config.
func NewScoreCombiner(cfg Config) ScoreCombiner { return ScoreCombiner{cfg: cfg} }

// Combine returns the weighted sum of exactly the four component scores.
// The weight-sum invariant is enforced at Config construction, not here.
func (c ScoreCombiner) Combine(s models.ComponentScores) float64 {
	return s.Sentiment*c.cfg.SentimentWeight +
		s.Technical*c.cfg.TechnicalWeight +
		s.Volume*c.cfg.VolumeWeight +
		s.Momentum*c.cfg.MomentumWeight
}

// Decide applies the threshold rule in order: buy first, then sell, then
// hold.
func (c ScoreCombiner) Decide(combined float64) models.SignalType {
	switch {
	case combined >= c.cfg.BuyThreshold:
		return models.SignalBuy
	case combined <= c.cfg.SellThreshold:
		return models.SignalSell
	default:
		return models.SignalHold
	}
}
