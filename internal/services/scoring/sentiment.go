package scoring

import "SignalDesk/internal/domain/models"

// SentimentAggregator folds externally scored news items into one
// recency-weighted sentiment value.
type SentimentAggregator struct{}

// Aggregate weighs each item by 1/(rank+1) so the most recent item
// dominates, scales each score by its model confidence, and normalizes by
// the weight sum. An empty list is neutral (0.0), not an error.
func (SentimentAggregator) Aggregate(items []models.SentimentItem) float64 {
	if len(items) == 0 {
		return 0.0
	}
	var weighted, total float64
	for _, it := range items {
		w := 1.0 / float64(it.RecencyRank+1)
		weighted += it.Score * it.Confidence * w
		total += w
	}
	if total == 0 {
		return 0.0
	}
	return weighted / total
}
