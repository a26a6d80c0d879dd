package scoring

import "math"

// ConfidenceEstimator derives a confidence value from the agreement among
// the component scores that were actually computed.
type ConfidenceEstimator struct{}

// Estimate classifies each score as positive (>0.1), negative (<-0.1) or
// neutral, then blends the dominant-class agreement ratio (weight 0.6)
// with the mean absolute magnitude (weight 0.4). The result is clamped to
// [0, 1]; an empty input yields 0.0.
func (ConfidenceEstimator) Estimate(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}
	var pos, neg, magnitude float64
	for _, s := range scores {
		if s > 0.1 {
			pos++
		} else if s < -0.1 {
			neg++
		}
		magnitude += math.Abs(s)
	}
	total := float64(len(scores))
	neutral := total - pos - neg
	agreement := math.Max(pos, math.Max(neg, neutral)) / total
	magnitude /= total

	return clamp(agreement*0.6+magnitude*0.4, 0, 1)
}
