package scoring

import "SignalDesk/internal/domain/models"

const volumeWindow = 20

// VolumeScorer compares recent trading volume against the preceding
// baseline.
type VolumeScorer struct{}

// Score returns 0.5 when recent volume runs hot (>1.5x baseline), -0.2
// when it has dried up (<0.5x), and 0.1 for normal activity. Fewer than 20
// bars or a zero baseline yield 0.0.
func (VolumeScorer) Score(bars []models.Bar) float64 {
	if len(bars) < volumeWindow {
		return 0.0
	}
	n := len(bars)
	var recent, baseline float64
	for _, b := range bars[n-5:] {
		recent += float64(b.Volume)
	}
	recent /= 5
	for _, b := range bars[n-20 : n-5] {
		baseline += float64(b.Volume)
	}
	baseline /= 15

	if baseline == 0 {
		return 0.0
	}
	ratio := recent / baseline
	switch {
	case ratio > 1.5:
		return 0.5
	case ratio < 0.5:
		return -0.2
	default:
		return 0.1
	}
}
