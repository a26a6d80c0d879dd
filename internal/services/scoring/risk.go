package scoring

import "SignalDesk/internal/domain/models"

// Risk factor thresholds.
const (
	riskVolatilityWindow    = 20
	riskVolatilityThreshold = 0.03
	riskATRThreshold        = 0.025
	riskSentimentItems      = 5
	riskSentimentStdDev     = 0.5
	riskRSIHigh             = 80.0
	riskRSILow              = 20.0
)

// RiskClassifier counts independent risk conditions into a tier. Counting
// is additive and order-independent; no condition ever lowers the count.
type RiskClassifier struct{}

// Classify evaluates the four risk factors: close-price volatility, ATR
// relative to price, sentiment dispersion of the freshest items, and RSI
// extremes. 3+ factors is HIGH, 1-2 MEDIUM, 0 LOW.
func (RiskClassifier) Classify(bars []models.Bar, items []models.SentimentItem, ind models.IndicatorSet, price float64) models.RiskLevel {
	factors := 0

	if len(bars) >= riskVolatilityWindow {
		closes := make([]float64, riskVolatilityWindow)
		for i, b := range bars[len(bars)-riskVolatilityWindow:] {
			closes[i] = b.Close
		}
		if m := mean(closes); m > 0 && stddev(closes)/m > riskVolatilityThreshold {
			factors++
		}
	}

	if ind.ATR.Valid && price > 0 && ind.ATR.Value/price > riskATRThreshold {
		factors++
	}

	if len(items) >= 2 {
		n := len(items)
		if n > riskSentimentItems {
			n = riskSentimentItems
		}
		scores := make([]float64, n)
		for i := 0; i < n; i++ {
			scores[i] = items[i].Score
		}
		if stddev(scores) > riskSentimentStdDev {
			factors++
		}
	}

	if ind.RSI.Valid && (ind.RSI.Value > riskRSIHigh || ind.RSI.Value < riskRSILow) {
		factors++
	}

	return RiskLevelForFactors(factors)
}

// RiskLevelForFactors maps a non-negative risk factor count to a tier.
func RiskLevelForFactors(factors int) models.RiskLevel {
	switch {
	case factors >= 3:
		return models.RiskHigh
	case factors >= 1:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
