package scoring

import "SignalDesk/internal/domain/models"

// TechnicalScorer converts an indicator set and the current price into one
// signed score in roughly [-1, 1]. Unset indicators contribute nothing and
// are excluded from the normalizing denominator.
type TechnicalScorer struct{}

// Score sums the signed contribution of each present indicator group and
// divides by the number of groups that contributed. No contributing group
// means 0.0.
func (TechnicalScorer) Score(ind models.IndicatorSet, price float64) float64 {
	score := 0.0
	contributors := 0

	if ind.RSI.Valid {
		switch {
		case ind.RSI.Value < 30: // oversold
			score += 0.7
		case ind.RSI.Value > 70: // overbought
			score -= 0.7
		case ind.RSI.Value >= 40 && ind.RSI.Value <= 60:
			score += 0.1
		}
		contributors++
	}

	if ind.MACD.Valid && ind.MACDSignal.Valid {
		if ind.MACD.Value > ind.MACDSignal.Value {
			score += 0.5
		} else {
			score -= 0.5
		}
		contributors++
	}

	if ind.SMA20.Valid && ind.SMA50.Valid {
		if ind.SMA20.Value > ind.SMA50.Value { // golden cross region
			score += 0.6
		} else {
			score -= 0.6
		}
		contributors++
	}

	if ind.SMA20.Valid && ind.SMA20.Value != 0 {
		deviation := (price - ind.SMA20.Value) / ind.SMA20.Value
		score += clamp(deviation*2, -0.5, 0.5)
		contributors++
	}

	if ind.BollingerUpper.Valid && ind.BollingerLower.Valid && ind.BollingerMiddle.Valid {
		band := ind.BollingerUpper.Value - ind.BollingerLower.Value
		if band != 0 {
			position := (price - ind.BollingerLower.Value) / band
			if position < 0.2 { // near lower band
				score += 0.4
			} else if position > 0.8 { // near upper band
				score -= 0.4
			}
			contributors++
		}
	}

	if ind.StochasticK.Valid {
		if ind.StochasticK.Value < 20 {
			score += 0.3
		} else if ind.StochasticK.Value > 80 {
			score -= 0.3
		}
		contributors++
	}

	if contributors == 0 {
		return 0.0
	}
	return score / float64(contributors)
}
