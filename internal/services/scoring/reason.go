package scoring

import (
	"fmt"
	"strings"

	"SignalDesk/internal/domain/models"
)

// buildReason assembles the human-readable derivation trace attached to a
// signal.
func buildReason(symbol string, sigType models.SignalType, s models.ComponentScores) string {
	var reasons []string

	switch {
	case s.Sentiment > 0.3:
		reasons = append(reasons, "Strong positive market sentiment from recent news")
	case s.Sentiment < -0.3:
		reasons = append(reasons, "Negative sentiment from recent market news")
	case s.Sentiment > -0.1 && s.Sentiment < 0.1:
		reasons = append(reasons, "Neutral sentiment in recent news coverage")
	}

	switch {
	case s.Technical > 0.4:
		reasons = append(reasons, "Strong bullish technical indicators")
	case s.Technical < -0.4:
		reasons = append(reasons, "Bearish technical signals present")
	case s.Technical > -0.1 && s.Technical < 0.1:
		reasons = append(reasons, "Mixed technical signals")
	}

	if s.Volume > 0.3 {
		reasons = append(reasons, "Above-average trading volume supporting the move")
	} else if s.Volume < 0 {
		reasons = append(reasons, "Below-average volume may indicate weak conviction")
	}

	if s.Momentum > 0.3 {
		reasons = append(reasons, "Strong upward price momentum")
	} else if s.Momentum < -0.3 {
		reasons = append(reasons, "Downward price momentum observed")
	}

	switch sigType {
	case models.SignalBuy:
		reasons = append(reasons, fmt.Sprintf("Multiple factors align for a potential buying opportunity in %s", symbol))
	case models.SignalSell:
		reasons = append(reasons, fmt.Sprintf("Risk indicators suggest considering a sell position in %s", symbol))
	default:
		reasons = append(reasons, fmt.Sprintf("Mixed signals recommend holding current position in %s", symbol))
	}

	return strings.Join(reasons, ". ") + "."
}
