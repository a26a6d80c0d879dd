package scoring

import "SignalDesk/internal/domain/models"

const (
	minQuantity = 1
	maxQuantity = 1000
)

// PositionSizer turns a risk tier, the current price and the configured
// notional budget into a bounded share quantity.
type PositionSizer struct{}

// riskMultiplier divides the budget. Note the inversion this causes: LOW
// risk permits a larger notional than HIGH. This mirrors the long-observed
// production behavior and is kept deliberately; see DESIGN.md before
// changing the policy.
func riskMultiplier(level models.RiskLevel) float64 {
	switch level {
	case models.RiskLow:
		return 0.5
	case models.RiskHigh:
		return 1.5
	default:
		return 1.0
	}
}

// Quantity returns floor(budget/multiplier/price) clamped to [1, 1000].
func (PositionSizer) Quantity(level models.RiskLevel, price, maxPositionSize float64) int {
	if price <= 0 {
		return minQuantity
	}
	adjusted := maxPositionSize / riskMultiplier(level)
	qty := int(adjusted / price)
	if qty < minQuantity {
		return minQuantity
	}
	if qty > maxQuantity {
		return maxQuantity
	}
	return qty
}
