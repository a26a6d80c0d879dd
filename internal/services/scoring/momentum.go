package scoring

import "SignalDesk/internal/domain/models"

// MomentumScorer blends 1-, 5- and 10-day returns into one score.
type MomentumScorer struct{}

// Score weighs the returns 0.5/0.3/0.2, scales by 10 and clamps to
// [-1, 1]. At least 2 bars are needed for the 1-day return; the longer
// returns default to 0 when the series is too short.
func (MomentumScorer) Score(bars []models.Bar) float64 {
	if len(bars) < 2 {
		return 0.0
	}
	current := bars[len(bars)-1].Close

	r1 := periodReturn(bars, current, 1)
	r5 := periodReturn(bars, current, 5)
	r10 := periodReturn(bars, current, 10)

	score := r1*0.5 + r5*0.3 + r10*0.2
	return clamp(score*10, -1.0, 1.0)
}

// periodReturn is the relative change against the close `periods` bars
// back, or 0 when the series is too short or the base close is zero.
func periodReturn(bars []models.Bar, current float64, periods int) float64 {
	idx := len(bars) - 1 - periods
	if idx < 0 {
		return 0.0
	}
	base := bars[idx].Close
	if base == 0 {
		return 0.0
	}
	return (current - base) / base
}
