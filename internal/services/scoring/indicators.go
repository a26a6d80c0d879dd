package scoring

import (
	"fmt"

	"SignalDesk/internal/domain/models"
)

// Lookback windows. Each indicator that cannot fill its window is simply
// left unset in the resulting IndicatorSet.
const (
	smaShortWindow   = 20
	smaLongWindow    = 50
	emaFastWindow    = 12
	emaSlowWindow    = 26
	macdSignalWindow = 9
	rsiWindow        = 14
	bollingerWindow  = 20
	bollingerK       = 2.0
	stochasticWindow = 14
	stochasticSmooth = 3
	williamsWindow   = 14
	atrWindow        = 14

	// rsiEpsilon keeps RS finite when there are no down-moves in the window.
	rsiEpsilon = 1e-10
)

// IndicatorEngine computes the latest technical indicator values from an
// ascending bar series. It holds no mutable state.
type IndicatorEngine struct {
	minBars int
}

// NewIndicatorEngine builds an engine with the given minimum usable bar
// count (values < 2 fall back to the default floor of 50).
func NewIndicatorEngine(minBars int) *IndicatorEngine {
	if minBars < 2 {
		minBars = 50
	}
	return &IndicatorEngine{minBars: minBars}
}

// Compute derives an IndicatorSet from bars. It fails only when the series
// is shorter than the engine floor; individual indicators with longer
// lookbacks than the series degrade to unset.
func (e *IndicatorEngine) Compute(bars []models.Bar) (models.IndicatorSet, error) {
	if len(bars) < e.minBars {
		return models.IndicatorSet{}, fmt.Errorf("%d bars, need %d: %w", len(bars), e.minBars, ErrInsufficientData)
	}

	closes := make([]float64, len(bars))
	highs := make([]float64, len(bars))
	lows := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
		highs[i] = b.High
		lows[i] = b.Low
	}

	set := models.IndicatorSet{
		Symbol:    bars[0].Symbol,
		Timestamp: bars[len(bars)-1].Timestamp,
	}

	if v, ok := lastSMA(closes, smaShortWindow); ok {
		set.SMA20 = models.Ind(v)
	}
	if v, ok := lastSMA(closes, smaLongWindow); ok {
		set.SMA50 = models.Ind(v)
	}

	emaFast := emaSeries(closes, emaFastWindow)
	emaSlow := emaSeries(closes, emaSlowWindow)
	if len(emaFast) > 0 {
		set.EMA12 = models.Ind(emaFast[len(emaFast)-1])
	}
	if len(emaSlow) > 0 {
		set.EMA26 = models.Ind(emaSlow[len(emaSlow)-1])
	}

	if v, ok := lastRSI(closes, rsiWindow); ok {
		set.RSI = models.Ind(v)
	}

	computeMACD(&set, emaFast, emaSlow)
	computeBollinger(&set, closes)
	computeStochastic(&set, highs, lows, closes)

	if v, ok := lastWilliamsR(highs, lows, closes, williamsWindow); ok {
		set.WilliamsR = models.Ind(v)
	}
	if v, ok := lastATR(highs, lows, atrWindow); ok {
		set.ATR = models.Ind(v)
	}

	return set, nil
}

// lastSMA returns the simple moving average of the last w values.
func lastSMA(xs []float64, w int) (float64, bool) {
	if len(xs) < w {
		return 0, false
	}
	return mean(xs[len(xs)-w:]), true
}

// emaSeries returns the exponential moving average series for window w,
// seeded by the SMA of the first w values and smoothed forward through the
// rest. The result has one entry per input index >= w-1; nil when the
// input is too short.
func emaSeries(xs []float64, w int) []float64 {
	if len(xs) < w {
		return nil
	}
	alpha := 2.0 / float64(w+1)
	out := make([]float64, 0, len(xs)-w+1)
	ema := mean(xs[:w])
	out = append(out, ema)
	for _, x := range xs[w:] {
		ema = alpha*x + (1-alpha)*ema
		out = append(out, ema)
	}
	return out
}

// lastRSI computes the RSI over the trailing window: the average up-move
// and down-move of the last w close-to-close changes, with a small epsilon
// so a loss-free window yields RSI near 100 instead of dividing by zero.
func lastRSI(closes []float64, w int) (float64, bool) {
	if len(closes) < w+1 {
		return 0, false
	}
	var gain, loss float64
	for i := len(closes) - w; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gain += change
		} else {
			loss -= change
		}
	}
	avgGain := gain / float64(w)
	avgLoss := loss / float64(w)
	rs := avgGain / (avgLoss + rsiEpsilon)
	return 100 - 100/(1+rs), true
}

// computeMACD fills MACD, the signal line and the histogram. The signal
// line is the EMA9 of the MACD series, so it needs enough slow-EMA history
// to build at least macdSignalWindow MACD points.
func computeMACD(set *models.IndicatorSet, emaFast, emaSlow []float64) {
	if len(emaSlow) == 0 || len(emaFast) == 0 {
		return
	}
	// Align the fast series to the slow one: the slow series starts
	// emaSlowWindow-emaFastWindow points later.
	offset := len(emaFast) - len(emaSlow)
	if offset < 0 {
		return
	}
	macd := make([]float64, len(emaSlow))
	for i := range emaSlow {
		macd[i] = emaFast[i+offset] - emaSlow[i]
	}
	set.MACD = models.Ind(macd[len(macd)-1])

	sig := emaSeries(macd, macdSignalWindow)
	if len(sig) == 0 {
		return
	}
	set.MACDSignal = models.Ind(sig[len(sig)-1])
	set.MACDHistogram = models.Ind(set.MACD.Value - set.MACDSignal.Value)
}

// computeBollinger fills the three Bollinger bands at k standard
// deviations around the 20-period SMA.
func computeBollinger(set *models.IndicatorSet, closes []float64) {
	if len(closes) < bollingerWindow {
		return
	}
	window := closes[len(closes)-bollingerWindow:]
	mid := mean(window)
	sd := stddev(window)
	set.BollingerMiddle = models.Ind(mid)
	set.BollingerUpper = models.Ind(mid + bollingerK*sd)
	set.BollingerLower = models.Ind(mid - bollingerK*sd)
}

// computeStochastic fills %K from the rolling high/low range and %D as the
// mean of the trailing %K values (up to stochasticSmooth of them).
func computeStochastic(set *models.IndicatorSet, highs, lows, closes []float64) {
	n := len(closes)
	if n < stochasticWindow {
		return
	}
	ks := make([]float64, 0, stochasticSmooth)
	for i := 0; i < stochasticSmooth && n-i >= stochasticWindow; i++ {
		end := n - i
		k := stochasticK(highs[end-stochasticWindow:end], lows[end-stochasticWindow:end], closes[end-1])
		ks = append(ks, k)
	}
	set.StochasticK = models.Ind(ks[0])
	set.StochasticD = models.Ind(mean(ks))
}

func stochasticK(highs, lows []float64, close float64) float64 {
	hh, ll := highs[0], lows[0]
	for i := range highs {
		if highs[i] > hh {
			hh = highs[i]
		}
		if lows[i] < ll {
			ll = lows[i]
		}
	}
	if hh == ll {
		return 50.0
	}
	return clamp(100*(close-ll)/(hh-ll), 0, 100)
}

// lastWilliamsR computes Williams %R over the trailing window.
func lastWilliamsR(highs, lows, closes []float64, w int) (float64, bool) {
	n := len(closes)
	if n < w {
		return 0, false
	}
	hh, ll := highs[n-w], lows[n-w]
	for i := n - w; i < n; i++ {
		if highs[i] > hh {
			hh = highs[i]
		}
		if lows[i] < ll {
			ll = lows[i]
		}
	}
	if hh == ll {
		return -50.0, true
	}
	return -100 * (hh - closes[n-1]) / (hh - ll), true
}

// lastATR computes the rolling mean of the high-low range over the trailing
// window. True range deliberately ignores the prior close.
func lastATR(highs, lows []float64, w int) (float64, bool) {
	n := len(highs)
	if n < w {
		return 0, false
	}
	sum := 0.0
	for i := n - w; i < n; i++ {
		sum += highs[i] - lows[i]
	}
	return sum / float64(w), true
}
