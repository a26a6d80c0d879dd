package scoring

import (
	"errors"
	"math"
	"testing"
	"time"

	"SignalDesk/internal/domain/models"
)

func barsFromCloses(closes []float64) []models.Bar {
	base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	out := make([]models.Bar, len(closes))
	for i, c := range closes {
		out[i] = models.Bar{
			Symbol:    "TEST",
			Timestamp: base.Add(time.Duration(i) * 24 * time.Hour),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1000,
			Timeframe: "1d",
		}
	}
	return out
}

func constCloses(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestComputeInsufficientData(t *testing.T) {
	e := NewIndicatorEngine(50)
	_, err := e.Compute(barsFromCloses(constCloses(49, 100)))
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestShortHistoryLeavesIndicatorsUnset(t *testing.T) {
	e := NewIndicatorEngine(2)
	set, err := e.Compute(barsFromCloses(constCloses(10, 100)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	unset := []models.Indicator{
		set.SMA20, set.SMA50, set.EMA12, set.EMA26, set.RSI,
		set.MACD, set.MACDSignal, set.MACDHistogram,
		set.BollingerUpper, set.BollingerMiddle, set.BollingerLower,
		set.StochasticK, set.StochasticD, set.WilliamsR, set.ATR,
	}
	for i, ind := range unset {
		if ind.Valid {
			t.Fatalf("indicator %d should be unset with 10 bars", i)
		}
	}
}

func TestFullHistorySetsAllIndicators(t *testing.T) {
	e := NewIndicatorEngine(50)
	set, err := e.Compute(barsFromCloses(constCloses(60, 100)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	all := []models.Indicator{
		set.SMA20, set.SMA50, set.EMA12, set.EMA26, set.RSI,
		set.MACD, set.MACDSignal, set.MACDHistogram,
		set.BollingerUpper, set.BollingerMiddle, set.BollingerLower,
		set.StochasticK, set.StochasticD, set.WilliamsR, set.ATR,
	}
	for i, ind := range all {
		if !ind.Valid {
			t.Fatalf("indicator %d should be set with 60 bars", i)
		}
	}
}

func TestConstantSeriesValues(t *testing.T) {
	e := NewIndicatorEngine(50)
	set, err := e.Compute(barsFromCloses(constCloses(60, 100)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.SMA20.Value != 100 || set.SMA50.Value != 100 {
		t.Fatalf("SMA of constant series should be 100, got %v / %v", set.SMA20.Value, set.SMA50.Value)
	}
	if set.EMA12.Value != 100 || set.EMA26.Value != 100 {
		t.Fatalf("EMA of constant series should be 100, got %v / %v", set.EMA12.Value, set.EMA26.Value)
	}
	if set.MACD.Value != 0 || set.MACDHistogram.Value != 0 {
		t.Fatalf("MACD of constant series should be 0, got %v / %v", set.MACD.Value, set.MACDHistogram.Value)
	}
	if set.BollingerUpper.Value != 100 || set.BollingerLower.Value != 100 {
		t.Fatalf("zero-variance Bollinger bands should collapse to the mean")
	}
	if set.StochasticK.Value < 0 || set.StochasticK.Value > 100 {
		t.Fatalf("stochastic %%K out of range: %v", set.StochasticK.Value)
	}
	// high=close+1, low=close-1 for every bar
	if set.ATR.Value != 2 {
		t.Fatalf("ATR should equal the constant high-low range 2, got %v", set.ATR.Value)
	}
}

func TestRSIExtremes(t *testing.T) {
	e := NewIndicatorEngine(20)

	rising := make([]float64, 30)
	for i := range rising {
		rising[i] = 100 + float64(i)
	}
	set, err := e.Compute(barsFromCloses(rising))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.RSI.Value < 99 {
		t.Fatalf("all-gains RSI should approach 100, got %v", set.RSI.Value)
	}

	falling := make([]float64, 30)
	for i := range falling {
		falling[i] = 200 - float64(i)
	}
	set, err = e.Compute(barsFromCloses(falling))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.RSI.Value > 1 {
		t.Fatalf("all-losses RSI should approach 0, got %v", set.RSI.Value)
	}
}

func TestWilliamsRBounds(t *testing.T) {
	e := NewIndicatorEngine(20)
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + math.Sin(float64(i))*5
	}
	set, err := e.Compute(barsFromCloses(closes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.WilliamsR.Value > 0 || set.WilliamsR.Value < -100 {
		t.Fatalf("Williams %%R out of [-100, 0]: %v", set.WilliamsR.Value)
	}
}
