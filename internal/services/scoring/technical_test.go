package scoring

import (
	"math"
	"testing"

	"SignalDesk/internal/domain/models"
)

func TestTechnicalScoreOversoldRSIOnly(t *testing.T) {
	var ts TechnicalScorer
	ind := models.IndicatorSet{RSI: models.Ind(25)}
	if got := ts.Score(ind, 100); got != 0.7 {
		t.Fatalf("single oversold RSI should score 0.7, got %v", got)
	}
}

func TestTechnicalScoreOverboughtRSIOnly(t *testing.T) {
	var ts TechnicalScorer
	ind := models.IndicatorSet{RSI: models.Ind(75)}
	if got := ts.Score(ind, 100); got != -0.7 {
		t.Fatalf("single overbought RSI should score -0.7, got %v", got)
	}
}

func TestTechnicalScoreNeutralRSI(t *testing.T) {
	var ts TechnicalScorer
	ind := models.IndicatorSet{RSI: models.Ind(50)}
	if got := ts.Score(ind, 100); math.Abs(got-0.1) > 1e-12 {
		t.Fatalf("neutral RSI should score 0.1, got %v", got)
	}
}

func TestTechnicalScoreNoIndicators(t *testing.T) {
	var ts TechnicalScorer
	if got := ts.Score(models.IndicatorSet{}, 100); got != 0.0 {
		t.Fatalf("no contributing indicators should score 0.0, got %v", got)
	}
}

func TestTechnicalScorePriceVsSMAClamped(t *testing.T) {
	var ts TechnicalScorer
	// Price 100% above SMA20: raw deviation contribution 2.0 clamps at 0.5.
	ind := models.IndicatorSet{SMA20: models.Ind(100)}
	if got := ts.Score(ind, 200); got != 0.5 {
		t.Fatalf("deviation contribution should clamp at 0.5, got %v", got)
	}
	if got := ts.Score(ind, 10); got != -0.5 {
		t.Fatalf("deviation contribution should clamp at -0.5, got %v", got)
	}
}

func TestTechnicalScoreAveragesContributors(t *testing.T) {
	var ts TechnicalScorer
	// RSI oversold (+0.7) and bearish MACD (-0.5) over two contributors.
	ind := models.IndicatorSet{
		RSI:        models.Ind(25),
		MACD:       models.Ind(-1),
		MACDSignal: models.Ind(0),
	}
	want := (0.7 - 0.5) / 2
	if got := ts.Score(ind, 100); math.Abs(got-want) > 1e-12 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTechnicalScoreBollingerBands(t *testing.T) {
	var ts TechnicalScorer
	ind := models.IndicatorSet{
		BollingerUpper:  models.Ind(110),
		BollingerMiddle: models.Ind(100),
		BollingerLower:  models.Ind(90),
	}
	if got := ts.Score(ind, 91); got != 0.4 {
		t.Fatalf("price near lower band should score 0.4, got %v", got)
	}
	if got := ts.Score(ind, 109); got != -0.4 {
		t.Fatalf("price near upper band should score -0.4, got %v", got)
	}
	if got := ts.Score(ind, 100); got != 0.0 {
		t.Fatalf("mid-band price should contribute 0, got %v", got)
	}
}
