package scoring

import (
	"math"
	"testing"

	"SignalDesk/internal/domain/models"
)

func TestRiskLevelBreakpoints(t *testing.T) {
	cases := []struct {
		factors int
		want    models.RiskLevel
	}{
		{0, models.RiskLow},
		{1, models.RiskMedium},
		{2, models.RiskMedium},
		{3, models.RiskHigh},
		{4, models.RiskHigh},
	}
	for _, c := range cases {
		if got := RiskLevelForFactors(c.factors); got != c.want {
			t.Fatalf("factors=%d: got %v, want %v", c.factors, got, c.want)
		}
	}
}

func TestClassifyQuietMarketIsLow(t *testing.T) {
	var rc RiskClassifier
	bars := barsFromCloses(constCloses(30, 100))
	got := rc.Classify(bars, nil, models.IndicatorSet{}, 100)
	if got != models.RiskLow {
		t.Fatalf("flat market with no indicators should be LOW, got %v", got)
	}
}

func TestClassifyRSIExtreme(t *testing.T) {
	var rc RiskClassifier
	bars := barsFromCloses(constCloses(30, 100))
	ind := models.IndicatorSet{RSI: models.Ind(85)}
	if got := rc.Classify(bars, nil, ind, 100); got != models.RiskMedium {
		t.Fatalf("one risk factor should be MEDIUM, got %v", got)
	}
}

func TestClassifyATRFactor(t *testing.T) {
	var rc RiskClassifier
	bars := barsFromCloses(constCloses(30, 100))
	ind := models.IndicatorSet{ATR: models.Ind(5)} // 5% of price
	if got := rc.Classify(bars, nil, ind, 100); got != models.RiskMedium {
		t.Fatalf("high ATR ratio should add a factor, got %v", got)
	}
}

func TestClassifySentimentDispersion(t *testing.T) {
	var rc RiskClassifier
	bars := barsFromCloses(constCloses(30, 100))
	items := []models.SentimentItem{
		{Score: 1.0, Confidence: 1, RecencyRank: 0},
		{Score: -1.0, Confidence: 1, RecencyRank: 1},
	}
	if got := rc.Classify(bars, items, models.IndicatorSet{}, 100); got != models.RiskMedium {
		t.Fatalf("disagreeing news should add a factor, got %v", got)
	}
	// A single item never counts as dispersion.
	if got := rc.Classify(bars, items[:1], models.IndicatorSet{}, 100); got != models.RiskLow {
		t.Fatalf("one item should not add a dispersion factor, got %v", got)
	}
}

func TestClassifyStackedFactorsHigh(t *testing.T) {
	var rc RiskClassifier
	// Volatile closes: alternate 90/110 so stddev/mean far exceeds 3%.
	closes := make([]float64, 30)
	for i := range closes {
		if i%2 == 0 {
			closes[i] = 90
		} else {
			closes[i] = 110
		}
	}
	bars := barsFromCloses(closes)
	ind := models.IndicatorSet{RSI: models.Ind(85), ATR: models.Ind(5)}
	if got := rc.Classify(bars, nil, ind, 100); got != models.RiskHigh {
		t.Fatalf("three factors should be HIGH, got %v", got)
	}
}

func TestQuantityBounds(t *testing.T) {
	var ps PositionSizer
	// LOW halves the divisor, inflating the permitted notional.
	if got := ps.Quantity(models.RiskLow, 10, 10000); got != 1000 {
		t.Fatalf("LOW risk quantity should clamp to 1000, got %v", got)
	}
	if got := ps.Quantity(models.RiskMedium, 10, 10000); got != 1000 {
		t.Fatalf("MEDIUM risk quantity should be 1000, got %v", got)
	}
	if got := ps.Quantity(models.RiskHigh, 10, 10000); got != 666 {
		t.Fatalf("HIGH risk quantity should be 666, got %v", got)
	}
	if got := ps.Quantity(models.RiskMedium, 1e9, 10000); got != 1 {
		t.Fatalf("unaffordable price should floor at 1 share, got %v", got)
	}
	if got := ps.Quantity(models.RiskMedium, 0, 10000); got != 1 {
		t.Fatalf("non-positive price should floor at 1 share, got %v", got)
	}
}

func TestQuantityRiskInversionPreserved(t *testing.T) {
	var ps PositionSizer
	low := ps.Quantity(models.RiskLow, 100, 10000)
	high := ps.Quantity(models.RiskHigh, 100, 10000)
	if low <= high {
		t.Fatalf("budget division by the multiplier must keep LOW > HIGH: low=%d high=%d", low, high)
	}
	if want := int(math.Floor(10000 / 1.5 / 100)); high != want {
		t.Fatalf("HIGH quantity: got %d, want %d", high, want)
	}
}
