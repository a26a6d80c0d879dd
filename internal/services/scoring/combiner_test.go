package scoring

import (
	"errors"
	"math"
	"testing"

	"SignalDesk/internal/domain/models"
)

func mustConfig(t *testing.T, c Config) Config {
	t.Helper()
	cfg, err := NewConfig(c)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func TestConfigDefaultsValid(t *testing.T) {
	if _, err := NewConfig(DefaultConfig()); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestConfigRejectsBadWeightSum(t *testing.T) {
	c := DefaultConfig()
	c.SentimentWeight = 0.5
	c.TechnicalWeight = 0.6
	_, err := NewConfig(c)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfigRejectsInvertedThresholds(t *testing.T) {
	c := DefaultConfig()
	c.BuyThreshold = -0.3
	c.SellThreshold = 0.3
	if _, err := NewConfig(c); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	c.BuyThreshold = 0.2
	c.SellThreshold = 0.2
	if _, err := NewConfig(c); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("equal thresholds should be rejected, got %v", err)
	}
}

func TestConfigWeightSumTolerance(t *testing.T) {
	c := DefaultConfig()
	c.SentimentWeight = 0.405 // sum 1.005, inside the 0.01 epsilon
	if _, err := NewConfig(c); err != nil {
		t.Fatalf("sum within epsilon should validate: %v", err)
	}
}

func TestCombineWeightedSum(t *testing.T) {
	cfg := mustConfig(t, DefaultConfig())
	comb := NewScoreCombiner(cfg)
	scores := models.ComponentScores{Sentiment: 1, Technical: -1, Volume: 0.5, Momentum: -0.5}
	want := 1*0.4 + -1*0.4 + 0.5*0.1 + -0.5*0.1
	if got := comb.Combine(scores); math.Abs(got-want) > 1e-12 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDecideThresholds(t *testing.T) {
	cfg := mustConfig(t, DefaultConfig())
	comb := NewScoreCombiner(cfg)

	if got := comb.Decide(0.5); got != models.SignalBuy {
		t.Fatalf("0.5 vs buy threshold 0.3 should be BUY, got %v", got)
	}
	if got := comb.Decide(0.3); got != models.SignalBuy {
		t.Fatalf("combined equal to buy threshold should be BUY, got %v", got)
	}
	if got := comb.Decide(-0.5); got != models.SignalSell {
		t.Fatalf("-0.5 vs sell threshold -0.3 should be SELL, got %v", got)
	}
	if got := comb.Decide(0.0); got != models.SignalHold {
		t.Fatalf("mid-band score should be HOLD, got %v", got)
	}
}
