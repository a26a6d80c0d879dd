package scoring

import (
	"errors"
	"strings"
	"testing"
	"time"

	"SignalDesk/internal/domain/models"
)

func TestGenerateInsufficientBars(t *testing.T) {
	e := NewEngine(mustConfig(t, DefaultConfig()))
	_, err := e.Generate("AAPL", barsFromCloses(constCloses(10, 100)), nil, time.Now())
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestGenerateQuietMarketHolds(t *testing.T) {
	e := NewEngine(mustConfig(t, DefaultConfig()))
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	sig, err := e.Generate("AAPL", barsFromCloses(constCloses(60, 100)), nil, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.Type != models.SignalHold {
		t.Fatalf("flat market should HOLD, got %v", sig.Type)
	}
	if sig.Price != 100 {
		t.Fatalf("price should be the latest close, got %v", sig.Price)
	}
	if sig.Quantity < 1 || sig.Quantity > 1000 {
		t.Fatalf("quantity out of [1,1000]: %d", sig.Quantity)
	}
	if sig.Confidence < 0 || sig.Confidence > 1 {
		t.Fatalf("confidence out of [0,1]: %v", sig.Confidence)
	}
	if sig.SentimentScore != 0 {
		t.Fatalf("no news should mean neutral sentiment, got %v", sig.SentimentScore)
	}
	if !strings.HasPrefix(sig.ID, "AAPL-") {
		t.Fatalf("unexpected signal id %q", sig.ID)
	}
	if !sig.ExpiresAt.Equal(now.Add(24 * time.Hour)) {
		t.Fatalf("default TTL should be 24h, got %v", sig.ExpiresAt)
	}
	if sig.Executed {
		t.Fatalf("fresh signal must not be executed")
	}
}

func TestGenerateBullishAlignmentBuys(t *testing.T) {
	e := NewEngine(mustConfig(t, DefaultConfig()))

	// Rising closes, hot recent volume, and strongly positive news.
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	bars := barsFromCloses(closes)
	for i := range bars {
		bars[i].Volume = 1000
	}
	for i := len(bars) - 5; i < len(bars); i++ {
		bars[i].Volume = 3000
	}
	items := []models.SentimentItem{
		{Score: 1.0, Confidence: 1.0, RecencyRank: 0},
	}

	sig, err := e.Generate("AAPL", bars, items, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.Type != models.SignalBuy {
		t.Fatalf("aligned bullish inputs should BUY (combined=%v), got %v", sig.CombinedScore, sig.Type)
	}
	if sig.SentimentScore != 1.0 {
		t.Fatalf("sentiment score should be 1.0, got %v", sig.SentimentScore)
	}
	if sig.CombinedScore < e.Config().BuyThreshold {
		t.Fatalf("combined score %v below buy threshold", sig.CombinedScore)
	}
	// Steady climb trips the volatility factor and the RSI extreme.
	if sig.RiskLevel != models.RiskMedium {
		t.Fatalf("expected MEDIUM risk, got %v", sig.RiskLevel)
	}
	// floor(10000 / 159) at MEDIUM risk (multiplier 1.0)
	if want := 62; sig.Quantity != want {
		t.Fatalf("quantity: got %d, want %d", sig.Quantity, want)
	}
	if sig.Reason == "" || !strings.Contains(sig.Reason, "AAPL") {
		t.Fatalf("reason should mention the symbol: %q", sig.Reason)
	}
}

func TestGenerateCombinedScoreIsWeightedSum(t *testing.T) {
	e := NewEngine(mustConfig(t, DefaultConfig()))
	sig, err := e.Generate("MSFT", barsFromCloses(constCloses(60, 50)), nil, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := e.Config()
	want := sig.Scores.Sentiment*cfg.SentimentWeight +
		sig.Scores.Technical*cfg.TechnicalWeight +
		sig.Scores.Volume*cfg.VolumeWeight +
		sig.Scores.Momentum*cfg.MomentumWeight
	if sig.CombinedScore != want {
		t.Fatalf("combined score %v is not the weighted component sum %v", sig.CombinedScore, want)
	}
}
