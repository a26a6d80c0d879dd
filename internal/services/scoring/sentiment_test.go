package scoring

import (
	"math"
	"testing"

	"SignalDesk/internal/domain/models"
)

func TestAggregateEmptyIsNeutral(t *testing.T) {
	var agg SentimentAggregator
	if got := agg.Aggregate(nil); got != 0.0 {
		t.Fatalf("empty input should aggregate to 0.0, got %v", got)
	}
}

func TestAggregateSingleItem(t *testing.T) {
	var agg SentimentAggregator
	got := agg.Aggregate([]models.SentimentItem{
		{Score: 1.0, Confidence: 1.0, RecencyRank: 0},
	})
	if got != 1.0 {
		t.Fatalf("single fully-confident item should aggregate to 1.0, got %v", got)
	}
}

func TestAggregateRecencyWeighting(t *testing.T) {
	var agg SentimentAggregator
	// Most recent item positive, older item negative with equal confidence.
	// Weights 1 and 0.5 mean the recent item must dominate.
	got := agg.Aggregate([]models.SentimentItem{
		{Score: 1.0, Confidence: 1.0, RecencyRank: 0},
		{Score: -1.0, Confidence: 1.0, RecencyRank: 1},
	})
	want := (1.0 - 0.5) / 1.5
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got <= 0 {
		t.Fatalf("recent positive item should dominate, got %v", got)
	}
}

func TestAggregateScalesByConfidence(t *testing.T) {
	var agg SentimentAggregator
	got := agg.Aggregate([]models.SentimentItem{
		{Score: 1.0, Confidence: 0.5, RecencyRank: 0},
	})
	if got != 0.5 {
		t.Fatalf("confidence should scale the score, got %v", got)
	}
}
