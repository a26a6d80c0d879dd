package scoring

import (
	"math"
	"testing"
)

func TestConfidenceEmptyInput(t *testing.T) {
	var ce ConfidenceEstimator
	if got := ce.Estimate(nil); got != 0.0 {
		t.Fatalf("empty input should estimate 0.0, got %v", got)
	}
}

func TestConfidenceFullAgreement(t *testing.T) {
	var ce ConfidenceEstimator
	got := ce.Estimate([]float64{0.5, 0.5, 0.5, 0.5})
	want := 1.0*0.6 + 0.5*0.4
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestConfidenceDisagreementLowers(t *testing.T) {
	var ce ConfidenceEstimator
	agree := ce.Estimate([]float64{0.5, 0.5, 0.5, 0.5})
	split := ce.Estimate([]float64{0.5, -0.5, 0.5, -0.5})
	if split >= agree {
		t.Fatalf("disagreement should lower confidence: split=%v agree=%v", split, agree)
	}
}

func TestConfidenceBounded(t *testing.T) {
	inputs := [][]float64{
		{1, 1, 1, 1},
		{-1, -1, -1, -1},
		{0, 0, 0, 0},
		{1, -1, 0.05, -0.05},
		{2.5, -2.5, 2.5, 2.5}, // out-of-convention magnitudes still bounded
	}
	var ce ConfidenceEstimator
	for _, in := range inputs {
		got := ce.Estimate(in)
		if got < 0 || got > 1 {
			t.Fatalf("confidence out of [0,1] for %v: %v", in, got)
		}
	}
}
