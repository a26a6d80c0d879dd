package scoring

import (
	"math"
	"testing"

	"SignalDesk/internal/domain/models"
)

func barsWithVolumes(volumes []int64) []models.Bar {
	bars := barsFromCloses(constCloses(len(volumes), 100))
	for i := range bars {
		bars[i].Volume = volumes[i]
	}
	return bars
}

func TestVolumeScoreShortSeries(t *testing.T) {
	var vs VolumeScorer
	if got := vs.Score(barsFromCloses(constCloses(19, 100))); got != 0.0 {
		t.Fatalf("fewer than 20 bars should score 0.0, got %v", got)
	}
}

func TestVolumeScoreSpike(t *testing.T) {
	var vs VolumeScorer
	volumes := make([]int64, 20)
	for i := 0; i < 15; i++ {
		volumes[i] = 1000
	}
	for i := 15; i < 20; i++ {
		volumes[i] = 2000
	}
	if got := vs.Score(barsWithVolumes(volumes)); got != 0.5 {
		t.Fatalf("2x volume spike should score 0.5, got %v", got)
	}
}

func TestVolumeScoreDryUp(t *testing.T) {
	var vs VolumeScorer
	volumes := make([]int64, 20)
	for i := 0; i < 15; i++ {
		volumes[i] = 1000
	}
	for i := 15; i < 20; i++ {
		volumes[i] = 100
	}
	if got := vs.Score(barsWithVolumes(volumes)); got != -0.2 {
		t.Fatalf("dried-up volume should score -0.2, got %v", got)
	}
}

func TestVolumeScoreNormalAndZeroBaseline(t *testing.T) {
	var vs VolumeScorer
	if got := vs.Score(barsWithVolumes(make([]int64, 20))); got != 0.0 {
		t.Fatalf("zero baseline should score 0.0, got %v", got)
	}
	volumes := make([]int64, 20)
	for i := range volumes {
		volumes[i] = 1000
	}
	if got := vs.Score(barsWithVolumes(volumes)); got != 0.1 {
		t.Fatalf("normal volume should score 0.1, got %v", got)
	}
}

func TestMomentumScoreShortSeries(t *testing.T) {
	var ms MomentumScorer
	if got := ms.Score(barsFromCloses([]float64{100})); got != 0.0 {
		t.Fatalf("one bar should score 0.0, got %v", got)
	}
}

func TestMomentumScoreOneDayReturnOnly(t *testing.T) {
	var ms MomentumScorer
	// Two bars: only the 1-day return contributes.
	got := ms.Score(barsFromCloses([]float64{100, 101}))
	want := 0.5 * 0.01 * 10
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMomentumScoreClamped(t *testing.T) {
	var ms MomentumScorer
	if got := ms.Score(barsFromCloses([]float64{100, 150})); got != 1.0 {
		t.Fatalf("strong up-move should clamp to 1.0, got %v", got)
	}
	if got := ms.Score(barsFromCloses([]float64{100, 50})); got != -1.0 {
		t.Fatalf("strong down-move should clamp to -1.0, got %v", got)
	}
}

func TestMomentumScoreFlatSeries(t *testing.T) {
	var ms MomentumScorer
	if got := ms.Score(barsFromCloses(constCloses(15, 100))); got != 0.0 {
		t.Fatalf("flat series should score 0.0, got %v", got)
	}
}
