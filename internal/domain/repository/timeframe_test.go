package repository

import "testing"

func TestNormalizeTimeframe(t *testing.T) {
	cases := []struct {
		in   string
		want Timeframe
	}{
		{"", TF1d},
		{"1m", TF1m},
		{"5m", TF5m},
		{"1h", TF1h},
		{"1d", TF1d},
		{"2w", TF1d},
		{"junk", TF1d},
	}
	for _, c := range cases {
		if got := NormalizeTimeframe(c.in); got != c.want {
			t.Fatalf("NormalizeTimeframe(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestIsValidTimeframe(t *testing.T) {
	if !IsValidTimeframe(TF1h) {
		t.Fatalf("1h should be valid")
	}
	if IsValidTimeframe(Timeframe("1s")) {
		t.Fatalf("1s should not be valid")
	}
}
