package scoring

import (
	"fmt"
	"math"
	"time"
)

const weightSumEpsilon = 0.01

// Config holds the scoring parameters. Construct it through NewConfig so the
// structural invariants are checked exactly once; a validated Config is
// immutable by convention and safe to share across goroutines.
type Config struct {
	BuyThreshold    float64
	SellThreshold   float64
	MaxPositionSize float64

	SentimentWeight float64
	TechnicalWeight float64
	VolumeWeight    float64
	MomentumWeight  float64

	// MinBars is the floor below which no signal is generated at all.
	MinBars int
	// SignalTTL bounds how long a generated signal stays executable.
	SignalTTL time.Duration
}

// DefaultConfig returns the stock parameters.
func DefaultConfig() Config {
	return Config{
		BuyThreshold:    0.3,
		SellThreshold:   -0.3,
		MaxPositionSize: 10000.0,
		SentimentWeight: 0.4,
		TechnicalWeight: 0.4,
		VolumeWeight:    0.1,
		MomentumWeight:  0.1,
		MinBars:         50,
		SignalTTL:       24 * time.Hour,
	}
}

// NewConfig fills operational defaults and validates the structural
// invariants: the four weights must sum to 1.0 within epsilon and the sell
// threshold must sit strictly below the buy threshold.
func NewConfig(c Config) (Config, error) {
	if c.MinBars == 0 {
		c.MinBars = 50
	}
	if c.SignalTTL == 0 {
		c.SignalTTL = 24 * time.Hour
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	sum := c.SentimentWeight + c.TechnicalWeight + c.VolumeWeight + c.MomentumWeight
	if math.Abs(sum-1.0) > weightSumEpsilon {
		return fmt.Errorf("component weights sum to %.4f, want 1.0: %w", sum, ErrInvalidConfig)
	}
	if c.SellThreshold >= c.BuyThreshold {
		return fmt.Errorf("sell threshold %.4f must be below buy threshold %.4f: %w",
			c.SellThreshold, c.BuyThreshold, ErrInvalidConfig)
	}
	if c.MaxPositionSize <= 0 {
		return fmt.Errorf("max position size must be positive: %w", ErrInvalidConfig)
	}
	if c.MinBars < 2 {
		return fmt.Errorf("min bars must be at least 2: %w", ErrInvalidConfig)
	}
	return nil
}
