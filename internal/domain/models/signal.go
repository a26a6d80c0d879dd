package models

import (
	"errors"
	"fmt"
	"time"
)

// SignalType is the trading decision.
type SignalType string

const (
	SignalBuy  SignalType = "BUY"
	SignalSell SignalType = "SELL"
	SignalHold SignalType = "HOLD"
)

// RiskLevel is the risk tier assigned to a signal.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// ErrInvalidSignalState is returned by Execute on a signal that was already
// executed or is past its expiry.
var ErrInvalidSignalState = errors.New("invalid signal state")

// Signal is one scoring decision for a symbol. It is created by a single
// scoring invocation and mutated only by the Execute transition.
type Signal struct {
	ID             string          `json:"id"`
	Symbol         string          `json:"symbol"`
	Type           SignalType      `json:"type"`
	Price          float64         `json:"price"`
	Quantity       int             `json:"quantity"`
	Confidence     float64         `json:"confidence"`
	SentimentScore float64         `json:"sentiment_score"`
	TechnicalScore float64         `json:"technical_score"`
	CombinedScore  float64         `json:"combined_score"`
	Scores         ComponentScores `json:"scores"`
	RiskLevel      RiskLevel       `json:"risk_level"`
	Reason         string          `json:"reason"`
	Executed       bool            `json:"executed"`
	ExecutedAt     time.Time       `json:"executed_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	ExpiresAt      time.Time       `json:"expires_at"`
}

// Expired reports whether the signal is past its expiry without having
// been executed.
func (s *Signal) Expired(now time.Time) bool {
	return !s.Executed && now.After(s.ExpiresAt)
}

// Execute transitions the signal to its executed terminal state. It fails
// with ErrInvalidSignalState if the signal was already executed or has
// expired; there is no transition out of either terminal state.
func (s *Signal) Execute(now time.Time) error {
	if s.Executed {
		return fmt.Errorf("signal %s already executed: %w", s.ID, ErrInvalidSignalState)
	}
	if now.After(s.ExpiresAt) {
		return fmt.Errorf("signal %s expired at %s: %w", s.ID, s.ExpiresAt.Format(time.RFC3339), ErrInvalidSignalState)
	}
	s.Executed = true
	s.ExecutedAt = now
	return nil
}
