package models

import (
	"encoding/json"
	"time"
)

// Bar represents one OHLCV record for a symbol at a given timeframe.
// Bars in a series must be sorted ascending by timestamp; the scoring
// engine does not re-sort.
type Bar struct {
	Symbol    string    `json:"symbol"`
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
	Timeframe string    `json:"timeframe,omitempty"`
}

// SentimentItem is one externally scored news observation. RecencyRank 0 is
// the most recent item; callers are responsible for the ordering.
type SentimentItem struct {
	Symbol      string    `json:"symbol"`
	Score       float64   `json:"score"`      // [-1, 1]
	Confidence  float64   `json:"confidence"` // [0, 1]
	RecencyRank int       `json:"recency_rank"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// Indicator is an optional indicator value. Valid=false means the bar
// history was too short for the indicator's lookback window; that is not
// an error, the indicator simply does not contribute.
type Indicator struct {
	Value float64
	Valid bool
}

// Ind wraps a computed value as a valid Indicator.
func Ind(v float64) Indicator { return Indicator{Value: v, Valid: true} }

// MarshalJSON renders an unset indicator as null.
func (i Indicator) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(i.Value)
}

// UnmarshalJSON accepts null for an unset indicator.
func (i *Indicator) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*i = Indicator{}
		return nil
	}
	if err := json.Unmarshal(b, &i.Value); err != nil {
		return err
	}
	i.Valid = true
	return nil
}

// IndicatorSet holds the latest value of each technical indicator computed
// over a bar series. Unset fields mean insufficient history.
type IndicatorSet struct {
	Symbol    string    `json:"symbol,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`

	SMA20 Indicator `json:"sma_20"`
	SMA50 Indicator `json:"sma_50"`
	EMA12 Indicator `json:"ema_12"`
	EMA26 Indicator `json:"ema_26"`

	RSI Indicator `json:"rsi"`

	MACD          Indicator `json:"macd"`
	MACDSignal    Indicator `json:"macd_signal"`
	MACDHistogram Indicator `json:"macd_histogram"`

	BollingerUpper  Indicator `json:"bollinger_upper"`
	BollingerMiddle Indicator `json:"bollinger_middle"`
	BollingerLower  Indicator `json:"bollinger_lower"`

	StochasticK Indicator `json:"stochastic_k"`
	StochasticD Indicator `json:"stochastic_d"`

	WilliamsR Indicator `json:"williams_r"`
	ATR       Indicator `json:"atr"`
}

// ComponentScores are the four factor scores blended into the combined
// score. Each stays within roughly [-1, 1].
type ComponentScores struct {
	Sentiment float64 `json:"sentiment"`
	Technical float64 `json:"technical"`
	Volume    float64 `json:"volume"`
	Momentum  float64 `json:"momentum"`
}
