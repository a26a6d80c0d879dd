package models

import "time"

// Requests for the signal HTTP endpoints. Defined in domain for consistency
// and reuse across handler stacks.

type GenerateRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	N      int    `query:"n" json:"n" default:"200" validate:"gte=1,lte=5000"`
	TF     string `query:"tf" json:"tf" default:"1d" validate:"oneof=1m 5m 1h 1d"`
}

type LatestRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	Limit  int    `query:"limit" json:"limit" default:"1" validate:"gte=1,lte=100"`
}

type IndicatorsRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	N      int    `query:"n" json:"n" default:"200" validate:"gte=1,lte=5000"`
	TF     string `query:"tf" json:"tf" default:"1d" validate:"oneof=1m 5m 1h 1d"`
}

type ExecuteRequest struct {
	ID string `param:"id" json:"id" validate:"required"`
}

// ScoreBar mirrors Bar for inline scoring requests.
type ScoreBar struct {
	Timestamp time.Time `json:"timestamp" validate:"required"`
	Open      float64   `json:"open" validate:"gt=0"`
	High      float64   `json:"high" validate:"gt=0"`
	Low       float64   `json:"low" validate:"gt=0"`
	Close     float64   `json:"close" validate:"gt=0"`
	Volume    int64     `json:"volume" validate:"gte=0"`
}

// ScoreSentimentItem mirrors SentimentItem for inline scoring requests.
// Items must be ordered most-recent-first.
type ScoreSentimentItem struct {
	Score      float64 `json:"score" validate:"gte=-1,lte=1"`
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
}

// ScoreRequest scores caller-supplied bars and sentiment without touching
// storage. Weight/threshold fields override the configured defaults when
// non-zero as a group.
type ScoreRequest struct {
	Symbol    string               `json:"symbol" validate:"required"`
	TF        string               `json:"tf" default:"1d" validate:"oneof=1m 5m 1h 1d"`
	Bars      []ScoreBar           `json:"bars" validate:"required,min=1,dive"`
	Sentiment []ScoreSentimentItem `json:"sentiment" validate:"dive"`

	BuyThreshold    *float64 `json:"buy_threshold,omitempty"`
	SellThreshold   *float64 `json:"sell_threshold,omitempty"`
	MaxPositionSize *float64 `json:"max_position_size,omitempty"`
	SentimentWeight *float64 `json:"sentiment_weight,omitempty"`
	TechnicalWeight *float64 `json:"technical_weight,omitempty"`
	VolumeWeight    *float64 `json:"volume_weight,omitempty"`
	MomentumWeight  *float64 `json:"momentum_weight,omitempty"`
}
