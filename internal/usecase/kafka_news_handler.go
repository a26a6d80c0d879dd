package usecase

import (
	"context"
	"encoding/json"
	"time"

	"SignalDesk/internal/domain/models"
	domrepo "SignalDesk/internal/domain/repository"
	pkgkafka "SignalDesk/pkg/kafka"
)

// KafkaNewsHandler consumes pre-scored news sentiment and writes it to the
// sentiment store.
type KafkaNewsHandler struct {
	topic   string
	store   domrepo.SentimentStore
	metrics domrepo.Metrics
}

func NewKafkaNewsHandler(topic string, store domrepo.SentimentStore, metrics domrepo.Metrics) *KafkaNewsHandler {
	return &KafkaNewsHandler{topic: topic, store: store, metrics: metrics}
}

func (h *KafkaNewsHandler) Topic() string { return h.topic }

// incoming message schema: {symbol, score, confidence, published_at}
func (h *KafkaNewsHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		Symbol      string    `json:"symbol"`
		Score       float64   `json:"score"`
		Confidence  float64   `json:"confidence"`
		PublishedAt time.Time `json:"published_at"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if m.PublishedAt.IsZero() {
		m.PublishedAt = time.Now().UTC()
	}

	start := time.Now()
	err := h.store.Store(ctx, []models.SentimentItem{{
		Symbol:      m.Symbol,
		Score:       m.Score,
		Confidence:  m.Confidence,
		PublishedAt: m.PublishedAt,
	}})
	h.metrics.RecordLatency("sentiment_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaNewsHandler)(nil)
