package repository

import (
	"context"
	"time"

	"SignalDesk/internal/domain/models"
	"SignalDesk/internal/domain/repository"
	pkgkafka "SignalDesk/pkg/kafka"
)

// KafkaPublisher implements Publisher for Kafka. Signals are keyed by
// symbol so per-symbol ordering survives partitioning.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, s *models.Signal) error {
	return p.producer.Publish(ctx, p.topic, []byte(s.Symbol), signalPayload(s))
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

func signalPayload(s *models.Signal) map[string]interface{} {
	return map[string]interface{}{
		"id":              s.ID,
		"symbol":          s.Symbol,
		"type":            string(s.Type),
		"price":           s.Price,
		"quantity":        s.Quantity,
		"confidence":      s.Confidence,
		"sentiment_score": s.SentimentScore,
		"technical_score": s.TechnicalScore,
		"combined_score":  s.CombinedScore,
		"risk_level":      string(s.RiskLevel),
		"reason":          s.Reason,
		"created_at":      s.CreatedAt.Format(time.RFC3339Nano),
		"expires_at":      s.ExpiresAt.Format(time.RFC3339Nano),
	}
}
