package events

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/emotiflow/internal/models"
)

// AnalysisEvent is the payload published for each successful analysis. The
// raw text is not included, only its hash, so downstream consumers can
// correlate without the service leaking user input.
type AnalysisEvent struct {
	TextHash   string                `json:"text_hash"`
	Result     models.AnalysisResult `json:"result"`
	AnalyzedAt time.Time             `json:"analyzed_at"`
}

// Publisher emits analysis events to Kafka fire-and-forget; publishing never
// affects the HTTP response.
type Publisher struct {
	producer *kafka.Producer
	topic    string
}

func NewPublisher(brokers, topic string) (*Publisher, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"acks":              "1",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	slog.Info("[Events] Kafka publisher initialized",
		slog.String("topic", topic))

	return &Publisher{producer: producer, topic: topic}, nil
}

func (p *Publisher) Close() {
	if remaining := p.producer.Flush(5000); remaining > 0 {
		slog.Warn("[Events] Not all events were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	p.producer.Close()
}

func (p *Publisher) PublishAnalysis(text string, result models.AnalysisResult) {
	hash := sha256.Sum256([]byte(text))
	event := AnalysisEvent{
		TextHash:   hex.EncodeToString(hash[:]),
		Result:     result,
		AnalyzedAt: time.Now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		slog.Warn("[Events] Failed to marshal analysis event",
			slog.String("error", err.Error()))
		return
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.TextHash),
		Value:          value,
	}
	if err := p.producer.Produce(msg, nil); err != nil {
		slog.Warn("[Events] Failed to publish analysis event",
			slog.String("error", err.Error()))
	}
}
