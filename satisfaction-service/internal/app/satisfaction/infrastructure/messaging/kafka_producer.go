package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"customersatisfaction/pkg/metrics"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/entity"

	"github.com/segmentio/kafka-go"
)

const metricsService = "satisfaction-service"

const (
	writeTimeout = time.Second
	maxAttempts  = 1
)

// messageWriter - часть kafka.Writer, которой пользуется продюсер
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducer struct {
	writer messageWriter
	topic  string
}

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: writeTimeout,
		MaxAttempts:  maxAttempts,
	}

	return &KafkaProducer{writer: writer, topic: topic}
}

func (p *KafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	timer := metrics.NewKafkaProduceTimer(metricsService, p.topic)

	message := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		timer.Error()
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	timer.Success()
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// EventPublisher сериализует события в JSON и раскладывает их по топикам:
// REVIEW_CREATED с ключом storeId, REPORT_DIGEST с ключом по окну отчёта
type EventPublisher struct {
	reviews *KafkaProducer
	digests *KafkaProducer
}

func NewEventPublisher(brokers []string, reviewTopic, digestTopic string) *EventPublisher {
	return &EventPublisher{
		reviews: NewKafkaProducer(brokers, reviewTopic),
		digests: NewKafkaProducer(brokers, digestTopic),
	}
}

func (p *EventPublisher) PublishReviewEvent(ctx context.Context, event entity.ReviewEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal review event: %w", err)
	}
	return p.reviews.PublishMessage(ctx, fmt.Sprintf("store-%d", event.StoreID), value)
}

func (p *EventPublisher) PublishReportDigest(ctx context.Context, event entity.ReportDigestEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal report digest: %w", err)
	}
	return p.digests.PublishMessage(ctx, event.To.Format(time.RFC3339), value)
}

func (p *EventPublisher) Close() error {
	reviewErr := p.reviews.Close()
	digestErr := p.digests.Close()
	if reviewErr != nil {
		return reviewErr
	}
	return digestErr
}

// NopPublisher используется, когда KAFKA_BROKERS не задан
type NopPublisher struct{}

func (NopPublisher) PublishReviewEvent(context.Context, entity.ReviewEvent) error { return nil }

func (NopPublisher) PublishReportDigest(context.Context, entity.ReportDigestEvent) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
