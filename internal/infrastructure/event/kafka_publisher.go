package event

import (
	"context"
	"errors"
	"fmt"

	otelkafka "github.com/Trendyol/otel-kafka-konsumer"
	"github.com/segmentio/kafka-go"
	"github.com/shelfsync/backend/internal/domain/shared"
	"github.com/shelfsync/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Kafka header names
const (
	HeaderEventType     = "event_type"
	HeaderAggregateType = "aggregate_type"
	HeaderTenantID      = "tenant_id"
)

// ErrNoBrokers is returned when publishing is enabled without brokers
var ErrNoBrokers = errors.New("event: no Kafka brokers configured")

// MessageWriter writes one Kafka message
type MessageWriter interface {
	WriteMessage(ctx context.Context, msg kafka.Message) error
	Close() error
}

// KafkaEventPublisher implements shared.EventPublisher on a Kafka topic.
// Messages are keyed by aggregate ID so one item's changes stay ordered.
type KafkaEventPublisher struct {
	writer     MessageWriter
	serializer *EventSerializer
	logger     *zap.Logger
}

// NewKafkaEventPublisher wraps an existing writer
func NewKafkaEventPublisher(writer MessageWriter, logger *zap.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		writer:     writer,
		serializer: NewEventSerializer(),
		logger:     logger.Named("event-publisher"),
	}
}

// NewTracedKafkaWriter creates a kafka-go writer instrumented with OpenTelemetry
func NewTracedKafkaWriter(cfg config.EventsConfig, tp trace.TracerProvider) (MessageWriter, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}
	base := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafka.RequireOne,
	}
	writer, err := otelkafka.NewWriter(base,
		otelkafka.WithTracerProvider(tp),
		otelkafka.WithPropagator(propagation.TraceContext{}),
		otelkafka.WithAttributes([]attribute.KeyValue{
			semconv.MessagingDestinationNameKey.String(cfg.Topic),
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka writer: %w", err)
	}
	return writer, nil
}

// NewEventPublisher returns a Kafka publisher when events are enabled and a
// no-op publisher otherwise
func NewEventPublisher(cfg config.EventsConfig, tp trace.TracerProvider, logger *zap.Logger) (shared.EventPublisher, func() error, error) {
	if !cfg.Enabled {
		return shared.NoopEventPublisher{}, func() error { return nil }, nil
	}
	writer, err := NewTracedKafkaWriter(cfg, tp)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("publishing stock events to Kafka",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.Topic),
	)
	p := NewKafkaEventPublisher(writer, logger)
	return p, p.Close, nil
}

// Publish writes each event as its own message. Every event is attempted;
// failures are joined.
func (p *KafkaEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	var errs []error
	for _, event := range events {
		payload, err := p.serializer.Serialize(event)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to serialize %s: %w", event.EventType(), err))
			continue
		}
		msg := kafka.Message{
			Key:   []byte(event.AggregateID().String()),
			Value: payload,
			Time:  event.OccurredAt(),
			Headers: []kafka.Header{
				{Key: HeaderEventType, Value: []byte(event.EventType())},
				{Key: HeaderAggregateType, Value: []byte(event.AggregateType())},
				{Key: HeaderTenantID, Value: []byte(event.TenantID().String())},
			},
		}
		if err := p.writer.WriteMessage(ctx, msg); err != nil {
			p.logger.Warn("failed to write event",
				zap.String("event_type", event.EventType()),
				zap.String("event_id", event.EventID().String()),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("failed to write %s: %w", event.EventType(), err))
		}
	}
	return errors.Join(errs...)
}

// Close flushes and closes the writer
func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}

var _ shared.EventPublisher = (*KafkaEventPublisher)(nil)
