package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/config"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/segmentio/kafka-go"
)

var eventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "storefront",
	Subsystem: "kafka_producer",
	Name:      "events_total",
	Help:      "Order events handed to Kafka, by type and outcome.",
}, []string{"type", "outcome"})

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes order events keyed by order id, so all events of one
// order land in the same partition in order.
type Publisher struct {
	logger *slog.Logger
	writer messageWriter
}

func NewPublisher(logger *slog.Logger, cfg config.Kafka) *Publisher {
	return newPublisher(logger, &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.EventsTopic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	})
}

func newPublisher(logger *slog.Logger, w messageWriter) *Publisher {
	return &Publisher{
		logger: logger.With(slog.String("broker", "publisher")),
		writer: w,
	}
}

func (p *Publisher) Publish(ctx context.Context, event entities.OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
		Time: event.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		eventsPublished.WithLabelValues(string(event.Type), "error").Inc()
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	eventsPublished.WithLabelValues(string(event.Type), "ok").Inc()
	p.logger.DebugContext(ctx, "event published",
		slog.String("type", string(event.Type)),
		slog.String("order_id", event.OrderID),
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
