package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/config"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
)

// TrackingMessage is a carrier status report as it arrives on the tracking
// topic.
type TrackingMessage struct {
	OrderID    string    `json:"order_id" validate:"required,max=64"`
	Status     string    `json:"status" validate:"required,max=64"`
	TrackingID string    `json:"courier_tracking_id"`
	WaybillID  string    `json:"courier_waybill_id"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (m TrackingMessage) ToEntity() entities.TrackingUpdate {
	return entities.TrackingUpdate{
		OrderID:    m.OrderID,
		Status:     m.Status,
		TrackingID: m.TrackingID,
		WaybillID:  m.WaybillID,
		OccurredAt: m.UpdatedAt,
	}
}

// Delays between failed fetches, doubled per consecutive failure.
const (
	fetchBackoff    = 500 * time.Millisecond
	maxFetchBackoff = 30 * time.Second
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaHandler struct {
	dlq      messageWriter
	reader   messageReader
	logger   *slog.Logger
	validate *validator.Validate
	applier  TrackingApplier

	backoff    time.Duration
	maxBackoff time.Duration
	sleep      func(ctx context.Context, d time.Duration) bool
}

func NewKafkaHandler(logger *slog.Logger, cfg config.Kafka, applier TrackingApplier) *kafkaHandler {
	return newKafkaHandler(logger,
		kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Brokers,
			GroupID: cfg.GroupID,
			Topic:   cfg.TrackingTopic,
			MaxWait: cfg.ReaderMaxWait,
		}),
		&kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Balancer:               &kafka.LeastBytes{},
			BatchTimeout:           cfg.BatchTimeout,
			AllowAutoTopicCreation: true,
		},
		applier,
	)
}

func newKafkaHandler(logger *slog.Logger, reader messageReader, dlq messageWriter, applier TrackingApplier) *kafkaHandler {
	return &kafkaHandler{
		logger:   logger.With(slog.String("handler", "kafka")),
		reader:   reader,
		dlq:      dlq,
		validate: validator.New(),
		applier:  applier,

		backoff:    fetchBackoff,
		maxBackoff: maxFetchBackoff,
		sleep:      sleepContext,
	}
}

// Consume applies tracking reports until ctx is cancelled. A report that
// cannot be applied goes to the dead letter topic and is committed, so one
// bad message never blocks the partition. Fetch failures back off
// exponentially until a fetch succeeds again.
func (h *kafkaHandler) Consume(ctx context.Context) {
	delay := h.backoff
	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			h.logger.Error("failed to fetch message", slog.Any("error", err), slog.Duration("retry_in", delay))
			if !h.sleep(ctx, delay) {
				return
			}
			delay = min(delay*2, h.maxBackoff)
			continue
		}
		delay = h.backoff

		if err := h.handleTracking(ctx, m); err != nil {
			trackingFailed.Inc()
			h.logger.Error("failed to handle message",
				slog.Any("error", err),
				slog.Int64("offset", m.Offset),
			)

			if err := h.WriteToDLQ(ctx, m); err != nil {
				h.logger.Error("failed to write message to DLQ", slog.Any("error", err))
				continue
			}
			trackingDLQ.Inc()
		}

		if err := h.reader.CommitMessages(ctx, m); err != nil {
			commitErrors.Inc()
			h.logger.Error("failed to commit message", slog.Any("error", err))
		}
	}
}

func (h *kafkaHandler) handleTracking(ctx context.Context, m kafka.Message) error {
	trackingInProgress.Inc()
	start := time.Now()
	defer func() {
		trackingInProgress.Dec()
		trackingDuration.Observe(time.Since(start).Seconds())
	}()

	var msg TrackingMessage
	if err := json.Unmarshal(m.Value, &msg); err != nil {
		return fmt.Errorf("failed to unmarshal tracking message: %w", err)
	}
	if err := h.validate.Struct(msg); err != nil {
		return fmt.Errorf("invalid tracking message: %w", err)
	}

	applied, err := h.applier.ApplyTracking(ctx, msg.ToEntity())
	if err != nil {
		return fmt.Errorf("apply tracking for order %s: %w", msg.OrderID, err)
	}

	trackingProcessed.WithLabelValues(outcomeLabel(applied)).Inc()
	return nil
}

func (h *kafkaHandler) WriteToDLQ(ctx context.Context, m kafka.Message) error {
	dead := kafka.Message{
		Topic:   fmt.Sprintf("%s-dlq", m.Topic),
		Key:     m.Key,
		Value:   m.Value,
		Headers: m.Headers,
	}
	return h.dlq.WriteMessages(ctx, dead)
}

func (h *kafkaHandler) Close() error {
	if err := h.reader.Close(); err != nil {
		return err
	}
	return h.dlq.Close()
}

// sleepContext waits for d and reports false if ctx ended first.
func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func outcomeLabel(applied bool) string {
	if applied {
		return "applied"
	}
	return "recorded"
}
