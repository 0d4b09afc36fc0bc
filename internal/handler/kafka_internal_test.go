package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	mocks "github.com/agustrio1/sveltekit-ecommerce-sub000/internal/handler/mocks"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	// errs are returned before msgs, one per fetch; a nil entry serves the
	// next message instead.
	errs      []error
	msgs      []kafka.Message
	committed []kafka.Message
	closed    bool
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.errs) > 0 {
		err := r.errs[0]
		r.errs = r.errs[1:]
		if err != nil {
			return kafka.Message{}, err
		}
	}
	if len(r.msgs) == 0 {
		return kafka.Message{}, io.EOF
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

type fakeWriter struct {
	written []kafka.Message
	err     error
	closed  bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaHandler_Consume(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	at := time.Date(2024, 10, 19, 8, 30, 0, 0, time.UTC)

	valid := kafka.Message{
		Topic:  "order-tracking",
		Offset: 1,
		Value:  []byte(`{"order_id":"o-1","status":"delivered","courier_tracking_id":"trk-1","courier_waybill_id":"WB1","updated_at":"2024-10-19T08:30:00Z"}`),
	}
	broken := kafka.Message{Topic: "order-tracking", Offset: 2, Key: []byte("o-2"), Value: []byte(`{"order_id":`)}
	missingStatus := kafka.Message{Topic: "order-tracking", Offset: 3, Value: []byte(`{"order_id":"o-3"}`)}
	unknownOrder := kafka.Message{Topic: "order-tracking", Offset: 4, Value: []byte(`{"order_id":"o-4","status":"picked"}`)}

	reader := &fakeReader{msgs: []kafka.Message{valid, broken, missingStatus, unknownOrder}}
	dlq := &fakeWriter{}

	applier := mocks.NewMockTrackingApplier(t)
	applier.EXPECT().
		ApplyTracking(mock.Anything, entities.TrackingUpdate{
			OrderID:    "o-1",
			Status:     "delivered",
			TrackingID: "trk-1",
			WaybillID:  "WB1",
			OccurredAt: at,
		}).
		Return(true, nil).Once()
	applier.EXPECT().
		ApplyTracking(mock.Anything, mock.MatchedBy(func(u entities.TrackingUpdate) bool { return u.OrderID == "o-4" })).
		Return(false, entities.ErrOrderNotFound).Once()

	h := newKafkaHandler(logger, reader, dlq, applier)
	h.Consume(context.Background())

	assert.Len(t, reader.committed, 4, "every message is committed, failed ones after the DLQ write")
	require.Len(t, dlq.written, 3)
	for _, m := range dlq.written {
		assert.Equal(t, "order-tracking-dlq", m.Topic)
	}
	assert.Equal(t, []byte("o-2"), dlq.written[0].Key)
	assert.Equal(t, broken.Value, dlq.written[0].Value)
}

func TestKafkaHandler_DLQFailureSkipsCommit(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reader := &fakeReader{msgs: []kafka.Message{{Topic: "order-tracking", Value: []byte(`not json`)}}}
	dlq := &fakeWriter{err: errors.New("broker down")}

	h := newKafkaHandler(logger, reader, dlq, mocks.NewMockTrackingApplier(t))
	h.Consume(context.Background())

	assert.Empty(t, reader.committed)
}

func TestKafkaHandler_FetchBackoff(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	down := errors.New("broker unreachable")

	reader := &fakeReader{
		errs: []error{down, down, down, down, nil, down},
		msgs: []kafka.Message{{Topic: "order-tracking", Value: []byte(`{"order_id":"o-1","status":"picked"}`)}},
	}
	applier := mocks.NewMockTrackingApplier(t)
	applier.EXPECT().ApplyTracking(mock.Anything, mock.Anything).Return(true, nil).Once()

	h := newKafkaHandler(logger, reader, &fakeWriter{}, applier)
	h.backoff = time.Millisecond
	h.maxBackoff = 4 * time.Millisecond
	var waits []time.Duration
	h.sleep = func(ctx context.Context, d time.Duration) bool {
		waits = append(waits, d)
		return true
	}

	h.Consume(context.Background())

	assert.Equal(t, []time.Duration{
		time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond, 4 * time.Millisecond,
		time.Millisecond,
	}, waits, "delay doubles up to the cap and resets after a successful fetch")
	assert.Len(t, reader.committed, 1)
}

func TestKafkaHandler_FetchBackoffStopsOnCancel(t *testing.T) {
	reader := &fakeReader{errs: []error{errors.New("broker unreachable")}}
	h := newKafkaHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), reader, &fakeWriter{}, mocks.NewMockTrackingApplier(t))
	h.backoff = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Consume(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Consume kept waiting after the context was cancelled")
	}
}

func TestKafkaHandler_Close(t *testing.T) {
	reader := &fakeReader{}
	dlq := &fakeWriter{}
	h := newKafkaHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), reader, dlq, mocks.NewMockTrackingApplier(t))

	require.NoError(t, h.Close())
	assert.True(t, reader.closed)
	assert.True(t, dlq.closed)
}
