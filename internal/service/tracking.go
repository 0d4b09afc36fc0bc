package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
)

// TrackingApplier is the part of the lifecycle the poller drives.
type TrackingApplier interface {
	ApplyTracking(ctx context.Context, update entities.TrackingUpdate) (bool, error)
}

type TrackingPoller struct {
	logger   *slog.Logger
	orders   OrderRepo
	carrier  Carrier
	applier  TrackingApplier
	interval time.Duration
	batch    int
	now      func() time.Time
}

func NewTrackingPoller(
	logger *slog.Logger,
	orders OrderRepo,
	carrier Carrier,
	applier TrackingApplier,
	interval time.Duration,
	batch int,
) *TrackingPoller {
	return &TrackingPoller{
		logger:   logger.With(slog.String("service", "tracking_poller")),
		orders:   orders,
		carrier:  carrier,
		applier:  applier,
		interval: interval,
		batch:    batch,
		now:      time.Now,
	}
}

// Start polls the carrier for booked orders until ctx is done.
func (p *TrackingPoller) Start(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("tracking poller started", slog.Duration("interval", p.interval))
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("tracking poller stopped")
			return nil
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

// Poll runs one pass and reports how many orders changed status.
func (p *TrackingPoller) Poll(ctx context.Context) int {
	orders, err := p.orders.OrdersForTracking(ctx, p.batch)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to load orders for tracking", slog.Any("error", err))
		return 0
	}

	moved := 0
	for _, order := range orders {
		if ctx.Err() != nil {
			break
		}
		booking := order.Metadata.ShippingBooking
		if booking == nil || booking.TrackingID == "" {
			continue
		}

		info, err := p.carrier.Track(ctx, booking.TrackingID)
		if err != nil {
			p.logger.WarnContext(ctx, "failed to track shipment",
				slog.String("order_id", order.ID),
				slog.String("tracking_id", booking.TrackingID),
				slog.Any("error", err),
			)
			continue
		}

		applied, err := p.applier.ApplyTracking(ctx, entities.TrackingUpdate{
			OrderID:    order.ID,
			Status:     info.Status,
			TrackingID: info.TrackingID,
			WaybillID:  info.WaybillID,
			OccurredAt: p.now(),
		})
		if err != nil {
			p.logger.ErrorContext(ctx, "failed to apply tracking update",
				slog.String("order_id", order.ID),
				slog.Any("error", err),
			)
			continue
		}
		if applied {
			moved++
		}
	}
	return moved
}
