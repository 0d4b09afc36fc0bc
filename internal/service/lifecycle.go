package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/shipping"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/pkg/trm"
	"github.com/shopspring/decimal"
)

// ReorderLine is an item from a past order that can go back into a cart.
type ReorderLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type lifecycleService struct {
	logger    *slog.Logger
	txManager trm.Manager
	products  ProductRepo
	orders    OrderRepo
	carrier   Carrier
	events    EventPublisher
	now       func() time.Time
}

func NewLifecycleService(
	logger *slog.Logger,
	txManager trm.Manager,
	products ProductRepo,
	orders OrderRepo,
	carrier Carrier,
	events EventPublisher,
) *lifecycleService {
	return &lifecycleService{
		logger:    logger.With(slog.String("service", "lifecycle")),
		txManager: txManager,
		products:  products,
		orders:    orders,
		carrier:   carrier,
		events:    events,
		now:       time.Now,
	}
}

// Cancel cancels a customer's own order and puts its stock back. Orders of
// other users are reported as not found.
func (s *lifecycleService) Cancel(ctx context.Context, userID, orderID, reason string) (entities.Order, error) {
	var (
		order    entities.Order
		previous entities.OrderStatus
	)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orders.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order.UserID != userID {
			return entities.ErrOrderNotFound
		}
		if !order.Status.Cancellable() {
			return entities.NewCancelError(order.Status)
		}

		previous = order.Status
		s.transition(&order, entities.StatusCancelled, entities.StatusEvidence{
			Source: entities.SourceCustomer,
			Actor:  userID,
			Note:   reason,
		})
		if err := s.orders.UpdateOrderState(ctx, order); err != nil {
			return err
		}
		return s.restoreStock(ctx, order)
	})
	if err != nil {
		return entities.Order{}, err
	}

	s.logger.InfoContext(ctx, "order cancelled",
		slog.String("order_id", order.ID),
		slog.String("previous_status", string(previous)),
	)
	statusTransitions.WithLabelValues(string(entities.SourceCustomer), string(entities.StatusCancelled)).Inc()
	s.publish(ctx, entities.NewOrderEvent(entities.EventOrderCancelled, order, previous, entities.SourceCustomer, s.now()))
	return order, nil
}

// Reorder lists the items of a finished order whose products can still be
// bought.
func (s *lifecycleService) Reorder(ctx context.Context, userID, orderID string) ([]ReorderLine, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, entities.ErrOrderNotFound
	}
	if !order.Status.Reorderable() {
		return nil, fmt.Errorf("%w: status %s", entities.ErrNotReorderable, order.Status)
	}

	ids := make([]int64, 0, len(order.Items))
	for _, it := range order.Items {
		if it.ProductID != nil {
			ids = append(ids, *it.ProductID)
		}
	}
	products, err := s.products.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := indexProducts(products)

	lines := make([]ReorderLine, 0, len(ids))
	for _, it := range order.Items {
		if it.ProductID == nil {
			continue
		}
		if p, ok := byID[*it.ProductID]; ok && p.IsActive {
			lines = append(lines, ReorderLine{ProductID: p.ID, Quantity: it.Quantity})
		}
	}
	return lines, nil
}

// ApplyStatus moves an order to status. Repeating the current status is a
// no-op and reports false. Only admins may move an order backwards, and
// nobody may reopen a cancelled order.
func (s *lifecycleService) ApplyStatus(ctx context.Context, orderID string, status entities.OrderStatus, ev entities.StatusEvidence) (bool, error) {
	return s.apply(ctx, orderID, status, ev, nil)
}

// ApplyPayment applies a verified gateway notification after checking the
// paid amount against the stored total.
func (s *lifecycleService) ApplyPayment(ctx context.Context, orderID string, status entities.OrderStatus, gross decimal.Decimal, reference string) (bool, error) {
	if status == "" {
		return false, nil
	}
	return s.apply(ctx, orderID, status, entities.StatusEvidence{
		Source:    entities.SourcePayment,
		Reference: reference,
	}, func(o entities.Order) error {
		if !gross.Equal(o.Total) {
			return fmt.Errorf("%w: got %s, want %s", entities.ErrAmountMismatch, gross.StringFixed(2), o.Total.StringFixed(2))
		}
		return nil
	})
}

func (s *lifecycleService) apply(ctx context.Context, orderID string, status entities.OrderStatus, ev entities.StatusEvidence, check func(entities.Order) error) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("%w: unknown status %q", entities.ErrInvalidTransition, status)
	}

	var (
		order    entities.Order
		previous entities.OrderStatus
		applied  bool
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orders.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if check != nil {
			if err := check(order); err != nil {
				return err
			}
		}

		previous = order.Status
		applied = false
		if order.Status == status {
			return nil
		}
		if !allowed(order.Status, status, ev.Source) {
			return fmt.Errorf("%w: %s to %s by %s", entities.ErrInvalidTransition, order.Status, status, ev.Source)
		}

		s.transition(&order, status, ev)
		if err := s.orders.UpdateOrderState(ctx, order); err != nil {
			return err
		}
		// Stock only goes back while the goods have not left the warehouse.
		if status == entities.StatusCancelled && previous.Cancellable() {
			if err := s.restoreStock(ctx, order); err != nil {
				return err
			}
		}
		applied = true
		return nil
	})
	if err != nil || !applied {
		return false, err
	}

	s.afterTransition(ctx, order, previous, ev.Source)
	return true, nil
}

// ApplyTracking records a carrier state and moves the order forward when
// the state maps to a later status.
func (s *lifecycleService) ApplyTracking(ctx context.Context, update entities.TrackingUpdate) (bool, error) {
	state := strings.ToLower(strings.TrimSpace(update.Status))
	next, mapped := shipping.OrderStatusFor(state)

	var (
		order    entities.Order
		previous entities.OrderStatus
		applied  bool
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orders.GetOrderForUpdate(ctx, update.OrderID)
		if err != nil {
			return err
		}

		previous = order.Status
		applied = mapped && order.Status.Advances(next)
		if !applied && order.TrackingStatus == state {
			return nil
		}

		order.TrackingStatus = state
		if applied {
			s.transition(&order, next, entities.StatusEvidence{
				Source:    entities.SourceTracking,
				Reference: update.TrackingID,
				Note:      state,
			})
		}
		return s.orders.UpdateOrderState(ctx, order)
	})
	if err != nil || !applied {
		return false, err
	}

	s.afterTransition(ctx, order, previous, entities.SourceTracking)
	return true, nil
}

func allowed(from, to entities.OrderStatus, source entities.StatusSource) bool {
	if source == entities.SourceAdmin {
		return from != entities.StatusCancelled
	}
	return from.Advances(to)
}

// transition sets the new status and appends its provenance to the order
// metadata.
func (s *lifecycleService) transition(order *entities.Order, to entities.OrderStatus, ev entities.StatusEvidence) {
	now := s.now().UTC()
	order.Metadata.StatusHistory = append(order.Metadata.StatusHistory, entities.StatusChange{
		From:      order.Status,
		To:        to,
		Source:    ev.Source,
		Actor:     ev.Actor,
		Reference: ev.Reference,
		Note:      ev.Note,
		At:        now,
	})
	if to == entities.StatusCancelled {
		order.Metadata.Cancellation = &entities.Cancellation{
			CancelledBy:    string(ev.Source),
			CancelledAt:    now,
			PreviousStatus: order.Status,
			Reason:         ev.Note,
		}
	}
	order.Status = to
	order.UpdatedAt = now
}

func (s *lifecycleService) restoreStock(ctx context.Context, order entities.Order) error {
	for _, it := range order.Items {
		if it.ProductID == nil {
			continue
		}
		if err := s.products.IncrementStock(ctx, *it.ProductID, it.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (s *lifecycleService) afterTransition(ctx context.Context, order entities.Order, previous entities.OrderStatus, source entities.StatusSource) {
	ctx = context.WithoutCancel(ctx)
	statusTransitions.WithLabelValues(string(source), string(order.Status)).Inc()
	s.logger.InfoContext(ctx, "order status changed",
		slog.String("order_id", order.ID),
		slog.String("from", string(previous)),
		slog.String("to", string(order.Status)),
		slog.String("source", string(source)),
	)

	if order.Status == entities.StatusPaid && order.Metadata.ShippingBooking == nil {
		s.book(ctx, order)
	}

	eventType := entities.EventOrderStatusChanged
	if order.Status == entities.StatusCancelled {
		eventType = entities.EventOrderCancelled
	}
	s.publish(ctx, entities.NewOrderEvent(eventType, order, previous, source, s.now()))
}

// book asks the carrier to pick up a freshly paid order. Failures are kept
// in the order metadata for an operator to retry.
func (s *lifecycleService) book(ctx context.Context, order entities.Order) {
	if s.carrier == nil {
		return
	}
	booking, err := s.carrier.CreateBooking(ctx, order)
	patch := entities.Metadata{ShippingBooking: &booking}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to book shipment", slog.String("order_id", order.ID), slog.Any("error", err))
		patch = entities.Metadata{BookingError: err.Error()}
	}
	if err := s.orders.MergeOrderMetadata(ctx, order.ID, patch); err != nil {
		s.logger.ErrorContext(ctx, "failed to record shipment booking", slog.String("order_id", order.ID), slog.Any("error", err))
	}
}

func (s *lifecycleService) publish(ctx context.Context, event entities.OrderEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish order event",
			slog.String("type", string(event.Type)),
			slog.String("order_id", event.OrderID),
			slog.Any("error", err),
		)
	}
}
