package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/pkg/trm"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type PlaceOrderInput struct {
	UserID             string
	Lines              []Line
	Recipient          entities.Address
	CourierCode        string
	CourierServiceCode string
	Notes              string

	// ClientTotal is what the browser believed the total to be. It is only
	// compared and logged, never charged.
	ClientTotal *decimal.Decimal
}

type PlaceOrderResult struct {
	Order   entities.Order
	Payment *entities.PaymentSession
}

type OrderConfig struct {
	Currency string
	Shipper  entities.Address
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	products  ProductRepo
	orders    OrderRepo
	pricing   *PricingService
	payments  PaymentGateway
	events    EventPublisher
	cfg       OrderConfig
	now       func() time.Time
}

func NewOrderService(
	logger *slog.Logger,
	txManager trm.Manager,
	products ProductRepo,
	orders OrderRepo,
	pricing *PricingService,
	payments PaymentGateway,
	events EventPublisher,
	cfg OrderConfig,
) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		products:  products,
		orders:    orders,
		pricing:   pricing,
		payments:  payments,
		events:    events,
		cfg:       cfg,
		now:       time.Now,
	}
}

// PlaceOrder prices the request on the server, reserves stock and stores the
// order in one transaction, then asks the gateway for a payment session.
// A payment failure leaves a pending order and is not returned as an error.
func (s *orderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (PlaceOrderResult, error) {
	quote, err := s.pricing.Quote(ctx, in.Lines, in.Recipient.PostalCode)
	if err != nil {
		ordersRejected.WithLabelValues(rejectReason(err)).Inc()
		return PlaceOrderResult{}, err
	}
	rate, err := s.pricing.SelectRate(quote.Rates, in.CourierCode, in.CourierServiceCode)
	if err != nil {
		ordersRejected.WithLabelValues(rejectReason(err)).Inc()
		return PlaceOrderResult{}, err
	}
	totals, err := s.pricing.Totals(quote.Subtotal, rate)
	if err != nil {
		ordersRejected.WithLabelValues(rejectReason(err)).Inc()
		return PlaceOrderResult{}, err
	}

	if in.ClientTotal != nil && !in.ClientTotal.Equal(totals.Total) {
		s.logger.WarnContext(ctx, "client total differs from server total",
			slog.String("user_id", in.UserID),
			slog.String("client_total", in.ClientTotal.StringFixed(2)),
			slog.String("server_total", totals.Total.StringFixed(2)),
		)
	}

	order := s.newOrder(in, quote, rate, totals)

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.reserveStock(ctx, in.Lines, quote); err != nil {
			return err
		}
		if err := s.orders.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("failed to save order: %w", err)
		}
		if err := s.orders.CreateOrderItems(ctx, order.ID, order.Items); err != nil {
			return fmt.Errorf("failed to save order items: %w", err)
		}
		return nil
	})
	if err != nil {
		ordersRejected.WithLabelValues(rejectReason(err)).Inc()
		return PlaceOrderResult{}, err
	}

	ordersPlaced.Inc()
	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("order_number", order.OrderNumber),
		slog.String("total", order.Total.StringFixed(2)),
	)

	// The order exists now; finish the follow-up work even if the caller
	// goes away.
	ctx = context.WithoutCancel(ctx)
	result := PlaceOrderResult{Order: order}

	session, err := s.payments.CreateSession(ctx, order)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create payment session",
			slog.String("order_id", order.ID),
			slog.Any("error", err),
		)
		result.Order.Metadata.PaymentError = err.Error()
		if err := s.orders.MergeOrderMetadata(ctx, order.ID, entities.Metadata{PaymentError: err.Error()}); err != nil {
			s.logger.ErrorContext(ctx, "failed to record payment error", slog.String("order_id", order.ID), slog.Any("error", err))
		}
	} else {
		result.Payment = &session
		result.Order.Metadata.Payment = &session
		if err := s.orders.MergeOrderMetadata(ctx, order.ID, entities.Metadata{Payment: &session}); err != nil {
			s.logger.ErrorContext(ctx, "failed to record payment session", slog.String("order_id", order.ID), slog.Any("error", err))
		}
	}

	s.publish(ctx, entities.NewOrderEvent(entities.EventOrderCreated, result.Order, "", entities.SourceCustomer, s.now()))
	return result, nil
}

// reserveStock locks the products, re-checks prices against the quote and
// decrements stock item by item. Any failure aborts the transaction.
func (s *orderService) reserveStock(ctx context.Context, lines []Line, quote Quote) error {
	locked, err := s.products.LockProductsByIDs(ctx, sortedProductIDs(lines))
	if err != nil {
		return err
	}
	byID := indexProducts(locked)

	for _, it := range quote.Items {
		product, ok := byID[*it.ProductID]
		if !ok || !product.IsActive {
			return fmt.Errorf("%w: %d", entities.ErrProductNotFound, *it.ProductID)
		}
		if !product.Price.Equal(it.Price) {
			return fmt.Errorf("%w: %s", entities.ErrPriceChanged, product.Name)
		}

		stockErr := &entities.StockError{
			ProductID: product.ID,
			Name:      product.Name,
			Requested: it.Quantity,
			Available: product.Stock,
		}
		if product.Stock < it.Quantity {
			return stockErr
		}
		if _, err := s.products.DecrementStock(ctx, product.ID, it.Quantity); err != nil {
			if errors.Is(err, entities.ErrInsufficientStock) {
				return stockErr
			}
			return err
		}
	}
	return nil
}

func (s *orderService) newOrder(in PlaceOrderInput, quote Quote, rate entities.ShippingRate, totals Totals) entities.Order {
	now := s.now().UTC()
	id := ulid.Make().String()

	recipient := in.Recipient
	recipient.AreaID = quote.Destination.ID
	if recipient.City == "" {
		recipient.City = quote.Destination.City
	}
	if recipient.Province == "" {
		recipient.Province = quote.Destination.Province
	}
	if recipient.District == "" {
		recipient.District = quote.Destination.District
	}

	shipper := s.cfg.Shipper
	shipper.AreaID = quote.Origin.ID

	items := make([]entities.OrderItem, len(quote.Items))
	copy(items, quote.Items)
	for i := range items {
		items[i].OrderID = id
	}

	return entities.Order{
		ID:                 id,
		OrderNumber:        orderNumber(now, id),
		UserID:             in.UserID,
		Status:             entities.StatusPending,
		Subtotal:           totals.Subtotal,
		ShippingCost:       totals.ShippingCost,
		CourierInsurance:   totals.Insurance,
		Total:              totals.Total,
		Currency:           s.cfg.Currency,
		Recipient:          recipient,
		Shipper:            shipper,
		CourierCode:        rate.CourierCode,
		CourierName:        rate.CourierName,
		CourierServiceCode: rate.CourierServiceCode,
		CourierServiceName: rate.CourierServiceName,
		Notes:              in.Notes,
		Metadata: entities.Metadata{
			ShippingQuote: &entities.ShippingQuote{Rate: rate, QuotedAt: now},
			StatusHistory: []entities.StatusChange{{
				To:     entities.StatusPending,
				Source: entities.SourceCustomer,
				Actor:  in.UserID,
				At:     now,
			}},
		},
		CreatedAt: now,
		UpdatedAt: now,
		Items:     items,
	}
}

// orderNumber is ORD-YYYYMMDD- followed by the last six characters of the
// order ULID.
func orderNumber(at time.Time, id string) string {
	return fmt.Sprintf("ORD-%s-%s", at.Format("20060102"), id[len(id)-6:])
}

func (s *orderService) publish(ctx context.Context, event entities.OrderEvent) {
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
