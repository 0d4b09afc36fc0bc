package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidSignature    = errors.New("payment notification signature mismatch")
	ErrLineItemMismatch    = errors.New("line items do not add up to the order total")
	ErrTotalMismatch       = errors.New("order total does not match its components")
	ErrProviderRejected    = errors.New("payment provider rejected the request")
	ErrInvalidNotification = errors.New("malformed payment notification")
)

// LineItem is one row on the gateway checkout page, priced in minor units.
type LineItem struct {
	ID       string
	Name     string
	Price    int64
	Quantity int64
}

type SessionRequest struct {
	OrderID     string
	OrderNumber string
	Currency    string
	Amount      int64
	Items       []LineItem
	Customer    entities.Address

	SuccessURL string
	CancelURL  string
}

// Notification is a verified gateway callback. Status is empty when the
// reported state does not move the order.
type Notification struct {
	OrderID     string
	Status      entities.OrderStatus
	GrossAmount decimal.Decimal
	Reference   string
	RawStatus   string
}

type Provider interface {
	Name() string
	// Exponent is the number of minor-unit digits the provider expects.
	Exponent() int32
	CreateSession(ctx context.Context, req SessionRequest) (entities.PaymentSession, error)
	ParseNotification(body []byte, header http.Header) (Notification, error)
}

type GatewayConfig struct {
	Currency  string
	ReturnURL string
	MinTotal  decimal.Decimal
	MaxTotal  decimal.Decimal
}

// Gateway turns persisted orders into provider checkout sessions.
type Gateway struct {
	provider Provider
	cfg      GatewayConfig
	logger   *slog.Logger
}

func NewGateway(logger *slog.Logger, provider Provider, cfg GatewayConfig) *Gateway {
	return &Gateway{
		provider: provider,
		cfg:      cfg,
		logger:   logger.With(slog.String("service", "payment"), slog.String("provider", provider.Name())),
	}
}

// CreateSession re-checks the order amounts on its own before asking the
// provider for a checkout session.
func (g *Gateway) CreateSession(ctx context.Context, order entities.Order) (entities.PaymentSession, error) {
	if !order.Total.Equal(order.ComputedTotal()) {
		return entities.PaymentSession{}, ErrTotalMismatch
	}
	if order.Total.LessThan(g.cfg.MinTotal) || order.Total.GreaterThan(g.cfg.MaxTotal) {
		return entities.PaymentSession{}, fmt.Errorf("%w: %s", entities.ErrTotalOutOfBounds, order.Total.StringFixed(2))
	}

	exp := g.provider.Exponent()
	amount, err := ToMinorUnits(order.Total, exp)
	if err != nil {
		return entities.PaymentSession{}, fmt.Errorf("order total: %w", err)
	}

	items, err := lineItems(order, exp)
	if err != nil {
		return entities.PaymentSession{}, err
	}
	var sum int64
	for _, it := range items {
		sum += it.Price * it.Quantity
	}
	if sum != amount {
		return entities.PaymentSession{}, fmt.Errorf("%w: items %d, total %d", ErrLineItemMismatch, sum, amount)
	}

	currency := order.Currency
	if currency == "" {
		currency = g.cfg.Currency
	}

	session, err := g.provider.CreateSession(ctx, SessionRequest{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Currency:    currency,
		Amount:      amount,
		Items:       items,
		Customer:    order.Recipient,
		SuccessURL:  g.callbackURL(order.ID, "success"),
		CancelURL:   g.callbackURL(order.ID, "cancelled"),
	})
	if err != nil {
		return entities.PaymentSession{}, err
	}

	g.logger.InfoContext(ctx, "payment session created",
		slog.String("order_id", order.ID),
		slog.Int64("amount", amount),
	)
	return session, nil
}

func (g *Gateway) ParseNotification(body []byte, header http.Header) (Notification, error) {
	return g.provider.ParseNotification(body, header)
}

func (g *Gateway) callbackURL(orderID, result string) string {
	base := strings.TrimRight(g.cfg.ReturnURL, "/")
	q := url.Values{}
	q.Set("payment", result)
	return base + "/" + url.PathEscape(orderID) + "?" + q.Encode()
}

func lineItems(order entities.Order, exp int32) ([]LineItem, error) {
	items := make([]LineItem, 0, len(order.Items)+2)
	for i, it := range order.Items {
		price, err := ToMinorUnits(it.Price, exp)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", it.Name, err)
		}
		id := fmt.Sprintf("item-%d", i+1)
		if it.ProductID != nil {
			id = fmt.Sprintf("product-%d", *it.ProductID)
		}
		items = append(items, LineItem{
			ID:       id,
			Name:     clip(it.Name, 50),
			Price:    price,
			Quantity: int64(it.Quantity),
		})
	}

	shipping, err := ToMinorUnits(order.ShippingCost, exp)
	if err != nil {
		return nil, fmt.Errorf("shipping cost: %w", err)
	}
	items = append(items, LineItem{
		ID:       "shipping",
		Name:     clip(strings.TrimSpace("Ongkos kirim "+order.CourierName+" "+order.CourierServiceName), 50),
		Price:    shipping,
		Quantity: 1,
	})

	if order.CourierInsurance.IsPositive() {
		insurance, err := ToMinorUnits(order.CourierInsurance, exp)
		if err != nil {
			return nil, fmt.Errorf("insurance: %w", err)
		}
		items = append(items, LineItem{
			ID:       "insurance",
			Name:     "Asuransi pengiriman",
			Price:    insurance,
			Quantity: 1,
		})
	}
	return items, nil
}

func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
