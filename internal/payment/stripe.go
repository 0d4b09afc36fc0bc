package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"
)

type stripeSessionAPI interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	Backends      *stripe.Backends

	sessions stripeSessionAPI
}

// StripeProvider creates Stripe Checkout sessions and verifies Stripe
// webhooks. Amounts use two minor-unit digits.
type StripeProvider struct {
	sessions      stripeSessionAPI
	webhookSecret string
	logger        *slog.Logger
}

func NewStripeProvider(logger *slog.Logger, cfg StripeConfig) (*StripeProvider, error) {
	key := strings.TrimSpace(cfg.SecretKey)
	if key == "" && cfg.sessions == nil {
		return nil, errors.New("stripe: secret key is required")
	}
	if strings.TrimSpace(cfg.WebhookSecret) == "" {
		return nil, errors.New("stripe: webhook secret is required")
	}

	sessions := cfg.sessions
	if sessions == nil {
		sessions = client.New(key, cfg.Backends).CheckoutSessions
	}

	return &StripeProvider{
		sessions:      sessions,
		webhookSecret: cfg.WebhookSecret,
		logger:        logger.With(slog.String("client", "stripe")),
	}, nil
}

func (p *StripeProvider) Name() string { return "stripe" }

func (p *StripeProvider) Exponent() int32 { return 2 }

func (p *StripeProvider) CreateSession(ctx context.Context, req SessionRequest) (entities.PaymentSession, error) {
	currency := strings.ToLower(req.Currency)
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.OrderID),
		Metadata: map[string]string{
			"order_id":     req.OrderID,
			"order_number": req.OrderNumber,
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey("checkout-" + req.OrderID)
	if req.Customer.Email != "" {
		params.CustomerEmail = stripe.String(req.Customer.Email)
	}

	for _, it := range req.Items {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(it.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(it.Price),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Name),
				},
			},
		})
	}

	session, err := p.sessions.New(params)
	if err != nil {
		p.logger.WarnContext(ctx, "stripe checkout session failed", slog.String("order_id", req.OrderID), slog.Any("error", err))
		return entities.PaymentSession{}, fmt.Errorf("%w: stripe: %w", ErrProviderRejected, err)
	}

	raw := map[string]any{}
	if data, err := json.Marshal(session); err == nil {
		_ = json.Unmarshal(data, &raw)
	}

	return entities.PaymentSession{
		Provider:    p.Name(),
		Token:       session.ID,
		RedirectURL: session.URL,
		Raw:         raw,
	}, nil
}

func (p *StripeProvider) ParseNotification(body []byte, header http.Header) (Notification, error) {
	event, err := webhook.ConstructEvent(body, header.Get("Stripe-Signature"), p.webhookSecret)
	if err != nil {
		return Notification{}, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	if !strings.HasPrefix(string(event.Type), "checkout.session.") || event.Data == nil {
		return Notification{RawStatus: string(event.Type)}, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return Notification{}, fmt.Errorf("%w: %w", ErrInvalidNotification, err)
	}

	orderID := session.ClientReferenceID
	if orderID == "" {
		orderID = session.Metadata["order_id"]
	}
	if orderID == "" {
		return Notification{}, fmt.Errorf("%w: session %s has no order", ErrInvalidNotification, session.ID)
	}

	return Notification{
		OrderID:     orderID,
		Status:      stripeStatus(string(event.Type), session.PaymentStatus),
		GrossAmount: FromMinorUnits(session.AmountTotal, p.Exponent()),
		Reference:   session.ID,
		RawStatus:   string(event.Type),
	}, nil
}

func stripeStatus(eventType string, paymentStatus stripe.CheckoutSessionPaymentStatus) entities.OrderStatus {
	switch eventType {
	case "checkout.session.completed":
		if paymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
			return entities.StatusPaid
		}
	case "checkout.session.async_payment_succeeded":
		return entities.StatusPaid
	case "checkout.session.async_payment_failed", "checkout.session.expired":
		return entities.StatusFailed
	}
	return ""
}
