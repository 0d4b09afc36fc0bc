package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v78"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testOrder() entities.Order {
	productID := int64(7)
	return entities.Order{
		ID:                 "01J9ZB6Q3X4T7R8V9W0Y1Z2A3B",
		OrderNumber:        "ORD-20261019-ABC123",
		Status:             entities.StatusPending,
		Subtotal:           dec("150000"),
		ShippingCost:       dec("18000"),
		CourierInsurance:   dec("2500"),
		Total:              dec("170500"),
		Currency:           "IDR",
		CourierName:        "JNE",
		CourierServiceName: "REG",
		Recipient: entities.Address{
			Name:       "Budi",
			Phone:      "081234567890",
			Email:      "budi@example.com",
			Address:    "Jl. Merdeka No. 1",
			PostalCode: "40111",
		},
		Items: []entities.OrderItem{
			{ProductID: &productID, Name: "Kaos Polos", Price: dec("75000"), Quantity: 2, Subtotal: dec("150000")},
		},
	}
}

func TestToMinorUnits(t *testing.T) {
	testCases := []struct {
		name     string
		amount   string
		exponent int32
		want     int64
		wantErr  bool
	}{
		{name: "whole rupiah", amount: "170500", exponent: 0, want: 170500},
		{name: "rupiah with zero cents", amount: "170500.00", exponent: 0, want: 170500},
		{name: "rupiah with cents", amount: "170500.50", exponent: 0, wantErr: true},
		{name: "cents", amount: "19.99", exponent: 2, want: 1999},
		{name: "sub-cent", amount: "19.995", exponent: 2, wantErr: true},
		{name: "negative", amount: "-1", exponent: 0, wantErr: true},
		{name: "zero", amount: "0", exponent: 2, want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ToMinorUnits(dec(tc.amount), tc.exponent)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInexactAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	assert.True(t, FromMinorUnits(1999, 2).Equal(dec("19.99")))
}

type fakeProvider struct {
	exponent int32
	got      SessionRequest
	err      error
}

func (f *fakeProvider) Name() string    { return "fake" }
func (f *fakeProvider) Exponent() int32 { return f.exponent }

func (f *fakeProvider) CreateSession(_ context.Context, req SessionRequest) (entities.PaymentSession, error) {
	f.got = req
	if f.err != nil {
		return entities.PaymentSession{}, f.err
	}
	return entities.PaymentSession{Provider: "fake", Token: "tok", RedirectURL: "https://pay.example/tok"}, nil
}

func (f *fakeProvider) ParseNotification([]byte, http.Header) (Notification, error) {
	return Notification{}, nil
}

func newTestGateway(p Provider) *Gateway {
	return NewGateway(testLogger, p, GatewayConfig{
		Currency:  "IDR",
		ReturnURL: "https://shop.example/orders/",
		MinTotal:  dec("1000"),
		MaxTotal:  dec("100000000"),
	})
}

func TestGateway_CreateSession(t *testing.T) {
	provider := &fakeProvider{}
	gateway := newTestGateway(provider)

	session, err := gateway.CreateSession(context.Background(), testOrder())
	require.NoError(t, err)
	assert.Equal(t, "tok", session.Token)

	req := provider.got
	assert.Equal(t, int64(170500), req.Amount)
	assert.Equal(t, "IDR", req.Currency)
	require.Len(t, req.Items, 3)
	assert.Equal(t, LineItem{ID: "product-7", Name: "Kaos Polos", Price: 75000, Quantity: 2}, req.Items[0])
	assert.Equal(t, "shipping", req.Items[1].ID)
	assert.Equal(t, "Ongkos kirim JNE REG", req.Items[1].Name)
	assert.Equal(t, "insurance", req.Items[2].ID)
	assert.Equal(t, "https://shop.example/orders/01J9ZB6Q3X4T7R8V9W0Y1Z2A3B?payment=success", req.SuccessURL)
	assert.Equal(t, "https://shop.example/orders/01J9ZB6Q3X4T7R8V9W0Y1Z2A3B?payment=cancelled", req.CancelURL)
}

func TestGateway_CreateSession_Rejects(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(o *entities.Order)
		wantErr error
	}{
		{
			name:    "total disagrees with components",
			mutate:  func(o *entities.Order) { o.Total = dec("170000") },
			wantErr: ErrTotalMismatch,
		},
		{
			name: "below minimum",
			mutate: func(o *entities.Order) {
				o.Items[0].Price = dec("100")
				o.Items[0].Quantity = 1
				o.Subtotal = dec("100")
				o.ShippingCost = dec("0")
				o.CourierInsurance = dec("0")
				o.Total = dec("100")
			},
			wantErr: entities.ErrTotalOutOfBounds,
		},
		{
			name: "items do not add up",
			mutate: func(o *entities.Order) {
				o.Items[0].Quantity = 1
			},
			wantErr: ErrLineItemMismatch,
		},
		{
			name: "fractional rupiah",
			mutate: func(o *entities.Order) {
				o.ShippingCost = dec("18000.50")
				o.Total = dec("170500.50")
			},
			wantErr: ErrInexactAmount,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &fakeProvider{}
			order := testOrder()
			tc.mutate(&order)

			_, err := newTestGateway(provider).CreateSession(context.Background(), order)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, provider.got.OrderID, "provider must not be called")
		})
	}
}

func TestSnapProvider_CreateSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, snapTransactionsPath, r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "server-key", user)
		assert.Empty(t, pass)

		var body snapRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(170500), body.TransactionDetails.GrossAmount)

		var sum int64
		for _, it := range body.ItemDetails {
			sum += it.Price * it.Quantity
		}
		assert.Equal(t, body.TransactionDetails.GrossAmount, sum)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"token":"snap-token","redirect_url":"https://app.sandbox.example/snap/v3/redirection/snap-token"}`))
	}))
	defer srv.Close()

	provider, err := NewSnapProvider(testLogger, SnapConfig{BaseURL: srv.URL, ServerKey: "server-key"})
	require.NoError(t, err)

	session, err := newTestGateway(provider).CreateSession(context.Background(), testOrder())
	require.NoError(t, err)
	assert.Equal(t, "snap", session.Provider)
	assert.Equal(t, "snap-token", session.Token)
	assert.Contains(t, session.RedirectURL, "snap-token")
}

func TestSnapProvider_CreateSession_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_messages":["transaction_details.gross_amount is not equal to the sum of item_details"]}`))
	}))
	defer srv.Close()

	provider, err := NewSnapProvider(testLogger, SnapConfig{BaseURL: srv.URL, ServerKey: "server-key"})
	require.NoError(t, err)

	_, err = provider.CreateSession(context.Background(), SessionRequest{OrderID: "o1", Amount: 1})
	assert.ErrorIs(t, err, ErrProviderRejected)
}

func snapSignature(orderID, statusCode, gross, key string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + gross + key))
	return hex.EncodeToString(sum[:])
}

func TestSnapProvider_ParseNotification(t *testing.T) {
	provider, err := NewSnapProvider(testLogger, SnapConfig{BaseURL: "http://unused", ServerKey: "server-key"})
	require.NoError(t, err)

	testCases := []struct {
		name       string
		status     string
		fraud      string
		signature  string
		wantStatus entities.OrderStatus
		wantErr    error
	}{
		{name: "settlement", status: "settlement", wantStatus: entities.StatusPaid},
		{name: "capture accepted", status: "capture", fraud: "accept", wantStatus: entities.StatusPaid},
		{name: "capture challenged", status: "capture", fraud: "challenge", wantStatus: ""},
		{name: "pending", status: "pending", wantStatus: ""},
		{name: "expire", status: "expire", wantStatus: entities.StatusFailed},
		{name: "deny", status: "deny", wantStatus: entities.StatusFailed},
		{name: "forged signature", status: "settlement", signature: "deadbeef", wantErr: ErrInvalidSignature},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sig := tc.signature
			if sig == "" {
				sig = snapSignature("order-1", "200", "170500.00", "server-key")
			}
			body, _ := json.Marshal(map[string]string{
				"order_id":           "order-1",
				"status_code":        "200",
				"gross_amount":       "170500.00",
				"signature_key":      sig,
				"transaction_status": tc.status,
				"fraud_status":       tc.fraud,
				"transaction_id":     "trx-1",
			})

			n, err := provider.ParseNotification(body, nil)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "order-1", n.OrderID)
			assert.Equal(t, tc.wantStatus, n.Status)
			assert.True(t, n.GrossAmount.Equal(dec("170500")))
			assert.Equal(t, "trx-1", n.Reference)
		})
	}
}

type fakeStripeSessions struct {
	params *stripe.CheckoutSessionParams
}

func (f *fakeStripeSessions) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.params = params
	return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.test/cs_test_1"}, nil
}

func stripeSignatureHeader(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.%s", ts.Unix(), payload)))
	return "t=" + strconv.FormatInt(ts.Unix(), 10) + ",v1=" + hex.EncodeToString(mac.Sum(nil))
}

func TestStripeProvider_CreateSession(t *testing.T) {
	sessions := &fakeStripeSessions{}
	provider, err := NewStripeProvider(testLogger, StripeConfig{WebhookSecret: "whsec_test", sessions: sessions})
	require.NoError(t, err)

	order := testOrder()
	order.Currency = "USD"
	order.Items[0].Price = dec("7.50")
	order.Subtotal = dec("15.00")
	order.ShippingCost = dec("4.99")
	order.CourierInsurance = dec("0")
	order.Total = dec("19.99")

	gateway := NewGateway(testLogger, provider, GatewayConfig{
		Currency:  "USD",
		ReturnURL: "https://shop.example/orders",
		MinTotal:  dec("1"),
		MaxTotal:  dec("1000"),
	})
	session, err := gateway.CreateSession(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", session.Token)

	params := sessions.params
	require.NotNil(t, params)
	assert.Equal(t, order.ID, *params.ClientReferenceID)
	require.Len(t, params.LineItems, 2)
	assert.Equal(t, int64(750), *params.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, int64(2), *params.LineItems[0].Quantity)
	assert.Equal(t, int64(499), *params.LineItems[1].PriceData.UnitAmount)
	assert.Equal(t, "usd", *params.LineItems[0].PriceData.Currency)
}

func TestStripeProvider_ParseNotification(t *testing.T) {
	provider, err := NewStripeProvider(testLogger, StripeConfig{WebhookSecret: "whsec_test", sessions: &fakeStripeSessions{}})
	require.NoError(t, err)

	event := func(eventType, paymentStatus string) []byte {
		data, _ := json.Marshal(map[string]any{
			"id":          "evt_1",
			"object":      "event",
			"type":        eventType,
			"api_version": stripe.APIVersion,
			"data": map[string]any{
				"object": map[string]any{
					"id":                  "cs_test_1",
					"object":              "checkout.session",
					"client_reference_id": "order-1",
					"amount_total":        1999,
					"payment_status":      paymentStatus,
				},
			},
		})
		return data
	}

	testCases := []struct {
		name       string
		payload    []byte
		secret     string
		wantStatus entities.OrderStatus
		wantErr    error
	}{
		{name: "completed and paid", payload: event("checkout.session.completed", "paid"), wantStatus: entities.StatusPaid},
		{name: "completed but unpaid", payload: event("checkout.session.completed", "unpaid"), wantStatus: ""},
		{name: "expired", payload: event("checkout.session.expired", "unpaid"), wantStatus: entities.StatusFailed},
		{name: "wrong secret", payload: event("checkout.session.completed", "paid"), secret: "whsec_other", wantErr: ErrInvalidSignature},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			secret := tc.secret
			if secret == "" {
				secret = "whsec_test"
			}
			header := http.Header{}
			header.Set("Stripe-Signature", stripeSignatureHeader(tc.payload, secret, time.Now()))

			n, err := provider.ParseNotification(tc.payload, header)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "order-1", n.OrderID)
			assert.Equal(t, tc.wantStatus, n.Status)
			assert.True(t, n.GrossAmount.Equal(dec("19.99")))
		})
	}
}

func TestClip(t *testing.T) {
	long := strings.Repeat("é", 60)
	assert.Len(t, []rune(clip(long, 50)), 50)
	assert.Equal(t, "Kaos", clip("Kaos", 50))
}
