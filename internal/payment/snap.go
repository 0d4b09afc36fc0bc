package payment

import (
	"bytes"
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const snapTransactionsPath = "/snap/v1/transactions"

type SnapConfig struct {
	BaseURL   string
	ServerKey string
	Timeout   time.Duration
}

// SnapProvider talks to a Snap-style hosted checkout that charges whole
// rupiah and signs its notifications with the server key.
type SnapProvider struct {
	baseURL   string
	serverKey string
	http      *http.Client
	logger    *slog.Logger
}

func NewSnapProvider(logger *slog.Logger, cfg SnapConfig) (*SnapProvider, error) {
	if strings.TrimSpace(cfg.ServerKey) == "" {
		return nil, errors.New("snap: server key is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SnapProvider{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		serverKey: cfg.ServerKey,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger.With(slog.String("client", "snap")),
	}, nil
}

func (p *SnapProvider) Name() string { return "snap" }

func (p *SnapProvider) Exponent() int32 { return 0 }

type snapItem struct {
	ID       string `json:"id"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
	Name     string `json:"name"`
}

type snapAddress struct {
	FirstName  string `json:"first_name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country_code"`
}

type snapRequest struct {
	TransactionDetails struct {
		OrderID     string `json:"order_id"`
		GrossAmount int64  `json:"gross_amount"`
	} `json:"transaction_details"`
	ItemDetails     []snapItem `json:"item_details"`
	CustomerDetails struct {
		FirstName       string      `json:"first_name"`
		Email           string      `json:"email,omitempty"`
		Phone           string      `json:"phone"`
		ShippingAddress snapAddress `json:"shipping_address"`
	} `json:"customer_details"`
	Callbacks struct {
		Finish string `json:"finish"`
	} `json:"callbacks"`
}

type snapResponse struct {
	Token         string   `json:"token"`
	RedirectURL   string   `json:"redirect_url"`
	ErrorMessages []string `json:"error_messages"`
}

func (p *SnapProvider) CreateSession(ctx context.Context, req SessionRequest) (entities.PaymentSession, error) {
	var body snapRequest
	body.TransactionDetails.OrderID = req.OrderID
	body.TransactionDetails.GrossAmount = req.Amount
	for _, it := range req.Items {
		body.ItemDetails = append(body.ItemDetails, snapItem{
			ID:       it.ID,
			Price:    it.Price,
			Quantity: it.Quantity,
			Name:     it.Name,
		})
	}
	body.CustomerDetails.FirstName = req.Customer.Name
	body.CustomerDetails.Email = req.Customer.Email
	body.CustomerDetails.Phone = req.Customer.Phone
	body.CustomerDetails.ShippingAddress = snapAddress{
		FirstName:  req.Customer.Name,
		Phone:      req.Customer.Phone,
		Address:    req.Customer.Address,
		City:       req.Customer.City,
		PostalCode: req.Customer.PostalCode,
		Country:    "IDN",
	}
	body.Callbacks.Finish = req.SuccessURL

	payload, err := json.Marshal(body)
	if err != nil {
		return entities.PaymentSession{}, fmt.Errorf("snap: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+snapTransactionsPath, bytes.NewReader(payload))
	if err != nil {
		return entities.PaymentSession{}, fmt.Errorf("snap: create request: %w", err)
	}
	httpReq.SetBasicAuth(p.serverKey, "")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := p.http.Do(httpReq)
	if err != nil {
		return entities.PaymentSession{}, fmt.Errorf("snap: create transaction: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return entities.PaymentSession{}, fmt.Errorf("snap: read response: %w", err)
	}

	var out snapResponse
	decodeErr := json.Unmarshal(data, &out)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || decodeErr != nil || out.Token == "" {
		p.logger.WarnContext(ctx, "snap transaction rejected",
			slog.String("order_id", req.OrderID),
			slog.Int("status", resp.StatusCode),
			slog.Any("messages", out.ErrorMessages),
		)
		return entities.PaymentSession{}, fmt.Errorf("%w: snap status %d", ErrProviderRejected, resp.StatusCode)
	}

	raw := map[string]any{}
	_ = json.Unmarshal(data, &raw)

	return entities.PaymentSession{
		Provider:    p.Name(),
		Token:       out.Token,
		RedirectURL: out.RedirectURL,
		Raw:         raw,
	}, nil
}

type snapNotification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	FraudStatus       string `json:"fraud_status"`
}

func (p *SnapProvider) ParseNotification(body []byte, _ http.Header) (Notification, error) {
	var n snapNotification
	if err := json.Unmarshal(body, &n); err != nil {
		return Notification{}, fmt.Errorf("%w: %w", ErrInvalidNotification, err)
	}
	if n.OrderID == "" || n.SignatureKey == "" {
		return Notification{}, ErrInvalidNotification
	}

	expected := p.signature(n.OrderID, n.StatusCode, n.GrossAmount)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(n.SignatureKey))) != 1 {
		return Notification{}, ErrInvalidSignature
	}

	gross, err := decimal.NewFromString(n.GrossAmount)
	if err != nil {
		return Notification{}, fmt.Errorf("%w: gross amount %q", ErrInvalidNotification, n.GrossAmount)
	}

	return Notification{
		OrderID:     n.OrderID,
		Status:      snapStatus(n.TransactionStatus, n.FraudStatus),
		GrossAmount: gross,
		Reference:   n.TransactionID,
		RawStatus:   n.TransactionStatus,
	}, nil
}

func (p *SnapProvider) signature(orderID, statusCode, grossAmount string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + p.serverKey))
	return hex.EncodeToString(sum[:])
}

func snapStatus(transaction, fraud string) entities.OrderStatus {
	switch strings.ToLower(transaction) {
	case "settlement":
		return entities.StatusPaid
	case "capture":
		if fraud == "" || strings.EqualFold(fraud, "accept") {
			return entities.StatusPaid
		}
		if strings.EqualFold(fraud, "deny") {
			return entities.StatusFailed
		}
	case "deny", "cancel", "expire", "failure":
		return entities.StatusFailed
	}
	return ""
}
