package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          string
	OrderNumber string
	UserID      string
	Status      OrderStatus

	// TrackingStatus holds the last raw carrier state reported for the parcel.
	TrackingStatus string

	Subtotal         decimal.Decimal
	ShippingCost     decimal.Decimal
	CourierInsurance decimal.Decimal
	Total            decimal.Decimal
	Currency         string

	Recipient Address
	Shipper   Address

	CourierCode        string
	CourierName        string
	CourierServiceCode string
	CourierServiceName string

	Notes    string
	Metadata Metadata

	CreatedAt time.Time
	UpdatedAt time.Time

	Items []OrderItem
}

// ComputedTotal is the only total an order may carry.
func (o Order) ComputedTotal() decimal.Decimal {
	return o.Subtotal.Add(o.ShippingCost).Add(o.CourierInsurance)
}

// PaymentURL exposes the gateway redirect while the order still awaits payment.
func (o Order) PaymentURL() string {
	if o.Status != StatusPending || o.Metadata.Payment == nil {
		return ""
	}
	return o.Metadata.Payment.RedirectURL
}

type Address struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
	Address    string `json:"address"`
	City       string `json:"city,omitempty"`
	Province   string `json:"province,omitempty"`
	District   string `json:"district,omitempty"`
	PostalCode string `json:"postal_code"`
	AreaID     string `json:"area_id,omitempty"`
}

type OrderItem struct {
	ID          int64
	OrderID     string
	ProductID   *int64
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	Subtotal    decimal.Decimal
	Weight      int
	Length      int
	Width       int
	Height      int
}

// Metadata is the free-form audit trail stored alongside an order.
type Metadata struct {
	ShippingQuote   *ShippingQuote   `json:"shipping_quote,omitempty"`
	Payment         *PaymentSession  `json:"payment,omitempty"`
	PaymentError    string           `json:"payment_error,omitempty"`
	ShippingBooking *ShippingBooking `json:"shipping_booking,omitempty"`
	BookingError    string           `json:"booking_error,omitempty"`
	Cancellation    *Cancellation    `json:"cancellation,omitempty"`
	StatusHistory   []StatusChange   `json:"status_history,omitempty"`
}

func (m Metadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *Metadata) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*m = Metadata{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported metadata type %T", src)
	}
	if len(data) == 0 {
		*m = Metadata{}
		return nil
	}
	return json.Unmarshal(data, m)
}

type ShippingQuote struct {
	Rate     ShippingRate `json:"rate"`
	QuotedAt time.Time    `json:"quoted_at"`
}

type Cancellation struct {
	CancelledBy    string      `json:"cancelled_by"`
	CancelledAt    time.Time   `json:"cancelled_at"`
	PreviousStatus OrderStatus `json:"previous_status"`
	Reason         string      `json:"reason,omitempty"`
}

type PaymentSession struct {
	Provider    string         `json:"provider"`
	Token       string         `json:"token"`
	RedirectURL string         `json:"redirect_url"`
	Raw         map[string]any `json:"raw,omitempty"`
}

type ShippingBooking struct {
	ID         string         `json:"id"`
	TrackingID string         `json:"tracking_id,omitempty"`
	WaybillID  string         `json:"waybill_id,omitempty"`
	Status     string         `json:"status,omitempty"`
	BookedAt   time.Time      `json:"booked_at"`
	Raw        map[string]any `json:"raw,omitempty"`
}

type TrackingInfo struct {
	TrackingID string
	WaybillID  string
	Status     string
}

// TrackingUpdate is a carrier state report for one order.
type TrackingUpdate struct {
	OrderID    string
	Status     string
	TrackingID string
	WaybillID  string
	OccurredAt time.Time
}

type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Weight      int
	Length      int
	Width       int
	Height      int
	IsActive    bool
}

type OrderQuery struct {
	UserID       string
	Status       OrderStatus
	Since        *time.Time
	Search       string
	SortColumn   string
	SortDesc     bool
	Limit        int
	Offset       int
	IncludeItems bool
}

type StatusTotal struct {
	Status OrderStatus
	Count  int
	Total  decimal.Decimal
}
