package repo

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Stock       int             `db:"stock"`
	Weight      int             `db:"weight"`
	Length      int             `db:"length"`
	Width       int             `db:"width"`
	Height      int             `db:"height"`
	IsActive    bool            `db:"is_active"`
}

type Order struct {
	ID               string          `db:"id"`
	OrderNumber      string          `db:"order_number"`
	UserID           string          `db:"user_id"`
	Status           string          `db:"status"`
	TrackingStatus   sql.NullString  `db:"tracking_status"`
	Subtotal         decimal.Decimal `db:"subtotal"`
	ShippingCost     decimal.Decimal `db:"shipping_cost"`
	CourierInsurance decimal.Decimal `db:"courier_insurance"`
	Total            decimal.Decimal `db:"total"`
	Currency         string          `db:"currency"`

	RecipientName       string `db:"recipient_name"`
	RecipientPhone      string `db:"recipient_phone"`
	RecipientEmail      string `db:"recipient_email"`
	RecipientAddress    string `db:"recipient_address"`
	RecipientCity       string `db:"recipient_city"`
	RecipientProvince   string `db:"recipient_province"`
	RecipientDistrict   string `db:"recipient_district"`
	RecipientPostalCode string `db:"recipient_postal_code"`
	RecipientAreaID     string `db:"recipient_area_id"`

	Shipper address `db:"shipper"`

	CourierCode        string `db:"courier_code"`
	CourierName        string `db:"courier_name"`
	CourierServiceCode string `db:"courier_service_code"`
	CourierServiceName string `db:"courier_service_name"`

	Notes     string            `db:"notes"`
	Metadata  entities.Metadata `db:"metadata"`
	CreatedAt time.Time         `db:"created_at"`
	UpdatedAt time.Time         `db:"updated_at"`
}

type OrderItem struct {
	ID          int64           `db:"id"`
	OrderID     string          `db:"order_id"`
	ProductID   sql.NullInt64   `db:"product_id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Quantity    int             `db:"quantity"`
	Subtotal    decimal.Decimal `db:"subtotal"`
	Weight      int             `db:"weight"`
	Length      int             `db:"length"`
	Width       int             `db:"width"`
	Height      int             `db:"height"`
}

type StatusTotal struct {
	Status string          `db:"status"`
	Count  int             `db:"count"`
	Total  decimal.Decimal `db:"total"`
}

// address stores an entities.Address as JSONB.
type address entities.Address

func (a address) Value() (driver.Value, error) {
	return json.Marshal(entities.Address(a))
}

func (a *address) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = address{}
		return nil
	case []byte:
		return json.Unmarshal(v, (*entities.Address)(a))
	case string:
		return json.Unmarshal([]byte(v), (*entities.Address)(a))
	}
	return fmt.Errorf("unsupported address type %T", src)
}

var (
	productColumns = []string{
		"id", "name", "description", "price", "stock",
		"weight", "length", "width", "height", "is_active",
	}

	orderColumns = []string{
		"id", "order_number", "user_id", "status", "tracking_status",
		"subtotal", "shipping_cost", "courier_insurance", "total", "currency",
		"recipient_name", "recipient_phone", "recipient_email", "recipient_address",
		"recipient_city", "recipient_province", "recipient_district",
		"recipient_postal_code", "recipient_area_id", "shipper",
		"courier_code", "courier_name", "courier_service_code", "courier_service_name",
		"notes", "metadata", "created_at", "updated_at",
	}

	itemColumns = []string{
		"id", "order_id", "product_id", "name", "description", "price",
		"quantity", "subtotal", "weight", "length", "width", "height",
	}
)

func ProductToEntity(p Product) entities.Product {
	return entities.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Weight:      p.Weight,
		Length:      p.Length,
		Width:       p.Width,
		Height:      p.Height,
		IsActive:    p.IsActive,
	}
}

func ItemToEntity(i OrderItem) entities.OrderItem {
	item := entities.OrderItem{
		ID:          i.ID,
		OrderID:     i.OrderID,
		Name:        i.Name,
		Description: i.Description,
		Price:       i.Price,
		Quantity:    i.Quantity,
		Subtotal:    i.Subtotal,
		Weight:      i.Weight,
		Length:      i.Length,
		Width:       i.Width,
		Height:      i.Height,
	}
	if i.ProductID.Valid {
		id := i.ProductID.Int64
		item.ProductID = &id
	}
	return item
}

func OrderToEntity(o Order, items []OrderItem) entities.Order {
	order := entities.Order{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		UserID:           o.UserID,
		Status:           entities.OrderStatus(o.Status),
		TrackingStatus:   o.TrackingStatus.String,
		Subtotal:         o.Subtotal,
		ShippingCost:     o.ShippingCost,
		CourierInsurance: o.CourierInsurance,
		Total:            o.Total,
		Currency:         o.Currency,
		Recipient: entities.Address{
			Name:       o.RecipientName,
			Phone:      o.RecipientPhone,
			Email:      o.RecipientEmail,
			Address:    o.RecipientAddress,
			City:       o.RecipientCity,
			Province:   o.RecipientProvince,
			District:   o.RecipientDistrict,
			PostalCode: o.RecipientPostalCode,
			AreaID:     o.RecipientAreaID,
		},
		Shipper:            entities.Address(o.Shipper),
		CourierCode:        o.CourierCode,
		CourierName:        o.CourierName,
		CourierServiceCode: o.CourierServiceCode,
		CourierServiceName: o.CourierServiceName,
		Notes:              o.Notes,
		Metadata:           o.Metadata,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}

	if len(items) > 0 {
		order.Items = make([]entities.OrderItem, 0, len(items))
		for _, it := range items {
			order.Items = append(order.Items, ItemToEntity(it))
		}
	}
	return order
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}
