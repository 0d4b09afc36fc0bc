package service

import (
	"context"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
)

type ProductRepo interface {
	GetProduct(ctx context.Context, id int64) (entities.Product, error)
	GetProductsByIDs(ctx context.Context, ids []int64) ([]entities.Product, error)
	LockProductsByIDs(ctx context.Context, ids []int64) ([]entities.Product, error)
	DecrementStock(ctx context.Context, productID int64, qty int) (int, error)
	IncrementStock(ctx context.Context, productID int64, qty int) error
}

type OrderRepo interface {
	CreateOrder(ctx context.Context, o entities.Order) error
	CreateOrderItems(ctx context.Context, orderID string, items []entities.OrderItem) error
	GetOrder(ctx context.Context, id string) (entities.Order, error)
	GetOrderForUpdate(ctx context.Context, id string) (entities.Order, error)
	UpdateOrderState(ctx context.Context, o entities.Order) error
	MergeOrderMetadata(ctx context.Context, id string, patch entities.Metadata) error
	ListOrders(ctx context.Context, q entities.OrderQuery) ([]entities.Order, int, error)
	OrderSummary(ctx context.Context, q entities.OrderQuery) ([]entities.StatusTotal, error)
	OrdersForTracking(ctx context.Context, limit int) ([]entities.Order, error)
}

type RateQuoter interface {
	GetAreaByPostalCode(ctx context.Context, postal string) (*entities.Area, error)
	CalculateShippingRates(ctx context.Context, originPostal, destPostal string, items []entities.PackageItem) ([]entities.ShippingRate, error)
}

type PaymentGateway interface {
	CreateSession(ctx context.Context, order entities.Order) (entities.PaymentSession, error)
}

type Carrier interface {
	CreateBooking(ctx context.Context, order entities.Order) (entities.ShippingBooking, error)
	Track(ctx context.Context, trackingID string) (entities.TrackingInfo, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event entities.OrderEvent) error
}
