package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventOrderCreated       EventType = "order.created"
	EventOrderCancelled     EventType = "order.cancelled"
	EventOrderStatusChanged EventType = "order.status_changed"
)

// OrderEvent is published after an order changes in storage.
type OrderEvent struct {
	Type        EventType       `json:"type"`
	OrderID     string          `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	UserID      string          `json:"user_id"`
	Status      OrderStatus     `json:"status"`
	Previous    OrderStatus     `json:"previous_status,omitempty"`
	Source      StatusSource    `json:"source,omitempty"`
	Total       decimal.Decimal `json:"total"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

func NewOrderEvent(t EventType, o Order, previous OrderStatus, source StatusSource, at time.Time) OrderEvent {
	return OrderEvent{
		Type:        t,
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		Status:      o.Status,
		Previous:    previous,
		Source:      source,
		Total:       o.Total,
		OccurredAt:  at.UTC(),
	}
}
