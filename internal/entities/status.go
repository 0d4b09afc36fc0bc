package entities

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusPaid       OrderStatus = "paid"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
	StatusFailed     OrderStatus = "failed"
)

// Statuses lists every status an order can hold, in fulfillment order.
var Statuses = []OrderStatus{
	StatusPending,
	StatusPaid,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
	StatusFailed,
}

var statusRank = map[OrderStatus]int{
	StatusPending:    0,
	StatusPaid:       1,
	StatusProcessing: 2,
	StatusShipped:    3,
	StatusDelivered:  4,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusProcessing, StatusShipped,
		StatusDelivered, StatusCancelled, StatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no forward transition leaves the status.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusFailed
}

// Cancellable reports whether a customer may still cancel the order.
func (s OrderStatus) Cancellable() bool {
	return s == StatusPending || s == StatusProcessing
}

// Reorderable reports whether the order's items may be put back in a cart.
func (s OrderStatus) Reorderable() bool {
	return s.IsTerminal()
}

// Advances reports whether moving from s to next is a forward step.
// cancelled is reachable from any non-terminal status, failed only while
// payment is still pending.
func (s OrderStatus) Advances(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch next {
	case StatusCancelled:
		return true
	case StatusFailed:
		return s == StatusPending
	}
	from, ok1 := statusRank[s]
	to, ok2 := statusRank[next]
	return ok1 && ok2 && to > from
}

type StatusSource string

const (
	SourceCustomer StatusSource = "customer"
	SourceAdmin    StatusSource = "admin"
	SourcePayment  StatusSource = "payment"
	SourceTracking StatusSource = "tracking"
	SourceSystem   StatusSource = "system"
)

// StatusEvidence identifies who or what asserted a status change.
type StatusEvidence struct {
	Source    StatusSource
	Actor     string
	Reference string
	Note      string
}

type StatusChange struct {
	From      OrderStatus  `json:"from"`
	To        OrderStatus  `json:"to"`
	Source    StatusSource `json:"source"`
	Actor     string       `json:"actor,omitempty"`
	Reference string       `json:"reference,omitempty"`
	Note      string       `json:"note,omitempty"`
	At        time.Time    `json:"at"`
}
