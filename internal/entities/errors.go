package entities

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPriceChanged      = errors.New("product price changed")
	ErrRateNotOffered    = errors.New("selected shipping rate is no longer offered")
	ErrTotalOutOfBounds  = errors.New("order total out of bounds")
	ErrNotCancellable    = errors.New("order cannot be cancelled")
	ErrNotReorderable    = errors.New("order cannot be reordered")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidSort       = errors.New("invalid sort field")
	ErrInvalidFilter     = errors.New("invalid filter")
	ErrAmountMismatch    = errors.New("paid amount does not match order total")
	ErrInvalidOrder      = errors.New("invalid order")
)

// StockError reports which product could not cover the requested quantity.
type StockError struct {
	ProductID int64
	Name      string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", e.Name, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error {
	return ErrInsufficientStock
}

// Shortfall is how many units are missing.
func (e *StockError) Shortfall() int {
	return e.Requested - e.Available
}

// CancelError carries the customer-facing reason a cancellation was refused.
type CancelError struct {
	Status  OrderStatus
	Message string
}

func (e *CancelError) Error() string {
	return e.Message
}

func (e *CancelError) Unwrap() error {
	return ErrNotCancellable
}

var cancelMessages = map[OrderStatus]string{
	StatusPaid:      "Pesanan yang sudah dibayar tidak dapat dibatalkan, silakan hubungi admin",
	StatusShipped:   "Pesanan yang sudah dikirim tidak dapat dibatalkan",
	StatusDelivered: "Pesanan yang sudah diterima tidak dapat dibatalkan",
	StatusCancelled: "Pesanan sudah dibatalkan sebelumnya",
	StatusFailed:    "Pesanan yang gagal tidak dapat dibatalkan",
}

func NewCancelError(status OrderStatus) *CancelError {
	msg, ok := cancelMessages[status]
	if !ok {
		msg = "Pesanan dengan status ini tidak dapat dibatalkan"
	}
	return &CancelError{Status: status, Message: msg}
}
