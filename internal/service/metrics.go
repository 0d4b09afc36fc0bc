package service

import (
	"errors"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/shipping"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "orders",
		Name:      "placed_total",
		Help:      "Orders committed to storage.",
	})

	ordersRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "orders",
		Name:      "rejected_total",
		Help:      "Order placements refused, by reason.",
	}, []string{"reason"})

	statusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "orders",
		Name:      "status_transitions_total",
		Help:      "Applied order status changes by source and target status.",
	}, []string{"source", "status"})
)

func rejectReason(err error) string {
	var areaErr *shipping.AreaNotFoundError
	switch {
	case errors.Is(err, entities.ErrInsufficientStock):
		return "stock"
	case errors.Is(err, entities.ErrPriceChanged):
		return "price_changed"
	case errors.Is(err, entities.ErrRateNotOffered):
		return "rate_not_offered"
	case errors.Is(err, entities.ErrTotalOutOfBounds):
		return "total_bounds"
	case errors.Is(err, entities.ErrProductNotFound):
		return "product"
	case errors.As(err, &areaErr):
		return "area"
	case errors.Is(err, shipping.ErrUpstreamTimeout),
		errors.Is(err, shipping.ErrUpstreamRejected),
		errors.Is(err, shipping.ErrUpstreamUnavailable):
		return "shipping_upstream"
	}
	return "other"
}
