package shipping

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "shipping",
		Name:      "upstream_calls_total",
		Help:      "Carrier API calls by request shape and outcome.",
	}, []string{"shape", "outcome"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "shipping",
		Name:      "cache_lookups_total",
		Help:      "Shipping cache lookups by kind and result.",
	}, []string{"kind", "result"})
)

func observeCache(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(kind, result).Inc()
}
