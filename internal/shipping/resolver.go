package shipping

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/pkg/cache"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"
)

const (
	ratesPath         = "/v1/rates/couriers"
	fallbackRatesPath = "/v1/rates/simple"

	DefaultAreaTTL = 24 * time.Hour
	DefaultRateTTL = 5 * time.Minute
	DefaultTimeout = 30 * time.Second

	// rateBucket is the time window folded into rate cache keys.
	rateBucket = 5 * time.Minute
)

type ResolverConfig struct {
	Couriers []string
	AreaTTL  time.Duration
	RateTTL  time.Duration
	Timeout  time.Duration
}

// Resolver answers area and rate questions, caching answers and collapsing
// concurrent identical lookups into one upstream call.
type Resolver struct {
	logger *slog.Logger
	client *Client
	cache  cache.Store
	group  singleflight.Group
	shapes []requestShape
	now    func() time.Time

	couriers []string
	areaTTL  time.Duration
	rateTTL  time.Duration
	timeout  time.Duration
}

func NewResolver(logger *slog.Logger, client *Client, store cache.Store, cfg ResolverConfig) *Resolver {
	r := &Resolver{
		logger:   logger.With(slog.String("service", "shipping")),
		client:   client,
		cache:    store,
		shapes:   defaultShapes,
		now:      time.Now,
		couriers: cfg.Couriers,
		areaTTL:  cfg.AreaTTL,
		rateTTL:  cfg.RateTTL,
		timeout:  cfg.Timeout,
	}
	if r.areaTTL <= 0 {
		r.areaTTL = DefaultAreaTTL
	}
	if r.rateTTL <= 0 {
		r.rateTTL = DefaultRateTTL
	}
	if r.timeout <= 0 {
		r.timeout = DefaultTimeout
	}
	return r
}

// shared runs fn once per key across concurrent callers. The upstream call
// is detached from the first caller so one disconnect does not fail the
// others; each caller still stops waiting when its own ctx ends.
func (r *Resolver) shared(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (any, error) {
	ch := r.group.DoChan(key, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()
		return fn(callCtx)
	})

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrUpstreamTimeout, ctx.Err())
		}
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

// GetAreaByPostalCode returns nil without error when the carrier knows no
// area for the postal code.
func (r *Resolver) GetAreaByPostalCode(ctx context.Context, postal string) (*entities.Area, error) {
	key := "area:" + postal
	if data, ok := r.cache.Get(ctx, key); ok {
		var area entities.Area
		if err := json.Unmarshal(data, &area); err == nil {
			observeCache("area", true)
			return &area, nil
		}
		r.cache.Delete(ctx, key)
	}
	observeCache("area", false)

	v, err := r.shared(ctx, key, func(ctx context.Context) (any, error) {
		data, err := r.client.getJSON(ctx, areasPath, areaQuery(postal))
		if err != nil {
			upstreamCalls.WithLabelValues("areas", outcome(err)).Inc()
			return nil, fmt.Errorf("lookup area %s: %w", postal, err)
		}
		payloads, err := decodeAreas(data)
		if err != nil {
			upstreamCalls.WithLabelValues("areas", "invalid").Inc()
			return nil, err
		}
		upstreamCalls.WithLabelValues("areas", "ok").Inc()

		area := pickArea(payloads, postal)
		if area == nil {
			return (*entities.Area)(nil), nil
		}
		if encoded, err := json.Marshal(area); err == nil {
			r.cache.Set(ctx, key, encoded, r.areaTTL)
		}
		return area, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*entities.Area), nil
}

func (r *Resolver) SearchAreas(ctx context.Context, keyword string, limit int) ([]entities.Area, error) {
	keyword = strings.TrimSpace(keyword)
	key := fmt.Sprintf("areas:%s:%d", strings.ToLower(keyword), limit)
	if data, ok := r.cache.Get(ctx, key); ok {
		var areas []entities.Area
		if err := json.Unmarshal(data, &areas); err == nil {
			observeCache("areas", true)
			return areas, nil
		}
		r.cache.Delete(ctx, key)
	}
	observeCache("areas", false)

	v, err := r.shared(ctx, key, func(ctx context.Context) (any, error) {
		q := areaQuery(keyword)
		data, err := r.client.getJSON(ctx, areasPath, q)
		if err != nil {
			upstreamCalls.WithLabelValues("areas", outcome(err)).Inc()
			return nil, fmt.Errorf("search areas: %w", err)
		}
		payloads, err := decodeAreas(data)
		if err != nil {
			upstreamCalls.WithLabelValues("areas", "invalid").Inc()
			return nil, err
		}
		upstreamCalls.WithLabelValues("areas", "ok").Inc()

		areas := make([]entities.Area, 0, len(payloads))
		for _, p := range payloads {
			if limit > 0 && len(areas) >= limit {
				break
			}
			areas = append(areas, toArea(p))
		}
		if encoded, err := json.Marshal(areas); err == nil {
			r.cache.Set(ctx, key, encoded, r.areaTTL)
		}
		return areas, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]entities.Area), nil
}

// CalculateShippingRates prices the parcel built from items between two
// postal codes. A route the carrier cannot serve yields an empty slice.
func (r *Resolver) CalculateShippingRates(ctx context.Context, originPostal, destPostal string, items []entities.PackageItem) ([]entities.ShippingRate, error) {
	dims := ComputeDimensions(items)
	key := r.rateKey(originPostal, destPostal, dims)

	if data, ok := r.cache.Get(ctx, key); ok {
		var rates []entities.ShippingRate
		if err := json.Unmarshal(data, &rates); err == nil {
			observeCache("rates", true)
			return rates, nil
		}
		r.cache.Delete(ctx, key)
	}
	observeCache("rates", false)

	v, err := r.shared(ctx, key, func(ctx context.Context) (any, error) {
		rates, err := r.fetchRates(ctx, originPostal, destPostal, items, dims)
		if err != nil {
			return nil, err
		}
		if encoded, err := json.Marshal(rates); err == nil {
			r.cache.Set(ctx, key, encoded, r.rateTTL)
		}
		return rates, nil
	})
	if err != nil {
		return nil, err
	}

	// Callers may reorder or trim; keep the shared slice intact.
	shared := v.([]entities.ShippingRate)
	out := make([]entities.ShippingRate, len(shared))
	copy(out, shared)
	return out, nil
}

func (r *Resolver) rateKey(origin, dest string, dims entities.PackageDimensions) string {
	fingerprint := fmt.Sprintf("%d|%d|%d|%d|%s", dims.Weight, dims.Length, dims.Width, dims.Height, dims.Value.String())
	sum := sha256.Sum256([]byte(fingerprint))
	bucket := r.now().UnixNano() / int64(rateBucket)
	return fmt.Sprintf("rates:%s:%s:%s:%d", origin, dest, hex.EncodeToString(sum[:8]), bucket)
}

func (r *Resolver) fetchRates(ctx context.Context, originPostal, destPostal string, items []entities.PackageItem, dims entities.PackageDimensions) ([]entities.ShippingRate, error) {
	origin, err := r.GetAreaByPostalCode(ctx, originPostal)
	if err != nil {
		return nil, err
	}
	if origin == nil {
		return nil, &AreaNotFoundError{PostalCode: originPostal, Stage: "origin"}
	}
	dest, err := r.GetAreaByPostalCode(ctx, destPostal)
	if err != nil {
		return nil, err
	}
	if dest == nil {
		return nil, &AreaNotFoundError{PostalCode: destPostal, Stage: "destination"}
	}

	req := rateRequest{
		Origin:      *origin,
		Destination: *dest,
		Couriers:    r.couriers,
		Items:       items,
		Dimensions:  dims,
	}

	var lastErr error
	answered := false
	for _, shape := range r.shapes {
		if !shape.Enabled {
			continue
		}

		data, err := r.client.postJSON(ctx, ratesPath, shape.Build(req))
		if err != nil {
			upstreamCalls.WithLabelValues(shape.Name, outcome(err)).Inc()
			r.logger.WarnContext(ctx, "rate request shape failed", slog.String("shape", shape.Name), slog.Any("error", err))
			if ctx.Err() != nil || breakerOpen(err) {
				return nil, err
			}
			lastErr = err
			continue
		}

		rates, err := NormalizeRates(data)
		if err != nil {
			upstreamCalls.WithLabelValues(shape.Name, "invalid").Inc()
			lastErr = fmt.Errorf("%w: %w", ErrUpstreamRejected, err)
			continue
		}
		answered = true
		if len(rates) > 0 {
			upstreamCalls.WithLabelValues(shape.Name, "ok").Inc()
			return rates, nil
		}
		upstreamCalls.WithLabelValues(shape.Name, "empty").Inc()
	}

	rates, err := r.fetchFallbackRates(ctx, req)
	if err == nil {
		return rates, nil
	}
	r.logger.WarnContext(ctx, "fallback rate request failed", slog.Any("error", err))

	if answered {
		return []entities.ShippingRate{}, nil
	}
	if lastErr == nil {
		lastErr = err
	}
	return nil, lastErr
}

// breakerOpen reports whether the carrier is being shed by the circuit
// breaker, in which case further shapes would fail the same way.
func breakerOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func (r *Resolver) fetchFallbackRates(ctx context.Context, req rateRequest) ([]entities.ShippingRate, error) {
	q := url.Values{}
	q.Set("origin", req.Origin.PostalCode)
	q.Set("destination", req.Destination.PostalCode)
	q.Set("weight", strconv.Itoa(req.Dimensions.Weight))
	q.Set("couriers", strings.Join(req.Couriers, ","))

	data, err := r.client.getJSON(ctx, fallbackRatesPath, q)
	if err != nil {
		upstreamCalls.WithLabelValues("fallback", outcome(err)).Inc()
		return nil, err
	}
	rates, err := NormalizeRates(data)
	if err != nil {
		upstreamCalls.WithLabelValues("fallback", "invalid").Inc()
		return nil, fmt.Errorf("%w: %w", ErrUpstreamRejected, err)
	}
	upstreamCalls.WithLabelValues("fallback", "ok").Inc()
	return rates, nil
}

func pickArea(payloads []areaPayload, postal string) *entities.Area {
	if len(payloads) == 0 {
		return nil
	}
	for _, p := range payloads {
		if p.postalCode() == postal {
			area := toArea(p)
			return &area
		}
	}
	area := toArea(payloads[0])
	if area.PostalCode == "" {
		area.PostalCode = postal
	}
	return &area
}

func toArea(p areaPayload) entities.Area {
	return entities.Area{
		ID:         p.ID,
		Name:       p.Name,
		Country:    p.Country,
		Province:   p.Level1,
		City:       p.Level2,
		District:   p.Level3,
		PostalCode: p.postalCode(),
	}
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrUpstreamTimeout):
		return "timeout"
	case errors.Is(err, ErrUpstreamUnavailable):
		return "unavailable"
	case errors.Is(err, ErrUpstreamRejected):
		return "rejected"
	}
	return "error"
}
