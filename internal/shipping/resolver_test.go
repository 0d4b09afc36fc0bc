package shipping

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/pkg/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T, handler http.Handler, timeout time.Duration) *Resolver {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := NewClient(logger, ClientConfig{
		BaseURL:         srv.URL,
		APIKey:          "test-key",
		Timeout:         5 * time.Second,
		BreakerFailures: 100,
		BreakerCooldown: time.Second,
	})
	return NewResolver(logger, client, cache.NewLRUCache(100), ResolverConfig{
		Couriers: []string{"jne", "sicepat"},
		Timeout:  timeout,
	})
}

func writeAreas(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("input") {
	case "12345":
		w.Write([]byte(`{"success":true,"areas":[{"id":"IDNP6","name":"Jakarta Selatan","postal_code":12345}]}`))
	case "40111":
		w.Write([]byte(`{"success":true,"areas":[{"id":"IDNP9","name":"Bandung","postal_code":"40111"}]}`))
	default:
		w.Write([]byte(`{"success":true,"areas":[]}`))
	}
}

var testItems = []entities.PackageItem{
	{Name: "Kaos", Value: decimal.NewFromInt(75000), Quantity: 2, Weight: 250, Length: 30, Width: 20, Height: 2},
}

func TestResolver_GetAreaByPostalCode_SingleUpstreamCall(t *testing.T) {
	var calls atomic.Int32
	entered := make(chan struct{}, 1)
	release := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc(areasPath, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		entered <- struct{}{}
		<-release
		writeAreas(w, r)
	})
	resolver := newTestResolver(t, mux, 5*time.Second)

	ctx := context.Background()
	results := make([]*entities.Area, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = resolver.GetAreaByPostalCode(ctx, "12345")
	}()
	<-entered

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1], errs[1] = resolver.GetAreaByPostalCode(ctx, "12345")
	}()
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	require.NotNil(t, results[0])
	assert.Equal(t, "IDNP6", results[0].ID)
	assert.Equal(t, "12345", results[0].PostalCode)
	assert.Equal(t, results[0], results[1])
	assert.EqualValues(t, 1, calls.Load())

	// Served from cache afterwards.
	area, err := resolver.GetAreaByPostalCode(ctx, "12345")
	require.NoError(t, err)
	assert.Equal(t, "IDNP6", area.ID)
	assert.EqualValues(t, 1, calls.Load())
}

func TestResolver_GetAreaByPostalCode_Unknown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(areasPath, writeAreas)
	resolver := newTestResolver(t, mux, 5*time.Second)

	area, err := resolver.GetAreaByPostalCode(context.Background(), "00000")
	assert.NoError(t, err)
	assert.Nil(t, area)
}

func TestResolver_CalculateShippingRates_ShapeFallthrough(t *testing.T) {
	var mu sync.Mutex
	var shapes []string
	var rateCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc(areasPath, writeAreas)
	mux.HandleFunc(ratesPath, func(w http.ResponseWriter, r *http.Request) {
		rateCalls.Add(1)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		mu.Lock()
		defer mu.Unlock()
		switch {
		case body["weight"] != nil:
			shapes = append(shapes, "aggregate_package")
		case body["origin_area_id"] != nil && body["destination_area_id"] != nil:
			shapes = append(shapes, "area_ids")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success":false,"error":"area not served"}`))
			return
		case body["origin_postal_code"] != nil:
			shapes = append(shapes, "postal_codes")
			assert.Equal(t, "jne,sicepat", body["couriers"])
			w.Write([]byte(`{"success":true,"pricing":[
				{"courier_name":"JNE","courier_code":"jne","courier_service_name":"YES","courier_service_code":"yes","price":32000},
				{"courier_name":"SiCepat","courier_code":"sicepat","courier_service_name":"REG","courier_service_code":"reg","price":14000},
				{"courier_name":"JNE","courier_code":"jne","courier_service_name":"REG","courier_service_code":"reg","price":18000}
			]}`))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
	})
	resolver := newTestResolver(t, mux, 5*time.Second)

	rates, err := resolver.CalculateShippingRates(context.Background(), "12345", "40111", testItems)
	require.NoError(t, err)
	require.Len(t, rates, 3)

	for i := 1; i < len(rates); i++ {
		assert.False(t, rates[i].Price.LessThan(rates[i-1].Price), "rates must be sorted by price")
	}
	assert.Equal(t, "sicepat", rates[0].CourierCode)
	assert.Equal(t, []string{"area_ids", "postal_codes"}, shapes)

	// Cached for the current bucket.
	again, err := resolver.CalculateShippingRates(context.Background(), "12345", "40111", testItems)
	require.NoError(t, err)
	assert.Len(t, again, 3)
	assert.EqualValues(t, 2, rateCalls.Load())
}

func TestResolver_CalculateShippingRates_EmptyRouteIsNotAnError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(areasPath, writeAreas)
	mux.HandleFunc(ratesPath, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"pricing":[]}`))
	})
	mux.HandleFunc(fallbackRatesPath, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "12345", r.URL.Query().Get("origin"))
		w.Write([]byte(`{"success":true,"rates":[]}`))
	})
	resolver := newTestResolver(t, mux, 5*time.Second)

	rates, err := resolver.CalculateShippingRates(context.Background(), "12345", "40111", testItems)
	require.NoError(t, err)
	assert.NotNil(t, rates)
	assert.Empty(t, rates)
}

func TestResolver_CalculateShippingRates_Fallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(areasPath, writeAreas)
	mux.HandleFunc(ratesPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})
	mux.HandleFunc(fallbackRatesPath, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"courier":"POS","service":"Kilat","cost":"21000"}]}`))
	})
	resolver := newTestResolver(t, mux, 5*time.Second)

	rates, err := resolver.CalculateShippingRates(context.Background(), "12345", "40111", testItems)
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Equal(t, "pos", rates[0].CourierCode)
	assert.Equal(t, "kilat", rates[0].CourierServiceCode)
}

func TestResolver_CalculateShippingRates_DroppedConnection(t *testing.T) {
	var rateCalls, fallbackCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc(areasPath, writeAreas)
	mux.HandleFunc(ratesPath, func(w http.ResponseWriter, r *http.Request) {
		if rateCalls.Add(1) == 1 {
			conn, _, err := w.(http.Hijacker).Hijack()
			if assert.NoError(t, err) {
				conn.Close()
			}
			return
		}
		w.WriteHeader(http.StatusBadRequest)
	})
	mux.HandleFunc(fallbackRatesPath, func(w http.ResponseWriter, r *http.Request) {
		fallbackCalls.Add(1)
		w.Write([]byte(`{"data":[{"courier":"JNE","service":"REG","cost":"18000"}]}`))
	})
	resolver := newTestResolver(t, mux, 5*time.Second)

	rates, err := resolver.CalculateShippingRates(context.Background(), "12345", "40111", testItems)
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Equal(t, "jne", rates[0].CourierCode)
	assert.Greater(t, rateCalls.Load(), int32(1), "later shapes must still be tried")
	assert.EqualValues(t, 1, fallbackCalls.Load())
}

func TestResolver_RateKeyBucket(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := NewResolver(logger, nil, cache.NewLRUCache(10), ResolverConfig{RateTTL: 500 * time.Millisecond})

	base := time.Date(2024, 10, 19, 8, 0, 0, 0, time.UTC)
	dims := ComputeDimensions(testItems)

	resolver.now = func() time.Time { return base }
	first := resolver.rateKey("12345", "40111", dims)

	resolver.now = func() time.Time { return base.Add(4 * time.Minute) }
	assert.Equal(t, first, resolver.rateKey("12345", "40111", dims), "same five minute window")

	resolver.now = func() time.Time { return base.Add(5 * time.Minute) }
	assert.NotEqual(t, first, resolver.rateKey("12345", "40111", dims))
}

func TestResolver_CalculateShippingRates_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		dest    string
		rates   http.HandlerFunc
		timeout time.Duration
		check   func(t *testing.T, err error)
	}{
		{
			name: "destination area not found",
			dest: "99999",
			rates: func(w http.ResponseWriter, r *http.Request) {
				t.Error("rates must not be requested without areas")
			},
			check: func(t *testing.T, err error) {
				var notFound *AreaNotFoundError
				require.ErrorAs(t, err, &notFound)
				assert.Equal(t, "destination", notFound.Stage)
				assert.Equal(t, "99999", notFound.PostalCode)
			},
		},
		{
			name: "all shapes rejected",
			dest: "40111",
			rates: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`internal`))
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUpstreamRejected)
			},
		},
		{
			name:    "timeout",
			dest:    "40111",
			timeout: 100 * time.Millisecond,
			rates: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUpstreamTimeout)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc(areasPath, writeAreas)
			mux.HandleFunc(ratesPath, tc.rates)
			mux.HandleFunc(fallbackRatesPath, tc.rates)

			timeout := tc.timeout
			if timeout == 0 {
				timeout = 5 * time.Second
			}
			resolver := newTestResolver(t, mux, timeout)

			rates, err := resolver.CalculateShippingRates(context.Background(), "12345", tc.dest, testItems)
			require.Error(t, err)
			assert.Nil(t, rates)
			tc.check(t, err)
		})
	}
}

func TestResolver_CallerCancellation(t *testing.T) {
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc(areasPath, func(w http.ResponseWriter, r *http.Request) {
		<-release
		writeAreas(w, r)
	})
	resolver := newTestResolver(t, mux, 5*time.Second)
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := resolver.GetAreaByPostalCode(ctx, "12345")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestResolver_SearchAreas(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(areasPath, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "bandung", r.URL.Query().Get("input"))
		w.Write([]byte(`{"success":true,"areas":[
			{"id":"A1","name":"Bandung Wetan","administrative_division_level_2_name":"Bandung","postal_code":40115},
			{"id":"A2","name":"Bandung Kulon","postal_code":40211},
			{"id":"A3","name":"Bandung Kidul","postal_code":40266}
		]}`))
	})
	resolver := newTestResolver(t, mux, 5*time.Second)

	areas, err := resolver.SearchAreas(context.Background(), " bandung ", 2)
	require.NoError(t, err)
	require.Len(t, areas, 2)
	assert.Equal(t, "A1", areas[0].ID)
	assert.Equal(t, "Bandung", areas[0].City)
	assert.Equal(t, "40115", areas[0].PostalCode)
}
