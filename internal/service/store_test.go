package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/pkg/trm"
	"github.com/shopspring/decimal"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// memStore is an in-memory product and order store. It also acts as the
// transaction manager: transactions run one at a time and are rolled back
// when the callback fails.
type memStore struct {
	txMu sync.Mutex

	mu         sync.Mutex
	products   map[int64]entities.Product
	orders     map[string]entities.Order
	lastQuery  entities.OrderQuery
	failCreate error
}

type inTxKey struct{}

func newMemStore(products ...entities.Product) *memStore {
	s := &memStore{
		products: make(map[int64]entities.Product),
		orders:   make(map[string]entities.Order),
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *memStore) Do(ctx context.Context, callback func(ctx context.Context) error) error {
	if ctx.Value(inTxKey{}) != nil {
		return callback(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	products, orders := s.snapshot()
	if err := callback(context.WithValue(ctx, inTxKey{}, true)); err != nil {
		s.mu.Lock()
		s.products, s.orders = products, orders
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) BeginTx(ctx context.Context) (context.Context, trm.Transaction, error) {
	return nil, nil, errors.New("not supported")
}

func (s *memStore) snapshot() (map[int64]entities.Product, map[string]entities.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := make(map[int64]entities.Product, len(s.products))
	for k, v := range s.products {
		products[k] = v
	}
	orders := make(map[string]entities.Order, len(s.orders))
	for k, v := range s.orders {
		orders[k] = cloneOrder(v)
	}
	return products, orders
}

func cloneOrder(o entities.Order) entities.Order {
	o.Items = append([]entities.OrderItem(nil), o.Items...)
	o.Metadata.StatusHistory = append([]entities.StatusChange(nil), o.Metadata.StatusHistory...)
	return o
}

func (s *memStore) stock(id int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Stock
}

func (s *memStore) order(id string) entities.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneOrder(s.orders[id])
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *memStore) put(o entities.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = cloneOrder(o)
}

func (s *memStore) GetProduct(_ context.Context, id int64) (entities.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return entities.Product{}, entities.ErrProductNotFound
	}
	return p, nil
}

func (s *memStore) GetProductsByIDs(_ context.Context, ids []int64) ([]entities.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entities.Product
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memStore) LockProductsByIDs(ctx context.Context, ids []int64) ([]entities.Product, error) {
	return s.GetProductsByIDs(ctx, ids)
}

func (s *memStore) DecrementStock(_ context.Context, id int64, qty int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok || p.Stock < qty {
		return 0, entities.ErrInsufficientStock
	}
	p.Stock -= qty
	s.products[id] = p
	return p.Stock, nil
}

func (s *memStore) IncrementStock(_ context.Context, id int64, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil
	}
	p.Stock += qty
	s.products[id] = p
	return nil
}

func (s *memStore) CreateOrder(_ context.Context, o entities.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreate != nil {
		return s.failCreate
	}
	o.Items = nil
	s.orders[o.ID] = cloneOrder(o)
	return nil
}

func (s *memStore) CreateOrderItems(_ context.Context, orderID string, items []entities.OrderItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.orders[orderID]
	o.Items = append([]entities.OrderItem(nil), items...)
	s.orders[orderID] = o
	return nil
}

func (s *memStore) GetOrder(_ context.Context, id string) (entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (s *memStore) GetOrderForUpdate(ctx context.Context, id string) (entities.Order, error) {
	return s.GetOrder(ctx, id)
}

func (s *memStore) UpdateOrderState(_ context.Context, o entities.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.orders[o.ID]
	if !ok {
		return entities.ErrOrderNotFound
	}
	stored.Status = o.Status
	stored.TrackingStatus = o.TrackingStatus
	stored.Metadata = o.Metadata
	stored.UpdatedAt = o.UpdatedAt
	s.orders[o.ID] = cloneOrder(stored)
	return nil
}

func (s *memStore) MergeOrderMetadata(_ context.Context, id string, patch entities.Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return entities.ErrOrderNotFound
	}
	if patch.Payment != nil {
		o.Metadata.Payment = patch.Payment
	}
	if patch.PaymentError != "" {
		o.Metadata.PaymentError = patch.PaymentError
	}
	if patch.ShippingBooking != nil {
		o.Metadata.ShippingBooking = patch.ShippingBooking
	}
	if patch.BookingError != "" {
		o.Metadata.BookingError = patch.BookingError
	}
	s.orders[id] = o
	return nil
}

func (s *memStore) userOrders(userID string) []entities.Order {
	var out []entities.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memStore) ListOrders(_ context.Context, q entities.OrderQuery) ([]entities.Order, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastQuery = q

	var matched []entities.Order
	for _, o := range s.userOrders(q.UserID) {
		if q.Status == "" || o.Status == q.Status {
			matched = append(matched, o)
		}
	}
	total := len(matched)
	if q.Offset >= total {
		return nil, total, nil
	}
	end := min(q.Offset+q.Limit, total)
	return matched[q.Offset:end], total, nil
}

func (s *memStore) OrderSummary(_ context.Context, q entities.OrderQuery) ([]entities.StatusTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byStatus := map[entities.OrderStatus]*entities.StatusTotal{}
	for _, o := range s.userOrders(q.UserID) {
		st, ok := byStatus[o.Status]
		if !ok {
			st = &entities.StatusTotal{Status: o.Status, Total: decimal.Zero}
			byStatus[o.Status] = st
		}
		st.Count++
		st.Total = st.Total.Add(o.Total)
	}
	out := make([]entities.StatusTotal, 0, len(byStatus))
	for _, st := range byStatus {
		out = append(out, *st)
	}
	return out, nil
}

func (s *memStore) OrdersForTracking(_ context.Context, limit int) ([]entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entities.Order
	for _, o := range s.orders {
		switch o.Status {
		case entities.StatusPaid, entities.StatusProcessing, entities.StatusShipped:
		default:
			continue
		}
		if o.Metadata.ShippingBooking == nil {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeRates serves every postal code except those in missing.
type fakeRates struct {
	rates   []entities.ShippingRate
	missing map[string]bool
	err     error
}

func (f *fakeRates) GetAreaByPostalCode(_ context.Context, postal string) (*entities.Area, error) {
	if f.missing[postal] {
		return nil, nil
	}
	return &entities.Area{ID: "area-" + postal, PostalCode: postal, City: "Kota " + postal}, nil
}

func (f *fakeRates) CalculateShippingRates(_ context.Context, _, _ string, _ []entities.PackageItem) ([]entities.ShippingRate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rates, nil
}

type fakePayments struct {
	err   error
	calls atomic.Int32
}

func (f *fakePayments) CreateSession(_ context.Context, order entities.Order) (entities.PaymentSession, error) {
	f.calls.Add(1)
	if f.err != nil {
		return entities.PaymentSession{}, f.err
	}
	return entities.PaymentSession{
		Provider:    "fake",
		Token:       "tok-" + order.ID,
		RedirectURL: "https://pay.example.com/" + order.ID,
	}, nil
}

type fakeCarrier struct {
	mu       sync.Mutex
	bookErr  error
	booked   []string
	tracking map[string]string
	trackErr map[string]error
}

func (f *fakeCarrier) CreateBooking(_ context.Context, order entities.Order) (entities.ShippingBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bookErr != nil {
		return entities.ShippingBooking{}, f.bookErr
	}
	f.booked = append(f.booked, order.ID)
	return entities.ShippingBooking{ID: "bk-" + order.ID, TrackingID: "trk-" + order.ID, Status: "confirmed"}, nil
}

func (f *fakeCarrier) Track(_ context.Context, trackingID string) (entities.TrackingInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.trackErr[trackingID]; err != nil {
		return entities.TrackingInfo{}, err
	}
	return entities.TrackingInfo{TrackingID: trackingID, Status: f.tracking[trackingID]}, nil
}

type eventRecorder struct {
	mu     sync.Mutex
	events []entities.OrderEvent
}

func (r *eventRecorder) Publish(_ context.Context, event entities.OrderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) types() []entities.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}
