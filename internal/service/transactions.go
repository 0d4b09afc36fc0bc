package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/shopspring/decimal"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 50
	MaxSearchLength  = 100
)

// Periods are the accepted values of TransactionQuery.Period.
var Periods = []string{"all", "today", "week", "month", "3months", "year"}

var sortFields = map[string]bool{
	"created_at":   true,
	"total":        true,
	"status":       true,
	"order_number": true,
}

// TransactionQuery is a customer's transaction history request as it comes
// off the query string.
type TransactionQuery struct {
	Page         int
	Limit        int
	Period       string
	Status       string
	Search       string
	SortBy       string
	SortOrder    string
	IncludeItems bool
}

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

type Summary struct {
	TotalOrders  int                          `json:"totalOrders"`
	TotalValue   decimal.Decimal              `json:"totalValue"`
	AverageValue decimal.Decimal              `json:"averageValue"`
	ByStatus     map[entities.OrderStatus]int `json:"byStatus"`
}

type TransactionPage struct {
	Orders     []entities.Order
	Pagination Pagination
	Summary    Summary
}

type transactionService struct {
	logger *slog.Logger
	orders OrderRepo
	now    func() time.Time
}

func NewTransactionService(logger *slog.Logger, orders OrderRepo) *transactionService {
	return &transactionService{
		logger: logger.With(slog.String("service", "transactions")),
		orders: orders,
		now:    time.Now,
	}
}

// List returns one page of the caller's orders together with a summary over
// every order in the same period and search scope.
func (s *transactionService) List(ctx context.Context, userID string, q TransactionQuery) (TransactionPage, error) {
	query, page, err := s.normalize(userID, q)
	if err != nil {
		return TransactionPage{}, err
	}

	orders, total, err := s.orders.ListOrders(ctx, query)
	if err != nil {
		return TransactionPage{}, err
	}
	totals, err := s.orders.OrderSummary(ctx, query)
	if err != nil {
		return TransactionPage{}, err
	}

	pages := (total + query.Limit - 1) / query.Limit
	return TransactionPage{
		Orders: orders,
		Pagination: Pagination{
			Page:       page,
			Limit:      query.Limit,
			Total:      total,
			TotalPages: pages,
			HasNext:    page < pages,
			HasPrev:    page > 1,
		},
		Summary: summarize(totals),
	}, nil
}

// Get returns one of the caller's orders with its items. Orders of other
// users are reported as not found.
func (s *transactionService) Get(ctx context.Context, userID, orderID string) (entities.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if order.UserID != userID {
		s.logger.WarnContext(ctx, "order requested by another user",
			slog.String("order_id", orderID),
			slog.String("user_id", userID),
		)
		return entities.Order{}, entities.ErrOrderNotFound
	}
	return order, nil
}

func (s *transactionService) normalize(userID string, q TransactionQuery) (entities.OrderQuery, int, error) {
	page := q.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return entities.OrderQuery{}, 0, fmt.Errorf("%w: page must be at least 1", entities.ErrInvalidFilter)
	}

	limit := q.Limit
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if limit < 1 || limit > MaxPageLimit {
		return entities.OrderQuery{}, 0, fmt.Errorf("%w: limit must be between 1 and %d", entities.ErrInvalidFilter, MaxPageLimit)
	}

	search := strings.TrimSpace(q.Search)
	if utf8.RuneCountInString(search) > MaxSearchLength {
		return entities.OrderQuery{}, 0, fmt.Errorf("%w: search is longer than %d characters", entities.ErrInvalidFilter, MaxSearchLength)
	}

	query := entities.OrderQuery{
		UserID:       userID,
		Search:       search,
		SortColumn:   "created_at",
		SortDesc:     true,
		Limit:        limit,
		Offset:       (page - 1) * limit,
		IncludeItems: q.IncludeItems,
	}

	switch q.Status {
	case "", "all":
	default:
		status := entities.OrderStatus(q.Status)
		if !status.Valid() {
			return entities.OrderQuery{}, 0, fmt.Errorf("%w: unknown status %q", entities.ErrInvalidFilter, q.Status)
		}
		query.Status = status
	}

	since, err := s.periodStart(q.Period)
	if err != nil {
		return entities.OrderQuery{}, 0, err
	}
	query.Since = since

	if q.SortBy != "" {
		if !sortFields[q.SortBy] {
			return entities.OrderQuery{}, 0, fmt.Errorf("%w: %q", entities.ErrInvalidSort, q.SortBy)
		}
		query.SortColumn = q.SortBy
	}
	switch strings.ToLower(q.SortOrder) {
	case "", "desc":
	case "asc":
		query.SortDesc = false
	default:
		return entities.OrderQuery{}, 0, fmt.Errorf("%w: sort order %q", entities.ErrInvalidFilter, q.SortOrder)
	}

	return query, page, nil
}

func (s *transactionService) periodStart(period string) (*time.Time, error) {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var since time.Time
	switch period {
	case "", "all":
		return nil, nil
	case "today":
		since = midnight
	case "week":
		since = midnight.AddDate(0, 0, -7)
	case "month":
		since = midnight.AddDate(0, -1, 0)
	case "3months":
		since = midnight.AddDate(0, -3, 0)
	case "year":
		since = midnight.AddDate(-1, 0, 0)
	default:
		return nil, fmt.Errorf("%w: unknown period %q", entities.ErrInvalidFilter, period)
	}
	return &since, nil
}

// summarize folds per-status totals. Cancelled and failed orders are counted
// but do not contribute to the value figures.
func summarize(totals []entities.StatusTotal) Summary {
	sum := Summary{
		TotalValue:   decimal.Zero,
		AverageValue: decimal.Zero,
		ByStatus:     make(map[entities.OrderStatus]int, len(entities.Statuses)),
	}
	for _, st := range entities.Statuses {
		sum.ByStatus[st] = 0
	}

	valued := 0
	for _, t := range totals {
		sum.ByStatus[t.Status] += t.Count
		sum.TotalOrders += t.Count
		if t.Status == entities.StatusCancelled || t.Status == entities.StatusFailed {
			continue
		}
		valued += t.Count
		sum.TotalValue = sum.TotalValue.Add(t.Total)
	}
	if valued > 0 {
		sum.AverageValue = sum.TotalValue.DivRound(decimal.NewFromInt(int64(valued)), 2)
	}
	return sum
}
