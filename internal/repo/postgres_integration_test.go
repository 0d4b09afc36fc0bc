//go:build integration

package repo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/entities"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/internal/postgres"
	"github.com/agustrio1/sveltekit-ecommerce-sub000/pkg/trm"
	"github.com/jmoiron/sqlx"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("storefront"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, postgres.Migrate(ctx, db))
	return db
}

func seedProduct(t *testing.T, db *sqlx.DB, name, price string, stock int) int64 {
	t.Helper()
	var id int64
	err := db.Get(&id,
		`INSERT INTO products (name, price, stock, weight, length, width, height) VALUES ($1, $2, $3, 250, 30, 20, 2) RETURNING id`,
		name, price, stock)
	require.NoError(t, err)
	return id
}

func newOrder(userID, number, recipient string, productID int64) entities.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return entities.Order{
		ID:               ulid.Make().String(),
		OrderNumber:      number,
		UserID:           userID,
		Status:           entities.StatusPending,
		Subtotal:         decimal.RequireFromString("150000.10"),
		ShippingCost:     decimal.RequireFromString("18000.20"),
		CourierInsurance: decimal.RequireFromString("0.30"),
		Total:            decimal.RequireFromString("168000.60"),
		Currency:         "IDR",
		Recipient: entities.Address{
			Name:       recipient,
			Phone:      "081234567890",
			Email:      "buyer@example.com",
			Address:    "Jl. Merdeka No. 1",
			PostalCode: "40111",
		},
		Shipper:            entities.Address{Name: "Toko", Phone: "0221234567", Address: "Jl. Asia Afrika", PostalCode: "40112"},
		CourierCode:        "jne",
		CourierName:        "JNE",
		CourierServiceCode: "reg",
		CourierServiceName: "REG",
		CreatedAt:          now,
		UpdatedAt:          now,
		Items: []entities.OrderItem{
			{ProductID: &productID, Name: "Kaos", Price: decimal.RequireFromString("75000.05"), Quantity: 2, Subtotal: decimal.RequireFromString("150000.10")},
		},
	}
}

func TestPostgresRepo_OrderRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresRepo(db)
	ctx := context.Background()

	productID := seedProduct(t, db, "Kaos", "75000.05", 10)
	order := newOrder("user-1", "ORD-20261019-AAAAAA", "Budi", productID)

	require.NoError(t, repo.CreateOrder(ctx, order))
	require.NoError(t, repo.CreateOrderItems(ctx, order.ID, order.Items))

	got, err := repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "168000.60", got.Total.StringFixed(2))
	assert.True(t, got.Total.Equal(got.ComputedTotal()))
	assert.Equal(t, "Toko", got.Shipper.Name)
	require.Len(t, got.Items, 1)
	assert.Equal(t, productID, *got.Items[0].ProductID)
	assert.Equal(t, "75000.05", got.Items[0].Price.StringFixed(2))

	require.NoError(t, repo.MergeOrderMetadata(ctx, order.ID, entities.Metadata{
		Payment: &entities.PaymentSession{Provider: "snap", Token: "tok", RedirectURL: "https://pay.example/tok"},
	}))
	require.NoError(t, repo.MergeOrderMetadata(ctx, order.ID, entities.Metadata{PaymentError: "later"}))

	got, err = repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Metadata.Payment)
	assert.Equal(t, "tok", got.Metadata.Payment.Token)
	assert.Equal(t, "later", got.Metadata.PaymentError)

	_, err = repo.GetOrder(ctx, ulid.Make().String())
	assert.ErrorIs(t, err, entities.ErrOrderNotFound)
}

func TestPostgresRepo_DecrementStockGuard(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresRepo(db)
	manager := trm.NewManager(db)
	ctx := context.Background()

	productID := seedProduct(t, db, "Last one", "10000", 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = manager.Do(ctx, func(ctx context.Context) error {
				if _, err := repo.LockProductsByIDs(ctx, []int64{productID}); err != nil {
					return err
				}
				_, err := repo.DecrementStock(ctx, productID, 1)
				return err
			})
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, entities.ErrInsufficientStock))
	}
	assert.Equal(t, 1, succeeded)

	product, err := repo.GetProduct(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 0, product.Stock)

	require.NoError(t, repo.IncrementStock(ctx, productID, 3))
	product, err = repo.GetProduct(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 3, product.Stock)
}

func TestPostgresRepo_ListAndSummary(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresRepo(db)
	ctx := context.Background()

	productID := seedProduct(t, db, "Kaos", "75000.05", 10)
	orders := []entities.Order{
		newOrder("user-1", "ORD-20261019-AAAAAA", "Budi", productID),
		newOrder("user-1", "ORD-20261019-BBBBBB", "Siti_100%", productID),
		newOrder("user-1", "ORD-20261019-CCCCCC", "Agus", productID),
		newOrder("user-2", "ORD-20261019-DDDDDD", "Budi", productID),
	}
	orders[2].Status = entities.StatusCancelled
	for _, o := range orders {
		require.NoError(t, repo.CreateOrder(ctx, o))
		require.NoError(t, repo.CreateOrderItems(ctx, o.ID, o.Items))
	}

	list, total, err := repo.ListOrders(ctx, entities.OrderQuery{UserID: "user-1", SortColumn: "order_number", Limit: 10, IncludeItems: true})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 3)
	assert.Equal(t, "ORD-20261019-AAAAAA", list[0].OrderNumber)
	assert.Len(t, list[0].Items, 1)

	list, total, err = repo.ListOrders(ctx, entities.OrderQuery{UserID: "user-1", Search: "_100%", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "ORD-20261019-BBBBBB", list[0].OrderNumber)

	_, _, err = repo.ListOrders(ctx, entities.OrderQuery{UserID: "user-1", SortColumn: "recipient_phone"})
	assert.ErrorIs(t, err, entities.ErrInvalidSort)

	summary, err := repo.OrderSummary(ctx, entities.OrderQuery{UserID: "user-1", Status: entities.StatusPending})
	require.NoError(t, err)
	counts := map[entities.OrderStatus]int{}
	for _, s := range summary {
		counts[s.Status] = s.Count
	}
	assert.Equal(t, map[entities.OrderStatus]int{entities.StatusPending: 2, entities.StatusCancelled: 1}, counts)
}
