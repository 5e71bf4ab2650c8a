//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-order-server/internal/domains/ordering/domain"
	"github.com/Apurer/go-gin-order-server/internal/platform/migrations"
)

func setupOrderingPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("orders_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func seedReservationFixture(t *testing.T, db *gorm.DB, stock int32, price float64) (orderID, productID int64) {
	require.NoError(t, db.Exec(`INSERT INTO categories (title) VALUES ('Electronics')`).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO products (title, price, category_id, quantity)
		 SELECT 'SmartphoneX', ?, id, ? FROM categories WHERE title = 'Electronics'`, price, stock).Error)
	require.NoError(t, db.Exec(`INSERT INTO clients (name, email, created_at, updated_at) VALUES ('Alice', 'alice@example.com', now(), now())`).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO orders (client_id, date) SELECT id, now() FROM clients WHERE name = 'Alice'`).Error)

	require.NoError(t, db.Raw(`SELECT id FROM orders ORDER BY id DESC LIMIT 1`).Scan(&orderID).Error)
	require.NoError(t, db.Raw(`SELECT id FROM products ORDER BY id DESC LIMIT 1`).Scan(&productID).Error)
	return orderID, productID
}

func TestAddProductToOrder_ReservesAndUpserts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrderingPostgresContainer(t)
	defer cleanup()

	orderID, productID := seedReservationFixture(t, db, 10, 2.5)
	repo := NewRepository(db)
	ctx := context.Background()

	reservation, err := domain.NewReservation(orderID, productID, 3)
	require.NoError(t, err)
	require.NoError(t, repo.AddProductToOrder(ctx, reservation))

	again, err := domain.NewReservation(orderID, productID, 2)
	require.NoError(t, err)
	require.NoError(t, repo.AddProductToOrder(ctx, again))

	order, err := repo.GetOrder(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int32(5), order.Items[0].Quantity)
	assert.Equal(t, 2.5, order.Items[0].PriceAtTime)

	var remaining int32
	require.NoError(t, db.Raw(`SELECT quantity FROM products WHERE id = ?`, productID).Scan(&remaining).Error)
	assert.Equal(t, int32(5), remaining)
}

func TestAddProductToOrder_PriceAtTimeSurvivesRepricing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrderingPostgresContainer(t)
	defer cleanup()

	orderID, productID := seedReservationFixture(t, db, 10, 2.5)
	repo := NewRepository(db)
	ctx := context.Background()

	first, err := domain.NewReservation(orderID, productID, 1)
	require.NoError(t, err)
	require.NoError(t, repo.AddProductToOrder(ctx, first))

	require.NoError(t, db.Exec(`UPDATE products SET price = 99.99 WHERE id = ?`, productID).Error)

	second, err := domain.NewReservation(orderID, productID, 2)
	require.NoError(t, err)
	require.NoError(t, repo.AddProductToOrder(ctx, second))

	order, err := repo.GetOrder(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int32(3), order.Items[0].Quantity)
	assert.Equal(t, 2.5, order.Items[0].PriceAtTime)
}

func TestAddProductToOrder_NotFoundAndStockErrors(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrderingPostgresContainer(t)
	defer cleanup()

	orderID, productID := seedReservationFixture(t, db, 2, 1.0)
	repo := NewRepository(db)
	ctx := context.Background()

	missingOrder, err := domain.NewReservation(orderID+100, productID, 1)
	require.NoError(t, err)
	require.ErrorIs(t, repo.AddProductToOrder(ctx, missingOrder), domain.ErrOrderNotFound)

	missingProduct, err := domain.NewReservation(orderID, productID+100, 1)
	require.NoError(t, err)
	require.ErrorIs(t, repo.AddProductToOrder(ctx, missingProduct), domain.ErrProductNotFound)

	tooMany, err := domain.NewReservation(orderID, productID, 5)
	require.NoError(t, err)
	reserveErr := repo.AddProductToOrder(ctx, tooMany)

	var notAvailable *domain.ProductNotAvailableError
	require.ErrorAs(t, reserveErr, &notAvailable)
	assert.Equal(t, int32(2), notAvailable.Available)

	// The rejected reservation must leave no trace.
	var itemCount int64
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM order_items`).Scan(&itemCount).Error)
	assert.Zero(t, itemCount)
	var remaining int32
	require.NoError(t, db.Raw(`SELECT quantity FROM products WHERE id = ?`, productID).Scan(&remaining).Error)
	assert.Equal(t, int32(2), remaining)
}

func TestAddProductToOrder_ConcurrentReservationsHoldTheStockLine(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrderingPostgresContainer(t)
	defer cleanup()

	const stock = 10
	orderID, productID := seedReservationFixture(t, db, stock, 1.0)
	repo := NewRepository(db)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]error, 25)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reservation, err := domain.NewReservation(orderID, productID, 1)
			if err != nil {
				results[i] = err
				return
			}
			results[i] = repo.AddProductToOrder(ctx, reservation)
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		var notAvailable *domain.ProductNotAvailableError
		require.ErrorAs(t, err, &notAvailable)
	}
	assert.Equal(t, stock, succeeded)

	var remaining int32
	require.NoError(t, db.Raw(`SELECT quantity FROM products WHERE id = ?`, productID).Scan(&remaining).Error)
	assert.Zero(t, remaining)

	order, err := repo.GetOrder(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int32(stock), order.Items[0].Quantity)
}

func TestCreateOrder_RequiresExistingClient(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrderingPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.CreateOrder(ctx, 12345)
	require.ErrorIs(t, err, domain.ErrClientNotFound)

	clientID, err := repo.CreateClient(ctx, &domain.Client{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	order, err := repo.CreateOrder(ctx, clientID)
	require.NoError(t, err)
	assert.Equal(t, clientID, order.ClientID)
	assert.Empty(t, order.Items)
}
