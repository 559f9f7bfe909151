package order

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderRows(ids ...uuid.UUID) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "user_id", "total_amount", "status", "phone", "city", "shipping_address", "maps_link", "created_at"})
	for _, id := range ids {
		rows.AddRow(id, uuid.New(), 59.98, "pending", "+123", "Monza", "Via Roma 1", nil, time.Now())
	}
	return rows
}

func TestRepository_CreateOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	orderID := uuid.New()
	params := CheckoutParams{
		UserID: uuid.New(),
		Lines: []CheckoutLine{
			{ProductID: uuid.New(), Quantity: 2, Price: 10},
			{ProductID: uuid.New(), Quantity: 1, Price: 39.98},
		},
		Phone: "+123",
		City:  "Monza",
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO orders").
			WillReturnRows(orderRows(orderID))
		mock.ExpectExec("INSERT INTO order_items").
			WillReturnResult(sqlmock.NewResult(0, 2))

		o, err := repo.CreateOrder(context.Background(), params, 59.98)
		require.NoError(t, err)
		assert.Equal(t, orderID, o.ID)
		assert.Equal(t, StatusPending, o.Status)
	})

	t.Run("Header insert fails", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO orders").
			WillReturnError(errors.New("db error"))

		_, err := repo.CreateOrder(context.Background(), params, 59.98)
		assert.Error(t, err)
	})

	t.Run("Items insert fails after header", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO orders").
			WillReturnRows(orderRows(orderID))
		mock.ExpectExec("INSERT INTO order_items").
			WillReturnError(errors.New("db error"))

		_, err := repo.CreateOrder(context.Background(), params, 59.98)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "order items")
	})
}

func TestRepository_GetOrders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("All orders", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM orders ORDER BY created_at DESC").
			WillReturnRows(orderRows(uuid.New(), uuid.New()))

		orders, err := repo.GetOrders(context.Background(), AllOrders())
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("Scoped to user", func(t *testing.T) {
		userID := uuid.New()

		mock.ExpectQuery("SELECT (.+) FROM orders WHERE user_id").
			WithArgs(userID).
			WillReturnRows(orderRows(uuid.New()))

		orders, err := repo.GetOrders(context.Background(), OrdersForUser(userID))
		require.NoError(t, err)
		assert.Len(t, orders, 1)
	})
}

func TestRepository_GetOrderView(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	orderID := uuid.New()

	t.Run("With profile and items", func(t *testing.T) {
		headerRows := sqlmock.NewRows([]string{"id", "user_id", "total_amount", "status", "phone", "city", "shipping_address", "maps_link", "created_at", "full_name", "avatar_url"}).
			AddRow(orderID, uuid.New(), 29.99, "processing", nil, nil, nil, nil, time.Now(), "Max Verstappen", nil)

		mock.ExpectQuery("SELECT o.id, o.user_id").
			WithArgs(orderID).
			WillReturnRows(headerRows)

		itemRows := sqlmock.NewRows([]string{"id", "order_id", "product_id", "quantity", "price_at_purchase", "name", "image_url"}).
			AddRow(uuid.New(), orderID, uuid.New(), 1, 29.99, "Team Cap", nil)

		mock.ExpectQuery("SELECT oi.id, oi.order_id").
			WithArgs(orderID).
			WillReturnRows(itemRows)

		view, err := repo.GetOrderView(context.Background(), orderID)
		require.NoError(t, err)
		require.NotNil(t, view.Profile)
		assert.Equal(t, "Max Verstappen", *view.Profile.FullName)
		require.Len(t, view.Items, 1)
		assert.Equal(t, "Team Cap", *view.Items[0].ProductName)
	})

	t.Run("Missing profile normalizes to nil", func(t *testing.T) {
		headerRows := sqlmock.NewRows([]string{"id", "user_id", "total_amount", "status", "phone", "city", "shipping_address", "maps_link", "created_at", "full_name", "avatar_url"}).
			AddRow(orderID, uuid.New(), 29.99, "pending", nil, nil, nil, nil, time.Now(), nil, nil)

		mock.ExpectQuery("SELECT o.id, o.user_id").
			WithArgs(orderID).
			WillReturnRows(headerRows)

		mock.ExpectQuery("SELECT oi.id, oi.order_id").
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "quantity", "price_at_purchase", "name", "image_url"}))

		view, err := repo.GetOrderView(context.Background(), orderID)
		require.NoError(t, err)
		assert.Nil(t, view.Profile)
		assert.Empty(t, view.Items)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT o.id, o.user_id").
			WithArgs(orderID).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetOrderView(context.Background(), orderID)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	orderID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders").
			WithArgs(orderID, StatusShipped, StatusDelivered, StatusCancelled).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(context.Background(), orderID, StatusShipped))
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT status FROM orders").
			WithArgs(orderID).
			WillReturnError(sql.ErrNoRows)

		assert.ErrorIs(t, repo.UpdateStatus(context.Background(), orderID, StatusShipped), ErrOrderNotFound)
	})

	t.Run("Terminal order", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT status FROM orders").
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("delivered"))

		assert.ErrorIs(t, repo.UpdateStatus(context.Background(), orderID, StatusShipped), ErrOrderFinal)
	})
}

func TestRepository_Stats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{"orders", "revenue", "products", "customers", "pending"}).
		AddRow(12, 1099.50, 8, 5, 3)

	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalOrders)
	assert.Equal(t, 1099.50, stats.TotalRevenue)
	assert.Equal(t, 3, stats.PendingOrders)
}
