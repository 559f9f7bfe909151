package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/AyAchi-19/f1-store/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrder(ctx context.Context, params CheckoutParams, total float64) (*Order, error)
	GetOrders(ctx context.Context, scope Scope) ([]Order, error)
	GetOrderView(ctx context.Context, orderID uuid.UUID) (*OrderView, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus) error
	Stats(ctx context.Context) (*DashboardStats, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = "id, user_id, total_amount, status, phone, city, shipping_address, maps_link, created_at"

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.TotalAmount, &o.Status,
		&o.Phone, &o.City, &o.ShippingAddress, &o.MapsLink, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOrder performs the checkout write pair: the header insert, then one
// bulk insert for the line items. The two writes are not transactional; if
// the item insert fails the header stays behind with a total but no lines.
// That gap is logged and surfaced, not compensated.
func (r *repository) CreateOrder(ctx context.Context, params CheckoutParams, total float64) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.String("user_id", params.UserID.String()),
	)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, total_amount, status, phone, city, shipping_address, maps_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+orderColumns,
		params.UserID, total, StatusPending,
		params.Phone, params.City, params.ShippingAddress, params.MapsLink,
	)

	o, err := scanOrder(row)
	if err != nil {
		log.Error("failed to insert order header", zap.Error(err))
		return nil, err
	}

	if err := r.insertOrderItems(ctx, o.ID, params.Lines); err != nil {
		log.Error("order items insert failed after header was created",
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to insert order items: %w", err)
	}

	log.Info("order created",
		zap.String("order_id", o.ID.String()),
		zap.Float64("total_amount", total),
		zap.Int("line_count", len(params.Lines)),
	)

	return o, nil
}

func (r *repository) insertOrderItems(ctx context.Context, orderID uuid.UUID, lines []CheckoutLine) error {
	var (
		sb   strings.Builder
		args []any
	)

	sb.WriteString("INSERT INTO order_items (order_id, product_id, quantity, price_at_purchase) VALUES ")
	for i, line := range lines {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 4
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4)
		args = append(args, orderID, line.ProductID, line.Quantity, line.Price)
	}

	_, err := r.db.ExecContext(ctx, sb.String(), args...)
	return err
}

func (r *repository) GetOrders(ctx context.Context, scope Scope) ([]Order, error) {
	query := "SELECT " + orderColumns + " FROM orders"
	var args []any
	if scope.UserID != nil {
		query += " WHERE user_id = $1"
		args = append(args, *scope.UserID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}

	return orders, rows.Err()
}

// GetOrderView fetches the denormalized read: header plus the joined
// customer profile and line items. The profile join is one-to-one and is
// normalized to a single optional object at this boundary.
func (r *repository) GetOrderView(ctx context.Context, orderID uuid.UUID) (*OrderView, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT o.id, o.user_id, o.total_amount, o.status,
			o.phone, o.city, o.shipping_address, o.maps_link, o.created_at,
			p.full_name, p.avatar_url
		FROM orders o
		LEFT JOIN profiles p ON p.id = o.user_id
		WHERE o.id = $1
	`, orderID)

	var (
		view    OrderView
		profile CustomerProfile
	)
	err := row.Scan(
		&view.ID, &view.UserID, &view.TotalAmount, &view.Status,
		&view.Phone, &view.City, &view.ShippingAddress, &view.MapsLink, &view.CreatedAt,
		&profile.FullName, &profile.AvatarURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if profile.FullName != nil || profile.AvatarURL != nil {
		view.Profile = &profile
	}

	items, err := r.getOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	view.Items = items

	return &view, nil
}

func (r *repository) getOrderItems(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price_at_purchase,
			pr.name, pr.image_url
		FROM order_items oi
		LEFT JOIN products pr ON pr.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var item OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity,
			&item.PriceAtPurchase, &item.ProductName, &item.ProductImageURL,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// UpdateStatus moves an order to a new status. Terminal orders are guarded
// in SQL so a racing admin action cannot resurrect a delivered or cancelled
// order.
func (r *repository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $2
		WHERE id = $1 AND status NOT IN ($3, $4)
	`, orderID, status, StatusDelivered, StatusCancelled)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected > 0 {
		return nil
	}

	// Distinguish missing from terminal
	var current OrderStatus
	err = r.db.QueryRowContext(ctx, "SELECT status FROM orders WHERE id = $1", orderID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	return ErrOrderFinal
}

func (r *repository) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM orders),
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status <> 'cancelled'),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM profiles WHERE is_admin = FALSE),
			(SELECT COUNT(*) FROM orders WHERE status = 'pending')
	`).Scan(
		&stats.TotalOrders, &stats.TotalRevenue, &stats.TotalProducts,
		&stats.TotalCustomers, &stats.PendingOrders,
	)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
