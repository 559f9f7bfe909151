package product

import (
	"context"
	"database/sql"
	"errors"

	"github.com/AyAchi-19/f1-store/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Product, error)
	GetByCategory(ctx context.Context, category string) ([]Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Create(ctx context.Context, params CreateProductParams) (*Product, error)
	Update(ctx context.Context, params UpdateProductParams) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = "id, name, description, price, image_url, category, sizes, stock, created_at"

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
		&p.Category, &p.Sizes, &p.Stock, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) queryProducts(ctx context.Context, query string, args ...any) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	return products, rows.Err()
}

func (r *repository) GetAll(ctx context.Context) ([]Product, error) {
	return r.queryProducts(ctx,
		"SELECT "+productColumns+" FROM products ORDER BY created_at DESC")
}

func (r *repository) GetByCategory(ctx context.Context, category string) ([]Product, error) {
	return r.queryProducts(ctx,
		"SELECT "+productColumns+" FROM products WHERE category = $1 ORDER BY created_at DESC",
		category)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, params CreateProductParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateProduct"),
	)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, description, price, image_url, category, sizes, stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+productColumns,
		params.Name, params.Description, params.Price, params.ImageURL,
		params.Category, pq.Array(params.Sizes), params.Stock,
	)

	p, err := scanProduct(row)
	if err != nil {
		log.Error("failed to insert product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.String("product_id", p.ID.String()))
	return p, nil
}

func (r *repository) Update(ctx context.Context, params UpdateProductParams) (*Product, error) {
	// COALESCE keeps existing values when the input field is nil; sizes are
	// replaced wholesale when provided.
	row := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET name = COALESCE($2, name),
			description = COALESCE($3, description),
			price = COALESCE($4, price),
			image_url = COALESCE($5, image_url),
			category = COALESCE($6, category),
			sizes = COALESCE($7, sizes),
			stock = COALESCE($8, stock)
		WHERE id = $1
		RETURNING `+productColumns,
		params.ID, params.Name, params.Description, params.Price,
		params.ImageURL, params.Category, sizesOrNil(params.Sizes), params.Stock,
	)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	return p, err
}

func sizesOrNil(sizes []string) any {
	if sizes == nil {
		return nil
	}
	return pq.Array(sizes)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// DecrementStock reduces stock for a purchased line, refusing to go negative.
func (r *repository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - $2
		WHERE id = $1 AND stock >= $2
	`, id, qty)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrInsufficientStock
	}

	return nil
}
