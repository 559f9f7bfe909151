package product

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AyAchi-19/f1-store/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	GetProducts(ctx context.Context, category string) ([]Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Create(ctx context.Context, params CreateProductParams) (*Product, error)
	Update(ctx context.Context, params UpdateProductParams) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProducts(ctx context.Context, category string) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetProducts"),
	)

	start := time.Now()

	var (
		products []Product
		err      error
	)
	if category == "" || category == "all" {
		products, err = s.repo.GetAll(ctx)
	} else {
		products, err = s.repo.GetByCategory(ctx, category)
	}

	if err != nil {
		log.Error("failed to fetch products",
			zap.String("category", category),
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	log.Debug("products fetched",
		zap.String("category", category),
		zap.Int("count", len(products)),
		zap.Duration("duration", time.Since(start)),
	)

	return products, nil
}

func (s *service) GetProductByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, params CreateProductParams) (*Product, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidProduct)
	}
	if params.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidProduct)
	}
	if params.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrInvalidProduct)
	}

	return s.repo.Create(ctx, params)
}

func (s *service) Update(ctx context.Context, params UpdateProductParams) (*Product, error) {
	if params.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidProduct)
	}

	// Validate only provided fields
	if params.Name != nil && strings.TrimSpace(*params.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidProduct)
	}
	if params.Price != nil && *params.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidProduct)
	}
	if params.Stock != nil && *params.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrInvalidProduct)
	}

	if params.Name == nil && params.Description == nil && params.Price == nil &&
		params.ImageURL == nil && params.Category == nil && params.Sizes == nil &&
		params.Stock == nil {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidProduct)
	}

	return s.repo.Update(ctx, params)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: id is required", ErrInvalidProduct)
	}
	return s.repo.Delete(ctx, id)
}
