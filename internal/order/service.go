package order

import (
	"context"
	"fmt"

	"github.com/AyAchi-19/f1-store/internal/logger"
	"github.com/AyAchi-19/f1-store/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Checkout(ctx context.Context, params CheckoutParams) (*Order, error)
	GetOrders(ctx context.Context, scope Scope) ([]Order, error)
	GetOrderView(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*OrderView, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus) error
	Stats(ctx context.Context) (*DashboardStats, error)
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

// Checkout creates the order header and its line items. The total is
// computed here and fixed for the life of the order.
func (s *service) Checkout(ctx context.Context, params CheckoutParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.String("user_id", params.UserID.String()),
		zap.Int("line_count", len(params.Lines)),
	)

	if params.UserID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if len(params.Lines) == 0 {
		return nil, ErrEmptyOrder
	}

	// Line prices and the total come from the catalog, never from the
	// submitted cart.
	total := 0.0
	lines := make([]CheckoutLine, len(params.Lines))
	for i, line := range params.Lines {
		p, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			log.Error("checkout price lookup failed",
				zap.String("product_id", line.ProductID.String()),
				zap.Error(err),
			)
			return nil, err
		}
		line.Price = p.Price
		lines[i] = line
		total += p.Price * float64(line.Quantity)
	}
	params.Lines = lines

	o, err := s.repo.CreateOrder(ctx, params, total)
	if err != nil {
		log.Error("checkout failed", zap.Error(err))
		return nil, err
	}

	// Stock bookkeeping is best-effort: a failed decrement leaves the
	// catalog optimistic but never voids the placed order.
	for _, line := range params.Lines {
		if err := s.productRepo.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
			log.Warn("failed to decrement stock",
				zap.String("product_id", line.ProductID.String()),
				zap.Int("quantity", line.Quantity),
				zap.Error(err),
			)
		}
	}

	log.Info("checkout completed",
		zap.String("order_id", o.ID.String()),
		zap.Float64("total_amount", o.TotalAmount),
	)

	return o, nil
}

func (s *service) GetOrders(ctx context.Context, scope Scope) ([]Order, error) {
	return s.repo.GetOrders(ctx, scope)
}

// GetOrderView returns the denormalized order; shoppers only see their own.
func (s *service) GetOrderView(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*OrderView, error) {
	view, err := s.repo.GetOrderView(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && view.UserID != requesterID {
		return nil, ErrUnauthorized
	}

	return view, nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	return s.repo.UpdateStatus(ctx, orderID, status)
}

func (s *service) Stats(ctx context.Context) (*DashboardStats, error) {
	return s.repo.Stats(ctx)
}
