package order

import (
	"context"
	"errors"
	"fmt"

	"smartcart-be/internal/logger"
	"smartcart-be/internal/metrics"
	"smartcart-be/internal/product"
	"smartcart-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Place(ctx context.Context, params PlaceParams) (*Order, error)
	MyOrders(ctx context.Context, userID int64, page, limit int) (*ListResult, error)
	ListAll(ctx context.Context, page, limit int) (*ListResult, error)
	Tracking(ctx context.Context, userID, orderID int64) ([]TrackingUpdate, error)
	Cancel(ctx context.Context, userID, orderID int64, status string) (*Order, error)
	AdminUpdate(ctx context.Context, orderID int64, params AdminUpdateParams) (*Order, error)
}

type service struct {
	repo        Repository
	productRepo product.Repository
	stats       *metrics.Store
}

func NewService(repo Repository, productRepo product.Repository, stats *metrics.Store) Service {
	return &service{repo: repo, productRepo: productRepo, stats: stats}
}

// Place validates the requested items against the live catalog, snapshots
// them, prices the order and hands the whole mutation to one transaction.
func (s *service) Place(ctx context.Context, params PlaceParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(zap.Int64("user_id", params.UserID))

	if len(params.Items) == 0 || !params.ShippingAddress.Complete() {
		return nil, ErrMissingItems
	}
	if params.Discount < 0 {
		return nil, ErrInvalidAmount
	}

	items := make([]Item, 0, len(params.Items))
	freeShipping := false

	for _, req := range params.Items {
		if req.Quantity < 1 {
			return nil, ErrMissingItems
		}

		p, err := s.productRepo.GetByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, product.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: product %d", ErrProductUnavailable, req.ProductID)
			}
			return nil, err
		}
		if p.Status != product.StatusActive || !p.InStock {
			return nil, fmt.Errorf("%w: product %d", ErrProductUnavailable, req.ProductID)
		}
		if p.StockCount < req.Quantity {
			return nil, fmt.Errorf("%w for %s", ErrInsufficientStock, p.Name)
		}

		if p.FreeShipping {
			freeShipping = true
		}

		items = append(items, Item{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  req.Quantity,
			Image:     p.Image,
		})
	}

	totals, err := ComputeTotals(items, freeShipping, params.Discount)
	if err != nil {
		return nil, err
	}

	o := &Order{
		UserID:          params.UserID,
		Status:          StatusPending,
		Items:           items,
		ShippingAddress: params.ShippingAddress,
		Subtotal:        totals.Subtotal,
		Discount:        totals.Discount,
		Shipping:        totals.Shipping,
		Tax:             totals.Tax,
		Total:           totals.Total,
	}

	if err := s.repo.CreateOrderTx(ctx, o); err != nil {
		log.Error("order placement failed", zap.Error(err))
		return nil, err
	}

	s.stats.OrdersPlaced.Inc()
	return o, nil
}

func (s *service) MyOrders(ctx context.Context, userID int64, page, limit int) (*ListResult, error) {
	if page < 1 || limit < 1 {
		return nil, ErrInvalidPaging
	}

	orders, total, err := s.repo.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}

	return newListResult(orders, total, page, limit), nil
}

func (s *service) ListAll(ctx context.Context, page, limit int) (*ListResult, error) {
	if page < 1 || limit < 1 {
		return nil, ErrInvalidPaging
	}

	orders, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	return newListResult(orders, total, page, limit), nil
}

func newListResult(orders []*Order, total int64, page, limit int) *ListResult {
	if orders == nil {
		orders = []*Order{}
	}
	return &ListResult{
		Orders:     orders,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: utils.TotalPages(total, limit),
	}
}

// Tracking returns the append-only tracking log, owner-gated.
func (s *service) Tracking(ctx context.Context, userID, orderID int64) ([]TrackingUpdate, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID && utils.GetUserRoleFromContext(ctx) != utils.RoleAdmin {
		// Hidden from other customers, indistinguishable from absent.
		return nil, ErrOrderNotFound
	}
	return o.TrackingUpdates, nil
}

// Cancel is the customer-initiated status change. Only "cancelled" is
// accepted, and only from pending or processing. The repository restocks
// exactly the ordered quantities.
func (s *service) Cancel(ctx context.Context, userID, orderID int64, status string) (*Order, error) {
	if status != string(StatusCancelled) {
		return nil, ErrInvalidStatusUpdate
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrOrderNotFound
	}
	if o.Status != StatusPending && o.Status != StatusProcessing {
		return nil, ErrNotCancellable
	}

	cancelled, err := s.repo.CancelTx(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.stats.OrdersCancelled.Inc()
	return cancelled, nil
}

func (s *service) AdminUpdate(ctx context.Context, orderID int64, params AdminUpdateParams) (*Order, error) {
	if params.Status != nil && !ValidStatus(*params.Status) {
		return nil, ErrInvalidStatusUpdate
	}
	return s.repo.AdminUpdateTx(ctx, orderID, params)
}
