package product

import (
	"context"

	"smartcart-be/internal/logger"
	"smartcart-be/internal/utils"

	"go.uber.org/zap"
)

const (
	featuredLimit = 8
	relatedLimit  = 4
)

// ListResult is one page of the catalog.
type ListResult struct {
	Products    []*Product `json:"products"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
	TotalCount  int64      `json:"totalCount"`
}

type Service interface {
	List(ctx context.Context, opts ListOptions) (*ListResult, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Featured(ctx context.Context) ([]*Product, error)
	Related(ctx context.Context, category string, excludeID int64) ([]*Product, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, params CreateParams) (*Product, error)
	Update(ctx context.Context, id int64, params UpdateParams) (*Product, error)
	Delete(ctx context.Context, id int64) error
	ToggleStatus(ctx context.Context, id int64) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	if opts.Page < 1 || opts.Limit < 1 {
		return nil, ErrInvalidPaging
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}

	products, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	if products == nil {
		// A page past the end is an empty list, not an error.
		products = []*Product{}
	}

	return &ListResult{
		Products:    products,
		CurrentPage: opts.Page,
		TotalPages:  utils.TotalPages(total, opts.Limit),
		TotalCount:  total,
	}, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Featured(ctx context.Context) ([]*Product, error) {
	return s.repo.Featured(ctx, featuredLimit)
}

func (s *service) Related(ctx context.Context, category string, excludeID int64) ([]*Product, error) {
	return s.repo.Related(ctx, category, excludeID, relatedLimit)
}

func (s *service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	log := logger.FromCtx(ctx)

	if params.Name == "" || params.Price <= 0 || params.Category == "" ||
		params.Brand == "" || params.StockCount < 0 {
		return nil, ErrMissingFields
	}

	p, err := s.repo.Create(ctx, params)
	if err != nil {
		log.Error("failed to create product", zap.String("name", params.Name), zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.Int64("product_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

func (s *service) Update(ctx context.Context, id int64, params UpdateParams) (*Product, error) {
	return s.repo.Update(ctx, id, params)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	log := logger.FromCtx(ctx)

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info("product deleted", zap.Int64("product_id", id))
	return nil
}

func (s *service) ToggleStatus(ctx context.Context, id int64) (*Product, error) {
	return s.repo.ToggleStatus(ctx, id)
}
