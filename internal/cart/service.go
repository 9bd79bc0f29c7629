package cart

import (
	"context"
	"errors"

	"smartcart-be/internal/product"
)

type Service interface {
	Get(ctx context.Context, userID int64) ([]*Item, error)
	AddItem(ctx context.Context, params AddParams) ([]*Item, error)
	UpdateQuantity(ctx context.Context, userID, productID int64, quantity int) ([]*Item, error)
	RemoveItem(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

func (s *service) Get(ctx context.Context, userID int64) ([]*Item, error) {
	items, err := s.repo.GetItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Item{}
	}
	return items, nil
}

func (s *service) AddItem(ctx context.Context, params AddParams) ([]*Item, error) {
	if params.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.productRepo.GetByID(ctx, params.ProductID)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if p.Status != product.StatusActive {
		return nil, ErrProductNotFound
	}

	// Quantity already in the cart counts against stock.
	items, err := s.repo.GetItems(ctx, params.UserID)
	if err != nil {
		return nil, err
	}
	have := 0
	for _, it := range items {
		if it.ProductID == params.ProductID {
			have = it.Quantity
			break
		}
	}
	if have+params.Quantity > p.StockCount {
		return nil, ErrInsufficientStock
	}

	if err := s.repo.Upsert(ctx, params); err != nil {
		return nil, err
	}

	return s.Get(ctx, params.UserID)
}

func (s *service) UpdateQuantity(ctx context.Context, userID, productID int64, quantity int) ([]*Item, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if quantity > p.StockCount {
		return nil, ErrInsufficientStock
	}

	if err := s.repo.SetQuantity(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}

	return s.Get(ctx, userID)
}

func (s *service) RemoveItem(ctx context.Context, userID, productID int64) error {
	return s.repo.Remove(ctx, userID, productID)
}

func (s *service) Clear(ctx context.Context, userID int64) error {
	return s.repo.Clear(ctx, userID)
}
