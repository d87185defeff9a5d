package services

import (
	"context"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

type shopService struct {
	repo ports.ProductRepository
}

func NewShopService(repo ports.ProductRepository) ports.ShopService {
	return &shopService{repo: repo}
}

func (s *shopService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	if filter.Limit <= 0 || filter.Limit > 50 {
		filter.Limit = 20
	}
	return s.repo.List(ctx, filter)
}
