package app

import (
	"context"

	"github.com/santanarscs/orderdesk/internal/clock"
	"github.com/santanarscs/orderdesk/internal/domain"
	"github.com/shopspring/decimal"
)

type CatalogRepository interface {
	CreateProduct(ctx context.Context, product domain.Product) error
	FindProductByName(ctx context.Context, name string) (*domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type CatalogService struct {
	repo  CatalogRepository
	clock clock.Clock
}

func NewCatalogService(repo CatalogRepository, clk clock.Clock) *CatalogService {
	return &CatalogService{
		repo:  repo,
		clock: clk,
	}
}

type CreateProductInput struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

func (s *CatalogService) CreateProduct(ctx context.Context, in CreateProductInput) (domain.Product, error) {
	if in.Name == "" {
		return domain.Product{}, domain.ErrProductNameRequired
	}
	if in.Price.IsNegative() {
		return domain.Product{}, domain.ErrInvalidPrice
	}
	if in.Quantity < 0 {
		return domain.Product{}, domain.ErrInvalidQuantity
	}

	if existing, err := s.repo.FindProductByName(ctx, in.Name); err != nil {
		return domain.Product{}, err
	} else if existing != nil {
		return domain.Product{}, domain.ErrProductNameTaken
	}

	now := s.clock.Now()
	product := domain.Product{
		ID:        newID(),
		Name:      in.Name,
		Price:     in.Price,
		Quantity:  in.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if id == "" {
		return domain.Product{}, domain.ErrInvalidID
	}
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if product == nil {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return *product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}
