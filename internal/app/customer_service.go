package app

import (
	"context"
	"strings"

	"github.com/santanarscs/orderdesk/internal/clock"
	"github.com/santanarscs/orderdesk/internal/domain"
)

type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer domain.Customer) error
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
}

type CustomerService struct {
	repo  CustomerRepository
	clock clock.Clock
}

func NewCustomerService(repo CustomerRepository, clk clock.Clock) *CustomerService {
	return &CustomerService{
		repo:  repo,
		clock: clk,
	}
}

type CreateCustomerInput struct {
	Name  string
	Email string
}

func (s *CustomerService) CreateCustomer(ctx context.Context, in CreateCustomerInput) (domain.Customer, error) {
	if in.Name == "" {
		return domain.Customer{}, domain.ErrCustomerNameRequired
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return domain.Customer{}, domain.ErrEmailRequired
	}

	customer := domain.Customer{
		ID:        newID(),
		Name:      in.Name,
		Email:     email,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.CreateCustomer(ctx, customer); err != nil {
		return domain.Customer{}, err
	}
	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id string) (domain.Customer, error) {
	if id == "" {
		return domain.Customer{}, domain.ErrInvalidID
	}
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if customer == nil {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return *customer, nil
}
