package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/santanarscs/orderdesk/internal/domain"
	"github.com/santanarscs/orderdesk/internal/testutil"
)

func TestCustomerRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewCustomerRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("CreateCustomer and FindByID round-trip", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		customer := domain.Customer{
			ID:        "59affe2b-9d5e-4a8f-b2e5-1b4a4b2d9c01",
			Name:      "Ana",
			Email:     "ana@example.com",
			CreatedAt: time.Now().UTC(),
		}
		if err := repo.CreateCustomer(ctx, customer); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		found, err := repo.FindByID(ctx, customer.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if found == nil || found.Email != "ana@example.com" {
			t.Fatalf("unexpected customer: %+v", found)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		testutil.InsertCustomer(t, ctx, pool, "Ana", "ana@example.com")

		err := repo.CreateCustomer(ctx, domain.Customer{
			ID:        "59affe2b-9d5e-4a8f-b2e5-1b4a4b2d9c02",
			Name:      "Other",
			Email:     "ana@example.com",
			CreatedAt: time.Now().UTC(),
		})
		if err != domain.ErrCustomerEmailTaken {
			t.Fatalf("expected ErrCustomerEmailTaken, got %v", err)
		}
	})

	t.Run("absent customer returns nil without error", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		found, err := repo.FindByID(ctx, "00000000-0000-0000-0000-000000000001")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if found != nil {
			t.Fatalf("expected nil customer, got %+v", found)
		}

		_, err = repo.FindByID(ctx, "not-a-uuid")
		if err != domain.ErrInvalidID {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})
}
