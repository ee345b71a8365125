package service

import (
	"errors"
	"testing"

	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"
)

func setupCartServiceTest(t *testing.T) (*CartService, *marketplaceTestEnv) {
	t.Helper()
	env := setupMarketplaceServiceTest(t, "cart_service_test")
	return NewCartService(repository.NewCartRepository(env.db), env.items), env
}

func TestCartServiceAddAccumulatesAndTotals(t *testing.T) {
	svc, env := setupCartServiceTest(t)
	seller := env.createUser(t, "seller")
	buyer := env.createUser(t, "buyer")
	lamp := env.createItem(t, seller.ID, "Lamp", 100, nil)
	fan := env.createItem(t, seller.ID, "Fan", 250.25, nil)

	if _, err := svc.Add(buyer.ID, lamp.ID, 0); err != nil {
		t.Fatalf("add lamp failed: %v", err)
	}
	if _, err := svc.Add(buyer.ID, lamp.ID, 2); err != nil {
		t.Fatalf("add lamp again failed: %v", err)
	}
	view, err := svc.Add(buyer.ID, fan.ID, 1)
	if err != nil {
		t.Fatalf("add fan failed: %v", err)
	}
	if len(view.Items) != 2 {
		t.Fatalf("expected two lines, got %d", len(view.Items))
	}
	if view.TotalItems != 4 {
		t.Fatalf("expected 4 units, got %d", view.TotalItems)
	}
	if view.TotalPrice.String() != "550.25" {
		t.Fatalf("unexpected total: %s", view.TotalPrice.String())
	}
}

func TestCartServiceValidation(t *testing.T) {
	svc, env := setupCartServiceTest(t)
	seller := env.createUser(t, "seller")
	buyer := env.createUser(t, "buyer")
	item := env.createItem(t, seller.ID, "Book", 50, nil)
	sold := env.createItem(t, seller.ID, "Sold Book", 50, func(item *models.Item) { item.IsAvailable = false })
	if err := env.db.Model(sold).Update("is_available", false).Error; err != nil {
		t.Fatalf("mark sold failed: %v", err)
	}

	if _, err := svc.Add(buyer.ID, item.ID, 100); !errors.Is(err, ErrCartQuantityInvalid) {
		t.Fatalf("expected quantity invalid, got %v", err)
	}
	if _, err := svc.Add(seller.ID, item.ID, 1); !errors.Is(err, ErrCartOwnItem) {
		t.Fatalf("expected own item error, got %v", err)
	}
	if _, err := svc.Add(buyer.ID, sold.ID, 1); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected unavailable item to be rejected, got %v", err)
	}
	if _, err := svc.Add(buyer.ID, item.ID, 98); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.Add(buyer.ID, item.ID, 2); !errors.Is(err, ErrCartQuantityInvalid) {
		t.Fatalf("expected accumulated quantity over limit to fail, got %v", err)
	}
	if _, err := svc.Remove(buyer.ID, 9999); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected missing line error, got %v", err)
	}
}

func TestCartServiceUpdateRemoveClear(t *testing.T) {
	svc, env := setupCartServiceTest(t)
	seller := env.createUser(t, "seller")
	buyer := env.createUser(t, "buyer")
	a := env.createItem(t, seller.ID, "A", 10, nil)
	b := env.createItem(t, seller.ID, "B", 20, nil)

	if _, err := svc.Add(buyer.ID, a.ID, 1); err != nil {
		t.Fatalf("add a failed: %v", err)
	}
	if _, err := svc.Add(buyer.ID, b.ID, 1); err != nil {
		t.Fatalf("add b failed: %v", err)
	}
	view, err := svc.UpdateQuantity(buyer.ID, a.ID, 5)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if view.TotalPrice.String() != "70.00" {
		t.Fatalf("unexpected total after update: %s", view.TotalPrice.String())
	}
	view, err = svc.Remove(buyer.ID, b.ID)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].ItemID != a.ID {
		t.Fatalf("unexpected lines after remove: %+v", view.Items)
	}
	view, err = svc.Clear(buyer.ID)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if len(view.Items) != 0 || view.TotalItems != 0 {
		t.Fatalf("cart not cleared: %+v", view)
	}
}
