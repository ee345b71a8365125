package service

import (
	"errors"
	"testing"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/repository"
)

func setupWishlistServiceTest(t *testing.T) (*WishlistService, *marketplaceTestEnv) {
	t.Helper()
	env := setupMarketplaceServiceTest(t, "wishlist_service_test")
	return NewWishlistService(repository.NewWishlistRepository(env.db), env.items), env
}

func TestWishlistServiceAddRemove(t *testing.T) {
	svc, env := setupWishlistServiceTest(t)
	seller := env.createUser(t, "seller")
	buyer := env.createUser(t, "buyer")
	item := env.createItem(t, seller.ID, "Guitar", 3200, nil)

	entry, err := svc.Add(buyer.ID, item.ID, " for my brother ")
	if err != nil {
		t.Fatalf("add wishlist failed: %v", err)
	}
	if entry.Notes != "for my brother" {
		t.Fatalf("notes not trimmed: %q", entry.Notes)
	}
	if _, err := svc.Add(buyer.ID, item.ID, ""); !errors.Is(err, ErrWishlistDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if _, err := svc.Add(buyer.ID, 9999, ""); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected item not found, got %v", err)
	}
	wishlist, err := svc.Get(buyer.ID)
	if err != nil {
		t.Fatalf("get wishlist failed: %v", err)
	}
	if len(wishlist.Items) != 1 {
		t.Fatalf("expected one wishlist item, got %d", len(wishlist.Items))
	}
	if err := svc.Remove(buyer.ID, item.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := svc.Remove(buyer.ID, item.ID); !errors.Is(err, ErrWishlistItemNotFound) {
		t.Fatalf("expected missing wishlist item, got %v", err)
	}
}

func TestWishlistServiceWantLifecycle(t *testing.T) {
	svc, env := setupWishlistServiceTest(t)
	owner := env.createUser(t, "owner")
	other := env.createUser(t, "other")

	if _, err := svc.CreateWant(owner.ID, WantToBuyInput{Title: strPtr("  ")}); !errors.Is(err, ErrWantToBuyInvalid) {
		t.Fatalf("expected invalid title, got %v", err)
	}
	want, err := svc.CreateWant(owner.ID, WantToBuyInput{
		Title:    strPtr("Calculator"),
		Category: strPtr("Electronics"),
		MaxPrice: moneyPtr(500),
	})
	if err != nil {
		t.Fatalf("create want failed: %v", err)
	}
	if want.Status != constants.WantToBuyStatusActive || want.Condition != constants.ConditionAny {
		t.Fatalf("unexpected defaults: %+v", want)
	}
	if _, err := svc.GetWant(other.ID, want.ID); !errors.Is(err, ErrWantToBuyNotFound) {
		t.Fatalf("expected other user to be denied, got %v", err)
	}
	updated, err := svc.UpdateWant(owner.ID, want.ID, WantToBuyInput{ClearMaxPrice: true})
	if err != nil {
		t.Fatalf("update want failed: %v", err)
	}
	if updated.MaxPrice != nil {
		t.Fatalf("expected max price cleared")
	}

	active, total, err := svc.ListActiveWants(1, 20)
	if err != nil || total != 1 || len(active) != 1 {
		t.Fatalf("unexpected active wants: total=%d err=%v", total, err)
	}
	fulfilled, err := svc.FulfillWant(owner.ID, want.ID)
	if err != nil {
		t.Fatalf("fulfill failed: %v", err)
	}
	if fulfilled.Status != constants.WantToBuyStatusFulfilled {
		t.Fatalf("unexpected status: %s", fulfilled.Status)
	}
	_, total, err = svc.ListUserWants(owner.ID, 1, 20)
	if err != nil || total != 0 {
		t.Fatalf("fulfilled want should leave the active list: total=%d err=%v", total, err)
	}
	if err := svc.DeleteWant(owner.ID, want.ID); err != nil {
		t.Fatalf("delete want failed: %v", err)
	}
}
