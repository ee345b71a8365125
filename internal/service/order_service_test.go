package service

import (
	"errors"
	"testing"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/repository"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *marketplaceTestEnv) {
	t.Helper()
	env := setupMarketplaceServiceTest(t, "order_service_test")
	return NewOrderService(repository.NewOrderRepository(env.db), env.items, env.notifier), env
}

func TestOrderServiceCreateComputesTotalAndNotifiesSeller(t *testing.T) {
	svc, env := setupOrderServiceTest(t)
	seller := env.createUser(t, "seller")
	buyer := env.createUser(t, "buyer")
	item := env.createItem(t, seller.ID, "Desk Lamp", 150.5, nil)

	order, err := svc.Create(buyer.ID, CreateOrderInput{ItemID: item.ID, Quantity: 2, ShippingAddress: " Dorm A "})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.TotalPrice.String() != "301.00" {
		t.Fatalf("unexpected total: %s", order.TotalPrice.String())
	}
	if order.SellerID != seller.ID || order.Status != constants.OrderStatusPending {
		t.Fatalf("unexpected order: %+v", order)
	}
	if order.PaymentStatus != constants.OrderPaymentStatusPending {
		t.Fatalf("unexpected payment status: %s", order.PaymentStatus)
	}
	if order.ShippingAddress != "Dorm A" {
		t.Fatalf("shipping address not trimmed: %q", order.ShippingAddress)
	}
	if got := len(env.notificationsFor(t, seller.ID, constants.NotificationOrderCreated)); got != 1 {
		t.Fatalf("expected order_created notification, got %d", got)
	}
	if got := len(env.notificationsFor(t, seller.ID, constants.NotificationItemSold)); got != 1 {
		t.Fatalf("expected item_sold notification, got %d", got)
	}
}

func TestOrderServiceCreateRejectsInvalidInput(t *testing.T) {
	svc, env := setupOrderServiceTest(t)
	seller := env.createUser(t, "seller")
	buyer := env.createUser(t, "buyer")
	item := env.createItem(t, seller.ID, "Chair", 80, nil)

	cases := []struct {
		name    string
		buyerID uint
		input   CreateOrderInput
		want    error
	}{
		{"missing item", buyer.ID, CreateOrderInput{}, ErrOrderInvalid},
		{"negative quantity", buyer.ID, CreateOrderInput{ItemID: item.ID, Quantity: -1}, ErrOrderInvalid},
		{"unknown item", buyer.ID, CreateOrderInput{ItemID: 9999}, ErrItemNotFound},
		{"own item", seller.ID, CreateOrderInput{ItemID: item.ID}, ErrOrderOwnItem},
	}
	for _, tc := range cases {
		if _, err := svc.Create(tc.buyerID, tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestOrderServiceStatusAndCancel(t *testing.T) {
	svc, env := setupOrderServiceTest(t)
	seller := env.createUser(t, "seller")
	buyer := env.createUser(t, "buyer")
	item := env.createItem(t, seller.ID, "Bike", 2500, nil)

	order, err := svc.Create(buyer.ID, CreateOrderInput{ItemID: item.ID})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := svc.UpdateStatus(buyer.ID, order.ID, constants.OrderStatusConfirmed); !errors.Is(err, ErrOrderNotSeller) {
		t.Fatalf("expected not seller, got %v", err)
	}
	if _, err := svc.UpdateStatus(seller.ID, order.ID, "teleported"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected invalid status, got %v", err)
	}
	updated, err := svc.UpdateStatus(seller.ID, order.ID, "Shipped")
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.OrderStatusShipped {
		t.Fatalf("unexpected status: %s", updated.Status)
	}
	if got := len(env.notificationsFor(t, buyer.ID, constants.NotificationOrderUpdated)); got != 1 {
		t.Fatalf("expected order_updated notification, got %d", got)
	}
	if _, err := svc.Cancel(buyer.ID, order.ID); !errors.Is(err, ErrOrderCannotCancel) {
		t.Fatalf("expected cannot cancel shipped order, got %v", err)
	}

	second, err := svc.Create(buyer.ID, CreateOrderInput{ItemID: item.ID})
	if err != nil {
		t.Fatalf("create second order failed: %v", err)
	}
	if _, err := svc.Cancel(seller.ID, second.ID); !errors.Is(err, ErrOrderNotBuyer) {
		t.Fatalf("expected not buyer, got %v", err)
	}
	cancelled, err := svc.Cancel(buyer.ID, second.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("unexpected status after cancel: %s", cancelled.Status)
	}
	rows := env.notificationsFor(t, seller.ID, constants.NotificationOrderCancelled)
	if len(rows) != 1 || rows[0].Priority != constants.NotificationPriorityHigh {
		t.Fatalf("expected one high priority cancellation notice, got %+v", rows)
	}
}

func TestOrderServiceBuyerScope(t *testing.T) {
	svc, env := setupOrderServiceTest(t)
	seller := env.createUser(t, "seller")
	buyer := env.createUser(t, "buyer")
	other := env.createUser(t, "other")
	item := env.createItem(t, seller.ID, "Kettle", 300, nil)

	order, err := svc.Create(buyer.ID, CreateOrderInput{ItemID: item.ID})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := svc.GetForBuyer(other.ID, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected not found for other user, got %v", err)
	}
	notes := "leave at the door"
	updated, err := svc.Update(buyer.ID, order.ID, UpdateOrderInput{Notes: &notes})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Notes != notes {
		t.Fatalf("notes not updated: %q", updated.Notes)
	}
	sales, total, err := svc.ListForSeller(seller.ID, 1, 20)
	if err != nil || total != 1 || len(sales) != 1 {
		t.Fatalf("unexpected seller list: total=%d err=%v", total, err)
	}
	if err := svc.Delete(other.ID, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected delete by other to fail, got %v", err)
	}
	if err := svc.Delete(buyer.ID, order.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	_, total, err = svc.ListForBuyer(buyer.ID, 1, 20)
	if err != nil || total != 0 {
		t.Fatalf("expected no orders after delete: total=%d err=%v", total, err)
	}
}
