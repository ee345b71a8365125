package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"
)

func setupAdminServiceTest(t *testing.T) (*AdminService, *marketplaceTestEnv) {
	t.Helper()
	env := setupMarketplaceServiceTest(t, "admin_service_test")
	svc := NewAdminService(
		env.db,
		env.users,
		env.items,
		repository.NewOrderRepository(env.db),
		repository.NewStatisticsRepository(env.db),
	)
	return svc, env
}

func TestAdminServiceBulkAction(t *testing.T) {
	svc, env := setupAdminServiceTest(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	first := env.createItem(t, alice.ID, "Lamp", 100, nil)
	second := env.createItem(t, bob.ID, "Fan", 200, nil)

	invalid := []BulkActionInput{
		{Action: "explode", ItemIDs: []uint{first.ID}},
		{Action: constants.BulkActionDeactivateItems},
		{Action: constants.BulkActionVerifyUsers, ItemIDs: []uint{first.ID}},
	}
	for _, input := range invalid {
		if _, err := svc.BulkAction(ctx, input); !errors.Is(err, ErrBulkActionInvalid) {
			t.Fatalf("action %q: expected invalid, got %v", input.Action, err)
		}
	}

	result, err := svc.BulkAction(ctx, BulkActionInput{Action: constants.BulkActionDeactivateItems, ItemIDs: []uint{first.ID, second.ID}})
	if err != nil {
		t.Fatalf("deactivate items failed: %v", err)
	}
	if result.Updated != 2 {
		t.Fatalf("expected 2 updated items, got %d", result.Updated)
	}
	var available int64
	env.db.Model(&models.Item{}).Where("is_available = ?", true).Count(&available)
	if available != 0 {
		t.Fatalf("items should be deactivated, %d still available", available)
	}

	result, err = svc.BulkAction(ctx, BulkActionInput{Action: constants.BulkActionDeactivateUsers, UserIDs: []uint{bob.ID}})
	if err != nil || result.Updated != 1 {
		t.Fatalf("deactivate users failed: %v", err)
	}
	reloaded, err := env.users.GetByID(bob.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if reloaded.IsActive {
		t.Fatalf("bob should be inactive")
	}

	active := false
	views, total, err := svc.ListUsers(AdminUserListInput{Page: 1, PageSize: 20, IsActive: &active})
	if err != nil || total != 1 || len(views) != 1 || views[0].ID != bob.ID {
		t.Fatalf("expected only bob to be inactive, total=%d err=%v", total, err)
	}
	if views[0].Items != 1 {
		t.Fatalf("expected item count 1 for bob, got %d", views[0].Items)
	}
}

func TestAdminServicePanelActions(t *testing.T) {
	svc, env := setupAdminServiceTest(t)
	ctx := context.Background()
	user := env.createUser(t, "carol")
	item := env.createItem(t, user.ID, "Guitar", 3500, nil)

	toggled, err := svc.PanelUserAction(ctx, user.ID, constants.PanelUserToggleActive)
	if err != nil || toggled.IsActive {
		t.Fatalf("toggle active failed: active=%v err=%v", toggled != nil && toggled.IsActive, err)
	}
	if _, err := svc.PanelUserAction(ctx, user.ID, "promote"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid action, got %v", err)
	}
	if _, err := svc.PanelUserAction(ctx, 9999, constants.PanelUserVerify); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}

	featured, err := svc.PanelItemAction(item.ID, constants.PanelItemToggleFeatured)
	if err != nil || !featured.IsFeatured {
		t.Fatalf("toggle featured failed: %v", err)
	}
	hidden, err := svc.PanelItemAction(item.ID, constants.PanelItemToggleAvailable)
	if err != nil || hidden.IsAvailable {
		t.Fatalf("toggle available failed: %v", err)
	}
	if _, err := svc.PanelItemAction(item.ID, constants.PanelItemDelete); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.PanelItemAction(item.ID, constants.PanelItemToggleFeatured); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("deleted item should be gone, got %v", err)
	}
}

func TestAdminServicePanelDashboardAndHealth(t *testing.T) {
	svc, env := setupAdminServiceTest(t)
	seller := env.createUser(t, "seller")
	env.createItem(t, seller.ID, "Camera", 5200, nil)
	env.grantMembership(t, seller.ID)

	dashboard, err := svc.PanelDashboard()
	if err != nil {
		t.Fatalf("panel dashboard failed: %v", err)
	}
	if dashboard.TotalUsers != 1 || dashboard.TotalItems != 1 || dashboard.ActiveMemberships != 1 {
		t.Fatalf("unexpected totals: %+v", dashboard)
	}
	if len(dashboard.Growth) != 3 || dashboard.Growth[0].ThisWeek != 1 || dashboard.Growth[0].Percent != 100 {
		t.Fatalf("unexpected growth: %+v", dashboard.Growth)
	}
	if len(dashboard.Daily) != 7 {
		t.Fatalf("expected 7 daily buckets, got %d", len(dashboard.Daily))
	}
	if last := dashboard.Daily[6]; last.Date != time.Now().Format("2006-01-02") {
		t.Fatalf("last bucket should be today, got %s", last.Date)
	}
	var items int64
	for _, bucket := range dashboard.Daily {
		items += bucket.Items
	}
	if items != 1 {
		t.Fatalf("expected one item across daily buckets, got %d", items)
	}

	health := svc.SystemHealth(context.Background())
	if health.Status != "healthy" || health.Database != "connected" || health.Redis != "disabled" {
		t.Fatalf("unexpected health: %+v", health)
	}
}

func TestGrowthPercent(t *testing.T) {
	cases := []struct {
		current, previous int64
		want              float64
	}{
		{0, 0, 0},
		{3, 0, 100},
		{15, 10, 50},
		{5, 10, -50},
	}
	for _, tc := range cases {
		if got := growthPercent(tc.current, tc.previous); got != tc.want {
			t.Fatalf("growthPercent(%d, %d) = %v, want %v", tc.current, tc.previous, got, tc.want)
		}
	}
}
