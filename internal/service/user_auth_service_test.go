package service

import (
	"errors"
	"testing"
	"time"

	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"

	"github.com/shopspring/decimal"
)

func closeTo(a, b time.Time) bool {
	return a.Sub(b).Abs() < time.Minute
}

func TestUserAuthServicePurchaseMembership(t *testing.T) {
	env := setupMarketplaceServiceTest(t, "membership_purchase")
	svc := NewUserAuthService(env.cfg, env.users, nil)
	user := env.createUser(t, "member")

	if _, err := svc.PurchaseMembership(user.ID, 13); !errors.Is(err, ErrMembershipMonthsInvalid) {
		t.Fatalf("13 months should be rejected, got %v", err)
	}
	if _, err := svc.PurchaseMembership(user.ID, -1); !errors.Is(err, ErrMembershipMonthsInvalid) {
		t.Fatalf("negative months should be rejected, got %v", err)
	}
	if _, err := svc.PurchaseMembership(9999, 1); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown user should fail, got %v", err)
	}

	before := time.Now()
	view, err := svc.PurchaseMembership(user.ID, 0)
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if !view.IsValid || view.Membership == nil {
		t.Fatalf("membership should be valid: %+v", view)
	}
	if !view.Membership.Price.Decimal.Equal(decimal.NewFromInt(199)) {
		t.Fatalf("zero months defaults to one month, price=%s", view.Membership.Price.String())
	}
	if !closeTo(view.Membership.EndDate, before.Add(30*24*time.Hour)) {
		t.Fatalf("unexpected end date: %v", view.Membership.EndDate)
	}
	firstEnd := view.Membership.EndDate

	renewed, err := svc.PurchaseMembership(user.ID, 3)
	if err != nil {
		t.Fatalf("renew failed: %v", err)
	}
	if !renewed.Membership.Price.Decimal.Equal(decimal.NewFromInt(597)) {
		t.Fatalf("price should be months x monthly price, got %s", renewed.Membership.Price.String())
	}
	if !closeTo(renewed.Membership.EndDate, firstEnd.Add(90*24*time.Hour)) {
		t.Fatalf("renewal should extend from current end date, got %v want %v", renewed.Membership.EndDate, firstEnd.Add(90*24*time.Hour))
	}
	if renewed.Membership.ID != view.Membership.ID {
		t.Fatalf("renewal should reuse the membership row")
	}

	twelve, err := svc.PurchaseMembership(user.ID, 12)
	if err != nil || !twelve.Membership.Price.Decimal.Equal(decimal.NewFromInt(2388)) {
		t.Fatalf("12 months should be accepted, view=%+v err=%v", twelve, err)
	}

	var count int64
	if err := env.db.Model(&models.UserMembership{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil || count != 1 {
		t.Fatalf("expected one membership row, got %d err=%v", count, err)
	}
}

func TestUserAuthServicePurchaseMembershipAfterExpiry(t *testing.T) {
	env := setupMarketplaceServiceTest(t, "membership_expired")
	svc := NewUserAuthService(env.cfg, env.users, nil)
	user := env.createUser(t, "lapsed")

	expired := &models.UserMembership{
		UserID:    user.ID,
		StartDate: time.Now().AddDate(0, -3, 0),
		EndDate:   time.Now().AddDate(0, 0, -10),
		IsActive:  true,
		Price:     models.NewMoneyFromDecimal(decimal.NewFromInt(199)),
	}
	if err := env.db.Create(expired).Error; err != nil {
		t.Fatalf("create membership failed: %v", err)
	}
	if member, err := svc.IsMember(user.ID); err != nil || member {
		t.Fatalf("expired membership must not count, member=%v err=%v", member, err)
	}

	now := time.Now()
	view, err := svc.PurchaseMembership(user.ID, 2)
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if !closeTo(view.Membership.StartDate, now) || !closeTo(view.Membership.EndDate, now.Add(60*24*time.Hour)) {
		t.Fatalf("expired membership should restart from now: start=%v end=%v", view.Membership.StartDate, view.Membership.EndDate)
	}
	if member, err := svc.IsMember(user.ID); err != nil || !member {
		t.Fatalf("renewed membership should count, member=%v err=%v", member, err)
	}
}

func TestItemServiceSetFeaturedRequiresMembership(t *testing.T) {
	env := setupMarketplaceServiceTest(t, "item_featured")
	userAuth := NewUserAuthService(env.cfg, env.users, nil)
	svc := NewItemService(
		env.items,
		repository.NewCategoryRepository(env.db),
		repository.NewWishlistRepository(env.db),
		userAuth,
		env.notifier,
	)
	seller := env.createUser(t, "seller")
	other := env.createUser(t, "other")
	item := env.createItem(t, seller.ID, "Desk lamp", 300, nil)

	if _, err := svc.SetFeatured(seller.ID, item.ID); !errors.Is(err, ErrMembershipRequired) {
		t.Fatalf("featuring without membership should fail, got %v", err)
	}
	var stored models.Item
	if err := env.db.First(&stored, item.ID).Error; err != nil || stored.IsFeatured {
		t.Fatalf("item must stay unfeatured, featured=%v err=%v", stored.IsFeatured, err)
	}

	env.grantMembership(t, seller.ID)
	env.grantMembership(t, other.ID)
	if _, err := svc.SetFeatured(other.ID, item.ID); !errors.Is(err, ErrItemNotOwner) {
		t.Fatalf("only the owner can feature, got %v", err)
	}
	featured, err := svc.SetFeatured(seller.ID, item.ID)
	if err != nil || !featured.IsFeatured {
		t.Fatalf("member should feature item, item=%+v err=%v", featured, err)
	}

	unfeatured, err := svc.UnsetFeatured(seller.ID, item.ID)
	if err != nil || unfeatured.IsFeatured {
		t.Fatalf("unset featured failed, item=%+v err=%v", unfeatured, err)
	}
	if err := env.db.First(&stored, item.ID).Error; err != nil || stored.IsFeatured {
		t.Fatalf("item should be unfeatured, featured=%v err=%v", stored.IsFeatured, err)
	}
}
