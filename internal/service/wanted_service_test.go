package service

import (
	"errors"
	"testing"
	"time"

	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"
)

func setupWantedServiceTest(t *testing.T) (*WantedService, *marketplaceTestEnv) {
	t.Helper()
	env := setupMarketplaceServiceTest(t, "wanted_service_test")
	auth := NewUserAuthService(env.cfg, env.users, nil)
	return NewWantedService(env.cfg, repository.NewWantedRepository(env.db), auth, nil), env
}

func wantedInput(title string) WantedInput {
	return WantedInput{Title: strPtr(title), Description: strPtr(title + " needed")}
}

func TestWantedServiceFreeQuotaForNonMember(t *testing.T) {
	svc, env := setupWantedServiceTest(t)
	user := env.createUser(t, "student")

	info, err := svc.PostInfo(user.ID)
	if err != nil {
		t.Fatalf("post info failed: %v", err)
	}
	if info.IsPremium || !info.CanPostFree || info.FreePostsRemaining != 1 {
		t.Fatalf("unexpected initial info: %+v", info)
	}

	first, err := svc.Create(user.ID, wantedInput("Mini fridge"))
	if err != nil {
		t.Fatalf("create free post failed: %v", err)
	}
	if !first.IsFreePost || !first.PaidAmount.Decimal.IsZero() {
		t.Fatalf("expected free post, got %+v", first)
	}

	if _, err := svc.Create(user.ID, wantedInput("Rice cooker")); !errors.Is(err, ErrWantedPaymentRequired) {
		t.Fatalf("expected payment required, got %v", err)
	}
	underpaid := wantedInput("Rice cooker")
	underpaid.PaidAmount = moneyPtr(10)
	if _, err := svc.Create(user.ID, underpaid); !errors.Is(err, ErrWantedPaymentRequired) {
		t.Fatalf("expected underpayment to be rejected, got %v", err)
	}
	paid := wantedInput("Rice cooker")
	paid.PaidAmount = moneyPtr(20)
	second, err := svc.Create(user.ID, paid)
	if err != nil {
		t.Fatalf("create paid post failed: %v", err)
	}
	if second.IsFreePost || second.PaidAmount.String() != "20.00" {
		t.Fatalf("expected paid post, got %+v", second)
	}

	info, err = svc.PostInfo(user.ID)
	if err != nil {
		t.Fatalf("post info failed: %v", err)
	}
	if info.FreePostsUsed != 1 || info.CanPostFree {
		t.Fatalf("paid posts must not consume the free quota: %+v", info)
	}
}

func TestWantedServiceMemberQuotaAndMonthReset(t *testing.T) {
	svc, env := setupWantedServiceTest(t)
	user := env.createUser(t, "member")
	env.grantMembership(t, user.ID)

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(user.ID, wantedInput("Item")); err != nil {
			t.Fatalf("member free post %d failed: %v", i, err)
		}
	}
	if _, err := svc.Create(user.ID, wantedInput("Sixth")); !errors.Is(err, ErrWantedPaymentRequired) {
		t.Fatalf("expected sixth post to require payment, got %v", err)
	}

	svc.now = func() time.Time { return time.Now().AddDate(0, 1, 0) }
	info, err := svc.PostInfo(user.ID)
	if err != nil {
		t.Fatalf("post info failed: %v", err)
	}
	if !info.IsPremium || info.FreePostsRemaining != 5 {
		t.Fatalf("quota should reset next month: %+v", info)
	}
}

func TestWantedServiceOwnership(t *testing.T) {
	svc, env := setupWantedServiceTest(t)
	owner := env.createUser(t, "owner")
	other := env.createUser(t, "other")

	post, err := svc.Create(owner.ID, wantedInput("Textbook"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Update(other.ID, post.ID, WantedInput{Title: strPtr("Hijack")}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden update, got %v", err)
	}
	updated, err := svc.Update(owner.ID, post.ID, WantedInput{Title: strPtr("Used textbook"), PaidAmount: moneyPtr(999)})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "Used textbook" || !updated.PaidAmount.Decimal.IsZero() {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if err := svc.Delete(other.ID, post.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden delete, got %v", err)
	}
	_, total, err := svc.List(WantedListInput{ViewerID: owner.ID, My: true})
	if err != nil || total != 1 {
		t.Fatalf("unexpected list: total=%d err=%v", total, err)
	}
	if err := svc.Delete(owner.ID, post.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(post.ID); !errors.Is(err, ErrWantedNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestWantedServiceHidesInactivePosts(t *testing.T) {
	svc, env := setupWantedServiceTest(t)
	owner := env.createUser(t, "owner")

	post, err := svc.Create(owner.ID, wantedInput("Bicycle"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Update(owner.ID, post.ID, WantedInput{IsActive: boolPtr(false)}); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := svc.Get(post.ID); !errors.Is(err, ErrWantedNotFound) {
		t.Fatalf("inactive post should not be found, got %v", err)
	}
	if _, err := svc.Update(owner.ID, post.ID, WantedInput{Title: strPtr("Road bike")}); !errors.Is(err, ErrWantedNotFound) {
		t.Fatalf("inactive post should not be editable, got %v", err)
	}
	if err := svc.Delete(owner.ID, post.ID); !errors.Is(err, ErrWantedNotFound) {
		t.Fatalf("inactive post should not be deletable, got %v", err)
	}
	var stored models.WantedItem
	if err := env.db.First(&stored, post.ID).Error; err != nil || stored.IsActive {
		t.Fatalf("row should remain inactive, active=%v err=%v", stored.IsActive, err)
	}
}
