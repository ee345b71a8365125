package service

import (
	"errors"
	"testing"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"
)

func setupBarterServiceTest(t *testing.T) (*BarterService, *marketplaceTestEnv) {
	t.Helper()
	env := setupMarketplaceServiceTest(t, "barter_service_test")
	return NewBarterService(repository.NewBarterRepository(env.db), env.items, env.notifier), env
}

func barterable(item *models.Item) { item.AllowBarter = true }

func TestBarterServiceCreateValidation(t *testing.T) {
	svc, env := setupBarterServiceTest(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	aliceItem := env.createItem(t, alice.ID, "Skateboard", 900, nil)
	bobItem := env.createItem(t, bob.ID, "Helmet", 700, barterable)
	bobPlain := env.createItem(t, bob.ID, "Poster", 100, nil)

	cases := []struct {
		name      string
		user      uint
		offered   uint
		requested uint
		want      error
	}{
		{"same item", alice.ID, aliceItem.ID, aliceItem.ID, ErrBarterInvalid},
		{"unknown offer", alice.ID, 9999, bobItem.ID, ErrItemNotFound},
		{"offer not owned", alice.ID, bobPlain.ID, bobItem.ID, ErrBarterOfferNotOwned},
		{"self request", bob.ID, bobPlain.ID, bobItem.ID, ErrBarterSelfRequest},
		{"not barter eligible", alice.ID, aliceItem.ID, bobPlain.ID, ErrBarterNotEligible},
	}
	for _, tc := range cases {
		if _, err := svc.Create(tc.user, tc.offered, tc.requested); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestBarterServiceAcceptComplete(t *testing.T) {
	svc, env := setupBarterServiceTest(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	aliceItem := env.createItem(t, alice.ID, "Skateboard", 900, nil)
	bobItem := env.createItem(t, bob.ID, "Helmet", 700, barterable)

	barter, err := svc.Create(alice.ID, aliceItem.ID, bobItem.ID)
	if err != nil {
		t.Fatalf("create barter failed: %v", err)
	}
	if barter.ResponderID != bob.ID || barter.Status != constants.BarterStatusPending {
		t.Fatalf("unexpected barter: %+v", barter)
	}
	if got := len(env.notificationsFor(t, bob.ID, constants.NotificationBarterRequest)); got != 1 {
		t.Fatalf("expected barter_request notification, got %d", got)
	}
	if _, err := svc.Get(carol.ID, barter.ID); !errors.Is(err, ErrBarterNotParticipant) {
		t.Fatalf("expected outsider to be denied, got %v", err)
	}
	if _, err := svc.Accept(alice.ID, barter.ID); !errors.Is(err, ErrBarterNotParticipant) {
		t.Fatalf("requester must not accept, got %v", err)
	}
	if _, err := svc.Complete(alice.ID, barter.ID); !errors.Is(err, ErrBarterStatusInvalid) {
		t.Fatalf("pending barter must not complete, got %v", err)
	}

	accepted, err := svc.Accept(bob.ID, barter.ID)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if accepted.Status != constants.BarterStatusAccepted {
		t.Fatalf("unexpected status: %s", accepted.Status)
	}
	if _, err := svc.Reject(bob.ID, barter.ID); !errors.Is(err, ErrBarterStatusInvalid) {
		t.Fatalf("accepted barter must not be rejected, got %v", err)
	}
	if got := len(env.notificationsFor(t, alice.ID, constants.NotificationBarterAccepted)); got != 1 {
		t.Fatalf("expected barter_accepted notification, got %d", got)
	}

	completed, err := svc.Complete(alice.ID, barter.ID)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Status != constants.BarterStatusCompleted {
		t.Fatalf("unexpected status: %s", completed.Status)
	}
	var available int64
	if err := env.db.Model(&models.Item{}).
		Where("id IN ? AND is_available = ?", []uint{aliceItem.ID, bobItem.ID}, true).
		Count(&available).Error; err != nil {
		t.Fatalf("count items failed: %v", err)
	}
	if available != 0 {
		t.Fatalf("both items should be unavailable after completion, got %d available", available)
	}
}

func TestBarterServiceRejectAndWithdraw(t *testing.T) {
	svc, env := setupBarterServiceTest(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	aliceItem := env.createItem(t, alice.ID, "Keyboard", 400, nil)
	bobItem := env.createItem(t, bob.ID, "Mouse", 300, func(item *models.Item) { item.IsBarter = true })

	first, err := svc.Create(alice.ID, aliceItem.ID, bobItem.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	rejected, err := svc.Reject(bob.ID, first.ID)
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != constants.BarterStatusRejected {
		t.Fatalf("unexpected status: %s", rejected.Status)
	}
	if err := svc.Delete(alice.ID, first.ID); !errors.Is(err, ErrBarterStatusInvalid) {
		t.Fatalf("only pending barters can be withdrawn, got %v", err)
	}

	second, err := svc.Create(alice.ID, aliceItem.ID, bobItem.ID)
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}
	if err := svc.Delete(bob.ID, second.ID); !errors.Is(err, ErrBarterNotParticipant) {
		t.Fatalf("responder must not withdraw, got %v", err)
	}
	if err := svc.Delete(alice.ID, second.ID); err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
	list, total, err := svc.List(bob.ID, 1, 20)
	if err != nil || total != 1 || len(list) != 1 {
		t.Fatalf("unexpected list after withdraw: total=%d err=%v", total, err)
	}
}
