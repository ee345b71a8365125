package service

import (
	"errors"
	"testing"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/repository"
)

func setupChatServiceTest(t *testing.T) (*ChatService, *marketplaceTestEnv) {
	t.Helper()
	env := setupMarketplaceServiceTest(t, "chat_service_test")
	return NewChatService(repository.NewMessageRepository(env.db), env.users, env.items, env.notifier), env
}

func TestChatServiceSendValidation(t *testing.T) {
	svc, env := setupChatServiceTest(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	missingItem := uint(9999)

	cases := []struct {
		name  string
		input SendMessageInput
		want  error
	}{
		{"empty text", SendMessageInput{ReceiverID: bob.ID, Text: "   "}, ErrMessageInvalid},
		{"no receiver", SendMessageInput{Text: "hi"}, ErrMessageInvalid},
		{"self", SendMessageInput{ReceiverID: alice.ID, Text: "hi"}, ErrMessageSelf},
		{"unknown receiver", SendMessageInput{ReceiverID: 9999, Text: "hi"}, ErrUserNotFound},
		{"unknown item", SendMessageInput{ReceiverID: bob.ID, ItemID: &missingItem, Text: "hi"}, ErrItemNotFound},
	}
	for _, tc := range cases {
		if _, err := svc.Send(alice.ID, tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestChatServiceConversationFlow(t *testing.T) {
	svc, env := setupChatServiceTest(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	item := env.createItem(t, bob.ID, "Monitor", 2000, nil)

	itemID := item.ID
	first, err := svc.Send(alice.ID, SendMessageInput{ReceiverID: bob.ID, ItemID: &itemID, Text: " Is the monitor available? "})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if first.Text != "Is the monitor available?" {
		t.Fatalf("text not trimmed: %q", first.Text)
	}
	notices := env.notificationsFor(t, bob.ID, constants.NotificationMessageReceived)
	if len(notices) != 1 {
		t.Fatalf("expected message_received notification, got %d", len(notices))
	}
	if _, err := svc.Send(bob.ID, SendMessageInput{ReceiverID: alice.ID, Text: "Yes it is"}); err != nil {
		t.Fatalf("reply failed: %v", err)
	}
	if _, err := svc.Send(carol.ID, SendMessageInput{ReceiverID: alice.ID, Text: "Hello"}); err != nil {
		t.Fatalf("send from carol failed: %v", err)
	}

	conversations, err := svc.Conversations(alice.ID)
	if err != nil {
		t.Fatalf("conversations failed: %v", err)
	}
	if len(conversations) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(conversations))
	}

	messages, total, err := svc.List(MessageListInput{UserID: alice.ID, WithUser: bob.ID})
	if err != nil || total != 2 || len(messages) != 2 {
		t.Fatalf("unexpected thread: total=%d err=%v", total, err)
	}

	if _, err := svc.Get(carol.ID, first.ID); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("outsider must not read the message, got %v", err)
	}
	if err := svc.Delete(bob.ID, first.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("receiver must not delete, got %v", err)
	}
	if err := svc.Delete(alice.ID, first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}
