package service

import (
	"errors"
	"testing"
	"time"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"
)

func createTestNotification(t *testing.T, env *marketplaceTestEnv, userID uint, notificationType string, mutate func(n *models.Notification)) *models.Notification {
	t.Helper()
	notification := &models.Notification{
		UserID:           userID,
		NotificationType: notificationType,
		Title:            "Title " + notificationType,
		Message:          "Message " + notificationType,
		Priority:         constants.NotificationPriorityMedium,
	}
	if mutate != nil {
		mutate(notification)
	}
	if err := env.db.Create(notification).Error; err != nil {
		t.Fatalf("create notification failed: %v", err)
	}
	return notification
}

func TestNotificationServiceMarkReadKeepsFirstReadAt(t *testing.T) {
	env := setupMarketplaceServiceTest(t, "notification_mark_read")
	svc := env.notifier
	user := env.createUser(t, "reader")
	other := env.createUser(t, "other")
	notification := createTestNotification(t, env, user.ID, constants.NotificationOrderUpdated, nil)

	first, err := svc.MarkRead(user.ID, notification.ID)
	if err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	if !first.IsRead || first.ReadAt == nil {
		t.Fatalf("notification should be read: %+v", first)
	}
	readAt := *first.ReadAt

	time.Sleep(5 * time.Millisecond)
	second, err := svc.MarkRead(user.ID, notification.ID)
	if err != nil {
		t.Fatalf("second mark read failed: %v", err)
	}
	if second.ReadAt == nil || !second.ReadAt.Equal(readAt) {
		t.Fatalf("read_at must be written once, first=%v second=%v", readAt, second.ReadAt)
	}

	if _, err := svc.MarkRead(other.ID, notification.ID); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("notifications are private, got %v", err)
	}
}

func TestNotificationServiceMarkReadPersistsMissingReadAt(t *testing.T) {
	env := setupMarketplaceServiceTest(t, "notification_read_at_missing")
	user := env.createUser(t, "reader")
	notification := createTestNotification(t, env, user.ID, constants.NotificationOrderUpdated, func(n *models.Notification) {
		n.IsRead = true
	})

	marked, err := env.notifier.MarkRead(user.ID, notification.ID)
	if err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	var stored models.Notification
	if err := env.db.First(&stored, notification.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.ReadAt == nil || !stored.IsRead {
		t.Fatalf("read_at should be stored: %+v", stored)
	}
	if marked.ReadAt == nil || !marked.ReadAt.Equal(*stored.ReadAt) {
		t.Fatalf("response read_at should match stored value, got %v want %v", marked.ReadAt, stored.ReadAt)
	}
}

func TestNotificationServiceCountsAndMarkAll(t *testing.T) {
	env := setupMarketplaceServiceTest(t, "notification_counts")
	svc := env.notifier
	user := env.createUser(t, "counter")
	other := env.createUser(t, "stranger")

	readAt := time.Now().Add(-time.Hour)
	alreadyRead := createTestNotification(t, env, user.ID, constants.NotificationOrderUpdated, func(n *models.Notification) {
		n.IsRead = true
		n.ReadAt = &readAt
	})
	createTestNotification(t, env, user.ID, constants.NotificationOrderUpdated, nil)
	createTestNotification(t, env, user.ID, constants.NotificationSystemAnnouncement, nil)
	createTestNotification(t, env, user.ID, constants.NotificationSystemAnnouncement, func(n *models.Notification) {
		n.CreatedAt = time.Now().AddDate(0, 0, -30)
	})
	createTestNotification(t, env, other.ID, constants.NotificationOrderUpdated, nil)

	unread, err := svc.UnreadCount(user.ID)
	if err != nil || unread != 3 {
		t.Fatalf("expected 3 unread, got %d err=%v", unread, err)
	}
	stats, err := svc.Stats(user.ID)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Total != 4 || stats.Unread != 3 || stats.Recent != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.ByType[constants.NotificationOrderUpdated] != 2 || stats.ByType[constants.NotificationSystemAnnouncement] != 2 {
		t.Fatalf("unexpected by type: %+v", stats.ByType)
	}

	updated, err := svc.MarkAllRead(user.ID)
	if err != nil || updated != 3 {
		t.Fatalf("expected 3 updated, got %d err=%v", updated, err)
	}
	if unread, _ := svc.UnreadCount(user.ID); unread != 0 {
		t.Fatalf("expected no unread after mark all, got %d", unread)
	}
	if unread, _ := svc.UnreadCount(other.ID); unread != 1 {
		t.Fatalf("other users are untouched, got %d", unread)
	}
	var stored models.Notification
	if err := env.db.First(&stored, alreadyRead.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.ReadAt == nil || stored.ReadAt.Sub(readAt).Abs() > time.Second {
		t.Fatalf("existing read_at must be kept, got %v want %v", stored.ReadAt, readAt)
	}
}

func TestNotificationServiceSettingsGetOrCreate(t *testing.T) {
	env := setupMarketplaceServiceTest(t, "notification_settings")
	svc := env.notifier
	user := env.createUser(t, "prefs")

	setting, err := svc.GetSettings(user.ID)
	if err != nil {
		t.Fatalf("get settings failed: %v", err)
	}
	if !setting.EmailOrderUpdates || !setting.InAppSystemAnnouncements {
		t.Fatalf("defaults should be enabled: %+v", setting)
	}
	again, err := svc.GetSettings(user.ID)
	if err != nil || again.ID != setting.ID {
		t.Fatalf("settings should be created once, first=%d again=%+v err=%v", setting.ID, again, err)
	}

	updated, err := svc.UpdateSettings(user.ID, map[string]bool{"email_messages": false})
	if err != nil {
		t.Fatalf("update settings failed: %v", err)
	}
	if updated.EmailMessages || !updated.PushMessages {
		t.Fatalf("only email_messages should change: %+v", updated)
	}
	if _, err := svc.UpdateSettings(user.ID, map[string]bool{"sms_everything": true}); !errors.Is(err, ErrNotificationInvalid) {
		t.Fatalf("unknown field should be rejected, got %v", err)
	}

	var count int64
	if err := env.db.Model(&models.NotificationSetting{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil || count != 1 {
		t.Fatalf("expected one settings row, got %d err=%v", count, err)
	}
}
