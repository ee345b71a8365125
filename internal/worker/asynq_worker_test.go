package worker

import (
	"context"
	"testing"

	"github.com/ait-marketplace/internal/config"
	"github.com/ait-marketplace/internal/provider"
	"github.com/ait-marketplace/internal/queue"
	"github.com/ait-marketplace/internal/service"

	"github.com/hibiken/asynq"
)

func TestHandleNotificationDispatchRejectsMalformedPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskNotificationDispatch, []byte("{not-json"))
	if err := consumer.handleNotificationDispatch(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}

func TestHandleNotificationDispatchSkipsInvalidPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task, err := queue.NewNotificationDispatchTask(queue.NotificationDispatchPayload{Type: "order_update"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleNotificationDispatch(context.Background(), task); err != nil {
		t.Fatalf("expected payload without user to be skipped, got %v", err)
	}

	task, err = queue.NewNotificationDispatchTask(queue.NotificationDispatchPayload{UserID: 7, Type: "order_update"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleNotificationDispatch(context.Background(), task); err != nil {
		t.Fatalf("expected nil service to be skipped, got %v", err)
	}
}

func TestHandleEmailSendSkipsWhenDisabled(t *testing.T) {
	consumer := NewConsumer(&provider.Container{
		EmailService: service.NewEmailService(&config.EmailConfig{Enabled: false}),
	})
	task, err := queue.NewEmailSendTask(queue.EmailSendPayload{
		To:      "st123456@ait.ac.th",
		Subject: "Order update",
		Body:    "Your order has shipped.",
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleEmailSend(context.Background(), task); err != nil {
		t.Fatalf("expected disabled email to be skipped, got %v", err)
	}
}

func TestHandleEmailSendSkipsEmptyReceiver(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task, err := queue.NewEmailSendTask(queue.EmailSendPayload{To: "  ", Subject: "x"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleEmailSend(context.Background(), task); err != nil {
		t.Fatalf("expected empty receiver to be skipped, got %v", err)
	}
}

func TestHandleAnnouncementBroadcastWithoutService(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task, err := queue.NewAnnouncementBroadcastTask(queue.AnnouncementBroadcastPayload{Title: "Maintenance", Message: "Tonight"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleAnnouncementBroadcast(context.Background(), task); err != nil {
		t.Fatalf("expected nil service to be skipped, got %v", err)
	}
}

func TestRegisterNilSafe(t *testing.T) {
	var consumer *Consumer
	consumer.Register(asynq.NewServeMux())
	NewConsumer(&provider.Container{}).Register(nil)
}
