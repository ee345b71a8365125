package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/ait-marketplace/internal/logger"
	"github.com/ait-marketplace/internal/provider"
	"github.com/ait-marketplace/internal/queue"
	"github.com/ait-marketplace/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskNotificationDispatch, c.handleNotificationDispatch)
	mux.HandleFunc(queue.TaskEmailSend, c.handleEmailSend)
	mux.HandleFunc(queue.TaskAnnouncementBroadcast, c.handleAnnouncementBroadcast)
}

func (c *Consumer) handleNotificationDispatch(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_notification_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.NotificationDispatchPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_notification_unmarshal_failed", "error", err)
		return err
	}
	if payload.UserID == 0 || strings.TrimSpace(payload.Type) == "" {
		logger.Debugw("worker_notification_skip_invalid_payload", "user_id", payload.UserID, "type", payload.Type)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_notification_skip_service_nil", "user_id", payload.UserID)
		return nil
	}
	if _, err := c.NotificationService.Deliver(payload); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			logger.Debugw("worker_notification_skip_user_not_found", "user_id", payload.UserID)
			return nil
		}
		logger.Warnw("worker_notification_deliver_failed",
			"user_id", payload.UserID,
			"type", payload.Type,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleEmailSend(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.EmailSendPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_email_unmarshal_failed", "error", err)
		return err
	}
	receiver := strings.TrimSpace(payload.To)
	if receiver == "" {
		logger.Debugw("worker_email_skip_empty_receiver")
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_email_skip_service_nil", "receiver_email", receiver)
		return nil
	}
	if err := c.EmailService.SendEmail(receiver, payload.Subject, payload.Body); err != nil {
		switch {
		case errors.Is(err, service.ErrEmailServiceDisabled), errors.Is(err, service.ErrEmailServiceNotConfigured):
			logger.Debugw("worker_email_skip_disabled", "receiver_email", receiver)
			return nil
		case errors.Is(err, service.ErrEmailRecipientRejected):
			logger.Warnw("worker_email_recipient_rejected", "receiver_email", receiver, "error", err)
			return nil
		default:
			logger.Warnw("worker_email_send_failed", "receiver_email", receiver, "error", err)
			return err
		}
	}
	return nil
}

func (c *Consumer) handleAnnouncementBroadcast(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.AnnouncementBroadcastPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_announcement_unmarshal_failed", "error", err)
		return err
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_announcement_skip_service_nil")
		return nil
	}
	sent, err := c.NotificationService.BroadcastAnnouncement(payload)
	if err != nil {
		logger.Warnw("worker_announcement_failed", "sent", sent, "error", err)
		return err
	}
	logger.Infow("worker_announcement_done", "sent", sent)
	return nil
}
