package queue

import (
	"encoding/json"

	"github.com/ait-marketplace/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskNotificationDispatch 站内通知派发任务
	TaskNotificationDispatch = constants.TaskNotificationDispatch
	// TaskEmailSend 邮件发送任务
	TaskEmailSend = constants.TaskEmailSend
	// TaskAnnouncementBroadcast 系统公告广播任务
	TaskAnnouncementBroadcast = constants.TaskAnnouncementBroadcast
)

// NotificationDispatchPayload 通知派发任务载荷
// Data 用于渲染通知模板
type NotificationDispatchPayload struct {
	UserID             uint              `json:"user_id"`
	Type               string            `json:"type"`
	Title              string            `json:"title"`
	Message            string            `json:"message"`
	Priority           string            `json:"priority"`
	RelatedItemID      *uint             `json:"related_item_id,omitempty"`
	RelatedOrderID     *uint             `json:"related_order_id,omitempty"`
	RelatedBarterID    *uint             `json:"related_barter_id,omitempty"`
	RelatedForumPostID *uint             `json:"related_forum_post_id,omitempty"`
	Data               map[string]string `json:"data,omitempty"`
}

// EmailSendPayload 邮件任务载荷
type EmailSendPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// AnnouncementBroadcastPayload 系统公告任务载荷
type AnnouncementBroadcastPayload struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// NewNotificationDispatchTask 创建通知派发任务
func NewNotificationDispatchTask(payload NotificationDispatchPayload) (*asynq.Task, error) {
	return newJSONTask(TaskNotificationDispatch, payload)
}

// NewEmailSendTask 创建邮件任务
func NewEmailSendTask(payload EmailSendPayload) (*asynq.Task, error) {
	return newJSONTask(TaskEmailSend, payload)
}

// NewAnnouncementBroadcastTask 创建公告广播任务
func NewAnnouncementBroadcastTask(payload AnnouncementBroadcastPayload) (*asynq.Task, error) {
	return newJSONTask(TaskAnnouncementBroadcast, payload)
}

func newJSONTask(taskType string, payload interface{}) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, body), nil
}
