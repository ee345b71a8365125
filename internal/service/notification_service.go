package service

import (
	"bytes"
	"errors"
	"strings"
	"text/template"
	"time"

	"github.com/ait-marketplace/internal/config"
	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/logger"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/queue"
	"github.com/ait-marketplace/internal/repository"
)

// NotificationService 站内通知服务
// 领域事件通过队列派发，队列未启用时同步落库
type NotificationService struct {
	cfg            *config.Config
	repo           repository.NotificationRepository
	userRepo       repository.UserRepository
	settingService *SettingService
	queueClient    *queue.Client
}

// NewNotificationService 创建通知服务
func NewNotificationService(
	cfg *config.Config,
	repo repository.NotificationRepository,
	userRepo repository.UserRepository,
	settingService *SettingService,
	queueClient *queue.Client,
) *NotificationService {
	return &NotificationService{
		cfg:            cfg,
		repo:           repo,
		userRepo:       userRepo,
		settingService: settingService,
		queueClient:    queueClient,
	}
}

// NotificationListInput 通知列表参数
type NotificationListInput struct {
	UserID   uint
	Page     int
	PageSize int
	IsRead   *bool
	Type     string
	Priority string
}

// NotificationCreateInput 用户自建通知参数
type NotificationCreateInput struct {
	NotificationType string
	Title            string
	Message          string
	Priority         string
	RelatedItemID    *uint
	RelatedOrderID   *uint
}

// NotificationTemplateInput 通知模板参数
type NotificationTemplateInput struct {
	NotificationType     string
	TitleTemplate        string
	MessageTemplate      string
	EmailSubjectTemplate string
	EmailBodyTemplate    string
	IsActive             *bool
}

// Notify 派发领域事件通知，失败只记录日志
func (s *NotificationService) Notify(payload queue.NotificationDispatchPayload) {
	if s == nil || payload.UserID == 0 {
		return
	}
	if payload.Priority == "" {
		payload.Priority = constants.NotificationPriorityMedium
	}
	err := s.queueClient.EnqueueNotification(payload)
	if err == nil {
		return
	}
	if !errors.Is(err, queue.ErrQueueDisabled) {
		logger.Warnw("notification_enqueue_failed", "user_id", payload.UserID, "type", payload.Type, "error", err)
	}
	if _, err := s.Deliver(payload); err != nil {
		logger.Warnw("notification_inline_deliver_failed", "user_id", payload.UserID, "type", payload.Type, "error", err)
	}
}

// Deliver 渲染模板并落库，按用户偏好决定是否站内展示与邮件推送
// 用户关闭对应站内通知时返回 nil, nil
func (s *NotificationService) Deliver(payload queue.NotificationDispatchPayload) (*models.Notification, error) {
	notificationType := strings.TrimSpace(payload.Type)
	if !containsString(constants.NotificationTypes, notificationType) {
		return nil, ErrNotificationInvalid
	}
	user, err := s.userRepo.GetByID(payload.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	setting, err := s.repo.GetOrCreateSetting(user.ID)
	if err != nil {
		return nil, err
	}
	if !inAppEnabled(setting, notificationType) {
		return nil, nil
	}

	rendered := s.render(notificationType, payload)
	priority := normalizePriority(payload.Priority)
	notification := &models.Notification{
		UserID:             user.ID,
		NotificationType:   notificationType,
		Title:              truncateRunes(rendered.Title, 200),
		Message:            rendered.Message,
		Priority:           priority,
		RelatedItemID:      payload.RelatedItemID,
		RelatedOrderID:     payload.RelatedOrderID,
		RelatedBarterID:    payload.RelatedBarterID,
		RelatedForumPostID: payload.RelatedForumPostID,
	}
	if err := s.repo.Create(notification); err != nil {
		return nil, err
	}

	if emailEnabled(setting, notificationType) && s.smtpEnabled() && user.AITEmail != "" {
		if err := s.sendEmail(user.AITEmail, rendered.EmailSubject, rendered.EmailBody); err != nil {
			logger.Warnw("notification_email_dispatch_failed", "notification_id", notification.ID, "error", err)
		} else if err := s.repo.MarkSent(notification.ID); err != nil {
			logger.Warnw("notification_mark_sent_failed", "notification_id", notification.ID, "error", err)
		} else {
			notification.IsSent = true
		}
	}
	return notification, nil
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	payload := queue.EmailSendPayload{To: to, Subject: subject, Body: body}
	err := s.queueClient.EnqueueEmail(payload)
	if errors.Is(err, queue.ErrQueueDisabled) {
		email := NewEmailService(nil)
		if s.settingService != nil {
			smtp, loadErr := s.settingService.GetSMTPSetting(s.cfg.Email)
			if loadErr != nil {
				return loadErr
			}
			runtimeCfg := SMTPSettingToConfig(smtp)
			email.SetConfig(&runtimeCfg)
		}
		return email.SendEmail(to, subject, body)
	}
	return err
}

func (s *NotificationService) smtpEnabled() bool {
	if s.settingService == nil || s.cfg == nil {
		return false
	}
	smtp, err := s.settingService.GetSMTPSetting(s.cfg.Email)
	if err != nil {
		return false
	}
	return smtp.Enabled
}

// Announce 发布系统公告，队列未启用时同步广播
func (s *NotificationService) Announce(title, message, priority string) (queued bool, sent int, err error) {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	if title == "" || message == "" {
		return false, 0, ErrAnnouncementInvalid
	}
	payload := queue.AnnouncementBroadcastPayload{
		Title:    title,
		Message:  message,
		Priority: normalizePriority(priority),
	}
	err = s.queueClient.EnqueueAnnouncement(payload)
	if err == nil {
		return true, 0, nil
	}
	if !errors.Is(err, queue.ErrQueueDisabled) {
		return false, 0, ErrQueueUnavailable
	}
	sent, err = s.BroadcastAnnouncement(payload)
	return false, sent, err
}

// BroadcastAnnouncement 向所有启用用户发送系统公告
func (s *NotificationService) BroadcastAnnouncement(payload queue.AnnouncementBroadcastPayload) (int, error) {
	ids, err := s.userRepo.ListActiveIDs()
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, id := range ids {
		notification, err := s.Deliver(queue.NotificationDispatchPayload{
			UserID:   id,
			Type:     constants.NotificationSystemAnnouncement,
			Title:    payload.Title,
			Message:  payload.Message,
			Priority: payload.Priority,
		})
		if err != nil {
			logger.Warnw("announcement_deliver_failed", "user_id", id, "error", err)
			continue
		}
		if notification != nil {
			sent++
		}
	}
	return sent, nil
}

type renderedNotification struct {
	Title        string
	Message      string
	EmailSubject string
	EmailBody    string
}

// render 优先使用启用的模板，模板缺失或渲染失败时回退到事件自带文本
func (s *NotificationService) render(notificationType string, payload queue.NotificationDispatchPayload) renderedNotification {
	result := renderedNotification{
		Title:        payload.Title,
		Message:      payload.Message,
		EmailSubject: payload.Title,
		EmailBody:    payload.Message,
	}
	tpl, err := s.repo.GetActiveTemplate(notificationType)
	if err != nil {
		logger.Warnw("notification_template_load_failed", "type", notificationType, "error", err)
		return result
	}
	if tpl == nil {
		return result
	}
	data := map[string]string{
		"title":   payload.Title,
		"message": payload.Message,
	}
	for k, v := range payload.Data {
		data[k] = v
	}
	result.Title = renderText(tpl.TitleTemplate, data, result.Title)
	result.Message = renderText(tpl.MessageTemplate, data, result.Message)
	result.EmailSubject = renderText(tpl.EmailSubjectTemplate, data, result.Title)
	result.EmailBody = renderText(tpl.EmailBodyTemplate, data, result.Message)
	return result
}

func renderText(source string, data map[string]string, fallback string) string {
	if strings.TrimSpace(source) == "" {
		return fallback
	}
	tpl, err := template.New("notification").Option("missingkey=zero").Parse(source)
	if err != nil {
		return fallback
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return fallback
	}
	text := strings.TrimSpace(buf.String())
	if text == "" {
		return fallback
	}
	return text
}

func inAppEnabled(setting *models.NotificationSetting, notificationType string) bool {
	switch notificationGroup(notificationType) {
	case "order":
		return setting.InAppOrderUpdates
	case "payment":
		return setting.InAppPaymentUpdates
	case "barter":
		return setting.InAppBarterUpdates
	case "message":
		return setting.InAppMessages
	case "forum":
		return setting.InAppForumReplies
	default:
		return setting.InAppSystemAnnouncements
	}
}

func emailEnabled(setting *models.NotificationSetting, notificationType string) bool {
	switch notificationGroup(notificationType) {
	case "order":
		return setting.EmailOrderUpdates
	case "payment":
		return setting.EmailPaymentUpdates
	case "barter":
		return setting.EmailBarterUpdates
	case "message":
		return setting.EmailMessages
	case "forum":
		return setting.EmailForumReplies
	default:
		return setting.EmailSystemAnnouncements
	}
}

func notificationGroup(notificationType string) string {
	switch notificationType {
	case constants.NotificationOrderCreated, constants.NotificationOrderUpdated,
		constants.NotificationOrderCancelled, constants.NotificationItemSold:
		return "order"
	case constants.NotificationPaymentReceived:
		return "payment"
	case constants.NotificationBarterRequest, constants.NotificationBarterAccepted, constants.NotificationBarterRejected:
		return "barter"
	case constants.NotificationMessageReceived:
		return "message"
	case constants.NotificationForumReply:
		return "forum"
	default:
		return "system"
	}
}

func normalizePriority(priority string) string {
	priority = strings.ToLower(strings.TrimSpace(priority))
	switch priority {
	case constants.NotificationPriorityLow, constants.NotificationPriorityMedium,
		constants.NotificationPriorityHigh, constants.NotificationPriorityUrgent:
		return priority
	default:
		return constants.NotificationPriorityMedium
	}
}

func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}

// List 当前用户通知列表
func (s *NotificationService) List(input NotificationListInput) ([]models.Notification, int64, error) {
	return s.repo.List(repository.NotificationListFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
		UserID:   input.UserID,
		IsRead:   input.IsRead,
		Type:     strings.TrimSpace(input.Type),
		Priority: strings.TrimSpace(input.Priority),
	})
}

// Get 获取单条通知
func (s *NotificationService) Get(userID, id uint) (*models.Notification, error) {
	notification, err := s.repo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, ErrNotificationNotFound
	}
	return notification, nil
}

// SetRead 更新已读状态
func (s *NotificationService) SetRead(userID, id uint, read bool) (*models.Notification, error) {
	notification, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if read {
		return s.MarkRead(userID, id)
	}
	notification.IsRead = false
	notification.ReadAt = nil
	if err := s.repo.Update(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// MarkRead 标记已读，read_at 只写入一次
func (s *NotificationService) MarkRead(userID, id uint) (*models.Notification, error) {
	notification, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if notification.ReadAt != nil {
		if !notification.IsRead {
			notification.IsRead = true
			if err := s.repo.Update(notification); err != nil {
				return nil, err
			}
		}
		return notification, nil
	}
	if err := s.repo.MarkRead(id, userID, time.Now()); err != nil {
		return nil, err
	}
	return s.Get(userID, id)
}

// MarkAllRead 全部标记已读
func (s *NotificationService) MarkAllRead(userID uint) (int64, error) {
	return s.repo.MarkAllRead(userID, time.Now())
}

// Delete 删除通知
func (s *NotificationService) Delete(userID, id uint) error {
	if _, err := s.Get(userID, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// UnreadCount 未读数量
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.repo.CountUnread(userID)
}

// Stats 通知统计（近 7 天）
func (s *NotificationService) Stats(userID uint) (repository.NotificationStatsRow, error) {
	return s.repo.Stats(userID, time.Now().AddDate(0, 0, -7))
}

// CreateForSelf 用户为自己创建通知
func (s *NotificationService) CreateForSelf(userID uint, input NotificationCreateInput) (*models.Notification, error) {
	notificationType := strings.TrimSpace(input.NotificationType)
	title := strings.TrimSpace(input.Title)
	message := strings.TrimSpace(input.Message)
	if !containsString(constants.NotificationTypes, notificationType) || title == "" || message == "" {
		return nil, ErrNotificationInvalid
	}
	notification := &models.Notification{
		UserID:           userID,
		NotificationType: notificationType,
		Title:            truncateRunes(title, 200),
		Message:          message,
		Priority:         normalizePriority(input.Priority),
		RelatedItemID:    input.RelatedItemID,
		RelatedOrderID:   input.RelatedOrderID,
	}
	if err := s.repo.Create(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// GetSettings 获取通知偏好（不存在时创建默认）
func (s *NotificationService) GetSettings(userID uint) (*models.NotificationSetting, error) {
	return s.repo.GetOrCreateSetting(userID)
}

// UpdateSettings 按字段名更新通知偏好
func (s *NotificationService) UpdateSettings(userID uint, patch map[string]bool) (*models.NotificationSetting, error) {
	setting, err := s.repo.GetOrCreateSetting(userID)
	if err != nil {
		return nil, err
	}
	fields := notificationSettingFields(setting)
	for key, value := range patch {
		target, ok := fields[key]
		if !ok {
			return nil, ErrNotificationInvalid
		}
		*target = value
	}
	if err := s.repo.UpdateSetting(setting); err != nil {
		return nil, err
	}
	return setting, nil
}

func notificationSettingFields(setting *models.NotificationSetting) map[string]*bool {
	return map[string]*bool{
		"email_order_updates":         &setting.EmailOrderUpdates,
		"email_payment_updates":       &setting.EmailPaymentUpdates,
		"email_barter_updates":        &setting.EmailBarterUpdates,
		"email_messages":              &setting.EmailMessages,
		"email_forum_replies":         &setting.EmailForumReplies,
		"email_system_announcements":  &setting.EmailSystemAnnouncements,
		"push_order_updates":          &setting.PushOrderUpdates,
		"push_payment_updates":        &setting.PushPaymentUpdates,
		"push_barter_updates":         &setting.PushBarterUpdates,
		"push_messages":               &setting.PushMessages,
		"push_forum_replies":          &setting.PushForumReplies,
		"push_system_announcements":   &setting.PushSystemAnnouncements,
		"in_app_order_updates":        &setting.InAppOrderUpdates,
		"in_app_payment_updates":      &setting.InAppPaymentUpdates,
		"in_app_barter_updates":       &setting.InAppBarterUpdates,
		"in_app_messages":             &setting.InAppMessages,
		"in_app_forum_replies":        &setting.InAppForumReplies,
		"in_app_system_announcements": &setting.InAppSystemAnnouncements,
	}
}

// ListTemplates 模板列表
func (s *NotificationService) ListTemplates() ([]models.NotificationTemplate, error) {
	return s.repo.ListTemplates()
}

// SaveTemplate 创建或更新模板，id 为 0 时创建
func (s *NotificationService) SaveTemplate(id uint, input NotificationTemplateInput) (*models.NotificationTemplate, error) {
	notificationType := strings.TrimSpace(input.NotificationType)
	if !containsString(constants.NotificationTypes, notificationType) {
		return nil, ErrNotificationTemplateInvalid
	}
	if strings.TrimSpace(input.TitleTemplate) == "" || strings.TrimSpace(input.MessageTemplate) == "" {
		return nil, ErrNotificationTemplateInvalid
	}
	for _, source := range []string{input.TitleTemplate, input.MessageTemplate, input.EmailSubjectTemplate, input.EmailBodyTemplate} {
		if _, err := template.New("check").Parse(source); err != nil {
			return nil, ErrNotificationTemplateInvalid
		}
	}

	tpl := &models.NotificationTemplate{IsActive: true}
	if id != 0 {
		existing, err := s.repo.GetTemplate(id)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrNotificationTemplateNotFound
		}
		tpl = existing
	}
	tpl.NotificationType = notificationType
	tpl.TitleTemplate = strings.TrimSpace(input.TitleTemplate)
	tpl.MessageTemplate = strings.TrimSpace(input.MessageTemplate)
	tpl.EmailSubjectTemplate = strings.TrimSpace(input.EmailSubjectTemplate)
	tpl.EmailBodyTemplate = strings.TrimSpace(input.EmailBodyTemplate)
	if input.IsActive != nil {
		tpl.IsActive = *input.IsActive
	}
	if err := s.repo.SaveTemplate(tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// DeleteTemplate 删除模板
func (s *NotificationService) DeleteTemplate(id uint) error {
	tpl, err := s.repo.GetTemplate(id)
	if err != nil {
		return err
	}
	if tpl == nil {
		return ErrNotificationTemplateNotFound
	}
	return s.repo.DeleteTemplate(id)
}
