package admin

import (
	"github.com/ait-marketplace/internal/http/response"
	"github.com/ait-marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// NotificationTemplateRequest 通知模板请求
type NotificationTemplateRequest struct {
	NotificationType     string `json:"notification_type" binding:"required"`
	TitleTemplate        string `json:"title_template" binding:"required"`
	MessageTemplate      string `json:"message_template" binding:"required"`
	EmailSubjectTemplate string `json:"email_subject_template"`
	EmailBodyTemplate    string `json:"email_body_template"`
	IsActive             *bool  `json:"is_active"`
}

func (r NotificationTemplateRequest) toServiceInput() service.NotificationTemplateInput {
	return service.NotificationTemplateInput{
		NotificationType:     r.NotificationType,
		TitleTemplate:        r.TitleTemplate,
		MessageTemplate:      r.MessageTemplate,
		EmailSubjectTemplate: r.EmailSubjectTemplate,
		EmailBodyTemplate:    r.EmailBodyTemplate,
		IsActive:             r.IsActive,
	}
}

// AnnouncementRequest 系统公告请求
type AnnouncementRequest struct {
	Title    string `json:"title" binding:"required"`
	Message  string `json:"message" binding:"required"`
	Priority string `json:"priority"`
}

// ListNotificationTemplates 模板列表
func (h *Handler) ListNotificationTemplates(c *gin.Context) {
	templates, err := h.NotificationService.ListTemplates()
	if err != nil {
		respondError(c, response.CodeInternal, "error.notification_fetch_failed", err)
		return
	}
	response.Success(c, templates)
}

// CreateNotificationTemplate 新建模板
func (h *Handler) CreateNotificationTemplate(c *gin.Context) {
	var req NotificationTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	template, err := h.NotificationService.SaveTemplate(0, req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, notificationAdminErrorRules, "error.notification_template_save_failed")
		return
	}
	response.Created(c, template)
}

// UpdateNotificationTemplate 更新模板
func (h *Handler) UpdateNotificationTemplate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req NotificationTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	template, err := h.NotificationService.SaveTemplate(id, req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, notificationAdminErrorRules, "error.notification_template_save_failed")
		return
	}
	response.Success(c, template)
}

// DeleteNotificationTemplate 删除模板
func (h *Handler) DeleteNotificationTemplate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.NotificationService.DeleteTemplate(id); err != nil {
		respondWithMappedError(c, err, notificationAdminErrorRules, "error.notification_template_save_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// CreateAnnouncement 向全部启用用户发布系统公告
func (h *Handler) CreateAnnouncement(c *gin.Context) {
	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	queued, sent, err := h.NotificationService.Announce(req.Title, req.Message, req.Priority)
	if err != nil {
		respondWithMappedError(c, err, notificationAdminErrorRules, "error.announcement_failed")
		return
	}
	requestLog(c).Infow("admin_announcement_published",
		"operator_admin_id", currentAdminID(c),
		"queued", queued,
		"sent", sent,
	)
	response.Created(c, gin.H{
		"queued": queued,
		"sent":   sent,
	})
}
