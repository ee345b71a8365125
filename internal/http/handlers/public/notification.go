package public

import (
	handlershared "github.com/ait-marketplace/internal/http/handlers/shared"
	"github.com/ait-marketplace/internal/http/response"
	"github.com/ait-marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// NotificationPatchRequest 通知更新请求（仅已读状态可改）
type NotificationPatchRequest struct {
	IsRead *bool `json:"is_read" binding:"required"`
}

// NotificationCreateRequest 自建通知请求
type NotificationCreateRequest struct {
	NotificationType string `json:"notification_type"`
	Title            string `json:"title" binding:"required"`
	Message          string `json:"message" binding:"required"`
	Priority         string `json:"priority"`
	RelatedItemID    *uint  `json:"related_item"`
	RelatedOrderID   *uint  `json:"related_order"`
}

// ListNotifications 通知列表
func (h *Handler) ListNotifications(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.QueryPagination(c)
	notifications, total, err := h.NotificationService.List(service.NotificationListInput{
		UserID:   uid,
		Page:     page,
		PageSize: pageSize,
		IsRead:   handlershared.QueryBool(c, "is_read"),
		Type:     c.Query("type"),
		Priority: c.Query("priority"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.notification_fetch_failed", err)
		return
	}
	respondPage(c, notifications, page, pageSize, total)
}

// GetNotification 通知详情
func (h *Handler) GetNotification(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	notification, err := h.NotificationService.Get(uid, id)
	if err != nil {
		respondWithMappedError(c, err, notificationErrorRules, "error.notification_fetch_failed")
		return
	}
	response.Success(c, notification)
}

// PatchNotification 修改已读状态
func (h *Handler) PatchNotification(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req NotificationPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	notification, err := h.NotificationService.SetRead(uid, id, *req.IsRead)
	if err != nil {
		respondWithMappedError(c, err, notificationErrorRules, "error.notification_update_failed")
		return
	}
	response.Success(c, notification)
}

// DeleteNotification 删除通知
func (h *Handler) DeleteNotification(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.NotificationService.Delete(uid, id); err != nil {
		respondWithMappedError(c, err, notificationErrorRules, "error.notification_update_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// MarkNotificationRead 标记已读，read_at 只写一次
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	notification, err := h.NotificationService.MarkRead(uid, id)
	if err != nil {
		respondWithMappedError(c, err, notificationErrorRules, "error.notification_update_failed")
		return
	}
	response.Success(c, notification)
}

// MarkAllNotificationsRead 全部标记已读
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	updated, err := h.NotificationService.MarkAllRead(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.notification_update_failed", err)
		return
	}
	response.Success(c, gin.H{"updated": updated})
}

// GetUnreadNotificationCount 未读数量
func (h *Handler) GetUnreadNotificationCount(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	count, err := h.NotificationService.UnreadCount(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.notification_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"unread_count": count})
}

// GetNotificationStats 通知统计
func (h *Handler) GetNotificationStats(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	stats, err := h.NotificationService.Stats(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.notification_fetch_failed", err)
		return
	}
	response.Success(c, stats)
}

// CreateNotification 给自己创建一条通知
func (h *Handler) CreateNotification(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req NotificationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	notification, err := h.NotificationService.CreateForSelf(uid, service.NotificationCreateInput{
		NotificationType: req.NotificationType,
		Title:            req.Title,
		Message:          req.Message,
		Priority:         req.Priority,
		RelatedItemID:    req.RelatedItemID,
		RelatedOrderID:   req.RelatedOrderID,
	})
	if err != nil {
		respondWithMappedError(c, err, notificationErrorRules, "error.notification_create_failed")
		return
	}
	response.Created(c, notification)
}

// GetNotificationSettings 获取通知偏好（不存在时创建）
func (h *Handler) GetNotificationSettings(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	setting, err := h.NotificationService.GetSettings(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.notification_fetch_failed", err)
		return
	}
	response.Success(c, setting)
}

// UpdateNotificationSettings 更新通知偏好
func (h *Handler) UpdateNotificationSettings(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var patch map[string]bool
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	setting, err := h.NotificationService.UpdateSettings(uid, patch)
	if err != nil {
		respondWithMappedError(c, err, notificationErrorRules, "error.notification_update_failed")
		return
	}
	response.Success(c, setting)
}
