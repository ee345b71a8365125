package admin

import (
	handlershared "github.com/ait-marketplace/internal/http/handlers/shared"
	"github.com/ait-marketplace/internal/http/response"
	"github.com/ait-marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// BulkActionRequest 批量操作请求
type BulkActionRequest struct {
	Action  string `json:"action" binding:"required"`
	ItemIDs []uint `json:"item_ids"`
	UserIDs []uint `json:"user_ids"`
}

// ListUsers 用户列表（含商品/订单/销售计数）
func (h *Handler) ListUsers(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	users, total, err := h.AdminService.ListUsers(service.AdminUserListInput{
		Page:       page,
		PageSize:   pageSize,
		Search:     c.Query("search"),
		IsVerified: handlershared.QueryBool(c, "is_verified"),
		IsActive:   handlershared.QueryBool(c, "is_active"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}
	handlershared.RespondPage(c, users, page, pageSize, total)
}

// ListItems 商品列表
func (h *Handler) ListItems(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	items, total, err := h.AdminService.ListItems(service.AdminItemListInput{
		Page:        page,
		PageSize:    pageSize,
		Search:      c.Query("search"),
		Category:    c.Query("category"),
		IsAvailable: handlershared.QueryBool(c, "is_available"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.item_fetch_failed", err)
		return
	}
	handlershared.RespondPage(c, items, page, pageSize, total)
}

// ListOrders 订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	orders, total, err := h.AdminService.ListOrders(service.AdminOrderListInput{
		Page:          page,
		PageSize:      pageSize,
		Search:        c.Query("search"),
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	handlershared.RespondPage(c, orders, page, pageSize, total)
}

// BulkAction 批量上下架商品、认证或停用用户
func (h *Handler) BulkAction(c *gin.Context) {
	var req BulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	result, err := h.AdminService.BulkAction(c.Request.Context(), service.BulkActionInput{
		Action:  req.Action,
		ItemIDs: req.ItemIDs,
		UserIDs: req.UserIDs,
	})
	if err != nil {
		respondWithMappedError(c, err, bulkActionErrorRules, "error.bulk_action_failed")
		return
	}
	requestLog(c).Infow("admin_bulk_action",
		"operator_admin_id", currentAdminID(c),
		"action", result.Action,
		"updated", result.Updated,
	)
	response.Success(c, result)
}
