package public

import (
	handlershared "github.com/ait-marketplace/internal/http/handlers/shared"
	"github.com/ait-marketplace/internal/http/response"
	"github.com/ait-marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 下单请求，item 与 item_id 均可
type CreateOrderRequest struct {
	Item            uint   `json:"item"`
	ItemID          uint   `json:"item_id"`
	Quantity        int    `json:"quantity"`
	ShippingAddress string `json:"shipping_address"`
	Notes           string `json:"notes"`
}

// UpdateOrderRequest 买家修改订单请求
type UpdateOrderRequest struct {
	ShippingAddress *string `json:"shipping_address"`
	Notes           *string `json:"notes"`
}

// OrderStatusRequest 卖家更新状态请求
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateOrder 创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	itemID := req.Item
	if itemID == 0 {
		itemID = req.ItemID
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	order, err := h.OrderService.Create(uid, service.CreateOrderInput{
		ItemID:          itemID,
		Quantity:        quantity,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	})
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, "error.order_create_failed")
		return
	}
	response.Created(c, order)
}

// ListOrders 我买到的订单
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.QueryPagination(c)
	orders, total, err := h.OrderService.ListForBuyer(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	respondPage(c, orders, page, pageSize, total)
}

// ListSellerOrders 我卖出的订单
func (h *Handler) ListSellerOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.QueryPagination(c)
	orders, total, err := h.OrderService.ListForSeller(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	respondPage(c, orders, page, pageSize, total)
}

// GetOrder 订单详情（买家）
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetForBuyer(uid, id)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, "error.order_fetch_failed")
		return
	}
	response.Success(c, order)
}

// UpdateOrder 买家修改收货地址与备注
func (h *Handler) UpdateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	order, err := h.OrderService.Update(uid, id, service.UpdateOrderInput{
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	})
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, "error.order_update_failed")
		return
	}
	response.Success(c, order)
}

// DeleteOrder 买家删除订单
func (h *Handler) DeleteOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.OrderService.Delete(uid, id); err != nil {
		respondWithMappedError(c, err, orderErrorRules, "error.order_update_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// UpdateOrderStatus 卖家推进订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	order, err := h.OrderService.UpdateStatus(uid, id, req.Status)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, "error.order_update_failed")
		return
	}
	response.Success(c, order)
}

// CancelOrder 买家取消订单
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.Cancel(uid, id)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, "error.order_update_failed")
		return
	}
	response.Success(c, order)
}
