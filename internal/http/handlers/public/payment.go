package public

import (
	"io"
	"strings"

	handlershared "github.com/ait-marketplace/internal/http/handlers/shared"
	"github.com/ait-marketplace/internal/http/response"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const webhookMaxBodyBytes = 1 << 20

// PaymentMethodRequest 支付方式请求
type PaymentMethodRequest struct {
	PaymentType *string                `json:"payment_type"`
	Name        *string                `json:"name"`
	IsDefault   *bool                  `json:"is_default"`
	IsActive    *bool                  `json:"is_active"`
	Details     map[string]interface{} `json:"details"`
}

func (r PaymentMethodRequest) toServiceInput() service.PaymentMethodInput {
	return service.PaymentMethodInput{
		PaymentType: r.PaymentType,
		Name:        r.Name,
		IsDefault:   r.IsDefault,
		IsActive:    r.IsActive,
		Details:     r.Details,
	}
}

// CreateIntentRequest 创建支付意图请求
type CreateIntentRequest struct {
	OrderID         uint `json:"order_id"`
	PaymentMethodID uint `json:"payment_method_id"`
}

// RefundRequest 退款请求，amount 缺省为全额
type RefundRequest struct {
	Amount *models.Money `json:"amount"`
	Reason string        `json:"reason"`
}

// ListPaymentMethods 我的支付方式
func (h *Handler) ListPaymentMethods(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	methods, err := h.PaymentService.ListMethods(uid, "")
	if err != nil {
		respondError(c, response.CodeInternal, "error.payment_fetch_failed", err)
		return
	}
	response.Success(c, methods)
}

// ListPaymentMethodsByType 按类型筛选支付方式
func (h *Handler) ListPaymentMethodsByType(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	methods, err := h.PaymentService.ListMethods(uid, strings.TrimSpace(c.Param("type")))
	if err != nil {
		respondError(c, response.CodeInternal, "error.payment_fetch_failed", err)
		return
	}
	response.Success(c, methods)
}

// CreatePaymentMethod 新增支付方式
func (h *Handler) CreatePaymentMethod(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	method, err := h.PaymentService.CreateMethod(uid, req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, paymentErrorRules, "error.payment_save_failed")
		return
	}
	response.Created(c, method)
}

// GetPaymentMethod 支付方式详情（含解密后的账户信息）
func (h *Handler) GetPaymentMethod(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	method, err := h.PaymentService.GetMethod(uid, id)
	if err != nil {
		respondWithMappedError(c, err, paymentErrorRules, "error.payment_fetch_failed")
		return
	}
	details, err := h.PaymentService.MethodDetails(method)
	if err != nil {
		respondError(c, response.CodeInternal, "error.payment_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"method":  method,
		"details": details,
	})
}

// UpdatePaymentMethod 修改支付方式
func (h *Handler) UpdatePaymentMethod(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	method, err := h.PaymentService.UpdateMethod(uid, id, req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, paymentErrorRules, "error.payment_save_failed")
		return
	}
	response.Success(c, method)
}

// DeletePaymentMethod 删除支付方式
func (h *Handler) DeletePaymentMethod(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.PaymentService.DeleteMethod(uid, id); err != nil {
		respondWithMappedError(c, err, paymentErrorRules, "error.payment_save_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListPayments 我的支付记录
func (h *Handler) ListPayments(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.QueryPagination(c)
	payments, total, err := h.PaymentService.List(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.payment_fetch_failed", err)
		return
	}
	respondPage(c, payments, page, pageSize, total)
}

// GetPayment 支付详情
func (h *Handler) GetPayment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	payment, err := h.PaymentService.Get(uid, id)
	if err != nil {
		respondWithMappedError(c, err, paymentErrorRules, "error.payment_fetch_failed")
		return
	}
	response.Success(c, payment)
}

// CreatePaymentIntent 为订单创建支付并返回网关跳转地址
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if req.OrderID == 0 || req.PaymentMethodID == 0 {
		respondError(c, response.CodeBadRequest, "error.payment_invalid", nil)
		return
	}
	intent, err := h.PaymentService.CreateIntent(uid, req.OrderID, req.PaymentMethodID)
	if err != nil {
		respondWithMappedError(c, err, paymentErrorRules, "error.payment_create_failed")
		return
	}
	response.Success(c, intent)
}

// RefundPayment 发起退款
func (h *Handler) RefundPayment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req RefundRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
	}
	var amount *decimal.Decimal
	if req.Amount != nil {
		value := req.Amount.Decimal
		amount = &value
	}
	refund, err := h.PaymentService.Refund(uid, id, amount, req.Reason)
	if err != nil {
		respondWithMappedError(c, err, paymentErrorRules, "error.refund_failed")
		return
	}
	response.Created(c, refund)
}

// ListRefunds 我的退款记录
func (h *Handler) ListRefunds(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.QueryPagination(c)
	refunds, total, err := h.PaymentService.ListRefunds(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.payment_fetch_failed", err)
		return
	}
	respondPage(c, refunds, page, pageSize, total)
}

// PaymentWebhook 支付网关回调（无需登录）
func (h *Handler) PaymentWebhook(c *gin.Context) {
	log := handlershared.RequestLog(c)
	provider := strings.ToLower(strings.TrimSpace(c.Param("provider")))
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, webhookMaxBodyBytes))
	if err != nil {
		log.Warnw("payment_webhook_body_read_failed", "provider", provider, "error", err)
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	log.Infow("payment_webhook_received",
		"provider", provider,
		"client_ip", c.ClientIP(),
		"body_size", len(body),
	)
	webhook, err := h.PaymentService.HandleWebhook(service.WebhookInput{
		Provider:    provider,
		Body:        body,
		ContentType: c.ContentType(),
	})
	if err != nil {
		log.Warnw("payment_webhook_handle_failed", "provider", provider, "error", err)
		respondWithMappedError(c, err, paymentErrorRules, "error.webhook_failed")
		return
	}
	response.Success(c, gin.H{
		"accepted":   true,
		"event_type": webhook.EventType,
		"processed":  webhook.Processed,
	})
}
