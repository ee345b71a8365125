package service

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ait-marketplace/internal/config"
	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/logger"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/payment/alipay"
	"github.com/ait-marketplace/internal/payment/paypal"
	"github.com/ait-marketplace/internal/queue"
	"github.com/ait-marketplace/internal/repository"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentService 支付服务
type PaymentService struct {
	cfg         *config.Config
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	notifier    *NotificationService
	alipayCfg   *alipay.Config
	paypalCfg   *paypal.Config
	now         func() time.Time
}

// NewPaymentService 创建支付服务
func NewPaymentService(cfg *config.Config, paymentRepo repository.PaymentRepository, orderRepo repository.OrderRepository, notifier *NotificationService) *PaymentService {
	var paymentCfg config.PaymentConfig
	if cfg != nil {
		paymentCfg = cfg.Payment
	}
	return &PaymentService{
		cfg:         cfg,
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		notifier:    notifier,
		alipayCfg:   alipay.FromConfig(paymentCfg.Alipay),
		paypalCfg:   paypal.FromConfig(paymentCfg.Paypal),
		now:         time.Now,
	}
}

// PaymentMethodInput 支付方式参数
type PaymentMethodInput struct {
	PaymentType *string
	Name        *string
	IsDefault   *bool
	IsActive    *bool
	Details     map[string]interface{}
}

// PaymentIntent 支付意图结果
type PaymentIntent struct {
	PaymentID   uint   `json:"payment_id"`
	Status      string `json:"status"`
	RedirectURL string `json:"redirect_url"`
}

// WebhookInput 支付回调输入
type WebhookInput struct {
	Provider    string
	Body        []byte
	ContentType string
}

func (s *PaymentService) detailsSecret() string {
	if s.cfg == nil {
		return ""
	}
	return s.cfg.UserJWT.SecretKey
}

// ListMethods 当前用户启用的支付方式，可按类型过滤
func (s *PaymentService) ListMethods(userID uint, paymentType string) ([]models.PaymentMethod, error) {
	return s.paymentRepo.ListMethods(userID, paymentType)
}

// GetMethod 获取自己的支付方式
func (s *PaymentService) GetMethod(userID, id uint) (*models.PaymentMethod, error) {
	method, err := s.paymentRepo.GetMethod(id, userID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, ErrPaymentMethodNotFound
	}
	return method, nil
}

// CreateMethod 新增支付方式，设为默认时同事务取消其他默认
func (s *PaymentService) CreateMethod(userID uint, input PaymentMethodInput) (*models.PaymentMethod, error) {
	method := &models.PaymentMethod{UserID: userID, IsActive: true}
	if err := s.applyMethodInput(method, input); err != nil {
		return nil, err
	}
	if method.PaymentType == "" || method.Name == "" {
		return nil, ErrPaymentMethodInvalid
	}
	err := s.paymentRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.paymentRepo.WithTx(tx)
		if err := repo.CreateMethod(method); err != nil {
			return err
		}
		if method.IsDefault {
			return repo.ClearDefaultMethods(userID, method.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return method, nil
}

// UpdateMethod 更新支付方式
func (s *PaymentService) UpdateMethod(userID, id uint, input PaymentMethodInput) (*models.PaymentMethod, error) {
	method, err := s.GetMethod(userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyMethodInput(method, input); err != nil {
		return nil, err
	}
	if method.Name == "" {
		return nil, ErrPaymentMethodInvalid
	}
	err = s.paymentRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.paymentRepo.WithTx(tx)
		if err := repo.UpdateMethod(method); err != nil {
			return err
		}
		if method.IsDefault {
			return repo.ClearDefaultMethods(userID, method.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return method, nil
}

// DeleteMethod 删除支付方式
func (s *PaymentService) DeleteMethod(userID, id uint) error {
	if _, err := s.GetMethod(userID, id); err != nil {
		return err
	}
	return s.paymentRepo.DeleteMethod(id)
}

// MethodDetails 解密支付方式明细
func (s *PaymentService) MethodDetails(method *models.PaymentMethod) (map[string]interface{}, error) {
	if method == nil {
		return nil, ErrPaymentMethodNotFound
	}
	return openPaymentDetails(s.detailsSecret(), method.EncryptedDetails)
}

func (s *PaymentService) applyMethodInput(method *models.PaymentMethod, input PaymentMethodInput) error {
	if input.PaymentType != nil {
		paymentType := strings.ToLower(strings.TrimSpace(*input.PaymentType))
		if !containsString(constants.PaymentTypes, paymentType) {
			return ErrPaymentMethodInvalid
		}
		method.PaymentType = paymentType
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" || len([]rune(name)) > 100 {
			return ErrPaymentMethodInvalid
		}
		method.Name = name
	}
	if input.IsDefault != nil {
		method.IsDefault = *input.IsDefault
	}
	if input.IsActive != nil {
		method.IsActive = *input.IsActive
	}
	if input.Details != nil {
		sealed, err := sealPaymentDetails(s.detailsSecret(), input.Details)
		if err != nil {
			return err
		}
		method.EncryptedDetails = sealed
	}
	return nil
}

// List 当前用户的支付记录
func (s *PaymentService) List(userID uint, page, pageSize int) ([]models.Payment, int64, error) {
	return s.paymentRepo.List(repository.PaymentListFilter{UserID: userID, Page: page, PageSize: pageSize})
}

// Get 获取自己的支付记录
func (s *PaymentService) Get(userID, id uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// CreateIntent 为订单创建支付并生成网关跳转地址
func (s *PaymentService) CreateIntent(userID, orderID, methodID uint) (*PaymentIntent, error) {
	if orderID == 0 || methodID == 0 {
		return nil, ErrPaymentInvalid
	}
	order, err := s.orderRepo.GetByIDAndBuyer(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	method, err := s.GetMethod(userID, methodID)
	if err != nil {
		return nil, err
	}
	if method.PaymentType != constants.PaymentTypeAlipay && method.PaymentType != constants.PaymentTypePaypal {
		return nil, ErrPaymentProviderNotSupported
	}

	payment := &models.Payment{
		UserID:          userID,
		OrderID:         order.ID,
		PaymentMethodID: &method.ID,
		Amount:          order.TotalPrice,
		Currency:        constants.CurrencyDefault,
		Status:          constants.PaymentStatusPending,
		Provider:        method.PaymentType,
		RefundAmount:    models.NewMoneyFromDecimal(decimal.Zero),
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	var redirectURL string
	switch method.PaymentType {
	case constants.PaymentTypeAlipay:
		result, err := alipay.CreatePagePay(s.alipayCfg, alipay.CreateInput{
			OutTradeNo: strconv.FormatUint(uint64(payment.ID), 10),
			Amount:     payment.Amount.Decimal,
			Subject:    fmt.Sprintf("Order %d", order.ID),
			Timestamp:  s.now(),
		})
		if err != nil {
			s.failPayment(payment, err)
			return nil, ErrPaymentGatewayFailed
		}
		redirectURL = result.PayURL
		payment.ProviderTransactionID = constants.PaymentProviderAlipay + "_" + ulid.Make().String()
		payment.ProviderResponse = models.JSON(result.Raw)
	case constants.PaymentTypePaypal:
		token := "PAYPAL_TOKEN_" + ulid.Make().String()
		result, err := paypal.CreateCheckout(s.paypalCfg, paypal.CreateInput{
			Token:    token,
			Amount:   payment.Amount.Decimal,
			Currency: payment.Currency,
		})
		if err != nil {
			s.failPayment(payment, err)
			return nil, ErrPaymentGatewayFailed
		}
		redirectURL = result.ApprovalURL
		payment.ProviderTransactionID = result.Token
		payment.ProviderResponse = models.JSON(result.Raw)
	}

	payment.Status = constants.PaymentStatusProcessing
	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateFields(order.ID, map[string]interface{}{
		"payment_method": method.PaymentType,
		"payment_id":     payment.ProviderTransactionID,
	}); err != nil {
		logger.Warnw("order_payment_ref_update_failed", "order_id", order.ID, "payment_id", payment.ID, "error", err)
	}
	return &PaymentIntent{
		PaymentID:   payment.ID,
		Status:      payment.Status,
		RedirectURL: redirectURL,
	}, nil
}

func (s *PaymentService) failPayment(payment *models.Payment, cause error) {
	payment.Status = constants.PaymentStatusFailed
	payment.FailureReason = cause.Error()
	if err := s.paymentRepo.Update(payment); err != nil {
		logger.Warnw("payment_mark_failed_error", "payment_id", payment.ID, "error", err)
	}
}

// Refund 发起退款：仅已完成（或部分退款）的支付，金额不超过剩余可退
func (s *PaymentService) Refund(userID, paymentID uint, amount *decimal.Decimal, reason string) (*models.PaymentRefund, error) {
	payment, err := s.Get(userID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != constants.PaymentStatusCompleted && payment.Status != constants.PaymentStatusPartiallyRefunded {
		return nil, ErrPaymentStatusInvalid
	}
	refundValue := payment.Amount.Decimal
	if amount != nil {
		refundValue = *amount
	}
	if refundValue.LessThanOrEqual(decimal.Zero) {
		return nil, ErrRefundAmountInvalid
	}
	remaining := payment.Amount.Decimal.Sub(payment.RefundAmount.Decimal)
	if refundValue.GreaterThan(remaining) {
		return nil, ErrRefundExceedsRemaining
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "Customer request"
	}

	now := s.now()
	refund := &models.PaymentRefund{
		PaymentID:        payment.ID,
		Amount:           models.NewMoneyFromDecimal(refundValue),
		Reason:           reason,
		Status:           constants.RefundStatusCompleted,
		ProviderRefundID: "refund_" + ulid.Make().String(),
		ProviderResponse: models.JSON{"provider": payment.Provider},
		CompletedAt:      &now,
	}
	refunded := payment.RefundAmount.Decimal.Add(refundValue)
	payment.RefundAmount = models.NewMoneyFromDecimal(refunded)
	if refunded.Equal(payment.Amount.Decimal) {
		payment.Status = constants.PaymentStatusRefunded
	} else {
		payment.Status = constants.PaymentStatusPartiallyRefunded
	}

	err = s.paymentRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.paymentRepo.WithTx(tx)
		if err := repo.CreateRefund(refund); err != nil {
			return err
		}
		if err := repo.Update(payment); err != nil {
			return err
		}
		if payment.Status == constants.PaymentStatusRefunded {
			return s.orderRepo.WithTx(tx).UpdateFields(payment.OrderID, map[string]interface{}{
				"payment_status": constants.OrderPaymentStatusRefunded,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refund, nil
}

// ListRefunds 当前用户的退款记录
func (s *PaymentService) ListRefunds(userID uint, page, pageSize int) ([]models.PaymentRefund, int64, error) {
	return s.paymentRepo.ListRefundsByUser(userID, page, pageSize)
}

// HandleWebhook 记录并处理支付回调
func (s *PaymentService) HandleWebhook(input WebhookInput) (*models.PaymentWebhook, error) {
	provider := strings.ToLower(strings.TrimSpace(input.Provider))
	if provider == "" {
		return nil, ErrWebhookInvalid
	}
	payload, form, err := decodeWebhookBody(input.Body, input.ContentType)
	if err != nil {
		return nil, err
	}
	if provider == constants.PaymentProviderAlipay && s.alipayCfg.VerifyEnabled() {
		if err := alipay.VerifyCallback(s.alipayCfg, form); err != nil {
			logger.Warnw("alipay_webhook_signature_invalid", "error", err)
			return nil, ErrSignatureInvalid
		}
	}

	eventType := firstNonEmpty(form.Get("event_type"), form.Get("notify_type"), form.Get("trade_status"))
	if eventType == "" {
		eventType = "unknown"
	}
	eventID := firstNonEmpty(form.Get("id"), form.Get("notify_id"), form.Get("event_id"))
	if eventID == "" {
		eventID = uuid.NewString()
	} else {
		eventID = provider + ":" + eventID
	}
	existing, err := s.paymentRepo.GetWebhookByEventID(eventID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	webhook := &models.PaymentWebhook{
		EventID:   truncateRunes(eventID, 64),
		Provider:  provider,
		EventType: truncateRunes(eventType, 100),
		RawData:   payload,
	}
	if err := s.paymentRepo.CreateWebhook(webhook); err != nil {
		return nil, err
	}

	if err := s.applyWebhook(provider, payload, form); err != nil {
		logger.Warnw("payment_webhook_apply_failed", "provider", provider, "webhook_id", webhook.ID, "error", err)
	}
	if err := s.paymentRepo.MarkWebhookProcessed(webhook.ID); err != nil {
		return nil, err
	}
	webhook.Processed = true
	return webhook, nil
}

func (s *PaymentService) applyWebhook(provider string, payload models.JSON, form url.Values) error {
	reference := firstNonEmpty(form.Get("out_trade_no"), form.Get("payment_id"))
	status := ""
	switch provider {
	case constants.PaymentProviderAlipay:
		status, _ = alipay.ToPaymentStatus(form.Get("trade_status"))
	case constants.PaymentProviderPaypal:
		if body, err := json.Marshal(payload); err == nil {
			if event, err := paypal.ParseWebhookEvent(body); err == nil {
				if reference == "" {
					reference = event.PaymentReference()
				}
				status, _ = paypal.ToPaymentStatus(event.EventType, event.ResourceStatus())
			}
		}
	}
	if status == "" {
		status = genericWebhookStatus(form.Get("status"))
	}
	if reference == "" || status == "" {
		return nil
	}

	payment, err := s.resolvePayment(provider, reference)
	if err != nil || payment == nil {
		return err
	}
	if !webhookCanTransition(payment.Status, status) {
		logger.Infow("payment_webhook_status_ignored",
			"payment_id", payment.ID,
			"current_status", payment.Status,
			"webhook_status", status,
		)
		return nil
	}
	switch status {
	case constants.PaymentStatusCompleted:
		return s.completePayment(payment)
	case constants.PaymentStatusFailed:
		payment.Status = constants.PaymentStatusFailed
		payment.FailureReason = firstNonEmpty(form.Get("failure_reason"), form.Get("reason"), "provider reported failure")
		if err := s.paymentRepo.Update(payment); err != nil {
			return err
		}
		return s.orderRepo.UpdateFields(payment.OrderID, map[string]interface{}{
			"payment_status": constants.OrderPaymentStatusFailed,
		})
	}
	return nil
}

// webhookCanTransition 回调只推进未终结的支付；完成回调允许覆盖失败
func webhookCanTransition(current, next string) bool {
	switch current {
	case constants.PaymentStatusPending, constants.PaymentStatusProcessing:
		return true
	case constants.PaymentStatusFailed:
		return next == constants.PaymentStatusCompleted
	default:
		return false
	}
}

func (s *PaymentService) resolvePayment(provider, reference string) (*models.Payment, error) {
	if id, err := strconv.ParseUint(reference, 10, 64); err == nil && id > 0 {
		return s.paymentRepo.GetByID(uint(id))
	}
	return s.paymentRepo.GetByProviderTransactionID(provider, reference)
}

// completePayment 支付完成：更新支付与订单状态后通知卖家
func (s *PaymentService) completePayment(payment *models.Payment) error {
	if !webhookCanTransition(payment.Status, constants.PaymentStatusCompleted) {
		return nil
	}
	now := s.now()
	payment.Status = constants.PaymentStatusCompleted
	payment.CompletedAt = &now
	payment.FailureReason = ""
	err := s.paymentRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.paymentRepo.WithTx(tx).Update(payment); err != nil {
			return err
		}
		return s.orderRepo.WithTx(tx).UpdateFields(payment.OrderID, map[string]interface{}{
			"payment_status": constants.OrderPaymentStatusPaid,
		})
	})
	if err != nil {
		return err
	}

	order, err := s.orderRepo.GetByID(payment.OrderID)
	if err != nil || order == nil {
		return err
	}
	orderID := order.ID
	s.notifier.Notify(queue.NotificationDispatchPayload{
		UserID:         order.SellerID,
		Type:           constants.NotificationPaymentReceived,
		Title:          "Payment received",
		Message:        fmt.Sprintf("Payment of %s %s for order #%d was received.", payment.Amount.String(), payment.Currency, order.ID),
		Priority:       constants.NotificationPriorityHigh,
		RelatedItemID:  &order.ItemID,
		RelatedOrderID: &orderID,
		Data: map[string]string{
			"order_id": strconv.FormatUint(uint64(order.ID), 10),
			"amount":   payment.Amount.String(),
		},
	})
	return nil
}

// decodeWebhookBody 解析 JSON 或表单回调，统一返回原始数据与扁平化表单
func decodeWebhookBody(body []byte, contentType string) (models.JSON, url.Values, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil, nil, ErrWebhookInvalid
	}
	if strings.HasPrefix(trimmed, "{") || strings.Contains(strings.ToLower(contentType), "json") {
		payload := models.JSON{}
		if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
			return nil, nil, ErrWebhookInvalid
		}
		form := url.Values{}
		for key, value := range payload {
			switch typed := value.(type) {
			case string:
				form.Set(key, typed)
			case float64, bool:
				form.Set(key, fmt.Sprintf("%v", typed))
			case json.Number:
				form.Set(key, typed.String())
			}
		}
		return payload, form, nil
	}
	form, err := url.ParseQuery(trimmed)
	if err != nil || len(form) == 0 {
		return nil, nil, ErrWebhookInvalid
	}
	payload := models.JSON{}
	for key, values := range form {
		if len(values) > 0 {
			payload[key] = values[0]
		}
	}
	return payload, form, nil
}

func genericWebhookStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "success", "succeeded", "completed", "paid":
		return constants.PaymentStatusCompleted
	case "failed", "failure", "declined", "cancelled":
		return constants.PaymentStatusFailed
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}
