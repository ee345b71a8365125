package repository

import (
	"errors"
	"strings"

	"github.com/ait-marketplace/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentRepository 支付数据访问接口
type PaymentRepository interface {
	ListMethods(userID uint, paymentType string) ([]models.PaymentMethod, error)
	GetMethod(id, userID uint) (*models.PaymentMethod, error)
	CreateMethod(method *models.PaymentMethod) error
	UpdateMethod(method *models.PaymentMethod) error
	DeleteMethod(id uint) error
	ClearDefaultMethods(userID, exceptID uint) error

	Create(payment *models.Payment) error
	Update(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	GetByIDAndUser(id, userID uint) (*models.Payment, error)
	GetByProviderTransactionID(provider, transactionID string) (*models.Payment, error)
	List(filter PaymentListFilter) ([]models.Payment, int64, error)

	CreateRefund(refund *models.PaymentRefund) error
	ListRefundsByUser(userID uint, page, pageSize int) ([]models.PaymentRefund, int64, error)

	CreateWebhook(webhook *models.PaymentWebhook) error
	GetWebhookByEventID(eventID string) (*models.PaymentWebhook, error)
	MarkWebhookProcessed(id uint) error

	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormPaymentRepository
}

// GormPaymentRepository GORM 实现
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository 创建支付仓库
func NewPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPaymentRepository) WithTx(tx *gorm.DB) *GormPaymentRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentRepository{db: tx}
}

// Transaction 执行事务
func (r *GormPaymentRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// ListMethods 用户支付方式列表
func (r *GormPaymentRepository) ListMethods(userID uint, paymentType string) ([]models.PaymentMethod, error) {
	query := r.db.Where("user_id = ? AND is_active = ?", userID, true)
	if paymentType = strings.TrimSpace(paymentType); paymentType != "" {
		query = query.Where("payment_type = ?", paymentType)
	}
	var methods []models.PaymentMethod
	if err := query.Order("is_default DESC, created_at DESC").Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

// GetMethod 获取用户的支付方式
func (r *GormPaymentRepository) GetMethod(id, userID uint) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &method, nil
}

// CreateMethod 创建支付方式
func (r *GormPaymentRepository) CreateMethod(method *models.PaymentMethod) error {
	return r.db.Create(method).Error
}

// UpdateMethod 更新支付方式
func (r *GormPaymentRepository) UpdateMethod(method *models.PaymentMethod) error {
	return r.db.Save(method).Error
}

// DeleteMethod 删除支付方式
func (r *GormPaymentRepository) DeleteMethod(id uint) error {
	return r.db.Delete(&models.PaymentMethod{}, id).Error
}

// ClearDefaultMethods 取消用户其他默认支付方式
func (r *GormPaymentRepository) ClearDefaultMethods(userID, exceptID uint) error {
	return r.db.Model(&models.PaymentMethod{}).
		Where("user_id = ? AND id <> ? AND is_default = ?", userID, exceptID, true).
		Update("is_default", false).Error
}

// Create 创建支付记录
func (r *GormPaymentRepository) Create(payment *models.Payment) error {
	return r.db.Omit(clause.Associations).Create(payment).Error
}

// Update 更新支付记录
func (r *GormPaymentRepository) Update(payment *models.Payment) error {
	return r.db.Omit(clause.Associations).Save(payment).Error
}

// GetByID 根据 ID 获取支付记录
func (r *GormPaymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Preload("PaymentMethod").First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// GetByIDAndUser 获取用户自己的支付记录
func (r *GormPaymentRepository) GetByIDAndUser(id, userID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Preload("PaymentMethod").Where("id = ? AND user_id = ?", id, userID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// GetByProviderTransactionID 根据第三方流水号获取支付记录
func (r *GormPaymentRepository) GetByProviderTransactionID(provider, transactionID string) (*models.Payment, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return nil, nil
	}
	var payment models.Payment
	err := r.db.Where("provider = ? AND provider_transaction_id = ?", provider, transactionID).
		Order("id DESC").
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// List 支付记录列表
func (r *GormPaymentRepository) List(filter PaymentListFilter) ([]models.Payment, int64, error) {
	query := r.db.Model(&models.Payment{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.OrderID != 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var payments []models.Payment
	if err := query.Preload("PaymentMethod").Order("created_at DESC, id DESC").Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// CreateRefund 创建退款记录
func (r *GormPaymentRepository) CreateRefund(refund *models.PaymentRefund) error {
	return r.db.Omit(clause.Associations).Create(refund).Error
}

// ListRefundsByUser 用户退款记录
func (r *GormPaymentRepository) ListRefundsByUser(userID uint, page, pageSize int) ([]models.PaymentRefund, int64, error) {
	query := r.db.Model(&models.PaymentRefund{}).
		Where("payment_id IN (?)", r.db.Model(&models.Payment{}).Select("id").Where("user_id = ?", userID))
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, page, pageSize)
	var refunds []models.PaymentRefund
	if err := query.Order("created_at DESC, id DESC").Find(&refunds).Error; err != nil {
		return nil, 0, err
	}
	return refunds, total, nil
}

// CreateWebhook 保存回调原始数据
func (r *GormPaymentRepository) CreateWebhook(webhook *models.PaymentWebhook) error {
	return r.db.Create(webhook).Error
}

// GetWebhookByEventID 按事件 ID 查询回调记录
func (r *GormPaymentRepository) GetWebhookByEventID(eventID string) (*models.PaymentWebhook, error) {
	var webhook models.PaymentWebhook
	if err := r.db.Where("event_id = ?", eventID).First(&webhook).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &webhook, nil
}

// MarkWebhookProcessed 标记回调已处理
func (r *GormPaymentRepository) MarkWebhookProcessed(id uint) error {
	return r.db.Model(&models.PaymentWebhook{}).Where("id = ?", id).Update("processed", true).Error
}
