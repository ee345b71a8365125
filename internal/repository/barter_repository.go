package repository

import (
	"errors"

	"github.com/ait-marketplace/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BarterRepository 以物换物数据访问接口
type BarterRepository interface {
	Create(barter *models.BarterTransaction) error
	GetByID(id uint) (*models.BarterTransaction, error)
	ListByParticipant(userID uint, page, pageSize int) ([]models.BarterTransaction, int64, error)
	UpdateStatus(id uint, fromStatus, toStatus string) (int64, error)
	Delete(id uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormBarterRepository
}

// GormBarterRepository GORM 实现
type GormBarterRepository struct {
	db *gorm.DB
}

// NewBarterRepository 创建换物仓库
func NewBarterRepository(db *gorm.DB) *GormBarterRepository {
	return &GormBarterRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBarterRepository) WithTx(tx *gorm.DB) *GormBarterRepository {
	if tx == nil {
		return r
	}
	return &GormBarterRepository{db: tx}
}

// Transaction 执行事务
func (r *GormBarterRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

func (r *GormBarterRepository) withRelations(query *gorm.DB) *gorm.DB {
	return query.Preload("Requester").Preload("Responder").Preload("ItemOffered").Preload("ItemRequested")
}

// Create 创建换物请求
func (r *GormBarterRepository) Create(barter *models.BarterTransaction) error {
	return r.db.Omit(clause.Associations).Create(barter).Error
}

// GetByID 获取换物交易
func (r *GormBarterRepository) GetByID(id uint) (*models.BarterTransaction, error) {
	var barter models.BarterTransaction
	if err := r.withRelations(r.db).First(&barter, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &barter, nil
}

// ListByParticipant 用户参与的换物交易
func (r *GormBarterRepository) ListByParticipant(userID uint, page, pageSize int) ([]models.BarterTransaction, int64, error) {
	query := r.db.Model(&models.BarterTransaction{}).Where("requester_id = ? OR responder_id = ?", userID, userID)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, page, pageSize)
	var barters []models.BarterTransaction
	if err := r.withRelations(query).Order("created_at DESC, id DESC").Find(&barters).Error; err != nil {
		return nil, 0, err
	}
	return barters, total, nil
}

// UpdateStatus 条件更新状态（乐观并发）
func (r *GormBarterRepository) UpdateStatus(id uint, fromStatus, toStatus string) (int64, error) {
	result := r.db.Model(&models.BarterTransaction{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Update("status", toStatus)
	return result.RowsAffected, result.Error
}

// Delete 删除换物交易
func (r *GormBarterRepository) Delete(id uint) error {
	return r.db.Delete(&models.BarterTransaction{}, id).Error
}
