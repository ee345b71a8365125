package repository

import (
	"errors"
	"time"

	"github.com/ait-marketplace/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WantedRepository 求购帖数据访问接口
type WantedRepository interface {
	Create(item *models.WantedItem) error
	GetActiveByID(id uint) (*models.WantedItem, error)
	List(filter WantedListFilter) ([]models.WantedItem, int64, error)
	Update(item *models.WantedItem) error
	Delete(id uint) error
	CountFreePostsSince(userID uint, since time.Time) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormWantedRepository
}

// GormWantedRepository GORM 实现
type GormWantedRepository struct {
	db *gorm.DB
}

// NewWantedRepository 创建求购帖仓库
func NewWantedRepository(db *gorm.DB) *GormWantedRepository {
	return &GormWantedRepository{db: db}
}

// WithTx 绑定事务
func (r *GormWantedRepository) WithTx(tx *gorm.DB) *GormWantedRepository {
	if tx == nil {
		return r
	}
	return &GormWantedRepository{db: tx}
}

// Transaction 执行事务
func (r *GormWantedRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// Create 创建求购帖
func (r *GormWantedRepository) Create(item *models.WantedItem) error {
	return r.db.Omit(clause.Associations).Create(item).Error
}

// GetActiveByID 获取上架中的求购帖
func (r *GormWantedRepository) GetActiveByID(id uint) (*models.WantedItem, error) {
	var item models.WantedItem
	if err := r.db.Preload("User").Where("is_active = ?", true).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// List 求购帖列表
func (r *GormWantedRepository) List(filter WantedListFilter) ([]models.WantedItem, int64, error) {
	query := r.db.Model(&models.WantedItem{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var items []models.WantedItem
	if err := query.Preload("User").Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update 更新求购帖
func (r *GormWantedRepository) Update(item *models.WantedItem) error {
	return r.db.Omit(clause.Associations).Save(item).Error
}

// Delete 删除求购帖
func (r *GormWantedRepository) Delete(id uint) error {
	return r.db.Delete(&models.WantedItem{}, id).Error
}

// CountFreePostsSince 统计某时间点后的免费发帖数
func (r *GormWantedRepository) CountFreePostsSince(userID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.WantedItem{}).
		Where("user_id = ? AND is_free_post = ? AND created_at >= ?", userID, true, since).
		Count(&count).Error
	return count, err
}
