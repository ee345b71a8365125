package repository

import (
	"errors"

	"github.com/ait-marketplace/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetOrCreate(userID uint) (*models.Cart, error)
	GetItem(cartID, itemID uint) (*models.CartItem, error)
	SaveItem(item *models.CartItem) error
	DeleteItem(cartID, itemID uint) (int64, error)
	Clear(cartID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetOrCreate 获取或创建用户购物车（含商品）
func (r *GormCartRepository) GetOrCreate(userID uint) (*models.Cart, error) {
	cart := models.Cart{UserID: userID}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&cart).Error; err != nil {
		return nil, err
	}
	var loaded models.Cart
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("added_at DESC, id DESC")
	}).Preload("Items.Item").Where("user_id = ?", userID).First(&loaded).Error
	if err != nil {
		return nil, err
	}
	return &loaded, nil
}

// GetItem 获取购物车项
func (r *GormCartRepository) GetItem(cartID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("cart_id = ? AND item_id = ?", cartID, itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// SaveItem 新增或更新购物车项
func (r *GormCartRepository) SaveItem(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	if item.ID == 0 {
		return r.db.Omit(clause.Associations).Create(item).Error
	}
	return r.db.Model(&models.CartItem{}).Where("id = ?", item.ID).Update("quantity", item.Quantity).Error
}

// DeleteItem 删除购物车项
func (r *GormCartRepository) DeleteItem(cartID, itemID uint) (int64, error) {
	result := r.db.Where("cart_id = ? AND item_id = ?", cartID, itemID).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// Clear 清空购物车
func (r *GormCartRepository) Clear(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
