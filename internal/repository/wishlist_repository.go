package repository

import (
	"errors"
	"strings"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WishlistRepository 收藏夹与求购数据访问接口
type WishlistRepository interface {
	GetOrCreate(userID uint) (*models.Wishlist, error)
	ExistsItem(wishlistID, itemID uint) (bool, error)
	AddItem(item *models.WishlistItem) error
	RemoveItem(wishlistID, itemID uint) (int64, error)
	CountItems(userID uint) (int64, error)
	CreateWant(want *models.WantToBuy) error
	GetWant(id uint) (*models.WantToBuy, error)
	ListWants(filter WantToBuyListFilter) ([]models.WantToBuy, int64, error)
	UpdateWant(want *models.WantToBuy) error
	DeleteWant(id uint) error
	CountWants(userID uint, status string) (int64, error)
	ListActiveWants(excludeUserID uint) ([]models.WantToBuy, error)
}

// GormWishlistRepository GORM 实现
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建收藏夹仓库
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// GetOrCreate 获取或创建收藏夹（含商品）
func (r *GormWishlistRepository) GetOrCreate(userID uint) (*models.Wishlist, error) {
	wishlist := models.Wishlist{UserID: userID}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&wishlist).Error; err != nil {
		return nil, err
	}
	var loaded models.Wishlist
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("added_at DESC, id DESC")
	}).Preload("Items.Item").Where("user_id = ?", userID).First(&loaded).Error
	if err != nil {
		return nil, err
	}
	return &loaded, nil
}

// ExistsItem 商品是否已收藏
func (r *GormWishlistRepository) ExistsItem(wishlistID, itemID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.WishlistItem{}).
		Where("wishlist_id = ? AND item_id = ?", wishlistID, itemID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddItem 添加收藏
func (r *GormWishlistRepository) AddItem(item *models.WishlistItem) error {
	return r.db.Omit(clause.Associations).Create(item).Error
}

// RemoveItem 移除收藏
func (r *GormWishlistRepository) RemoveItem(wishlistID, itemID uint) (int64, error) {
	result := r.db.Where("wishlist_id = ? AND item_id = ?", wishlistID, itemID).Delete(&models.WishlistItem{})
	return result.RowsAffected, result.Error
}

// CountItems 统计用户收藏数量
func (r *GormWishlistRepository) CountItems(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.WishlistItem{}).
		Joins("JOIN wishlists ON wishlists.id = wishlist_items.wishlist_id").
		Where("wishlists.user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// CreateWant 创建求购
func (r *GormWishlistRepository) CreateWant(want *models.WantToBuy) error {
	return r.db.Omit(clause.Associations).Create(want).Error
}

// GetWant 获取求购
func (r *GormWishlistRepository) GetWant(id uint) (*models.WantToBuy, error) {
	var want models.WantToBuy
	if err := r.db.Preload("User").First(&want, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &want, nil
}

// ListWants 求购列表
func (r *GormWishlistRepository) ListWants(filter WantToBuyListFilter) ([]models.WantToBuy, int64, error) {
	query := r.db.Model(&models.WantToBuy{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	query = whereLike(query, filter.Query, "title", "description", "category")
	query = whereLike(query, filter.Category, "category")
	if filter.MaxPrice != nil {
		query = query.Where("max_price <= ?", *filter.MaxPrice)
	}
	if condition := strings.TrimSpace(filter.Condition); condition != "" && condition != constants.ConditionAny {
		query = query.Where(clause.Eq{Column: clause.Column{Name: "condition"}, Value: condition})
	}
	query = whereLike(query, filter.Location, "location")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "created_at"
		filter.SortDesc = true
	}
	var wants []models.WantToBuy
	order := clause.OrderByColumn{Column: clause.Column{Name: sortBy}, Desc: filter.SortDesc}
	if err := query.Preload("User").Order(order).Order("id DESC").Find(&wants).Error; err != nil {
		return nil, 0, err
	}
	return wants, total, nil
}

// UpdateWant 更新求购
func (r *GormWishlistRepository) UpdateWant(want *models.WantToBuy) error {
	return r.db.Omit(clause.Associations).Save(want).Error
}

// DeleteWant 删除求购
func (r *GormWishlistRepository) DeleteWant(id uint) error {
	return r.db.Delete(&models.WantToBuy{}, id).Error
}

// CountWants 统计用户求购数量
func (r *GormWishlistRepository) CountWants(userID uint, status string) (int64, error) {
	var count int64
	query := r.db.Model(&models.WantToBuy{})
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

// ListActiveWants 获取其他用户的有效求购（用于新商品匹配）
func (r *GormWishlistRepository) ListActiveWants(excludeUserID uint) ([]models.WantToBuy, error) {
	var wants []models.WantToBuy
	err := r.db.Where("status = ? AND user_id <> ?", constants.WantToBuyStatusActive, excludeUserID).
		Order("id ASC").
		Find(&wants).Error
	if err != nil {
		return nil, err
	}
	return wants, nil
}
