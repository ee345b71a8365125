package repository

import (
	"errors"
	"strings"

	"github.com/ait-marketplace/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ItemRepository 商品数据访问接口
type ItemRepository interface {
	GetByID(id uint) (*models.Item, error)
	ListByIDs(ids []uint) ([]models.Item, error)
	List(filter ItemListFilter) ([]models.Item, int64, error)
	Search(filter ItemSearchFilter) ([]models.Item, int64, error)
	SuggestTitles(keyword string, limit int) ([]models.Item, error)
	Create(item *models.Item) error
	Update(item *models.Item) error
	Delete(id uint) error
	SetFeatured(id uint, featured bool) error
	SetAvailability(ids []uint, available bool) (int64, error)
	WithTx(tx *gorm.DB) *GormItemRepository
}

// GormItemRepository GORM 实现
type GormItemRepository struct {
	db *gorm.DB
}

// NewItemRepository 创建商品仓库
func NewItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// WithTx 绑定事务
func (r *GormItemRepository) WithTx(tx *gorm.DB) *GormItemRepository {
	if tx == nil {
		return r
	}
	return &GormItemRepository{db: tx}
}

// GetByID 根据 ID 获取商品
func (r *GormItemRepository) GetByID(id uint) (*models.Item, error) {
	var item models.Item
	if err := r.db.Preload("Owner").Preload("CategoryRef").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListByIDs 批量获取商品
func (r *GormItemRepository) ListByIDs(ids []uint) ([]models.Item, error) {
	if len(ids) == 0 {
		return []models.Item{}, nil
	}
	var items []models.Item
	if err := r.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// List 商品列表
func (r *GormItemRepository) List(filter ItemListFilter) ([]models.Item, int64, error) {
	query := r.db.Model(&models.Item{})
	if filter.OwnerID != 0 {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Featured {
		query = query.Where("is_featured = ? AND is_available = ?", true, true)
	}
	if filter.Barter {
		query = query.Where("(is_barter = ? OR allow_barter = ?) AND is_available = ?", true, true, true)
	}
	if filter.IsAvailable != nil {
		query = query.Where("is_available = ?", *filter.IsAvailable)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	query = whereLike(query, filter.Search, "title", "description")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var items []models.Item
	if err := query.Preload("Owner").Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Search 在售商品搜索
func (r *GormItemRepository) Search(filter ItemSearchFilter) ([]models.Item, int64, error) {
	query := r.db.Model(&models.Item{}).Where("is_available = ?", true)
	query = whereLike(query, filter.Query, "title", "description", "category")
	if category := strings.TrimSpace(filter.Category); category != "" {
		condition, count := buildLikeCondition(r.db, "category")
		subCondition, subCount := buildLikeCondition(r.db, "name")
		args := repeatLikeArgs("%"+category+"%", count)
		sub := r.db.Model(&models.Category{}).Select("id").Where(subCondition, repeatLikeArgs("%"+category+"%", subCount)...)
		query = query.Where(r.db.Where(condition, args...).Or("category_id IN (?)", sub))
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if condition := strings.TrimSpace(filter.Condition); condition != "" {
		query = query.Where(clause.Eq{Column: clause.Column{Name: "condition"}, Value: condition})
	}
	query = whereLike(query, filter.Location, "location")
	if filter.IsBarter != nil {
		query = query.Where("is_barter = ?", *filter.IsBarter)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var items []models.Item
	sortBy := strings.TrimSpace(filter.SortBy)
	if sortBy == "" {
		sortBy = "created_at"
	}
	order := clause.OrderByColumn{Column: clause.Column{Name: sortBy}, Desc: filter.SortDesc}
	if err := query.Preload("Owner").Order(order).Order("id DESC").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// SuggestTitles 标题联想
func (r *GormItemRepository) SuggestTitles(keyword string, limit int) ([]models.Item, error) {
	query := r.db.Model(&models.Item{}).Where("is_available = ?", true)
	query = whereLike(query, keyword, "title")
	var items []models.Item
	if err := query.Select("id", "title", "category").Order("created_at DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create 创建商品
func (r *GormItemRepository) Create(item *models.Item) error {
	return r.db.Omit(clause.Associations).Create(item).Error
}

// Update 更新商品
func (r *GormItemRepository) Update(item *models.Item) error {
	return r.db.Omit(clause.Associations).Save(item).Error
}

// Delete 删除商品
func (r *GormItemRepository) Delete(id uint) error {
	return r.db.Delete(&models.Item{}, id).Error
}

// SetFeatured 设置精选状态
func (r *GormItemRepository) SetFeatured(id uint, featured bool) error {
	return r.db.Model(&models.Item{}).Where("id = ?", id).Update("is_featured", featured).Error
}

// SetAvailability 批量设置在售状态
func (r *GormItemRepository) SetAvailability(ids []uint, available bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Item{}).Where("id IN ?", ids).Update("is_available", available)
	return result.RowsAffected, result.Error
}
