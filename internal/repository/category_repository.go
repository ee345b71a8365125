package repository

import (
	"errors"

	"github.com/ait-marketplace/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	ListRoots(onlyActive bool) ([]models.Category, error)
	ListAll(onlyActive bool) ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	GetByName(name string) (*models.Category, error)
	SearchNames(keyword string, limit int) ([]models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
	CountByName(name string, excludeID uint) (int64, error)
	CountChildren(id uint) (int64, error)
	ListParameters(categoryID uint) ([]models.CategoryParameter, error)
	GetParameter(id uint) (*models.CategoryParameter, error)
	CreateParameter(param *models.CategoryParameter) error
	UpdateParameter(param *models.CategoryParameter) error
	DeleteParameter(id uint) error
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// ListRoots 顶级分类列表
func (r *GormCategoryRepository) ListRoots(onlyActive bool) ([]models.Category, error) {
	query := r.db.Where("parent_id IS NULL")
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var categories []models.Category
	if err := query.Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListAll 全部分类（用于构建分类树）
func (r *GormCategoryRepository) ListAll(onlyActive bool) ([]models.Category, error) {
	query := r.db.Model(&models.Category{})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var categories []models.Category
	if err := query.Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID 根据 ID 获取分类（含参数）
func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.Preload("Parameters", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, name ASC")
	}).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// GetByName 根据名称获取分类
func (r *GormCategoryRepository) GetByName(name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// SearchNames 启用分类名称模糊匹配
func (r *GormCategoryRepository) SearchNames(keyword string, limit int) ([]models.Category, error) {
	query := whereLike(r.db.Model(&models.Category{}).Where("is_active = ?", true), keyword, "name")
	var categories []models.Category
	if err := query.Order("sort_order ASC, name ASC").Limit(limit).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Create 创建分类
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Omit("Parent", "Children", "Parameters").Create(category).Error
}

// Update 更新分类
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Omit("Parent", "Children", "Parameters").Save(category).Error
}

// Delete 删除分类及其参数
func (r *GormCategoryRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.CategoryParameter{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Item{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, id).Error
	})
}

// CountByName 统计同名分类
func (r *GormCategoryRepository) CountByName(name string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Category{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountChildren 统计子分类数量
func (r *GormCategoryRepository) CountChildren(id uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Category{}).Where("parent_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListParameters 获取分类参数
func (r *GormCategoryRepository) ListParameters(categoryID uint) ([]models.CategoryParameter, error) {
	var params []models.CategoryParameter
	if err := r.db.Where("category_id = ?", categoryID).Order("sort_order ASC, name ASC").Find(&params).Error; err != nil {
		return nil, err
	}
	return params, nil
}

// GetParameter 获取单个参数
func (r *GormCategoryRepository) GetParameter(id uint) (*models.CategoryParameter, error) {
	var param models.CategoryParameter
	if err := r.db.First(&param, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &param, nil
}

// CreateParameter 创建参数
func (r *GormCategoryRepository) CreateParameter(param *models.CategoryParameter) error {
	return r.db.Create(param).Error
}

// UpdateParameter 更新参数
func (r *GormCategoryRepository) UpdateParameter(param *models.CategoryParameter) error {
	return r.db.Save(param).Error
}

// DeleteParameter 删除参数
func (r *GormCategoryRepository) DeleteParameter(id uint) error {
	return r.db.Delete(&models.CategoryParameter{}, id).Error
}
