package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdvertisementRepository 广告数据访问接口
type AdvertisementRepository interface {
	List(filter AdvertisementListFilter) ([]models.Advertisement, int64, error)
	GetByID(id uint) (*models.Advertisement, error)
	Create(ad *models.Advertisement) error
	Update(ad *models.Advertisement) error
	Delete(id uint) error
	RecordView(view *models.AdView) error
	RecordClick(click *models.AdClick) error
	RecentViews(adID uint, limit int) ([]models.AdView, error)
	RecentClicks(adID uint, limit int) ([]models.AdClick, error)
	DailyViews(adID uint, since time.Time) ([]DailyCountRow, error)
	DailyClicks(adID uint, since time.Time) ([]DailyCountRow, error)
}

// DailyCountRow 按天计数
type DailyCountRow struct {
	Day   string `json:"date"`
	Count int64  `json:"count"`
}

// GormAdvertisementRepository GORM 实现
type GormAdvertisementRepository struct {
	db *gorm.DB
}

// NewAdvertisementRepository 创建广告仓库
func NewAdvertisementRepository(db *gorm.DB) *GormAdvertisementRepository {
	return &GormAdvertisementRepository{db: db}
}

// List 广告列表
func (r *GormAdvertisementRepository) List(filter AdvertisementListFilter) ([]models.Advertisement, int64, error) {
	query := r.db.Model(&models.Advertisement{})
	if filter.CreatedByID != 0 {
		query = query.Where("created_by_id = ?", filter.CreatedByID)
	}
	if position := strings.TrimSpace(filter.Position); position != "" {
		query = query.Where("position = ?", position)
	}
	orderBy := "created_at DESC, id DESC"
	if filter.ActiveAt != nil {
		query = query.Where("status = ? AND start_date <= ? AND end_date >= ?", constants.AdStatusActive, *filter.ActiveAt, *filter.ActiveAt)
		orderBy = "sort_order ASC, created_at DESC"
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var ads []models.Advertisement
	if err := query.Order(orderBy).Find(&ads).Error; err != nil {
		return nil, 0, err
	}
	return ads, total, nil
}

// GetByID 获取广告
func (r *GormAdvertisementRepository) GetByID(id uint) (*models.Advertisement, error) {
	var ad models.Advertisement
	if err := r.db.First(&ad, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ad, nil
}

// Create 创建广告
func (r *GormAdvertisementRepository) Create(ad *models.Advertisement) error {
	return r.db.Omit(clause.Associations).Create(ad).Error
}

// Update 更新广告（计数字段不随表单覆盖）
func (r *GormAdvertisementRepository) Update(ad *models.Advertisement) error {
	return r.db.Omit(clause.Associations, "click_count", "view_count", "created_by_id").Save(ad).Error
}

// Delete 删除广告与埋点记录
func (r *GormAdvertisementRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("advertisement_id = ?", id).Delete(&models.AdView{}).Error; err != nil {
			return err
		}
		if err := tx.Where("advertisement_id = ?", id).Delete(&models.AdClick{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Advertisement{}, id).Error
	})
}

// RecordView 记录展示并自增计数
func (r *GormAdvertisementRepository) RecordView(view *models.AdView) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(view).Error; err != nil {
			return err
		}
		return tx.Model(&models.Advertisement{}).Where("id = ?", view.AdvertisementID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	})
}

// RecordClick 记录点击并自增计数
func (r *GormAdvertisementRepository) RecordClick(click *models.AdClick) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(click).Error; err != nil {
			return err
		}
		return tx.Model(&models.Advertisement{}).Where("id = ?", click.AdvertisementID).
			UpdateColumn("click_count", gorm.Expr("click_count + 1")).Error
	})
}

// RecentViews 最近展示记录
func (r *GormAdvertisementRepository) RecentViews(adID uint, limit int) ([]models.AdView, error) {
	var views []models.AdView
	err := r.db.Where("advertisement_id = ?", adID).Order("viewed_at DESC, id DESC").Limit(limit).Find(&views).Error
	return views, err
}

// RecentClicks 最近点击记录
func (r *GormAdvertisementRepository) RecentClicks(adID uint, limit int) ([]models.AdClick, error) {
	var clicks []models.AdClick
	err := r.db.Where("advertisement_id = ?", adID).Order("clicked_at DESC, id DESC").Limit(limit).Find(&clicks).Error
	return clicks, err
}

// DailyViews 按天统计展示
func (r *GormAdvertisementRepository) DailyViews(adID uint, since time.Time) ([]DailyCountRow, error) {
	return r.dailyCounts(&models.AdView{}, "viewed_at", adID, since)
}

// DailyClicks 按天统计点击
func (r *GormAdvertisementRepository) DailyClicks(adID uint, since time.Time) ([]DailyCountRow, error) {
	return r.dailyCounts(&models.AdClick{}, "clicked_at", adID, since)
}

func (r *GormAdvertisementRepository) dailyCounts(model interface{}, column string, adID uint, since time.Time) ([]DailyCountRow, error) {
	expr := dayExpr(r.db, column)
	var rows []DailyCountRow
	err := r.db.Model(model).
		Select(expr+" as day, COUNT(*) as count").
		Where("advertisement_id = ? AND "+column+" >= ?", adID, since).
		Group(expr).
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
