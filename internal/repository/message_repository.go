package repository

import (
	"errors"
	"fmt"

	"github.com/ait-marketplace/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MessageRepository 私信数据访问接口
type MessageRepository interface {
	Create(message *models.Message) error
	GetByID(id uint) (*models.Message, error)
	List(filter MessageListFilter) ([]models.Message, int64, error)
	ListLatestPerCounterpart(userID uint) ([]models.Message, error)
	Delete(id uint) error
}

// GormMessageRepository GORM 实现
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建私信仓库
func NewMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Create 发送私信
func (r *GormMessageRepository) Create(message *models.Message) error {
	return r.db.Omit(clause.Associations).Create(message).Error
}

// GetByID 获取私信
func (r *GormMessageRepository) GetByID(id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.Preload("Sender").Preload("Receiver").Preload("Item").First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// List 用户收发的私信
func (r *GormMessageRepository) List(filter MessageListFilter) ([]models.Message, int64, error) {
	query := r.db.Model(&models.Message{})
	if filter.WithUser != 0 {
		query = query.Where(
			"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			filter.UserID, filter.WithUser, filter.WithUser, filter.UserID,
		)
	} else {
		query = query.Where("sender_id = ? OR receiver_id = ?", filter.UserID, filter.UserID)
	}
	if filter.ItemID != 0 {
		query = query.Where("item_id = ?", filter.ItemID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var messages []models.Message
	if err := query.Preload("Sender").Preload("Receiver").Order("created_at DESC, id DESC").Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// ListLatestPerCounterpart 每个会话对象的最新一条私信
func (r *GormMessageRepository) ListLatestPerCounterpart(userID uint) ([]models.Message, error) {
	latest := r.db.Model(&models.Message{}).
		Select("MAX(id)").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Group(fmt.Sprintf("CASE WHEN sender_id = %d THEN receiver_id ELSE sender_id END", userID))
	var messages []models.Message
	err := r.db.Preload("Sender").Preload("Receiver").
		Where("id IN (?)", latest).
		Order("created_at DESC, id DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// Delete 删除私信
func (r *GormMessageRepository) Delete(id uint) error {
	return r.db.Delete(&models.Message{}, id).Error
}
