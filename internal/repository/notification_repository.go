package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/ait-marketplace/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotificationRepository 通知数据访问接口
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetByIDAndUser(id, userID uint) (*models.Notification, error)
	List(filter NotificationListFilter) ([]models.Notification, int64, error)
	Update(notification *models.Notification) error
	Delete(id uint) error
	MarkRead(id, userID uint, at time.Time) error
	MarkAllRead(userID uint, at time.Time) (int64, error)
	MarkSent(id uint) error
	CountUnread(userID uint) (int64, error)
	Stats(userID uint, since time.Time) (NotificationStatsRow, error)

	GetOrCreateSetting(userID uint) (*models.NotificationSetting, error)
	UpdateSetting(setting *models.NotificationSetting) error

	GetActiveTemplate(notificationType string) (*models.NotificationTemplate, error)
	ListTemplates() ([]models.NotificationTemplate, error)
	GetTemplate(id uint) (*models.NotificationTemplate, error)
	SaveTemplate(template *models.NotificationTemplate) error
	DeleteTemplate(id uint) error
}

// NotificationStatsRow 通知统计
type NotificationStatsRow struct {
	Total  int64            `json:"total_notifications"`
	Unread int64            `json:"unread_notifications"`
	Recent int64            `json:"recent_notifications"`
	ByType map[string]int64 `json:"notifications_by_type"`
}

// GormNotificationRepository GORM 实现
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓库
func NewNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Create 创建通知
func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetByIDAndUser 获取用户的通知
func (r *GormNotificationRepository) GetByIDAndUser(id, userID uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

// List 通知列表
func (r *GormNotificationRepository) List(filter NotificationListFilter) ([]models.Notification, int64, error) {
	query := r.db.Model(&models.Notification{}).Where("user_id = ?", filter.UserID)
	if filter.IsRead != nil {
		query = query.Where("is_read = ?", *filter.IsRead)
	}
	if notificationType := strings.TrimSpace(filter.Type); notificationType != "" {
		query = query.Where("notification_type = ?", notificationType)
	}
	if priority := strings.TrimSpace(filter.Priority); priority != "" {
		query = query.Where("priority = ?", priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var notifications []models.Notification
	if err := query.Order("created_at DESC, id DESC").Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// Update 更新通知
func (r *GormNotificationRepository) Update(notification *models.Notification) error {
	return r.db.Save(notification).Error
}

// Delete 删除通知
func (r *GormNotificationRepository) Delete(id uint) error {
	return r.db.Delete(&models.Notification{}, id).Error
}

// MarkRead 标记已读，read_at 为空时才写入
func (r *GormNotificationRepository) MarkRead(id, userID uint, at time.Time) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", id, userID).
		Updates(map[string]interface{}{"is_read": true, "read_at": at}).Error
}

// MarkAllRead 全部标记已读
func (r *GormNotificationRepository) MarkAllRead(userID uint, at time.Time) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": gorm.Expr("COALESCE(read_at, ?)", at)})
	return result.RowsAffected, result.Error
}

// MarkSent 标记邮件已发送
func (r *GormNotificationRepository) MarkSent(id uint) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", id).Update("is_sent", true).Error
}

// CountUnread 未读数量
func (r *GormNotificationRepository) CountUnread(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", userID, false).Count(&count).Error
	return count, err
}

// Stats 通知统计
func (r *GormNotificationRepository) Stats(userID uint, since time.Time) (NotificationStatsRow, error) {
	row := NotificationStatsRow{ByType: map[string]int64{}}
	base := func() *gorm.DB {
		return r.db.Model(&models.Notification{}).Where("user_id = ?", userID)
	}
	if err := base().Count(&row.Total).Error; err != nil {
		return row, err
	}
	if err := base().Where("is_read = ?", false).Count(&row.Unread).Error; err != nil {
		return row, err
	}
	if err := base().Where("created_at >= ?", since).Count(&row.Recent).Error; err != nil {
		return row, err
	}
	type typeRow struct {
		NotificationType string
		Total            int64
	}
	var rows []typeRow
	if err := base().Select("notification_type, COUNT(*) as total").Group("notification_type").Scan(&rows).Error; err != nil {
		return row, err
	}
	for _, item := range rows {
		row.ByType[item.NotificationType] = item.Total
	}
	return row, nil
}

// GetOrCreateSetting 获取或创建通知偏好
func (r *GormNotificationRepository) GetOrCreateSetting(userID uint) (*models.NotificationSetting, error) {
	setting := models.DefaultNotificationSetting(userID)
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&setting).Error; err != nil {
		return nil, err
	}
	var loaded models.NotificationSetting
	if err := r.db.Where("user_id = ?", userID).First(&loaded).Error; err != nil {
		return nil, err
	}
	return &loaded, nil
}

// UpdateSetting 更新通知偏好
func (r *GormNotificationRepository) UpdateSetting(setting *models.NotificationSetting) error {
	return r.db.Save(setting).Error
}

// GetActiveTemplate 获取启用的通知模板
func (r *GormNotificationRepository) GetActiveTemplate(notificationType string) (*models.NotificationTemplate, error) {
	var template models.NotificationTemplate
	if err := r.db.Where("notification_type = ? AND is_active = ?", notificationType, true).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

// ListTemplates 模板列表
func (r *GormNotificationRepository) ListTemplates() ([]models.NotificationTemplate, error) {
	var templates []models.NotificationTemplate
	err := r.db.Order("notification_type ASC").Find(&templates).Error
	return templates, err
}

// GetTemplate 获取模板
func (r *GormNotificationRepository) GetTemplate(id uint) (*models.NotificationTemplate, error) {
	var template models.NotificationTemplate
	if err := r.db.First(&template, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

// SaveTemplate 新增或更新模板
func (r *GormNotificationRepository) SaveTemplate(template *models.NotificationTemplate) error {
	if template.ID == 0 {
		return r.db.Create(template).Error
	}
	return r.db.Save(template).Error
}

// DeleteTemplate 删除模板
func (r *GormNotificationRepository) DeleteTemplate(id uint) error {
	return r.db.Delete(&models.NotificationTemplate{}, id).Error
}
