package models

import "time"

// Notification 站内通知
type Notification struct {
	ID                 uint       `gorm:"primarykey" json:"id"`                                             // 主键
	UserID             uint       `gorm:"index;not null" json:"user_id"`                                    // 接收人
	NotificationType   string     `gorm:"type:varchar(50);index;not null" json:"notification_type"`         // 通知类型
	Title              string     `gorm:"type:varchar(200);not null" json:"title"`                          // 标题
	Message            string     `gorm:"type:text;not null" json:"message"`                                // 内容
	Priority           string     `gorm:"type:varchar(10);index;not null;default:'medium'" json:"priority"` // 优先级
	RelatedItemID      *uint      `json:"related_item_id"`                                                  // 关联商品
	RelatedOrderID     *uint      `json:"related_order_id"`                                                 // 关联订单
	RelatedBarterID    *uint      `json:"related_barter_id"`                                                // 关联换物交易
	RelatedForumPostID *uint      `json:"related_forum_post_id"`                                            // 关联帖子
	IsRead             bool       `gorm:"not null;default:false;index" json:"is_read"`                      // 是否已读
	IsSent             bool       `gorm:"not null;default:false" json:"is_sent"`                            // 邮件是否已发送
	ReadAt             *time.Time `json:"read_at"`                                                          // 阅读时间
	CreatedAt          time.Time  `gorm:"index" json:"created_at"`                                          // 创建时间
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}

// NotificationSetting 用户通知偏好
type NotificationSetting struct {
	ID                       uint      `gorm:"primarykey" json:"id"`
	UserID                   uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	EmailOrderUpdates        bool      `gorm:"not null" json:"email_order_updates"`
	EmailPaymentUpdates      bool      `gorm:"not null" json:"email_payment_updates"`
	EmailBarterUpdates       bool      `gorm:"not null" json:"email_barter_updates"`
	EmailMessages            bool      `gorm:"not null" json:"email_messages"`
	EmailForumReplies        bool      `gorm:"not null" json:"email_forum_replies"`
	EmailSystemAnnouncements bool      `gorm:"not null" json:"email_system_announcements"`
	PushOrderUpdates         bool      `gorm:"not null" json:"push_order_updates"`
	PushPaymentUpdates       bool      `gorm:"not null" json:"push_payment_updates"`
	PushBarterUpdates        bool      `gorm:"not null" json:"push_barter_updates"`
	PushMessages             bool      `gorm:"not null" json:"push_messages"`
	PushForumReplies         bool      `gorm:"not null" json:"push_forum_replies"`
	PushSystemAnnouncements  bool      `gorm:"not null" json:"push_system_announcements"`
	InAppOrderUpdates        bool      `gorm:"not null" json:"in_app_order_updates"`
	InAppPaymentUpdates      bool      `gorm:"not null" json:"in_app_payment_updates"`
	InAppBarterUpdates       bool      `gorm:"not null" json:"in_app_barter_updates"`
	InAppMessages            bool      `gorm:"not null" json:"in_app_messages"`
	InAppForumReplies        bool      `gorm:"not null" json:"in_app_forum_replies"`
	InAppSystemAnnouncements bool      `gorm:"not null" json:"in_app_system_announcements"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

// TableName 指定表名
func (NotificationSetting) TableName() string {
	return "notification_settings"
}

// DefaultNotificationSetting 返回全部开启的默认偏好
func DefaultNotificationSetting(userID uint) NotificationSetting {
	return NotificationSetting{
		UserID:                   userID,
		EmailOrderUpdates:        true,
		EmailPaymentUpdates:      true,
		EmailBarterUpdates:       true,
		EmailMessages:            true,
		EmailForumReplies:        true,
		EmailSystemAnnouncements: true,
		PushOrderUpdates:         true,
		PushPaymentUpdates:       true,
		PushBarterUpdates:        true,
		PushMessages:             true,
		PushForumReplies:         true,
		PushSystemAnnouncements:  true,
		InAppOrderUpdates:        true,
		InAppPaymentUpdates:      true,
		InAppBarterUpdates:       true,
		InAppMessages:            true,
		InAppForumReplies:        true,
		InAppSystemAnnouncements: true,
	}
}

// NotificationTemplate 通知模板
type NotificationTemplate struct {
	ID                   uint      `gorm:"primarykey" json:"id"`
	NotificationType     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"notification_type"`
	TitleTemplate        string    `gorm:"type:varchar(200);not null" json:"title_template"`
	MessageTemplate      string    `gorm:"type:text;not null" json:"message_template"`
	EmailSubjectTemplate string    `gorm:"type:varchar(200)" json:"email_subject_template"`
	EmailBodyTemplate    string    `gorm:"type:text" json:"email_body_template"`
	IsActive             bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// TableName 指定表名
func (NotificationTemplate) TableName() string {
	return "notification_templates"
}
