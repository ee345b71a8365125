package models

import (
	"time"

	"github.com/ait-marketplace/internal/constants"
)

// Advertisement 广告位投放
type Advertisement struct {
	ID               uint      `gorm:"primarykey" json:"id"`                                          // 主键
	Title            string    `gorm:"type:varchar(200);not null" json:"title"`                       // 标题
	Description      string    `gorm:"type:text" json:"description"`                                  // 描述
	AdType           string    `gorm:"type:varchar(20);not null;default:'banner'" json:"ad_type"`     // 类型
	ImageURL         string    `gorm:"type:varchar(500)" json:"image_url"`                            // 图片
	LinkURL          string    `gorm:"type:varchar(500)" json:"link_url"`                             // 跳转链接
	Status           string    `gorm:"type:varchar(20);index;not null;default:'draft'" json:"status"` // 状态
	TargetCategories string    `gorm:"type:varchar(500)" json:"target_categories"`                    // 定向分类（逗号分隔）
	TargetLocations  string    `gorm:"type:varchar(500)" json:"target_locations"`                     // 定向地点（逗号分隔）
	StartDate        time.Time `gorm:"index;not null" json:"start_date"`                              // 开始时间
	EndDate          time.Time `gorm:"index;not null" json:"end_date"`                                // 结束时间
	ClickCount       int64     `gorm:"not null;default:0" json:"click_count"`                         // 点击次数
	ViewCount        int64     `gorm:"not null;default:0" json:"view_count"`                          // 展示次数
	Position         string    `gorm:"type:varchar(50);index" json:"position"`                        // 广告位
	SortOrder        int       `gorm:"not null;default:0;index" json:"sort_order"`                    // 排序
	CreatedByID      uint      `gorm:"index;not null" json:"created_by_id"`                           // 创建者
	CreatedAt        time.Time `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt        time.Time `json:"updated_at"`                                                    // 更新时间

	CreatedBy *User `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"` // 创建者
}

// TableName 指定表名
func (Advertisement) TableName() string {
	return "advertisements"
}

// IsActiveAt 广告在指定时间是否处于投放中
func (a *Advertisement) IsActiveAt(now time.Time) bool {
	if a == nil || a.Status != constants.AdStatusActive {
		return false
	}
	return !now.Before(a.StartDate) && !now.After(a.EndDate)
}

// ClickThroughRate 点击率（百分比）
func (a *Advertisement) ClickThroughRate() float64 {
	if a == nil || a.ViewCount <= 0 {
		return 0
	}
	return float64(a.ClickCount) / float64(a.ViewCount) * 100
}

// AdClick 广告点击记录
type AdClick struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	AdvertisementID uint      `gorm:"index;not null" json:"advertisement_id"`
	UserID          *uint     `gorm:"index" json:"user_id"`
	IPAddress       string    `gorm:"type:varchar(64)" json:"ip_address"`
	UserAgent       string    `gorm:"type:text" json:"user_agent"`
	Referer         string    `gorm:"type:varchar(500)" json:"referer"`
	ClickedAt       time.Time `gorm:"index;autoCreateTime" json:"clicked_at"`
}

// TableName 指定表名
func (AdClick) TableName() string {
	return "ad_clicks"
}

// AdView 广告展示记录
type AdView struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	AdvertisementID uint      `gorm:"index;not null" json:"advertisement_id"`
	UserID          *uint     `gorm:"index" json:"user_id"`
	IPAddress       string    `gorm:"type:varchar(64)" json:"ip_address"`
	UserAgent       string    `gorm:"type:text" json:"user_agent"`
	PageURL         string    `gorm:"type:varchar(500)" json:"page_url"`
	ViewedAt        time.Time `gorm:"index;autoCreateTime" json:"viewed_at"`
}

// TableName 指定表名
func (AdView) TableName() string {
	return "ad_views"
}
