package models

import (
	"time"

	"gorm.io/gorm"
)

// Item 商品表（出售或以物换物）
type Item struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                        // 主键
	OwnerID      uint           `gorm:"index;not null" json:"owner_id"`                              // 发布者
	Title        string         `gorm:"type:varchar(200);not null" json:"title"`                     // 标题
	Description  string         `gorm:"type:text" json:"description"`                                // 描述
	Price        *Money         `gorm:"type:decimal(20,2)" json:"price"`                             // 价格（纯换物可为空）
	Category     string         `gorm:"type:varchar(100);index;not null;default:''" json:"category"` // 分类名称（兼容旧数据）
	CategoryID   *uint          `gorm:"index" json:"category_id"`                                    // 分类
	ImageURL     string         `gorm:"type:varchar(500)" json:"image_url"`                          // 封面
	ImageURLs    StringArray    `gorm:"type:json" json:"image_urls"`                                 // 图片列表
	IsAvailable  bool           `gorm:"not null;index" json:"is_available"`                          // 是否在售
	IsBarter     bool           `gorm:"not null;default:false;index" json:"is_barter"`               // 仅换物
	AllowBarter  bool           `gorm:"not null;default:false" json:"allow_barter"`                  // 接受换物
	IsFeatured   bool           `gorm:"not null;default:false;index" json:"is_featured"`             // 是否精选
	DesiredItem  string         `gorm:"type:varchar(200)" json:"desired_item"`                       // 期望交换物
	Condition    string         `gorm:"type:varchar(20);not null;default:'good'" json:"condition"`   // 成色
	Location     string         `gorm:"type:varchar(200)" json:"location"`                           // 交易地点
	ContactPhone string         `gorm:"type:varchar(20)" json:"contact_phone"`                       // 联系电话
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                                     // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	Owner       *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`           // 发布者
	CategoryRef *Category `gorm:"foreignKey:CategoryID" json:"category_ref,omitempty"` // 关联分类
}

// TableName 指定表名
func (Item) TableName() string {
	return "items"
}

// BarterEligible 是否可参与以物换物
func (i *Item) BarterEligible() bool {
	return i != nil && (i.IsBarter || i.AllowBarter)
}
