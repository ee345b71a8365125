package models

import "time"

// Wishlist 收藏夹（每个用户一个）
type Wishlist struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []WishlistItem `gorm:"foreignKey:WishlistID" json:"items"`
}

// TableName 指定表名
func (Wishlist) TableName() string {
	return "wishlists"
}

// WishlistItem 收藏项
type WishlistItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	WishlistID uint      `gorm:"not null;uniqueIndex:idx_wishlist_item" json:"wishlist_id"`
	ItemID     uint      `gorm:"not null;uniqueIndex:idx_wishlist_item" json:"item_id"`
	Notes      string    `gorm:"type:text" json:"notes"`
	AddedAt    time.Time `gorm:"autoCreateTime" json:"added_at"`

	Item *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// TableName 指定表名
func (WishlistItem) TableName() string {
	return "wishlist_items"
}

// WantToBuy 求购意向
type WantToBuy struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                           // 主键
	UserID      uint      `gorm:"index;not null" json:"user_id"`                                  // 发布者
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`                        // 标题
	Description string    `gorm:"type:text" json:"description"`                                   // 描述
	Category    string    `gorm:"type:varchar(100);index" json:"category"`                        // 分类
	MaxPrice    *Money    `gorm:"type:decimal(20,2)" json:"max_price"`                            // 最高价
	Condition   string    `gorm:"type:varchar(20);not null;default:'any'" json:"condition"`       // 成色要求
	Location    string    `gorm:"type:varchar(200)" json:"location"`                              // 地点
	Status      string    `gorm:"type:varchar(20);index;not null;default:'active'" json:"status"` // 状态
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                                        // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                                     // 更新时间

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"` // 发布者
}

// TableName 指定表名
func (WantToBuy) TableName() string {
	return "want_to_buys"
}
