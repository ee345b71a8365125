package models

import "time"

// Cart 购物车（每个用户一个）
type Cart struct {
	ID        uint      `gorm:"primarykey" json:"id"`                // 主键
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"` // 用户ID
	CreatedAt time.Time `json:"created_at"`                          // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                          // 更新时间

	Items []CartItem `gorm:"foreignKey:CartID" json:"items"` // 购物车项
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// CartItem 购物车项
type CartItem struct {
	ID       uint      `gorm:"primarykey" json:"id"`                              // 主键
	CartID   uint      `gorm:"not null;uniqueIndex:idx_cart_item" json:"cart_id"` // 购物车ID
	ItemID   uint      `gorm:"not null;uniqueIndex:idx_cart_item" json:"item_id"` // 商品ID
	Quantity int       `gorm:"not null;default:1" json:"quantity"`                // 数量
	AddedAt  time.Time `gorm:"autoCreateTime" json:"added_at"`                    // 加入时间

	Item *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
