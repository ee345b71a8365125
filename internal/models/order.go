package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表（单商品订单）
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                                    // 主键
	BuyerID         uint           `gorm:"index;not null" json:"buyer_id"`                                          // 买家
	SellerID        uint           `gorm:"index;not null" json:"seller_id"`                                         // 卖家
	ItemID          uint           `gorm:"index;not null" json:"item_id"`                                           // 商品
	Quantity        int            `gorm:"not null;default:1" json:"quantity"`                                      // 数量
	TotalPrice      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`                // 订单总价
	Status          string         `gorm:"type:varchar(20);index;not null;default:'pending'" json:"status"`         // 订单状态
	PaymentStatus   string         `gorm:"type:varchar(20);index;not null;default:'pending'" json:"payment_status"` // 支付状态
	PaymentMethod   string         `gorm:"type:varchar(50)" json:"payment_method"`                                  // 支付方式
	PaymentID       string         `gorm:"type:varchar(100)" json:"payment_id"`                                     // 支付流水
	ShippingAddress string         `gorm:"type:text" json:"shipping_address"`                                       // 收货地址
	Notes           string         `gorm:"type:text" json:"notes"`                                                  // 备注
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                                 // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                                 // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                          // 软删除时间

	Buyer      *User       `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`       // 买家
	Seller     *User       `gorm:"foreignKey:SellerID" json:"seller,omitempty"`     // 卖家
	Item       *Item       `gorm:"foreignKey:ItemID" json:"item,omitempty"`         // 商品
	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"order_items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单项
type OrderItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	OrderID   uint      `gorm:"index;not null" json:"order_id"`
	ItemID    uint      `gorm:"index;not null" json:"item_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	Price     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	CreatedAt time.Time `json:"created_at"`

	Item *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
