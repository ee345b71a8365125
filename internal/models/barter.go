package models

import "time"

// BarterTransaction 以物换物交易
type BarterTransaction struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                            // 主键
	RequesterID     uint      `gorm:"index;not null" json:"requester_id"`                              // 发起人
	ResponderID     uint      `gorm:"index;not null" json:"responder_id"`                              // 响应人
	ItemOfferedID   uint      `gorm:"index;not null" json:"item_offered_id"`                           // 提供的商品
	ItemRequestedID uint      `gorm:"index;not null" json:"item_requested_id"`                         // 想要的商品
	Status          string    `gorm:"type:varchar(20);index;not null;default:'pending'" json:"status"` // 交易状态
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                                         // 创建时间
	UpdatedAt       time.Time `json:"updated_at"`                                                      // 更新时间

	Requester     *User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Responder     *User `gorm:"foreignKey:ResponderID" json:"responder,omitempty"`
	ItemOffered   *Item `gorm:"foreignKey:ItemOfferedID" json:"item_offered,omitempty"`
	ItemRequested *Item `gorm:"foreignKey:ItemRequestedID" json:"item_requested,omitempty"`
}

// TableName 指定表名
func (BarterTransaction) TableName() string {
	return "barter_transactions"
}
