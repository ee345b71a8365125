package models

import "time"

// WantedItem 求购帖（受免费发帖额度约束）
type WantedItem struct {
	ID                  uint      `gorm:"primarykey" json:"id"`
	UserID              uint      `gorm:"index;not null" json:"user_id"`
	Title               string    `gorm:"type:varchar(200);not null" json:"title"`
	Description         string    `gorm:"type:text;not null" json:"description"`
	MaxPrice            *Money    `gorm:"type:decimal(20,2)" json:"max_price"`
	Category            string    `gorm:"type:varchar(100)" json:"category"`
	ConditionPreference string    `gorm:"type:varchar(20);not null;default:'any'" json:"condition_preference"`
	ContactPhone        string    `gorm:"type:varchar(20)" json:"contact_phone"`
	Location            string    `gorm:"type:varchar(200)" json:"location"`
	IsActive            bool      `gorm:"not null;index" json:"is_active"`
	PaidAmount          Money     `gorm:"type:decimal(20,2);not null;default:0" json:"paid_amount"`
	IsFreePost          bool      `gorm:"not null;default:false;index" json:"is_free_post"`
	CreatedAt           time.Time `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (WantedItem) TableName() string {
	return "wanted_items"
}
