package models

import (
	"strings"
	"time"
)

// Address 收货地址
type Address struct {
	ID            uint      `gorm:"primarykey" json:"id"`                                         // 主键
	UserID        uint      `gorm:"index;not null" json:"user_id"`                                // 用户ID
	Name          string    `gorm:"type:varchar(100);not null" json:"name"`                       // 地址别名
	AddressType   string    `gorm:"type:varchar(10);not null;default:'home'" json:"address_type"` // 地址类型
	RecipientName string    `gorm:"type:varchar(100);not null" json:"recipient_name"`             // 收件人
	PhoneNumber   string    `gorm:"type:varchar(20);not null" json:"phone_number"`                // 联系电话
	AddressLine1  string    `gorm:"type:varchar(255);not null" json:"address_line_1"`             // 地址行 1
	AddressLine2  string    `gorm:"type:varchar(255)" json:"address_line_2"`                      // 地址行 2
	City          string    `gorm:"type:varchar(100);not null" json:"city"`                       // 城市
	StateProvince string    `gorm:"type:varchar(100)" json:"state_province"`                      // 省/州
	PostalCode    string    `gorm:"type:varchar(20)" json:"postal_code"`                          // 邮编
	Country       string    `gorm:"type:varchar(100);not null;default:'Thailand'" json:"country"` // 国家
	IsDefault     bool      `gorm:"not null;default:false;index" json:"is_default"`               // 是否默认
	IsActive      bool      `gorm:"not null;index" json:"is_active"`                              // 是否启用
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt     time.Time `json:"updated_at"`                                                   // 更新时间
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}

// FullAddress 拼接非空地址字段
func (a *Address) FullAddress() string {
	if a == nil {
		return ""
	}
	parts := []string{a.AddressLine1, a.AddressLine2, a.City, a.StateProvince, a.PostalCode, a.Country}
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			result = append(result, strings.TrimSpace(part))
		}
	}
	return strings.Join(result, ", ")
}
