package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                    // 主键
	Username           string         `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`  // 用户名
	Email              string         `gorm:"type:varchar(255);index;not null" json:"email"`           // 邮箱
	AITEmail           string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"ait_email"` // 校园邮箱
	PasswordHash       string         `gorm:"not null" json:"-"`                                       // 密码哈希（不返回给前端）
	FirstName          string         `gorm:"type:varchar(150);not null;default:''" json:"first_name"` // 名
	LastName           string         `gorm:"type:varchar(150);not null;default:''" json:"last_name"`  // 姓
	Phone              string         `gorm:"type:varchar(20);not null;default:''" json:"phone"`       // 手机号
	Bio                string         `gorm:"type:text" json:"bio"`                                    // 个人简介
	IsVerified         bool           `gorm:"not null;index" json:"is_verified"`                       // 是否已验证
	IsActive           bool           `gorm:"not null;index" json:"is_active"`                         // 是否启用
	IsStaff            bool           `gorm:"not null;default:false" json:"is_staff"`                  // 是否工作人员
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                             // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                                          // 该时间点前签发的 Token 失效
	LastLoginAt        *time.Time     `json:"last_login_at"`                                           // 最后登录时间
	CreatedAt          time.Time      `gorm:"index" json:"date_joined"`                                // 注册时间
	UpdatedAt          time.Time      `json:"updated_at"`                                              // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间

	Membership *UserMembership `gorm:"foreignKey:UserID" json:"membership,omitempty"` // 会员信息
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// UserMembership 用户会员（每个用户至多一条）
type UserMembership struct {
	ID        uint      `gorm:"primarykey" json:"id"`                     // 主键
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`      // 用户ID
	StartDate time.Time `gorm:"not null" json:"start_date"`               // 开始时间
	EndDate   time.Time `gorm:"not null;index" json:"end_date"`           // 到期时间
	IsActive  bool      `gorm:"not null;index" json:"is_active"`          // 是否启用
	Price     Money     `gorm:"type:decimal(20,2);not null" json:"price"` // 最近一次购买金额
	CreatedAt time.Time `json:"created_at"`                               // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                               // 更新时间

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"` // 关联用户
}

// TableName 指定表名
func (UserMembership) TableName() string {
	return "user_memberships"
}

// IsValid 会员是否在有效期内
func (m *UserMembership) IsValid(now time.Time) bool {
	if m == nil {
		return false
	}
	return m.IsActive && m.EndDate.After(now)
}
