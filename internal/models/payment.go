package models

import "time"

// PaymentMethod 用户保存的支付方式
type PaymentMethod struct {
	ID               uint      `gorm:"primarykey" json:"id"`                                // 主键
	UserID           uint      `gorm:"index;not null" json:"user_id"`                       // 用户ID
	PaymentType      string    `gorm:"type:varchar(20);index;not null" json:"payment_type"` // 支付类型
	Name             string    `gorm:"type:varchar(100);not null" json:"name"`              // 显示名称
	IsDefault        bool      `gorm:"not null;default:false" json:"is_default"`            // 是否默认
	IsActive         bool      `gorm:"not null;index" json:"is_active"`                     // 是否启用
	EncryptedDetails string    `gorm:"type:text" json:"-"`                                  // 加密后的账户信息
	CreatedAt        time.Time `json:"created_at"`                                          // 创建时间
	UpdatedAt        time.Time `json:"updated_at"`                                          // 更新时间
}

// TableName 指定表名
func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// Payment 支付记录
type Payment struct {
	ID                    uint       `gorm:"primarykey" json:"id"`                                            // 主键
	UserID                uint       `gorm:"index;not null" json:"user_id"`                                   // 付款人
	OrderID               uint       `gorm:"index;not null" json:"order_id"`                                  // 订单ID
	PaymentMethodID       *uint      `gorm:"index" json:"payment_method_id"`                                  // 支付方式
	Amount                Money      `gorm:"type:decimal(20,2);not null" json:"amount"`                       // 支付金额
	Currency              string     `gorm:"type:varchar(3);not null;default:'THB'" json:"currency"`          // 币种
	Status                string     `gorm:"type:varchar(20);index;not null;default:'pending'" json:"status"` // 支付状态
	Provider              string     `gorm:"type:varchar(50)" json:"provider"`                                // 支付提供方
	ProviderTransactionID string     `gorm:"type:varchar(100);index" json:"provider_transaction_id"`          // 第三方流水号
	ProviderResponse      JSON       `gorm:"type:json" json:"provider_response"`                              // 第三方返回数据
	FailureReason         string     `gorm:"type:text" json:"failure_reason"`                                 // 失败原因
	RefundAmount          Money      `gorm:"type:decimal(20,2);not null;default:0" json:"refund_amount"`      // 已退款金额
	CompletedAt           *time.Time `gorm:"index" json:"completed_at"`                                       // 完成时间
	CreatedAt             time.Time  `gorm:"index" json:"created_at"`                                         // 创建时间
	UpdatedAt             time.Time  `json:"updated_at"`                                                      // 更新时间

	Order         *Order         `gorm:"foreignKey:OrderID" json:"order,omitempty"`                  // 关联订单
	PaymentMethod *PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"payment_method,omitempty"` // 关联支付方式
}

// TableName 指定表名
func (Payment) TableName() string {
	return "payments"
}

// PaymentRefund 退款记录
type PaymentRefund struct {
	ID               uint       `gorm:"primarykey" json:"id"`
	PaymentID        uint       `gorm:"index;not null" json:"payment_id"`
	Amount           Money      `gorm:"type:decimal(20,2);not null" json:"amount"`
	Reason           string     `gorm:"type:text" json:"reason"`
	Status           string     `gorm:"type:varchar(20);index;not null;default:'pending'" json:"status"`
	ProviderRefundID string     `gorm:"type:varchar(100)" json:"provider_refund_id"`
	ProviderResponse JSON       `gorm:"type:json" json:"provider_response"`
	CompletedAt      *time.Time `json:"completed_at"`
	CreatedAt        time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	Payment *Payment `gorm:"foreignKey:PaymentID" json:"payment,omitempty"`
}

// TableName 指定表名
func (PaymentRefund) TableName() string {
	return "payment_refunds"
}

// PaymentWebhook 支付回调原始记录
type PaymentWebhook struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	EventID   string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"event_id"`
	Provider  string    `gorm:"type:varchar(50);index;not null" json:"provider"`
	EventType string    `gorm:"type:varchar(100)" json:"event_type"`
	RawData   JSON      `gorm:"type:json" json:"raw_data"`
	Processed bool      `gorm:"not null;default:false;index" json:"processed"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (PaymentWebhook) TableName() string {
	return "payment_webhooks"
}
