package repository

import "time"

// UserListFilter 用户列表过滤条件
type UserListFilter struct {
	Page       int
	PageSize   int
	Search     string
	IsVerified *bool
	IsActive   *bool
}

// MembershipListFilter 会员列表过滤条件
type MembershipListFilter struct {
	Page      int
	PageSize  int
	ValidOnly *bool
	Now       time.Time
}

// ItemListFilter 商品列表过滤条件
type ItemListFilter struct {
	Page        int
	PageSize    int
	OwnerID     uint
	Featured    bool
	Barter      bool
	IsAvailable *bool
	Category    string
	Search      string
}

// ItemSearchFilter 商品搜索条件
type ItemSearchFilter struct {
	Page      int
	PageSize  int
	Query     string
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	Condition string
	Location  string
	IsBarter  *bool
	SortBy    string
	SortDesc  bool
}

// WantToBuyListFilter 求购列表过滤条件
type WantToBuyListFilter struct {
	Page      int
	PageSize  int
	UserID    uint
	Status    string
	Query     string
	Category  string
	MaxPrice  *float64
	Condition string
	Location  string
	SortBy    string
	SortDesc  bool
}

// WantedListFilter 求购帖列表过滤条件
type WantedListFilter struct {
	Page       int
	PageSize   int
	UserID     uint
	OnlyActive bool
}

// OrderListFilter 订单列表过滤条件
type OrderListFilter struct {
	Page          int
	PageSize      int
	BuyerID       uint
	SellerID      uint
	Status        string
	PaymentStatus string
	Search        string
}

// MessageListFilter 私信列表过滤条件
type MessageListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	WithUser uint
	ItemID   uint
}

// ForumPostListFilter 论坛帖子过滤条件
type ForumPostListFilter struct {
	Page       int
	PageSize   int
	CategoryID uint
	PostType   string
	Search     string
	AuthorID   uint
	Status     string
}

// AdvertisementListFilter 广告列表过滤条件
type AdvertisementListFilter struct {
	Page        int
	PageSize    int
	CreatedByID uint
	Position    string
	ActiveAt    *time.Time
}

// PaymentListFilter 支付列表过滤条件
type PaymentListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	OrderID  uint
	Status   string
}

// NotificationListFilter 通知列表过滤条件
type NotificationListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	IsRead   *bool
	Type     string
	Priority string
}

// AuthzAuditLogListFilter 权限审计日志过滤条件
type AuthzAuditLogListFilter struct {
	Page            int
	PageSize        int
	OperatorAdminID uint
	TargetAdminID   uint
	Action          string
	Role            string
	Object          string
	Method          string
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}
