package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderStatuses 合法订单状态
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// 订单支付状态常量
const (
	OrderPaymentStatusPending  = "pending"
	OrderPaymentStatusPaid     = "paid"
	OrderPaymentStatusFailed   = "failed"
	OrderPaymentStatusRefunded = "refunded"
)

// 以物换物状态常量
const (
	BarterStatusPending   = "pending"
	BarterStatusAccepted  = "accepted"
	BarterStatusRejected  = "rejected"
	BarterStatusCompleted = "completed"
)

// 商品成色常量
const (
	ConditionAny     = "any"
	ConditionNew     = "new"
	ConditionLikeNew = "like_new"
	ConditionGood    = "good"
	ConditionFair    = "fair"
	ConditionPoor    = "poor"
)

// ItemConditions 商品可选成色
var ItemConditions = []string{ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor}

// WantToBuyConditions 求购可选成色
var WantToBuyConditions = []string{ConditionAny, ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair}

// WantedConditions 求购帖成色偏好
var WantedConditions = []string{ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor, ConditionAny}

// 求购状态常量
const (
	WantToBuyStatusActive    = "active"
	WantToBuyStatusFulfilled = "fulfilled"
	WantToBuyStatusCancelled = "cancelled"
)

// 地址类型常量
const (
	AddressTypeHome  = "home"
	AddressTypeWork  = "work"
	AddressTypeOther = "other"
)

// AddressCountryDefault 默认国家
const AddressCountryDefault = "Thailand"

// 分类参数类型常量
const (
	CategoryParamText        = "text"
	CategoryParamNumber      = "number"
	CategoryParamBoolean     = "boolean"
	CategoryParamChoice      = "choice"
	CategoryParamMultiChoice = "multichoice"
)

// 论坛帖子类型常量
const (
	ForumPostTypeDiscussion   = "discussion"
	ForumPostTypeQuestion     = "question"
	ForumPostTypeAnnouncement = "announcement"
	ForumPostTypeHelp         = "help"
)

// 论坛帖子状态常量
const (
	ForumPostStatusDraft     = "draft"
	ForumPostStatusPublished = "published"
	ForumPostStatusClosed    = "closed"
	ForumPostStatusDeleted   = "deleted"
)

// ForumCategoryColorDefault 论坛分类默认颜色
const ForumCategoryColorDefault = "#007bff"

// 广告类型常量
const (
	AdTypeBanner  = "banner"
	AdTypeSidebar = "sidebar"
	AdTypePopup   = "popup"
	AdTypeInline  = "inline"
)

// 广告状态常量
const (
	AdStatusDraft   = "draft"
	AdStatusActive  = "active"
	AdStatusPaused  = "paused"
	AdStatusExpired = "expired"
)

// 支付方式类型常量
const (
	PaymentTypeCreditCard   = "credit_card"
	PaymentTypeDebitCard    = "debit_card"
	PaymentTypeBankTransfer = "bank_transfer"
	PaymentTypeAlipay       = "alipay"
	PaymentTypePaypal       = "paypal"
	PaymentTypeCash         = "cash"
	PaymentTypeCrypto       = "crypto"
)

// PaymentTypes 合法支付方式类型
var PaymentTypes = []string{
	PaymentTypeCreditCard,
	PaymentTypeDebitCard,
	PaymentTypeBankTransfer,
	PaymentTypeAlipay,
	PaymentTypePaypal,
	PaymentTypeCash,
	PaymentTypeCrypto,
}

// 支付状态常量
const (
	PaymentStatusPending           = "pending"
	PaymentStatusProcessing        = "processing"
	PaymentStatusCompleted         = "completed"
	PaymentStatusFailed            = "failed"
	PaymentStatusCancelled         = "cancelled"
	PaymentStatusRefunded          = "refunded"
	PaymentStatusPartiallyRefunded = "partially_refunded"
)

// 退款状态常量
const (
	RefundStatusPending   = "pending"
	RefundStatusCompleted = "completed"
	RefundStatusFailed    = "failed"
)

// 支付提供方常量
const (
	PaymentProviderAlipay = "alipay"
	PaymentProviderPaypal = "paypal"
)

// 支付宝回调常量
const (
	AlipayTradeStatusSuccess  = "TRADE_SUCCESS"
	AlipayTradeStatusFinished = "TRADE_FINISHED"
	AlipayTradeStatusClosed   = "TRADE_CLOSED"
)

// 币种常量
const (
	CurrencyDefault = "THB"
)

// 通知类型常量
const (
	NotificationOrderCreated       = "order_created"
	NotificationOrderUpdated       = "order_updated"
	NotificationOrderCancelled     = "order_cancelled"
	NotificationPaymentReceived    = "payment_received"
	NotificationItemSold           = "item_sold"
	NotificationBarterRequest      = "barter_request"
	NotificationBarterAccepted     = "barter_accepted"
	NotificationBarterRejected     = "barter_rejected"
	NotificationMessageReceived    = "message_received"
	NotificationForumReply         = "forum_reply"
	NotificationSystemAnnouncement = "system_announcement"
	NotificationWishlistMatch      = "wishlist_match"
)

// NotificationTypes 合法通知类型
var NotificationTypes = []string{
	NotificationOrderCreated,
	NotificationOrderUpdated,
	NotificationOrderCancelled,
	NotificationPaymentReceived,
	NotificationItemSold,
	NotificationBarterRequest,
	NotificationBarterAccepted,
	NotificationBarterRejected,
	NotificationMessageReceived,
	NotificationForumReply,
	NotificationSystemAnnouncement,
	NotificationWishlistMatch,
}

// 通知优先级常量
const (
	NotificationPriorityLow    = "low"
	NotificationPriorityMedium = "medium"
	NotificationPriorityHigh   = "high"
	NotificationPriorityUrgent = "urgent"
)

// 管理后台批量操作常量
const (
	BulkActionActivateItems   = "activate_items"
	BulkActionDeactivateItems = "deactivate_items"
	BulkActionVerifyUsers     = "verify_users"
	BulkActionDeactivateUsers = "deactivate_users"
)

// 管理面板操作常量
const (
	PanelUserToggleActive       = "toggle_active"
	PanelUserVerify             = "verify"
	PanelItemToggleAvailable    = "toggle_available"
	PanelItemToggleFeatured     = "toggle_featured"
	PanelItemDelete             = "delete"
	PanelPageSize               = 20
	PanelSessionAdminIDKey      = "admin_id"
	PanelSessionAdminNameKey    = "admin_username"
	PanelSessionFlashKey        = "flash"
	PanelSessionTokenVersionKey = "token_version"
	PanelSessionName            = "ait_manage"
	PanelLoginPath              = "/manage/login"
	PanelDashboardPath          = "/manage/dashboard"
	PanelMembershipFilterOn     = "1"
	PanelMembershipFilterOff    = "0"
	PanelSessionMaxAgeSeconds   = 8 * 3600
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码校验场景常量
const (
	CaptchaSceneLogin    = "login"
	CaptchaSceneRegister = "register"
)

// 队列常量
const (
	QueueDefault              = "default"
	TaskNotificationDispatch  = "notification:dispatch"
	TaskEmailSend             = "email:send"
	TaskAnnouncementBroadcast = "announcement:broadcast"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "ait"
)

// 设置键常量
const (
	SettingKeyMarketplaceConfig = "marketplace_config"
	SettingKeyCaptchaConfig     = "captcha_config"
	SettingKeySMTPConfig        = "smtp_config"
)

// 站点语言常量
const (
	LocaleEnUS = "en-US"
	LocaleZhCN = "zh-CN"
	LocaleThTH = "th-TH"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleEnUS, LocaleZhCN, LocaleThTH}

// 搜索排序字段白名单
var SearchSortFields = []string{"created_at", "price", "title", "updated_at"}

// 统计与搜索窗口常量
const (
	StatsRecentDays      = 30
	StatsMonthlyWindow   = 12
	StatsTopCategories   = 5
	StatsTopItems        = 10
	SearchItemSuggestion = 5
	SearchCategorySugg   = 3
)
