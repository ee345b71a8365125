package service

import "errors"

// 通用错误
var (
	ErrNotFound            = errors.New("record not found")
	ErrForbidden           = errors.New("permission denied")
	ErrInvalidInput        = errors.New("invalid input")
	ErrQueueUnavailable    = errors.New("queue unavailable")
	ErrConfigInvalid       = errors.New("config invalid")
	ErrSettingValueInvalid = errors.New("setting value invalid")
)

// 认证与用户
var (
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrInvalidPassword         = errors.New("invalid password")
	ErrPasswordMismatch        = errors.New("passwords do not match")
	ErrWeakPassword            = errors.New("password does not satisfy policy")
	ErrInvalidEmail            = errors.New("invalid email")
	ErrEmailDomainNotAllowed   = errors.New("email domain not allowed")
	ErrUsernameRequired        = errors.New("username required")
	ErrUsernameExists          = errors.New("username already exists")
	ErrEmailExists             = errors.New("email already exists")
	ErrUserDisabled            = errors.New("user disabled")
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidToken            = errors.New("invalid token")
	ErrTokenRevoked            = errors.New("token revoked")
	ErrMembershipMonthsInvalid = errors.New("membership months invalid")
	ErrMembershipRequired      = errors.New("active membership required")
)

// 验证码
var (
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
)

// 邮件
var (
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
	ErrSMTPConfigInvalid         = errors.New("smtp config invalid")
)

// 分类
var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryNameExists    = errors.New("category name exists")
	ErrCategoryParentInvalid = errors.New("category parent invalid")
	ErrCategoryInUse         = errors.New("category has children")
	ErrCategoryParamInvalid  = errors.New("category parameter invalid")
)

// 商品
var (
	ErrItemNotFound         = errors.New("item not found")
	ErrItemNotOwner         = errors.New("not the item owner")
	ErrItemInvalid          = errors.New("item invalid")
	ErrItemUnavailable      = errors.New("item unavailable")
	ErrItemConditionInvalid = errors.New("item condition invalid")
	ErrItemPriceInvalid     = errors.New("item price invalid")
)

// 订单
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderInvalid       = errors.New("order invalid")
	ErrOrderStatusInvalid = errors.New("order status invalid")
	ErrOrderNotSeller     = errors.New("only the seller can update order status")
	ErrOrderNotBuyer      = errors.New("only the buyer can modify this order")
	ErrOrderCannotCancel  = errors.New("order cannot be cancelled")
	ErrOrderOwnItem       = errors.New("cannot order own item")
)

// 购物车与收藏
var (
	ErrCartQuantityInvalid  = errors.New("cart quantity invalid")
	ErrCartOwnItem          = errors.New("cannot add own item to cart")
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrWishlistDuplicate    = errors.New("item already in wishlist")
	ErrWishlistItemNotFound = errors.New("wishlist item not found")
	ErrWantToBuyNotFound    = errors.New("want to buy not found")
	ErrWantToBuyInvalid     = errors.New("want to buy invalid")
)

// 求购帖
var (
	ErrWantedNotFound        = errors.New("wanted item not found")
	ErrWantedInvalid         = errors.New("wanted item invalid")
	ErrWantedPaymentRequired = errors.New("posting fee required")
)

// 以物换物
var (
	ErrBarterNotFound       = errors.New("barter not found")
	ErrBarterInvalid        = errors.New("barter invalid")
	ErrBarterOfferNotOwned  = errors.New("offered item must be owned by requester")
	ErrBarterSelfRequest    = errors.New("cannot barter for own item")
	ErrBarterNotEligible    = errors.New("item not available for barter")
	ErrBarterStatusInvalid  = errors.New("barter status invalid")
	ErrBarterNotParticipant = errors.New("not a barter participant")
)

// 私信
var (
	ErrMessageNotFound = errors.New("message not found")
	ErrMessageInvalid  = errors.New("message invalid")
	ErrMessageSelf     = errors.New("cannot message yourself")
)

// 论坛
var (
	ErrForumCategoryNotFound = errors.New("forum category not found")
	ErrForumCategoryExists   = errors.New("forum category exists")
	ErrForumCategoryInvalid  = errors.New("forum category invalid")
	ErrForumPostNotFound     = errors.New("forum post not found")
	ErrForumPostInvalid      = errors.New("forum post invalid")
	ErrForumPostLocked       = errors.New("forum post locked")
	ErrForumReplyNotFound    = errors.New("forum reply not found")
	ErrForumReplyInvalid     = errors.New("forum reply invalid")
	ErrForumNotAuthor        = errors.New("not the post author")
)

// 广告
var (
	ErrAdNotFound         = errors.New("advertisement not found")
	ErrAdInvalid          = errors.New("advertisement invalid")
	ErrAdDateRangeInvalid = errors.New("advertisement end date must be after start date")
)

// 支付
var (
	ErrPaymentMethodNotFound       = errors.New("payment method not found")
	ErrPaymentMethodInvalid        = errors.New("payment method invalid")
	ErrPaymentNotFound             = errors.New("payment not found")
	ErrPaymentInvalid              = errors.New("payment invalid")
	ErrPaymentProviderNotSupported = errors.New("payment provider not supported")
	ErrPaymentGatewayFailed        = errors.New("payment gateway failed")
	ErrPaymentStatusInvalid        = errors.New("payment status invalid")
	ErrRefundAmountInvalid         = errors.New("refund amount invalid")
	ErrRefundExceedsRemaining      = errors.New("refund exceeds remaining amount")
	ErrWebhookInvalid              = errors.New("webhook payload invalid")
	ErrSignatureInvalid            = errors.New("signature invalid")
)

// 通知
var (
	ErrNotificationNotFound         = errors.New("notification not found")
	ErrNotificationInvalid          = errors.New("notification invalid")
	ErrNotificationTemplateNotFound = errors.New("notification template not found")
	ErrNotificationTemplateInvalid  = errors.New("notification template invalid")
)

// 地址
var (
	ErrAddressNotFound = errors.New("address not found")
	ErrAddressInvalid  = errors.New("address invalid")
)

// 上传
var (
	ErrUploadEmpty          = errors.New("upload file empty")
	ErrUploadTooLarge       = errors.New("upload file too large")
	ErrUploadTypeNotAllowed = errors.New("upload file type not allowed")
	ErrUploadImageTooLarge  = errors.New("upload image dimensions too large")
)

// 管理后台
var (
	ErrBulkActionInvalid   = errors.New("bulk action invalid")
	ErrAnnouncementInvalid = errors.New("announcement invalid")
)
