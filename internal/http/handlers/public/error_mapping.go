package public

import (
	handlershared "github.com/ait-marketplace/internal/http/handlers/shared"
	"github.com/ait-marketplace/internal/http/response"
	"github.com/ait-marketplace/internal/service"
)

type mappedHandlerError = handlershared.MappedError

var commonErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidInput, Code: response.CodeBadRequest, Key: "error.bad_request"},
	{Target: service.ErrForbidden, Code: response.CodeForbidden, Key: "error.forbidden"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.not_found"},
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
}

var authErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.login_failed"},
	{Target: service.ErrUserDisabled, Code: response.CodeUnauthorized, Key: "error.user_disabled"},
	{Target: service.ErrInvalidToken, Code: response.CodeUnauthorized, Key: "error.token_invalid"},
	{Target: service.ErrTokenRevoked, Code: response.CodeUnauthorized, Key: "error.token_revoked"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_invalid"},
	{Target: service.ErrPasswordMismatch, Code: response.CodeBadRequest, Key: "error.password_mismatch"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.password_weak"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrEmailDomainNotAllowed, Code: response.CodeBadRequest, Key: "error.email_domain_not_allowed"},
	{Target: service.ErrUsernameRequired, Code: response.CodeBadRequest, Key: "error.username_required"},
	{Target: service.ErrUsernameExists, Code: response.CodeConflict, Key: "error.username_exists"},
	{Target: service.ErrEmailExists, Code: response.CodeConflict, Key: "error.email_exists"},
	{Target: service.ErrMembershipMonthsInvalid, Code: response.CodeBadRequest, Key: "error.membership_months_invalid"},
}

var captchaErrorRules = []mappedHandlerError{
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrCaptchaConfigInvalid, Code: response.CodeInternal, Key: "error.captcha_config_invalid"},
}

var categoryErrorRules = []mappedHandlerError{
	{Target: service.ErrCategoryNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
}

var itemErrorRules = []mappedHandlerError{
	{Target: service.ErrItemNotFound, Code: response.CodeNotFound, Key: "error.item_not_found"},
	{Target: service.ErrItemNotOwner, Code: response.CodeForbidden, Key: "error.item_not_owner"},
	{Target: service.ErrMembershipRequired, Code: response.CodeForbidden, Key: "error.membership_required"},
	{Target: service.ErrItemInvalid, Code: response.CodeBadRequest, Key: "error.item_invalid"},
	{Target: service.ErrItemUnavailable, Code: response.CodeNotFound, Key: "error.item_unavailable"},
	{Target: service.ErrItemConditionInvalid, Code: response.CodeBadRequest, Key: "error.item_condition_invalid"},
	{Target: service.ErrItemPriceInvalid, Code: response.CodeBadRequest, Key: "error.item_price_invalid"},
	{Target: service.ErrCategoryNotFound, Code: response.CodeBadRequest, Key: "error.category_not_found"},
}

var uploadErrorRules = []mappedHandlerError{
	{Target: service.ErrUploadEmpty, Code: response.CodeBadRequest, Key: "error.upload_empty"},
	{Target: service.ErrUploadTooLarge, Code: response.CodeBadRequest, Key: "error.upload_too_large"},
	{Target: service.ErrUploadTypeNotAllowed, Code: response.CodeBadRequest, Key: "error.upload_type_not_allowed"},
	{Target: service.ErrUploadImageTooLarge, Code: response.CodeBadRequest, Key: "error.upload_image_too_large"},
}

var notificationErrorRules = []mappedHandlerError{
	{Target: service.ErrNotificationNotFound, Code: response.CodeNotFound, Key: "error.notification_not_found"},
	{Target: service.ErrNotificationInvalid, Code: response.CodeBadRequest, Key: "error.notification_invalid"},
}

var orderErrorRules = []mappedHandlerError{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrOrderInvalid, Code: response.CodeBadRequest, Key: "error.order_invalid"},
	{Target: service.ErrOrderStatusInvalid, Code: response.CodeBadRequest, Key: "error.order_status_invalid"},
	{Target: service.ErrOrderNotSeller, Code: response.CodeForbidden, Key: "error.order_not_seller"},
	{Target: service.ErrOrderNotBuyer, Code: response.CodeForbidden, Key: "error.order_not_buyer"},
	{Target: service.ErrOrderCannotCancel, Code: response.CodeBadRequest, Key: "error.order_cannot_cancel"},
	{Target: service.ErrOrderOwnItem, Code: response.CodeBadRequest, Key: "error.order_own_item"},
	{Target: service.ErrItemNotFound, Code: response.CodeNotFound, Key: "error.item_not_found"},
	{Target: service.ErrItemUnavailable, Code: response.CodeBadRequest, Key: "error.item_unavailable"},
}

var cartErrorRules = []mappedHandlerError{
	{Target: service.ErrCartQuantityInvalid, Code: response.CodeBadRequest, Key: "error.cart_quantity_invalid"},
	{Target: service.ErrCartOwnItem, Code: response.CodeBadRequest, Key: "error.cart_own_item"},
	{Target: service.ErrCartItemNotFound, Code: response.CodeNotFound, Key: "error.cart_item_not_found"},
	{Target: service.ErrItemNotFound, Code: response.CodeNotFound, Key: "error.item_not_found"},
	{Target: service.ErrItemUnavailable, Code: response.CodeNotFound, Key: "error.item_unavailable"},
}

var wishlistErrorRules = []mappedHandlerError{
	{Target: service.ErrWishlistDuplicate, Code: response.CodeBadRequest, Key: "error.wishlist_duplicate"},
	{Target: service.ErrWishlistItemNotFound, Code: response.CodeNotFound, Key: "error.wishlist_item_not_found"},
	{Target: service.ErrWantToBuyNotFound, Code: response.CodeNotFound, Key: "error.want_to_buy_not_found"},
	{Target: service.ErrWantToBuyInvalid, Code: response.CodeBadRequest, Key: "error.want_to_buy_invalid"},
	{Target: service.ErrItemNotFound, Code: response.CodeNotFound, Key: "error.item_not_found"},
	{Target: service.ErrItemUnavailable, Code: response.CodeNotFound, Key: "error.item_unavailable"},
}

var wantedErrorRules = []mappedHandlerError{
	{Target: service.ErrWantedNotFound, Code: response.CodeNotFound, Key: "error.wanted_not_found"},
	{Target: service.ErrWantedInvalid, Code: response.CodeBadRequest, Key: "error.wanted_invalid"},
	{Target: service.ErrWantedPaymentRequired, Code: response.CodePaymentRequired, Key: "error.wanted_payment_required"},
}

var barterErrorRules = []mappedHandlerError{
	{Target: service.ErrBarterNotFound, Code: response.CodeNotFound, Key: "error.barter_not_found"},
	{Target: service.ErrBarterInvalid, Code: response.CodeBadRequest, Key: "error.barter_invalid"},
	{Target: service.ErrBarterOfferNotOwned, Code: response.CodeBadRequest, Key: "error.barter_offer_not_owned"},
	{Target: service.ErrBarterSelfRequest, Code: response.CodeBadRequest, Key: "error.barter_self_request"},
	{Target: service.ErrBarterNotEligible, Code: response.CodeBadRequest, Key: "error.barter_not_eligible"},
	{Target: service.ErrBarterStatusInvalid, Code: response.CodeBadRequest, Key: "error.barter_status_invalid"},
	{Target: service.ErrBarterNotParticipant, Code: response.CodeForbidden, Key: "error.barter_not_participant"},
	{Target: service.ErrItemNotFound, Code: response.CodeNotFound, Key: "error.item_not_found"},
}

var chatErrorRules = []mappedHandlerError{
	{Target: service.ErrMessageNotFound, Code: response.CodeNotFound, Key: "error.message_not_found"},
	{Target: service.ErrMessageInvalid, Code: response.CodeBadRequest, Key: "error.message_invalid"},
	{Target: service.ErrMessageSelf, Code: response.CodeBadRequest, Key: "error.message_self"},
	{Target: service.ErrItemNotFound, Code: response.CodeNotFound, Key: "error.item_not_found"},
}

var forumErrorRules = []mappedHandlerError{
	{Target: service.ErrForumCategoryNotFound, Code: response.CodeNotFound, Key: "error.forum_category_not_found"},
	{Target: service.ErrForumPostNotFound, Code: response.CodeNotFound, Key: "error.forum_post_not_found"},
	{Target: service.ErrForumPostInvalid, Code: response.CodeBadRequest, Key: "error.forum_post_invalid"},
	{Target: service.ErrForumPostLocked, Code: response.CodeForbidden, Key: "error.forum_post_locked"},
	{Target: service.ErrForumReplyNotFound, Code: response.CodeNotFound, Key: "error.forum_reply_not_found"},
	{Target: service.ErrForumReplyInvalid, Code: response.CodeBadRequest, Key: "error.forum_reply_invalid"},
	{Target: service.ErrForumNotAuthor, Code: response.CodeForbidden, Key: "error.forum_not_author"},
}

var advertisementErrorRules = []mappedHandlerError{
	{Target: service.ErrAdNotFound, Code: response.CodeNotFound, Key: "error.ad_not_found"},
	{Target: service.ErrAdInvalid, Code: response.CodeBadRequest, Key: "error.ad_invalid"},
	{Target: service.ErrAdDateRangeInvalid, Code: response.CodeBadRequest, Key: "error.ad_date_range_invalid"},
}

var paymentErrorRules = []mappedHandlerError{
	{Target: service.ErrPaymentMethodNotFound, Code: response.CodeNotFound, Key: "error.payment_method_not_found"},
	{Target: service.ErrPaymentMethodInvalid, Code: response.CodeBadRequest, Key: "error.payment_method_invalid"},
	{Target: service.ErrPaymentNotFound, Code: response.CodeNotFound, Key: "error.payment_not_found"},
	{Target: service.ErrPaymentInvalid, Code: response.CodeBadRequest, Key: "error.payment_invalid"},
	{Target: service.ErrPaymentProviderNotSupported, Code: response.CodeBadRequest, Key: "error.payment_provider_not_supported"},
	{Target: service.ErrPaymentGatewayFailed, Code: response.CodeBadRequest, Key: "error.payment_gateway_failed"},
	{Target: service.ErrPaymentStatusInvalid, Code: response.CodeBadRequest, Key: "error.payment_status_invalid"},
	{Target: service.ErrRefundAmountInvalid, Code: response.CodeBadRequest, Key: "error.refund_amount_invalid"},
	{Target: service.ErrRefundExceedsRemaining, Code: response.CodeBadRequest, Key: "error.refund_exceeds_remaining"},
	{Target: service.ErrWebhookInvalid, Code: response.CodeBadRequest, Key: "error.webhook_invalid"},
	{Target: service.ErrSignatureInvalid, Code: response.CodeBadRequest, Key: "error.signature_invalid"},
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
}

var addressErrorRules = []mappedHandlerError{
	{Target: service.ErrAddressNotFound, Code: response.CodeNotFound, Key: "error.address_not_found"},
	{Target: service.ErrAddressInvalid, Code: response.CodeBadRequest, Key: "error.address_invalid"},
}
