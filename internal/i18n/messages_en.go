package i18n

var enUS = map[string]string{
	"error.bad_request":                       "Invalid request parameters",
	"error.unauthorized":                      "Authentication required",
	"error.forbidden":                         "Permission denied",
	"error.not_found":                         "Resource not found",
	"error.internal":                          "Internal server error",
	"error.too_many_requests":                 "Too many requests, please try again later",
	"error.payment_required":                  "Payment required",
	"error.jwt_secret_missing":                "Server authentication is not configured",
	"error.auth_header_missing":               "Authorization header is missing",
	"error.auth_header_invalid":               "Authorization header must be Bearer <token>",
	"error.rate_limit_unavailable":            "Rate limiter is unavailable",
	"error.rate_limited":                      "Too many requests, retry in %d seconds",
	"error.login_rate_limited":                "Too many login attempts, retry in %d seconds",
	"error.queue_unavailable":                 "Queue unavailable",
	"error.user_id_invalid":                   "Invalid user id",
	"error.user_id_type_invalid":              "Invalid user id type",
	"error.admin_id_invalid":                  "Invalid admin id",
	"error.admin_id_type_invalid":             "Invalid admin id type",
	"error.id_invalid":                        "Invalid id",
	"error.login_failed":                      "Invalid username or password",
	"error.login_too_many":                    "Too many login attempts, please try again later",
	"error.password_invalid":                  "Current password is incorrect",
	"error.password_mismatch":                 "Passwords do not match",
	"error.password_weak":                     "Password does not meet the policy",
	"error.password_min_length":               "Password must be at least %d characters",
	"error.password_require_upper":            "Password must contain an uppercase letter",
	"error.password_require_lower":            "Password must contain a lowercase letter",
	"error.password_require_number":           "Password must contain a number",
	"error.password_require_special":          "Password must contain a special character",
	"error.email_invalid":                     "Invalid email address",
	"error.email_domain_not_allowed":          "Please use your AIT email address (@ait.ac.th)",
	"error.username_required":                 "Username is required",
	"error.username_exists":                   "Username already exists",
	"error.email_exists":                      "Email already registered",
	"error.user_disabled":                     "Account is disabled",
	"error.user_not_found":                    "User not found",
	"error.token_invalid":                     "Invalid or expired token",
	"error.token_revoked":                     "Token has been revoked",
	"error.register_failed":                   "Registration failed",
	"error.profile_update_failed":             "Failed to update profile",
	"error.membership_months_invalid":         "Months must be between 1 and 12",
	"error.membership_required":               "Active membership required to feature items",
	"membership.none":                         "No active membership",
	"error.captcha_required":                  "Captcha is required",
	"error.captcha_invalid":                   "Captcha is incorrect",
	"error.captcha_config_invalid":            "Captcha configuration is invalid",
	"error.captcha_unavailable":               "Captcha is unavailable",
	"error.captcha_generate_failed":           "Failed to generate captcha",
	"error.email_service_disabled":            "Email service is disabled",
	"error.email_service_not_configured":      "Email service is not configured",
	"error.smtp_config_invalid":               "SMTP configuration is invalid",
	"error.setting_invalid":                   "Setting value is invalid",
	"error.category_not_found":                "Category not found",
	"error.category_name_exists":              "Category name already exists",
	"error.category_parent_invalid":           "Invalid parent category",
	"error.category_in_use":                   "Category has subcategories",
	"error.category_param_invalid":            "Invalid category parameter",
	"error.category_param_not_found":          "Category parameter not found",
	"error.item_not_found":                    "Item not found",
	"error.item_not_owner":                    "You can only modify your own items",
	"error.item_invalid":                      "Invalid item data",
	"error.item_unavailable":                  "Item is not available",
	"error.item_condition_invalid":            "Invalid item condition",
	"error.item_price_invalid":                "Invalid item price",
	"error.order_not_found":                   "Order not found",
	"error.order_invalid":                     "Invalid order data",
	"error.order_status_invalid":              "Invalid order status",
	"error.order_not_seller":                  "Only the seller can update order status",
	"error.order_not_buyer":                   "Only the buyer can modify this order",
	"error.order_cannot_cancel":               "Order cannot be cancelled at this stage",
	"error.order_own_item":                    "You cannot order your own item",
	"error.cart_quantity_invalid":             "Quantity must be between 1 and 99",
	"error.cart_own_item":                     "You cannot add your own item to the cart",
	"error.cart_item_not_found":               "Item not in cart",
	"error.wishlist_duplicate":                "Item already in wishlist",
	"error.wishlist_item_not_found":           "Item not in wishlist",
	"error.want_to_buy_not_found":             "Want-to-buy post not found",
	"error.want_to_buy_invalid":               "Invalid want-to-buy post",
	"error.wanted_not_found":                  "Wanted post not found",
	"error.wanted_invalid":                    "Invalid wanted post",
	"error.wanted_payment_required":           "No free posts remaining, posting fee required",
	"error.barter_not_found":                  "Barter transaction not found",
	"error.barter_invalid":                    "Invalid barter request",
	"error.barter_offer_not_owned":            "You can only offer your own items",
	"error.barter_self_request":               "You cannot barter for your own item",
	"error.barter_not_eligible":               "Item is not available for barter",
	"error.barter_status_invalid":             "Barter transaction is not in a valid state",
	"error.barter_not_participant":            "You are not part of this barter transaction",
	"error.message_not_found":                 "Message not found",
	"error.message_invalid":                   "Invalid message",
	"error.message_self":                      "You cannot message yourself",
	"error.forum_category_not_found":          "Forum category not found",
	"error.forum_category_exists":             "Forum category already exists",
	"error.forum_category_invalid":            "Invalid forum category",
	"error.forum_post_not_found":              "Post not found",
	"error.forum_post_invalid":                "Invalid post",
	"error.forum_post_locked":                 "Post is locked",
	"error.forum_reply_not_found":             "Reply not found",
	"error.forum_reply_invalid":               "Invalid reply",
	"error.forum_not_author":                  "Only the author can perform this action",
	"error.ad_not_found":                      "Advertisement not found",
	"error.ad_invalid":                        "Invalid advertisement",
	"error.ad_date_range_invalid":             "End date must be after start date",
	"error.payment_method_not_found":          "Payment method not found",
	"error.payment_method_invalid":            "Invalid payment method",
	"error.payment_not_found":                 "Payment not found",
	"error.payment_invalid":                   "Invalid payment request",
	"error.payment_provider_not_supported":    "Payment provider not supported",
	"error.payment_gateway_failed":            "Payment gateway error",
	"error.payment_status_invalid":            "Payment is not in a valid state",
	"error.refund_amount_invalid":             "Invalid refund amount",
	"error.refund_exceeds_remaining":          "Refund exceeds the remaining amount",
	"error.webhook_invalid":                   "Invalid webhook payload",
	"error.signature_invalid":                 "Invalid signature",
	"error.notification_not_found":            "Notification not found",
	"error.notification_invalid":              "Invalid notification",
	"error.notification_template_not_found":   "Notification template not found",
	"error.notification_template_invalid":     "Invalid notification template",
	"error.address_not_found":                 "Address not found",
	"error.address_invalid":                   "Invalid address",
	"error.upload_empty":                      "Upload file is empty",
	"error.upload_too_large":                  "Upload file is too large",
	"error.upload_type_not_allowed":           "File type not allowed",
	"error.upload_image_too_large":            "Image dimensions are too large",
	"error.upload_failed":                     "Upload failed",
	"error.bulk_action_invalid":               "Invalid bulk action",
	"error.announcement_invalid":              "Invalid announcement",
	"error.role_invalid":                      "Invalid role",
	"error.policy_invalid":                    "Invalid policy",
	"error.authz_failed":                      "Permission check failed",
	"error.admin_not_found":                   "Admin not found",
	"error.ad_event_failed":                   "Failed to record advertisement event",
	"error.ad_fetch_failed":                   "Failed to load advertisements",
	"error.ad_save_failed":                    "Failed to save advertisement",
	"error.address_fetch_failed":              "Failed to load addresses",
	"error.address_save_failed":               "Failed to save address",
	"error.announcement_failed":               "Failed to send announcement",
	"error.barter_fetch_failed":               "Failed to load barter transactions",
	"error.barter_save_failed":                "Failed to update barter transaction",
	"error.bulk_action_failed":                "Bulk action failed",
	"error.captcha_verify_failed":             "Captcha verification failed",
	"error.cart_fetch_failed":                 "Failed to load cart",
	"error.cart_update_failed":                "Failed to update cart",
	"error.category_delete_failed":            "Failed to delete category",
	"error.category_fetch_failed":             "Failed to load categories",
	"error.category_save_failed":              "Failed to save category",
	"error.config_fetch_failed":               "Failed to load configuration",
	"error.email_recipient_rejected":          "Recipient address was rejected",
	"error.email_send_failed":                 "Failed to send email",
	"error.forum_fetch_failed":                "Failed to load forum content",
	"error.forum_save_failed":                 "Failed to save forum content",
	"error.item_delete_failed":                "Failed to delete item",
	"error.item_fetch_failed":                 "Failed to load items",
	"error.item_save_failed":                  "Failed to save item",
	"error.membership_fetch_failed":           "Failed to load membership",
	"error.membership_purchase_failed":        "Failed to purchase membership",
	"error.message_delete_failed":             "Failed to delete message",
	"error.message_fetch_failed":              "Failed to load messages",
	"error.message_send_failed":               "Failed to send message",
	"error.notification_create_failed":        "Failed to create notification",
	"error.notification_fetch_failed":         "Failed to load notifications",
	"error.notification_template_save_failed": "Failed to save notification template",
	"error.notification_update_failed":        "Failed to update notification",
	"error.order_create_failed":               "Failed to create order",
	"error.order_fetch_failed":                "Failed to load orders",
	"error.order_update_failed":               "Failed to update order",
	"error.password_change_failed":            "Failed to change password",
	"error.payment_create_failed":             "Failed to create payment",
	"error.payment_fetch_failed":              "Failed to load payments",
	"error.payment_save_failed":               "Failed to save payment method",
	"error.refund_failed":                     "Refund failed",
	"error.search_failed":                     "Search failed",
	"error.setting_value_invalid":             "Invalid setting value",
	"error.settings_fetch_failed":             "Failed to load settings",
	"error.settings_save_failed":              "Failed to save settings",
	"error.statistics_failed":                 "Failed to load statistics",
	"error.user_fetch_failed":                 "Failed to load user",
	"error.want_to_buy_fetch_failed":          "Failed to load want-to-buy posts",
	"error.want_to_buy_save_failed":           "Failed to save want-to-buy post",
	"error.wanted_fetch_failed":               "Failed to load wanted posts",
	"error.wanted_save_failed":                "Failed to save wanted post",
	"error.webhook_failed":                    "Failed to process webhook",
	"error.wishlist_fetch_failed":             "Failed to load wishlist",
	"error.wishlist_update_failed":            "Failed to update wishlist",
	"panel.action_failed":                     "Action failed",
	"panel.forbidden":                         "You do not have permission to perform this action",
	"panel.item_action_done":                  "Item \"%s\" updated",
	"panel.login_failed":                      "Invalid username or password",
	"panel.login_required":                    "Username and password are required",
	"panel.user_action_done":                  "User %s updated",
}
