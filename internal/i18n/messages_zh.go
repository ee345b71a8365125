package i18n

var zhCN = map[string]string{
	"error.bad_request":                       "请求参数错误",
	"error.unauthorized":                      "请先登录",
	"error.forbidden":                         "无权限执行该操作",
	"error.not_found":                         "资源不存在",
	"error.internal":                          "服务器内部错误",
	"error.too_many_requests":                 "请求过于频繁，请稍后再试",
	"error.payment_required":                  "需要付费",
	"error.jwt_secret_missing":                "服务端鉴权未配置",
	"error.auth_header_missing":               "缺少 Authorization 请求头",
	"error.auth_header_invalid":               "Authorization 格式应为 Bearer <token>",
	"error.rate_limit_unavailable":            "限流服务不可用",
	"error.rate_limited":                      "请求过于频繁，请 %d 秒后再试",
	"error.login_rate_limited":                "登录尝试过多，请 %d 秒后再试",
	"error.queue_unavailable":                 "任务队列不可用",
	"error.user_id_invalid":                   "用户 ID 无效",
	"error.user_id_type_invalid":              "用户 ID 类型错误",
	"error.admin_id_invalid":                  "管理员 ID 无效",
	"error.admin_id_type_invalid":             "管理员 ID 类型错误",
	"error.id_invalid":                        "ID 无效",
	"error.login_failed":                      "用户名或密码错误",
	"error.login_too_many":                    "登录尝试过多，请稍后再试",
	"error.password_invalid":                  "原密码错误",
	"error.password_mismatch":                 "两次输入的密码不一致",
	"error.password_weak":                     "密码不符合安全策略",
	"error.password_min_length":               "密码长度至少为 %d 位",
	"error.password_require_upper":            "密码必须包含大写字母",
	"error.password_require_lower":            "密码必须包含小写字母",
	"error.password_require_number":           "密码必须包含数字",
	"error.password_require_special":          "密码必须包含特殊字符",
	"error.email_invalid":                     "邮箱格式错误",
	"error.email_domain_not_allowed":          "请使用 AIT 邮箱（@ait.ac.th）",
	"error.username_required":                 "用户名不能为空",
	"error.username_exists":                   "用户名已存在",
	"error.email_exists":                      "邮箱已被注册",
	"error.user_disabled":                     "账号已被禁用",
	"error.user_not_found":                    "用户不存在",
	"error.token_invalid":                     "令牌无效或已过期",
	"error.token_revoked":                     "令牌已失效",
	"error.register_failed":                   "注册失败",
	"error.profile_update_failed":             "更新资料失败",
	"error.membership_months_invalid":         "购买月数必须在 1 到 12 之间",
	"error.membership_required":               "精选商品需要有效会员",
	"membership.none":                         "暂无有效会员",
	"error.captcha_required":                  "请完成验证码",
	"error.captcha_invalid":                   "验证码错误",
	"error.captcha_config_invalid":            "验证码配置错误",
	"error.captcha_unavailable":               "验证码不可用",
	"error.captcha_generate_failed":           "生成验证码失败",
	"error.email_service_disabled":            "邮件服务未启用",
	"error.email_service_not_configured":      "邮件服务未配置",
	"error.smtp_config_invalid":               "SMTP 配置错误",
	"error.setting_invalid":                   "配置值无效",
	"error.category_not_found":                "分类不存在",
	"error.category_name_exists":              "分类名称已存在",
	"error.category_parent_invalid":           "父分类无效",
	"error.category_in_use":                   "分类下存在子分类",
	"error.category_param_invalid":            "分类参数无效",
	"error.category_param_not_found":          "分类参数不存在",
	"error.item_not_found":                    "商品不存在",
	"error.item_not_owner":                    "只能操作自己发布的商品",
	"error.item_invalid":                      "商品数据无效",
	"error.item_unavailable":                  "商品不可用",
	"error.item_condition_invalid":            "商品成色无效",
	"error.item_price_invalid":                "商品价格无效",
	"error.order_not_found":                   "订单不存在",
	"error.order_invalid":                     "订单数据无效",
	"error.order_status_invalid":              "订单状态无效",
	"error.order_not_seller":                  "只有卖家可以更新订单状态",
	"error.order_not_buyer":                   "只有买家可以操作该订单",
	"error.order_cannot_cancel":               "当前状态的订单无法取消",
	"error.order_own_item":                    "不能购买自己的商品",
	"error.cart_quantity_invalid":             "数量必须在 1 到 99 之间",
	"error.cart_own_item":                     "不能将自己的商品加入购物车",
	"error.cart_item_not_found":               "购物车中没有该商品",
	"error.wishlist_duplicate":                "商品已在收藏中",
	"error.wishlist_item_not_found":           "收藏中没有该商品",
	"error.want_to_buy_not_found":             "求购信息不存在",
	"error.want_to_buy_invalid":               "求购信息无效",
	"error.wanted_not_found":                  "求购帖不存在",
	"error.wanted_invalid":                    "求购帖无效",
	"error.wanted_payment_required":           "免费发帖次数已用完，需要支付发帖费用",
	"error.barter_not_found":                  "换物交易不存在",
	"error.barter_invalid":                    "换物请求无效",
	"error.barter_offer_not_owned":            "只能用自己的商品交换",
	"error.barter_self_request":               "不能与自己的商品交换",
	"error.barter_not_eligible":               "该商品不支持换物",
	"error.barter_status_invalid":             "换物交易状态不允许该操作",
	"error.barter_not_participant":            "你不是该换物交易的参与者",
	"error.message_not_found":                 "消息不存在",
	"error.message_invalid":                   "消息无效",
	"error.message_self":                      "不能给自己发消息",
	"error.forum_category_not_found":          "论坛分类不存在",
	"error.forum_category_exists":             "论坛分类已存在",
	"error.forum_category_invalid":            "论坛分类无效",
	"error.forum_post_not_found":              "帖子不存在",
	"error.forum_post_invalid":                "帖子无效",
	"error.forum_post_locked":                 "帖子已锁定",
	"error.forum_reply_not_found":             "回复不存在",
	"error.forum_reply_invalid":               "回复无效",
	"error.forum_not_author":                  "只有作者可以执行该操作",
	"error.ad_not_found":                      "广告不存在",
	"error.ad_invalid":                        "广告数据无效",
	"error.ad_date_range_invalid":             "结束时间必须晚于开始时间",
	"error.payment_method_not_found":          "支付方式不存在",
	"error.payment_method_invalid":            "支付方式无效",
	"error.payment_not_found":                 "支付记录不存在",
	"error.payment_invalid":                   "支付请求无效",
	"error.payment_provider_not_supported":    "不支持该支付方式",
	"error.payment_gateway_failed":            "支付网关错误",
	"error.payment_status_invalid":            "支付状态不允许该操作",
	"error.refund_amount_invalid":             "退款金额无效",
	"error.refund_exceeds_remaining":          "退款金额超过可退金额",
	"error.webhook_invalid":                   "回调数据无效",
	"error.signature_invalid":                 "签名校验失败",
	"error.notification_not_found":            "通知不存在",
	"error.notification_invalid":              "通知无效",
	"error.notification_template_not_found":   "通知模板不存在",
	"error.notification_template_invalid":     "通知模板无效",
	"error.address_not_found":                 "地址不存在",
	"error.address_invalid":                   "地址无效",
	"error.upload_empty":                      "上传文件为空",
	"error.upload_too_large":                  "上传文件过大",
	"error.upload_type_not_allowed":           "不支持的文件类型",
	"error.upload_image_too_large":            "图片尺寸过大",
	"error.upload_failed":                     "上传失败",
	"error.bulk_action_invalid":               "批量操作无效",
	"error.announcement_invalid":              "公告内容无效",
	"error.role_invalid":                      "角色无效",
	"error.policy_invalid":                    "策略无效",
	"error.authz_failed":                      "权限校验失败",
	"error.admin_not_found":                   "管理员不存在",
	"error.ad_event_failed":                   "记录广告事件失败",
	"error.ad_fetch_failed":                   "获取广告失败",
	"error.ad_save_failed":                    "保存广告失败",
	"error.address_fetch_failed":              "获取地址失败",
	"error.address_save_failed":               "保存地址失败",
	"error.announcement_failed":               "发送公告失败",
	"error.barter_fetch_failed":               "获取换物记录失败",
	"error.barter_save_failed":                "更新换物记录失败",
	"error.bulk_action_failed":                "批量操作失败",
	"error.captcha_verify_failed":             "验证码校验失败",
	"error.cart_fetch_failed":                 "获取购物车失败",
	"error.cart_update_failed":                "更新购物车失败",
	"error.category_delete_failed":            "删除分类失败",
	"error.category_fetch_failed":             "获取分类失败",
	"error.category_save_failed":              "保存分类失败",
	"error.config_fetch_failed":               "获取配置失败",
	"error.email_recipient_rejected":          "收件地址被拒绝",
	"error.email_send_failed":                 "发送邮件失败",
	"error.forum_fetch_failed":                "获取论坛内容失败",
	"error.forum_save_failed":                 "保存论坛内容失败",
	"error.item_delete_failed":                "删除商品失败",
	"error.item_fetch_failed":                 "获取商品失败",
	"error.item_save_failed":                  "保存商品失败",
	"error.membership_fetch_failed":           "获取会员信息失败",
	"error.membership_purchase_failed":        "购买会员失败",
	"error.message_delete_failed":             "删除消息失败",
	"error.message_fetch_failed":              "获取消息失败",
	"error.message_send_failed":               "发送消息失败",
	"error.notification_create_failed":        "创建通知失败",
	"error.notification_fetch_failed":         "获取通知失败",
	"error.notification_template_save_failed": "保存通知模板失败",
	"error.notification_update_failed":        "更新通知失败",
	"error.order_create_failed":               "创建订单失败",
	"error.order_fetch_failed":                "获取订单失败",
	"error.order_update_failed":               "更新订单失败",
	"error.password_change_failed":            "修改密码失败",
	"error.payment_create_failed":             "创建支付失败",
	"error.payment_fetch_failed":              "获取支付记录失败",
	"error.payment_save_failed":               "保存支付方式失败",
	"error.refund_failed":                     "退款失败",
	"error.search_failed":                     "搜索失败",
	"error.setting_value_invalid":             "设置值无效",
	"error.settings_fetch_failed":             "获取设置失败",
	"error.settings_save_failed":              "保存设置失败",
	"error.statistics_failed":                 "获取统计失败",
	"error.user_fetch_failed":                 "获取用户失败",
	"error.want_to_buy_fetch_failed":          "获取求购信息失败",
	"error.want_to_buy_save_failed":           "保存求购信息失败",
	"error.wanted_fetch_failed":               "获取求购帖失败",
	"error.wanted_save_failed":                "保存求购帖失败",
	"error.webhook_failed":                    "处理回调失败",
	"error.wishlist_fetch_failed":             "获取收藏夹失败",
	"error.wishlist_update_failed":            "更新收藏夹失败",
	"panel.action_failed":                     "操作失败",
	"panel.forbidden":                         "无权执行此操作",
	"panel.item_action_done":                  "商品「%s」已更新",
	"panel.login_failed":                      "用户名或密码错误",
	"panel.login_required":                    "请输入用户名和密码",
	"panel.user_action_done":                  "用户 %s 已更新",
}
