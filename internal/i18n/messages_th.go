package i18n

var thTH = map[string]string{
	"error.bad_request":                       "พารามิเตอร์คำขอไม่ถูกต้อง",
	"error.unauthorized":                      "กรุณาเข้าสู่ระบบ",
	"error.forbidden":                         "ไม่มีสิทธิ์ดำเนินการ",
	"error.not_found":                         "ไม่พบข้อมูล",
	"error.internal":                          "เกิดข้อผิดพลาดภายในระบบ",
	"error.too_many_requests":                 "คำขอมากเกินไป กรุณาลองใหม่ภายหลัง",
	"error.payment_required":                  "ต้องชำระเงิน",
	"error.jwt_secret_missing":                "ระบบยืนยันตัวตนยังไม่ได้ตั้งค่า",
	"error.auth_header_missing":               "ไม่พบส่วนหัว Authorization",
	"error.auth_header_invalid":               "ส่วนหัว Authorization ต้องเป็น Bearer <token>",
	"error.rate_limit_unavailable":            "ระบบจำกัดอัตราไม่พร้อมใช้งาน",
	"error.rate_limited":                      "คำขอมากเกินไป กรุณาลองใหม่ใน %d วินาที",
	"error.login_rate_limited":                "พยายามเข้าสู่ระบบมากเกินไป กรุณาลองใหม่ใน %d วินาที",
	"error.queue_unavailable":                 "คิวงานไม่พร้อมใช้งาน",
	"error.user_id_invalid":                   "รหัสผู้ใช้ไม่ถูกต้อง",
	"error.user_id_type_invalid":              "ชนิดรหัสผู้ใช้ไม่ถูกต้อง",
	"error.admin_id_invalid":                  "รหัสผู้ดูแลไม่ถูกต้อง",
	"error.admin_id_type_invalid":             "ชนิดรหัสผู้ดูแลไม่ถูกต้อง",
	"error.id_invalid":                        "รหัสไม่ถูกต้อง",
	"error.login_failed":                      "ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง",
	"error.login_too_many":                    "พยายามเข้าสู่ระบบมากเกินไป กรุณาลองใหม่ภายหลัง",
	"error.password_invalid":                  "รหัสผ่านปัจจุบันไม่ถูกต้อง",
	"error.password_mismatch":                 "รหัสผ่านไม่ตรงกัน",
	"error.password_weak":                     "รหัสผ่านไม่เป็นไปตามนโยบาย",
	"error.password_min_length":               "รหัสผ่านต้องมีอย่างน้อย %d ตัวอักษร",
	"error.password_require_upper":            "รหัสผ่านต้องมีตัวพิมพ์ใหญ่",
	"error.password_require_lower":            "รหัสผ่านต้องมีตัวพิมพ์เล็ก",
	"error.password_require_number":           "รหัสผ่านต้องมีตัวเลข",
	"error.password_require_special":          "รหัสผ่านต้องมีอักขระพิเศษ",
	"error.email_invalid":                     "อีเมลไม่ถูกต้อง",
	"error.email_domain_not_allowed":          "กรุณาใช้อีเมล AIT (@ait.ac.th)",
	"error.username_required":                 "กรุณาระบุชื่อผู้ใช้",
	"error.username_exists":                   "ชื่อผู้ใช้นี้ถูกใช้แล้ว",
	"error.email_exists":                      "อีเมลนี้ถูกลงทะเบียนแล้ว",
	"error.user_disabled":                     "บัญชีถูกระงับ",
	"error.user_not_found":                    "ไม่พบผู้ใช้",
	"error.token_invalid":                     "โทเค็นไม่ถูกต้องหรือหมดอายุ",
	"error.token_revoked":                     "โทเค็นถูกเพิกถอนแล้ว",
	"error.register_failed":                   "ลงทะเบียนไม่สำเร็จ",
	"error.profile_update_failed":             "อัปเดตโปรไฟล์ไม่สำเร็จ",
	"error.membership_months_invalid":         "จำนวนเดือนต้องอยู่ระหว่าง 1 ถึง 12",
	"error.membership_required":               "ต้องเป็นสมาชิกที่ใช้งานอยู่จึงจะแนะนำสินค้าได้",
	"membership.none":                         "ไม่มีสมาชิกภาพที่ใช้งานอยู่",
	"error.captcha_required":                  "กรุณากรอกรหัสยืนยัน",
	"error.captcha_invalid":                   "รหัสยืนยันไม่ถูกต้อง",
	"error.captcha_config_invalid":            "การตั้งค่ารหัสยืนยันไม่ถูกต้อง",
	"error.captcha_unavailable":               "รหัสยืนยันไม่พร้อมใช้งาน",
	"error.captcha_generate_failed":           "สร้างรหัสยืนยันไม่สำเร็จ",
	"error.email_service_disabled":            "ปิดใช้งานบริการอีเมล",
	"error.email_service_not_configured":      "ยังไม่ได้ตั้งค่าบริการอีเมล",
	"error.smtp_config_invalid":               "การตั้งค่า SMTP ไม่ถูกต้อง",
	"error.setting_invalid":                   "ค่าการตั้งค่าไม่ถูกต้อง",
	"error.category_not_found":                "ไม่พบหมวดหมู่",
	"error.category_name_exists":              "ชื่อหมวดหมู่นี้มีอยู่แล้ว",
	"error.category_parent_invalid":           "หมวดหมู่หลักไม่ถูกต้อง",
	"error.category_in_use":                   "หมวดหมู่นี้มีหมวดหมู่ย่อย",
	"error.category_param_invalid":            "พารามิเตอร์หมวดหมู่ไม่ถูกต้อง",
	"error.category_param_not_found":          "ไม่พบพารามิเตอร์หมวดหมู่",
	"error.item_not_found":                    "ไม่พบสินค้า",
	"error.item_not_owner":                    "คุณแก้ไขได้เฉพาะสินค้าของตนเอง",
	"error.item_invalid":                      "ข้อมูลสินค้าไม่ถูกต้อง",
	"error.item_unavailable":                  "สินค้าไม่พร้อมจำหน่าย",
	"error.item_condition_invalid":            "สภาพสินค้าไม่ถูกต้อง",
	"error.item_price_invalid":                "ราคาสินค้าไม่ถูกต้อง",
	"error.order_not_found":                   "ไม่พบคำสั่งซื้อ",
	"error.order_invalid":                     "ข้อมูลคำสั่งซื้อไม่ถูกต้อง",
	"error.order_status_invalid":              "สถานะคำสั่งซื้อไม่ถูกต้อง",
	"error.order_not_seller":                  "เฉพาะผู้ขายเท่านั้นที่อัปเดตสถานะได้",
	"error.order_not_buyer":                   "เฉพาะผู้ซื้อเท่านั้นที่แก้ไขคำสั่งซื้อนี้ได้",
	"error.order_cannot_cancel":               "ไม่สามารถยกเลิกคำสั่งซื้อในสถานะนี้",
	"error.order_own_item":                    "ไม่สามารถสั่งซื้อสินค้าของตนเอง",
	"error.cart_quantity_invalid":             "จำนวนต้องอยู่ระหว่าง 1 ถึง 99",
	"error.cart_own_item":                     "ไม่สามารถเพิ่มสินค้าของตนเองลงตะกร้า",
	"error.cart_item_not_found":               "ไม่มีสินค้านี้ในตะกร้า",
	"error.wishlist_duplicate":                "สินค้านี้อยู่ในรายการโปรดแล้ว",
	"error.wishlist_item_not_found":           "ไม่มีสินค้านี้ในรายการโปรด",
	"error.want_to_buy_not_found":             "ไม่พบประกาศต้องการซื้อ",
	"error.want_to_buy_invalid":               "ประกาศต้องการซื้อไม่ถูกต้อง",
	"error.wanted_not_found":                  "ไม่พบประกาศตามหา",
	"error.wanted_invalid":                    "ประกาศตามหาไม่ถูกต้อง",
	"error.wanted_payment_required":           "โควตาโพสต์ฟรีหมดแล้ว ต้องชำระค่าโพสต์",
	"error.barter_not_found":                  "ไม่พบรายการแลกเปลี่ยน",
	"error.barter_invalid":                    "คำขอแลกเปลี่ยนไม่ถูกต้อง",
	"error.barter_offer_not_owned":            "คุณเสนอได้เฉพาะสินค้าของตนเอง",
	"error.barter_self_request":               "ไม่สามารถแลกเปลี่ยนกับสินค้าของตนเอง",
	"error.barter_not_eligible":               "สินค้านี้ไม่เปิดให้แลกเปลี่ยน",
	"error.barter_status_invalid":             "สถานะการแลกเปลี่ยนไม่ถูกต้อง",
	"error.barter_not_participant":            "คุณไม่ได้เป็นผู้ร่วมการแลกเปลี่ยนนี้",
	"error.message_not_found":                 "ไม่พบข้อความ",
	"error.message_invalid":                   "ข้อความไม่ถูกต้อง",
	"error.message_self":                      "ไม่สามารถส่งข้อความถึงตนเอง",
	"error.forum_category_not_found":          "ไม่พบหมวดหมู่กระทู้",
	"error.forum_category_exists":             "หมวดหมู่กระทู้นี้มีอยู่แล้ว",
	"error.forum_category_invalid":            "หมวดหมู่กระทู้ไม่ถูกต้อง",
	"error.forum_post_not_found":              "ไม่พบกระทู้",
	"error.forum_post_invalid":                "กระทู้ไม่ถูกต้อง",
	"error.forum_post_locked":                 "กระทู้ถูกล็อก",
	"error.forum_reply_not_found":             "ไม่พบคำตอบ",
	"error.forum_reply_invalid":               "คำตอบไม่ถูกต้อง",
	"error.forum_not_author":                  "เฉพาะผู้เขียนเท่านั้นที่ทำรายการนี้ได้",
	"error.ad_not_found":                      "ไม่พบโฆษณา",
	"error.ad_invalid":                        "ข้อมูลโฆษณาไม่ถูกต้อง",
	"error.ad_date_range_invalid":             "วันสิ้นสุดต้องอยู่หลังวันเริ่มต้น",
	"error.payment_method_not_found":          "ไม่พบวิธีการชำระเงิน",
	"error.payment_method_invalid":            "วิธีการชำระเงินไม่ถูกต้อง",
	"error.payment_not_found":                 "ไม่พบการชำระเงิน",
	"error.payment_invalid":                   "คำขอชำระเงินไม่ถูกต้อง",
	"error.payment_provider_not_supported":    "ไม่รองรับผู้ให้บริการชำระเงินนี้",
	"error.payment_gateway_failed":            "เกตเวย์ชำระเงินผิดพลาด",
	"error.payment_status_invalid":            "สถานะการชำระเงินไม่ถูกต้อง",
	"error.refund_amount_invalid":             "จำนวนเงินคืนไม่ถูกต้อง",
	"error.refund_exceeds_remaining":          "จำนวนเงินคืนเกินยอดคงเหลือ",
	"error.webhook_invalid":                   "ข้อมูล webhook ไม่ถูกต้อง",
	"error.signature_invalid":                 "ลายเซ็นไม่ถูกต้อง",
	"error.notification_not_found":            "ไม่พบการแจ้งเตือน",
	"error.notification_invalid":              "การแจ้งเตือนไม่ถูกต้อง",
	"error.notification_template_not_found":   "ไม่พบแม่แบบการแจ้งเตือน",
	"error.notification_template_invalid":     "แม่แบบการแจ้งเตือนไม่ถูกต้อง",
	"error.address_not_found":                 "ไม่พบที่อยู่",
	"error.address_invalid":                   "ที่อยู่ไม่ถูกต้อง",
	"error.upload_empty":                      "ไฟล์อัปโหลดว่างเปล่า",
	"error.upload_too_large":                  "ไฟล์อัปโหลดใหญ่เกินไป",
	"error.upload_type_not_allowed":           "ไม่รองรับชนิดไฟล์นี้",
	"error.upload_image_too_large":            "ขนาดรูปภาพใหญ่เกินไป",
	"error.upload_failed":                     "อัปโหลดไม่สำเร็จ",
	"error.bulk_action_invalid":               "การดำเนินการแบบกลุ่มไม่ถูกต้อง",
	"error.announcement_invalid":              "ประกาศไม่ถูกต้อง",
	"error.role_invalid":                      "บทบาทไม่ถูกต้อง",
	"error.policy_invalid":                    "นโยบายไม่ถูกต้อง",
	"error.authz_failed":                      "ตรวจสอบสิทธิ์ไม่สำเร็จ",
	"error.admin_not_found":                   "ไม่พบผู้ดูแลระบบ",
	"error.ad_event_failed":                   "บันทึกเหตุการณ์โฆษณาไม่สำเร็จ",
	"error.ad_fetch_failed":                   "โหลดโฆษณาไม่สำเร็จ",
	"error.ad_save_failed":                    "บันทึกโฆษณาไม่สำเร็จ",
	"error.address_fetch_failed":              "โหลดที่อยู่ไม่สำเร็จ",
	"error.address_save_failed":               "บันทึกที่อยู่ไม่สำเร็จ",
	"error.announcement_failed":               "ส่งประกาศไม่สำเร็จ",
	"error.barter_fetch_failed":               "โหลดรายการแลกเปลี่ยนไม่สำเร็จ",
	"error.barter_save_failed":                "อัปเดตรายการแลกเปลี่ยนไม่สำเร็จ",
	"error.bulk_action_failed":                "ดำเนินการแบบกลุ่มไม่สำเร็จ",
	"error.captcha_verify_failed":             "ตรวจสอบแคปต์ชาไม่สำเร็จ",
	"error.cart_fetch_failed":                 "โหลดตะกร้าไม่สำเร็จ",
	"error.cart_update_failed":                "อัปเดตตะกร้าไม่สำเร็จ",
	"error.category_delete_failed":            "ลบหมวดหมู่ไม่สำเร็จ",
	"error.category_fetch_failed":             "โหลดหมวดหมู่ไม่สำเร็จ",
	"error.category_save_failed":              "บันทึกหมวดหมู่ไม่สำเร็จ",
	"error.config_fetch_failed":               "โหลดการตั้งค่าไม่สำเร็จ",
	"error.email_recipient_rejected":          "ที่อยู่ผู้รับถูกปฏิเสธ",
	"error.email_send_failed":                 "ส่งอีเมลไม่สำเร็จ",
	"error.forum_fetch_failed":                "โหลดเนื้อหากระดานสนทนาไม่สำเร็จ",
	"error.forum_save_failed":                 "บันทึกเนื้อหากระดานสนทนาไม่สำเร็จ",
	"error.item_delete_failed":                "ลบสินค้าไม่สำเร็จ",
	"error.item_fetch_failed":                 "โหลดสินค้าไม่สำเร็จ",
	"error.item_save_failed":                  "บันทึกสินค้าไม่สำเร็จ",
	"error.membership_fetch_failed":           "โหลดข้อมูลสมาชิกไม่สำเร็จ",
	"error.membership_purchase_failed":        "ซื้อสมาชิกไม่สำเร็จ",
	"error.message_delete_failed":             "ลบข้อความไม่สำเร็จ",
	"error.message_fetch_failed":              "โหลดข้อความไม่สำเร็จ",
	"error.message_send_failed":               "ส่งข้อความไม่สำเร็จ",
	"error.notification_create_failed":        "สร้างการแจ้งเตือนไม่สำเร็จ",
	"error.notification_fetch_failed":         "โหลดการแจ้งเตือนไม่สำเร็จ",
	"error.notification_template_save_failed": "บันทึกแม่แบบการแจ้งเตือนไม่สำเร็จ",
	"error.notification_update_failed":        "อัปเดตการแจ้งเตือนไม่สำเร็จ",
	"error.order_create_failed":               "สร้างคำสั่งซื้อไม่สำเร็จ",
	"error.order_fetch_failed":                "โหลดคำสั่งซื้อไม่สำเร็จ",
	"error.order_update_failed":               "อัปเดตคำสั่งซื้อไม่สำเร็จ",
	"error.password_change_failed":            "เปลี่ยนรหัสผ่านไม่สำเร็จ",
	"error.payment_create_failed":             "สร้างการชำระเงินไม่สำเร็จ",
	"error.payment_fetch_failed":              "โหลดการชำระเงินไม่สำเร็จ",
	"error.payment_save_failed":               "บันทึกวิธีชำระเงินไม่สำเร็จ",
	"error.refund_failed":                     "คืนเงินไม่สำเร็จ",
	"error.search_failed":                     "ค้นหาไม่สำเร็จ",
	"error.setting_value_invalid":             "ค่าการตั้งค่าไม่ถูกต้อง",
	"error.settings_fetch_failed":             "โหลดการตั้งค่าไม่สำเร็จ",
	"error.settings_save_failed":              "บันทึกการตั้งค่าไม่สำเร็จ",
	"error.statistics_failed":                 "โหลดสถิติไม่สำเร็จ",
	"error.user_fetch_failed":                 "โหลดผู้ใช้ไม่สำเร็จ",
	"error.want_to_buy_fetch_failed":          "โหลดประกาศขอซื้อไม่สำเร็จ",
	"error.want_to_buy_save_failed":           "บันทึกประกาศขอซื้อไม่สำเร็จ",
	"error.wanted_fetch_failed":               "โหลดประกาศตามหาไม่สำเร็จ",
	"error.wanted_save_failed":                "บันทึกประกาศตามหาไม่สำเร็จ",
	"error.webhook_failed":                    "ประมวลผลเว็บฮุคไม่สำเร็จ",
	"error.wishlist_fetch_failed":             "โหลดรายการโปรดไม่สำเร็จ",
	"error.wishlist_update_failed":            "อัปเดตรายการโปรดไม่สำเร็จ",
	"panel.action_failed":                     "ดำเนินการไม่สำเร็จ",
	"panel.forbidden":                         "คุณไม่มีสิทธิ์ดำเนินการนี้",
	"panel.item_action_done":                  "อัปเดตสินค้า \"%s\" แล้ว",
	"panel.login_failed":                      "ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง",
	"panel.login_required":                    "กรุณากรอกชื่อผู้ใช้และรหัสผ่าน",
	"panel.user_action_done":                  "อัปเดตผู้ใช้ %s แล้ว",
}
