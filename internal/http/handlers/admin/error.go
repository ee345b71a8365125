package admin

import (
	handlershared "github.com/ait-marketplace/internal/http/handlers/shared"
	"github.com/ait-marketplace/internal/http/response"
	"github.com/ait-marketplace/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []handlershared.MappedError, fallbackKey string) {
	handlershared.RespondMappedError(c, err, rules, response.CodeInternal, fallbackKey)
}

var adminAuthErrorRules = []handlershared.MappedError{
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.login_failed"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_invalid"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.password_weak"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.admin_not_found"},
}

var bulkActionErrorRules = []handlershared.MappedError{
	{Target: service.ErrBulkActionInvalid, Code: response.CodeBadRequest, Key: "error.bulk_action_invalid"},
}

var categoryAdminErrorRules = []handlershared.MappedError{
	{Target: service.ErrInvalidInput, Code: response.CodeBadRequest, Key: "error.bad_request"},
	{Target: service.ErrCategoryNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
	{Target: service.ErrCategoryNameExists, Code: response.CodeConflict, Key: "error.category_name_exists"},
	{Target: service.ErrCategoryParentInvalid, Code: response.CodeBadRequest, Key: "error.category_parent_invalid"},
	{Target: service.ErrCategoryInUse, Code: response.CodeBadRequest, Key: "error.category_in_use"},
	{Target: service.ErrCategoryParamInvalid, Code: response.CodeBadRequest, Key: "error.category_param_invalid"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.category_param_not_found"},
}

var forumAdminErrorRules = []handlershared.MappedError{
	{Target: service.ErrForumCategoryNotFound, Code: response.CodeNotFound, Key: "error.forum_category_not_found"},
	{Target: service.ErrForumCategoryExists, Code: response.CodeConflict, Key: "error.forum_category_exists"},
	{Target: service.ErrForumCategoryInvalid, Code: response.CodeBadRequest, Key: "error.forum_category_invalid"},
}

var notificationAdminErrorRules = []handlershared.MappedError{
	{Target: service.ErrNotificationTemplateNotFound, Code: response.CodeNotFound, Key: "error.notification_template_not_found"},
	{Target: service.ErrNotificationTemplateInvalid, Code: response.CodeBadRequest, Key: "error.notification_template_invalid"},
	{Target: service.ErrAnnouncementInvalid, Code: response.CodeBadRequest, Key: "error.announcement_invalid"},
	{Target: service.ErrQueueUnavailable, Code: response.CodeInternal, Key: "error.queue_unavailable"},
}

var settingAdminErrorRules = []handlershared.MappedError{
	{Target: service.ErrSettingValueInvalid, Code: response.CodeBadRequest, Key: "error.setting_value_invalid"},
}

var uploadAdminErrorRules = []handlershared.MappedError{
	{Target: service.ErrUploadEmpty, Code: response.CodeBadRequest, Key: "error.upload_empty"},
	{Target: service.ErrUploadTooLarge, Code: response.CodeBadRequest, Key: "error.upload_too_large"},
	{Target: service.ErrUploadTypeNotAllowed, Code: response.CodeBadRequest, Key: "error.upload_type_not_allowed"},
	{Target: service.ErrUploadImageTooLarge, Code: response.CodeBadRequest, Key: "error.upload_image_too_large"},
}

var captchaErrorRules = []handlershared.MappedError{
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrCaptchaConfigInvalid, Code: response.CodeInternal, Key: "error.captcha_config_invalid"},
}
