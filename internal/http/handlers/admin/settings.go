package admin

import (
	"strings"

	"github.com/ait-marketplace/internal/cache"
	handlershared "github.com/ait-marketplace/internal/http/handlers/shared"
	"github.com/ait-marketplace/internal/http/response"
	"github.com/ait-marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

const publicConfigCacheKey = "public:config"

// GetMarketplaceSettings 获取市场参数（会员价格、求购额度）
func (h *Handler) GetMarketplaceSettings(c *gin.Context) {
	setting, err := h.SettingService.GetMarketplaceSetting(h.Config.Marketplace)
	if err != nil {
		respondError(c, response.CodeInternal, "error.settings_fetch_failed", err)
		return
	}
	response.Success(c, setting)
}

// UpdateMarketplaceSettings 更新市场参数，未提交的字段保持原值
func (h *Handler) UpdateMarketplaceSettings(c *gin.Context) {
	current, err := h.SettingService.GetMarketplaceSetting(h.Config.Marketplace)
	if err != nil {
		respondError(c, response.CodeInternal, "error.settings_fetch_failed", err)
		return
	}
	if err := c.ShouldBindJSON(&current); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	setting, err := h.SettingService.UpdateMarketplaceSetting(current)
	if err != nil {
		respondWithMappedError(c, err, settingAdminErrorRules, "error.settings_save_failed")
		return
	}
	_ = cache.Del(c.Request.Context(), publicConfigCacheKey)
	requestLog(c).Infow("admin_marketplace_setting_updated", "operator_admin_id", currentAdminID(c))
	response.Success(c, setting)
}

// GetSMTPSettings 获取 SMTP 配置（脱敏）
func (h *Handler) GetSMTPSettings(c *gin.Context) {
	setting, err := h.SettingService.GetSMTPSetting(h.Config.Email)
	if err != nil {
		respondError(c, response.CodeInternal, "error.settings_fetch_failed", err)
		return
	}
	response.Success(c, service.MaskSMTPSettingForAdmin(setting))
}

// UpdateSMTPSettings 更新 SMTP 配置并即时生效
func (h *Handler) UpdateSMTPSettings(c *gin.Context) {
	var req service.SMTPSettingPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	setting, err := h.SettingService.PatchSMTPSetting(h.Config.Email, req)
	if err != nil {
		respondWithMappedError(c, err, []handlershared.MappedError{
			{Target: service.ErrSMTPConfigInvalid, Code: response.CodeBadRequest, Key: "error.smtp_config_invalid"},
		}, "error.settings_save_failed")
		return
	}
	h.Config.Email = service.SMTPSettingToConfig(setting)
	if h.EmailService != nil {
		h.EmailService.SetConfig(&h.Config.Email)
	}
	response.Success(c, service.MaskSMTPSettingForAdmin(setting))
}

// SMTPTestSendRequest SMTP 测试发送请求
type SMTPTestSendRequest struct {
	ToEmail string `json:"to_email" binding:"required"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// TestSMTPSettings 用当前 SMTP 配置发送测试邮件
func (h *Handler) TestSMTPSettings(c *gin.Context) {
	var req SMTPTestSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	toEmail := strings.TrimSpace(req.ToEmail)
	if toEmail == "" {
		respondError(c, response.CodeBadRequest, "error.email_invalid", nil)
		return
	}
	setting, err := h.SettingService.GetSMTPSetting(h.Config.Email)
	if err != nil {
		respondError(c, response.CodeInternal, "error.settings_fetch_failed", err)
		return
	}
	configForSend := service.SMTPSettingToConfig(setting)
	configForSend.Enabled = true
	if err := service.NewEmailService(&configForSend).SendCustomEmail(toEmail, req.Subject, req.Body); err != nil {
		respondWithMappedError(c, err, []handlershared.MappedError{
			{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
			{Target: service.ErrEmailRecipientRejected, Code: response.CodeBadRequest, Key: "error.email_recipient_rejected"},
			{Target: service.ErrEmailServiceDisabled, Code: response.CodeBadRequest, Key: "error.email_service_not_configured"},
			{Target: service.ErrEmailServiceNotConfigured, Code: response.CodeBadRequest, Key: "error.email_service_not_configured"},
		}, "error.email_send_failed")
		return
	}
	response.Success(c, gin.H{"sent": true})
}

// GetCaptchaSettings 获取验证码配置
func (h *Handler) GetCaptchaSettings(c *gin.Context) {
	setting, err := h.SettingService.GetCaptchaSetting(h.Config.Captcha)
	if err != nil {
		respondError(c, response.CodeInternal, "error.settings_fetch_failed", err)
		return
	}
	response.Success(c, setting)
}

// UpdateCaptchaSettings 更新验证码配置
func (h *Handler) UpdateCaptchaSettings(c *gin.Context) {
	var req service.CaptchaSettingPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	setting, err := h.SettingService.PatchCaptchaSetting(h.Config.Captcha, req)
	if err != nil {
		respondWithMappedError(c, err, captchaErrorRules, "error.settings_save_failed")
		return
	}
	if h.CaptchaService != nil {
		h.CaptchaService.InvalidateCache()
	}
	_ = cache.Del(c.Request.Context(), publicConfigCacheKey)
	response.Success(c, setting)
}
