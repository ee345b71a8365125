package public

import (
	"time"

	"github.com/ait-marketplace/internal/cache"
	"github.com/ait-marketplace/internal/http/response"
	"github.com/ait-marketplace/internal/i18n"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
)

// GetConfig 获取前台全局配置（语言、币种、会员与求购参数）
func (h *Handler) GetConfig(c *gin.Context) {
	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	market, err := h.SettingService.GetMarketplaceSetting(h.Config.Marketplace)
	if err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}
	data := map[string]interface{}{
		"languages":                i18n.SupportedLocales(),
		"currency":                 market.Currency,
		"allowed_email_domain":     market.AllowedEmailDomain,
		"membership_monthly_price": market.MembershipMonthlyPrice,
		"membership_max_months":    market.MembershipMaxMonths,
		"wanted_posting_fee":       market.WantedPostingFee,
		"wanted_free_posts":        market.WantedFreePosts,
		"wanted_member_free_posts": market.WantedMemberFreePosts,
		"upload_max_size":          h.Config.Upload.MaxSize,
	}
	if h.CaptchaService != nil {
		publicCaptcha, captchaErr := h.CaptchaService.GetPublicSetting()
		if captchaErr != nil {
			respondError(c, response.CodeInternal, "error.config_fetch_failed", captchaErr)
			return
		}
		data["captcha"] = publicCaptcha
	}

	_ = cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL)
	response.Success(c, data)
}
