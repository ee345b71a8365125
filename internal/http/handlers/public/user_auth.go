package public

import (
	"github.com/ait-marketplace/internal/constants"
	handlershared "github.com/ait-marketplace/internal/http/handlers/shared"
	"github.com/ait-marketplace/internal/http/response"
	"github.com/ait-marketplace/internal/i18n"
	"github.com/ait-marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username        string                              `json:"username" binding:"required"`
	Email           string                              `json:"email" binding:"required"`
	Password        string                              `json:"password" binding:"required"`
	ConfirmPassword string                              `json:"confirm_password" binding:"required"`
	CaptchaPayload  handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// TokenRequest 登录请求
type TokenRequest struct {
	Username       string                              `json:"username" binding:"required"`
	Password       string                              `json:"password" binding:"required"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// RefreshRequest 刷新 Token 请求
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// ProfileRequest 资料更新请求
type ProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Bio       *string `json:"bio"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// MembershipPurchaseRequest 购买会员请求
type MembershipPurchaseRequest struct {
	Months int `json:"months"`
}

// verifyCaptcha 校验场景验证码，失败时已写出响应
func (h *Handler) verifyCaptcha(c *gin.Context, scene string, payload handlershared.CaptchaPayloadRequest) bool {
	if h.CaptchaService == nil {
		return true
	}
	if err := h.CaptchaService.Verify(scene, payload.ToServicePayload()); err != nil {
		handlershared.RespondMappedError(c, err, captchaErrorRules, response.CodeInternal, "error.captcha_verify_failed")
		return false
	}
	return true
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !h.verifyCaptcha(c, constants.CaptchaSceneRegister, req.CaptchaPayload) {
		return
	}

	user, err := h.UserAuthService.Register(service.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, "error.register_failed")
		return
	}
	response.Created(c, gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"ait_email": user.AITEmail,
	})
}

// Token 用户名密码登录，签发 access/refresh
func (h *Handler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !h.verifyCaptcha(c, constants.CaptchaSceneLogin, req.CaptchaPayload) {
		return
	}

	_, tokens, err := h.UserAuthService.Login(req.Username, req.Password)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, "error.login_failed")
		return
	}
	response.Success(c, tokens)
}

// RefreshToken 使用 refresh token 换取新的 access token
func (h *Handler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	access, expiresAt, err := h.UserAuthService.Refresh(req.Refresh)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, "error.token_invalid")
		return
	}
	response.Success(c, gin.H{
		"access":     access,
		"expires_at": expiresAt,
	})
}

// GetProfile 获取当前用户资料
func (h *Handler) GetProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(uid)
	if err != nil {
		respondWithMappedError(c, err, commonErrorRules, "error.user_fetch_failed")
		return
	}
	response.Success(c, user)
}

// UpdateProfile 更新资料（用户名与邮箱只读）
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.UserAuthService.UpdateProfile(uid, service.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Bio:       req.Bio,
	})
	if err != nil {
		respondWithMappedError(c, err, handlershared.ConcatMappedErrors(commonErrorRules, authErrorRules), "error.profile_update_failed")
		return
	}
	response.Success(c, user)
}

// ChangePassword 修改密码，成功后旧 Token 全部失效
func (h *Handler) ChangePassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.UserAuthService.ChangePassword(uid, req.OldPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, handlershared.ConcatMappedErrors(commonErrorRules, authErrorRules), "error.password_change_failed")
		return
	}
	response.Success(c, gin.H{"changed": true})
}

// GetMembership 获取会员状态
func (h *Handler) GetMembership(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	view, err := h.UserAuthService.GetMembership(uid)
	if err != nil {
		respondWithMappedError(c, err, commonErrorRules, "error.membership_fetch_failed")
		return
	}
	if view.Membership == nil {
		view.Message = i18n.T(i18n.ResolveLocale(c), "membership.none")
	}
	response.Success(c, view)
}

// PurchaseMembership 购买或续期会员
func (h *Handler) PurchaseMembership(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req MembershipPurchaseRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
	}
	view, err := h.UserAuthService.PurchaseMembership(uid, req.Months)
	if err != nil {
		respondWithMappedError(c, err, handlershared.ConcatMappedErrors(commonErrorRules, authErrorRules), "error.membership_purchase_failed")
		return
	}
	response.Created(c, view)
}
