package panel

import (
	"net/http"
	"strings"

	"github.com/ait-marketplace/internal/config"
	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/logger"
	"github.com/ait-marketplace/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const panelAdminContextKey = "panel_admin"

// SessionMiddleware 基于加密 cookie 的面板会话
func SessionMiddleware(cfg config.SessionConfig) gin.HandlerFunc {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		logger.Warnw("panel_session_secret_empty")
		secret = "ait-manage-session"
	}
	maxAge := cfg.MaxAgeSeconds
	if maxAge <= 0 {
		maxAge = constants.PanelSessionMaxAgeSeconds
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/manage",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sessions.Sessions(constants.PanelSessionName, store)
}

// RequireLogin 未登录或会话失效时跳转到登录页
// 每次请求重新加载管理员，账号删除或 Token 版本变化后会话立即失效
func (h *Handler) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID := sessionAdminID(c)
		if adminID == 0 {
			c.Redirect(http.StatusSeeOther, constants.PanelLoginPath)
			c.Abort()
			return
		}
		admin, err := h.AdminRepo.GetByID(adminID)
		if err != nil {
			logger.Errorw("panel_admin_load_failed", "admin_id", adminID, "error", err)
			c.String(http.StatusInternalServerError, h.translate(c, "error.internal"))
			c.Abort()
			return
		}
		if admin == nil || admin.TokenVersion != sessionTokenVersion(c) {
			logger.Warnw("panel_session_revoked", "admin_id", adminID, "admin_found", admin != nil)
			sess := sessions.Default(c)
			sess.Clear()
			if err := sess.Save(); err != nil {
				logger.Warnw("panel_session_save_failed", "error", err)
			}
			c.Redirect(http.StatusSeeOther, constants.PanelLoginPath)
			c.Abort()
			return
		}
		c.Set(panelAdminContextKey, admin)
		c.Next()
	}
}

// RequirePermission 按后台 API 的同名权限校验面板操作，超级管理员直接放行
func (h *Handler) RequirePermission(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin := currentAdmin(c)
		if admin == nil {
			c.Redirect(http.StatusSeeOther, constants.PanelLoginPath)
			c.Abort()
			return
		}
		if admin.IsSuper {
			c.Next()
			return
		}
		allowed := false
		if h.AuthzService != nil {
			ok, err := h.AuthzService.EnforceAdmin(admin.ID, object, action)
			if err != nil {
				logger.Errorw("panel_rbac_enforce_failed", "admin_id", admin.ID, "object", object, "action", action, "error", err)
			}
			allowed = ok && err == nil
		}
		if !allowed {
			logger.Warnw("panel_rbac_permission_denied",
				"admin_id", admin.ID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"object", object,
			)
			h.render(c, http.StatusForbidden, "forbidden", gin.H{"Error": h.translate(c, "panel.forbidden")})
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentAdmin(c *gin.Context) *models.Admin {
	if raw, ok := c.Get(panelAdminContextKey); ok {
		if admin, ok := raw.(*models.Admin); ok {
			return admin
		}
	}
	return nil
}

func sessionAdminID(c *gin.Context) uint {
	sess := sessions.Default(c)
	if id, ok := sess.Get(constants.PanelSessionAdminIDKey).(uint); ok {
		return id
	}
	return 0
}

func sessionTokenVersion(c *gin.Context) uint64 {
	version, _ := sessions.Default(c).Get(constants.PanelSessionTokenVersionKey).(uint64)
	return version
}

func sessionAdminName(c *gin.Context) string {
	name, _ := sessions.Default(c).Get(constants.PanelSessionAdminNameKey).(string)
	return name
}

func setFlash(c *gin.Context, message string) {
	sess := sessions.Default(c)
	sess.Set(constants.PanelSessionFlashKey, message)
	if err := sess.Save(); err != nil {
		logger.Warnw("panel_session_save_failed", "error", err)
	}
}

// popFlash 读取并清除一次性提示
func popFlash(c *gin.Context) string {
	sess := sessions.Default(c)
	message, _ := sess.Get(constants.PanelSessionFlashKey).(string)
	if message == "" {
		return ""
	}
	sess.Delete(constants.PanelSessionFlashKey)
	if err := sess.Save(); err != nil {
		logger.Warnw("panel_session_save_failed", "error", err)
	}
	return message
}
