package panel

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/i18n"
	"github.com/ait-marketplace/internal/logger"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// pager 列表分页视图数据
type pager struct {
	Page      int
	TotalPage int
	Total     int64
	Query     template.URL
}

func (p pager) HasPrev() bool { return p.Page > 1 }
func (p pager) HasNext() bool { return p.Page < p.TotalPage }

// membershipRow 会员行，附带当前是否有效
type membershipRow struct {
	models.UserMembership
	Valid bool
}

func newPager(page int, total int64, query url.Values) pager {
	totalPage := int((total + constants.PanelPageSize - 1) / constants.PanelPageSize)
	if totalPage < 1 {
		totalPage = 1
	}
	query.Del("page")
	return pager{Page: page, TotalPage: totalPage, Total: total, Query: template.URL(query.Encode())}
}

func queryPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (h *Handler) translate(c *gin.Context, key string) string {
	return i18n.T(i18n.ResolveLocale(c), key)
}

// LoginPage 登录页
func (h *Handler) LoginPage(c *gin.Context) {
	if sessionAdminID(c) != 0 {
		c.Redirect(http.StatusSeeOther, constants.PanelDashboardPath)
		return
	}
	h.render(c, http.StatusOK, "login", gin.H{"Username": ""})
}

// Login 表单登录
func (h *Handler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	if username == "" || password == "" {
		h.render(c, http.StatusBadRequest, "login", gin.H{"Error": h.translate(c, "panel.login_required"), "Username": username})
		return
	}
	admin, err := h.AuthService.Authenticate(username, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			logger.Errorw("panel_login_failed", "username", username, "error", err)
		}
		h.render(c, http.StatusUnauthorized, "login", gin.H{"Error": h.translate(c, "panel.login_failed"), "Username": username})
		return
	}
	sess := sessions.Default(c)
	sess.Clear()
	sess.Set(constants.PanelSessionAdminIDKey, admin.ID)
	sess.Set(constants.PanelSessionAdminNameKey, admin.Username)
	sess.Set(constants.PanelSessionTokenVersionKey, admin.TokenVersion)
	if err := sess.Save(); err != nil {
		logger.Errorw("panel_session_save_failed", "admin_id", admin.ID, "error", err)
		h.render(c, http.StatusInternalServerError, "login", gin.H{"Error": h.translate(c, "error.internal")})
		return
	}
	logger.Infow("panel_login", "admin_id", admin.ID, "client_ip", c.ClientIP())
	c.Redirect(http.StatusSeeOther, constants.PanelDashboardPath)
}

// Logout 退出登录
func (h *Handler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{Path: "/manage", MaxAge: -1})
	_ = sess.Save()
	c.Redirect(http.StatusSeeOther, constants.PanelLoginPath)
}

// Dashboard 首页
func (h *Handler) Dashboard(c *gin.Context) {
	dashboard, err := h.AdminService.PanelDashboard()
	if err != nil {
		logger.Errorw("panel_dashboard_failed", "error", err)
		h.render(c, http.StatusInternalServerError, "dashboard", gin.H{"Error": h.translate(c, "error.internal")})
		return
	}
	h.render(c, http.StatusOK, "dashboard", gin.H{"Dashboard": dashboard})
}

// Users 用户列表
func (h *Handler) Users(c *gin.Context) {
	page := queryPage(c)
	search := strings.TrimSpace(c.Query("search"))
	users, total, err := h.AdminService.PanelUsers(page, search)
	if err != nil {
		logger.Errorw("panel_users_failed", "error", err)
		h.render(c, http.StatusInternalServerError, "users", gin.H{"Error": h.translate(c, "error.internal")})
		return
	}
	h.render(c, http.StatusOK, "users", gin.H{
		"Users":  users,
		"Search": search,
		"Pager":  newPager(page, total, c.Request.URL.Query()),
	})
}

// UserAction 用户操作后回跳
func (h *Handler) UserAction(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		setFlash(c, h.translate(c, "panel.action_failed"))
		h.redirectBack(c, "/manage/users")
		return
	}
	action := strings.TrimSpace(c.PostForm("action"))
	user, err := h.AdminService.PanelUserAction(c.Request.Context(), uint(id), action)
	if err != nil {
		logger.Warnw("panel_user_action_failed", "user_id", id, "action", action, "error", err)
		setFlash(c, h.translate(c, "panel.action_failed"))
	} else {
		logger.Infow("panel_user_action", "admin_id", sessionAdminID(c), "user_id", user.ID, "action", action)
		setFlash(c, i18n.Sprintf(i18n.ResolveLocale(c), "panel.user_action_done", user.Username))
	}
	h.redirectBack(c, "/manage/users")
}

// Items 商品列表
func (h *Handler) Items(c *gin.Context) {
	page := queryPage(c)
	search := strings.TrimSpace(c.Query("search"))
	items, total, err := h.AdminService.PanelItems(page, search)
	if err != nil {
		logger.Errorw("panel_items_failed", "error", err)
		h.render(c, http.StatusInternalServerError, "items", gin.H{"Error": h.translate(c, "error.internal")})
		return
	}
	h.render(c, http.StatusOK, "items", gin.H{
		"Items":  items,
		"Search": search,
		"Pager":  newPager(page, total, c.Request.URL.Query()),
	})
}

// ItemAction 商品操作后回跳
func (h *Handler) ItemAction(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		setFlash(c, h.translate(c, "panel.action_failed"))
		h.redirectBack(c, "/manage/items")
		return
	}
	action := strings.TrimSpace(c.PostForm("action"))
	item, err := h.AdminService.PanelItemAction(uint(id), action)
	if err != nil {
		logger.Warnw("panel_item_action_failed", "item_id", id, "action", action, "error", err)
		setFlash(c, h.translate(c, "panel.action_failed"))
	} else {
		logger.Infow("panel_item_action", "admin_id", sessionAdminID(c), "item_id", item.ID, "action", action)
		setFlash(c, i18n.Sprintf(i18n.ResolveLocale(c), "panel.item_action_done", item.Title))
	}
	h.redirectBack(c, "/manage/items")
}

// Orders 订单列表
func (h *Handler) Orders(c *gin.Context) {
	page := queryPage(c)
	status := strings.TrimSpace(c.Query("status"))
	orders, total, err := h.AdminService.PanelOrders(page, status)
	if err != nil {
		logger.Errorw("panel_orders_failed", "error", err)
		h.render(c, http.StatusInternalServerError, "orders", gin.H{"Error": h.translate(c, "error.internal")})
		return
	}
	h.render(c, http.StatusOK, "orders", gin.H{
		"Orders":   orders,
		"Status":   status,
		"Statuses": constants.OrderStatuses,
		"Pager":    newPager(page, total, c.Request.URL.Query()),
	})
}

// Memberships 会员列表，is_active=1/0 按有效期过滤
func (h *Handler) Memberships(c *gin.Context) {
	page := queryPage(c)
	filter := strings.TrimSpace(c.Query("is_active"))
	memberships, total, err := h.AdminService.PanelMemberships(page, filter)
	if err != nil {
		logger.Errorw("panel_memberships_failed", "error", err)
		h.render(c, http.StatusInternalServerError, "memberships", gin.H{"Error": h.translate(c, "error.internal")})
		return
	}
	now := time.Now()
	rows := make([]membershipRow, 0, len(memberships))
	for i := range memberships {
		rows = append(rows, membershipRow{UserMembership: memberships[i], Valid: memberships[i].IsValid(now)})
	}
	h.render(c, http.StatusOK, "memberships", gin.H{
		"Memberships": rows,
		"Filter":      filter,
		"Pager":       newPager(page, total, c.Request.URL.Query()),
	})
}

// redirectBack 回到来源列表页（仅限 /manage 下）
func (h *Handler) redirectBack(c *gin.Context, fallback string) {
	target := fallback
	if referer := c.Request.Referer(); referer != "" {
		if parsed, err := url.Parse(referer); err == nil && strings.HasPrefix(parsed.Path, "/manage/") {
			target = parsed.RequestURI()
		}
	}
	c.Redirect(http.StatusSeeOther, target)
}
