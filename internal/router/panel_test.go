package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ait-marketplace/internal/authz"
	"github.com/ait-marketplace/internal/config"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/provider"
	"github.com/ait-marketplace/internal/repository"
	"github.com/ait-marketplace/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const panelTestPassword = "Manage-Pass-2024"

type panelTestEnv struct {
	engine *gin.Engine
	db     *gorm.DB
	authz  *authz.Service
	auth   *service.AuthService
	user   *models.User
}

func setupPanelRouterTest(t *testing.T) *panelTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:panel_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Admin{}, &models.User{}, &models.UserMembership{}, &models.Item{}, &models.Order{}))

	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.Session.Secret = "panel-router-test-session-secret"
	cfg.Upload.Dir = t.TempDir()

	authzService, err := authz.NewService(db)
	require.NoError(t, err)
	require.NoError(t, authzService.BootstrapBuiltinRoles())

	adminRepo := repository.NewAdminRepository(db)
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	c := &provider.Container{
		Config:       cfg,
		AdminRepo:    adminRepo,
		UserRepo:     userRepo,
		ItemRepo:     itemRepo,
		OrderRepo:    orderRepo,
		AuthzService: authzService,
		AuthService:  service.NewAuthService(cfg, adminRepo),
		AdminService: service.NewAdminService(db, userRepo, itemRepo, orderRepo, repository.NewStatisticsRepository(db)),
	}

	user := &models.User{
		Username:     "somchai",
		Email:        "st120001@ait.ac.th",
		AITEmail:     "st120001@ait.ac.th",
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)

	return &panelTestEnv{
		engine: SetupRouter(cfg, c),
		db:     db,
		authz:  authzService,
		auth:   c.AuthService,
		user:   user,
	}
}

func (e *panelTestEnv) createAdmin(t *testing.T, username string, isSuper bool, roles ...string) *models.Admin {
	t.Helper()
	hash, err := e.auth.HashPassword(panelTestPassword)
	require.NoError(t, err)
	admin := &models.Admin{Username: username, PasswordHash: hash, IsSuper: isSuper}
	require.NoError(t, e.db.Create(admin).Error)
	if len(roles) > 0 {
		require.NoError(t, e.authz.SetAdminRoles(admin.ID, roles))
	}
	return admin
}

func (e *panelTestEnv) login(t *testing.T, username string) []*http.Cookie {
	t.Helper()
	form := url.Values{"username": {username}, "password": {panelTestPassword}}
	req := httptest.NewRequest(http.MethodPost, "/manage/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	require.Equal(t, "/manage/dashboard", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func (e *panelTestEnv) do(method, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *panelTestEnv) userActive(t *testing.T) bool {
	t.Helper()
	var user models.User
	require.NoError(t, e.db.First(&user, e.user.ID).Error)
	return user.IsActive
}

func TestManagePanelSuperAdminCanToggleUser(t *testing.T) {
	env := setupPanelRouterTest(t)
	env.createAdmin(t, "root", true)
	cookies := env.login(t, "root")

	w := env.do(http.MethodGet, "/manage/users", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "somchai")

	w = env.do(http.MethodPost, fmt.Sprintf("/manage/users/%d/action", env.user.ID), url.Values{"action": {"toggle_active"}}, cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/manage/users", w.Header().Get("Location"))
	assert.False(t, env.userActive(t))
}

func TestManagePanelAnalystIsReadOnly(t *testing.T) {
	env := setupPanelRouterTest(t)
	env.createAdmin(t, "viewer", false, "analyst")
	cookies := env.login(t, "viewer")

	w := env.do(http.MethodGet, "/manage/users", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodPost, fmt.Sprintf("/manage/users/%d/action", env.user.ID), url.Values{"action": {"toggle_active"}}, cookies)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied")
	assert.True(t, env.userActive(t))

	w = env.do(http.MethodPost, "/manage/items/1/action", url.Values{"action": {"delete"}}, cookies)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestManagePanelModeratorCanRunActions(t *testing.T) {
	env := setupPanelRouterTest(t)
	env.createAdmin(t, "mod", false, "moderator")
	cookies := env.login(t, "mod")

	w := env.do(http.MethodPost, fmt.Sprintf("/manage/users/%d/action", env.user.ID), url.Values{"action": {"toggle_active"}}, cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.False(t, env.userActive(t))
}

func TestManagePanelAdminWithoutRoleIsDenied(t *testing.T) {
	env := setupPanelRouterTest(t)
	env.createAdmin(t, "nobody", false)
	cookies := env.login(t, "nobody")

	w := env.do(http.MethodGet, "/manage/users", nil, cookies)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestManagePanelSessionRevokedWithTokens(t *testing.T) {
	env := setupPanelRouterTest(t)
	admin := env.createAdmin(t, "root", true)
	cookies := env.login(t, "root")

	w := env.do(http.MethodGet, "/manage/users", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, env.db.Model(&models.Admin{}).Where("id = ?", admin.ID).
		Update("token_version", gorm.Expr("token_version + 1")).Error)

	w = env.do(http.MethodGet, "/manage/users", nil, cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/manage/login", w.Header().Get("Location"))

	w = env.do(http.MethodPost, fmt.Sprintf("/manage/users/%d/action", env.user.ID), url.Values{"action": {"toggle_active"}}, cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/manage/login", w.Header().Get("Location"))
	assert.True(t, env.userActive(t))
}

func TestManagePanelSessionRevokedWhenAdminDeleted(t *testing.T) {
	env := setupPanelRouterTest(t)
	admin := env.createAdmin(t, "root", true)
	cookies := env.login(t, "root")

	require.NoError(t, env.db.Delete(&models.Admin{}, admin.ID).Error)

	w := env.do(http.MethodGet, "/manage/users", nil, cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/manage/login", w.Header().Get("Location"))
}
