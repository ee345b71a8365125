package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ait-marketplace/internal/config"
	"github.com/ait-marketplace/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.Session.Secret = "router-test-session-secret"
	cfg.Upload.Dir = t.TempDir()
	return SetupRouter(cfg, &provider.Container{Config: cfg})
}

func TestSetupRouterRegistersMarketplaceRoutes(t *testing.T) {
	r := newTestEngine(t)

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"POST /api/v1/users/register",
		"POST /api/v1/users/token",
		"POST /api/v1/users/token/refresh",
		"GET /api/v1/users/membership",
		"GET /api/v1/categories/tree",
		"PATCH /api/v1/items/:id",
		"POST /api/v1/items/:id/set_featured",
		"POST /api/v1/notifications/mark-all-read",
		"POST /api/v1/orders/:id/cancel",
		"DELETE /api/v1/cart/clear",
		"DELETE /api/v1/wishlist/item/:item_id/remove",
		"POST /api/v1/wishlist/want-to-buy/:id/fulfill",
		"GET /api/v1/wanted/post-info",
		"POST /api/v1/barter/:id/complete",
		"GET /api/v1/chat/conversations",
		"POST /api/v1/forum/replies/:id/solution",
		"GET /api/v1/advertisements/position/:position",
		"POST /api/v1/payments/webhook/:provider",
		"POST /api/v1/payments/create-intent",
		"GET /api/v1/addresses/default",
		"GET /api/v1/search/suggestions",
		"GET /api/v1/statistics/items",
		"POST /api/v1/admin/login",
		"POST /api/v1/admin/bulk-action",
		"GET /api/v1/admin/system-health",
		"PUT /api/v1/admin/authz/admins/:id/roles",
		"GET /manage/login",
		"POST /manage/items/:id/action",
		"GET /manage/memberships",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "route %s should be registered", route)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestEngine(t)

	for _, path := range []string{"/api/v1/cart", "/api/v1/orders", "/api/v1/admin/dashboard"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestManagePanelRedirectsToLogin(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manage/dashboard", nil))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/manage/login", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manage/login", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Admin login")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestManageLoginRequiresCredentials(t *testing.T) {
	r := newTestEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/manage/login", strings.NewReader("username=&password="))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username and password are required")
}

func TestAdminPermissionCatalog(t *testing.T) {
	r := newTestEngine(t)

	catalog := buildAdminPermissionCatalog(r)
	require.NotEmpty(t, catalog)

	permissions := make(map[string]string, len(catalog))
	for _, item := range catalog {
		permissions[item.Permission] = item.Module
	}
	assert.Equal(t, "bulk-action", permissions["POST:/admin/bulk-action"])
	assert.Equal(t, "authz", permissions["GET:/admin/authz/roles"])
	assert.Equal(t, "categories", permissions["PUT:/admin/categories/:id"])
	_, hasLogin := permissions["POST:/admin/login"]
	assert.False(t, hasLogin)
}
