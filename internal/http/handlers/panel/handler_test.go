package panel

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/ait-marketplace/internal/config"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/provider"

	"github.com/gin-gonic/gin"
)

func newPanelTestEngine(h *Handler, admin *models.Admin) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionMiddleware(config.SessionConfig{Secret: "panel-handler-test-secret"}))
	r.Use(func(c *gin.Context) {
		if admin != nil {
			c.Set(panelAdminContextKey, admin)
		}
		c.Next()
	})
	return r
}

func TestNewParsesEveryPage(t *testing.T) {
	h := New(&provider.Container{})
	for _, name := range pageNames {
		if h.pages[name] == nil {
			t.Fatalf("page %s not parsed", name)
		}
	}
}

func TestLoginPageRendersForm(t *testing.T) {
	h := New(&provider.Container{})
	r := newPanelTestEngine(h, nil)
	r.GET("/manage/login", h.LoginPage)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manage/login", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type: %s", got)
	}
}

func TestRequirePermissionSuperAdminBypass(t *testing.T) {
	h := New(&provider.Container{})
	r := newPanelTestEngine(h, &models.Admin{ID: 1, Username: "root", IsSuper: true})
	r.POST("/manage/users/:id/action", h.RequirePermission("/admin/bulk-action", http.MethodPost), func(c *gin.Context) {
		c.String(http.StatusOK, "done")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/manage/users/3/action", nil))
	if w.Code != http.StatusOK || w.Body.String() != "done" {
		t.Fatalf("super admin should pass, got %d %q", w.Code, w.Body.String())
	}
}

func TestRequirePermissionDeniesWithoutAuthz(t *testing.T) {
	h := New(&provider.Container{})
	r := newPanelTestEngine(h, &models.Admin{ID: 2, Username: "viewer"})
	r.POST("/manage/users/:id/action", h.RequirePermission("/admin/bulk-action", http.MethodPost), func(c *gin.Context) {
		c.String(http.StatusOK, "done")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/manage/users/3/action", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestRequirePermissionWithoutAdminRedirects(t *testing.T) {
	h := New(&provider.Container{})
	r := newPanelTestEngine(h, nil)
	r.GET("/manage/users", h.RequirePermission("/admin/users", http.MethodGet), func(c *gin.Context) {
		c.String(http.StatusOK, "users")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manage/users", nil))
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/manage/login" {
		t.Fatalf("expected login redirect, got %d %s", w.Code, w.Header().Get("Location"))
	}
}

func TestRequireLoginWithoutSessionRedirects(t *testing.T) {
	h := New(&provider.Container{})
	r := newPanelTestEngine(h, nil)
	r.GET("/manage/dashboard", h.RequireLogin(), func(c *gin.Context) {
		c.String(http.StatusOK, "dashboard")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manage/dashboard", nil))
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/manage/login" {
		t.Fatalf("expected login redirect, got %d %s", w.Code, w.Header().Get("Location"))
	}
}

func TestRedirectBackStaysInsidePanel(t *testing.T) {
	h := New(&provider.Container{})
	r := newPanelTestEngine(h, nil)
	r.POST("/back", func(c *gin.Context) { h.redirectBack(c, "/manage/users") })

	cases := []struct {
		referer string
		want    string
	}{
		{"", "/manage/users"},
		{"http://example.com/manage/users?page=2&search=som", "/manage/users?page=2&search=som"},
		{"http://evil.example/phish", "/manage/users"},
		{"http://example.com/manage", "/manage/users"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/back", nil)
		if tc.referer != "" {
			req.Header.Set("Referer", tc.referer)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if got := w.Header().Get("Location"); got != tc.want {
			t.Fatalf("referer %q: want %q, got %q", tc.referer, tc.want, got)
		}
	}
}

func TestNewPager(t *testing.T) {
	query := url.Values{"page": {"2"}, "status": {"pending"}}
	p := newPager(2, 45, query)
	if p.TotalPage != 3 || !p.HasPrev() || !p.HasNext() {
		t.Fatalf("unexpected pager: %+v", p)
	}
	if string(p.Query) != "status=pending" {
		t.Fatalf("page should be dropped from query: %s", p.Query)
	}

	empty := newPager(1, 0, url.Values{})
	if empty.TotalPage != 1 || empty.HasPrev() || empty.HasNext() {
		t.Fatalf("unexpected empty pager: %+v", empty)
	}
}
