package panel

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/ait-marketplace/internal/logger"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/provider"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"login", "dashboard", "users", "items", "orders", "memberships", "forbidden"}

// Handler 管理面板（服务端渲染）
type Handler struct {
	*provider.Container
	pages map[string]*template.Template
}

// New 创建面板 Handler 并解析内嵌模板
func New(c *provider.Container) *Handler {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl := template.New("layout.html").Funcs(templateFuncs())
		pages[name] = template.Must(tmpl.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return &Handler{Container: c, pages: pages}
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"money": func(m *models.Money) string {
			if m == nil {
				return "-"
			}
			return m.String()
		},
		"amount": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"datetime": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format("2006-01-02 15:04")
		},
		"datetimePtr": func(t *time.Time) string {
			if t == nil || t.IsZero() {
				return "-"
			}
			return t.Format("2006-01-02 15:04")
		},
	}
}

// render 渲染页面，模板异常时返回 500 纯文本
func (h *Handler) render(c *gin.Context, status int, page string, data gin.H) {
	tmpl, ok := h.pages[page]
	if !ok {
		c.String(http.StatusInternalServerError, "page not found")
		return
	}
	if data == nil {
		data = gin.H{}
	}
	data["AdminName"] = sessionAdminName(c)
	data["Flash"] = popFlash(c)
	data["Page"] = page
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(c.Writer, "layout", data); err != nil {
		logger.Errorw("panel_render_failed", "page", page, "error", err)
	}
}
