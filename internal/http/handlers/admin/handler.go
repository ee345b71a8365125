package admin

import "github.com/ait-marketplace/internal/provider"

// Handler 后台管理接口处理器入口
// 说明：该处理器仅用于管理端 JSON API，HTML 管理面板见 panel 包。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
