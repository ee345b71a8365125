package admin

import (
	"github.com/ait-marketplace/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboard 管理看板
func (h *Handler) GetDashboard(c *gin.Context) {
	dashboard, err := h.AdminService.Dashboard()
	if err != nil {
		respondError(c, response.CodeInternal, "error.statistics_failed", err)
		return
	}
	response.Success(c, dashboard)
}

// GetSystemHealth 数据库与 Redis 健康检查
func (h *Handler) GetSystemHealth(c *gin.Context) {
	response.Success(c, h.AdminService.SystemHealth(c.Request.Context()))
}
