package public

import (
	"github.com/ait-marketplace/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardStatistics 全站概览（缓存 60 秒）
func (h *Handler) GetDashboardStatistics(c *gin.Context) {
	stats, err := h.StatisticsService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.statistics_failed", err)
		return
	}
	response.Success(c, stats)
}

// GetUserStatistics 当前用户统计
func (h *Handler) GetUserStatistics(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	stats, err := h.StatisticsService.User(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.statistics_failed", err)
		return
	}
	response.Success(c, stats)
}

// GetSalesStatistics 销售统计
func (h *Handler) GetSalesStatistics(c *gin.Context) {
	stats, err := h.StatisticsService.Sales()
	if err != nil {
		respondError(c, response.CodeInternal, "error.statistics_failed", err)
		return
	}
	response.Success(c, stats)
}

// GetItemStatistics 商品统计
func (h *Handler) GetItemStatistics(c *gin.Context) {
	stats, err := h.StatisticsService.Items()
	if err != nil {
		respondError(c, response.CodeInternal, "error.statistics_failed", err)
		return
	}
	response.Success(c, stats)
}
