package public

import (
	"net"
	"strings"
	"time"

	handlershared "github.com/ait-marketplace/internal/http/handlers/shared"
	"github.com/ait-marketplace/internal/http/response"
	"github.com/ait-marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// AdvertisementRequest 广告请求
type AdvertisementRequest struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	AdType           *string    `json:"ad_type"`
	ImageURL         *string    `json:"image_url"`
	LinkURL          *string    `json:"link_url"`
	Status           *string    `json:"status"`
	TargetCategories *string    `json:"target_categories"`
	TargetLocations  *string    `json:"target_locations"`
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	Position         *string    `json:"position"`
	SortOrder        *int       `json:"sort_order"`
}

func (r AdvertisementRequest) toServiceInput() service.AdvertisementInput {
	return service.AdvertisementInput{
		Title:            r.Title,
		Description:      r.Description,
		AdType:           r.AdType,
		ImageURL:         r.ImageURL,
		LinkURL:          r.LinkURL,
		Status:           r.Status,
		TargetCategories: r.TargetCategories,
		TargetLocations:  r.TargetLocations,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		Position:         r.Position,
		SortOrder:        r.SortOrder,
	}
}

// AdEventRequest 曝光/点击上报请求
type AdEventRequest struct {
	PageURL string `json:"page_url"`
}

// ListMyAdvertisements 我的广告
func (h *Handler) ListMyAdvertisements(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.QueryPagination(c)
	ads, total, err := h.AdvertisementService.ListMine(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.ad_fetch_failed", err)
		return
	}
	respondPage(c, ads, page, pageSize, total)
}

// CreateAdvertisement 创建广告
func (h *Handler) CreateAdvertisement(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AdvertisementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	ad, err := h.AdvertisementService.Create(uid, req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, advertisementErrorRules, "error.ad_save_failed")
		return
	}
	response.Created(c, ad)
}

// GetAdvertisement 广告详情（仅创建者）
func (h *Handler) GetAdvertisement(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ad, err := h.AdvertisementService.Get(uid, id)
	if err != nil {
		respondWithMappedError(c, err, handlershared.ConcatMappedErrors(advertisementErrorRules, commonErrorRules), "error.ad_fetch_failed")
		return
	}
	response.Success(c, ad)
}

// UpdateAdvertisement 修改广告（仅创建者）
func (h *Handler) UpdateAdvertisement(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req AdvertisementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	ad, err := h.AdvertisementService.Update(uid, id, req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, handlershared.ConcatMappedErrors(advertisementErrorRules, commonErrorRules), "error.ad_save_failed")
		return
	}
	response.Success(c, ad)
}

// DeleteAdvertisement 删除广告（仅创建者）
func (h *Handler) DeleteAdvertisement(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.AdvertisementService.Delete(uid, id); err != nil {
		respondWithMappedError(c, err, handlershared.ConcatMappedErrors(advertisementErrorRules, commonErrorRules), "error.ad_save_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListPublicAdvertisements 投放期内的广告
func (h *Handler) ListPublicAdvertisements(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	ads, total, err := h.AdvertisementService.ListPublic("", page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.ad_fetch_failed", err)
		return
	}
	respondPage(c, ads, page, pageSize, total)
}

// ListPositionAdvertisements 指定广告位的投放广告
func (h *Handler) ListPositionAdvertisements(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	ads, total, err := h.AdvertisementService.ListPublic(strings.TrimSpace(c.Param("position")), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.ad_fetch_failed", err)
		return
	}
	respondPage(c, ads, page, pageSize, total)
}

// GetAdvertisementStats 我的广告统计（含点击率）
func (h *Handler) GetAdvertisementStats(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	stats, err := h.AdvertisementService.Stats(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.ad_fetch_failed", err)
		return
	}
	response.Success(c, stats)
}

// RecordAdvertisementView 记录曝光
func (h *Handler) RecordAdvertisementView(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	counted, err := h.AdvertisementService.RecordView(c.Request.Context(), id, adEventInput(c))
	if err != nil {
		respondWithMappedError(c, err, advertisementErrorRules, "error.ad_event_failed")
		return
	}
	response.Success(c, gin.H{"recorded": counted})
}

// RecordAdvertisementClick 记录点击
func (h *Handler) RecordAdvertisementClick(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	counted, err := h.AdvertisementService.RecordClick(c.Request.Context(), id, adEventInput(c))
	if err != nil {
		respondWithMappedError(c, err, advertisementErrorRules, "error.ad_event_failed")
		return
	}
	response.Success(c, gin.H{"recorded": counted})
}

// GetAdvertisementAnalytics 广告分析（仅创建者）
func (h *Handler) GetAdvertisementAnalytics(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	analytics, err := h.AdvertisementService.Analytics(uid, id)
	if err != nil {
		respondWithMappedError(c, err, handlershared.ConcatMappedErrors(advertisementErrorRules, commonErrorRules), "error.ad_fetch_failed")
		return
	}
	response.Success(c, analytics)
}

func adEventInput(c *gin.Context) service.AdEventInput {
	var req AdEventRequest
	if c.Request.ContentLength > 0 {
		_ = c.ShouldBindJSON(&req)
	}
	input := service.AdEventInput{
		IPAddress: requestIP(c),
		UserAgent: c.Request.UserAgent(),
		Referer:   c.Request.Referer(),
		PageURL:   strings.TrimSpace(req.PageURL),
	}
	if uid := optionalUserID(c); uid != 0 {
		input.UserID = &uid
	}
	return input
}

// requestIP 优先取 X-Forwarded-For 第一段，否则取连接地址
func requestIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}
	return c.RemoteIP()
}
