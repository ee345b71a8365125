package public

import (
	handlershared "github.com/ait-marketplace/internal/http/handlers/shared"
	"github.com/ait-marketplace/internal/http/response"
	"github.com/ait-marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// SearchItems 商品搜索
func (h *Handler) SearchItems(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	items, total, err := h.SearchService.SearchItems(service.ItemSearchInput{
		Query:     c.Query("q"),
		Category:  c.Query("category"),
		MinPrice:  c.Query("min_price"),
		MaxPrice:  c.Query("max_price"),
		Condition: c.Query("condition"),
		Location:  c.Query("location"),
		IsBarter:  c.Query("is_barter"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.search_failed", err)
		return
	}
	respondPage(c, items, page, pageSize, total)
}

// SearchWantToBuy 求购搜索
func (h *Handler) SearchWantToBuy(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	wants, total, err := h.SearchService.SearchWants(service.WantSearchInput{
		Query:     c.Query("q"),
		Category:  c.Query("category"),
		MaxPrice:  c.Query("max_price"),
		Condition: c.Query("condition"),
		Location:  c.Query("location"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.search_failed", err)
		return
	}
	respondPage(c, wants, page, pageSize, total)
}

// SearchSuggestions 搜索联想
func (h *Handler) SearchSuggestions(c *gin.Context) {
	suggestions, err := h.SearchService.Suggestions(c.Query("q"))
	if err != nil {
		respondError(c, response.CodeInternal, "error.search_failed", err)
		return
	}
	response.Success(c, suggestions)
}

// SearchStats 搜索页统计
func (h *Handler) SearchStats(c *gin.Context) {
	stats, err := h.SearchService.Stats()
	if err != nil {
		respondError(c, response.CodeInternal, "error.search_failed", err)
		return
	}
	response.Success(c, stats)
}
