package admin

import (
	"github.com/ait-marketplace/internal/http/response"
	"github.com/ait-marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// ForumCategoryRequest 论坛版块请求
type ForumCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

func (r ForumCategoryRequest) toServiceInput() service.ForumCategoryInput {
	return service.ForumCategoryInput{
		Name:        r.Name,
		Description: r.Description,
		Color:       r.Color,
		Icon:        r.Icon,
		IsActive:    r.IsActive,
		SortOrder:   r.SortOrder,
	}
}

// ListForumCategories 全部版块
func (h *Handler) ListForumCategories(c *gin.Context) {
	categories, err := h.ForumService.ListAllCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "error.forum_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateForumCategory 创建版块
func (h *Handler) CreateForumCategory(c *gin.Context) {
	var req ForumCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.ForumService.CreateCategory(req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, forumAdminErrorRules, "error.forum_save_failed")
		return
	}
	response.Created(c, category)
}

// UpdateForumCategory 更新版块
func (h *Handler) UpdateForumCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ForumCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.ForumService.UpdateCategory(id, req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, forumAdminErrorRules, "error.forum_save_failed")
		return
	}
	response.Success(c, category)
}

// DeleteForumCategory 删除版块
func (h *Handler) DeleteForumCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ForumService.DeleteCategory(id); err != nil {
		respondWithMappedError(c, err, forumAdminErrorRules, "error.forum_save_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
