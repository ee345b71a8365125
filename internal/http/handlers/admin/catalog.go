package admin

import (
	"github.com/ait-marketplace/internal/http/response"
	"github.com/ait-marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类请求
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parent_id"`
	ImageURL    string `json:"image_url"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

func (r CategoryRequest) toServiceInput() service.CategoryInput {
	return service.CategoryInput{
		Name:        r.Name,
		Description: r.Description,
		ParentID:    r.ParentID,
		ImageURL:    r.ImageURL,
		IsActive:    r.IsActive,
		SortOrder:   r.SortOrder,
	}
}

// CategoryParameterRequest 分类参数请求
type CategoryParameterRequest struct {
	Name          string `json:"name" binding:"required"`
	ParameterType string `json:"parameter_type"`
	IsRequired    bool   `json:"is_required"`
	Choices       string `json:"choices"`
	SortOrder     int    `json:"sort_order"`
}

func (r CategoryParameterRequest) toServiceInput() service.CategoryParameterInput {
	return service.CategoryParameterInput{
		Name:          r.Name,
		ParameterType: r.ParameterType,
		IsRequired:    r.IsRequired,
		Choices:       r.Choices,
		SortOrder:     r.SortOrder,
	}
}

// ListCategories 全部分类（含停用）
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListAll()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Create(c.Request.Context(), req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, categoryAdminErrorRules, "error.category_save_failed")
		return
	}
	response.Created(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Update(c.Request.Context(), id, req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, categoryAdminErrorRules, "error.category_save_failed")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类（有子分类时拒绝）
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, categoryAdminErrorRules, "error.category_delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListCategoryParameters 分类参数列表
func (h *Handler) ListCategoryParameters(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	params, err := h.CategoryService.ListParameters(id)
	if err != nil {
		respondWithMappedError(c, err, categoryAdminErrorRules, "error.category_fetch_failed")
		return
	}
	response.Success(c, params)
}

// CreateCategoryParameter 新增分类参数
func (h *Handler) CreateCategoryParameter(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CategoryParameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	param, err := h.CategoryService.CreateParameter(c.Request.Context(), id, req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, categoryAdminErrorRules, "error.category_save_failed")
		return
	}
	response.Created(c, param)
}

// UpdateCategoryParameter 更新分类参数
func (h *Handler) UpdateCategoryParameter(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CategoryParameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	param, err := h.CategoryService.UpdateParameter(c.Request.Context(), id, req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, categoryAdminErrorRules, "error.category_save_failed")
		return
	}
	response.Success(c, param)
}

// DeleteCategoryParameter 删除分类参数
func (h *Handler) DeleteCategoryParameter(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CategoryService.DeleteParameter(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, categoryAdminErrorRules, "error.category_delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
