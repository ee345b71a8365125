package public

import (
	"bytes"
	"encoding/json"

	handlershared "github.com/ait-marketplace/internal/http/handlers/shared"
	"github.com/ait-marketplace/internal/http/response"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// ItemRequest 创建/更新商品请求，price 传 null 表示面议
type ItemRequest struct {
	Title        *string         `json:"title"`
	Description  *string         `json:"description"`
	Price        json.RawMessage `json:"price"`
	Category     *string         `json:"category"`
	CategoryID   *uint           `json:"category_id"`
	ImageURL     *string         `json:"image_url"`
	ImageURLs    []string        `json:"image_urls"`
	IsAvailable  *bool           `json:"is_available"`
	IsBarter     *bool           `json:"is_barter"`
	AllowBarter  *bool           `json:"allow_barter"`
	DesiredItem  *string         `json:"desired_item"`
	Condition    *string         `json:"condition"`
	Location     *string         `json:"location"`
	ContactPhone *string         `json:"contact_phone"`
}

func (r ItemRequest) toServiceInput() (service.ItemInput, error) {
	input := service.ItemInput{
		Title:        r.Title,
		Description:  r.Description,
		Category:     r.Category,
		CategoryID:   r.CategoryID,
		ImageURL:     r.ImageURL,
		ImageURLs:    r.ImageURLs,
		IsAvailable:  r.IsAvailable,
		IsBarter:     r.IsBarter,
		AllowBarter:  r.AllowBarter,
		DesiredItem:  r.DesiredItem,
		Condition:    r.Condition,
		Location:     r.Location,
		ContactPhone: r.ContactPhone,
	}
	price, clear, err := parseNullableMoney(r.Price)
	if err != nil {
		return input, err
	}
	input.Price = price
	input.ClearPrice = clear
	return input, nil
}

// parseNullableMoney 解析可空金额：缺省返回 nil，显式 null 返回 clear=true
func parseNullableMoney(raw json.RawMessage) (*models.Money, bool, error) {
	if len(raw) == 0 {
		return nil, false, nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, true, nil
	}
	var money models.Money
	if err := json.Unmarshal(raw, &money); err != nil {
		return nil, false, err
	}
	return &money, false, nil
}

// ListItems 商品列表（可选登录）
func (h *Handler) ListItems(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	input := service.ItemListInput{
		ViewerID: optionalUserID(c),
		OwnerID:  handlershared.QueryUint(c, "owner"),
		My:       handlershared.QueryFlag(c, "my"),
		Featured: handlershared.QueryFlag(c, "featured"),
		Barter:   handlershared.QueryFlag(c, "is_barter"),
		Page:     page,
		PageSize: pageSize,
	}
	items, total, err := h.ItemService.List(input)
	if err != nil {
		respondError(c, response.CodeInternal, "error.item_fetch_failed", err)
		return
	}
	respondPage(c, items, page, pageSize, total)
}

// GetItem 商品详情
func (h *Handler) GetItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	item, err := h.ItemService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, itemErrorRules, "error.item_fetch_failed")
		return
	}
	response.Success(c, item)
}

// CreateItem 发布商品
func (h *Handler) CreateItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.item_price_invalid", err)
		return
	}
	item, err := h.ItemService.Create(uid, input)
	if err != nil {
		respondWithMappedError(c, err, itemErrorRules, "error.item_save_failed")
		return
	}
	response.Created(c, item)
}

// UpdateItem 更新商品（PUT/PATCH 均为部分更新）
func (h *Handler) UpdateItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.item_price_invalid", err)
		return
	}
	item, err := h.ItemService.Update(uid, id, input)
	if err != nil {
		respondWithMappedError(c, err, itemErrorRules, "error.item_save_failed")
		return
	}
	response.Success(c, item)
}

// DeleteItem 删除商品
func (h *Handler) DeleteItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ItemService.Delete(uid, id); err != nil {
		respondWithMappedError(c, err, itemErrorRules, "error.item_delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// SetItemFeatured 设为精选（需会员）
func (h *Handler) SetItemFeatured(c *gin.Context) {
	h.toggleFeatured(c, true)
}

// UnsetItemFeatured 取消精选
func (h *Handler) UnsetItemFeatured(c *gin.Context) {
	h.toggleFeatured(c, false)
}

func (h *Handler) toggleFeatured(c *gin.Context, featured bool) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var (
		item *models.Item
		err  error
	)
	if featured {
		item, err = h.ItemService.SetFeatured(uid, id)
	} else {
		item, err = h.ItemService.UnsetFeatured(uid, id)
	}
	if err != nil {
		respondWithMappedError(c, err, itemErrorRules, "error.item_save_failed")
		return
	}
	response.Success(c, item)
}
