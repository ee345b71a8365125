package public

import (
	"encoding/json"

	handlershared "github.com/ait-marketplace/internal/http/handlers/shared"
	"github.com/ait-marketplace/internal/http/response"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// WantedRequest 求购帖请求
type WantedRequest struct {
	Title               *string         `json:"title"`
	Description         *string         `json:"description"`
	MaxPrice            json.RawMessage `json:"max_price"`
	Category            *string         `json:"category"`
	ConditionPreference *string         `json:"condition_preference"`
	ContactPhone        *string         `json:"contact_phone"`
	Location            *string         `json:"location"`
	IsActive            *bool           `json:"is_active"`
	PaidAmount          *models.Money   `json:"paid_amount"`
}

func (r WantedRequest) toServiceInput() (service.WantedInput, error) {
	input := service.WantedInput{
		Title:               r.Title,
		Description:         r.Description,
		Category:            r.Category,
		ConditionPreference: r.ConditionPreference,
		ContactPhone:        r.ContactPhone,
		Location:            r.Location,
		IsActive:            r.IsActive,
		PaidAmount:          r.PaidAmount,
	}
	price, clear, err := parseNullableMoney(r.MaxPrice)
	if err != nil {
		return input, err
	}
	input.MaxPrice = price
	input.ClearMaxPrice = clear
	return input, nil
}

// GetWantedPostInfo 本月免费额度与发帖费用
func (h *Handler) GetWantedPostInfo(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	info, err := h.WantedService.PostInfo(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.wanted_fetch_failed", err)
		return
	}
	response.Success(c, info)
}

// ListWanted 求购帖列表（可选登录）
func (h *Handler) ListWanted(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	posts, total, err := h.WantedService.List(service.WantedListInput{
		ViewerID: optionalUserID(c),
		UserID:   handlershared.QueryUint(c, "user"),
		My:       handlershared.QueryFlag(c, "my"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.wanted_fetch_failed", err)
		return
	}
	respondPage(c, posts, page, pageSize, total)
}

// CreateWanted 发布求购帖，免费额度用尽时需支付发帖费
func (h *Handler) CreateWanted(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req WantedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.wanted_invalid", err)
		return
	}
	post, err := h.WantedService.Create(uid, input)
	if err != nil {
		respondWithMappedError(c, err, wantedErrorRules, "error.wanted_save_failed")
		return
	}
	response.Created(c, post)
}

// GetWanted 求购帖详情
func (h *Handler) GetWanted(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	post, err := h.WantedService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, wantedErrorRules, "error.wanted_fetch_failed")
		return
	}
	response.Success(c, post)
}

// UpdateWanted 修改求购帖（仅发布者）
func (h *Handler) UpdateWanted(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req WantedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.wanted_invalid", err)
		return
	}
	post, err := h.WantedService.Update(uid, id, input)
	if err != nil {
		respondWithMappedError(c, err, handlershared.ConcatMappedErrors(wantedErrorRules, commonErrorRules), "error.wanted_save_failed")
		return
	}
	response.Success(c, post)
}

// DeleteWanted 删除求购帖（仅发布者）
func (h *Handler) DeleteWanted(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.WantedService.Delete(uid, id); err != nil {
		respondWithMappedError(c, err, handlershared.ConcatMappedErrors(wantedErrorRules, commonErrorRules), "error.wanted_save_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
