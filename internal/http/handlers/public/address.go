package public

import (
	"github.com/ait-marketplace/internal/http/response"
	"github.com/ait-marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// AddressRequest 地址请求
type AddressRequest struct {
	Name          *string `json:"name"`
	AddressType   *string `json:"address_type"`
	RecipientName *string `json:"recipient_name"`
	PhoneNumber   *string `json:"phone_number"`
	AddressLine1  *string `json:"address_line_1"`
	AddressLine2  *string `json:"address_line_2"`
	City          *string `json:"city"`
	StateProvince *string `json:"state_province"`
	PostalCode    *string `json:"postal_code"`
	Country       *string `json:"country"`
	IsDefault     *bool   `json:"is_default"`
}

func (r AddressRequest) toServiceInput() service.AddressInput {
	return service.AddressInput{
		Name:          r.Name,
		AddressType:   r.AddressType,
		RecipientName: r.RecipientName,
		PhoneNumber:   r.PhoneNumber,
		AddressLine1:  r.AddressLine1,
		AddressLine2:  r.AddressLine2,
		City:          r.City,
		StateProvince: r.StateProvince,
		PostalCode:    r.PostalCode,
		Country:       r.Country,
		IsDefault:     r.IsDefault,
	}
}

// ListAddresses 我的地址（默认优先）
func (h *Handler) ListAddresses(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	addresses, err := h.AddressService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.address_fetch_failed", err)
		return
	}
	response.Success(c, addresses)
}

// GetDefaultAddress 默认地址，不存在返回 404
func (h *Handler) GetDefaultAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	address, err := h.AddressService.GetDefault(uid)
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, "error.address_fetch_failed")
		return
	}
	response.Success(c, address)
}

// CreateAddress 新增地址
func (h *Handler) CreateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	address, err := h.AddressService.Create(uid, req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, "error.address_save_failed")
		return
	}
	response.Created(c, address)
}

// GetAddress 地址详情
func (h *Handler) GetAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	address, err := h.AddressService.Get(uid, id)
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, "error.address_fetch_failed")
		return
	}
	response.Success(c, address)
}

// UpdateAddress 修改地址
func (h *Handler) UpdateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	address, err := h.AddressService.Update(uid, id, req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, "error.address_save_failed")
		return
	}
	response.Success(c, address)
}

// DeleteAddress 删除地址
func (h *Handler) DeleteAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.AddressService.Delete(uid, id); err != nil {
		respondWithMappedError(c, err, addressErrorRules, "error.address_save_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// SetDefaultAddress 设为默认地址
func (h *Handler) SetDefaultAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	address, err := h.AddressService.SetDefault(uid, id)
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, "error.address_save_failed")
		return
	}
	response.Success(c, address)
}
