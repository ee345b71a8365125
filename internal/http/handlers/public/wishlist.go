package public

import (
	"encoding/json"

	handlershared "github.com/ait-marketplace/internal/http/handlers/shared"
	"github.com/ait-marketplace/internal/http/response"
	"github.com/ait-marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// WishlistAddRequest 收藏请求
type WishlistAddRequest struct {
	ItemID uint   `json:"item_id" binding:"required"`
	Notes  string `json:"notes"`
}

// WantToBuyRequest 求购请求，max_price 传 null 表示不限
type WantToBuyRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Category    *string         `json:"category"`
	MaxPrice    json.RawMessage `json:"max_price"`
	Condition   *string         `json:"condition"`
	Location    *string         `json:"location"`
	Status      *string         `json:"status"`
}

func (r WantToBuyRequest) toServiceInput() (service.WantToBuyInput, error) {
	input := service.WantToBuyInput{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Condition:   r.Condition,
		Location:    r.Location,
		Status:      r.Status,
	}
	price, clear, err := parseNullableMoney(r.MaxPrice)
	if err != nil {
		return input, err
	}
	input.MaxPrice = price
	input.ClearMaxPrice = clear
	return input, nil
}

// GetWishlist 获取收藏夹
func (h *Handler) GetWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	wishlist, err := h.WishlistService.Get(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.wishlist_fetch_failed", err)
		return
	}
	response.Success(c, wishlist)
}

// AddWishlistItem 收藏商品
func (h *Handler) AddWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req WishlistAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	entry, err := h.WishlistService.Add(uid, req.ItemID, req.Notes)
	if err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, "error.wishlist_update_failed")
		return
	}
	response.Created(c, entry)
}

// RemoveWishlistItem 取消收藏
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}
	if err := h.WishlistService.Remove(uid, itemID); err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, "error.wishlist_update_failed")
		return
	}
	response.Success(c, gin.H{"removed": true})
}

// ListWantToBuy 全站进行中的求购
func (h *Handler) ListWantToBuy(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	wants, total, err := h.WishlistService.ListActiveWants(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.want_to_buy_fetch_failed", err)
		return
	}
	respondPage(c, wants, page, pageSize, total)
}

// ListUserWantToBuy 指定用户进行中的求购
func (h *Handler) ListUserWantToBuy(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}
	page, pageSize := handlershared.QueryPagination(c)
	wants, total, err := h.WishlistService.ListUserWants(userID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.want_to_buy_fetch_failed", err)
		return
	}
	respondPage(c, wants, page, pageSize, total)
}

// CreateWantToBuy 发布求购
func (h *Handler) CreateWantToBuy(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req WantToBuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.want_to_buy_invalid", err)
		return
	}
	want, err := h.WishlistService.CreateWant(uid, input)
	if err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, "error.want_to_buy_save_failed")
		return
	}
	response.Created(c, want)
}

// GetWantToBuy 我的求购详情
func (h *Handler) GetWantToBuy(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	want, err := h.WishlistService.GetWant(uid, id)
	if err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, "error.want_to_buy_fetch_failed")
		return
	}
	response.Success(c, want)
}

// UpdateWantToBuy 修改我的求购
func (h *Handler) UpdateWantToBuy(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req WantToBuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.want_to_buy_invalid", err)
		return
	}
	want, err := h.WishlistService.UpdateWant(uid, id, input)
	if err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, "error.want_to_buy_save_failed")
		return
	}
	response.Success(c, want)
}

// DeleteWantToBuy 删除我的求购
func (h *Handler) DeleteWantToBuy(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.WishlistService.DeleteWant(uid, id); err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, "error.want_to_buy_save_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// FulfillWantToBuy 标记求购已完成
func (h *Handler) FulfillWantToBuy(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	want, err := h.WishlistService.FulfillWant(uid, id)
	if err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, "error.want_to_buy_save_failed")
		return
	}
	response.Success(c, want)
}
