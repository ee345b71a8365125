package public

import (
	handlershared "github.com/ait-marketplace/internal/http/handlers/shared"
	"github.com/ait-marketplace/internal/http/response"
	"github.com/ait-marketplace/internal/models"

	"github.com/gin-gonic/gin"
)

// BarterCreateRequest 发起换物请求
type BarterCreateRequest struct {
	ItemOffered   uint `json:"item_offered" binding:"required"`
	ItemRequested uint `json:"item_requested" binding:"required"`
}

// ListBarters 我参与的换物交易
func (h *Handler) ListBarters(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.QueryPagination(c)
	trades, total, err := h.BarterService.List(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.barter_fetch_failed", err)
		return
	}
	respondPage(c, trades, page, pageSize, total)
}

// CreateBarter 发起换物
func (h *Handler) CreateBarter(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req BarterCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	trade, err := h.BarterService.Create(uid, req.ItemOffered, req.ItemRequested)
	if err != nil {
		respondWithMappedError(c, err, barterErrorRules, "error.barter_save_failed")
		return
	}
	response.Created(c, trade)
}

// GetBarter 换物详情（仅双方可见）
func (h *Handler) GetBarter(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	trade, err := h.BarterService.Get(uid, id)
	if err != nil {
		respondWithMappedError(c, err, barterErrorRules, "error.barter_fetch_failed")
		return
	}
	response.Success(c, trade)
}

// DeleteBarter 发起方撤回待处理的换物
func (h *Handler) DeleteBarter(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.BarterService.Delete(uid, id); err != nil {
		respondWithMappedError(c, err, barterErrorRules, "error.barter_save_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// AcceptBarter 接受换物
func (h *Handler) AcceptBarter(c *gin.Context) {
	h.transitionBarter(c, h.BarterService.Accept)
}

// RejectBarter 拒绝换物
func (h *Handler) RejectBarter(c *gin.Context) {
	h.transitionBarter(c, h.BarterService.Reject)
}

// CompleteBarter 完成换物
func (h *Handler) CompleteBarter(c *gin.Context) {
	h.transitionBarter(c, h.BarterService.Complete)
}

func (h *Handler) transitionBarter(c *gin.Context, transition func(userID, id uint) (*models.BarterTransaction, error)) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	trade, err := transition(uid, id)
	if err != nil {
		respondWithMappedError(c, err, barterErrorRules, "error.barter_save_failed")
		return
	}
	response.Success(c, trade)
}
