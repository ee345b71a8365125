package public

import (
	handlershared "github.com/ait-marketplace/internal/http/handlers/shared"
	"github.com/ait-marketplace/internal/http/response"
	"github.com/ait-marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// SendMessageRequest 发送消息请求
type SendMessageRequest struct {
	Receiver uint   `json:"receiver" binding:"required"`
	Item     *uint  `json:"item"`
	Text     string `json:"text" binding:"required"`
}

// ListMessages 我收发的消息
func (h *Handler) ListMessages(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.QueryPagination(c)
	messages, total, err := h.ChatService.List(service.MessageListInput{
		UserID:   uid,
		WithUser: handlershared.QueryUint(c, "with"),
		ItemID:   handlershared.QueryUint(c, "item"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.message_fetch_failed", err)
		return
	}
	respondPage(c, messages, page, pageSize, total)
}

// SendMessage 发送消息
func (h *Handler) SendMessage(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	message, err := h.ChatService.Send(uid, service.SendMessageInput{
		ReceiverID: req.Receiver,
		ItemID:     req.Item,
		Text:       req.Text,
	})
	if err != nil {
		respondWithMappedError(c, err, handlershared.ConcatMappedErrors(chatErrorRules, commonErrorRules), "error.message_send_failed")
		return
	}
	response.Created(c, message)
}

// GetMessage 消息详情
func (h *Handler) GetMessage(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	message, err := h.ChatService.Get(uid, id)
	if err != nil {
		respondWithMappedError(c, err, chatErrorRules, "error.message_fetch_failed")
		return
	}
	response.Success(c, message)
}

// DeleteMessage 删除消息（仅发送者）
func (h *Handler) DeleteMessage(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ChatService.Delete(uid, id); err != nil {
		respondWithMappedError(c, err, handlershared.ConcatMappedErrors(chatErrorRules, commonErrorRules), "error.message_delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListConversations 会话列表
func (h *Handler) ListConversations(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	conversations, err := h.ChatService.Conversations(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.message_fetch_failed", err)
		return
	}
	response.Success(c, conversations)
}
