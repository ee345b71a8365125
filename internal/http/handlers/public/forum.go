package public

import (
	handlershared "github.com/ait-marketplace/internal/http/handlers/shared"
	"github.com/ait-marketplace/internal/http/response"
	"github.com/ait-marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

// ForumPostRequest 帖子请求
type ForumPostRequest struct {
	Category *uint   `json:"category"`
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	PostType *string `json:"post_type"`
	Status   *string `json:"status"`
}

func (r ForumPostRequest) toServiceInput() service.ForumPostInput {
	return service.ForumPostInput{
		CategoryID: r.Category,
		Title:      r.Title,
		Content:    r.Content,
		PostType:   r.PostType,
		Status:     r.Status,
	}
}

// ForumReplyRequest 回复请求
type ForumReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListForumCategories 启用的版块
func (h *Handler) ListForumCategories(c *gin.Context) {
	categories, err := h.ForumService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "error.forum_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// ListForumPosts 已发布帖子列表
func (h *Handler) ListForumPosts(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	posts, total, err := h.ForumService.ListPosts(service.ForumPostListInput{
		ViewerID:   optionalUserID(c),
		CategoryID: handlershared.QueryUint(c, "category"),
		PostType:   c.Query("type"),
		Search:     c.Query("search"),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.forum_fetch_failed", err)
		return
	}
	respondPage(c, posts, page, pageSize, total)
}

// ListMyForumPosts 我的帖子（含草稿）
func (h *Handler) ListMyForumPosts(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.QueryPagination(c)
	posts, total, err := h.ForumService.ListMyPosts(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.forum_fetch_failed", err)
		return
	}
	respondPage(c, posts, page, pageSize, total)
}

// CreateForumPost 发帖
func (h *Handler) CreateForumPost(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ForumPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	post, err := h.ForumService.CreatePost(uid, req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, forumErrorRules, "error.forum_save_failed")
		return
	}
	response.Created(c, post)
}

// GetForumPost 帖子详情，浏览数 +1
func (h *Handler) GetForumPost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	post, err := h.ForumService.ViewPost(optionalUserID(c), id)
	if err != nil {
		respondWithMappedError(c, err, forumErrorRules, "error.forum_fetch_failed")
		return
	}
	response.Success(c, post)
}

// UpdateForumPost 编辑帖子（仅作者）
func (h *Handler) UpdateForumPost(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ForumPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	post, err := h.ForumService.UpdatePost(uid, id, req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, forumErrorRules, "error.forum_save_failed")
		return
	}
	response.Success(c, post)
}

// DeleteForumPost 删除帖子（仅作者）
func (h *Handler) DeleteForumPost(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ForumService.DeletePost(uid, id); err != nil {
		respondWithMappedError(c, err, forumErrorRules, "error.forum_save_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListForumReplies 帖子回复列表
func (h *Handler) ListForumReplies(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	page, pageSize := handlershared.QueryPagination(c)
	replies, total, err := h.ForumService.ListReplies(optionalUserID(c), id, page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, forumErrorRules, "error.forum_fetch_failed")
		return
	}
	respondPage(c, replies, page, pageSize, total)
}

// CreateForumReply 回复帖子，锁定帖拒绝
func (h *Handler) CreateForumReply(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ForumReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	reply, err := h.ForumService.CreateReply(uid, id, req.Content)
	if err != nil {
		respondWithMappedError(c, err, forumErrorRules, "error.forum_save_failed")
		return
	}
	response.Created(c, reply)
}

// ToggleForumPostLike 点赞/取消点赞帖子
func (h *Handler) ToggleForumPostLike(c *gin.Context) {
	h.toggleLike(c, h.ForumService.TogglePostLike)
}

// ToggleForumReplyLike 点赞/取消点赞回复
func (h *Handler) ToggleForumReplyLike(c *gin.Context) {
	h.toggleLike(c, h.ForumService.ToggleReplyLike)
}

func (h *Handler) toggleLike(c *gin.Context, toggle func(userID, targetID uint) (bool, error)) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	liked, err := toggle(uid, id)
	if err != nil {
		respondWithMappedError(c, err, forumErrorRules, "error.forum_save_failed")
		return
	}
	response.Success(c, gin.H{"liked": liked})
}

// MarkForumSolution 帖子作者采纳回复
func (h *Handler) MarkForumSolution(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reply, err := h.ForumService.MarkSolution(uid, id)
	if err != nil {
		respondWithMappedError(c, err, forumErrorRules, "error.forum_save_failed")
		return
	}
	response.Success(c, reply)
}

// GetForumStats 论坛统计
func (h *Handler) GetForumStats(c *gin.Context) {
	stats, err := h.ForumService.Stats()
	if err != nil {
		respondError(c, response.CodeInternal, "error.forum_fetch_failed", err)
		return
	}
	response.Success(c, stats)
}
