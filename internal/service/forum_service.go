package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/queue"
	"github.com/ait-marketplace/internal/repository"

	"gorm.io/gorm"
)

var forumColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ForumService 论坛服务
type ForumService struct {
	repo     repository.ForumRepository
	notifier *NotificationService
}

// NewForumService 创建论坛服务
func NewForumService(repo repository.ForumRepository, notifier *NotificationService) *ForumService {
	return &ForumService{repo: repo, notifier: notifier}
}

// ForumCategoryInput 论坛分类参数
type ForumCategoryInput struct {
	Name        string
	Description string
	Color       string
	Icon        string
	IsActive    *bool
	SortOrder   int
}

// ForumPostInput 帖子参数，指针为空表示不修改
type ForumPostInput struct {
	CategoryID *uint
	Title      *string
	Content    *string
	PostType   *string
	Status     *string
}

// ForumPostListInput 帖子列表参数
type ForumPostListInput struct {
	ViewerID   uint
	CategoryID uint
	PostType   string
	Search     string
	Page       int
	PageSize   int
}

// ForumStats 论坛统计
type ForumStats struct {
	TotalPosts    int64 `json:"total_posts"`
	TotalReplies  int64 `json:"total_replies"`
	TotalUsers    int64 `json:"total_users"`
	RecentPosts   int64 `json:"recent_posts"`
	RecentReplies int64 `json:"recent_replies"`
}

var (
	forumPostTypes = []string{
		constants.ForumPostTypeDiscussion,
		constants.ForumPostTypeQuestion,
		constants.ForumPostTypeAnnouncement,
		constants.ForumPostTypeHelp,
	}
	forumPostStatuses = []string{
		constants.ForumPostStatusDraft,
		constants.ForumPostStatusPublished,
		constants.ForumPostStatusClosed,
		constants.ForumPostStatusDeleted,
	}
)

// ListCategories 启用的论坛分类
func (s *ForumService) ListCategories() ([]models.ForumCategory, error) {
	return s.repo.ListCategories(true)
}

// ListAllCategories 后台论坛分类（含停用）
func (s *ForumService) ListAllCategories() ([]models.ForumCategory, error) {
	return s.repo.ListCategories(false)
}

// CreateCategory 新建论坛分类
func (s *ForumService) CreateCategory(input ForumCategoryInput) (*models.ForumCategory, error) {
	category := &models.ForumCategory{IsActive: true}
	if err := s.applyCategory(category, 0, input); err != nil {
		return nil, err
	}
	if err := s.repo.CreateCategory(category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory 更新论坛分类
func (s *ForumService) UpdateCategory(id uint, input ForumCategoryInput) (*models.ForumCategory, error) {
	category, err := s.repo.GetCategory(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrForumCategoryNotFound
	}
	if err := s.applyCategory(category, id, input); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateCategory(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory 删除论坛分类
func (s *ForumService) DeleteCategory(id uint) error {
	category, err := s.repo.GetCategory(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrForumCategoryNotFound
	}
	return s.repo.DeleteCategory(id)
}

func (s *ForumService) applyCategory(category *models.ForumCategory, id uint, input ForumCategoryInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrForumCategoryInvalid
	}
	color := strings.TrimSpace(input.Color)
	if color == "" {
		color = constants.ForumCategoryColorDefault
	}
	if !forumColorPattern.MatchString(color) {
		return ErrForumCategoryInvalid
	}
	count, err := s.repo.CountCategoryByName(name, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrForumCategoryExists
	}
	category.Name = name
	category.Description = strings.TrimSpace(input.Description)
	category.Color = color
	category.Icon = strings.TrimSpace(input.Icon)
	category.SortOrder = input.SortOrder
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	return nil
}

// ListPosts 已发布帖子：置顶优先，其次最近回复，再按发布时间
func (s *ForumService) ListPosts(input ForumPostListInput) ([]models.ForumPost, int64, error) {
	posts, total, err := s.repo.ListPosts(repository.ForumPostListFilter{
		Page:       input.Page,
		PageSize:   input.PageSize,
		CategoryID: input.CategoryID,
		PostType:   strings.TrimSpace(input.PostType),
		Search:     input.Search,
		Status:     constants.ForumPostStatusPublished,
	})
	if err != nil {
		return nil, 0, err
	}
	if err := s.markLikedPosts(input.ViewerID, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListMyPosts 当前用户的全部帖子
func (s *ForumService) ListMyPosts(userID uint, page, pageSize int) ([]models.ForumPost, int64, error) {
	return s.repo.ListPosts(repository.ForumPostListFilter{Page: page, PageSize: pageSize, AuthorID: userID})
}

func (s *ForumService) markLikedPosts(viewerID uint, posts []models.ForumPost) error {
	if viewerID == 0 || len(posts) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}
	liked, err := s.repo.LikedPostIDs(viewerID, ids)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].IsLiked = liked[posts[i].ID]
	}
	return nil
}

// CreatePost 发帖
func (s *ForumService) CreatePost(authorID uint, input ForumPostInput) (*models.ForumPost, error) {
	post := &models.ForumPost{
		AuthorID: authorID,
		PostType: constants.ForumPostTypeDiscussion,
		Status:   constants.ForumPostStatusPublished,
	}
	if err := s.applyPost(post, input); err != nil {
		return nil, err
	}
	if post.CategoryID == 0 || post.Title == "" || post.Content == "" {
		return nil, ErrForumPostInvalid
	}
	if err := s.repo.CreatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// ViewPost 查看已发布帖子并累加浏览数
func (s *ForumService) ViewPost(viewerID, id uint) (*models.ForumPost, error) {
	post, err := s.repo.GetPost(id)
	if err != nil {
		return nil, err
	}
	if post == nil || post.Status != constants.ForumPostStatusPublished {
		return nil, ErrForumPostNotFound
	}
	if err := s.repo.IncrementPostViews(id); err != nil {
		return nil, err
	}
	post.ViewCount++
	posts := []models.ForumPost{*post}
	if err := s.markLikedPosts(viewerID, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

func (s *ForumService) authoredPost(userID, id uint) (*models.ForumPost, error) {
	post, err := s.repo.GetPost(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrForumPostNotFound
	}
	if post.AuthorID != userID {
		return nil, ErrForumNotAuthor
	}
	return post, nil
}

// UpdatePost 作者编辑帖子
func (s *ForumService) UpdatePost(userID, id uint, input ForumPostInput) (*models.ForumPost, error) {
	post, err := s.authoredPost(userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyPost(post, input); err != nil {
		return nil, err
	}
	if post.Title == "" || post.Content == "" {
		return nil, ErrForumPostInvalid
	}
	if err := s.repo.UpdatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost 作者删除帖子
func (s *ForumService) DeletePost(userID, id uint) error {
	if _, err := s.authoredPost(userID, id); err != nil {
		return err
	}
	return s.repo.DeletePost(id)
}

func (s *ForumService) applyPost(post *models.ForumPost, input ForumPostInput) error {
	if input.CategoryID != nil {
		category, err := s.repo.GetCategory(*input.CategoryID)
		if err != nil {
			return err
		}
		if category == nil || !category.IsActive {
			return ErrForumCategoryNotFound
		}
		post.CategoryID = category.ID
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" || len([]rune(title)) > 200 {
			return ErrForumPostInvalid
		}
		post.Title = title
	}
	if input.Content != nil {
		post.Content = strings.TrimSpace(*input.Content)
	}
	if input.PostType != nil {
		postType := strings.TrimSpace(*input.PostType)
		if !containsString(forumPostTypes, postType) {
			return ErrForumPostInvalid
		}
		post.PostType = postType
	}
	if input.Status != nil {
		status := strings.TrimSpace(*input.Status)
		if !containsString(forumPostStatuses, status) {
			return ErrForumPostInvalid
		}
		post.Status = status
	}
	return nil
}

// ListReplies 帖子回复
func (s *ForumService) ListReplies(viewerID, postID uint, page, pageSize int) ([]models.ForumReply, int64, error) {
	post, err := s.repo.GetPost(postID)
	if err != nil {
		return nil, 0, err
	}
	if post == nil {
		return nil, 0, ErrForumPostNotFound
	}
	replies, total, err := s.repo.ListReplies(postID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	if viewerID != 0 && len(replies) > 0 {
		ids := make([]uint, 0, len(replies))
		for _, reply := range replies {
			ids = append(ids, reply.ID)
		}
		liked, err := s.repo.LikedReplyIDs(viewerID, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range replies {
			replies[i].IsLiked = liked[replies[i].ID]
		}
	}
	return replies, total, nil
}

// CreateReply 回复帖子，回复数与最后回复时间同事务刷新
func (s *ForumService) CreateReply(authorID, postID uint, content string) (*models.ForumReply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrForumReplyInvalid
	}
	post, err := s.repo.GetPost(postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.Status == constants.ForumPostStatusDeleted {
		return nil, ErrForumPostNotFound
	}
	if post.IsLocked {
		return nil, ErrForumPostLocked
	}
	reply := &models.ForumReply{PostID: postID, AuthorID: authorID, Content: content}
	err = s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CreateReply(reply); err != nil {
			return err
		}
		return repo.RefreshPostReplyStats(postID)
	})
	if err != nil {
		return nil, err
	}

	if post.AuthorID != authorID {
		forumPostID := post.ID
		s.notifier.Notify(queue.NotificationDispatchPayload{
			UserID:             post.AuthorID,
			Type:               constants.NotificationForumReply,
			Title:              "New reply to your post",
			Message:            fmt.Sprintf("Someone replied to \"%s\": %s", post.Title, truncateRunes(content, 100)),
			Priority:           constants.NotificationPriorityLow,
			RelatedForumPostID: &forumPostID,
			Data: map[string]string{
				"post_title": post.Title,
			},
		})
	}
	return reply, nil
}

// TogglePostLike 切换帖子点赞并重算点赞数
func (s *ForumService) TogglePostLike(userID, postID uint) (bool, error) {
	post, err := s.repo.GetPost(postID)
	if err != nil {
		return false, err
	}
	if post == nil {
		return false, ErrForumPostNotFound
	}
	var liked bool
	err = s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		var err error
		if liked, err = repo.TogglePostLike(userID, postID); err != nil {
			return err
		}
		return repo.RefreshPostLikeCount(postID)
	})
	return liked, err
}

// ToggleReplyLike 切换回复点赞并重算点赞数
func (s *ForumService) ToggleReplyLike(userID, replyID uint) (bool, error) {
	reply, err := s.repo.GetReply(replyID)
	if err != nil {
		return false, err
	}
	if reply == nil {
		return false, ErrForumReplyNotFound
	}
	var liked bool
	err = s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		var err error
		if liked, err = repo.ToggleReplyLike(userID, replyID); err != nil {
			return err
		}
		return repo.RefreshReplyLikeCount(replyID)
	})
	return liked, err
}

// MarkSolution 帖子作者采纳回复，同事务取消其他采纳
func (s *ForumService) MarkSolution(userID, replyID uint) (*models.ForumReply, error) {
	reply, err := s.repo.GetReply(replyID)
	if err != nil {
		return nil, err
	}
	if reply == nil {
		return nil, ErrForumReplyNotFound
	}
	if _, err := s.authoredPost(userID, reply.PostID); err != nil {
		return nil, err
	}
	err = s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.ClearSolutions(reply.PostID); err != nil {
			return err
		}
		return repo.MarkSolution(reply.ID)
	})
	if err != nil {
		return nil, err
	}
	reply.IsSolution = true
	return reply, nil
}

// Stats 论坛统计（近 7 天活跃）
func (s *ForumService) Stats() (*ForumStats, error) {
	row, err := s.repo.Stats(time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	return &ForumStats{
		TotalPosts:    row.TotalPosts,
		TotalReplies:  row.TotalReplies,
		TotalUsers:    row.TotalUsers,
		RecentPosts:   row.RecentPosts,
		RecentReplies: row.RecentReplies,
	}, nil
}
