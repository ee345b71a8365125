package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForumRepository 论坛数据访问接口
type ForumRepository interface {
	ListCategories(onlyActive bool) ([]models.ForumCategory, error)
	GetCategory(id uint) (*models.ForumCategory, error)
	CreateCategory(category *models.ForumCategory) error
	UpdateCategory(category *models.ForumCategory) error
	DeleteCategory(id uint) error
	CountCategoryByName(name string, excludeID uint) (int64, error)

	ListPosts(filter ForumPostListFilter) ([]models.ForumPost, int64, error)
	GetPost(id uint) (*models.ForumPost, error)
	CreatePost(post *models.ForumPost) error
	UpdatePost(post *models.ForumPost) error
	DeletePost(id uint) error
	IncrementPostViews(id uint) error
	RefreshPostReplyStats(postID uint) error
	RefreshPostLikeCount(postID uint) error

	ListReplies(postID uint, page, pageSize int) ([]models.ForumReply, int64, error)
	GetReply(id uint) (*models.ForumReply, error)
	CreateReply(reply *models.ForumReply) error
	ClearSolutions(postID uint) error
	MarkSolution(replyID uint) error
	RefreshReplyLikeCount(replyID uint) error

	TogglePostLike(userID, postID uint) (bool, error)
	ToggleReplyLike(userID, replyID uint) (bool, error)
	LikedPostIDs(userID uint, postIDs []uint) (map[uint]bool, error)
	LikedReplyIDs(userID uint, replyIDs []uint) (map[uint]bool, error)

	Stats(since time.Time) (ForumStatsRow, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormForumRepository
}

// ForumStatsRow 论坛统计
type ForumStatsRow struct {
	TotalPosts    int64
	TotalReplies  int64
	TotalUsers    int64
	RecentPosts   int64
	RecentReplies int64
}

// GormForumRepository GORM 实现
type GormForumRepository struct {
	db *gorm.DB
}

// NewForumRepository 创建论坛仓库
func NewForumRepository(db *gorm.DB) *GormForumRepository {
	return &GormForumRepository{db: db}
}

// WithTx 绑定事务
func (r *GormForumRepository) WithTx(tx *gorm.DB) *GormForumRepository {
	if tx == nil {
		return r
	}
	return &GormForumRepository{db: tx}
}

// Transaction 执行事务
func (r *GormForumRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// ListCategories 版块列表（附带已发布帖子数）
func (r *GormForumRepository) ListCategories(onlyActive bool) ([]models.ForumCategory, error) {
	query := r.db.Model(&models.ForumCategory{})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var categories []models.ForumCategory
	if err := query.Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return categories, nil
	}
	type countRow struct {
		CategoryID uint
		Total      int64
	}
	var rows []countRow
	if err := r.db.Model(&models.ForumPost{}).
		Select("category_id, COUNT(*) as total").
		Where("status = ?", constants.ForumPostStatusPublished).
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Total
	}
	for i := range categories {
		categories[i].PostCount = counts[categories[i].ID]
	}
	return categories, nil
}

// GetCategory 获取版块
func (r *GormForumRepository) GetCategory(id uint) (*models.ForumCategory, error) {
	var category models.ForumCategory
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// CreateCategory 创建版块
func (r *GormForumRepository) CreateCategory(category *models.ForumCategory) error {
	return r.db.Create(category).Error
}

// UpdateCategory 更新版块
func (r *GormForumRepository) UpdateCategory(category *models.ForumCategory) error {
	return r.db.Save(category).Error
}

// DeleteCategory 删除版块
func (r *GormForumRepository) DeleteCategory(id uint) error {
	return r.db.Delete(&models.ForumCategory{}, id).Error
}

// CountCategoryByName 统计同名版块
func (r *GormForumRepository) CountCategoryByName(name string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.ForumCategory{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count, err
}

// ListPosts 帖子列表（置顶优先，其次最新回复）
func (r *GormForumRepository) ListPosts(filter ForumPostListFilter) ([]models.ForumPost, int64, error) {
	query := r.db.Model(&models.ForumPost{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if postType := strings.TrimSpace(filter.PostType); postType != "" {
		query = query.Where("post_type = ?", postType)
	}
	if filter.AuthorID != 0 {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	query = whereLike(query, filter.Search, "title", "content")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var posts []models.ForumPost
	err := query.Preload("Author").Preload("Category").
		Order("is_pinned DESC").
		Order("CASE WHEN last_reply_at IS NULL THEN 1 ELSE 0 END").
		Order("last_reply_at DESC").
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetPost 获取帖子
func (r *GormForumRepository) GetPost(id uint) (*models.ForumPost, error) {
	var post models.ForumPost
	if err := r.db.Preload("Author").Preload("Category").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// CreatePost 创建帖子
func (r *GormForumRepository) CreatePost(post *models.ForumPost) error {
	return r.db.Omit(clause.Associations).Create(post).Error
}

// UpdatePost 更新帖子
func (r *GormForumRepository) UpdatePost(post *models.ForumPost) error {
	return r.db.Omit(clause.Associations).Save(post).Error
}

// DeletePost 删除帖子及回复、点赞
func (r *GormForumRepository) DeletePost(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		replyIDs := tx.Model(&models.ForumReply{}).Select("id").Where("post_id = ?", id)
		if err := tx.Where("reply_id IN (?)", replyIDs).Delete(&models.ReplyLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.ForumReply{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ForumPost{}, id).Error
	})
}

// IncrementPostViews 浏览数原子自增
func (r *GormForumRepository) IncrementPostViews(id uint) error {
	return r.db.Model(&models.ForumPost{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// RefreshPostReplyStats 重新统计回复数与最新回复时间
func (r *GormForumRepository) RefreshPostReplyStats(postID uint) error {
	var count int64
	if err := r.db.Model(&models.ForumReply{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return err
	}
	var latest models.ForumReply
	updates := map[string]interface{}{"reply_count": count}
	err := r.db.Where("post_id = ?", postID).Order("created_at DESC, id DESC").First(&latest).Error
	switch {
	case err == nil:
		updates["last_reply_at"] = latest.CreatedAt
	case errors.Is(err, gorm.ErrRecordNotFound):
		updates["last_reply_at"] = nil
	default:
		return err
	}
	return r.db.Model(&models.ForumPost{}).Where("id = ?", postID).UpdateColumns(updates).Error
}

// RefreshPostLikeCount 重新统计帖子点赞数
func (r *GormForumRepository) RefreshPostLikeCount(postID uint) error {
	var count int64
	if err := r.db.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return err
	}
	return r.db.Model(&models.ForumPost{}).Where("id = ?", postID).UpdateColumn("like_count", count).Error
}

// ListReplies 帖子回复列表（按时间正序）
func (r *GormForumRepository) ListReplies(postID uint, page, pageSize int) ([]models.ForumReply, int64, error) {
	query := r.db.Model(&models.ForumReply{}).Where("post_id = ?", postID)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, page, pageSize)
	var replies []models.ForumReply
	if err := query.Preload("Author").Order("created_at ASC, id ASC").Find(&replies).Error; err != nil {
		return nil, 0, err
	}
	return replies, total, nil
}

// GetReply 获取回复
func (r *GormForumRepository) GetReply(id uint) (*models.ForumReply, error) {
	var reply models.ForumReply
	if err := r.db.Preload("Author").First(&reply, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reply, nil
}

// CreateReply 创建回复
func (r *GormForumRepository) CreateReply(reply *models.ForumReply) error {
	return r.db.Omit(clause.Associations).Create(reply).Error
}

// ClearSolutions 取消帖子下全部最佳答案
func (r *GormForumRepository) ClearSolutions(postID uint) error {
	return r.db.Model(&models.ForumReply{}).Where("post_id = ? AND is_solution = ?", postID, true).
		UpdateColumn("is_solution", false).Error
}

// MarkSolution 标记最佳答案
func (r *GormForumRepository) MarkSolution(replyID uint) error {
	return r.db.Model(&models.ForumReply{}).Where("id = ?", replyID).UpdateColumn("is_solution", true).Error
}

// RefreshReplyLikeCount 重新统计回复点赞数
func (r *GormForumRepository) RefreshReplyLikeCount(replyID uint) error {
	var count int64
	if err := r.db.Model(&models.ReplyLike{}).Where("reply_id = ?", replyID).Count(&count).Error; err != nil {
		return err
	}
	return r.db.Model(&models.ForumReply{}).Where("id = ?", replyID).UpdateColumn("like_count", count).Error
}

// TogglePostLike 切换帖子点赞，返回当前是否已点赞
func (r *GormForumRepository) TogglePostLike(userID, postID uint) (bool, error) {
	result := r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.PostLike{})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return false, nil
	}
	like := models.PostLike{UserID: userID, PostID: postID}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
		return false, err
	}
	return true, nil
}

// ToggleReplyLike 切换回复点赞，返回当前是否已点赞
func (r *GormForumRepository) ToggleReplyLike(userID, replyID uint) (bool, error) {
	result := r.db.Where("user_id = ? AND reply_id = ?", userID, replyID).Delete(&models.ReplyLike{})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return false, nil
	}
	like := models.ReplyLike{UserID: userID, ReplyID: replyID}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
		return false, err
	}
	return true, nil
}

// LikedPostIDs 查询用户已点赞的帖子
func (r *GormForumRepository) LikedPostIDs(userID uint, postIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if userID == 0 || len(postIDs) == 0 {
		return result, nil
	}
	var ids []uint
	if err := r.db.Model(&models.PostLike{}).Where("user_id = ? AND post_id IN ?", userID, postIDs).Pluck("post_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// LikedReplyIDs 查询用户已点赞的回复
func (r *GormForumRepository) LikedReplyIDs(userID uint, replyIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if userID == 0 || len(replyIDs) == 0 {
		return result, nil
	}
	var ids []uint
	if err := r.db.Model(&models.ReplyLike{}).Where("user_id = ? AND reply_id IN ?", userID, replyIDs).Pluck("reply_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// Stats 论坛统计
func (r *GormForumRepository) Stats(since time.Time) (ForumStatsRow, error) {
	row := ForumStatsRow{}
	published := func() *gorm.DB {
		return r.db.Model(&models.ForumPost{}).Where("status = ?", constants.ForumPostStatusPublished)
	}
	if err := published().Count(&row.TotalPosts).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.ForumReply{}).Count(&row.TotalReplies).Error; err != nil {
		return row, err
	}
	if err := published().Distinct("author_id").Count(&row.TotalUsers).Error; err != nil {
		return row, err
	}
	if err := published().Where("created_at >= ?", since).Count(&row.RecentPosts).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.ForumReply{}).Where("created_at >= ?", since).Count(&row.RecentReplies).Error; err != nil {
		return row, err
	}
	return row, nil
}
