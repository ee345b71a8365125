package models

import "time"

// ForumCategory 论坛版块
type ForumCategory struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                    // 主键
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`      // 名称
	Description string    `gorm:"type:text" json:"description"`                            // 描述
	Color       string    `gorm:"type:varchar(7);not null;default:'#007bff'" json:"color"` // 颜色
	Icon        string    `gorm:"type:varchar(50)" json:"icon"`                            // 图标
	IsActive    bool      `gorm:"not null;index" json:"is_active"`                         // 是否启用
	SortOrder   int       `gorm:"not null;default:0;index" json:"sort_order"`              // 排序
	CreatedAt   time.Time `json:"created_at"`                                              // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                              // 更新时间

	PostCount int64 `gorm:"-" json:"post_count"` // 已发布帖子数
}

// TableName 指定表名
func (ForumCategory) TableName() string {
	return "forum_categories"
}

// ForumPost 论坛帖子
type ForumPost struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	AuthorID    uint       `gorm:"index;not null" json:"author_id"`
	CategoryID  uint       `gorm:"index;not null" json:"category_id"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	PostType    string     `gorm:"type:varchar(20);not null;default:'discussion'" json:"post_type"`
	Status      string     `gorm:"type:varchar(20);index;not null;default:'published'" json:"status"`
	IsPinned    bool       `gorm:"not null;default:false;index" json:"is_pinned"`
	IsLocked    bool       `gorm:"not null;default:false" json:"is_locked"`
	ViewCount   int64      `gorm:"not null;default:0" json:"view_count"`
	LikeCount   int64      `gorm:"not null;default:0" json:"like_count"`
	ReplyCount  int64      `gorm:"not null;default:0" json:"reply_count"`
	LastReplyAt *time.Time `gorm:"index" json:"last_reply_at"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Author   *User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category *ForumCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	IsLiked  bool           `gorm:"-" json:"is_liked"`
}

// TableName 指定表名
func (ForumPost) TableName() string {
	return "forum_posts"
}

// ForumReply 帖子回复
type ForumReply struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	PostID     uint      `gorm:"index;not null" json:"post_id"`
	AuthorID   uint      `gorm:"index;not null" json:"author_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsSolution bool      `gorm:"not null;default:false" json:"is_solution"`
	LikeCount  int64     `gorm:"not null;default:0" json:"like_count"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Author  *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	IsLiked bool  `gorm:"-" json:"is_liked"`
}

// TableName 指定表名
func (ForumReply) TableName() string {
	return "forum_replies"
}

// PostLike 帖子点赞
type PostLike struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_like" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_like" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (PostLike) TableName() string {
	return "forum_post_likes"
}

// ReplyLike 回复点赞
type ReplyLike struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reply_like" json:"user_id"`
	ReplyID   uint      `gorm:"not null;uniqueIndex:idx_reply_like" json:"reply_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (ReplyLike) TableName() string {
	return "forum_reply_likes"
}
