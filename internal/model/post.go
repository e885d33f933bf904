package model

import (
	"time"

	"gorm.io/gorm"
)

// 软删原因，审计用
const (
	DeleteReasonAuthor    = "author_removed"
	DeleteReasonAdmin     = "admin_removed"
	DeleteReasonModerator = "moderator_approved"
)

// MaxPostRunes 内容按 Unicode 码点计数
const MaxPostRunes = 280

type Post struct {
	ID            uint64         `gorm:"primaryKey" json:"id"`
	AuthorID      uint64         `gorm:"not null;index:idx_author_time,priority:1" json:"author_id"`
	Content       string         `gorm:"size:280;not null" json:"content"`
	LikeCount     int64          `gorm:"not null;default:0" json:"like_count"`
	CreatedAt     time.Time      `gorm:"index:idx_author_time,priority:2,sort:desc" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy     *uint64        `json:"-"`
	DeletedReason string         `gorm:"size:32" json:"-"`
}

// PostFilter 可见性过滤器，由 feed 服务算出、仓储层执行
// 三种互斥形态：All（admin 全量）、None（目标不可见，返回空页）、AuthorIDs（限定作者集合）
type PostFilter struct {
	All       bool
	None      bool
	AuthorIDs []uint64
}

// ReportedPost 待处理队列里的帖子 + 其 pending 举报数
type ReportedPost struct {
	Post
	PendingCount int64 `json:"pending_count"`
}
