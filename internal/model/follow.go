package model

import "time"

// Follow 有向关注边，(follower_id, followee_id) 全局唯一。
// 不允许自环；admin 不参与关注关系（既不关注也不被关注），在服务层校验。
type Follow struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	FollowerID uint64    `gorm:"not null;index:idx_follower_id;uniqueIndex:uk_follower_followee,priority:1" json:"follower_id"`
	FolloweeID uint64    `gorm:"not null;index:idx_followee_id;uniqueIndex:uk_follower_followee,priority:2" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName sets table name for Follow
func (Follow) TableName() string {
	return "follow"
}

// FeedOutbox 帖子/举报事件外发表，与业务变更同事务写入
type FeedOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:32;not null"` // post_created / post_updated / post_deleted / report_submitted / report_approved / report_dismissed
	PostID    uint64 `gorm:"not null;index"`
	ActorID   uint64 `gorm:"not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (FeedOutbox) TableName() string { return "feed_outbox" }
