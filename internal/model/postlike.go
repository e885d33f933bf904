package model

import "time"

type PostLike struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64 `gorm:"not null;uniqueIndex:uk_user_post,priority:1" json:"user_id"`
	PostID    uint64 `gorm:"not null;index;uniqueIndex:uk_user_post,priority:2" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (PostLike) TableName() string {
	return "post_likes"
}
