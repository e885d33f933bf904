package model

import "time"

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportApproved  ReportStatus = "approved"
	ReportDismissed ReportStatus = "dismissed"
)

// PostReport 举报记录。状态机：pending -> approved | dismissed，终态不可再变，记录永不删除。
//
// Pending 列只在 pending 时为 true，终态置 NULL。MySQL 唯一索引不比较 NULL，
// 所以 (post_id, reporter_id, pending) 唯一索引 = “同一人对同一帖最多一条 pending”，
// 但已处理的历史记录可以共存，允许处理后再次举报。
// 并发重复提交由该索引裁决，第二条插入报 1062。
type PostReport struct {
	ID         uint64       `gorm:"primaryKey" json:"id"`
	PostID     uint64       `gorm:"not null;index;uniqueIndex:uk_post_reporter_pending,priority:1" json:"post_id"`
	ReporterID uint64       `gorm:"not null;uniqueIndex:uk_post_reporter_pending,priority:2" json:"reporter_id"`
	Status     ReportStatus `gorm:"size:16;not null;default:pending" json:"status"`
	Pending    *bool        `gorm:"uniqueIndex:uk_post_reporter_pending,priority:3" json:"-"`
	ResolvedBy *uint64      `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time   `json:"resolved_at,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"-"`
}

func (PostReport) TableName() string { return "post_reports" }
