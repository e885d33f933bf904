package mysql

import (
	"context"
	"errors"
	"time"

	"Lee_Feed/internal/model"
	"Lee_Feed/internal/pkg"

	driver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const mysqlErrDuplicateEntry = 1062

type ReportRepository struct {
	DB *gorm.DB
}

// CreatePending 提交举报。同一 (post, reporter) 的第二条 pending 由唯一索引拒绝，
// 这里把 1062 翻译成 Conflict；纯 check-then-insert 有竞态窗口，不做。
func (r *ReportRepository) CreatePending(ctx context.Context, postID, reporterID uint64) error {
	pending := true
	rep := &model.PostReport{
		PostID:     postID,
		ReporterID: reporterID,
		Status:     model.ReportPending,
		Pending:    &pending,
	}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rep).Error; err != nil {
			return err
		}
		return insertOutbox(tx, "report_submitted", postID, reporterID)
	})
	var me *driver.MySQLError
	if errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry {
		return pkg.Conflict("post already reported")
	}
	return err
}

// ApproveDelete 软删帖子 + 批量终结 pending 举报，单事务内完成：
// 要么一起提交，要么都不发生，不允许“帖子已删但举报还挂着”之类的半截状态。
// 帖子行加 FOR UPDATE，并发 approve 串行化，后到者看到终态直接幂等返回。
func (r *ReportRepository) ApproveDelete(ctx context.Context, postID, moderatorID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post model.Post
		if err := tx.Unscoped().
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&post, "id = ?", postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkg.NotFound("post not found")
			}
			return err
		}
		if post.DeletedAt.Valid {
			// 已是终态，成功但不再动任何状态
			changed = false
			return nil
		}

		now := time.Now()
		if err := tx.Unscoped().Model(&model.Post{}).
			Where("id = ?", postID).
			Updates(map[string]any{
				"deleted_at":     now,
				"deleted_by":     moderatorID,
				"deleted_reason": model.DeleteReasonModerator,
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.PostReport{}).
			Where("post_id = ? AND status = ?", postID, model.ReportPending).
			Updates(map[string]any{
				"status":      model.ReportApproved,
				"pending":     nil,
				"resolved_by": moderatorID,
				"resolved_at": now,
			}).Error; err != nil {
			return err
		}

		changed = true
		return insertOutbox(tx, "report_approved", postID, moderatorID)
	})
	return changed, err
}

// Dismiss 驳回该帖当前全部 pending 举报，帖子本身不动。
// 没有 pending 时是无操作成功（幂等），resolved 返回本次终结的条数。
func (r *ReportRepository) Dismiss(ctx context.Context, postID, moderatorID uint64) (int64, error) {
	var resolved int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Unscoped().Model(&model.Post{}).
			Where("id = ?", postID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return pkg.NotFound("post not found")
		}

		res := tx.Model(&model.PostReport{}).
			Where("post_id = ? AND status = ?", postID, model.ReportPending).
			Updates(map[string]any{
				"status":      model.ReportDismissed,
				"pending":     nil,
				"resolved_by": moderatorID,
				"resolved_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		resolved = res.RowsAffected
		if resolved == 0 {
			return nil
		}
		return insertOutbox(tx, "report_dismissed", postID, moderatorID)
	})
	return resolved, err
}

// ListReported 待处理队列：仍在线且有 pending 举报的帖子，
// 按 pending 数降序、再按发帖时间降序
func (r *ReportRepository) ListReported(ctx context.Context) ([]model.ReportedPost, error) {
	var rows []model.ReportedPost
	err := r.DB.WithContext(ctx).
		Table("posts").
		Select("posts.*, COUNT(post_reports.id) AS pending_count").
		Joins("JOIN post_reports ON post_reports.post_id = posts.id AND post_reports.status = ?", model.ReportPending).
		Where("posts.deleted_at IS NULL").
		Group("posts.id").
		Order("pending_count DESC, posts.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.ReportedPost{}
	}
	return rows, nil
}
