package mysql

import (
	"context"
	"encoding/json"
	"time"

	"Lee_Feed/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// insertOutbox 与业务变更同事务写入事件行，投递由 relayer 异步完成
func insertOutbox(tx *gorm.DB, event string, postID, actorID uint64) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"post_id":    postID,
		"actor_id":   actorID,
	})
	ob := &model.FeedOutbox{
		EventType: event,
		PostID:    postID,
		ActorID:   actorID,
		Payload:   string(payload),
		Status:    0,
	}
	return tx.Create(ob).Error
}

// List outbox查询
func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.FeedOutbox, error) {
	var list []model.FeedOutbox
	if err := r.DB.WithContext(ctx).
		Where("status=0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RetryUpdate 投递失败计数
func (r *OutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.FeedOutbox{}).Where("id=?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

// SuccessUpdate 投递成功标记
func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.FeedOutbox{}).Where("id=?", id).
		Update("status", 1).Error
}
