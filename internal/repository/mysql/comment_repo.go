package mysql

import (
	"context"

	"Lee_Feed/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.DB.WithContext(ctx).Create(comment).Error
}

func (r *CommentRepository) FindByID(ctx context.Context, id uint64) (*model.Comment, error) {
	var c model.Comment
	err := r.DB.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByPost 按时间正序分页
func (r *CommentRepository) ListByPost(ctx context.Context, postID uint64, offset, limit int) ([]model.Comment, error) {
	var list []model.Comment
	err := r.DB.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	if list == nil {
		list = []model.Comment{}
	}
	return list, err
}

// Delete 幂等硬删
func (r *CommentRepository) Delete(ctx context.Context, id uint64) (bool, error) {
	res := r.DB.WithContext(ctx).Delete(&model.Comment{}, id)
	return res.RowsAffected > 0, res.Error
}
