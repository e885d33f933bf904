package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Lee_Feed/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

// Create 建帖与 outbox 事件同事务
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return insertOutbox(tx, "post_created", post.ID, post.AuthorID)
	})
}

// FindByID 默认作用域自动排除软删行
func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdateContent 仅更新内容；权限判断在服务层
func (r *PostRepository) UpdateContent(ctx context.Context, postID, actorID uint64, content string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Post{}).Where("id = ?", postID).Update("content", content)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return insertOutbox(tx, "post_updated", postID, actorID)
	})
}

// SoftDelete 幂等软删并盖审计戳；已删除返回 changed=false 且不再写事件
func (r *PostRepository) SoftDelete(ctx context.Context, postID, by uint64, reason string) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Post{}).
			Where("id = ? AND deleted_at IS NULL", postID).
			Updates(map[string]any{
				"deleted_at":     time.Now(),
				"deleted_by":     by,
				"deleted_reason": reason,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			changed = false
			return nil
		}
		changed = true
		return insertOutbox(tx, "post_deleted", postID, by)
	})
	return changed, err
}

// ExistsAny 含软删行的存在性检查，区分“已删”与“从未存在”
func (r *PostRepository) ExistsAny(ctx context.Context, postID uint64) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Unscoped().Model(&model.Post{}).
		Where("id = ?", postID).Count(&n).Error
	return n > 0, err
}

// ListVisible 按可见性过滤器分页查询，排序列由服务层白名单保证
func (r *PostRepository) ListVisible(ctx context.Context, f model.PostFilter, sortBy, sortDir string, offset, limit int) ([]model.Post, int64, error) {
	if f.None {
		return []model.Post{}, 0, nil
	}

	base := func() *gorm.DB {
		q := r.DB.WithContext(ctx).Model(&model.Post{})
		if !f.All {
			q = q.Where("author_id IN ?", f.AuthorIDs)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.Post
	err := base().
		Order(fmt.Sprintf("%s %s, id DESC", sortBy, sortDir)).
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	if list == nil {
		list = []model.Post{}
	}
	return list, total, nil
}

// IsNotFound 供服务层判断 not-found 分支
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
