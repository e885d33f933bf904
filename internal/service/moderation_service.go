package service

import (
	"context"

	"Lee_Feed/internal/model"
	"Lee_Feed/internal/pkg"
	"Lee_Feed/internal/repository/mysql"
	"Lee_Feed/internal/repository/redis"
)

// ReportStore 举报仓储。原子性（唯一索引裁决、审删单事务）都压在存储层，
// 服务层只做角色/归属规则和版本失效。
type ReportStore interface {
	CreatePending(ctx context.Context, postID, reporterID uint64) error
	ApproveDelete(ctx context.Context, postID, moderatorID uint64) (bool, error)
	Dismiss(ctx context.Context, postID, moderatorID uint64) (int64, error)
	ListReported(ctx context.Context) ([]model.ReportedPost, error)
}

// ModerationPostStore 只需要查活帖
type ModerationPostStore interface {
	FindByID(ctx context.Context, id uint64) (*model.Post, error)
}

type ModerationService struct {
	reports ReportStore
	posts   ModerationPostStore
	cache   VersionBumper
}

func NewModerationService() *ModerationService {
	return &ModerationService{
		reports: &mysql.ReportRepository{DB: mysql.DB},
		posts:   &mysql.PostRepository{DB: mysql.DB},
		cache:   &redis.FeedCacheRepository{},
	}
}

// SubmitReport 用户举报他人帖子。上游 UI 也会拦自报，但这里不信任何调用方，全部重验。
func (s *ModerationService) SubmitReport(ctx context.Context, viewer model.Viewer, postID uint64) error {
	if !model.Allowed(model.ActionSubmitReport, viewer.Role) {
		return pkg.Forbidden("moderators and admins cannot submit reports")
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if mysql.IsNotFound(err) {
			return pkg.NotFound("post not found")
		}
		return err
	}
	if post.AuthorID == viewer.ID {
		return pkg.Forbidden("cannot report own post")
	}

	// 重复 pending 在存储层被唯一索引拒绝并翻译成 Conflict，这里原样上抛
	return s.reports.CreatePending(ctx, postID, viewer.ID)
}

// ApproveDelete 审核通过即软删帖子并终结全部 pending 举报（单事务）。
// 已删除的帖子幂等成功且不重复 bump。
func (s *ModerationService) ApproveDelete(ctx context.Context, viewer model.Viewer, postID uint64) error {
	if !model.Allowed(model.ActionModerate, viewer.Role) {
		return pkg.Forbidden("moderator role required")
	}

	changed, err := s.reports.ApproveDelete(ctx, postID, viewer.ID)
	if err != nil {
		return err
	}
	if changed {
		// 帖子从所有 feed 里消失，旧键必须作废；版本动不了就把失败交给调用方
		if err := s.cache.Bump(ctx); err != nil {
			return pkg.CacheInvalidation(err)
		}
	}
	return nil
}

// Dismiss 驳回举报，帖子可见性不变，所以不 bump 版本
func (s *ModerationService) Dismiss(ctx context.Context, viewer model.Viewer, postID uint64) error {
	if !model.Allowed(model.ActionModerate, viewer.Role) {
		return pkg.Forbidden("moderator role required")
	}
	_, err := s.reports.Dismiss(ctx, postID, viewer.ID)
	return err
}

// ListReported 待处理队列
func (s *ModerationService) ListReported(ctx context.Context, viewer model.Viewer) ([]model.ReportedPost, error) {
	if !model.Allowed(model.ActionModerate, viewer.Role) {
		return nil, pkg.Forbidden("moderator role required")
	}
	return s.reports.ListReported(ctx)
}
