package service

import (
	"context"
	"unicode/utf8"

	"Lee_Feed/internal/model"
	"Lee_Feed/internal/pkg"
	"Lee_Feed/internal/repository/mysql"
	"Lee_Feed/internal/repository/redis"
)

// PostWriteStore 写路径仓储，接口化便于测试
type PostWriteStore interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint64) (*model.Post, error)
	UpdateContent(ctx context.Context, postID, actorID uint64, content string) error
	SoftDelete(ctx context.Context, postID, by uint64, reason string) (bool, error)
}

type PostService struct {
	repo  PostWriteStore
	cache VersionBumper
}

func NewPostService() *PostService {
	return &PostService{
		repo:  &mysql.PostRepository{DB: mysql.DB},
		cache: &redis.FeedCacheRepository{},
	}
}

// CreatePost 仅 user 角色可发帖（admin/moderator 不产内容）
func (s *PostService) CreatePost(ctx context.Context, viewer model.Viewer, content string) (*model.Post, error) {
	if !model.Allowed(model.ActionCreatePost, viewer.Role) {
		return nil, pkg.Forbidden("only regular users can create posts")
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	post := &model.Post{
		AuthorID: viewer.ID,
		Content:  content,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	if err := s.bump(ctx); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost 仅作者本人可编辑
func (s *PostService) UpdatePost(ctx context.Context, viewer model.Viewer, postID uint64, content string) (*model.Post, error) {
	if !model.Allowed(model.ActionEditPost, viewer.Role) {
		return nil, pkg.Forbidden("role not allowed to edit posts")
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		if mysql.IsNotFound(err) {
			return nil, pkg.NotFound("post not found")
		}
		return nil, err
	}
	if post.AuthorID != viewer.ID {
		return nil, pkg.Forbidden("not the author")
	}

	if err := s.repo.UpdateContent(ctx, postID, viewer.ID, content); err != nil {
		return nil, err
	}
	post.Content = content
	if err := s.bump(ctx); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost 作者或 admin 可删；重复删除幂等成功，不再 bump
func (s *PostService) DeletePost(ctx context.Context, viewer model.Viewer, postID uint64) error {
	if !model.Allowed(model.ActionDeletePost, viewer.Role) {
		return pkg.Forbidden("role not allowed to delete posts")
	}

	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		if mysql.IsNotFound(err) {
			// 已软删或不存在，按幂等成功处理
			return nil
		}
		return err
	}

	reason := model.DeleteReasonAdmin
	if viewer.Role == model.RoleUser {
		if post.AuthorID != viewer.ID {
			return pkg.Forbidden("not the author")
		}
		reason = model.DeleteReasonAuthor
	}

	changed, err := s.repo.SoftDelete(ctx, postID, viewer.ID, reason)
	if err != nil {
		return err
	}
	if changed {
		return s.bump(ctx)
	}
	return nil
}

func (s *PostService) GetPost(ctx context.Context, postID uint64) (*model.Post, error) {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		if mysql.IsNotFound(err) {
			return nil, pkg.NotFound("post not found")
		}
		return nil, err
	}
	return post, nil
}

// bump 失败必须上抛：落库已成功，但版本不动的话健康的读路径会
// 一直命中变更前的页直到 TTL 过期。包一层可判别的错误，不在这里重试。
func (s *PostService) bump(ctx context.Context) error {
	if err := s.cache.Bump(ctx); err != nil {
		return pkg.CacheInvalidation(err)
	}
	return nil
}

func validateContent(content string) error {
	n := utf8.RuneCountInString(content)
	if n == 0 {
		return pkg.Validation("content required")
	}
	if n > model.MaxPostRunes {
		return pkg.Validation("content over 280 characters")
	}
	return nil
}
