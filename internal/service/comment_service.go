package service

import (
	"context"
	"unicode/utf8"

	"Lee_Feed/internal/model"
	"Lee_Feed/internal/pkg"
	"Lee_Feed/internal/repository/mysql"
)

// CommentStore 评论仓储
type CommentStore interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id uint64) (*model.Comment, error)
	ListByPost(ctx context.Context, postID uint64, offset, limit int) ([]model.Comment, error)
	Delete(ctx context.Context, id uint64) (bool, error)
}

type CommentService struct {
	repo  CommentStore
	posts ModerationPostStore
}

func NewCommentService() *CommentService {
	return &CommentService{
		repo:  &mysql.CommentRepository{DB: mysql.DB},
		posts: &mysql.PostRepository{DB: mysql.DB},
	}
}

// CreateComment 只能评论活帖；评论不影响 feed 可见性，不动版本号
func (s *CommentService) CreateComment(ctx context.Context, viewer model.Viewer, postID uint64, content string) (*model.Comment, error) {
	if viewer.Role == model.RoleAdmin {
		return nil, pkg.Forbidden("admins cannot comment")
	}
	n := utf8.RuneCountInString(content)
	if n == 0 || n > model.MaxPostRunes {
		return nil, pkg.Validation("invalid comment content")
	}

	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		if mysql.IsNotFound(err) {
			return nil, pkg.NotFound("post not found")
		}
		return nil, err
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: viewer.ID,
		Content:  content,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID uint64, page, size int) ([]model.Comment, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		if mysql.IsNotFound(err) {
			return nil, pkg.NotFound("post not found")
		}
		return nil, err
	}
	return s.repo.ListByPost(ctx, postID, (page-1)*size, size)
}

// DeleteComment 作者本人或 admin 可删，幂等
func (s *CommentService) DeleteComment(ctx context.Context, viewer model.Viewer, commentID uint64) error {
	comment, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		if mysql.IsNotFound(err) {
			return nil
		}
		return err
	}
	if viewer.Role != model.RoleAdmin && comment.AuthorID != viewer.ID {
		return pkg.Forbidden("not the author")
	}
	_, err = s.repo.Delete(ctx, commentID)
	return err
}
