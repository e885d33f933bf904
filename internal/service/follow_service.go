package service

import (
	"context"

	"Lee_Feed/internal/model"
	"Lee_Feed/internal/pkg"
	"Lee_Feed/internal/repository/mysql"
)

// FollowStore 关注边仓储
type FollowStore interface {
	Follow(ctx context.Context, followerID, followeeID uint64) (bool, error)
	Unfollow(ctx context.Context, followerID, followeeID uint64) (bool, error)
	IsFollowing(ctx context.Context, followerID, followeeID uint64) (bool, error)
	ListFollowings(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error)
	ListFollowers(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error)
}

// RoleLookup 建边前要看对端角色
type RoleLookup interface {
	FindByID(id uint64) (*model.User, error)
}

type FollowService struct {
	repo  FollowStore
	users RoleLookup
}

func NewFollowService() *FollowService {
	return &FollowService{
		repo:  &mysql.FollowRepository{DB: mysql.DB},
		users: &mysql.UserRepository{DB: mysql.DB},
	}
}

// Follow 无自环；admin 既不能关注也不能被关注
func (s *FollowService) Follow(ctx context.Context, viewer model.Viewer, followeeID uint64) (bool, error) {
	if err := s.checkEdge(viewer, followeeID); err != nil {
		return false, err
	}
	followee, err := s.users.FindByID(followeeID)
	if err != nil {
		if mysql.IsNotFound(err) {
			return false, pkg.NotFound("user not found")
		}
		return false, err
	}
	if followee.Role == model.RoleAdmin {
		return false, pkg.Forbidden("cannot follow an admin")
	}
	return s.repo.Follow(ctx, viewer.ID, followeeID)
}

func (s *FollowService) Unfollow(ctx context.Context, viewer model.Viewer, followeeID uint64) (bool, error) {
	if err := s.checkEdge(viewer, followeeID); err != nil {
		return false, err
	}
	return s.repo.Unfollow(ctx, viewer.ID, followeeID)
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	if followerID == 0 || followeeID == 0 {
		return false, pkg.Validation("invalid user id")
	}
	return s.repo.IsFollowing(ctx, followerID, followeeID)
}

func (s *FollowService) ListFollowings(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	return s.repo.ListFollowings(ctx, userID, cursor, limit)
}

func (s *FollowService) ListFollowers(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	return s.repo.ListFollowers(ctx, userID, cursor, limit)
}

func (s *FollowService) checkEdge(viewer model.Viewer, followeeID uint64) error {
	if viewer.ID == 0 || followeeID == 0 {
		return pkg.Validation("invalid user id")
	}
	if viewer.ID == followeeID {
		return pkg.Validation("cannot follow self")
	}
	if viewer.Role == model.RoleAdmin {
		return pkg.Forbidden("admins do not participate in the follow graph")
	}
	return nil
}
