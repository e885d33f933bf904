package service

import (
	"context"
	"strings"

	"Lee_Feed/internal/model"
	"Lee_Feed/internal/pkg"
	"Lee_Feed/internal/repository/mysql"
)

const maxSearchResults = 20

// UserSearchStore 主页/搜索需要的用户查询
type UserSearchStore interface {
	FindByID(id uint64) (*model.User, error)
	Search(keyword string, limit int) ([]model.User, error)
}

// FollowCountStore 关注图计数
type FollowCountStore interface {
	CountFollowings(ctx context.Context, userID uint64) (int64, error)
	CountFollowers(ctx context.Context, userID uint64) (int64, error)
}

// Profile 公开主页：基本信息 + 关注/粉丝数，不暴露邮箱密码
type Profile struct {
	ID             uint64 `json:"id"`
	Username       string `json:"username"`
	Role           string `json:"role"`
	FollowingCount int64  `json:"following_count"`
	FollowerCount  int64  `json:"follower_count"`
}

// UserSummary 搜索结果条目
type UserSummary struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type ProfileService struct {
	users   UserSearchStore
	follows FollowCountStore
}

func NewProfileService() *ProfileService {
	return &ProfileService{
		users:   &mysql.UserRepository{DB: mysql.DB},
		follows: &mysql.FollowRepository{DB: mysql.DB},
	}
}

// SearchUsers 用户名模糊搜索，结果数封顶
func (s *ProfileService) SearchUsers(keyword string, limit int) ([]UserSummary, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, pkg.Validation("keyword required")
	}
	if limit <= 0 || limit > maxSearchResults {
		limit = maxSearchResults
	}

	users, err := s.users.Search(keyword, limit)
	if err != nil {
		return nil, err
	}
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, UserSummary{ID: u.ID, Username: u.Username, Role: u.Role.String()})
	}
	return out, nil
}

// Profile 按 id 取公开主页
func (s *ProfileService) Profile(ctx context.Context, userID uint64) (*Profile, error) {
	if userID == 0 {
		return nil, pkg.Validation("invalid user id")
	}
	user, err := s.users.FindByID(userID)
	if err != nil {
		if mysql.IsNotFound(err) {
			return nil, pkg.NotFound("user not found")
		}
		return nil, err
	}

	followings, err := s.follows.CountFollowings(ctx, userID)
	if err != nil {
		return nil, err
	}
	followers, err := s.follows.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		ID:             user.ID,
		Username:       user.Username,
		Role:           user.Role.String(),
		FollowingCount: followings,
		FollowerCount:  followers,
	}, nil
}
