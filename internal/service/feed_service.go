package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"Lee_Feed/internal/model"
	"Lee_Feed/internal/pkg"
	"Lee_Feed/internal/repository/mysql"
	"Lee_Feed/internal/repository/redis"
)

// 排序白名单：不认识的字段静默回落 created_at，方向只认 asc/desc
var feedSortFields = map[string]bool{
	"created_at": true,
	"content":    true,
}

const (
	defaultPerPage = 10
	maxPerPage     = 100
	defaultTTL     = 30
	minTTL         = 5
	maxTTL         = 300
)

// FeedPostStore feed 只读用到的帖子查询
type FeedPostStore interface {
	ListVisible(ctx context.Context, f model.PostFilter, sortBy, sortDir string, offset, limit int) ([]model.Post, int64, error)
}

// FollowGraph 关注图协作方
type FollowGraph interface {
	FollowingIDs(ctx context.Context, userID uint64) ([]uint64, error)
}

// FeedCache 版本化页缓存
type FeedCache interface {
	Version(ctx context.Context) (uint64, error)
	Bump(ctx context.Context) error
	GetPage(ctx context.Context, key string) ([]byte, bool, error)
	SetPage(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// VersionBumper 写路径只需要 Bump，单独收窄给 post/moderation 服务
type VersionBumper interface {
	Bump(ctx context.Context) error
}

// FeedPage 缓存与响应共用的载荷
type FeedPage struct {
	Posts   []model.Post `json:"posts"`
	Page    int          `json:"page"`
	PerPage int          `json:"per_page"`
	Total   int64        `json:"total"`
}

// FeedQuery 进 feed 的原始查询参数，规整在服务里做
type FeedQuery struct {
	Page     int
	PerPage  int
	SortBy   string
	SortDir  string
	TargetID uint64
	TTL      int
}

type FeedService struct {
	posts   FeedPostStore
	follows FollowGraph
	cache   FeedCache
}

func NewFeedService() *FeedService {
	return &FeedService{
		posts:   &mysql.PostRepository{DB: mysql.DB},
		follows: &mysql.FollowRepository{DB: mysql.DB},
		cache:   &redis.FeedCacheRepository{},
	}
}

// ListFeed 可见性解析 -> 版本化缓存 get-or-compute。
// 返回的是缓存/即将入缓存的 JSON 原始字节，命中路径不重新序列化，
// 同参数且期间无变更的两次请求字节一致。
func (s *FeedService) ListFeed(ctx context.Context, viewer model.Viewer, q FeedQuery) ([]byte, error) {
	if !model.Allowed(model.ActionListFeed, viewer.Role) {
		return nil, pkg.Forbidden("role not allowed to read feed")
	}

	q = normalizeQuery(q)

	// 版本读不到（redis 不可用）就退化成直算不缓存，读路径不被缓存拖死
	useCache := true
	version, err := s.cache.Version(ctx)
	if err != nil {
		log.Printf("feed cache version unavailable, serving uncached: %v", err)
		useCache = false
	}

	key := redis.PageKey{
		Version:  version,
		ViewerID: viewer.ID,
		Role:     int(viewer.Role),
		PerPage:  q.PerPage,
		Page:     q.Page,
		SortBy:   q.SortBy,
		SortDir:  q.SortDir,
		TargetID: q.TargetID,
	}.String()

	if useCache {
		if payload, ok, err := s.cache.GetPage(ctx, key); err == nil && ok {
			return payload, nil
		}
	}

	filter, err := s.resolveVisibility(ctx, viewer, q.TargetID)
	if err != nil {
		return nil, err
	}

	posts, total, err := s.posts.ListVisible(ctx, filter, q.SortBy, q.SortDir, (q.Page-1)*q.PerPage, q.PerPage)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(FeedPage{
		Posts:   posts,
		Page:    q.Page,
		PerPage: q.PerPage,
		Total:   total,
	})
	if err != nil {
		return nil, err
	}

	if useCache {
		if err := s.cache.SetPage(ctx, key, payload, time.Duration(q.TTL)*time.Second); err != nil {
			log.Printf("feed cache set failed: %v", err)
		}
	}
	return payload, nil
}

// resolveVisibility 纯函数（只读关注图）：算出这个 viewer 能看到谁的帖子。
// admin 全量；user/moderator 可见集合 = 关注的人 + 自己。
// 指定了目标用户但不在可见集合里 -> 空结果，不报错，不暴露帖子存在与否。
func (s *FeedService) resolveVisibility(ctx context.Context, viewer model.Viewer, targetID uint64) (model.PostFilter, error) {
	if viewer.Role == model.RoleAdmin {
		if targetID > 0 {
			return model.PostFilter{AuthorIDs: []uint64{targetID}}, nil
		}
		return model.PostFilter{All: true}, nil
	}

	ids, err := s.follows.FollowingIDs(ctx, viewer.ID)
	if err != nil {
		return model.PostFilter{}, err
	}
	allowed := append(ids, viewer.ID)

	if targetID > 0 {
		for _, id := range allowed {
			if id == targetID {
				return model.PostFilter{AuthorIDs: []uint64{targetID}}, nil
			}
		}
		return model.PostFilter{None: true}, nil
	}
	return model.PostFilter{AuthorIDs: allowed}, nil
}

func normalizeQuery(q FeedQuery) FeedQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = defaultPerPage
	}
	if q.PerPage > maxPerPage {
		q.PerPage = maxPerPage
	}
	if !feedSortFields[q.SortBy] {
		q.SortBy = "created_at"
	}
	q.SortDir = strings.ToLower(q.SortDir)
	if q.SortDir != "asc" && q.SortDir != "desc" {
		q.SortDir = "desc"
	}
	if q.TTL == 0 {
		q.TTL = defaultTTL
	}
	if q.TTL < minTTL {
		q.TTL = minTTL
	}
	if q.TTL > maxTTL {
		q.TTL = maxTTL
	}
	return q
}
