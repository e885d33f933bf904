package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// FeedVersionKey 全局版本号。任何影响帖子可见性的变更（发帖/编辑/删帖/审核删除）
	// 都 INCR 一次，旧版本的页缓存键自然失效，等 TTL 自己过期，不做主动清扫。
	FeedVersionKey    = "feed:version"
	FeedPageKeyPrefix = "feed:page"
)

// PageKey 结构化缓存键。viewer 的 id 和角色必须进键：
// 这是防止 A 的可见性过滤结果被端给 B 的唯一机制。
type PageKey struct {
	Version  uint64
	ViewerID uint64
	Role     int
	PerPage  int
	Page     int
	SortBy   string
	SortDir  string
	TargetID uint64 // 未指定目标用户时为 0
}

func (k PageKey) String() string {
	return fmt.Sprintf("%s:v%d:u%d:r%d:p%d:pg%d:sb%s:sd%s:f%d",
		FeedPageKeyPrefix,
		k.Version, k.ViewerID, k.Role,
		k.PerPage, k.Page, k.SortBy, k.SortDir, k.TargetID)
}

type FeedCacheRepository struct{}

// Version 读当前版本号；键不存在视为 0（首次 INCR 后变 1，键空间随之切换）
func (r *FeedCacheRepository) Version(ctx context.Context) (uint64, error) {
	v, err := Client.Get(ctx, FeedVersionKey).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return v, nil
}

// Bump 原子自增，并发写者不会丢更新
func (r *FeedCacheRepository) Bump(ctx context.Context) error {
	return Client.Incr(ctx, FeedVersionKey).Err()
}

// GetPage 命中返回缓存的原始字节，两次命中字节一致
func (r *FeedCacheRepository) GetPage(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// SetPage 带 TTL 写入；同键并发写 last-write-wins，缓存不是 source of truth
func (r *FeedCacheRepository) SetPage(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return Client.Set(ctx, key, payload, ttl).Err()
}
