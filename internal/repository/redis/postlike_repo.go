package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	LikeSetTTL       = 24 * time.Hour
	LikeCntTTL       = 24 * time.Hour
	LockTTL          = 300 * time.Millisecond
	LikeSetKeyPrefix = "like:set:post" // 某个帖子已点赞的用户ID集合
	LikeCntKeyPrefix = "like:cnt:post" // 某个帖子的点赞计数
	LockKeyPrefix    = "lock:like:post"
)

type LikeCacheRepository struct {
	likeSetTTL time.Duration
	likeCntTTL time.Duration
}

type DistLock struct {
	RDB *redis.Client
}

func NewLikeCacheRepository() *LikeCacheRepository {
	return &LikeCacheRepository{
		likeSetTTL: LikeSetTTL,
		likeCntTTL: LikeCntTTL,
	}
}

func (r *LikeCacheRepository) likeSetKey(postID uint64) string {
	return fmt.Sprintf("%s:%d", LikeSetKeyPrefix, postID)
}
func (r *LikeCacheRepository) likeCntKey(postID uint64) string {
	return fmt.Sprintf("%s:%d", LikeCntKeyPrefix, postID)
}

// AddLike 写路径：MySQL 落库成功后再更新集合和计数
func (r *LikeCacheRepository) AddLike(ctx context.Context, userID, postID uint64) error {
	k := r.likeSetKey(postID)
	if err := Client.SAdd(ctx, k, userID).Err(); err != nil {
		return err
	}
	_ = Client.Expire(ctx, k, r.likeSetTTL).Err()

	ck := r.likeCntKey(postID)
	if err := Client.Incr(ctx, ck).Err(); err != nil {
		return err
	}
	_ = Client.Expire(ctx, ck, r.likeCntTTL).Err()
	return nil
}

func (r *LikeCacheRepository) RemoveLike(ctx context.Context, userID, postID uint64) error {
	k := r.likeSetKey(postID)
	if err := Client.SRem(ctx, k, userID).Err(); err != nil {
		return err
	}
	ck := r.likeCntKey(postID)
	// 计数防负数
	if err := Client.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, ck).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if val <= 0 {
			// 不存在或<=0 直接返回，交给回源兜底
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Decr(ctx, ck)
			return nil
		})
		return err
	}, ck); err != nil {
		return err
	}
	return nil
}

// IsLikedCached 第二个返回值表示集合是否存在（不存在时结果不可信，需回源）
func (r *LikeCacheRepository) IsLikedCached(ctx context.Context, userID, postID uint64) (bool, bool, error) {
	k := r.likeSetKey(postID)
	exists, err := Client.Exists(ctx, k).Result()
	if err != nil {
		return false, false, err
	}
	if exists == 0 {
		return false, false, nil
	}
	b, err := Client.SIsMember(ctx, k, userID).Result()
	return b, true, err
}

func (r *LikeCacheRepository) GetLikeCountCached(ctx context.Context, postID uint64) (int64, bool, error) {
	ck := r.likeCntKey(postID)
	val, err := Client.Get(ctx, ck).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	return val, true, err
}

// SetLikeCount 回源后回填计数
func (r *LikeCacheRepository) SetLikeCount(ctx context.Context, postID uint64, cnt int64) error {
	ck := r.likeCntKey(postID)
	return Client.Set(ctx, ck, cnt, r.likeCntTTL).Err()
}

// WarmIsLiked 惰性回填：只在集合已存在时写，避免无界扩张
func (r *LikeCacheRepository) WarmIsLiked(ctx context.Context, userID, postID uint64, liked bool) {
	k := r.likeSetKey(postID)
	if ok, _ := Client.Exists(ctx, k).Result(); ok > 0 {
		if liked {
			_ = Client.SAdd(ctx, k, userID).Err()
		} else {
			_ = Client.SRem(ctx, k, userID).Err()
		}
		_ = Client.Expire(ctx, k, r.likeSetTTL).Err()
	}
}

// DeleteCount 删除计数缓存，可选延迟二删抵消并发回填窗口
func (r *LikeCacheRepository) DeleteCount(ctx context.Context, postID uint64, delay ...time.Duration) error {
	key := r.likeCntKey(postID)
	if err := Client.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if len(delay) > 0 && delay[0] > 0 {
		d := delay[0]
		go func() {
			t := time.NewTimer(d)
			defer t.Stop()
			<-t.C
			_ = Client.Del(context.Background(), key).Err()
		}()
	}
	return nil
}

// Acquire 请求加分布式锁
func (l *DistLock) Acquire(ctx context.Context, postID uint64, token string) (bool, error) {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, postID)
	return l.RDB.SetNX(ctx, key, token, LockTTL).Result()
}

// Release 用lua保证原子性
func (l *DistLock) Release(ctx context.Context, postID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, postID)
	_, err := redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`).Run(ctx, l.RDB, []string{key}, token).Result()
	return err
}
