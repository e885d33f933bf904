package service

import (
	"context"
	"fmt"
	"time"

	"Lee_Feed/internal/pkg"
	"Lee_Feed/internal/repository/mysql"
	"Lee_Feed/internal/repository/redis"
)

type PostLikeService struct {
	repo      *mysql.PostLikeRepository
	likeCache *redis.LikeCacheRepository
	lock      *redis.DistLock
}

func NewPostLikeService() *PostLikeService {
	return &PostLikeService{
		repo:      &mysql.PostLikeRepository{DB: mysql.DB},
		likeCache: redis.NewLikeCacheRepository(),
		lock:      &redis.DistLock{RDB: redis.Client},
	}
}

// Like 先写库；缓存集合直接更新，计数拿锁强更新，拿不到锁就删计数Key交给读侧重建
func (s *PostLikeService) Like(ctx context.Context, userID, postID uint64) (bool, error) {
	if userID == 0 || postID == 0 {
		return false, pkg.Validation("invalid id")
	}

	changed, err := s.repo.Like(ctx, userID, postID)
	if err != nil || !changed {
		// 幂等命中时，尽量惰性回填集合（不创建新集合）
		if err == nil {
			s.likeCache.WarmIsLiked(ctx, userID, postID, true)
		}
		return changed, err
	}

	// 集合可直接更新（不强制），失败忽略
	_ = s.likeCache.AddLike(ctx, userID, postID)

	token := fmt.Sprintf("%d-%d-%d", userID, postID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, postID, token)
	if got {
		defer s.lock.Release(ctx, postID, token)
		// 拿到锁做一次校准：回源读真值覆盖缓存，失败则降级删Key
		cnt, err := s.repo.GetLikeCount(ctx, postID)
		if err != nil || s.likeCache.SetLikeCount(ctx, postID, cnt) != nil {
			_ = s.likeCache.DeleteCount(ctx, postID)
		}
	} else {
		// 拿不到锁，避免并发冲突，删除计数Key
		_ = s.likeCache.DeleteCount(ctx, postID)
	}
	return true, nil
}

// Unlike 同样策略
func (s *PostLikeService) Unlike(ctx context.Context, userID, postID uint64) (bool, error) {
	if userID == 0 || postID == 0 {
		return false, pkg.Validation("invalid id")
	}
	changed, err := s.repo.Unlike(ctx, userID, postID)
	if err != nil || !changed {
		if err == nil {
			s.likeCache.WarmIsLiked(ctx, userID, postID, false)
		}
		return changed, err
	}

	_ = s.likeCache.RemoveLike(ctx, userID, postID)

	token := fmt.Sprintf("%d-%d-%d", userID, postID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, postID, token)
	if got {
		defer s.lock.Release(ctx, postID, token)
		// RemoveLike 已做 WATCH/DECR 防负，这里不再动
	} else {
		_ = s.likeCache.DeleteCount(ctx, postID)
	}
	return true, nil
}

func (s *PostLikeService) IsLiked(ctx context.Context, userID, postID uint64) (bool, error) {
	if userID == 0 || postID == 0 {
		return false, pkg.Validation("invalid id")
	}
	// 先查缓存集合（命中才用）
	if b, ok, err := s.likeCache.IsLikedCached(ctx, userID, postID); err == nil && ok {
		return b, nil
	}
	// 回源 MySQL
	b, err := s.repo.IsLiked(ctx, userID, postID)
	if err == nil {
		s.likeCache.WarmIsLiked(ctx, userID, postID, b)
	}
	return b, err
}

// GetCountWithLock 缓存 miss 时用分布式锁做单飞回源，避免全体打DB
func (s *PostLikeService) GetCountWithLock(ctx context.Context, userID, postID uint64) (int64, error) {
	if v, ok, err := s.likeCache.GetLikeCountCached(ctx, postID); err == nil && ok {
		return v, nil
	}
	token := fmt.Sprintf("%d-%d-%d", userID, postID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, postID, token)

	if got {
		defer func() {
			_ = s.lock.Release(ctx, postID, token)
		}()

		// 第二次检查
		if v, ok, err := s.likeCache.GetLikeCountCached(ctx, postID); err == nil && ok {
			return v, nil
		}

		v, err := s.repo.GetLikeCount(ctx, postID)
		if err != nil {
			return 0, err
		}

		_ = s.likeCache.SetLikeCount(ctx, postID, v)
		return v, nil
	}

	// 没拿到锁，短暂退避后再读一次缓存
	time.Sleep(50 * time.Millisecond)
	if v, ok, err := s.likeCache.GetLikeCountCached(ctx, postID); err == nil && ok {
		return v, nil
	}

	// 仍miss，有限回源一次
	return s.repo.GetLikeCount(ctx, postID)
}
