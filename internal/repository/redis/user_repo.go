package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrTokenMismatch    = errors.New("token mismatch")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
	ErrTokenDeleted     = errors.New("token delete failed")
)

const (
	UserTokenPrefix = "login:user:token"
	UserTokenExpire = 60 * 30
)

// UserRepository 单会话令牌存储：每个用户只保留最后一次登录下发的
// access token，异地登录把旧令牌顶掉，中间件逐请求比对
type UserRepository struct{}

func userTokenKey(usrId uint64) string {
	return fmt.Sprintf("%s:%d", UserTokenPrefix, usrId)
}

// AddUserToken 登录时写入，带滑动过期
func (r *UserRepository) AddUserToken(usrId uint64, token string) error {
	if err := Client.Set(context.Background(), userTokenKey(usrId), token, time.Second*UserTokenExpire).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *UserRepository) GetUserToken(usrId uint64) (string, error) {
	token, err := Client.Get(context.Background(), userTokenKey(usrId)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

// ExtendUserToken 每次通过鉴权就续期，活跃会话不掉线
func (r *UserRepository) ExtendUserToken(usrId uint64) error {
	if _, err := Client.Expire(context.Background(), userTokenKey(usrId), time.Second*UserTokenExpire).Result(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

// DeleteUserToken 登出或改密后吊销会话
func (r *UserRepository) DeleteUserToken(usrId uint64) error {
	if err := Client.Del(context.Background(), userTokenKey(usrId)).Err(); err != nil {
		return ErrTokenDeleted
	}
	return nil
}
