package pkg

import (
	"errors"
	"fmt"
	"net/http"
)

// 错误分类哨兵，服务层用包装函数生成，handler 层统一映射 HTTP 状态码。
// 瞬时存储错误不在此列，原样上抛（500），不做静默重试。
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("invalid input")

	// ErrCacheInvalidation 域变更已落库但 feed 版本号没能递增：
	// 调用方必须能看到这个失败（旧页会被继续命中直到 TTL 过期），不静默。
	ErrCacheInvalidation = errors.New("cache invalidation failed")
)

func Forbidden(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrForbidden)
}

func Conflict(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrConflict)
}

func NotFound(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrNotFound)
}

func Validation(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrValidation)
}

func CacheInvalidation(err error) error {
	return fmt.Errorf("%w: %v", ErrCacheInvalidation, err)
}

// HTTPStatus 错误分类 -> 状态码，未分类一律按 500 处理
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
