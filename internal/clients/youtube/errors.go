package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/api/googleapi"
)

var (
	// ErrNotFound 表示外部平台上不存在对应的视频或播放列表。
	ErrNotFound = errors.New("youtube: resource not found")
	// ErrUpstreamUnavailable 表示网络、配额或服务端故障导致无法获取数据。
	ErrUpstreamUnavailable = errors.New("youtube: upstream unavailable")
)

var retryableReasons = map[string]struct{}{
	"rateLimitExceeded":     {},
	"userRateLimitExceeded": {},
	"backendError":          {},
	"internalError":         {},
}

// classify 将一次 API 调用失败转换为可重试错误或 backoff.Permanent。
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		return err
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return backoff.Permanent(fmt.Errorf("%s: %w", op, err))
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusNotFound:
			return backoff.Permanent(fmt.Errorf("%s: %w", op, ErrNotFound))
		case apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError:
			return fmt.Errorf("%s: %w: %v", op, ErrUpstreamUnavailable, err)
		case hasReason(apiErr, retryableReasons):
			return fmt.Errorf("%s: %w: %v", op, ErrUpstreamUnavailable, err)
		default:
			// quotaExceeded / forbidden / badRequest 重试无意义
			return backoff.Permanent(fmt.Errorf("%s: %w: %v", op, ErrUpstreamUnavailable, err))
		}
	}
	return fmt.Errorf("%s: %w: %v", op, ErrUpstreamUnavailable, err)
}

func hasReason(apiErr *googleapi.Error, reasons map[string]struct{}) bool {
	for _, item := range apiErr.Errors {
		if _, ok := reasons[item.Reason]; ok {
			return true
		}
	}
	return false
}

// errorKind 用于指标标签。
func errorKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "unavailable"
	}
}
