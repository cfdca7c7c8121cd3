package youtube

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sosodev/duration"
)

// parseISODuration 将 contentDetails.duration（ISO-8601，如 PT1M30S）转换为整秒。
// 直播等无时长的视频返回 P0D，对应 0。
func parseISODuration(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	d, err := duration.Parse(raw)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", raw, err)
	}
	seconds := int(d.ToTimeDuration().Seconds())
	if seconds < 0 {
		return 0, fmt.Errorf("parse duration %q: negative", raw)
	}
	return seconds, nil
}

// parseOffset 解析 playlistItem.contentDetails 的 startAt/endAt。
// 该字段通常是秒数，也兼容 ISO-8601 写法；空值返回 nil。
func parseOffset(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		if v < 0 {
			return nil
		}
		seconds := int(v)
		return &seconds
	}
	if seconds, err := parseISODuration(raw); err == nil {
		return &seconds
	}
	return nil
}
