package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
)

const (
	defaultCacheTTL = 6 * time.Hour
	cacheKeyPrefix  = "library:yt:video:"
)

// Cache 是视频元数据的 Redis cache-aside 层。
// 未配置 RedisURL 时返回 nil，所有方法在 nil 接收者上均为空操作。
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *log.Helper
}

// NewCache 根据配置连接 Redis；连接失败时降级为无缓存并记录告警。
func NewCache(cfg Config, logger log.Logger) (*Cache, func(), error) {
	helper := log.NewHelper(logger)
	if cfg.CacheURL == "" {
		helper.Info("youtube metadata cache disabled (no redis url)")
		return nil, func() {}, nil
	}
	opts, err := redis.ParseURL(cfg.CacheURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		helper.Warnf("youtube metadata cache disabled: ping redis failed: %v", err)
		_ = rdb.Close()
		return nil, func() {}, nil
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	cache := &Cache{rdb: rdb, ttl: ttl, log: helper}
	cleanup := func() {
		if err := rdb.Close(); err != nil {
			helper.Warnf("close redis: %v", err)
		}
	}
	return cache, cleanup, nil
}

// Get 读取缓存的视频元数据。
func (c *Cache) Get(ctx context.Context, externalID string) (Video, bool) {
	if c == nil || c.rdb == nil {
		return Video{}, false
	}
	data, err := c.rdb.Get(ctx, cacheKey(externalID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WithContext(ctx).Warnf("youtube cache get failed: id=%s err=%v", externalID, err)
		}
		return Video{}, false
	}
	var video Video
	if err := json.Unmarshal(data, &video); err != nil {
		c.log.WithContext(ctx).Warnf("youtube cache decode failed: id=%s err=%v", externalID, err)
		return Video{}, false
	}
	return video, true
}

// Set 写入缓存，失败只记录日志。
func (c *Cache) Set(ctx context.Context, video Video) {
	if c == nil || c.rdb == nil || video.ExternalID == "" {
		return
	}
	data, err := json.Marshal(video)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(video.ExternalID), data, c.ttl).Err(); err != nil {
		c.log.WithContext(ctx).Warnf("youtube cache set failed: id=%s err=%v", video.ExternalID, err)
	}
}

// Invalidate 删除缓存条目。
func (c *Cache) Invalidate(ctx context.Context, externalID string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, cacheKey(externalID)).Err()
}

func cacheKey(externalID string) string {
	return cacheKeyPrefix + externalID
}
