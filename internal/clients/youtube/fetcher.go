// Package youtube 封装 YouTube Data API v3 的只读访问：单个视频元数据与分页播放列表。
//
// 所有时长在此边界被规范化为整秒，ISO-8601 字符串不会离开本包。
// 网络/配额类故障在内部按指数退避重试，仍失败时返回 ErrUpstreamUnavailable；
// 未知 id 返回 ErrNotFound。任何失败都不会返回部分结果。
package youtube

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-kratos/kratos/v2/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

const (
	// pageSize 是 playlistItems.list / videos.list 单次请求允许的最大条目数。
	pageSize = 50

	defaultMaxRetries          = 3
	defaultInitialBackoff      = 200 * time.Millisecond
	defaultMaxBackoff          = 3 * time.Second
	defaultDurationConcurrency = 4
	defaultMaxPages            = 200
)

// Config 描述 YouTube 客户端的运行参数。
type Config struct {
	APIKey              string
	Endpoint            string
	RequestsPerSecond   float64
	Burst               int
	MaxRetries          uint64
	InitialBackoff      time.Duration
	MaxBackoff          time.Duration
	DurationConcurrency int
	CacheURL            string
	CacheTTL            time.Duration
}

// Video 是规范化后的单个视频元数据。
type Video struct {
	ExternalID     string `json:"external_id"`
	Title          string `json:"title"`
	Thumbnail      string `json:"thumbnail"`
	OriginDuration int    `json:"origin_duration"`
}

// PlaylistItem 是播放列表中的一个条目，Start/End 来自条目自身的裁剪提示。
type PlaylistItem struct {
	ExternalID     string
	Title          string
	Thumbnail      string
	Start          *int
	End            *int
	OriginDuration int
}

// Playlist 是完整拉取（已跟随全部分页）的外部播放列表。
type Playlist struct {
	ExternalID string
	Title      string
	Items      []PlaylistItem
}

// Fetcher 实现外部目录拉取。
type Fetcher struct {
	service *yt.Service
	limiter *rate.Limiter
	cache   *Cache
	cfg     Config
	metrics *metrics
	tracer  trace.Tracer
	log     *log.Helper
}

// NewFetcher 构造 Fetcher。cache 可以为 nil。
func NewFetcher(ctx context.Context, cfg Config, cache *Cache, logger log.Logger) (*Fetcher, error) {
	opts := []option.ClientOption{}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	} else {
		opts = append(opts, option.WithoutAuthentication())
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	service, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = defaultInitialBackoff
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = defaultMaxBackoff
	}
	if cfg.DurationConcurrency <= 0 {
		cfg.DurationConcurrency = defaultDurationConcurrency
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Fetcher{
		service: service,
		limiter: rate.NewLimiter(limit, burst),
		cache:   cache,
		cfg:     cfg,
		metrics: newMetrics(),
		tracer:  otel.Tracer(meterName),
		log:     log.NewHelper(logger),
	}, nil
}

// FetchVideo 返回单个视频的元数据。
func (f *Fetcher) FetchVideo(ctx context.Context, externalID string) (Video, error) {
	ctx, span := f.tracer.Start(ctx, "youtube.FetchVideo", trace.WithAttributes(attribute.String("youtube.video_id", externalID)))
	defer span.End()

	if cached, ok := f.cache.Get(ctx, externalID); ok {
		f.metrics.recordCacheHit(ctx)
		return cached, nil
	}

	videos, err := f.listVideos(ctx, []string{externalID})
	if err != nil {
		endSpan(span, err)
		return Video{}, err
	}
	video, ok := videos[externalID]
	if !ok {
		err := fmt.Errorf("video %s: %w", externalID, ErrNotFound)
		endSpan(span, err)
		return Video{}, err
	}
	return video, nil
}

// FetchPlaylist 拉取播放列表标题与全部条目，并批量补齐每个条目的原始时长。
func (f *Fetcher) FetchPlaylist(ctx context.Context, externalID string) (Playlist, error) {
	ctx, span := f.tracer.Start(ctx, "youtube.FetchPlaylist", trace.WithAttributes(attribute.String("youtube.playlist_id", externalID)))
	defer span.End()

	title, err := f.playlistTitle(ctx, externalID)
	if err != nil {
		endSpan(span, err)
		return Playlist{}, err
	}

	items, err := f.listAllItems(ctx, externalID)
	if err != nil {
		endSpan(span, err)
		return Playlist{}, err
	}

	items, err = f.attachDurations(ctx, items)
	if err != nil {
		endSpan(span, err)
		return Playlist{}, err
	}
	span.SetAttributes(attribute.Int("youtube.item_count", len(items)))

	return Playlist{ExternalID: externalID, Title: title, Items: items}, nil
}

func (f *Fetcher) playlistTitle(ctx context.Context, externalID string) (string, error) {
	var title string
	err := f.call(ctx, "playlists.list", func(callCtx context.Context) error {
		resp, err := f.service.Playlists.List([]string{"snippet"}).Id(externalID).Context(callCtx).Do()
		if err != nil {
			return err
		}
		if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
			return fmt.Errorf("playlist %s: %w", externalID, ErrNotFound)
		}
		title = resp.Items[0].Snippet.Title
		return nil
	})
	return title, err
}

// listAllItems 跟随 nextPageToken 直到收集到 pageInfo.totalResults 条或令牌耗尽。
func (f *Fetcher) listAllItems(ctx context.Context, externalID string) ([]PlaylistItem, error) {
	var (
		items     []PlaylistItem
		pageToken string
	)
	total := int64(-1)
	maxPages := defaultMaxPages
	for page := 0; page < maxPages; page++ {
		var resp *yt.PlaylistItemListResponse
		token := pageToken
		err := f.call(ctx, "playlistItems.list", func(callCtx context.Context) error {
			call := f.service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
				PlaylistId(externalID).
				MaxResults(pageSize).
				Context(callCtx)
			if token != "" {
				call = call.PageToken(token)
			}
			var err error
			resp, err = call.Do()
			return err
		})
		if err != nil {
			return nil, err
		}

		if total < 0 && resp.PageInfo != nil {
			total = resp.PageInfo.TotalResults
			maxPages = int(total/pageSize) + 2
		}
		for _, raw := range resp.Items {
			if item, ok := toPlaylistItem(raw); ok {
				items = append(items, item)
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
		if total >= 0 && int64(len(items)) >= total {
			break
		}
	}
	return items, nil
}

// attachDurations 以每批 50 个 id 并发调用 videos.list，任一批失败则整体失败。
// 任一条目在 videos.list 中缺失（私有/删除）时整体返回 ErrNotFound，不返回部分结果。
func (f *Fetcher) attachDurations(ctx context.Context, items []PlaylistItem) ([]PlaylistItem, error) {
	if len(items) == 0 {
		return items, nil
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ExternalID)
	}
	chunks := chunkStrings(ids, pageSize)
	results := make([]map[string]Video, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.cfg.DurationConcurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			videos, err := f.listVideos(gctx, chunk)
			if err != nil {
				return err
			}
			results[i] = videos
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(map[string]Video, len(ids))
	for _, part := range results {
		for id, video := range part {
			merged[id] = video
		}
	}

	out := make([]PlaylistItem, 0, len(items))
	for _, item := range items {
		video, ok := merged[item.ExternalID]
		if !ok {
			return nil, fmt.Errorf("playlist item %s: %w", item.ExternalID, ErrNotFound)
		}
		item.OriginDuration = video.OriginDuration
		if item.Thumbnail == "" {
			item.Thumbnail = video.Thumbnail
		}
		out = append(out, item)
	}
	return out, nil
}

// listVideos 调用一次 videos.list，返回 id → 元数据，并回写缓存。
func (f *Fetcher) listVideos(ctx context.Context, ids []string) (map[string]Video, error) {
	out := make(map[string]Video, len(ids))
	err := f.call(ctx, "videos.list", func(callCtx context.Context) error {
		resp, err := f.service.Videos.List([]string{"snippet", "contentDetails"}).
			Id(ids...).
			MaxResults(pageSize).
			Context(callCtx).
			Do()
		if err != nil {
			return err
		}
		for _, raw := range resp.Items {
			video, err := toVideo(raw)
			if err != nil {
				return backoff.Permanent(fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err))
			}
			out[video.ExternalID] = video
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, video := range out {
		f.cache.Set(ctx, video)
	}
	return out, nil
}

// call 在限流与指数退避之下执行一次 API 调用。
func (f *Fetcher) call(ctx context.Context, op string, fn func(context.Context) error) error {
	started := time.Now()
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = f.cfg.InitialBackoff
	policy.MaxInterval = f.cfg.MaxBackoff
	policy.MaxElapsedTime = 0

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		if err := f.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(fmt.Errorf("%s: %w", op, err))
		}
		err := classify(op, fn(ctx))
		if err != nil && attempt <= int(f.cfg.MaxRetries) {
			f.log.WithContext(ctx).Debugf("youtube %s attempt %d failed: %v", op, attempt, err)
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(policy, f.cfg.MaxRetries), ctx))
	f.metrics.record(ctx, op, started, err)
	return err
}

func toVideo(raw *yt.Video) (Video, error) {
	video := Video{ExternalID: raw.Id}
	if raw.Snippet != nil {
		video.Title = raw.Snippet.Title
		video.Thumbnail = pickThumbnail(raw.Snippet.Thumbnails)
	}
	if raw.ContentDetails != nil {
		seconds, err := parseISODuration(raw.ContentDetails.Duration)
		if err != nil {
			return Video{}, err
		}
		video.OriginDuration = seconds
	}
	return video, nil
}

func toPlaylistItem(raw *yt.PlaylistItem) (PlaylistItem, bool) {
	if raw == nil || raw.ContentDetails == nil || raw.ContentDetails.VideoId == "" {
		return PlaylistItem{}, false
	}
	item := PlaylistItem{
		ExternalID: raw.ContentDetails.VideoId,
		Start:      parseOffset(raw.ContentDetails.StartAt),
		End:        parseOffset(raw.ContentDetails.EndAt),
	}
	if raw.Snippet != nil {
		item.Title = raw.Snippet.Title
		item.Thumbnail = pickThumbnail(raw.Snippet.Thumbnails)
	}
	return item, true
}

func pickThumbnail(details *yt.ThumbnailDetails) string {
	if details == nil {
		return ""
	}
	for _, thumb := range []*yt.Thumbnail{details.Medium, details.High, details.Default, details.Standard, details.Maxres} {
		if thumb != nil && thumb.Url != "" {
			return thumb.Url
		}
	}
	return ""
}

func chunkStrings(values []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(values); start += size {
		end := start + size
		if end > len(values) {
			end = len(values)
		}
		chunks = append(chunks, values[start:end])
	}
	return chunks
}

func endSpan(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, errorKind(err))
}
