// Package playlistsync 周期扫描关联外部播放列表的 playlist，并逐个调用 SyncReconciler 重建。
package playlistsync

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"
	"github.com/bionicotaku/lingo-services-library/internal/services"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
)

// Config 控制扫描节奏与并发。
type Config struct {
	Interval    time.Duration
	BatchSize   int
	Workers     int
	StaleAfter  time.Duration
	SyncTimeout time.Duration
	RunOnce     bool
}

// PlaylistLister 按游标列出待同步的播放列表。
type PlaylistLister interface {
	ListLinked(ctx context.Context, sess txmanager.Session, input repositories.ListLinkedInput) ([]*po.Playlist, error)
}

// Syncer 同步单个播放列表。
type Syncer interface {
	SyncPlaylist(ctx context.Context, input services.SyncInput) (services.SyncResult, error)
}

// Summary 汇总一轮扫描的结果。
type Summary struct {
	Scanned       int
	Synced        int
	NothingToSync int
	Failed        int
}

// Runner 执行周期同步。
type Runner struct {
	lister  PlaylistLister
	syncer  Syncer
	cfg     Config
	now     func() time.Time
	metrics *metrics
	log     *log.Helper
}

// RunnerParams 注入 Runner 所需依赖。
type RunnerParams struct {
	Lister PlaylistLister
	Syncer Syncer
	Config Config
	Logger log.Logger
	Now    func() time.Time
	// Meter 为空时使用全局 MeterProvider。
	Meter metric.Meter
}

// NewRunner 构造 Runner，并为缺省配置填充默认值。
func NewRunner(params RunnerParams) (*Runner, error) {
	if params.Lister == nil {
		return nil, fmt.Errorf("playlist sync: lister is required")
	}
	if params.Syncer == nil {
		return nil, fmt.Errorf("playlist sync: syncer is required")
	}
	cfg := params.Config
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Minute
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.SyncTimeout <= 0 {
		cfg.SyncTimeout = 2 * time.Minute
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	logger := params.Logger
	if logger == nil {
		logger = log.DefaultLogger
	}
	return &Runner{
		lister:  params.Lister,
		syncer:  params.Syncer,
		cfg:     cfg,
		now:     now,
		metrics: newMetrics(params.Meter),
		log:     log.NewHelper(logger),
	}, nil
}

// Run 立即执行一轮扫描，随后按 Interval 周期执行，直到 ctx 取消；RunOnce 时执行一轮即返回。
func (r *Runner) Run(ctx context.Context) error {
	if r == nil {
		return nil
	}
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()
	for {
		summary, err := r.RunOnce(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			r.log.WithContext(ctx).Errorf("playlist sync pass aborted: %v", err)
		} else {
			r.log.WithContext(ctx).Infof("playlist sync pass finished: scanned=%d synced=%d nothing=%d failed=%d",
				summary.Scanned, summary.Synced, summary.NothingToSync, summary.Failed)
		}
		if r.cfg.RunOnce {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunOnce 按 id 游标扫描全部待同步播放列表。单个播放列表失败只计数，不中断扫描；列表查询失败则返回错误。
func (r *Runner) RunOnce(ctx context.Context) (Summary, error) {
	var (
		summary  Summary
		synced   atomic.Int64
		nothing  atomic.Int64
		failed   atomic.Int64
		after    uuid.UUID
		started  = r.now()
		staleCut = started
	)
	if r.cfg.StaleAfter > 0 {
		staleCut = started.Add(-r.cfg.StaleAfter)
	}

	for {
		page, err := r.lister.ListLinked(ctx, nil, repositories.ListLinkedInput{
			After:       after,
			Limit:       int32(r.cfg.BatchSize),
			StaleBefore: staleCut,
		})
		if err != nil {
			return summary, fmt.Errorf("list linked playlists: %w", err)
		}
		if len(page) == 0 {
			break
		}
		summary.Scanned += len(page)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.cfg.Workers)
		for _, playlist := range page {
			g.Go(func() error {
				switch outcome := r.syncOne(gctx, playlist); outcome {
				case services.SyncOutcomeSynced:
					synced.Add(1)
				case services.SyncOutcomeNothingToSync:
					nothing.Add(1)
				default:
					failed.Add(1)
				}
				return nil
			})
		}
		_ = g.Wait()
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		after = page[len(page)-1].ID
		if len(page) < r.cfg.BatchSize {
			break
		}
	}

	summary.Synced = int(synced.Load())
	summary.NothingToSync = int(nothing.Load())
	summary.Failed = int(failed.Load())
	r.metrics.recordPass(ctx, summary, r.now().Sub(started))
	return summary, nil
}

// syncOne 同步单个播放列表；失败时返回 0。
func (r *Runner) syncOne(ctx context.Context, playlist *po.Playlist) services.SyncOutcome {
	syncCtx, cancel := context.WithTimeout(ctx, r.cfg.SyncTimeout)
	defer cancel()
	result, err := r.syncer.SyncPlaylist(syncCtx, services.SyncInput{
		UserID:     playlist.UserID,
		PlaylistID: playlist.ID,
	})
	if err != nil {
		r.log.WithContext(ctx).Warnf("playlist sync failed: playlist=%s user=%s err=%v", playlist.ID, playlist.UserID, err)
		return 0
	}
	return result.Outcome
}
