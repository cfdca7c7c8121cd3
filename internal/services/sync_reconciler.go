package services

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/bionicotaku/lingo-services-library/internal/clients/youtube"
	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const defaultSyncFetchConcurrency = 4

// SyncConfig 控制同步时外部拉取的并发度。
type SyncConfig struct {
	FetchConcurrency int
}

// SyncOutcome 是同步的结果类型；NothingToSync 不是错误。
type SyncOutcome int

const (
	// SyncOutcomeSynced 表示至少一个外部关联 routine 已重建并持久化。
	SyncOutcomeSynced SyncOutcome = iota + 1
	// SyncOutcomeNothingToSync 表示范围内没有外部关联 routine，播放列表未被修改。
	SyncOutcomeNothingToSync
)

// String 返回结果名称。
func (o SyncOutcome) String() string {
	switch o {
	case SyncOutcomeSynced:
		return "synced"
	case SyncOutcomeNothingToSync:
		return "nothing_to_sync"
	default:
		return "unknown"
	}
}

// SyncInput 描述一次同步请求；RoutineIndex 为空表示同步全部 routine。
type SyncInput struct {
	UserID       uuid.UUID
	PlaylistID   uuid.UUID
	RoutineIndex *int
}

// SyncResult 是同步结果。
type SyncResult struct {
	Outcome  SyncOutcome
	Playlist *po.Playlist
	Rebuilt  []int
	Inserted int
}

// SyncReconciler 依据 routine 上的外部播放列表 id 重新拉取并重建 routine，手工 routine 原样保留。
type SyncReconciler struct {
	playlists   PlaylistStore
	folders     FolderStore
	catalog     ExternalCatalog
	builder     *RoutineBuilder
	txManager   txmanager.Manager
	concurrency int
	metrics     *catalogMetrics
	log         *log.Helper
}

// NewSyncReconciler 构造 SyncReconciler。
func NewSyncReconciler(
	playlists PlaylistStore,
	folders FolderStore,
	catalog ExternalCatalog,
	builder *RoutineBuilder,
	tx txmanager.Manager,
	cfg SyncConfig,
	logger log.Logger,
) *SyncReconciler {
	concurrency := cfg.FetchConcurrency
	if concurrency <= 0 {
		concurrency = defaultSyncFetchConcurrency
	}
	return &SyncReconciler{
		playlists:   playlists,
		folders:     folders,
		catalog:     catalog,
		builder:     builder,
		txManager:   tx,
		concurrency: concurrency,
		metrics:     newCatalogMetrics(),
		log:         log.NewHelper(logger),
	}
}

// SyncPlaylist 重建范围内所有外部关联 routine 并重新计算总时长。
func (r *SyncReconciler) SyncPlaylist(ctx context.Context, input SyncInput) (SyncResult, error) {
	playlist, err := r.playlists.Get(ctx, nil, input.PlaylistID)
	if err != nil {
		return SyncResult{}, mapStoreError(err)
	}
	if playlist.UserID != input.UserID {
		return SyncResult{}, ErrOwnershipConflict
	}

	linked, err := linkedInScope(playlist.Routines, input.RoutineIndex)
	if err != nil {
		return SyncResult{}, err
	}
	if len(linked) == 0 {
		r.metrics.recordSync(ctx, SyncOutcomeNothingToSync.String())
		return SyncResult{Outcome: SyncOutcomeNothingToSync, Playlist: playlist}, nil
	}

	fetched, err := r.fetchAll(ctx, playlist.Routines, linked)
	if err != nil {
		r.metrics.recordSync(ctx, "failed")
		return SyncResult{}, err
	}

	target, err := r.landingFolder(ctx, playlist)
	if err != nil {
		return SyncResult{}, err
	}

	rebuilt := make(map[int]po.Routine, len(linked))
	inserted := 0
	for i, idx := range linked {
		ingest, err := r.builder.FromExternalPlaylist(ctx, playlist.UserID, target, fetched[i])
		if err != nil {
			r.metrics.recordSync(ctx, "failed")
			return SyncResult{}, err
		}
		rebuilt[idx] = ingest.Built.Routine
		inserted += ingest.Counts.Inserted
	}

	var saved *po.Playlist
	var applied []int
	err = r.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		current, err := r.playlists.GetForUpdate(txCtx, sess, playlist.ID)
		if err != nil {
			return mapStoreError(err)
		}
		var routines []po.Routine
		routines, applied = ReplaceLinkedRoutines(current.Routines, rebuilt)
		if len(applied) == 0 {
			// 拉取期间外部关联已被移除或改指向，不写回
			saved = current
			return nil
		}
		saved, err = r.playlists.UpdateRoutines(txCtx, sess, playlist.ID, routines, po.TotalDuration(routines), true)
		return mapStoreError(err)
	})
	if err != nil {
		r.metrics.recordSync(ctx, "failed")
		return SyncResult{}, err
	}
	if len(applied) == 0 {
		r.metrics.recordSync(ctx, SyncOutcomeNothingToSync.String())
		r.log.WithContext(ctx).Infof("playlist sync skipped: playlist=%s linked routines changed concurrently", playlist.ID)
		return SyncResult{Outcome: SyncOutcomeNothingToSync, Playlist: saved, Inserted: inserted}, nil
	}
	r.metrics.recordSync(ctx, SyncOutcomeSynced.String())
	r.log.WithContext(ctx).Infof("playlist synced: playlist=%s rebuilt=%v inserted=%d duration=%d",
		playlist.ID, applied, inserted, saved.Duration)
	return SyncResult{Outcome: SyncOutcomeSynced, Playlist: saved, Rebuilt: applied, Inserted: inserted}, nil
}

// fetchAll 以有界并发拉取外部播放列表，结果按 linked 顺序排列，任一失败即整体失败。
func (r *SyncReconciler) fetchAll(ctx context.Context, routines []po.Routine, linked []int) ([]youtube.Playlist, error) {
	results := make([]youtube.Playlist, len(linked))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, idx := range linked {
		externalID := *routines[idx].ExternalPlaylistID
		g.Go(func() error {
			fetched, err := r.catalog.FetchPlaylist(gctx, externalID)
			if err != nil {
				return fmt.Errorf("fetch routine %d (%s): %w", idx, externalID, mapFetchError(err))
			}
			results[i] = fetched
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// landingFolder 返回新视频落入的文件夹：播放列表来源文件夹，缺失时退回用户隐藏文件夹。
func (r *SyncReconciler) landingFolder(ctx context.Context, playlist *po.Playlist) (po.FolderRef, error) {
	if playlist.FolderID != nil {
		folder, err := r.folders.Get(ctx, nil, *playlist.FolderID)
		if err == nil && folder.UserID == playlist.UserID {
			return folder.Ref(), nil
		}
		if err != nil && !stderrors.Is(err, repositories.ErrFolderNotFound) {
			return po.FolderRef{}, mapStoreError(err)
		}
	}
	hidden, err := r.folders.EnsureHidden(ctx, nil, playlist.UserID)
	if err != nil {
		return po.FolderRef{}, mapStoreError(err)
	}
	return hidden.Ref(), nil
}

// linkedInScope 返回范围内带外部 id 的 routine 下标。
func linkedInScope(routines []po.Routine, index *int) ([]int, error) {
	if index != nil {
		if *index < 0 || *index >= len(routines) {
			return nil, ErrInvalidRoutineIndex.WithCause(fmt.Errorf("index %d, routines %d", *index, len(routines)))
		}
		if routines[*index].Linked() {
			return []int{*index}, nil
		}
		return nil, nil
	}
	var out []int
	for i, routine := range routines {
		if routine.Linked() {
			out = append(out, i)
		}
	}
	return out, nil
}

// ReplaceLinkedRoutines 以重建结果替换对应下标的 routine。
// 只有当前仍带相同外部 id 的下标会被替换，其余 routine 逐下标原样保留。
func ReplaceLinkedRoutines(current []po.Routine, rebuilt map[int]po.Routine) ([]po.Routine, []int) {
	out := make([]po.Routine, len(current))
	copy(out, current)
	var applied []int
	for idx := range current {
		next, ok := rebuilt[idx]
		if !ok || !current[idx].Linked() || next.ExternalPlaylistID == nil {
			continue
		}
		if *current[idx].ExternalPlaylistID != *next.ExternalPlaylistID {
			continue
		}
		out[idx] = next
		applied = append(applied, idx)
	}
	return out, applied
}
