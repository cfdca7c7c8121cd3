package services

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// CopySource 描述复制来源；OwnerID 与操作者不同时累加来源的 shared_count。
type CopySource struct {
	OwnerID  uuid.UUID
	FolderID *uuid.UUID
}

// ApplyInput 是 CatalogWriter 的输入批次。
// NewFolder 非空时目标文件夹在同一事务内创建，其 ID 必须与 Target.ID 一致；
// LinkExternalPlaylist 非空时在同一事务内记录到目标文件夹。
type ApplyInput struct {
	ActorID              uuid.UUID
	Target               po.FolderRef
	Decisions            []MembershipDecision
	Source               *CopySource
	NewFolder            *repositories.CreateFolderInput
	LinkExternalPlaylist string
}

// ApplyResult 返回实际写入的计数与写入后的目标文件夹。
// Videos 与 Decisions 等长同序，均已带有规范 id 与文件夹引用。
type ApplyResult struct {
	Folder *po.Folder
	Videos []ResolvedVideo
	Counts MembershipCounts
}

// CatalogWriter 在单个事务内应用分类结果并维护文件夹投影。
// 所有写入均可重放：重复应用同一批次不会产生重复摘要或重复计数。
type CatalogWriter struct {
	videos    VideoStore
	folders   FolderStore
	txManager txmanager.Manager
	metrics   *catalogMetrics
	log       *log.Helper
}

// NewCatalogWriter 构造 CatalogWriter。
func NewCatalogWriter(videos VideoStore, folders FolderStore, tx txmanager.Manager, logger log.Logger) *CatalogWriter {
	return &CatalogWriter{
		videos:    videos,
		folders:   folders,
		txManager: tx,
		metrics:   newCatalogMetrics(),
		log:       log.NewHelper(logger),
	}
}

// Apply 写入规范视频、更新文件夹引用、维护内嵌摘要并累加来源计数。
func (w *CatalogWriter) Apply(ctx context.Context, input ApplyInput) (ApplyResult, error) {
	var result ApplyResult
	if input.NewFolder != nil && input.NewFolder.ID != input.Target.ID {
		return ApplyResult{}, fmt.Errorf("apply membership: new folder id %s does not match target %s", input.NewFolder.ID, input.Target.ID)
	}
	err := w.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		if input.NewFolder != nil {
			if _, err := w.folders.Create(txCtx, sess, *input.NewFolder); err != nil {
				return mapStoreError(err)
			}
		}
		target, err := w.folders.GetForUpdate(txCtx, sess, input.Target.ID)
		if err != nil {
			return mapStoreError(err)
		}
		if target.UserID != input.ActorID {
			return ErrOwnershipConflict.WithCause(fmt.Errorf("folder %s not owned by %s", target.ID, input.ActorID))
		}
		if input.LinkExternalPlaylist != "" {
			if err := w.folders.SetExternalPlaylist(txCtx, sess, target.ID, input.LinkExternalPlaylist); err != nil {
				return mapStoreError(err)
			}
		}
		if input.Source != nil && input.Source.FolderID != nil {
			if _, err := w.folders.Get(txCtx, sess, *input.Source.FolderID); err != nil {
				return mapStoreError(err)
			}
		}

		ref := target.Ref()
		written := make(map[string]ResolvedVideo, len(input.Decisions))
		videos := make([]ResolvedVideo, len(input.Decisions))
		var counts MembershipCounts
		var insertedExternal []string

		for i, decision := range input.Decisions {
			video := decision.Video
			switch decision.Action {
			case ActionInsert:
				stored, inserted, err := w.videos.InsertIfAbsent(txCtx, sess, repositories.InsertVideoInput{
					UserID:         input.ActorID,
					ExternalID:     video.ExternalID,
					Title:          video.Title,
					OriginDuration: video.OriginDuration,
					StartSec:       video.Start,
					EndSec:         video.End,
					Duration:       video.Duration,
					ThumbnailURL:   video.Thumbnail,
					Folder:         ref,
				})
				if err != nil {
					return mapStoreError(err)
				}
				video = mergeStored(video, stored)
				if inserted {
					counts.add(ActionInsert)
					insertedExternal = append(insertedExternal, video.ExternalID)
				} else {
					counts.add(ActionRetain)
				}
				if stored.Folder.ID == ref.ID {
					if err := w.push(txCtx, sess, ref.ID, video, inserted); err != nil {
						return err
					}
				}
			case ActionRelocate:
				stored, changed, err := w.videos.AssignFolder(txCtx, sess, video.ID, ref)
				if err != nil {
					return mapStoreError(err)
				}
				video = mergeStored(video, stored)
				if decision.From != nil && decision.From.ID != ref.ID {
					if _, err := w.folders.PullVideo(txCtx, sess, decision.From.ID, video.ID); err != nil && !stderrors.Is(err, repositories.ErrFolderNotFound) {
						return mapStoreError(err)
					}
				}
				if changed {
					counts.add(ActionRelocate)
				} else {
					counts.add(ActionRetain)
				}
				if err := w.push(txCtx, sess, ref.ID, video, changed); err != nil {
					return err
				}
			default:
				if prior, ok := written[video.ExternalID]; ok && !video.Existed {
					prior.Override, prior.Repeat = video.Override, video.Repeat
					video = prior
				}
				counts.add(ActionRetain)
				if video.Existed && video.Folder != nil && video.Folder.ID == ref.ID {
					// 补齐崩溃窗口内遗漏的摘要
					if err := w.push(txCtx, sess, ref.ID, video, false); err != nil {
						return err
					}
				}
			}
			written[video.ExternalID] = video
			videos[i] = video
		}

		if input.Source != nil && input.Source.OwnerID != input.ActorID {
			if input.Source.FolderID != nil && counts.Pushed > 0 {
				if err := w.folders.IncrementShared(txCtx, sess, *input.Source.FolderID); err != nil {
					return mapStoreError(err)
				}
			}
			if _, err := w.videos.IncrementSharedByExternalIDs(txCtx, sess, input.Source.OwnerID, insertedExternal); err != nil {
				return mapStoreError(err)
			}
		}

		folder, err := w.folders.Get(txCtx, sess, ref.ID)
		if err != nil {
			return mapStoreError(err)
		}
		result = ApplyResult{Folder: folder, Videos: videos, Counts: counts}
		return nil
	})
	if err != nil {
		w.log.WithContext(ctx).Errorf("apply catalog batch failed: actor=%s folder=%s decisions=%d err=%v",
			input.ActorID, input.Target.ID, len(input.Decisions), err)
		return ApplyResult{}, err
	}
	w.metrics.recordMembership(ctx, result.Counts)
	w.log.WithContext(ctx).Infof("catalog batch applied: folder=%s inserted=%d relocated=%d retained=%d",
		input.Target.ID, result.Counts.Inserted, result.Counts.Relocated, result.Counts.Retained)
	return result, nil
}

// push 追加摘要；expectNew=false 时的追加属于修复，仅记录日志。
func (w *CatalogWriter) push(ctx context.Context, sess txmanager.Session, folderID uuid.UUID, video ResolvedVideo, expectNew bool) error {
	pushed, err := w.folders.PushVideo(ctx, sess, folderID, video.Summary())
	if err != nil {
		return mapStoreError(err)
	}
	if pushed && !expectNew {
		w.log.WithContext(ctx).Warnf("folder projection repaired: folder=%s video=%s", folderID, video.ID)
	}
	return nil
}

// ReconcileFolder 以规范视频重建文件夹投影：保留现有顺序，移除失效条目，补齐缺失条目并刷新摘要。
func (w *CatalogWriter) ReconcileFolder(ctx context.Context, actorID, folderID uuid.UUID) (*po.Folder, error) {
	var out *po.Folder
	err := w.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		folder, err := w.folders.GetForUpdate(txCtx, sess, folderID)
		if err != nil {
			return mapStoreError(err)
		}
		if folder.UserID != actorID {
			return ErrOwnershipConflict
		}
		canonical, err := w.videos.ListByFolder(txCtx, sess, folderID)
		if err != nil {
			return mapStoreError(err)
		}
		rebuilt := ProjectFolder(folder.Videos, canonical)
		if projectionEqual(folder.Videos, rebuilt) {
			out = folder
			return nil
		}
		if err := w.folders.ReplaceVideos(txCtx, sess, folderID, rebuilt); err != nil {
			return mapStoreError(err)
		}
		w.log.WithContext(txCtx).Warnf("folder projection rebuilt: folder=%s before=%d after=%d", folderID, len(folder.Videos), len(rebuilt))
		out, err = w.folders.Get(txCtx, sess, folderID)
		return mapStoreError(err)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ProjectFolder 计算文件夹应有的摘要数组：按 current 顺序保留仍归属的视频，其余按 canonical 顺序追加。
func ProjectFolder(current []po.FolderVideo, canonical []*po.Video) []po.FolderVideo {
	byID := make(map[uuid.UUID]*po.Video, len(canonical))
	for _, v := range canonical {
		byID[v.ID] = v
	}
	out := make([]po.FolderVideo, 0, len(canonical))
	placed := make(map[uuid.UUID]struct{}, len(canonical))
	for _, item := range current {
		v, ok := byID[item.ID]
		if !ok {
			continue
		}
		if _, dup := placed[item.ID]; dup {
			continue
		}
		placed[item.ID] = struct{}{}
		out = append(out, v.Summary())
	}
	for _, v := range canonical {
		if _, ok := placed[v.ID]; ok {
			continue
		}
		placed[v.ID] = struct{}{}
		out = append(out, v.Summary())
	}
	return out
}

func projectionEqual(a, b []po.FolderVideo) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// mergeStored 以写入后的规范记录覆盖解析结果，保留调用方覆盖与重复次数。
func mergeStored(video ResolvedVideo, stored *po.Video) ResolvedVideo {
	if stored == nil {
		return video
	}
	return ResolvedFromVideo(stored, video.Override, video.Repeat)
}
