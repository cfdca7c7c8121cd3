package services

import (
	"context"
	stderrors "errors"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
)

// ProjectionPropagator 将规范视频的变更同步到文件夹摘要与播放列表出现记录。
type ProjectionPropagator struct {
	folders   FolderStore
	playlists PlaylistStore
	metrics   *catalogMetrics
	log       *log.Helper
}

// NewProjectionPropagator 构造 ProjectionPropagator。
func NewProjectionPropagator(folders FolderStore, playlists PlaylistStore, logger log.Logger) *ProjectionPropagator {
	return &ProjectionPropagator{
		folders:   folders,
		playlists: playlists,
		metrics:   newCatalogMetrics(),
		log:       log.NewHelper(logger),
	}
}

// PropagateVideo 刷新所属文件夹的摘要；includePlaylists 为 true 时同时刷新引用该视频的播放列表。
func (p *ProjectionPropagator) PropagateVideo(ctx context.Context, sess txmanager.Session, video *po.Video, includePlaylists bool) error {
	summary := video.Summary()
	updated, err := p.folders.UpdateVideoSummary(ctx, sess, video.Folder.ID, summary)
	switch {
	case stderrors.Is(err, repositories.ErrFolderNotFound):
		p.log.WithContext(ctx).Warnf("owning folder missing during propagation: video=%s folder=%s", video.ID, video.Folder.ID)
	case err != nil:
		return mapStoreError(err)
	case !updated:
		if _, err := p.folders.PushVideo(ctx, sess, video.Folder.ID, summary); err != nil {
			return mapStoreError(err)
		}
		p.log.WithContext(ctx).Warnf("folder projection repaired: folder=%s video=%s", video.Folder.ID, video.ID)
	}
	p.metrics.recordPropagation(ctx, "folder", 1)

	if !includePlaylists {
		return nil
	}
	playlists, err := p.playlists.ListReferencingVideo(ctx, sess, video.UserID, video.ID)
	if err != nil {
		return mapStoreError(err)
	}
	refreshed := 0
	for _, playlist := range playlists {
		routines, changed := RefreshOccurrences(playlist.Routines, video)
		if !changed {
			continue
		}
		if _, err := p.playlists.UpdateRoutines(ctx, sess, playlist.ID, routines, po.TotalDuration(routines), false); err != nil {
			return mapStoreError(err)
		}
		refreshed++
	}
	p.metrics.recordPropagation(ctx, "playlist", refreshed)
	if refreshed > 0 {
		p.log.WithContext(ctx).Infof("playlist occurrences refreshed: video=%s playlists=%d", video.ID, refreshed)
	}
	return nil
}

// RefreshOccurrences 返回刷新后的 routines 副本：标题、缩略图与原始时长总是跟随规范视频，
// 时长按 覆盖 ?? 规范裁剪 重新计算。输入不被修改。
func RefreshOccurrences(routines []po.Routine, video *po.Video) ([]po.Routine, bool) {
	out := make([]po.Routine, len(routines))
	changed := false
	for i, routine := range routines {
		out[i] = po.Routine{ExternalPlaylistID: routine.ExternalPlaylistID}
		out[i].Videos = make([]po.Occurrence, len(routine.Videos))
		for j, occ := range routine.Videos {
			next := occ
			if occ.VideoID == video.ID {
				next.Title = video.Title
				next.Thumbnail = video.ThumbnailURL
				next.OriginDuration = video.OriginDuration
				if trim, err := occurrenceTrim(video.OriginDuration, occ.Start, occ.End, video.StartSec, video.EndSec, occ.Repeat); err == nil {
					next.Duration = trim.Duration
					next.Repeat = trim.Repeat
				}
				if !occurrenceEqual(next, occ) {
					changed = true
				}
			}
			out[i].Videos[j] = next
		}
	}
	return out, changed
}

func occurrenceEqual(a, b po.Occurrence) bool {
	return a.Title == b.Title && a.Thumbnail == b.Thumbnail && a.OriginDuration == b.OriginDuration &&
		a.Duration == b.Duration && a.Repeat == b.Repeat
}
