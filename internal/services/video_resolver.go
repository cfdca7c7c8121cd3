package services

import (
	"context"
	"fmt"

	"github.com/bionicotaku/lingo-services-library/internal/clients/youtube"
	"github.com/bionicotaku/lingo-services-library/internal/models/po"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// TrimOverride 是调用方针对单次出现指定的裁剪覆盖，与规范 Video 的裁剪相互独立。
type TrimOverride struct {
	Start *int
	End   *int
}

// Empty 判断覆盖是否未指定任何端点。
func (o *TrimOverride) Empty() bool {
	return o == nil || (o.Start == nil && o.End == nil)
}

// Candidate 是待入库的外部视频记录，尚未关联规范 id。
// Start/End 为新建规范视频时使用的裁剪；Override 仅作用于播放列表中的出现。
type Candidate struct {
	ExternalID     string
	Title          string
	Thumbnail      string
	OriginDuration int
	Start          *int
	End            *int
	Override       *TrimOverride
	Repeat         int
}

// ResolvedVideo 是解析后的不可变视频记录。
// Existed=true 时 ID/标题/时长/裁剪/文件夹引用均取自规范记录。
type ResolvedVideo struct {
	ID             uuid.UUID
	ExternalID     string
	Title          string
	Thumbnail      string
	OriginDuration int
	Start          *int
	End            *int
	Duration       int
	IsBookmarked   bool
	Folder         *po.FolderRef
	Existed        bool
	Override       *TrimOverride
	Repeat         int
}

// Summary 构造文件夹内嵌摘要。
func (v ResolvedVideo) Summary() po.FolderVideo {
	return po.FolderVideo{
		ID:           v.ID,
		Title:        v.Title,
		Duration:     v.Duration,
		Thumbnail:    v.Thumbnail,
		IsBookmarked: v.IsBookmarked,
	}
}

// CandidateFromExternal 将外部视频转换为候选记录，start/end 为调用方指定的裁剪。
func CandidateFromExternal(video youtube.Video, start, end *int) Candidate {
	return Candidate{
		ExternalID:     video.ExternalID,
		Title:          video.Title,
		Thumbnail:      video.Thumbnail,
		OriginDuration: video.OriginDuration,
		Start:          copyInt(start),
		End:            copyInt(end),
		Repeat:         1,
	}
}

// CandidatesFromPlaylist 将外部播放列表条目转换为候选记录。
// 条目自带的起止提示既作为新建视频的裁剪，也作为出现级覆盖保留。
func CandidatesFromPlaylist(playlist youtube.Playlist) []Candidate {
	out := make([]Candidate, 0, len(playlist.Items))
	for _, item := range playlist.Items {
		candidate := Candidate{
			ExternalID:     item.ExternalID,
			Title:          item.Title,
			Thumbnail:      item.Thumbnail,
			OriginDuration: item.OriginDuration,
			Start:          copyInt(item.Start),
			End:            copyInt(item.End),
			Repeat:         1,
		}
		if item.Start != nil || item.End != nil {
			candidate.Override = &TrimOverride{Start: copyInt(item.Start), End: copyInt(item.End)}
		}
		out = append(out, candidate)
	}
	return out
}

// CandidateFromVideo 以他人的规范视频为模板构造候选记录（复制场景）。
func CandidateFromVideo(video *po.Video) Candidate {
	return Candidate{
		ExternalID:     video.ExternalID,
		Title:          video.Title,
		Thumbnail:      video.ThumbnailURL,
		OriginDuration: video.OriginDuration,
		Start:          copyInt(video.StartSec),
		End:            copyInt(video.EndSec),
		Repeat:         1,
	}
}

// ResolvedFromVideo 将已加载的规范视频直接视为解析结果。
func ResolvedFromVideo(video *po.Video, override *TrimOverride, repeat int) ResolvedVideo {
	ref := video.Folder
	return ResolvedVideo{
		ID:             video.ID,
		ExternalID:     video.ExternalID,
		Title:          video.Title,
		Thumbnail:      video.ThumbnailURL,
		OriginDuration: video.OriginDuration,
		Start:          copyInt(video.StartSec),
		End:            copyInt(video.EndSec),
		Duration:       video.Duration,
		IsBookmarked:   video.IsBookmarked,
		Folder:         &ref,
		Existed:        true,
		Override:       cloneOverride(override),
		Repeat:         repeat,
	}
}

// VideoResolver 判断候选视频是否已存在于用户目录中，并合并规范记录。
type VideoResolver struct {
	videos VideoStore
	log    *log.Helper
}

// NewVideoResolver 构造 VideoResolver。
func NewVideoResolver(videos VideoStore, logger log.Logger) *VideoResolver {
	return &VideoResolver{
		videos: videos,
		log:    log.NewHelper(logger),
	}
}

// Resolve 以一次批量查询解析候选集合，返回与输入等长、同序的新记录，不修改输入。
func (r *VideoResolver) Resolve(ctx context.Context, userID uuid.UUID, candidates []Candidate) ([]ResolvedVideo, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for i, c := range candidates {
		if c.ExternalID == "" {
			return nil, validationError("candidate %d: external id required", i)
		}
		if _, ok := seen[c.ExternalID]; ok {
			continue
		}
		seen[c.ExternalID] = struct{}{}
		ids = append(ids, c.ExternalID)
	}

	existing, err := r.videos.FindByExternalIDs(ctx, nil, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve videos: %w", mapStoreError(err))
	}
	byExternal := make(map[string]*po.Video, len(existing))
	for _, v := range existing {
		byExternal[v.ExternalID] = v
	}

	out := make([]ResolvedVideo, 0, len(candidates))
	for _, c := range candidates {
		repeat := c.Repeat
		if repeat <= 0 {
			repeat = 1
		}
		if hit, ok := byExternal[c.ExternalID]; ok {
			out = append(out, ResolvedFromVideo(hit, c.Override, repeat))
			continue
		}
		trim, err := ComputeTrim(c.OriginDuration, c.Start, c.End, repeat)
		if err != nil {
			return nil, err
		}
		out = append(out, ResolvedVideo{
			ExternalID:     c.ExternalID,
			Title:          c.Title,
			Thumbnail:      c.Thumbnail,
			OriginDuration: c.OriginDuration,
			Start:          trim.Start,
			End:            trim.End,
			Duration:       trim.Duration,
			Override:       cloneOverride(c.Override),
			Repeat:         repeat,
		})
	}
	r.log.WithContext(ctx).Debugf("resolved videos: user=%s candidates=%d existing=%d", userID, len(candidates), len(existing))
	return out, nil
}

func cloneOverride(o *TrimOverride) *TrimOverride {
	if o == nil {
		return nil
	}
	return &TrimOverride{Start: copyInt(o.Start), End: copyInt(o.End)}
}
