package services

import (
	"context"
	"fmt"

	"github.com/bionicotaku/lingo-services-library/internal/clients/youtube"
	"github.com/bionicotaku/lingo-services-library/internal/models/po"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// BuiltRoutine 是 RoutineBuilder 的输出：一个 routine 及其时长贡献。
type BuiltRoutine struct {
	Routine po.Routine
	Total   int
}

// IngestResult 是外部播放列表入库后的结果。
type IngestResult struct {
	Built  BuiltRoutine
	Folder *po.Folder
	Counts MembershipCounts
}

// RoutineBuilder 由规范视频或外部播放列表构造 routine。
type RoutineBuilder struct {
	resolver *VideoResolver
	writer   *CatalogWriter
	log      *log.Helper
}

// NewRoutineBuilder 构造 RoutineBuilder。
func NewRoutineBuilder(resolver *VideoResolver, writer *CatalogWriter, logger log.Logger) *RoutineBuilder {
	return &RoutineBuilder{
		resolver: resolver,
		writer:   writer,
		log:      log.NewHelper(logger),
	}
}

// FromVideos 由已解析的规范视频构造 routine，每次出现的时长取 覆盖 ?? 规范裁剪。
func (b *RoutineBuilder) FromVideos(externalPlaylistID *string, videos []ResolvedVideo) (BuiltRoutine, error) {
	return BuildRoutine(externalPlaylistID, videos)
}

// FromExternalPlaylist 将外部播放列表解析入库到 target 文件夹，再构造带外部 id 的 routine。
// 已存在的视频保持原归属，新视频插入 target。
func (b *RoutineBuilder) FromExternalPlaylist(ctx context.Context, userID uuid.UUID, target po.FolderRef, playlist youtube.Playlist) (IngestResult, error) {
	resolved, err := b.resolver.Resolve(ctx, userID, CandidatesFromPlaylist(playlist))
	if err != nil {
		return IngestResult{}, err
	}
	decisions, _ := ClassifyBatch(resolved, target, false)
	applied, err := b.writer.Apply(ctx, ApplyInput{
		ActorID:   userID,
		Target:    target,
		Decisions: decisions,
	})
	if err != nil {
		return IngestResult{}, err
	}
	externalID := playlist.ExternalID
	built, err := BuildRoutine(&externalID, applied.Videos)
	if err != nil {
		return IngestResult{}, err
	}
	b.log.WithContext(ctx).Debugf("routine built from external playlist: playlist=%s occurrences=%d total=%d",
		playlist.ExternalID, len(built.Routine.Videos), built.Total)
	return IngestResult{Built: built, Folder: applied.Folder, Counts: applied.Counts}, nil
}

// BuildRoutine 是 RoutineBuilder 的纯函数核心，所有视频必须已带规范 id。
func BuildRoutine(externalPlaylistID *string, videos []ResolvedVideo) (BuiltRoutine, error) {
	routine := po.Routine{Videos: make([]po.Occurrence, 0, len(videos))}
	if externalPlaylistID != nil && *externalPlaylistID != "" {
		id := *externalPlaylistID
		routine.ExternalPlaylistID = &id
	}
	total := 0
	for i, video := range videos {
		if video.ID == uuid.Nil {
			return BuiltRoutine{}, validationError("occurrence %d: video %s has no canonical id", i, video.ExternalID)
		}
		occ, err := buildOccurrence(video)
		if err != nil {
			return BuiltRoutine{}, fmt.Errorf("occurrence %d: %w", i, err)
		}
		routine.Videos = append(routine.Videos, occ)
		total += occ.Duration * occ.Repeat
	}
	return BuiltRoutine{Routine: routine, Total: total}, nil
}

func buildOccurrence(video ResolvedVideo) (po.Occurrence, error) {
	var start, end *int
	if video.Override != nil {
		start, end = video.Override.Start, video.Override.End
	}
	trim, err := occurrenceTrim(video.OriginDuration, start, end, video.Start, video.End, video.Repeat)
	if err != nil {
		return po.Occurrence{}, err
	}
	return po.Occurrence{
		VideoID:        video.ID,
		ExternalID:     video.ExternalID,
		Title:          video.Title,
		OriginDuration: video.OriginDuration,
		Start:          copyInt(start),
		End:            copyInt(end),
		Duration:       trim.Duration,
		Repeat:         trim.Repeat,
		Thumbnail:      video.Thumbnail,
	}, nil
}

// occurrenceTrim 逐端点合并覆盖与规范裁剪；合并后区间非法时整体采用覆盖区间。
func occurrenceTrim(origin int, overrideStart, overrideEnd, canonicalStart, canonicalEnd *int, repeat int) (Trim, error) {
	trim, err := ComputeTrim(origin, pickTrim(overrideStart, canonicalStart), pickTrim(overrideEnd, canonicalEnd), repeat)
	if err == nil || (overrideStart == nil && overrideEnd == nil) {
		return trim, err
	}
	return ComputeTrim(origin, overrideStart, overrideEnd, repeat)
}
