package services

import (
	"context"
	"fmt"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/models/vo"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// OccurrenceInput 描述 routine 中的一次视频出现。
type OccurrenceInput struct {
	VideoID uuid.UUID
	Start   *int `validate:"omitempty,min=0"`
	End     *int `validate:"omitempty,min=0"`
	Repeat  int  `validate:"min=0,max=100"`
}

// RoutineInput 描述由已有视频组成的 routine。
type RoutineInput struct {
	ExternalPlaylistID *string
	Videos             []OccurrenceInput `validate:"dive"`
}

// CreatePlaylistInput 描述新建播放列表；ExternalPlaylistID 非空时先导入该外部播放列表作为首个 routine。
type CreatePlaylistInput struct {
	UserID              uuid.UUID
	Title               string        `validate:"required,max=100"`
	Visibility          po.Visibility `validate:"min=1,max=3"`
	FolderID            *uuid.UUID
	Tags                []string       `validate:"max=10,dive,required,max=10"`
	SuccessNotification *string        `validate:"omitempty,min=1,max=50"`
	FailNotification    *string        `validate:"omitempty,min=1,max=50"`
	Routines            []RoutineInput `validate:"dive"`
	ExternalPlaylistID  string         `validate:"omitempty,max=64"`
}

// CopyPlaylistInput 描述复制播放列表。
type CopyPlaylistInput struct {
	ActorID    uuid.UUID
	PlaylistID uuid.UUID
	FolderID   *uuid.UUID
	Title      string `validate:"omitempty,max=100"`
}

// UpdatePlaylistInput 描述播放列表修改，空字段保持不变；Routines 非空时整体替换。
type UpdatePlaylistInput struct {
	UserID              uuid.UUID
	PlaylistID          uuid.UUID
	Title               *string        `validate:"omitempty,min=1,max=100"`
	Visibility          *po.Visibility `validate:"omitempty,min=1,max=3"`
	Tags                []string       `validate:"omitempty,max=10,dive,required,max=10"`
	SuccessNotification *string        `validate:"omitempty,min=1,max=50"`
	FailNotification    *string        `validate:"omitempty,min=1,max=50"`
	IsBookmarked        *bool
	Routines            []RoutineInput `validate:"omitempty,dive"`
}

// PlaylistService 负责播放列表用例。
type PlaylistService struct {
	playlists  PlaylistStore
	videos     VideoStore
	folders    FolderStore
	catalog    ExternalCatalog
	resolver   *VideoResolver
	writer     *CatalogWriter
	builder    *RoutineBuilder
	reconciler *SyncReconciler
	txManager  txmanager.Manager
	log        *log.Helper
}

// NewPlaylistService 构造 PlaylistService。
func NewPlaylistService(
	playlists PlaylistStore,
	videos VideoStore,
	folders FolderStore,
	catalog ExternalCatalog,
	resolver *VideoResolver,
	writer *CatalogWriter,
	builder *RoutineBuilder,
	reconciler *SyncReconciler,
	tx txmanager.Manager,
	logger log.Logger,
) *PlaylistService {
	return &PlaylistService{
		playlists:  playlists,
		videos:     videos,
		folders:    folders,
		catalog:    catalog,
		resolver:   resolver,
		writer:     writer,
		builder:    builder,
		reconciler: reconciler,
		txManager:  tx,
		log:        log.NewHelper(logger),
	}
}

// CreatePlaylist 由外部播放列表和/或已有视频构造播放列表。
func (s *PlaylistService) CreatePlaylist(ctx context.Context, input CreatePlaylistInput) (*vo.Playlist, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.ExternalPlaylistID == "" && len(input.Routines) == 0 {
		return nil, validationError("create playlist: routines or external playlist id required")
	}

	// 手工 routine 先校验，外部拉取与入库放在最后，校验失败不留下任何写入
	curated, err := s.buildCurated(ctx, nil, input.UserID, input.Routines)
	if err != nil {
		return nil, err
	}

	routines := make([]po.Routine, 0, len(curated)+1)
	if input.ExternalPlaylistID != "" {
		target, err := s.landingFolder(ctx, input.UserID, input.FolderID)
		if err != nil {
			return nil, err
		}
		fetched, err := s.catalog.FetchPlaylist(ctx, input.ExternalPlaylistID)
		if err != nil {
			return nil, mapFetchError(err)
		}
		ingest, err := s.builder.FromExternalPlaylist(ctx, input.UserID, target, fetched)
		if err != nil {
			return nil, err
		}
		routines = append(routines, ingest.Built.Routine)
	}
	routines = append(routines, curated...)

	created, err := s.playlists.Create(ctx, nil, repositories.CreatePlaylistInput{
		UserID:              input.UserID,
		Title:               input.Title,
		Visibility:          input.Visibility,
		FolderID:            input.FolderID,
		Tags:                input.Tags,
		Duration:            po.TotalDuration(routines),
		Routines:            routines,
		SuccessNotification: input.SuccessNotification,
		FailNotification:    input.FailNotification,
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	return vo.NewPlaylist(created), nil
}

// CopyPlaylist 复制播放列表；复制他人的播放列表时先将其视频导入操作者目录。
func (s *PlaylistService) CopyPlaylist(ctx context.Context, input CopyPlaylistInput) (*vo.Playlist, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	source, err := s.playlists.Get(ctx, nil, input.PlaylistID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	owner := source.UserID == input.ActorID
	if !owner && !source.Visibility.Shareable() {
		return nil, ErrVisibilityForbids
	}

	routines := source.Routines
	if !owner {
		target, err := s.landingFolder(ctx, input.ActorID, input.FolderID)
		if err != nil {
			return nil, err
		}
		routines, err = s.importRoutines(ctx, input.ActorID, source.UserID, target, source.Routines)
		if err != nil {
			return nil, err
		}
	}

	title := input.Title
	if title == "" {
		title = source.Title
	}
	created, err := s.playlists.Create(ctx, nil, repositories.CreatePlaylistInput{
		UserID:              input.ActorID,
		Title:               title,
		Visibility:          po.VisibilityOwner,
		FolderID:            input.FolderID,
		Tags:                source.Tags,
		Duration:            po.TotalDuration(routines),
		Routines:            routines,
		SuccessNotification: source.SuccessNotification,
		FailNotification:    source.FailNotification,
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	if !owner {
		if err := s.playlists.IncrementShared(ctx, nil, source.ID); err != nil {
			s.log.WithContext(ctx).Warnf("increment playlist shared count failed: playlist=%s err=%v", source.ID, err)
		}
	}
	return vo.NewPlaylist(created), nil
}

// UpdatePlaylist 修改播放列表元数据或整体替换 routines 并重新计算总时长。
func (s *PlaylistService) UpdatePlaylist(ctx context.Context, input UpdatePlaylistInput) (*vo.Playlist, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	var out *po.Playlist
	err := s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		current, err := s.playlists.GetForUpdate(txCtx, sess, input.PlaylistID)
		if err != nil {
			return mapStoreError(err)
		}
		if current.UserID != input.UserID {
			return ErrOwnershipConflict
		}
		next := *current
		next.Title = valueOr(input.Title, current.Title)
		next.Visibility = valueOr(input.Visibility, current.Visibility)
		next.IsBookmarked = valueOr(input.IsBookmarked, current.IsBookmarked)
		if input.Tags != nil {
			next.Tags = input.Tags
		}
		if input.SuccessNotification != nil {
			next.SuccessNotification = input.SuccessNotification
		}
		if input.FailNotification != nil {
			next.FailNotification = input.FailNotification
		}
		if input.Routines != nil {
			routines, err := s.buildCurated(txCtx, sess, input.UserID, input.Routines)
			if err != nil {
				return err
			}
			next.Routines = routines
			next.Duration = po.TotalDuration(routines)
		}
		saved, err := s.playlists.Save(txCtx, sess, &next)
		if err != nil {
			return mapStoreError(err)
		}
		out = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vo.NewPlaylist(out), nil
}

// GetPlaylist 返回播放列表；非所有者仅可读取可分享的播放列表。
func (s *PlaylistService) GetPlaylist(ctx context.Context, userID, playlistID uuid.UUID) (*vo.Playlist, error) {
	playlist, err := s.playlists.Get(ctx, nil, playlistID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if playlist.UserID != userID && !playlist.Visibility.Shareable() {
		return nil, ErrVisibilityForbids
	}
	return vo.NewPlaylist(playlist), nil
}

// ListPlaylists 返回用户的播放列表。
func (s *PlaylistService) ListPlaylists(ctx context.Context, userID uuid.UUID) ([]*vo.Playlist, error) {
	playlists, err := s.playlists.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	out := make([]*vo.Playlist, 0, len(playlists))
	for _, p := range playlists {
		out = append(out, vo.NewPlaylist(p))
	}
	return out, nil
}

// SyncPlaylist 触发外部关联 routine 的同步。
func (s *PlaylistService) SyncPlaylist(ctx context.Context, input SyncInput) (*vo.SyncResult, error) {
	result, err := s.reconciler.SyncPlaylist(ctx, input)
	if err != nil {
		return nil, err
	}
	rebuilt := result.Rebuilt
	if rebuilt == nil {
		rebuilt = []int{}
	}
	return &vo.SyncResult{
		Outcome:        result.Outcome.String(),
		Playlist:       vo.NewPlaylist(result.Playlist),
		RebuiltIndexes: rebuilt,
		InsertedCount:  result.Inserted,
	}, nil
}

// buildCurated 由已有视频构造 routines，引用的视频必须属于该用户。
func (s *PlaylistService) buildCurated(ctx context.Context, sess txmanager.Session, userID uuid.UUID, inputs []RoutineInput) ([]po.Routine, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	seen := make(map[uuid.UUID]struct{})
	for _, routine := range inputs {
		for _, occ := range routine.Videos {
			if _, ok := seen[occ.VideoID]; ok {
				continue
			}
			seen[occ.VideoID] = struct{}{}
			ids = append(ids, occ.VideoID)
		}
	}
	videos, err := s.videos.ListByIDs(ctx, sess, userID, ids)
	if err != nil {
		return nil, mapStoreError(err)
	}
	byID := make(map[uuid.UUID]*po.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}

	routines := make([]po.Routine, 0, len(inputs))
	for i, routine := range inputs {
		resolved := make([]ResolvedVideo, 0, len(routine.Videos))
		for _, occ := range routine.Videos {
			video, ok := byID[occ.VideoID]
			if !ok {
				return nil, ErrVideoNotFound.WithCause(fmt.Errorf("routine %d references video %s", i, occ.VideoID))
			}
			var override *TrimOverride
			if occ.Start != nil || occ.End != nil {
				override = &TrimOverride{Start: occ.Start, End: occ.End}
			}
			resolved = append(resolved, ResolvedFromVideo(video, override, occ.Repeat))
		}
		built, err := s.builder.FromVideos(routine.ExternalPlaylistID, resolved)
		if err != nil {
			return nil, err
		}
		routines = append(routines, built.Routine)
	}
	return routines, nil
}

// importRoutines 将他人播放列表中的出现导入 actor 的目录，并按原结构重建 routines。
// 新建视频沿用所有者规范视频的裁剪；所有者视频已不存在时退回出现上的快照。
func (s *PlaylistService) importRoutines(ctx context.Context, actorID, ownerID uuid.UUID, target po.FolderRef, source []po.Routine) ([]po.Routine, error) {
	owned, err := s.ownerVideos(ctx, ownerID, source)
	if err != nil {
		return nil, err
	}
	var candidates []Candidate
	for _, routine := range source {
		for _, occ := range routine.Videos {
			var candidate Candidate
			if video, ok := owned[occ.VideoID]; ok {
				candidate = CandidateFromVideo(video)
				candidate.Repeat = occ.Repeat
			} else {
				candidate = Candidate{
					ExternalID:     occ.ExternalID,
					Title:          occ.Title,
					Thumbnail:      occ.Thumbnail,
					OriginDuration: occ.OriginDuration,
					Repeat:         occ.Repeat,
				}
			}
			if occ.Start != nil || occ.End != nil {
				candidate.Override = &TrimOverride{Start: copyInt(occ.Start), End: copyInt(occ.End)}
			}
			candidates = append(candidates, candidate)
		}
	}
	if len(candidates) == 0 {
		out := make([]po.Routine, len(source))
		copy(out, source)
		return out, nil
	}
	resolved, err := s.resolver.Resolve(ctx, actorID, candidates)
	if err != nil {
		return nil, err
	}
	decisions, _ := ClassifyBatch(resolved, target, false)
	applied, err := s.writer.Apply(ctx, ApplyInput{
		ActorID:   actorID,
		Target:    target,
		Decisions: decisions,
		Source:    &CopySource{OwnerID: ownerID},
	})
	if err != nil {
		return nil, err
	}

	routines := make([]po.Routine, 0, len(source))
	offset := 0
	for _, routine := range source {
		n := len(routine.Videos)
		built, err := s.builder.FromVideos(routine.ExternalPlaylistID, applied.Videos[offset:offset+n])
		if err != nil {
			return nil, err
		}
		offset += n
		routines = append(routines, built.Routine)
	}
	return routines, nil
}

// ownerVideos 批量加载来源播放列表引用的所有者规范视频，按 id 索引。
func (s *PlaylistService) ownerVideos(ctx context.Context, ownerID uuid.UUID, source []po.Routine) (map[uuid.UUID]*po.Video, error) {
	var ids []uuid.UUID
	seen := make(map[uuid.UUID]struct{})
	for _, routine := range source {
		for _, occ := range routine.Videos {
			if _, ok := seen[occ.VideoID]; ok {
				continue
			}
			seen[occ.VideoID] = struct{}{}
			ids = append(ids, occ.VideoID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	videos, err := s.videos.ListByIDs(ctx, nil, ownerID, ids)
	if err != nil {
		return nil, mapStoreError(err)
	}
	out := make(map[uuid.UUID]*po.Video, len(videos))
	for _, v := range videos {
		out[v.ID] = v
	}
	return out, nil
}

// landingFolder 返回新视频落入的文件夹：指定文件夹或用户隐藏文件夹。
func (s *PlaylistService) landingFolder(ctx context.Context, userID uuid.UUID, folderID *uuid.UUID) (po.FolderRef, error) {
	if folderID != nil {
		folder, err := resolveWritableFolder(ctx, s.folders, userID, folderID)
		if err != nil {
			return po.FolderRef{}, err
		}
		return folder.Ref(), nil
	}
	hidden, err := s.folders.EnsureHidden(ctx, nil, userID)
	if err != nil {
		return po.FolderRef{}, mapStoreError(err)
	}
	return hidden.Ref(), nil
}
