package services

import (
	"context"
	"fmt"

	"github.com/bionicotaku/lingo-services-library/internal/clients/youtube"
	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/models/vo"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// CreateFolderInput 描述新建文件夹参数。
type CreateFolderInput struct {
	UserID     uuid.UUID
	Title      string        `validate:"required,max=100"`
	Visibility po.Visibility `validate:"min=1,max=3"`
	Tags       []string      `validate:"max=10,dive,required,max=10"`
}

// UpdateFolderInput 描述文件夹元数据修改，空字段保持不变。
type UpdateFolderInput struct {
	UserID       uuid.UUID
	FolderID     uuid.UUID
	Title        *string        `validate:"omitempty,min=1,max=100"`
	Visibility   *po.Visibility `validate:"omitempty,min=1,max=3"`
	Tags         []string       `validate:"omitempty,max=10,dive,required,max=10"`
	IsBookmarked *bool
}

// ImportVideoInput 描述导入单个外部视频；FolderID 为空时导入默认文件夹。
type ImportVideoInput struct {
	UserID       uuid.UUID
	FolderID     *uuid.UUID
	ExternalID   string `validate:"required,max=64"`
	Start        *int   `validate:"omitempty,min=0"`
	End          *int   `validate:"omitempty,min=0"`
	MoveExisting bool
}

// ImportPlaylistInput 描述导入整个外部播放列表。
// CreateFolder=true 时新建文件夹（标题缺省取外部播放列表标题）；LinkFolder 记录外部 id 到已有文件夹。
type ImportPlaylistInput struct {
	UserID             uuid.UUID
	FolderID           *uuid.UUID
	ExternalPlaylistID string `validate:"required,max=64"`
	CreateFolder       bool
	FolderTitle        string        `validate:"omitempty,max=100"`
	Visibility         po.Visibility `validate:"omitempty,min=1,max=3"`
	LinkFolder         bool
	MoveExisting       bool
}

// CopyFolderInput 描述复制文件夹（可来自其他用户）。
type CopyFolderInput struct {
	ActorID        uuid.UUID
	SourceFolderID uuid.UUID
	Title          string `validate:"omitempty,max=100"`
	MoveExisting   bool
}

// FolderService 负责文件夹与导入相关用例。
type FolderService struct {
	folders   FolderStore
	videos    VideoStore
	catalog   ExternalCatalog
	resolver  *VideoResolver
	writer    *CatalogWriter
	txManager txmanager.Manager
	log       *log.Helper
}

// NewFolderService 构造 FolderService。
func NewFolderService(
	folders FolderStore,
	videos VideoStore,
	catalog ExternalCatalog,
	resolver *VideoResolver,
	writer *CatalogWriter,
	tx txmanager.Manager,
	logger log.Logger,
) *FolderService {
	return &FolderService{
		folders:   folders,
		videos:    videos,
		catalog:   catalog,
		resolver:  resolver,
		writer:    writer,
		txManager: tx,
		log:       log.NewHelper(logger),
	}
}

// CreateFolder 新建用户文件夹。
func (s *FolderService) CreateFolder(ctx context.Context, input CreateFolderInput) (*vo.Folder, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	folder, err := s.folders.Create(ctx, nil, repositories.CreateFolderInput{
		UserID:     input.UserID,
		Title:      input.Title,
		Visibility: input.Visibility,
		Tags:       input.Tags,
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	return vo.NewFolder(folder), nil
}

// GetFolder 返回文件夹；非所有者仅可读取可分享的文件夹。
func (s *FolderService) GetFolder(ctx context.Context, userID, folderID uuid.UUID) (*vo.Folder, error) {
	folder, err := s.folders.Get(ctx, nil, folderID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if folder.UserID != userID && !folder.Visibility.Shareable() {
		return nil, ErrVisibilityForbids
	}
	return vo.NewFolder(folder), nil
}

// ListFolders 返回用户的文件夹，首次访问时创建默认文件夹。
func (s *FolderService) ListFolders(ctx context.Context, userID uuid.UUID) ([]*vo.Folder, error) {
	if _, err := s.folders.EnsureDefault(ctx, nil, userID); err != nil {
		return nil, mapStoreError(err)
	}
	folders, err := s.folders.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	out := make([]*vo.Folder, 0, len(folders))
	for _, f := range folders {
		out = append(out, vo.NewFolder(f))
	}
	return out, nil
}

// UpdateFolder 修改文件夹元数据，标题或可见级别变化时刷新视频上的冗余引用。
func (s *FolderService) UpdateFolder(ctx context.Context, input UpdateFolderInput) (*vo.Folder, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	var out *po.Folder
	err := s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		folder, err := s.folders.GetForUpdate(txCtx, sess, input.FolderID)
		if err != nil {
			return mapStoreError(err)
		}
		if folder.UserID != input.UserID {
			return ErrOwnershipConflict
		}
		if folder.Visibility == po.VisibilityHidden {
			return ErrVisibilityForbids
		}
		next := repositories.UpdateFolderInput{
			ID:           folder.ID,
			Title:        valueOr(input.Title, folder.Title),
			Visibility:   valueOr(input.Visibility, folder.Visibility),
			IsBookmarked: valueOr(input.IsBookmarked, folder.IsBookmarked),
			Tags:         folder.Tags,
		}
		if input.Tags != nil {
			next.Tags = input.Tags
		}
		updated, err := s.folders.Update(txCtx, sess, next)
		if err != nil {
			return mapStoreError(err)
		}
		if updated.Title != folder.Title || updated.Visibility != folder.Visibility {
			if _, err := s.videos.RefreshFolderRef(txCtx, sess, updated.Ref()); err != nil {
				return mapStoreError(err)
			}
		}
		out = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vo.NewFolder(out), nil
}

// ImportVideo 拉取外部视频并导入目标文件夹。
func (s *FolderService) ImportVideo(ctx context.Context, input ImportVideoInput) (*vo.MembershipResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	var (
		fetched youtube.Video
		target  *po.Folder
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		video, err := s.catalog.FetchVideo(gctx, input.ExternalID)
		if err != nil {
			return mapFetchError(err)
		}
		fetched = video
		return nil
	})
	g.Go(func() error {
		folder, err := s.writableFolder(gctx, input.UserID, input.FolderID)
		if err != nil {
			return err
		}
		target = folder
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := []Candidate{CandidateFromExternal(fetched, input.Start, input.End)}
	return s.importCandidates(ctx, ApplyInput{ActorID: input.UserID, Target: target.Ref()}, candidates, input.MoveExisting)
}

// ImportPlaylist 拉取外部播放列表（含分页与时长）并批量导入。
func (s *FolderService) ImportPlaylist(ctx context.Context, input ImportPlaylistInput) (*vo.MembershipResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	var (
		fetched youtube.Playlist
		target  *po.Folder
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		playlist, err := s.catalog.FetchPlaylist(gctx, input.ExternalPlaylistID)
		if err != nil {
			return mapFetchError(err)
		}
		fetched = playlist
		return nil
	})
	if !input.CreateFolder {
		g.Go(func() error {
			folder, err := s.writableFolder(gctx, input.UserID, input.FolderID)
			if err != nil {
				return err
			}
			target = folder
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// 新建文件夹与外部关联均随批次在写入事务内完成，导入失败不留下空文件夹
	apply := ApplyInput{ActorID: input.UserID}
	switch {
	case input.CreateFolder:
		title := input.FolderTitle
		if title == "" {
			title = fetched.Title
		}
		visibility := input.Visibility
		if visibility == 0 {
			visibility = po.VisibilityOwner
		}
		externalID := fetched.ExternalID
		apply.NewFolder = &repositories.CreateFolderInput{
			ID:                 uuid.New(),
			UserID:             input.UserID,
			Title:              title,
			ExternalPlaylistID: &externalID,
			Visibility:         visibility,
		}
		apply.Target = po.FolderRef{ID: apply.NewFolder.ID, Title: title, Visibility: visibility}
	case input.LinkFolder:
		apply.Target = target.Ref()
		apply.LinkExternalPlaylist = fetched.ExternalID
	default:
		apply.Target = target.Ref()
	}

	return s.importCandidates(ctx, apply, CandidatesFromPlaylist(fetched), input.MoveExisting)
}

// CopyFolder 将来源文件夹的视频复制到操作者新建的文件夹中。
func (s *FolderService) CopyFolder(ctx context.Context, input CopyFolderInput) (*vo.MembershipResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	source, err := s.folders.Get(ctx, nil, input.SourceFolderID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if source.UserID != input.ActorID && !source.Visibility.Shareable() {
		return nil, ErrVisibilityForbids
	}
	canonical, err := s.videos.ListByFolder(ctx, nil, source.ID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	title := input.Title
	if title == "" {
		title = source.Title
	}
	created := &repositories.CreateFolderInput{
		ID:         uuid.New(),
		UserID:     input.ActorID,
		Title:      title,
		Visibility: po.VisibilityOwner,
		Tags:       source.Tags,
	}

	ordered := orderByProjection(source.Videos, canonical)
	candidates := make([]Candidate, 0, len(ordered))
	for _, v := range ordered {
		candidates = append(candidates, CandidateFromVideo(v))
	}
	sourceID := source.ID
	return s.importCandidates(ctx, ApplyInput{
		ActorID:   input.ActorID,
		Target:    po.FolderRef{ID: created.ID, Title: created.Title, Visibility: created.Visibility},
		NewFolder: created,
		Source:    &CopySource{OwnerID: source.UserID, FolderID: &sourceID},
	}, candidates, input.MoveExisting)
}

// ReconcileFolder 以规范视频修复文件夹投影。
func (s *FolderService) ReconcileFolder(ctx context.Context, userID, folderID uuid.UUID) (*vo.Folder, error) {
	folder, err := s.writer.ReconcileFolder(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}
	return vo.NewFolder(folder), nil
}

// importCandidates 解析并分类候选后交给 CatalogWriter；解析或裁剪校验失败时不产生任何写入。
func (s *FolderService) importCandidates(ctx context.Context, apply ApplyInput, candidates []Candidate, moveExisting bool) (*vo.MembershipResult, error) {
	resolved, err := s.resolver.Resolve(ctx, apply.ActorID, candidates)
	if err != nil {
		return nil, err
	}
	var planned MembershipCounts
	apply.Decisions, planned = ClassifyBatch(resolved, apply.Target, moveExisting)
	applied, err := s.writer.Apply(ctx, apply)
	if err != nil {
		return nil, err
	}
	if applied.Counts != planned {
		s.log.WithContext(ctx).Infof("membership plan diverged from applied result: folder=%s planned=%+v applied=%+v",
			apply.Target.ID, planned, applied.Counts)
	}
	return membershipResult(applied), nil
}

// writableFolder 返回操作者可写入的目标文件夹；folderID 为空时返回默认文件夹。
func (s *FolderService) writableFolder(ctx context.Context, userID uuid.UUID, folderID *uuid.UUID) (*po.Folder, error) {
	return resolveWritableFolder(ctx, s.folders, userID, folderID)
}

func resolveWritableFolder(ctx context.Context, folders FolderStore, userID uuid.UUID, folderID *uuid.UUID) (*po.Folder, error) {
	if folderID == nil {
		folder, err := folders.EnsureDefault(ctx, nil, userID)
		if err != nil {
			return nil, mapStoreError(err)
		}
		return folder, nil
	}
	folder, err := folders.Get(ctx, nil, *folderID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if folder.UserID != userID {
		return nil, ErrOwnershipConflict.WithCause(fmt.Errorf("folder %s not owned by %s", folder.ID, userID))
	}
	if folder.Visibility == po.VisibilityHidden {
		return nil, ErrVisibilityForbids
	}
	return folder, nil
}

func membershipResult(applied ApplyResult) *vo.MembershipResult {
	return &vo.MembershipResult{
		Folder:         vo.NewFolder(applied.Folder),
		InsertedCount:  applied.Counts.Inserted,
		RelocatedCount: applied.Counts.Relocated,
		RetainedCount:  applied.Counts.Retained,
		PushedCount:    applied.Counts.Pushed,
	}
}

// orderByProjection 按文件夹摘要顺序排列规范视频，摘要中缺失的视频追加在后。
func orderByProjection(summaries []po.FolderVideo, canonical []*po.Video) []*po.Video {
	byID := make(map[uuid.UUID]*po.Video, len(canonical))
	for _, v := range canonical {
		byID[v.ID] = v
	}
	out := make([]*po.Video, 0, len(canonical))
	for _, item := range summaries {
		if v, ok := byID[item.ID]; ok {
			out = append(out, v)
			delete(byID, item.ID)
		}
	}
	for _, v := range canonical {
		if _, ok := byID[v.ID]; ok {
			out = append(out, v)
		}
	}
	return out
}

func valueOr[T any](value *T, fallback T) T {
	if value == nil {
		return fallback
	}
	return *value
}
