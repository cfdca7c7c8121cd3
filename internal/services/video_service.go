package services

import (
	"context"
	stderrors "errors"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/models/vo"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// MoveVideoInput 描述在同一用户的两个文件夹间移动视频。
type MoveVideoInput struct {
	UserID         uuid.UUID
	VideoID        uuid.UUID
	TargetFolderID uuid.UUID
}

// CopyVideoInput 描述从其他用户处复制视频；TargetFolderID 为空时复制到默认文件夹。
type CopyVideoInput struct {
	ActorID        uuid.UUID
	VideoID        uuid.UUID
	TargetFolderID *uuid.UUID
	MoveExisting   bool
}

// EditVideoInput 描述视频编辑；Trim 非空时整体替换裁剪区间（端点为空表示清除）。
type EditVideoInput struct {
	UserID  uuid.UUID
	VideoID uuid.UUID
	Title   *string `validate:"omitempty,min=1,max=100"`
	Tags    *[]string
	Trim    *TrimOverride
}

// VideoService 负责规范视频的读取、移动、复制与编辑。
type VideoService struct {
	videos     VideoStore
	folders    FolderStore
	resolver   *VideoResolver
	writer     *CatalogWriter
	propagator *ProjectionPropagator
	txManager  txmanager.Manager
	log        *log.Helper
}

// NewVideoService 构造 VideoService。
func NewVideoService(
	videos VideoStore,
	folders FolderStore,
	resolver *VideoResolver,
	writer *CatalogWriter,
	propagator *ProjectionPropagator,
	tx txmanager.Manager,
	logger log.Logger,
) *VideoService {
	return &VideoService{
		videos:     videos,
		folders:    folders,
		resolver:   resolver,
		writer:     writer,
		propagator: propagator,
		txManager:  tx,
		log:        log.NewHelper(logger),
	}
}

// GetVideo 返回视频详情；非所有者仅可读取位于可分享文件夹中的视频。
func (s *VideoService) GetVideo(ctx context.Context, userID, videoID uuid.UUID) (*vo.Video, error) {
	video, err := s.videos.Get(ctx, nil, videoID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if video.UserID != userID && !video.Folder.Visibility.Shareable() {
		return nil, ErrVisibilityForbids
	}
	return vo.NewVideo(video), nil
}

// MoveVideo 将视频迁移到同一用户的另一个文件夹。
func (s *VideoService) MoveVideo(ctx context.Context, input MoveVideoInput) (*vo.MembershipResult, error) {
	video, err := s.videos.Get(ctx, nil, input.VideoID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if video.UserID != input.UserID {
		return nil, ErrOwnershipConflict
	}
	if video.Folder.ID == input.TargetFolderID {
		return nil, ErrAlreadyInFolder
	}
	targetID := input.TargetFolderID
	target, err := resolveWritableFolder(ctx, s.folders, input.UserID, &targetID)
	if err != nil {
		return nil, err
	}

	from := video.Folder
	applied, err := s.writer.Apply(ctx, ApplyInput{
		ActorID: input.UserID,
		Target:  target.Ref(),
		Decisions: []MembershipDecision{{
			Action: ActionRelocate,
			Video:  ResolvedFromVideo(video, nil, 1),
			From:   &from,
		}},
	})
	if err != nil {
		return nil, err
	}
	return membershipResult(applied), nil
}

// CopyVideo 复制其他用户的视频到操作者的文件夹，并累加来源视频的 shared_count。
func (s *VideoService) CopyVideo(ctx context.Context, input CopyVideoInput) (*vo.MembershipResult, error) {
	source, err := s.videos.Get(ctx, nil, input.VideoID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if source.UserID == input.ActorID {
		return nil, ErrOwnershipConflict.WithCause(stderrors.New("cannot copy own video"))
	}
	if !source.Folder.Visibility.Shareable() {
		return nil, ErrVisibilityForbids
	}
	target, err := resolveWritableFolder(ctx, s.folders, input.ActorID, input.TargetFolderID)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolver.Resolve(ctx, input.ActorID, []Candidate{CandidateFromVideo(source)})
	if err != nil {
		return nil, err
	}
	decisions, _ := ClassifyBatch(resolved, target.Ref(), input.MoveExisting)
	applied, err := s.writer.Apply(ctx, ApplyInput{
		ActorID:   input.ActorID,
		Target:    target.Ref(),
		Decisions: decisions,
		Source:    &CopySource{OwnerID: source.UserID},
	})
	if err != nil {
		return nil, err
	}
	return membershipResult(applied), nil
}

// EditVideo 修改标题、标签或裁剪区间，并将变更传播到文件夹摘要与播放列表出现记录。
func (s *VideoService) EditVideo(ctx context.Context, input EditVideoInput) (*vo.Video, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.Tags != nil {
		if err := validate.Var(*input.Tags, "max=10,dive,required,max=10"); err != nil {
			return nil, validationError("invalid tags: %v", err)
		}
	}
	if input.Title == nil && input.Tags == nil && input.Trim == nil {
		return nil, validationError("edit video: no changes provided")
	}

	var out *po.Video
	err := s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		video, err := s.videos.Get(txCtx, sess, input.VideoID)
		if err != nil {
			return mapStoreError(err)
		}
		if video.UserID != input.UserID {
			return ErrOwnershipConflict
		}

		next := repositories.UpdateVideoInput{
			ID:           video.ID,
			Title:        valueOr(input.Title, video.Title),
			Tags:         valueOr(input.Tags, video.Tags),
			StartSec:     video.StartSec,
			EndSec:       video.EndSec,
			Duration:     video.Duration,
			IsBookmarked: video.IsBookmarked,
		}
		if input.Trim != nil {
			trim, err := ComputeTrim(video.OriginDuration, input.Trim.Start, input.Trim.End, 1)
			if err != nil {
				return err
			}
			next.StartSec, next.EndSec, next.Duration = trim.Start, trim.End, trim.Duration
		}

		updated, err := s.videos.Update(txCtx, sess, next)
		if err != nil {
			return mapStoreError(err)
		}
		if err := s.propagator.PropagateVideo(txCtx, sess, updated, input.Title != nil || input.Trim != nil); err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vo.NewVideo(out), nil
}

// SetBookmark 设置书签标记；隐藏文件夹中的视频不可收藏。
func (s *VideoService) SetBookmark(ctx context.Context, userID, videoID uuid.UUID, bookmarked bool) (*vo.Video, error) {
	var out *po.Video
	err := s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		video, err := s.videos.Get(txCtx, sess, videoID)
		if err != nil {
			return mapStoreError(err)
		}
		if video.UserID != userID {
			return ErrOwnershipConflict
		}
		if video.Folder.Visibility == po.VisibilityHidden {
			return ErrVisibilityForbids
		}
		if video.IsBookmarked == bookmarked {
			out = video
			return nil
		}
		updated, err := s.videos.Update(txCtx, sess, repositories.UpdateVideoInput{
			ID:           video.ID,
			Title:        video.Title,
			Tags:         video.Tags,
			StartSec:     video.StartSec,
			EndSec:       video.EndSec,
			Duration:     video.Duration,
			IsBookmarked: bookmarked,
		})
		if err != nil {
			return mapStoreError(err)
		}
		if err := s.propagator.PropagateVideo(txCtx, sess, updated, false); err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vo.NewVideo(out), nil
}

// DeleteVideo 删除规范视频并从所属文件夹的摘要中移除。
func (s *VideoService) DeleteVideo(ctx context.Context, userID, videoID uuid.UUID) error {
	return s.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		video, err := s.videos.Get(txCtx, sess, videoID)
		if err != nil {
			return mapStoreError(err)
		}
		if video.UserID != userID {
			return ErrOwnershipConflict
		}
		if _, err := s.videos.Delete(txCtx, sess, videoID); err != nil {
			return mapStoreError(err)
		}
		if _, err := s.folders.PullVideo(txCtx, sess, video.Folder.ID, videoID); err != nil && !stderrors.Is(err, repositories.ErrFolderNotFound) {
			return mapStoreError(err)
		}
		return nil
	})
}
