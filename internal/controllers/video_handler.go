package controllers

import (
	"context"
	"net/http"

	"github.com/bionicotaku/lingo-services-library/internal/controllers/dto"
	"github.com/bionicotaku/lingo-services-library/internal/models/vo"
	"github.com/bionicotaku/lingo-services-library/internal/services"

	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"
)

// Video 相关 operation 名称。
const (
	OperationGetVideo      = "/library.v1.VideoService/GetVideo"
	OperationEditVideo     = "/library.v1.VideoService/EditVideo"
	OperationMoveVideo     = "/library.v1.VideoService/MoveVideo"
	OperationCopyVideo     = "/library.v1.VideoService/CopyVideo"
	OperationBookmarkVideo = "/library.v1.VideoService/SetBookmark"
	OperationDeleteVideo   = "/library.v1.VideoService/DeleteVideo"
)

// VideoUsecase 是 VideoHandler 依赖的业务能力。
type VideoUsecase interface {
	GetVideo(ctx context.Context, userID, videoID uuid.UUID) (*vo.Video, error)
	MoveVideo(ctx context.Context, input services.MoveVideoInput) (*vo.MembershipResult, error)
	CopyVideo(ctx context.Context, input services.CopyVideoInput) (*vo.MembershipResult, error)
	EditVideo(ctx context.Context, input services.EditVideoInput) (*vo.Video, error)
	SetBookmark(ctx context.Context, userID, videoID uuid.UUID, bookmarked bool) (*vo.Video, error)
	DeleteVideo(ctx context.Context, userID, videoID uuid.UUID) error
}

// VideoHandler 暴露规范视频相关的 HTTP 接口。
type VideoHandler struct {
	*BaseHandler
	videos VideoUsecase
}

// NewVideoHandler 构造 VideoHandler。
func NewVideoHandler(videos VideoUsecase, base *BaseHandler) *VideoHandler {
	if base == nil {
		base = NewBaseHandler(HandlerTimeouts{})
	}
	return &VideoHandler{BaseHandler: base, videos: videos}
}

// RegisterRoutes 挂载路由。
func (h *VideoHandler) RegisterRoutes(r *khttp.Router) {
	r.GET("/v1/videos/{video_id}", h.getVideo)
	r.PATCH("/v1/videos/{video_id}", h.editVideo)
	r.DELETE("/v1/videos/{video_id}", h.deleteVideo)
	r.POST("/v1/videos/{video_id}/move", h.moveVideo)
	r.POST("/v1/videos/{video_id}/copy", h.copyVideo)
	r.PUT("/v1/videos/{video_id}/bookmark", h.bookmark(true))
	r.DELETE("/v1/videos/{video_id}/bookmark", h.bookmark(false))
}

func (h *VideoHandler) getVideo(ctx khttp.Context) error {
	videoID, err := pathID(ctx, "video_id")
	if err != nil {
		return err
	}
	return h.serve(ctx, OperationGetVideo, HandlerTypeQuery, nil, http.StatusOK,
		func(c context.Context, userID uuid.UUID) (any, error) {
			return h.videos.GetVideo(c, userID, videoID)
		})
}

func (h *VideoHandler) editVideo(ctx khttp.Context) error {
	videoID, err := pathID(ctx, "video_id")
	if err != nil {
		return err
	}
	var req dto.EditVideoRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	return h.serve(ctx, OperationEditVideo, HandlerTypeCommand, &req, http.StatusOK,
		func(c context.Context, userID uuid.UUID) (any, error) {
			return h.videos.EditVideo(c, req.ToInput(userID, videoID))
		})
}

func (h *VideoHandler) moveVideo(ctx khttp.Context) error {
	videoID, err := pathID(ctx, "video_id")
	if err != nil {
		return err
	}
	var req dto.MoveVideoRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	return h.serve(ctx, OperationMoveVideo, HandlerTypeCommand, &req, http.StatusOK,
		func(c context.Context, userID uuid.UUID) (any, error) {
			return h.videos.MoveVideo(c, services.MoveVideoInput{
				UserID:         userID,
				VideoID:        videoID,
				TargetFolderID: req.TargetFolderID,
			})
		})
}

func (h *VideoHandler) copyVideo(ctx khttp.Context) error {
	videoID, err := pathID(ctx, "video_id")
	if err != nil {
		return err
	}
	var req dto.CopyVideoRequest
	if err := bindOptional(ctx, &req); err != nil {
		return err
	}
	return h.serve(ctx, OperationCopyVideo, HandlerTypeCommand, &req, http.StatusCreated,
		func(c context.Context, userID uuid.UUID) (any, error) {
			return h.videos.CopyVideo(c, services.CopyVideoInput{
				ActorID:        userID,
				VideoID:        videoID,
				TargetFolderID: req.TargetFolderID,
				MoveExisting:   req.MoveExisting,
			})
		})
}

func (h *VideoHandler) bookmark(bookmarked bool) khttp.HandlerFunc {
	return func(ctx khttp.Context) error {
		videoID, err := pathID(ctx, "video_id")
		if err != nil {
			return err
		}
		return h.serve(ctx, OperationBookmarkVideo, HandlerTypeCommand, nil, http.StatusOK,
			func(c context.Context, userID uuid.UUID) (any, error) {
				return h.videos.SetBookmark(c, userID, videoID, bookmarked)
			})
	}
}

func (h *VideoHandler) deleteVideo(ctx khttp.Context) error {
	videoID, err := pathID(ctx, "video_id")
	if err != nil {
		return err
	}
	return h.serve(ctx, OperationDeleteVideo, HandlerTypeCommand, nil, http.StatusOK,
		func(c context.Context, userID uuid.UUID) (any, error) {
			if err := h.videos.DeleteVideo(c, userID, videoID); err != nil {
				return nil, err
			}
			return &dto.DeleteVideoResponse{ID: videoID, Deleted: true}, nil
		})
}
