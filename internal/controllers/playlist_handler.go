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

// Playlist 相关 operation 名称。
const (
	OperationCreatePlaylist = "/library.v1.PlaylistService/CreatePlaylist"
	OperationListPlaylists  = "/library.v1.PlaylistService/ListPlaylists"
	OperationGetPlaylist    = "/library.v1.PlaylistService/GetPlaylist"
	OperationUpdatePlaylist = "/library.v1.PlaylistService/UpdatePlaylist"
	OperationCopyPlaylist   = "/library.v1.PlaylistService/CopyPlaylist"
	OperationSyncPlaylist   = "/library.v1.PlaylistService/SyncPlaylist"
)

// PlaylistUsecase 是 PlaylistHandler 依赖的业务能力。
type PlaylistUsecase interface {
	CreatePlaylist(ctx context.Context, input services.CreatePlaylistInput) (*vo.Playlist, error)
	CopyPlaylist(ctx context.Context, input services.CopyPlaylistInput) (*vo.Playlist, error)
	UpdatePlaylist(ctx context.Context, input services.UpdatePlaylistInput) (*vo.Playlist, error)
	GetPlaylist(ctx context.Context, userID, playlistID uuid.UUID) (*vo.Playlist, error)
	ListPlaylists(ctx context.Context, userID uuid.UUID) ([]*vo.Playlist, error)
	SyncPlaylist(ctx context.Context, input services.SyncInput) (*vo.SyncResult, error)
}

// PlaylistHandler 暴露播放列表相关的 HTTP 接口。
type PlaylistHandler struct {
	*BaseHandler
	playlists PlaylistUsecase
}

// NewPlaylistHandler 构造 PlaylistHandler。
func NewPlaylistHandler(playlists PlaylistUsecase, base *BaseHandler) *PlaylistHandler {
	if base == nil {
		base = NewBaseHandler(HandlerTimeouts{})
	}
	return &PlaylistHandler{BaseHandler: base, playlists: playlists}
}

// RegisterRoutes 挂载路由。
func (h *PlaylistHandler) RegisterRoutes(r *khttp.Router) {
	r.POST("/v1/playlists", h.createPlaylist)
	r.GET("/v1/playlists", h.listPlaylists)
	r.GET("/v1/playlists/{playlist_id}", h.getPlaylist)
	r.PATCH("/v1/playlists/{playlist_id}", h.updatePlaylist)
	r.POST("/v1/playlists/{playlist_id}/copy", h.copyPlaylist)
	r.POST("/v1/playlists/{playlist_id}/sync", h.syncPlaylist)
}

func (h *PlaylistHandler) createPlaylist(ctx khttp.Context) error {
	var req dto.CreatePlaylistRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	return h.serve(ctx, OperationCreatePlaylist, HandlerTypeCommand, &req, http.StatusCreated,
		func(c context.Context, userID uuid.UUID) (any, error) {
			return h.playlists.CreatePlaylist(c, req.ToInput(userID))
		})
}

func (h *PlaylistHandler) listPlaylists(ctx khttp.Context) error {
	return h.serve(ctx, OperationListPlaylists, HandlerTypeQuery, nil, http.StatusOK,
		func(c context.Context, userID uuid.UUID) (any, error) {
			playlists, err := h.playlists.ListPlaylists(c, userID)
			if err != nil {
				return nil, err
			}
			if playlists == nil {
				playlists = []*vo.Playlist{}
			}
			return &dto.ListPlaylistsResponse{Playlists: playlists}, nil
		})
}

func (h *PlaylistHandler) getPlaylist(ctx khttp.Context) error {
	playlistID, err := pathID(ctx, "playlist_id")
	if err != nil {
		return err
	}
	return h.serve(ctx, OperationGetPlaylist, HandlerTypeQuery, nil, http.StatusOK,
		func(c context.Context, userID uuid.UUID) (any, error) {
			return h.playlists.GetPlaylist(c, userID, playlistID)
		})
}

func (h *PlaylistHandler) updatePlaylist(ctx khttp.Context) error {
	playlistID, err := pathID(ctx, "playlist_id")
	if err != nil {
		return err
	}
	var req dto.UpdatePlaylistRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	return h.serve(ctx, OperationUpdatePlaylist, HandlerTypeCommand, &req, http.StatusOK,
		func(c context.Context, userID uuid.UUID) (any, error) {
			return h.playlists.UpdatePlaylist(c, req.ToInput(userID, playlistID))
		})
}

func (h *PlaylistHandler) copyPlaylist(ctx khttp.Context) error {
	playlistID, err := pathID(ctx, "playlist_id")
	if err != nil {
		return err
	}
	var req dto.CopyPlaylistRequest
	if err := bindOptional(ctx, &req); err != nil {
		return err
	}
	return h.serve(ctx, OperationCopyPlaylist, HandlerTypeCommand, &req, http.StatusCreated,
		func(c context.Context, userID uuid.UUID) (any, error) {
			return h.playlists.CopyPlaylist(c, req.ToInput(userID, playlistID))
		})
}

func (h *PlaylistHandler) syncPlaylist(ctx khttp.Context) error {
	playlistID, err := pathID(ctx, "playlist_id")
	if err != nil {
		return err
	}
	var req dto.SyncPlaylistRequest
	if err := bindOptional(ctx, &req); err != nil {
		return err
	}
	return h.serve(ctx, OperationSyncPlaylist, HandlerTypeCommand, &req, http.StatusOK,
		func(c context.Context, userID uuid.UUID) (any, error) {
			return h.playlists.SyncPlaylist(c, services.SyncInput{
				UserID:       userID,
				PlaylistID:   playlistID,
				RoutineIndex: req.RoutineIndex,
			})
		})
}
