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

// Folder 相关 operation 名称，用于中间件选择与日志。
const (
	OperationCreateFolder    = "/library.v1.FolderService/CreateFolder"
	OperationListFolders     = "/library.v1.FolderService/ListFolders"
	OperationGetFolder       = "/library.v1.FolderService/GetFolder"
	OperationUpdateFolder    = "/library.v1.FolderService/UpdateFolder"
	OperationCopyFolder      = "/library.v1.FolderService/CopyFolder"
	OperationReconcileFolder = "/library.v1.FolderService/ReconcileFolder"
	OperationImportVideo     = "/library.v1.FolderService/ImportVideo"
	OperationImportPlaylist  = "/library.v1.FolderService/ImportPlaylist"
)

// FolderUsecase 是 FolderHandler 依赖的业务能力。
type FolderUsecase interface {
	CreateFolder(ctx context.Context, input services.CreateFolderInput) (*vo.Folder, error)
	GetFolder(ctx context.Context, userID, folderID uuid.UUID) (*vo.Folder, error)
	ListFolders(ctx context.Context, userID uuid.UUID) ([]*vo.Folder, error)
	UpdateFolder(ctx context.Context, input services.UpdateFolderInput) (*vo.Folder, error)
	ImportVideo(ctx context.Context, input services.ImportVideoInput) (*vo.MembershipResult, error)
	ImportPlaylist(ctx context.Context, input services.ImportPlaylistInput) (*vo.MembershipResult, error)
	CopyFolder(ctx context.Context, input services.CopyFolderInput) (*vo.MembershipResult, error)
	ReconcileFolder(ctx context.Context, userID, folderID uuid.UUID) (*vo.Folder, error)
}

// FolderHandler 暴露文件夹与导入相关的 HTTP 接口。
type FolderHandler struct {
	*BaseHandler
	folders FolderUsecase
}

// NewFolderHandler 构造 FolderHandler。
func NewFolderHandler(folders FolderUsecase, base *BaseHandler) *FolderHandler {
	if base == nil {
		base = NewBaseHandler(HandlerTimeouts{})
	}
	return &FolderHandler{BaseHandler: base, folders: folders}
}

// RegisterRoutes 挂载路由。
func (h *FolderHandler) RegisterRoutes(r *khttp.Router) {
	r.POST("/v1/folders", h.createFolder)
	r.GET("/v1/folders", h.listFolders)
	r.GET("/v1/folders/{folder_id}", h.getFolder)
	r.PATCH("/v1/folders/{folder_id}", h.updateFolder)
	r.POST("/v1/folders/{folder_id}/copy", h.copyFolder)
	r.POST("/v1/folders/{folder_id}/reconcile", h.reconcileFolder)
	r.POST("/v1/imports/video", h.importVideo)
	r.POST("/v1/imports/playlist", h.importPlaylist)
}

func (h *FolderHandler) createFolder(ctx khttp.Context) error {
	var req dto.CreateFolderRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	return h.serve(ctx, OperationCreateFolder, HandlerTypeCommand, &req, http.StatusCreated,
		func(c context.Context, userID uuid.UUID) (any, error) {
			return h.folders.CreateFolder(c, req.ToInput(userID))
		})
}

func (h *FolderHandler) listFolders(ctx khttp.Context) error {
	return h.serve(ctx, OperationListFolders, HandlerTypeQuery, nil, http.StatusOK,
		func(c context.Context, userID uuid.UUID) (any, error) {
			folders, err := h.folders.ListFolders(c, userID)
			if err != nil {
				return nil, err
			}
			if folders == nil {
				folders = []*vo.Folder{}
			}
			return &dto.ListFoldersResponse{Folders: folders}, nil
		})
}

func (h *FolderHandler) getFolder(ctx khttp.Context) error {
	folderID, err := pathID(ctx, "folder_id")
	if err != nil {
		return err
	}
	return h.serve(ctx, OperationGetFolder, HandlerTypeQuery, nil, http.StatusOK,
		func(c context.Context, userID uuid.UUID) (any, error) {
			return h.folders.GetFolder(c, userID, folderID)
		})
}

func (h *FolderHandler) updateFolder(ctx khttp.Context) error {
	folderID, err := pathID(ctx, "folder_id")
	if err != nil {
		return err
	}
	var req dto.UpdateFolderRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	return h.serve(ctx, OperationUpdateFolder, HandlerTypeCommand, &req, http.StatusOK,
		func(c context.Context, userID uuid.UUID) (any, error) {
			return h.folders.UpdateFolder(c, req.ToInput(userID, folderID))
		})
}

func (h *FolderHandler) copyFolder(ctx khttp.Context) error {
	folderID, err := pathID(ctx, "folder_id")
	if err != nil {
		return err
	}
	var req dto.CopyFolderRequest
	if err := bindOptional(ctx, &req); err != nil {
		return err
	}
	return h.serve(ctx, OperationCopyFolder, HandlerTypeCommand, &req, http.StatusCreated,
		func(c context.Context, userID uuid.UUID) (any, error) {
			return h.folders.CopyFolder(c, req.ToInput(userID, folderID))
		})
}

func (h *FolderHandler) reconcileFolder(ctx khttp.Context) error {
	folderID, err := pathID(ctx, "folder_id")
	if err != nil {
		return err
	}
	return h.serve(ctx, OperationReconcileFolder, HandlerTypeCommand, nil, http.StatusOK,
		func(c context.Context, userID uuid.UUID) (any, error) {
			return h.folders.ReconcileFolder(c, userID, folderID)
		})
}

func (h *FolderHandler) importVideo(ctx khttp.Context) error {
	var req dto.ImportVideoRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	return h.serve(ctx, OperationImportVideo, HandlerTypeCommand, &req, http.StatusOK,
		func(c context.Context, userID uuid.UUID) (any, error) {
			return h.folders.ImportVideo(c, req.ToInput(userID))
		})
}

func (h *FolderHandler) importPlaylist(ctx khttp.Context) error {
	var req dto.ImportPlaylistRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	return h.serve(ctx, OperationImportPlaylist, HandlerTypeCommand, &req, http.StatusOK,
		func(c context.Context, userID uuid.UUID) (any, error) {
			return h.folders.ImportPlaylist(c, req.ToInput(userID))
		})
}
