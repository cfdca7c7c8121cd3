// Package dto 定义 HTTP 请求/响应体，并负责与业务层输入之间的转换。
package dto

import (
	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/models/vo"
	"github.com/bionicotaku/lingo-services-library/internal/services"

	"github.com/google/uuid"
)

// CreateFolderRequest 是 POST /v1/folders 的请求体。
type CreateFolderRequest struct {
	Title      string   `json:"title"`
	Visibility *int16   `json:"visibility,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// ToInput 转换为业务输入；visibility 缺省为仅自己可见。
func (r CreateFolderRequest) ToInput(userID uuid.UUID) services.CreateFolderInput {
	return services.CreateFolderInput{
		UserID:     userID,
		Title:      r.Title,
		Visibility: visibilityOr(r.Visibility, po.VisibilityOwner),
		Tags:       r.Tags,
	}
}

// UpdateFolderRequest 是 PATCH /v1/folders/{folder_id} 的请求体。
type UpdateFolderRequest struct {
	Title        *string  `json:"title,omitempty"`
	Visibility   *int16   `json:"visibility,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	IsBookmarked *bool    `json:"is_bookmarked,omitempty"`
}

// ToInput 转换为业务输入。
func (r UpdateFolderRequest) ToInput(userID, folderID uuid.UUID) services.UpdateFolderInput {
	return services.UpdateFolderInput{
		UserID:       userID,
		FolderID:     folderID,
		Title:        r.Title,
		Visibility:   visibilityPtr(r.Visibility),
		Tags:         r.Tags,
		IsBookmarked: r.IsBookmarked,
	}
}

// CopyFolderRequest 是 POST /v1/folders/{folder_id}/copy 的请求体。
type CopyFolderRequest struct {
	Title        string `json:"title,omitempty"`
	MoveExisting bool   `json:"move_existing,omitempty"`
}

// ToInput 转换为业务输入。
func (r CopyFolderRequest) ToInput(actorID, sourceID uuid.UUID) services.CopyFolderInput {
	return services.CopyFolderInput{
		ActorID:        actorID,
		SourceFolderID: sourceID,
		Title:          r.Title,
		MoveExisting:   r.MoveExisting,
	}
}

// ImportVideoRequest 是 POST /v1/imports/video 的请求体。
type ImportVideoRequest struct {
	FolderID     *uuid.UUID `json:"folder_id,omitempty"`
	ExternalID   string     `json:"external_id"`
	Start        *int       `json:"start,omitempty"`
	End          *int       `json:"end,omitempty"`
	MoveExisting bool       `json:"move_existing,omitempty"`
}

// ToInput 转换为业务输入。
func (r ImportVideoRequest) ToInput(userID uuid.UUID) services.ImportVideoInput {
	return services.ImportVideoInput{
		UserID:       userID,
		FolderID:     r.FolderID,
		ExternalID:   r.ExternalID,
		Start:        r.Start,
		End:          r.End,
		MoveExisting: r.MoveExisting,
	}
}

// ImportPlaylistRequest 是 POST /v1/imports/playlist 的请求体。
type ImportPlaylistRequest struct {
	FolderID           *uuid.UUID `json:"folder_id,omitempty"`
	ExternalPlaylistID string     `json:"external_playlist_id"`
	CreateFolder       bool       `json:"create_folder,omitempty"`
	FolderTitle        string     `json:"folder_title,omitempty"`
	Visibility         *int16     `json:"visibility,omitempty"`
	LinkFolder         bool       `json:"link_folder,omitempty"`
	MoveExisting       bool       `json:"move_existing,omitempty"`
}

// ToInput 转换为业务输入。
func (r ImportPlaylistRequest) ToInput(userID uuid.UUID) services.ImportPlaylistInput {
	var visibility po.Visibility
	if r.Visibility != nil {
		visibility = po.Visibility(*r.Visibility)
	}
	return services.ImportPlaylistInput{
		UserID:             userID,
		FolderID:           r.FolderID,
		ExternalPlaylistID: r.ExternalPlaylistID,
		CreateFolder:       r.CreateFolder,
		FolderTitle:        r.FolderTitle,
		Visibility:         visibility,
		LinkFolder:         r.LinkFolder,
		MoveExisting:       r.MoveExisting,
	}
}

// ListFoldersResponse 是 GET /v1/folders 的响应体。
type ListFoldersResponse struct {
	Folders []*vo.Folder `json:"folders"`
}

func visibilityOr(v *int16, fallback po.Visibility) po.Visibility {
	if v == nil {
		return fallback
	}
	return po.Visibility(*v)
}

func visibilityPtr(v *int16) *po.Visibility {
	if v == nil {
		return nil
	}
	out := po.Visibility(*v)
	return &out
}
