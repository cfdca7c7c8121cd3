package vo

import (
	"time"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/google/uuid"
)

// Folder 是文件夹视图，Videos 为内嵌摘要。
type Folder struct {
	ID                 uuid.UUID        `json:"id"`
	UserID             uuid.UUID        `json:"user_id"`
	Title              string           `json:"title"`
	ExternalPlaylistID *string          `json:"external_playlist_id,omitempty"`
	Visibility         int16            `json:"visibility"`
	IsDefault          bool             `json:"is_default"`
	IsBookmarked       bool             `json:"is_bookmarked"`
	SharedCount        int64            `json:"shared_count"`
	Tags               []string         `json:"tags"`
	Videos             []po.FolderVideo `json:"videos"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	Version            int64            `json:"version"`
}

// NewFolder 从 PO 构造文件夹视图。
func NewFolder(folder *po.Folder) *Folder {
	if folder == nil {
		return nil
	}
	videos := folder.Videos
	if videos == nil {
		videos = []po.FolderVideo{}
	}
	return &Folder{
		ID:                 folder.ID,
		UserID:             folder.UserID,
		Title:              folder.Title,
		ExternalPlaylistID: folder.ExternalPlaylistID,
		Visibility:         int16(folder.Visibility),
		IsDefault:          folder.IsDefault,
		IsBookmarked:       folder.IsBookmarked,
		SharedCount:        folder.SharedCount,
		Tags:               folder.Tags,
		Videos:             videos,
		CreatedAt:          folder.CreatedAt,
		UpdatedAt:          folder.UpdatedAt,
		Version:            folder.Version,
	}
}

// MembershipResult 描述一次批量入夹操作的结果。
type MembershipResult struct {
	Folder         *Folder `json:"folder"`
	InsertedCount  int     `json:"inserted_count"`
	RelocatedCount int     `json:"relocated_count"`
	RetainedCount  int     `json:"retained_count"`
	PushedCount    int     `json:"pushed_count"`
}
