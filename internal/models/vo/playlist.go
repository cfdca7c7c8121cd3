package vo

import (
	"time"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/google/uuid"
)

// Playlist 是播放列表视图。
type Playlist struct {
	ID                  uuid.UUID    `json:"id"`
	UserID              uuid.UUID    `json:"user_id"`
	Title               string       `json:"title"`
	Visibility          int16        `json:"visibility"`
	FolderID            *uuid.UUID   `json:"folder_id,omitempty"`
	Tags                []string     `json:"tags"`
	Duration            int          `json:"duration"`
	Routines            []po.Routine `json:"routines"`
	IsBookmarked        bool         `json:"is_bookmarked"`
	SharedCount         int64        `json:"shared_count"`
	SuccessNotification *string      `json:"success_notification,omitempty"`
	FailNotification    *string      `json:"fail_notification,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
	Version             int64        `json:"version"`
}

// NewPlaylist 从 PO 构造播放列表视图。
func NewPlaylist(playlist *po.Playlist) *Playlist {
	if playlist == nil {
		return nil
	}
	routines := playlist.Routines
	if routines == nil {
		routines = []po.Routine{}
	}
	return &Playlist{
		ID:                  playlist.ID,
		UserID:              playlist.UserID,
		Title:               playlist.Title,
		Visibility:          int16(playlist.Visibility),
		FolderID:            playlist.FolderID,
		Tags:                playlist.Tags,
		Duration:            playlist.Duration,
		Routines:            routines,
		IsBookmarked:        playlist.IsBookmarked,
		SharedCount:         playlist.SharedCount,
		SuccessNotification: playlist.SuccessNotification,
		FailNotification:    playlist.FailNotification,
		CreatedAt:           playlist.CreatedAt,
		UpdatedAt:           playlist.UpdatedAt,
		Version:             playlist.Version,
	}
}

// SyncResult 描述一次播放列表同步的结果。
type SyncResult struct {
	Outcome        string    `json:"outcome"`
	Playlist       *Playlist `json:"playlist"`
	RebuiltIndexes []int     `json:"rebuilt_indexes"`
	InsertedCount  int       `json:"inserted_count"`
}
