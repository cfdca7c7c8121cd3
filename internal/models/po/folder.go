package po

import (
	"time"

	"github.com/google/uuid"
)

// FolderVideo 是 Folder.videos JSONB 数组中的视频摘要。
type FolderVideo struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Duration     int       `json:"duration"`
	Thumbnail    string    `json:"thumbnail"`
	IsBookmarked bool      `json:"is_bookmarked"`
}

// Folder 表示 library.folders 表的行。
type Folder struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Title              string
	ExternalPlaylistID *string
	Visibility         Visibility
	IsDefault          bool
	IsBookmarked       bool
	SharedCount        int64
	Tags               []string
	Videos             []FolderVideo
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Version            int64
}

// Ref 返回供 Video 反向引用使用的快照。
func (f *Folder) Ref() FolderRef {
	if f == nil {
		return FolderRef{}
	}
	return FolderRef{ID: f.ID, Title: f.Title, Visibility: f.Visibility}
}

// Contains 判断摘要数组中是否已包含指定视频。
func (f *Folder) Contains(videoID uuid.UUID) bool {
	if f == nil {
		return false
	}
	for _, item := range f.Videos {
		if item.ID == videoID {
			return true
		}
	}
	return false
}
