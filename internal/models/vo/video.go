// Package vo 定义视图对象（View Objects），用于向上层传递业务数据。
// VO 对象由 Service 层返回，经 Controller 层序列化为 HTTP 响应，隔离内部数据结构。
package vo

import (
	"time"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/google/uuid"
)

// FolderRef 是视频所属文件夹的引用视图。
type FolderRef struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Visibility int16     `json:"visibility"`
}

// Video 是规范视频的详情视图。
type Video struct {
	ID             uuid.UUID   `json:"id"`
	ExternalID     string      `json:"external_id"`
	Title          string      `json:"title"`
	Tags           []string    `json:"tags"`
	OriginDuration int         `json:"origin_duration"`
	Start          *int        `json:"start,omitempty"`
	End            *int        `json:"end,omitempty"`
	Duration       int         `json:"duration"`
	Thumbnail      string      `json:"thumbnail"`
	IsBookmarked   bool        `json:"is_bookmarked"`
	SharedCount    int64       `json:"shared_count"`
	PlayInfo       po.PlayInfo `json:"play_info"`
	Folder         FolderRef   `json:"folder"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	Version        int64       `json:"version"`
}

// NewVideo 从 PO 构造视频视图。
func NewVideo(video *po.Video) *Video {
	if video == nil {
		return nil
	}
	return &Video{
		ID:             video.ID,
		ExternalID:     video.ExternalID,
		Title:          video.Title,
		Tags:           video.Tags,
		OriginDuration: video.OriginDuration,
		Start:          video.StartSec,
		End:            video.EndSec,
		Duration:       video.Duration,
		Thumbnail:      video.ThumbnailURL,
		IsBookmarked:   video.IsBookmarked,
		SharedCount:    video.SharedCount,
		PlayInfo:       video.PlayInfo,
		Folder: FolderRef{
			ID:         video.Folder.ID,
			Title:      video.Folder.Title,
			Visibility: int16(video.Folder.Visibility),
		},
		CreatedAt: video.CreatedAt,
		UpdatedAt: video.UpdatedAt,
		Version:   video.Version,
	}
}
