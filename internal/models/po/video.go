// Package po 定义面向持久化的数据对象（Persistent Objects），由 Repository 层使用。
// PO 对象映射 library schema 的表结构，嵌入数组以 JSONB 存储并在这里给出 Go 形态。
//
// 注意：Folder.Videos 与 Playlist.Routines 中的条目是规范 Video 的冗余副本，
// 规范记录始终以 library.videos 为准。
package po

import (
	"time"

	"github.com/google/uuid"
)

// Visibility 表示文件夹/播放列表的可见级别。
// 对应数据库列 visibility SMALLINT。
type Visibility int16

// 可见级别常量定义
const (
	VisibilityHidden Visibility = 0 // 隐藏文件夹，仅系统使用
	VisibilityOwner  Visibility = 1 // 仅自己可见
	VisibilityLink   Visibility = 2 // 持有 id 可见
	VisibilityPublic Visibility = 3 // 完全公开
)

// Shareable 判断其他用户是否可以复制该资源。
func (v Visibility) Shareable() bool {
	return v >= VisibilityLink
}

// FolderRef 是 Video 对所属文件夹的反向引用（含冗余的标题与可见级别）。
type FolderRef struct {
	ID         uuid.UUID
	Title      string
	Visibility Visibility
}

// PlayInfo 记录练习统计。
type PlayInfo struct {
	FailCount      int64   `json:"fail_count"`
	SuccessCount   int64   `json:"success_count"`
	AvgStar        float64 `json:"avg_star,omitempty"`
	AvgPlaySeconds int     `json:"avg_play_seconds,omitempty"`
}

// Video 表示 library.videos 表中的规范视频记录，(UserID, ExternalID) 唯一。
type Video struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	ExternalID     string
	Title          string
	Tags           []string
	OriginDuration int
	StartSec       *int
	EndSec         *int
	Duration       int
	ThumbnailURL   string
	IsBookmarked   bool
	SharedCount    int64
	PlayInfo       PlayInfo
	Folder         FolderRef
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Version        int64
}

// Summary 生成写入 Folder.videos 的投影条目。
func (v *Video) Summary() FolderVideo {
	if v == nil {
		return FolderVideo{}
	}
	return FolderVideo{
		ID:           v.ID,
		Title:        v.Title,
		Duration:     v.Duration,
		Thumbnail:    v.ThumbnailURL,
		IsBookmarked: v.IsBookmarked,
	}
}
