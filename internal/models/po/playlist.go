package po

import (
	"time"

	"github.com/google/uuid"
)

// Occurrence 是 routine 中的一次视频出现。
// Start/End 仅保存该出现自身的裁剪覆盖，为空时沿用规范 Video 的裁剪。
type Occurrence struct {
	VideoID        uuid.UUID `json:"video_id"`
	ExternalID     string    `json:"external_id"`
	Title          string    `json:"title"`
	OriginDuration int       `json:"origin_duration"`
	Start          *int      `json:"start,omitempty"`
	End            *int      `json:"end,omitempty"`
	Duration       int       `json:"duration"`
	Repeat         int       `json:"repeat"`
	Thumbnail      string    `json:"thumbnail"`
}

// Routine 是播放列表中的有序片段列表；ExternalPlaylistID 非空时可由外部同步整体替换。
type Routine struct {
	ExternalPlaylistID *string      `json:"external_playlist_id,omitempty"`
	Videos             []Occurrence `json:"videos"`
}

// Linked 判断 routine 是否关联外部播放列表。
func (r Routine) Linked() bool {
	return r.ExternalPlaylistID != nil && *r.ExternalPlaylistID != ""
}

// Total 返回 routine 的时长贡献（每次出现的时长乘以重复次数）。
func (r Routine) Total() int {
	total := 0
	for _, occ := range r.Videos {
		repeat := occ.Repeat
		if repeat < 1 {
			repeat = 1
		}
		total += occ.Duration * repeat
	}
	return total
}

// Playlist 表示 library.playlists 表的行。
type Playlist struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Title               string
	Visibility          Visibility
	FolderID            *uuid.UUID
	Tags                []string
	Duration            int
	Routines            []Routine
	IsBookmarked        bool
	SharedCount         int64
	SuccessNotification *string
	FailNotification    *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Version             int64
}

// TotalDuration 按全部 routine 重新计算播放列表总时长。
func TotalDuration(routines []Routine) int {
	total := 0
	for _, r := range routines {
		total += r.Total()
	}
	return total
}
