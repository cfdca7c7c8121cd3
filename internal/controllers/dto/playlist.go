package dto

import (
	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/models/vo"
	"github.com/bionicotaku/lingo-services-library/internal/services"

	"github.com/google/uuid"
)

// OccurrenceRequest 描述 routine 中的一次出现。
type OccurrenceRequest struct {
	VideoID uuid.UUID `json:"video_id"`
	Start   *int      `json:"start,omitempty"`
	End     *int      `json:"end,omitempty"`
	Repeat  int       `json:"repeat,omitempty"`
}

// RoutineRequest 描述由已有视频组成的 routine。
type RoutineRequest struct {
	ExternalPlaylistID *string             `json:"external_playlist_id,omitempty"`
	Videos             []OccurrenceRequest `json:"videos"`
}

// CreatePlaylistRequest 是 POST /v1/playlists 的请求体。
type CreatePlaylistRequest struct {
	Title               string           `json:"title"`
	Visibility          *int16           `json:"visibility,omitempty"`
	FolderID            *uuid.UUID       `json:"folder_id,omitempty"`
	Tags                []string         `json:"tags,omitempty"`
	SuccessNotification *string          `json:"success_notification,omitempty"`
	FailNotification    *string          `json:"fail_notification,omitempty"`
	Routines            []RoutineRequest `json:"routines,omitempty"`
	ExternalPlaylistID  string           `json:"external_playlist_id,omitempty"`
}

// ToInput 转换为业务输入。
func (r CreatePlaylistRequest) ToInput(userID uuid.UUID) services.CreatePlaylistInput {
	return services.CreatePlaylistInput{
		UserID:              userID,
		Title:               r.Title,
		Visibility:          visibilityOr(r.Visibility, po.VisibilityOwner),
		FolderID:            r.FolderID,
		Tags:                r.Tags,
		SuccessNotification: r.SuccessNotification,
		FailNotification:    r.FailNotification,
		Routines:            toRoutineInputs(r.Routines),
		ExternalPlaylistID:  r.ExternalPlaylistID,
	}
}

// UpdatePlaylistRequest 是 PATCH /v1/playlists/{playlist_id} 的请求体。
type UpdatePlaylistRequest struct {
	Title               *string          `json:"title,omitempty"`
	Visibility          *int16           `json:"visibility,omitempty"`
	Tags                []string         `json:"tags,omitempty"`
	SuccessNotification *string          `json:"success_notification,omitempty"`
	FailNotification    *string          `json:"fail_notification,omitempty"`
	IsBookmarked        *bool            `json:"is_bookmarked,omitempty"`
	Routines            []RoutineRequest `json:"routines,omitempty"`
}

// ToInput 转换为业务输入。
func (r UpdatePlaylistRequest) ToInput(userID, playlistID uuid.UUID) services.UpdatePlaylistInput {
	return services.UpdatePlaylistInput{
		UserID:              userID,
		PlaylistID:          playlistID,
		Title:               r.Title,
		Visibility:          visibilityPtr(r.Visibility),
		Tags:                r.Tags,
		SuccessNotification: r.SuccessNotification,
		FailNotification:    r.FailNotification,
		IsBookmarked:        r.IsBookmarked,
		Routines:            toRoutineInputs(r.Routines),
	}
}

// CopyPlaylistRequest 是 POST /v1/playlists/{playlist_id}/copy 的请求体。
type CopyPlaylistRequest struct {
	FolderID *uuid.UUID `json:"folder_id,omitempty"`
	Title    string     `json:"title,omitempty"`
}

// ToInput 转换为业务输入。
func (r CopyPlaylistRequest) ToInput(actorID, playlistID uuid.UUID) services.CopyPlaylistInput {
	return services.CopyPlaylistInput{
		ActorID:    actorID,
		PlaylistID: playlistID,
		FolderID:   r.FolderID,
		Title:      r.Title,
	}
}

// SyncPlaylistRequest 是 POST /v1/playlists/{playlist_id}/sync 的请求体；routine_index 缺省表示全部。
type SyncPlaylistRequest struct {
	RoutineIndex *int `json:"routine_index,omitempty"`
}

// ListPlaylistsResponse 是 GET /v1/playlists 的响应体。
type ListPlaylistsResponse struct {
	Playlists []*vo.Playlist `json:"playlists"`
}

func toRoutineInputs(routines []RoutineRequest) []services.RoutineInput {
	if routines == nil {
		return nil
	}
	out := make([]services.RoutineInput, 0, len(routines))
	for _, routine := range routines {
		videos := make([]services.OccurrenceInput, 0, len(routine.Videos))
		for _, occ := range routine.Videos {
			videos = append(videos, services.OccurrenceInput{
				VideoID: occ.VideoID,
				Start:   occ.Start,
				End:     occ.End,
				Repeat:  occ.Repeat,
			})
		}
		out = append(out, services.RoutineInput{
			ExternalPlaylistID: routine.ExternalPlaylistID,
			Videos:             videos,
		})
	}
	return out
}
