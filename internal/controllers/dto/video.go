package dto

import (
	"github.com/bionicotaku/lingo-services-library/internal/services"

	"github.com/google/uuid"
)

// TrimRequest 描述裁剪区间；端点为空表示清除该端点。
type TrimRequest struct {
	Start *int `json:"start"`
	End   *int `json:"end"`
}

// EditVideoRequest 是 PATCH /v1/videos/{video_id} 的请求体。
type EditVideoRequest struct {
	Title *string      `json:"title,omitempty"`
	Tags  *[]string    `json:"tags,omitempty"`
	Trim  *TrimRequest `json:"trim,omitempty"`
}

// ToInput 转换为业务输入。
func (r EditVideoRequest) ToInput(userID, videoID uuid.UUID) services.EditVideoInput {
	input := services.EditVideoInput{
		UserID:  userID,
		VideoID: videoID,
		Title:   r.Title,
		Tags:    r.Tags,
	}
	if r.Trim != nil {
		input.Trim = &services.TrimOverride{Start: r.Trim.Start, End: r.Trim.End}
	}
	return input
}

// MoveVideoRequest 是 POST /v1/videos/{video_id}/move 的请求体。
type MoveVideoRequest struct {
	TargetFolderID uuid.UUID `json:"target_folder_id"`
}

// CopyVideoRequest 是 POST /v1/videos/{video_id}/copy 的请求体。
type CopyVideoRequest struct {
	TargetFolderID *uuid.UUID `json:"target_folder_id,omitempty"`
	MoveExisting   bool       `json:"move_existing,omitempty"`
}

// DeleteVideoResponse 是 DELETE /v1/videos/{video_id} 的响应体。
type DeleteVideoResponse struct {
	ID      uuid.UUID `json:"id"`
	Deleted bool      `json:"deleted"`
}
