package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// VideoColumns 是 library.videos 的标准查询列，顺序与 VideoRow.Targets 对应。
const VideoColumns = `id, user_id, external_id, title, tags, origin_duration, start_sec, end_sec, duration,
	thumbnail_url, is_bookmarked, shared_count, play_info, folder_id, folder_title, folder_visibility,
	created_at, updated_at, version`

// VideoRow 是 library.videos 的扫描目标。
type VideoRow struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	ExternalID       string
	Title            string
	Tags             []string
	OriginDuration   int32
	StartSec         pgtype.Int4
	EndSec           pgtype.Int4
	Duration         int32
	ThumbnailURL     string
	IsBookmarked     bool
	SharedCount      int64
	PlayInfo         []byte
	FolderID         uuid.UUID
	FolderTitle      string
	FolderVisibility int16
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
	Version          int64
}

// Targets 返回 Scan 目标列表。
func (r *VideoRow) Targets() []any {
	return []any{
		&r.ID, &r.UserID, &r.ExternalID, &r.Title, &r.Tags, &r.OriginDuration, &r.StartSec, &r.EndSec,
		&r.Duration, &r.ThumbnailURL, &r.IsBookmarked, &r.SharedCount, &r.PlayInfo, &r.FolderID,
		&r.FolderTitle, &r.FolderVisibility, &r.CreatedAt, &r.UpdatedAt, &r.Version,
	}
}

// VideoFromRow 将扫描结果转换为 po.Video。
func VideoFromRow(row VideoRow) (*po.Video, error) {
	var playInfo po.PlayInfo
	if len(row.PlayInfo) > 0 {
		if err := json.Unmarshal(row.PlayInfo, &playInfo); err != nil {
			return nil, fmt.Errorf("decode play_info for video %s: %w", row.ID, err)
		}
	}
	return &po.Video{
		ID:             row.ID,
		UserID:         row.UserID,
		ExternalID:     row.ExternalID,
		Title:          row.Title,
		Tags:           nonNilTags(row.Tags),
		OriginDuration: int(row.OriginDuration),
		StartSec:       intPtr(row.StartSec),
		EndSec:         intPtr(row.EndSec),
		Duration:       int(row.Duration),
		ThumbnailURL:   row.ThumbnailURL,
		IsBookmarked:   row.IsBookmarked,
		SharedCount:    row.SharedCount,
		PlayInfo:       playInfo,
		Folder: po.FolderRef{
			ID:         row.FolderID,
			Title:      row.FolderTitle,
			Visibility: po.Visibility(row.FolderVisibility),
		},
		CreatedAt: mustTimestamp(row.CreatedAt),
		UpdatedAt: mustTimestamp(row.UpdatedAt),
		Version:   row.Version,
	}, nil
}

// EncodePlayInfo 序列化 play_info JSONB。
func EncodePlayInfo(info po.PlayInfo) ([]byte, error) {
	data, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("encode play_info: %w", err)
	}
	return data, nil
}
