package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// PlaylistColumns 是 library.playlists 的标准查询列。
const PlaylistColumns = `id, user_id, title, visibility, folder_id, tags, duration, routines, is_bookmarked,
	shared_count, success_notification, fail_notification, created_at, updated_at, version`

// PlaylistRow 是 library.playlists 的扫描目标。
type PlaylistRow struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Title               string
	Visibility          int16
	FolderID            pgtype.UUID
	Tags                []string
	Duration            int32
	Routines            []byte
	IsBookmarked        bool
	SharedCount         int64
	SuccessNotification pgtype.Text
	FailNotification    pgtype.Text
	CreatedAt           pgtype.Timestamptz
	UpdatedAt           pgtype.Timestamptz
	Version             int64
}

// Targets 返回 Scan 目标列表。
func (r *PlaylistRow) Targets() []any {
	return []any{
		&r.ID, &r.UserID, &r.Title, &r.Visibility, &r.FolderID, &r.Tags, &r.Duration, &r.Routines,
		&r.IsBookmarked, &r.SharedCount, &r.SuccessNotification, &r.FailNotification,
		&r.CreatedAt, &r.UpdatedAt, &r.Version,
	}
}

// PlaylistFromRow 将扫描结果转换为 po.Playlist。
func PlaylistFromRow(row PlaylistRow) (*po.Playlist, error) {
	routines := []po.Routine{}
	if len(row.Routines) > 0 {
		if err := json.Unmarshal(row.Routines, &routines); err != nil {
			return nil, fmt.Errorf("decode routines for playlist %s: %w", row.ID, err)
		}
	}
	var folderID *uuid.UUID
	if row.FolderID.Valid {
		id := uuid.UUID(row.FolderID.Bytes)
		folderID = &id
	}
	return &po.Playlist{
		ID:                  row.ID,
		UserID:              row.UserID,
		Title:               row.Title,
		Visibility:          po.Visibility(row.Visibility),
		FolderID:            folderID,
		Tags:                nonNilTags(row.Tags),
		Duration:            int(row.Duration),
		Routines:            routines,
		IsBookmarked:        row.IsBookmarked,
		SharedCount:         row.SharedCount,
		SuccessNotification: textPtr(row.SuccessNotification),
		FailNotification:    textPtr(row.FailNotification),
		CreatedAt:           mustTimestamp(row.CreatedAt),
		UpdatedAt:           mustTimestamp(row.UpdatedAt),
		Version:             row.Version,
	}, nil
}

// EncodeRoutines 序列化 routines JSONB，nil 输出为空数组。
func EncodeRoutines(routines []po.Routine) ([]byte, error) {
	out := make([]po.Routine, len(routines))
	for i, routine := range routines {
		out[i] = routine
		if out[i].Videos == nil {
			out[i].Videos = []po.Occurrence{}
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode routines: %w", err)
	}
	return data, nil
}

// ToPgUUID 将可空 uuid 转换为 pgtype.UUID。
func ToPgUUID(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}
