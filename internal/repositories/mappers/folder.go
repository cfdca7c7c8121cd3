package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// FolderColumns 是 library.folders 的标准查询列。
const FolderColumns = `id, user_id, title, external_playlist_id, visibility, is_default, is_bookmarked,
	shared_count, tags, videos, created_at, updated_at, version`

// FolderRow 是 library.folders 的扫描目标。
type FolderRow struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Title              string
	ExternalPlaylistID pgtype.Text
	Visibility         int16
	IsDefault          bool
	IsBookmarked       bool
	SharedCount        int64
	Tags               []string
	Videos             []byte
	CreatedAt          pgtype.Timestamptz
	UpdatedAt          pgtype.Timestamptz
	Version            int64
}

// Targets 返回 Scan 目标列表。
func (r *FolderRow) Targets() []any {
	return []any{
		&r.ID, &r.UserID, &r.Title, &r.ExternalPlaylistID, &r.Visibility, &r.IsDefault, &r.IsBookmarked,
		&r.SharedCount, &r.Tags, &r.Videos, &r.CreatedAt, &r.UpdatedAt, &r.Version,
	}
}

// FolderFromRow 将扫描结果转换为 po.Folder。
func FolderFromRow(row FolderRow) (*po.Folder, error) {
	videos := []po.FolderVideo{}
	if len(row.Videos) > 0 {
		if err := json.Unmarshal(row.Videos, &videos); err != nil {
			return nil, fmt.Errorf("decode videos for folder %s: %w", row.ID, err)
		}
	}
	return &po.Folder{
		ID:                 row.ID,
		UserID:             row.UserID,
		Title:              row.Title,
		ExternalPlaylistID: textPtr(row.ExternalPlaylistID),
		Visibility:         po.Visibility(row.Visibility),
		IsDefault:          row.IsDefault,
		IsBookmarked:       row.IsBookmarked,
		SharedCount:        row.SharedCount,
		Tags:               nonNilTags(row.Tags),
		Videos:             videos,
		CreatedAt:          mustTimestamp(row.CreatedAt),
		UpdatedAt:          mustTimestamp(row.UpdatedAt),
		Version:            row.Version,
	}, nil
}

// EncodeFolderVideos 序列化 videos JSONB，nil 输出为空数组。
func EncodeFolderVideos(videos []po.FolderVideo) ([]byte, error) {
	if videos == nil {
		videos = []po.FolderVideo{}
	}
	data, err := json.Marshal(videos)
	if err != nil {
		return nil, fmt.Errorf("encode folder videos: %w", err)
	}
	return data, nil
}

// EncodeFolderVideo 序列化单个摘要，用于 jsonb 追加。
func EncodeFolderVideo(video po.FolderVideo) ([]byte, error) {
	data, err := json.Marshal(video)
	if err != nil {
		return nil, fmt.Errorf("encode folder video %s: %w", video.ID, err)
	}
	return data, nil
}
