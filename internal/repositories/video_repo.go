package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/repositories/mappers"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrVideoNotFound 表示请求的视频不存在。
var ErrVideoNotFound = errors.New("video not found")

// VideoRepository 提供 library.videos 的持久化访问能力。
type VideoRepository struct {
	db  *pgxpool.Pool
	log *log.Helper
}

// NewVideoRepository 构造 VideoRepository 实例（供 Wire 注入使用）。
func NewVideoRepository(db *pgxpool.Pool, logger log.Logger) *VideoRepository {
	return &VideoRepository{
		db:  db,
		log: log.NewHelper(logger),
	}
}

// InsertVideoInput 描述新规范视频的写入参数，ID 为空时自动生成。
type InsertVideoInput struct {
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
	Folder         po.FolderRef
}

// UpdateVideoInput 描述可编辑字段的整体覆盖写入。
type UpdateVideoInput struct {
	ID           uuid.UUID
	Title        string
	Tags         []string
	StartSec     *int
	EndSec       *int
	Duration     int
	IsBookmarked bool
}

// Get 返回单个视频。
func (r *VideoRepository) Get(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.Video, error) {
	row := pick(r.db, sess).QueryRow(ctx,
		`SELECT `+mappers.VideoColumns+` FROM library.videos WHERE id = $1`, videoID)
	video, err := scanVideo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("get video: %w", err)
	}
	return video, nil
}

// FindByExternalIDs 批量按 (user_id, external_id) 查找已有视频，未命中的 id 不出现在结果中。
func (r *VideoRepository) FindByExternalIDs(ctx context.Context, sess txmanager.Session, userID uuid.UUID, externalIDs []string) ([]*po.Video, error) {
	if len(externalIDs) == 0 {
		return nil, nil
	}
	rows, err := pick(r.db, sess).Query(ctx,
		`SELECT `+mappers.VideoColumns+` FROM library.videos WHERE user_id = $1 AND external_id = ANY($2)`,
		userID, externalIDs)
	if err != nil {
		r.log.WithContext(ctx).Errorf("find videos by external ids failed: user=%s count=%d err=%v", userID, len(externalIDs), err)
		return nil, fmt.Errorf("find videos by external ids: %w", err)
	}
	return collectVideos(rows)
}

// ListByIDs 返回指定用户下的视频集合。
func (r *VideoRepository) ListByIDs(ctx context.Context, sess txmanager.Session, userID uuid.UUID, ids []uuid.UUID) ([]*po.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := pick(r.db, sess).Query(ctx,
		`SELECT `+mappers.VideoColumns+` FROM library.videos WHERE user_id = $1 AND id = ANY($2)`,
		userID, ids)
	if err != nil {
		return nil, fmt.Errorf("list videos by ids: %w", err)
	}
	return collectVideos(rows)
}

// ListByFolder 按创建顺序返回文件夹下的全部规范视频。
func (r *VideoRepository) ListByFolder(ctx context.Context, sess txmanager.Session, folderID uuid.UUID) ([]*po.Video, error) {
	rows, err := pick(r.db, sess).Query(ctx,
		`SELECT `+mappers.VideoColumns+` FROM library.videos WHERE folder_id = $1 ORDER BY created_at, id`,
		folderID)
	if err != nil {
		return nil, fmt.Errorf("list videos by folder: %w", err)
	}
	return collectVideos(rows)
}

// InsertIfAbsent 写入规范视频；(user_id, external_id) 已存在时返回已有记录且 inserted=false。
func (r *VideoRepository) InsertIfAbsent(ctx context.Context, sess txmanager.Session, input InsertVideoInput) (*po.Video, bool, error) {
	id := input.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	q := pick(r.db, sess)
	row := q.QueryRow(ctx, `
INSERT INTO library.videos (
	id, user_id, external_id, title, tags, origin_duration, start_sec, end_sec, duration,
	thumbnail_url, folder_id, folder_title, folder_visibility
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (user_id, external_id) DO NOTHING
RETURNING `+mappers.VideoColumns,
		id, input.UserID, input.ExternalID, input.Title, nonNil(input.Tags), int32(input.OriginDuration),
		mappers.ToPgInt4(input.StartSec), mappers.ToPgInt4(input.EndSec), int32(input.Duration),
		input.ThumbnailURL, input.Folder.ID, input.Folder.Title, int16(input.Folder.Visibility))
	video, err := scanVideo(row)
	if err == nil {
		r.log.WithContext(ctx).Debugf("video inserted: id=%s external_id=%s folder=%s", video.ID, video.ExternalID, video.Folder.ID)
		return video, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.log.WithContext(ctx).Errorf("insert video failed: user=%s external_id=%s err=%v", input.UserID, input.ExternalID, err)
		return nil, false, fmt.Errorf("insert video: %w", err)
	}

	existing, err := scanVideo(q.QueryRow(ctx,
		`SELECT `+mappers.VideoColumns+` FROM library.videos WHERE user_id = $1 AND external_id = $2`,
		input.UserID, input.ExternalID))
	if err != nil {
		return nil, false, fmt.Errorf("load conflicting video: %w", err)
	}
	return existing, false, nil
}

// AssignFolder 更新视频的文件夹反向引用；已位于目标文件夹时返回 changed=false。
func (r *VideoRepository) AssignFolder(ctx context.Context, sess txmanager.Session, videoID uuid.UUID, folder po.FolderRef) (*po.Video, bool, error) {
	row := pick(r.db, sess).QueryRow(ctx, `
UPDATE library.videos
SET folder_id = $2, folder_title = $3, folder_visibility = $4, updated_at = now(), version = version + 1
WHERE id = $1 AND folder_id <> $2
RETURNING `+mappers.VideoColumns,
		videoID, folder.ID, folder.Title, int16(folder.Visibility))
	video, err := scanVideo(row)
	if err == nil {
		return video, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.log.WithContext(ctx).Errorf("assign video folder failed: video=%s folder=%s err=%v", videoID, folder.ID, err)
		return nil, false, fmt.Errorf("assign video folder: %w", err)
	}
	current, err := r.Get(ctx, sess, videoID)
	if err != nil {
		return nil, false, err
	}
	return current, false, nil
}

// RefreshFolderRef 在文件夹改名或调整可见级别后刷新所有视频的冗余引用。
func (r *VideoRepository) RefreshFolderRef(ctx context.Context, sess txmanager.Session, folder po.FolderRef) (int64, error) {
	tag, err := pick(r.db, sess).Exec(ctx, `
UPDATE library.videos
SET folder_title = $2, folder_visibility = $3, updated_at = now(), version = version + 1
WHERE folder_id = $1 AND (folder_title <> $2 OR folder_visibility <> $3)`,
		folder.ID, folder.Title, int16(folder.Visibility))
	if err != nil {
		return 0, fmt.Errorf("refresh folder ref: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Update 覆盖写入可编辑字段并返回更新后的实体。
func (r *VideoRepository) Update(ctx context.Context, sess txmanager.Session, input UpdateVideoInput) (*po.Video, error) {
	row := pick(r.db, sess).QueryRow(ctx, `
UPDATE library.videos
SET title = $2, tags = $3, start_sec = $4, end_sec = $5, duration = $6, is_bookmarked = $7,
	updated_at = now(), version = version + 1
WHERE id = $1
RETURNING `+mappers.VideoColumns,
		input.ID, input.Title, nonNil(input.Tags), mappers.ToPgInt4(input.StartSec), mappers.ToPgInt4(input.EndSec),
		int32(input.Duration), input.IsBookmarked)
	video, err := scanVideo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVideoNotFound
		}
		r.log.WithContext(ctx).Errorf("update video failed: video=%s err=%v", input.ID, err)
		return nil, fmt.Errorf("update video: %w", err)
	}
	r.log.WithContext(ctx).Infof("video updated: video=%s version=%d", video.ID, video.Version)
	return video, nil
}

// Delete 删除视频记录并返回被删除的实体快照。
func (r *VideoRepository) Delete(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.Video, error) {
	row := pick(r.db, sess).QueryRow(ctx,
		`DELETE FROM library.videos WHERE id = $1 RETURNING `+mappers.VideoColumns, videoID)
	video, err := scanVideo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVideoNotFound
		}
		r.log.WithContext(ctx).Errorf("delete video failed: video=%s err=%v", videoID, err)
		return nil, fmt.Errorf("delete video: %w", err)
	}
	r.log.WithContext(ctx).Infof("video deleted: video=%s", videoID)
	return video, nil
}

// IncrementSharedByExternalIDs 将源用户下指定外部 id 的视频 shared_count 各加一，返回命中行数。
func (r *VideoRepository) IncrementSharedByExternalIDs(ctx context.Context, sess txmanager.Session, userID uuid.UUID, externalIDs []string) (int64, error) {
	if len(externalIDs) == 0 {
		return 0, nil
	}
	tag, err := pick(r.db, sess).Exec(ctx,
		`UPDATE library.videos SET shared_count = shared_count + 1 WHERE user_id = $1 AND external_id = ANY($2)`,
		userID, externalIDs)
	if err != nil {
		return 0, fmt.Errorf("increment shared count by external ids: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanVideo(row pgx.Row) (*po.Video, error) {
	var rec mappers.VideoRow
	if err := row.Scan(rec.Targets()...); err != nil {
		return nil, err
	}
	return mappers.VideoFromRow(rec)
}

func collectVideos(rows pgx.Rows) ([]*po.Video, error) {
	defer rows.Close()
	var out []*po.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}
	return out, nil
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
