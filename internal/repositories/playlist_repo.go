package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/repositories/mappers"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPlaylistNotFound 表示播放列表不存在。
var ErrPlaylistNotFound = errors.New("playlist not found")

// PlaylistRepository 维护 library.playlists 及其内嵌 routines。
type PlaylistRepository struct {
	db  *pgxpool.Pool
	log *log.Helper
}

// NewPlaylistRepository 构造仓储实例。
func NewPlaylistRepository(db *pgxpool.Pool, logger log.Logger) *PlaylistRepository {
	return &PlaylistRepository{
		db:  db,
		log: log.NewHelper(logger),
	}
}

// CreatePlaylistInput 描述新建播放列表参数。
type CreatePlaylistInput struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Title               string
	Visibility          po.Visibility
	FolderID            *uuid.UUID
	Tags                []string
	Duration            int
	Routines            []po.Routine
	SuccessNotification *string
	FailNotification    *string
}

// ListLinkedInput 描述同步任务的分页扫描参数。
type ListLinkedInput struct {
	After       uuid.UUID
	Limit       int32
	StaleBefore time.Time
}

// Create 写入新播放列表。
func (r *PlaylistRepository) Create(ctx context.Context, sess txmanager.Session, input CreatePlaylistInput) (*po.Playlist, error) {
	id := input.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	routines, err := mappers.EncodeRoutines(input.Routines)
	if err != nil {
		return nil, err
	}
	row := pick(r.db, sess).QueryRow(ctx, `
INSERT INTO library.playlists (
	id, user_id, title, visibility, folder_id, tags, duration, routines, success_notification, fail_notification
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9, $10)
RETURNING `+mappers.PlaylistColumns,
		id, input.UserID, input.Title, int16(input.Visibility), mappers.ToPgUUID(input.FolderID), nonNil(input.Tags),
		int32(input.Duration), string(routines), mappers.ToPgText(input.SuccessNotification), mappers.ToPgText(input.FailNotification))
	playlist, err := scanPlaylist(row)
	if err != nil {
		r.log.WithContext(ctx).Errorf("create playlist failed: user=%s title=%s err=%v", input.UserID, input.Title, err)
		return nil, fmt.Errorf("create playlist: %w", err)
	}
	r.log.WithContext(ctx).Infof("playlist created: playlist=%s routines=%d duration=%d", playlist.ID, len(playlist.Routines), playlist.Duration)
	return playlist, nil
}

// Get 返回播放列表。
func (r *PlaylistRepository) Get(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID) (*po.Playlist, error) {
	return r.getOne(ctx, sess, `SELECT `+mappers.PlaylistColumns+` FROM library.playlists WHERE id = $1`, playlistID)
}

// GetForUpdate 在事务内锁定播放列表行。
func (r *PlaylistRepository) GetForUpdate(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID) (*po.Playlist, error) {
	return r.getOne(ctx, sess, `SELECT `+mappers.PlaylistColumns+` FROM library.playlists WHERE id = $1 FOR UPDATE`, playlistID)
}

// ListByUser 返回用户的全部播放列表。
func (r *PlaylistRepository) ListByUser(ctx context.Context, sess txmanager.Session, userID uuid.UUID) ([]*po.Playlist, error) {
	rows, err := pick(r.db, sess).Query(ctx,
		`SELECT `+mappers.PlaylistColumns+` FROM library.playlists WHERE user_id = $1 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	return collectPlaylists(rows)
}

// ListReferencingVideo 返回 routines 中引用了指定视频的播放列表。
func (r *PlaylistRepository) ListReferencingVideo(ctx context.Context, sess txmanager.Session, userID, videoID uuid.UUID) ([]*po.Playlist, error) {
	probe, err := json.Marshal([]map[string]any{{
		"videos": []map[string]string{{"video_id": videoID.String()}},
	}})
	if err != nil {
		return nil, fmt.Errorf("encode routine probe: %w", err)
	}
	rows, err := pick(r.db, sess).Query(ctx,
		`SELECT `+mappers.PlaylistColumns+` FROM library.playlists WHERE user_id = $1 AND routines @> $2::jsonb ORDER BY id`,
		userID, string(probe))
	if err != nil {
		r.log.WithContext(ctx).Errorf("list playlists referencing video failed: video=%s err=%v", videoID, err)
		return nil, fmt.Errorf("list playlists referencing video: %w", err)
	}
	return collectPlaylists(rows)
}

// ListLinked 按 id 游标扫描含外部关联 routine 且上次同步早于 StaleBefore 的播放列表。
func (r *PlaylistRepository) ListLinked(ctx context.Context, sess txmanager.Session, input ListLinkedInput) ([]*po.Playlist, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 100
	}
	rows, err := pick(r.db, sess).Query(ctx, `
SELECT `+mappers.PlaylistColumns+`
FROM library.playlists
WHERE id > $1
	AND jsonb_path_exists(routines, '$[*].external_playlist_id')
	AND (last_synced_at IS NULL OR last_synced_at < $2)
ORDER BY id
LIMIT $3`, input.After, input.StaleBefore, limit)
	if err != nil {
		return nil, fmt.Errorf("list linked playlists: %w", err)
	}
	return collectPlaylists(rows)
}

// Save 覆盖写入播放列表的可变字段。
func (r *PlaylistRepository) Save(ctx context.Context, sess txmanager.Session, playlist *po.Playlist) (*po.Playlist, error) {
	if playlist == nil {
		return nil, fmt.Errorf("save playlist: nil playlist")
	}
	routines, err := mappers.EncodeRoutines(playlist.Routines)
	if err != nil {
		return nil, err
	}
	row := pick(r.db, sess).QueryRow(ctx, `
UPDATE library.playlists
SET title = $2, visibility = $3, tags = $4, duration = $5, routines = $6::jsonb, is_bookmarked = $7,
	success_notification = $8, fail_notification = $9, updated_at = now(), version = version + 1
WHERE id = $1
RETURNING `+mappers.PlaylistColumns,
		playlist.ID, playlist.Title, int16(playlist.Visibility), nonNil(playlist.Tags), int32(playlist.Duration),
		string(routines), playlist.IsBookmarked, mappers.ToPgText(playlist.SuccessNotification),
		mappers.ToPgText(playlist.FailNotification))
	saved, err := scanPlaylist(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlaylistNotFound
		}
		r.log.WithContext(ctx).Errorf("save playlist failed: playlist=%s err=%v", playlist.ID, err)
		return nil, fmt.Errorf("save playlist: %w", err)
	}
	return saved, nil
}

// UpdateRoutines 替换 routines 与聚合时长；synced=true 时同时记录同步时间。
func (r *PlaylistRepository) UpdateRoutines(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID, routines []po.Routine, duration int, synced bool) (*po.Playlist, error) {
	payload, err := mappers.EncodeRoutines(routines)
	if err != nil {
		return nil, err
	}
	row := pick(r.db, sess).QueryRow(ctx, `
UPDATE library.playlists
SET routines = $2::jsonb, duration = $3,
	last_synced_at = CASE WHEN $4::boolean THEN now() ELSE last_synced_at END,
	updated_at = now(), version = version + 1
WHERE id = $1
RETURNING `+mappers.PlaylistColumns,
		playlistID, string(payload), int32(duration), synced)
	saved, err := scanPlaylist(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlaylistNotFound
		}
		r.log.WithContext(ctx).Errorf("update playlist routines failed: playlist=%s err=%v", playlistID, err)
		return nil, fmt.Errorf("update playlist routines: %w", err)
	}
	return saved, nil
}

// MarkSynced 仅记录同步时间，用于无需改动的同步结果。
func (r *PlaylistRepository) MarkSynced(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID) error {
	tag, err := pick(r.db, sess).Exec(ctx,
		`UPDATE library.playlists SET last_synced_at = now() WHERE id = $1`, playlistID)
	if err != nil {
		return fmt.Errorf("mark playlist synced: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// IncrementShared 将播放列表 shared_count 加一。
func (r *PlaylistRepository) IncrementShared(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID) error {
	tag, err := pick(r.db, sess).Exec(ctx,
		`UPDATE library.playlists SET shared_count = shared_count + 1 WHERE id = $1`, playlistID)
	if err != nil {
		return fmt.Errorf("increment playlist shared count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

func (r *PlaylistRepository) getOne(ctx context.Context, sess txmanager.Session, sql string, args ...any) (*po.Playlist, error) {
	playlist, err := scanPlaylist(pick(r.db, sess).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	return playlist, nil
}

func scanPlaylist(row pgx.Row) (*po.Playlist, error) {
	var rec mappers.PlaylistRow
	if err := row.Scan(rec.Targets()...); err != nil {
		return nil, err
	}
	return mappers.PlaylistFromRow(rec)
}

func collectPlaylists(rows pgx.Rows) ([]*po.Playlist, error) {
	defer rows.Close()
	var out []*po.Playlist
	for rows.Next() {
		playlist, err := scanPlaylist(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}
	return out, nil
}
