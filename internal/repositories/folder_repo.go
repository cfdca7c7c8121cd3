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

// ErrFolderNotFound 表示文件夹不存在。
var ErrFolderNotFound = errors.New("folder not found")

const (
	defaultFolderTitle = "Default"
	hiddenFolderTitle  = "Hidden"
)

// FolderRepository 维护 library.folders 及其内嵌的视频摘要数组。
type FolderRepository struct {
	db  *pgxpool.Pool
	log *log.Helper
}

// NewFolderRepository 构造仓储实例。
func NewFolderRepository(db *pgxpool.Pool, logger log.Logger) *FolderRepository {
	return &FolderRepository{
		db:  db,
		log: log.NewHelper(logger),
	}
}

// CreateFolderInput 描述新建文件夹参数。
type CreateFolderInput struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Title              string
	ExternalPlaylistID *string
	Visibility         po.Visibility
	IsDefault          bool
	Tags               []string
}

// UpdateFolderInput 描述文件夹元数据的整体覆盖写入。
type UpdateFolderInput struct {
	ID           uuid.UUID
	Title        string
	Visibility   po.Visibility
	IsBookmarked bool
	Tags         []string
}

// Create 新建文件夹，videos 初始为空数组。
func (r *FolderRepository) Create(ctx context.Context, sess txmanager.Session, input CreateFolderInput) (*po.Folder, error) {
	id := input.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	row := pick(r.db, sess).QueryRow(ctx, `
INSERT INTO library.folders (id, user_id, title, external_playlist_id, visibility, is_default, tags)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING `+mappers.FolderColumns,
		id, input.UserID, input.Title, mappers.ToPgText(input.ExternalPlaylistID), int16(input.Visibility),
		input.IsDefault, nonNil(input.Tags))
	folder, err := scanFolder(row)
	if err != nil {
		r.log.WithContext(ctx).Errorf("create folder failed: user=%s title=%s err=%v", input.UserID, input.Title, err)
		return nil, fmt.Errorf("create folder: %w", err)
	}
	r.log.WithContext(ctx).Infof("folder created: folder=%s user=%s visibility=%d", folder.ID, folder.UserID, folder.Visibility)
	return folder, nil
}

// Get 返回文件夹。
func (r *FolderRepository) Get(ctx context.Context, sess txmanager.Session, folderID uuid.UUID) (*po.Folder, error) {
	return r.getOne(ctx, sess, `SELECT `+mappers.FolderColumns+` FROM library.folders WHERE id = $1`, folderID)
}

// GetForUpdate 在事务内锁定文件夹行，无事务时等同于 Get。
func (r *FolderRepository) GetForUpdate(ctx context.Context, sess txmanager.Session, folderID uuid.UUID) (*po.Folder, error) {
	return r.getOne(ctx, sess, `SELECT `+mappers.FolderColumns+` FROM library.folders WHERE id = $1 FOR UPDATE`, folderID)
}

// ListByUser 返回用户的全部文件夹（不含隐藏文件夹）。
func (r *FolderRepository) ListByUser(ctx context.Context, sess txmanager.Session, userID uuid.UUID) ([]*po.Folder, error) {
	rows, err := pick(r.db, sess).Query(ctx,
		`SELECT `+mappers.FolderColumns+` FROM library.folders WHERE user_id = $1 AND visibility > 0 ORDER BY is_default DESC, created_at, id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()
	var out []*po.Folder
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, folder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}
	return out, nil
}

// EnsureDefault 返回用户的默认文件夹，不存在时创建。
func (r *FolderRepository) EnsureDefault(ctx context.Context, sess txmanager.Session, userID uuid.UUID) (*po.Folder, error) {
	return r.ensureSystem(ctx, sess, userID, `is_default`, CreateFolderInput{
		UserID:     userID,
		Title:      defaultFolderTitle,
		Visibility: po.VisibilityOwner,
		IsDefault:  true,
	})
}

// EnsureHidden 返回用户的隐藏文件夹（visibility=0），不存在时创建。
func (r *FolderRepository) EnsureHidden(ctx context.Context, sess txmanager.Session, userID uuid.UUID) (*po.Folder, error) {
	return r.ensureSystem(ctx, sess, userID, `visibility = 0`, CreateFolderInput{
		UserID:     userID,
		Title:      hiddenFolderTitle,
		Visibility: po.VisibilityHidden,
	})
}

func (r *FolderRepository) ensureSystem(ctx context.Context, sess txmanager.Session, userID uuid.UUID, predicate string, input CreateFolderInput) (*po.Folder, error) {
	q := pick(r.db, sess)
	row := q.QueryRow(ctx, `
INSERT INTO library.folders (id, user_id, title, visibility, is_default)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT DO NOTHING
RETURNING `+mappers.FolderColumns,
		uuid.New(), userID, input.Title, int16(input.Visibility), input.IsDefault)
	folder, err := scanFolder(row)
	if err == nil {
		r.log.WithContext(ctx).Infof("system folder created: folder=%s user=%s", folder.ID, userID)
		return folder, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("ensure system folder: %w", err)
	}
	return r.getOne(ctx, sess,
		`SELECT `+mappers.FolderColumns+` FROM library.folders WHERE user_id = $1 AND `+predicate, userID)
}

// Update 覆盖写入文件夹元数据，不触及 videos 数组。
func (r *FolderRepository) Update(ctx context.Context, sess txmanager.Session, input UpdateFolderInput) (*po.Folder, error) {
	row := pick(r.db, sess).QueryRow(ctx, `
UPDATE library.folders
SET title = $2, visibility = $3, is_bookmarked = $4, tags = $5, updated_at = now(), version = version + 1
WHERE id = $1
RETURNING `+mappers.FolderColumns,
		input.ID, input.Title, int16(input.Visibility), input.IsBookmarked, nonNil(input.Tags))
	folder, err := scanFolder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFolderNotFound
		}
		r.log.WithContext(ctx).Errorf("update folder failed: folder=%s err=%v", input.ID, err)
		return nil, fmt.Errorf("update folder: %w", err)
	}
	return folder, nil
}

// SetExternalPlaylist 记录文件夹对应的外部播放列表 id。
func (r *FolderRepository) SetExternalPlaylist(ctx context.Context, sess txmanager.Session, folderID uuid.UUID, externalID string) error {
	tag, err := pick(r.db, sess).Exec(ctx, `
UPDATE library.folders
SET external_playlist_id = $2, updated_at = now(), version = version + 1
WHERE id = $1 AND external_playlist_id IS DISTINCT FROM $2`, folderID, externalID)
	if err != nil {
		return fmt.Errorf("set folder external playlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.ensureExists(ctx, sess, folderID)
	}
	return nil
}

// PushVideo 在摘要数组末尾追加视频，已存在同 id 条目时不做修改并返回 false。
func (r *FolderRepository) PushVideo(ctx context.Context, sess txmanager.Session, folderID uuid.UUID, video po.FolderVideo) (bool, error) {
	payload, err := mappers.EncodeFolderVideo(video)
	if err != nil {
		return false, err
	}
	tag, err := pick(r.db, sess).Exec(ctx, `
UPDATE library.folders
SET videos = videos || jsonb_build_array($2::jsonb), updated_at = now(), version = version + 1
WHERE id = $1 AND NOT videos @> jsonb_build_array(jsonb_build_object('id', $3::text))`,
		folderID, string(payload), video.ID.String())
	if err != nil {
		r.log.WithContext(ctx).Errorf("push folder video failed: folder=%s video=%s err=%v", folderID, video.ID, err)
		return false, fmt.Errorf("push folder video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, r.ensureExists(ctx, sess, folderID)
	}
	return true, nil
}

// PullVideo 从摘要数组中移除视频并保持其余条目顺序，未包含时返回 false。
func (r *FolderRepository) PullVideo(ctx context.Context, sess txmanager.Session, folderID, videoID uuid.UUID) (bool, error) {
	tag, err := pick(r.db, sess).Exec(ctx, `
UPDATE library.folders f
SET videos = COALESCE((
		SELECT jsonb_agg(e.elem ORDER BY e.idx)
		FROM jsonb_array_elements(f.videos) WITH ORDINALITY AS e(elem, idx)
		WHERE e.elem->>'id' <> $2::text
	), '[]'::jsonb),
	updated_at = now(), version = version + 1
WHERE f.id = $1 AND f.videos @> jsonb_build_array(jsonb_build_object('id', $2::text))`,
		folderID, videoID.String())
	if err != nil {
		r.log.WithContext(ctx).Errorf("pull folder video failed: folder=%s video=%s err=%v", folderID, videoID, err)
		return false, fmt.Errorf("pull folder video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, r.ensureExists(ctx, sess, folderID)
	}
	return true, nil
}

// UpdateVideoSummary 原位替换摘要数组中同 id 的条目，未包含时返回 false。
func (r *FolderRepository) UpdateVideoSummary(ctx context.Context, sess txmanager.Session, folderID uuid.UUID, video po.FolderVideo) (bool, error) {
	payload, err := mappers.EncodeFolderVideo(video)
	if err != nil {
		return false, err
	}
	tag, err := pick(r.db, sess).Exec(ctx, `
UPDATE library.folders f
SET videos = (
		SELECT jsonb_agg(CASE WHEN e.elem->>'id' = $2::text THEN $3::jsonb ELSE e.elem END ORDER BY e.idx)
		FROM jsonb_array_elements(f.videos) WITH ORDINALITY AS e(elem, idx)
	),
	updated_at = now(), version = version + 1
WHERE f.id = $1 AND f.videos @> jsonb_build_array(jsonb_build_object('id', $2::text))`,
		folderID, video.ID.String(), string(payload))
	if err != nil {
		return false, fmt.Errorf("update folder video summary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, r.ensureExists(ctx, sess, folderID)
	}
	return true, nil
}

// ReplaceVideos 整体覆盖摘要数组。
func (r *FolderRepository) ReplaceVideos(ctx context.Context, sess txmanager.Session, folderID uuid.UUID, videos []po.FolderVideo) error {
	payload, err := mappers.EncodeFolderVideos(videos)
	if err != nil {
		return err
	}
	tag, err := pick(r.db, sess).Exec(ctx, `
UPDATE library.folders
SET videos = $2::jsonb, updated_at = now(), version = version + 1
WHERE id = $1`, folderID, string(payload))
	if err != nil {
		return fmt.Errorf("replace folder videos: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFolderNotFound
	}
	return nil
}

// IncrementShared 将文件夹 shared_count 加一。
func (r *FolderRepository) IncrementShared(ctx context.Context, sess txmanager.Session, folderID uuid.UUID) error {
	tag, err := pick(r.db, sess).Exec(ctx,
		`UPDATE library.folders SET shared_count = shared_count + 1 WHERE id = $1`, folderID)
	if err != nil {
		return fmt.Errorf("increment folder shared count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFolderNotFound
	}
	return nil
}

func (r *FolderRepository) getOne(ctx context.Context, sess txmanager.Session, sql string, args ...any) (*po.Folder, error) {
	folder, err := scanFolder(pick(r.db, sess).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFolderNotFound
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}
	return folder, nil
}

func (r *FolderRepository) ensureExists(ctx context.Context, sess txmanager.Session, folderID uuid.UUID) error {
	var exists bool
	if err := pick(r.db, sess).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM library.folders WHERE id = $1)`, folderID).Scan(&exists); err != nil {
		return fmt.Errorf("check folder exists: %w", err)
	}
	if !exists {
		return ErrFolderNotFound
	}
	return nil
}

func scanFolder(row pgx.Row) (*po.Folder, error) {
	var rec mappers.FolderRow
	if err := row.Scan(rec.Targets()...); err != nil {
		return nil, err
	}
	return mappers.FolderFromRow(rec)
}
