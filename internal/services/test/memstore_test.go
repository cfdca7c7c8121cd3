package services_test

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/bionicotaku/lingo-services-library/internal/clients/youtube"
	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"
	"github.com/bionicotaku/lingo-services-library/internal/services"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/google/uuid"
)

// memCatalog 是 VideoStore/FolderStore/PlaylistStore 的内存实现，语义与 Postgres 仓储一致。
type memCatalog struct {
	mu        sync.Mutex
	videos    map[uuid.UUID]*po.Video
	folders   map[uuid.UUID]*po.Folder
	playlists map[uuid.UUID]*po.Playlist
	seq       int
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		videos:    make(map[uuid.UUID]*po.Video),
		folders:   make(map[uuid.UUID]*po.Folder),
		playlists: make(map[uuid.UUID]*po.Playlist),
	}
}

// 深拷贝，避免调用方持有内部状态。
func clone[T any](v *T) *T {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	return &out
}

func (m *memCatalog) tick() time.Time {
	m.seq++
	return time.Unix(1_700_000_000+int64(m.seq), 0).UTC()
}

type memVideos struct{ *memCatalog }

type memFolders struct{ *memCatalog }

type memPlaylists struct{ *memCatalog }

func (m *memCatalog) stores() (memVideos, memFolders, memPlaylists) {
	return memVideos{m}, memFolders{m}, memPlaylists{m}
}

// --- videos ---

func (s memVideos) Get(_ context.Context, _ txmanager.Session, id uuid.UUID) (*po.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		return nil, repositories.ErrVideoNotFound
	}
	return clone(v), nil
}

func (s memVideos) FindByExternalIDs(_ context.Context, _ txmanager.Session, userID uuid.UUID, ids []string) ([]*po.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []*po.Video
	for _, v := range s.videos {
		if _, ok := want[v.ExternalID]; ok && v.UserID == userID {
			out = append(out, clone(v))
		}
	}
	return out, nil
}

func (s memVideos) ListByIDs(_ context.Context, _ txmanager.Session, userID uuid.UUID, ids []uuid.UUID) ([]*po.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*po.Video
	for _, id := range ids {
		if v, ok := s.videos[id]; ok && v.UserID == userID {
			out = append(out, clone(v))
		}
	}
	return out, nil
}

func (s memVideos) ListByFolder(_ context.Context, _ txmanager.Session, folderID uuid.UUID) ([]*po.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*po.Video
	for _, v := range s.videos {
		if v.Folder.ID == folderID {
			out = append(out, clone(v))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s memVideos) InsertIfAbsent(_ context.Context, _ txmanager.Session, in repositories.InsertVideoInput) (*po.Video, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.videos {
		if v.UserID == in.UserID && v.ExternalID == in.ExternalID {
			return clone(v), false, nil
		}
	}
	id := in.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	now := s.tick()
	v := &po.Video{
		ID: id, UserID: in.UserID, ExternalID: in.ExternalID, Title: in.Title, Tags: in.Tags,
		OriginDuration: in.OriginDuration, StartSec: in.StartSec, EndSec: in.EndSec, Duration: in.Duration,
		ThumbnailURL: in.ThumbnailURL, Folder: in.Folder, CreatedAt: now, UpdatedAt: now, Version: 1,
	}
	s.videos[id] = v
	return clone(v), true, nil
}

func (s memVideos) AssignFolder(_ context.Context, _ txmanager.Session, id uuid.UUID, ref po.FolderRef) (*po.Video, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		return nil, false, repositories.ErrVideoNotFound
	}
	if v.Folder.ID == ref.ID {
		return clone(v), false, nil
	}
	v.Folder = ref
	v.Version++
	return clone(v), true, nil
}

func (s memVideos) Update(_ context.Context, _ txmanager.Session, in repositories.UpdateVideoInput) (*po.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[in.ID]
	if !ok {
		return nil, repositories.ErrVideoNotFound
	}
	v.Title, v.Tags, v.StartSec, v.EndSec, v.Duration, v.IsBookmarked = in.Title, in.Tags, in.StartSec, in.EndSec, in.Duration, in.IsBookmarked
	v.Version++
	return clone(v), nil
}

func (s memVideos) Delete(_ context.Context, _ txmanager.Session, id uuid.UUID) (*po.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		return nil, repositories.ErrVideoNotFound
	}
	delete(s.videos, id)
	return v, nil
}

func (s memVideos) IncrementSharedByExternalIDs(_ context.Context, _ txmanager.Session, userID uuid.UUID, ids []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var n int64
	for _, v := range s.videos {
		if _, ok := want[v.ExternalID]; ok && v.UserID == userID {
			v.SharedCount++
			n++
		}
	}
	return n, nil
}

func (s memVideos) RefreshFolderRef(_ context.Context, _ txmanager.Session, ref po.FolderRef) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, v := range s.videos {
		if v.Folder.ID == ref.ID && v.Folder != ref {
			v.Folder = ref
			n++
		}
	}
	return n, nil
}

// --- folders ---

func (s memFolders) Create(_ context.Context, _ txmanager.Session, in repositories.CreateFolderInput) (*po.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := in.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	now := s.tick()
	f := &po.Folder{
		ID: id, UserID: in.UserID, Title: in.Title, ExternalPlaylistID: in.ExternalPlaylistID,
		Visibility: in.Visibility, IsDefault: in.IsDefault, Tags: in.Tags, Videos: []po.FolderVideo{},
		CreatedAt: now, UpdatedAt: now, Version: 1,
	}
	s.folders[id] = f
	return clone(f), nil
}

func (s memFolders) Get(_ context.Context, _ txmanager.Session, id uuid.UUID) (*po.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.folders[id]
	if !ok {
		return nil, repositories.ErrFolderNotFound
	}
	return clone(f), nil
}

func (s memFolders) GetForUpdate(ctx context.Context, sess txmanager.Session, id uuid.UUID) (*po.Folder, error) {
	return s.Get(ctx, sess, id)
}

func (s memFolders) ListByUser(_ context.Context, _ txmanager.Session, userID uuid.UUID) ([]*po.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*po.Folder
	for _, f := range s.folders {
		if f.UserID == userID && f.Visibility > po.VisibilityHidden {
			out = append(out, clone(f))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s memFolders) Update(_ context.Context, _ txmanager.Session, in repositories.UpdateFolderInput) (*po.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.folders[in.ID]
	if !ok {
		return nil, repositories.ErrFolderNotFound
	}
	f.Title, f.Visibility, f.IsBookmarked, f.Tags = in.Title, in.Visibility, in.IsBookmarked, in.Tags
	f.Version++
	return clone(f), nil
}

func (s memFolders) ensure(ctx context.Context, userID uuid.UUID, match func(*po.Folder) bool, in repositories.CreateFolderInput) (*po.Folder, error) {
	s.mu.Lock()
	for _, f := range s.folders {
		if f.UserID == userID && match(f) {
			out := clone(f)
			s.mu.Unlock()
			return out, nil
		}
	}
	s.mu.Unlock()
	return s.Create(ctx, nil, in)
}

func (s memFolders) EnsureDefault(ctx context.Context, _ txmanager.Session, userID uuid.UUID) (*po.Folder, error) {
	return s.ensure(ctx, userID, func(f *po.Folder) bool { return f.IsDefault }, repositories.CreateFolderInput{
		UserID: userID, Title: "Default", Visibility: po.VisibilityOwner, IsDefault: true,
	})
}

func (s memFolders) EnsureHidden(ctx context.Context, _ txmanager.Session, userID uuid.UUID) (*po.Folder, error) {
	return s.ensure(ctx, userID, func(f *po.Folder) bool { return f.Visibility == po.VisibilityHidden }, repositories.CreateFolderInput{
		UserID: userID, Title: "Hidden", Visibility: po.VisibilityHidden,
	})
}

func (s memFolders) SetExternalPlaylist(_ context.Context, _ txmanager.Session, id uuid.UUID, externalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.folders[id]
	if !ok {
		return repositories.ErrFolderNotFound
	}
	f.ExternalPlaylistID = &externalID
	return nil
}

func (s memFolders) PushVideo(_ context.Context, _ txmanager.Session, id uuid.UUID, video po.FolderVideo) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.folders[id]
	if !ok {
		return false, repositories.ErrFolderNotFound
	}
	if f.Contains(video.ID) {
		return false, nil
	}
	f.Videos = append(f.Videos, video)
	f.Version++
	return true, nil
}

func (s memFolders) PullVideo(_ context.Context, _ txmanager.Session, id, videoID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.folders[id]
	if !ok {
		return false, repositories.ErrFolderNotFound
	}
	kept := f.Videos[:0:0]
	for _, item := range f.Videos {
		if item.ID != videoID {
			kept = append(kept, item)
		}
	}
	changed := len(kept) != len(f.Videos)
	f.Videos = kept
	return changed, nil
}

func (s memFolders) UpdateVideoSummary(_ context.Context, _ txmanager.Session, id uuid.UUID, video po.FolderVideo) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.folders[id]
	if !ok {
		return false, repositories.ErrFolderNotFound
	}
	for i := range f.Videos {
		if f.Videos[i].ID == video.ID {
			f.Videos[i] = video
			return true, nil
		}
	}
	return false, nil
}

func (s memFolders) ReplaceVideos(_ context.Context, _ txmanager.Session, id uuid.UUID, videos []po.FolderVideo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.folders[id]
	if !ok {
		return repositories.ErrFolderNotFound
	}
	f.Videos = append([]po.FolderVideo{}, videos...)
	return nil
}

func (s memFolders) IncrementShared(_ context.Context, _ txmanager.Session, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.folders[id]
	if !ok {
		return repositories.ErrFolderNotFound
	}
	f.SharedCount++
	return nil
}

// --- playlists ---

func (s memPlaylists) Create(_ context.Context, _ txmanager.Session, in repositories.CreatePlaylistInput) (*po.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := in.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	now := s.tick()
	p := &po.Playlist{
		ID: id, UserID: in.UserID, Title: in.Title, Visibility: in.Visibility, FolderID: in.FolderID,
		Tags: in.Tags, Duration: in.Duration, Routines: in.Routines,
		SuccessNotification: in.SuccessNotification, FailNotification: in.FailNotification,
		CreatedAt: now, UpdatedAt: now, Version: 1,
	}
	s.playlists[id] = clone(p)
	return clone(p), nil
}

func (s memPlaylists) Get(_ context.Context, _ txmanager.Session, id uuid.UUID) (*po.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.playlists[id]
	if !ok {
		return nil, repositories.ErrPlaylistNotFound
	}
	return clone(p), nil
}

func (s memPlaylists) GetForUpdate(ctx context.Context, sess txmanager.Session, id uuid.UUID) (*po.Playlist, error) {
	return s.Get(ctx, sess, id)
}

func (s memPlaylists) ListByUser(_ context.Context, _ txmanager.Session, userID uuid.UUID) ([]*po.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*po.Playlist
	for _, p := range s.playlists {
		if p.UserID == userID {
			out = append(out, clone(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s memPlaylists) ListReferencingVideo(_ context.Context, _ txmanager.Session, userID, videoID uuid.UUID) ([]*po.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*po.Playlist
	for _, p := range s.playlists {
		if p.UserID != userID {
			continue
		}
	found:
		for _, r := range p.Routines {
			for _, occ := range r.Videos {
				if occ.VideoID == videoID {
					out = append(out, clone(p))
					break found
				}
			}
		}
	}
	return out, nil
}

func (s memPlaylists) ListLinked(_ context.Context, _ txmanager.Session, in repositories.ListLinkedInput) ([]*po.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*po.Playlist
	for _, p := range s.playlists {
		for _, r := range p.Routines {
			if r.Linked() {
				out = append(out, clone(p))
				break
			}
		}
	}
	return out, nil
}

func (s memPlaylists) Save(_ context.Context, _ txmanager.Session, p *po.Playlist) (*po.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.playlists[p.ID]; !ok {
		return nil, repositories.ErrPlaylistNotFound
	}
	next := clone(p)
	next.Version++
	s.playlists[p.ID] = next
	return clone(next), nil
}

func (s memPlaylists) UpdateRoutines(_ context.Context, _ txmanager.Session, id uuid.UUID, routines []po.Routine, duration int, _ bool) (*po.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.playlists[id]
	if !ok {
		return nil, repositories.ErrPlaylistNotFound
	}
	p.Routines = *clone(&routines)
	p.Duration = duration
	p.Version++
	return clone(p), nil
}

func (s memPlaylists) MarkSynced(_ context.Context, _ txmanager.Session, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.playlists[id]; !ok {
		return repositories.ErrPlaylistNotFound
	}
	return nil
}

func (s memPlaylists) IncrementShared(_ context.Context, _ txmanager.Session, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.playlists[id]
	if !ok {
		return repositories.ErrPlaylistNotFound
	}
	p.SharedCount++
	return nil
}

// folderSummaries 返回文件夹当前的内嵌摘要。
func (m *memCatalog) folderSummaries(id uuid.UUID) []po.FolderVideo {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.folders[id]
	if !ok {
		return nil
	}
	return append([]po.FolderVideo{}, f.Videos...)
}

// projectionConsistent 校验 video ∈ folder.videos ⇔ video.folder_id == folder.id，且摘要与规范记录一致。
func (m *memCatalog) projectionConsistent() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.folders {
		for _, item := range f.Videos {
			v, ok := m.videos[item.ID]
			if !ok || v.Folder.ID != f.ID || v.Summary() != item {
				return false
			}
		}
	}
	for _, v := range m.videos {
		f, ok := m.folders[v.Folder.ID]
		if !ok || !f.Contains(v.ID) {
			return false
		}
	}
	return true
}

// fakeCatalog 是 ExternalCatalog 的内存实现。
type fakeCatalog struct {
	mu        sync.Mutex
	videos    map[string]youtube.Video
	playlists map[string]youtube.Playlist
	calls     int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		videos:    make(map[string]youtube.Video),
		playlists: make(map[string]youtube.Playlist),
	}
}

func (c *fakeCatalog) FetchVideo(_ context.Context, id string) (youtube.Video, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	v, ok := c.videos[id]
	if !ok {
		return youtube.Video{}, youtube.ErrNotFound
	}
	return v, nil
}

func (c *fakeCatalog) FetchPlaylist(_ context.Context, id string) (youtube.Playlist, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	p, ok := c.playlists[id]
	if !ok {
		return youtube.Playlist{}, youtube.ErrNotFound
	}
	return p, nil
}

func (c *fakeCatalog) setPlaylist(p youtube.Playlist) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playlists[p.ExternalID] = p
	for _, item := range p.Items {
		c.videos[item.ExternalID] = youtube.Video{
			ExternalID:     item.ExternalID,
			Title:          item.Title,
			Thumbnail:      item.Thumbnail,
			OriginDuration: item.OriginDuration,
		}
	}
}

// harness 以内存仓储装配完整的服务图。
type harness struct {
	mem       *memCatalog
	catalog   *fakeCatalog
	writer    *services.CatalogWriter
	builder   *services.RoutineBuilder
	folders   *services.FolderService
	videos    *services.VideoService
	playlists *services.PlaylistService
	sync      *services.SyncReconciler
}

func newHarness() *harness {
	mem := newMemCatalog()
	videos, folders, playlists := mem.stores()
	catalog := newFakeCatalog()
	logger := discardLogger()
	tx := fakeTxManager{}

	resolver := services.NewVideoResolver(videos, logger)
	writer := services.NewCatalogWriter(videos, folders, tx, logger)
	propagator := services.NewProjectionPropagator(folders, playlists, logger)
	builder := services.NewRoutineBuilder(resolver, writer, logger)
	reconciler := services.NewSyncReconciler(playlists, folders, catalog, builder, tx, services.SyncConfig{FetchConcurrency: 2}, logger)
	return &harness{
		mem:       mem,
		catalog:   catalog,
		writer:    writer,
		builder:   builder,
		folders:   services.NewFolderService(folders, videos, catalog, resolver, writer, tx, logger),
		videos:    services.NewVideoService(videos, folders, resolver, writer, propagator, tx, logger),
		playlists: services.NewPlaylistService(playlists, videos, folders, catalog, resolver, writer, builder, reconciler, tx, logger),
		sync:      reconciler,
	}
}

func youtubePlaylist(id string, videoIDs ...string) youtube.Playlist {
	items := make([]youtube.PlaylistItem, 0, len(videoIDs))
	for _, v := range videoIDs {
		items = append(items, youtube.PlaylistItem{ExternalID: v, Title: "title " + v, Thumbnail: "thumb " + v, OriginDuration: 60})
	}
	return youtube.Playlist{ExternalID: id, Title: "playlist " + id, Items: items}
}
