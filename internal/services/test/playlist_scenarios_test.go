package services_test

import (
	"context"
	"testing"

	"github.com/bionicotaku/lingo-services-library/internal/clients/youtube"
	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/services"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// importedVideos 导入一批外部视频并返回规范 id。
func (h *harness) importedVideos(t *testing.T, userID, folderID uuid.UUID, origins map[string]int, order ...string) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, len(order))
	for _, externalID := range order {
		h.addExternalVideo(externalID, origins[externalID])
		_, err := h.folders.ImportVideo(context.Background(), services.ImportVideoInput{UserID: userID, FolderID: &folderID, ExternalID: externalID})
		require.NoError(t, err)
		ids = append(ids, h.videoByExternal(userID, externalID).ID)
	}
	return ids
}

func TestCreatePlaylistTotalsRepeatedOccurrences(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness()
	userID := uuid.New()
	folderID := h.createFolder(t, userID, "f", po.VisibilityOwner)
	ids := h.importedVideos(t, userID, folderID, map[string]int{"a": 30, "b": 30}, "a", "b")

	playlist, err := h.playlists.CreatePlaylist(ctx, services.CreatePlaylistInput{
		UserID:     userID,
		Title:      "drills",
		Visibility: po.VisibilityOwner,
		Routines: []services.RoutineInput{
			{Videos: []services.OccurrenceInput{{VideoID: ids[0], Repeat: 2}}},
			{Videos: []services.OccurrenceInput{{VideoID: ids[1], Repeat: 2}}},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 120, playlist.Duration)
	require.Len(t, playlist.Routines, 2)
	require.Equal(t, 2, playlist.Routines[0].Videos[0].Repeat)
}

func TestCreatePlaylistValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness()
	userID := uuid.New()

	_, err := h.playlists.CreatePlaylist(ctx, services.CreatePlaylistInput{UserID: userID, Title: "empty", Visibility: po.VisibilityOwner})
	require.Error(t, err)

	_, err = h.playlists.CreatePlaylist(ctx, services.CreatePlaylistInput{
		UserID: userID, Title: "n", Visibility: po.VisibilityOwner,
		SuccessNotification: ptrString(string(make([]rune, 51))),
		Routines:            []services.RoutineInput{{}},
	})
	require.Error(t, err)

	_, err = h.playlists.CreatePlaylist(ctx, services.CreatePlaylistInput{
		UserID: userID, Title: "missing", Visibility: po.VisibilityOwner,
		Routines: []services.RoutineInput{{Videos: []services.OccurrenceInput{{VideoID: uuid.New()}}}},
	})
	require.ErrorIs(t, err, services.ErrVideoNotFound)
}

func TestCreatePlaylistFromExternalLandsInHiddenFolder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness()
	userID := uuid.New()
	h.catalog.setPlaylist(youtube.Playlist{ExternalID: "PL1", Title: "upstream", Items: []youtube.PlaylistItem{
		{ExternalID: "a", Title: "a", OriginDuration: 60, Start: ptrInt(10), End: ptrInt(40)},
		{ExternalID: "b", Title: "b", OriginDuration: 50},
	}})

	playlist, err := h.playlists.CreatePlaylist(ctx, services.CreatePlaylistInput{
		UserID: userID, Title: "from youtube", Visibility: po.VisibilityOwner, ExternalPlaylistID: "PL1",
	})
	require.NoError(t, err)
	require.Len(t, playlist.Routines, 1)
	require.Equal(t, "PL1", *playlist.Routines[0].ExternalPlaylistID)
	require.Equal(t, 30+50, playlist.Duration)

	video := h.videoByExternal(userID, "a")
	require.Equal(t, po.VisibilityHidden, video.Folder.Visibility)
	require.True(t, h.mem.projectionConsistent())
}

func TestSyncPlaylistNothingToSync(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness()
	userID := uuid.New()
	folderID := h.createFolder(t, userID, "f", po.VisibilityOwner)
	ids := h.importedVideos(t, userID, folderID, map[string]int{"a": 30}, "a")

	created, err := h.playlists.CreatePlaylist(ctx, services.CreatePlaylistInput{
		UserID: userID, Title: "curated", Visibility: po.VisibilityOwner,
		Routines: []services.RoutineInput{{Videos: []services.OccurrenceInput{{VideoID: ids[0]}}}},
	})
	require.NoError(t, err)
	callsBefore := h.catalog.calls

	result, err := h.playlists.SyncPlaylist(ctx, services.SyncInput{UserID: userID, PlaylistID: created.ID})
	require.NoError(t, err)
	require.Equal(t, "nothing_to_sync", result.Outcome)
	require.Empty(t, result.RebuiltIndexes)
	require.Equal(t, created.Version, result.Playlist.Version)
	require.Equal(t, created.Routines, result.Playlist.Routines)
	require.Equal(t, callsBefore, h.catalog.calls)
}

func TestSyncPlaylistRebuildsLinkedRoutinesOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness()
	userID := uuid.New()
	folderID := h.createFolder(t, userID, "f", po.VisibilityOwner)
	ids := h.importedVideos(t, userID, folderID, map[string]int{"c": 20}, "c")
	h.catalog.setPlaylist(youtube.Playlist{ExternalID: "PL1", Items: []youtube.PlaylistItem{
		{ExternalID: "a", Title: "a", OriginDuration: 60},
	}})

	created, err := h.playlists.CreatePlaylist(ctx, services.CreatePlaylistInput{
		UserID: userID, Title: "mixed", Visibility: po.VisibilityOwner, FolderID: &folderID,
		ExternalPlaylistID: "PL1",
		Routines:           []services.RoutineInput{{Videos: []services.OccurrenceInput{{VideoID: ids[0], Repeat: 3}}}},
	})
	require.NoError(t, err)
	require.Equal(t, 60+20*3, created.Duration)
	curated := created.Routines[1]

	// 上游新增一个视频
	h.catalog.setPlaylist(youtube.Playlist{ExternalID: "PL1", Items: []youtube.PlaylistItem{
		{ExternalID: "a", Title: "a", OriginDuration: 60},
		{ExternalID: "new", Title: "new", OriginDuration: 45, End: ptrInt(15)},
	}})

	result, err := h.playlists.SyncPlaylist(ctx, services.SyncInput{UserID: userID, PlaylistID: created.ID})
	require.NoError(t, err)
	require.Equal(t, "synced", result.Outcome)
	require.Equal(t, []int{0}, result.RebuiltIndexes)
	require.Equal(t, 1, result.InsertedCount)

	synced := result.Playlist
	require.Len(t, synced.Routines, 2)
	require.Len(t, synced.Routines[0].Videos, 2)
	require.Equal(t, curated, synced.Routines[1])
	require.Equal(t, 60+15+20*3, synced.Duration)
	require.Equal(t, po.TotalDuration(synced.Routines), synced.Duration)

	// 新视频落入播放列表来源文件夹
	require.Equal(t, folderID, h.videoByExternal(userID, "new").Folder.ID)
	require.True(t, h.mem.projectionConsistent())

	// 外部数据不变时再次同步结果一致
	again, err := h.playlists.SyncPlaylist(ctx, services.SyncInput{UserID: userID, PlaylistID: created.ID})
	require.NoError(t, err)
	require.Equal(t, 0, again.InsertedCount)
	require.Equal(t, synced.Routines, again.Playlist.Routines)
}

func TestSyncPlaylistRoutineIndexScope(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness()
	userID := uuid.New()
	folderID := h.createFolder(t, userID, "f", po.VisibilityOwner)
	ids := h.importedVideos(t, userID, folderID, map[string]int{"c": 20}, "c")
	h.catalog.setPlaylist(youtube.Playlist{ExternalID: "PL1", Items: []youtube.PlaylistItem{{ExternalID: "a", Title: "a", OriginDuration: 60}}})

	created, err := h.playlists.CreatePlaylist(ctx, services.CreatePlaylistInput{
		UserID: userID, Title: "mixed", Visibility: po.VisibilityOwner, ExternalPlaylistID: "PL1",
		Routines: []services.RoutineInput{{Videos: []services.OccurrenceInput{{VideoID: ids[0]}}}},
	})
	require.NoError(t, err)

	_, err = h.playlists.SyncPlaylist(ctx, services.SyncInput{UserID: userID, PlaylistID: created.ID, RoutineIndex: ptrInt(2)})
	require.ErrorIs(t, err, services.ErrInvalidRoutineIndex)

	_, err = h.playlists.SyncPlaylist(ctx, services.SyncInput{UserID: userID, PlaylistID: created.ID, RoutineIndex: ptrInt(-1)})
	require.ErrorIs(t, err, services.ErrInvalidRoutineIndex)

	curatedOnly, err := h.playlists.SyncPlaylist(ctx, services.SyncInput{UserID: userID, PlaylistID: created.ID, RoutineIndex: ptrInt(1)})
	require.NoError(t, err)
	require.Equal(t, "nothing_to_sync", curatedOnly.Outcome)

	linked, err := h.playlists.SyncPlaylist(ctx, services.SyncInput{UserID: userID, PlaylistID: created.ID, RoutineIndex: ptrInt(0)})
	require.NoError(t, err)
	require.Equal(t, []int{0}, linked.RebuiltIndexes)

	_, err = h.playlists.SyncPlaylist(ctx, services.SyncInput{UserID: uuid.New(), PlaylistID: created.ID})
	require.ErrorIs(t, err, services.ErrOwnershipConflict)
}

func TestReplaceLinkedRoutinesKeepsCuratedAndMovedRoutines(t *testing.T) {
	t.Parallel()

	curated := po.Routine{Videos: []po.Occurrence{{VideoID: uuid.New(), Duration: 10, Repeat: 1}}}
	current := []po.Routine{
		{ExternalPlaylistID: ptrString("PL1")},
		curated,
		{ExternalPlaylistID: ptrString("PL3")},
	}
	rebuilt := map[int]po.Routine{
		0: {ExternalPlaylistID: ptrString("PL1"), Videos: []po.Occurrence{{Duration: 5, Repeat: 1}}},
		1: {ExternalPlaylistID: ptrString("PL2")},
		2: {ExternalPlaylistID: ptrString("PL2")},
	}

	out, applied := services.ReplaceLinkedRoutines(current, rebuilt)
	require.Equal(t, []int{0}, applied)
	require.Len(t, out[0].Videos, 1)
	require.Equal(t, curated, out[1])
	require.Equal(t, "PL3", *out[2].ExternalPlaylistID)
	require.Empty(t, current[0].Videos)
}

func TestCopyPlaylistFromAnotherUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness()
	owner, actor := uuid.New(), uuid.New()
	folderID := h.createFolder(t, owner, "f", po.VisibilityOwner)
	ids := h.importedVideos(t, owner, folderID, map[string]int{"a": 60, "b": 40}, "a", "b")

	source, err := h.playlists.CreatePlaylist(ctx, services.CreatePlaylistInput{
		UserID: owner, Title: "shared drills", Visibility: po.VisibilityLink,
		Routines: []services.RoutineInput{
			{Videos: []services.OccurrenceInput{{VideoID: ids[0], End: ptrInt(20), Repeat: 2}, {VideoID: ids[1]}}},
			{Videos: []services.OccurrenceInput{{VideoID: ids[0]}}},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 20*2+40+60, source.Duration)

	copied, err := h.playlists.CopyPlaylist(ctx, services.CopyPlaylistInput{ActorID: actor, PlaylistID: source.ID})
	require.NoError(t, err)
	require.Equal(t, actor, copied.UserID)
	require.Equal(t, source.Duration, copied.Duration)
	require.Len(t, copied.Routines, 2)

	actorVideo := h.videoByExternal(actor, "a")
	require.NotNil(t, actorVideo)
	require.Equal(t, actorVideo.ID, copied.Routines[0].Videos[0].VideoID)
	require.Equal(t, actorVideo.ID, copied.Routines[1].Videos[0].VideoID)
	require.Equal(t, po.VisibilityHidden, actorVideo.Folder.Visibility)
	require.Equal(t, 20, copied.Routines[0].Videos[0].Duration)

	reloaded, err := h.playlists.GetPlaylist(ctx, owner, source.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), reloaded.SharedCount)
	require.True(t, h.mem.projectionConsistent())
}

func TestCopyPlaylistRespectsVisibility(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness()
	owner := uuid.New()
	folderID := h.createFolder(t, owner, "f", po.VisibilityOwner)
	ids := h.importedVideos(t, owner, folderID, map[string]int{"a": 60}, "a")
	source, err := h.playlists.CreatePlaylist(ctx, services.CreatePlaylistInput{
		UserID: owner, Title: "private", Visibility: po.VisibilityOwner,
		Routines: []services.RoutineInput{{Videos: []services.OccurrenceInput{{VideoID: ids[0]}}}},
	})
	require.NoError(t, err)

	_, err = h.playlists.CopyPlaylist(ctx, services.CopyPlaylistInput{ActorID: uuid.New(), PlaylistID: source.ID})
	require.ErrorIs(t, err, services.ErrVisibilityForbids)

	own, err := h.playlists.CopyPlaylist(ctx, services.CopyPlaylistInput{ActorID: owner, PlaylistID: source.ID, Title: "copy"})
	require.NoError(t, err)
	require.Equal(t, "copy", own.Title)
	require.Equal(t, source.Routines, own.Routines)
}

func TestUpdatePlaylistRecomputesDuration(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness()
	userID := uuid.New()
	folderID := h.createFolder(t, userID, "f", po.VisibilityOwner)
	ids := h.importedVideos(t, userID, folderID, map[string]int{"a": 60, "b": 40}, "a", "b")
	created, err := h.playlists.CreatePlaylist(ctx, services.CreatePlaylistInput{
		UserID: userID, Title: "p", Visibility: po.VisibilityOwner,
		Routines: []services.RoutineInput{{Videos: []services.OccurrenceInput{{VideoID: ids[0]}}}},
	})
	require.NoError(t, err)

	updated, err := h.playlists.UpdatePlaylist(ctx, services.UpdatePlaylistInput{
		UserID: userID, PlaylistID: created.ID, Title: ptrString("renamed"),
		Routines: []services.RoutineInput{{Videos: []services.OccurrenceInput{{VideoID: ids[1], Start: ptrInt(10), Repeat: 2}}}},
	})
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Title)
	require.Equal(t, 60, updated.Duration)

	_, err = h.playlists.UpdatePlaylist(ctx, services.UpdatePlaylistInput{UserID: uuid.New(), PlaylistID: created.ID, Title: ptrString("x")})
	require.ErrorIs(t, err, services.ErrOwnershipConflict)
}

// unlinkingPlaylists 在加锁读取时模拟并发编辑：外部关联已被用户移除。
type unlinkingPlaylists struct {
	services.PlaylistStore
}

func (s unlinkingPlaylists) GetForUpdate(ctx context.Context, sess txmanager.Session, id uuid.UUID) (*po.Playlist, error) {
	playlist, err := s.PlaylistStore.GetForUpdate(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	for i := range playlist.Routines {
		playlist.Routines[i].ExternalPlaylistID = nil
	}
	return playlist, nil
}

func TestSyncPlaylistConcurrentUnlinkIsNothingToSync(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness()
	userID := uuid.New()
	h.catalog.setPlaylist(youtubePlaylist("PL1", "a"))

	created, err := h.playlists.CreatePlaylist(ctx, services.CreatePlaylistInput{
		UserID: userID, Title: "linked", Visibility: po.VisibilityOwner, ExternalPlaylistID: "PL1",
	})
	require.NoError(t, err)

	_, folders, playlists := h.mem.stores()
	reconciler := services.NewSyncReconciler(unlinkingPlaylists{playlists}, folders, h.catalog, h.builder, fakeTxManager{}, services.SyncConfig{}, discardLogger())

	result, err := reconciler.SyncPlaylist(ctx, services.SyncInput{UserID: userID, PlaylistID: created.ID})
	require.NoError(t, err)
	require.Equal(t, services.SyncOutcomeNothingToSync, result.Outcome)
	require.Empty(t, result.Rebuilt)
	require.Nil(t, result.Playlist.Routines[0].ExternalPlaylistID)

	stored, err := h.playlists.GetPlaylist(ctx, userID, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Version, stored.Version)
	require.Equal(t, created.Routines, stored.Routines)
}

func TestCopyPlaylistKeepsOwnerCanonicalTrim(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness()
	owner, actor := uuid.New(), uuid.New()
	folderID := h.createFolder(t, owner, "f", po.VisibilityOwner)
	h.addExternalVideo("a", 120)
	_, err := h.folders.ImportVideo(ctx, services.ImportVideoInput{UserID: owner, FolderID: &folderID, ExternalID: "a", Start: ptrInt(10), End: ptrInt(100)})
	require.NoError(t, err)
	ownerVideo := h.videoByExternal(owner, "a")
	require.Equal(t, 90, ownerVideo.Duration)

	source, err := h.playlists.CreatePlaylist(ctx, services.CreatePlaylistInput{
		UserID: owner, Title: "trimmed", Visibility: po.VisibilityLink,
		Routines: []services.RoutineInput{{Videos: []services.OccurrenceInput{{VideoID: ownerVideo.ID}}}},
	})
	require.NoError(t, err)
	require.Equal(t, 90, source.Duration)

	copied, err := h.playlists.CopyPlaylist(ctx, services.CopyPlaylistInput{ActorID: actor, PlaylistID: source.ID})
	require.NoError(t, err)
	require.Equal(t, source.Duration, copied.Duration)
	require.Equal(t, 90, copied.Routines[0].Videos[0].Duration)

	actorVideo := h.videoByExternal(actor, "a")
	require.Equal(t, 90, actorVideo.Duration)
	require.Equal(t, 10, *actorVideo.StartSec)
	require.Equal(t, 100, *actorVideo.EndSec)
	require.True(t, h.mem.projectionConsistent())
}

func TestCreatePlaylistValidatesCuratedBeforeIngest(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness()
	userID := uuid.New()
	h.catalog.setPlaylist(youtubePlaylist("PL1", "a", "b"))

	_, err := h.playlists.CreatePlaylist(ctx, services.CreatePlaylistInput{
		UserID: userID, Title: "bad", Visibility: po.VisibilityOwner, ExternalPlaylistID: "PL1",
		Routines: []services.RoutineInput{{Videos: []services.OccurrenceInput{{VideoID: uuid.New()}}}},
	})
	require.ErrorIs(t, err, services.ErrVideoNotFound)
	require.Zero(t, h.videoCount())
	require.Zero(t, h.catalog.calls)
}
