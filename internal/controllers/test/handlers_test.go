package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/bionicotaku/lingo-services-library/internal/controllers"
	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/models/vo"
	"github.com/bionicotaku/lingo-services-library/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestFolderHandler_RequiresUserInfo(t *testing.T) {
	t.Parallel()
	called := false
	ts := newTestServer(t, &folderStub{
		list: func(context.Context, uuid.UUID) ([]*vo.Folder, error) {
			called = true
			return nil, nil
		},
	}, nil, nil)

	resp := doRequest(t, ts, http.MethodGet, "/v1/folders", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.Status)
	require.Equal(t, controllers.ReasonUnauthenticated, resp.Body["reason"])
	require.False(t, called)
}

func TestFolderHandler_CreateFolder(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	folderID := uuid.New()
	var got services.CreateFolderInput
	ts := newTestServer(t, &folderStub{
		create: func(_ context.Context, in services.CreateFolderInput) (*vo.Folder, error) {
			got = in
			return &vo.Folder{ID: folderID, UserID: in.UserID, Title: in.Title, Visibility: int16(in.Visibility)}, nil
		},
	}, nil, nil)

	resp := doRequest(t, ts, http.MethodPost, "/v1/folders", &userID, map[string]any{
		"title": "Warmups",
		"tags":  []string{"daily"},
	})
	require.Equal(t, http.StatusCreated, resp.Status)
	require.Equal(t, folderID.String(), resp.Body["id"])
	require.Equal(t, userID, got.UserID)
	require.Equal(t, "Warmups", got.Title)
	require.Equal(t, po.VisibilityOwner, got.Visibility)
	require.Equal(t, []string{"daily"}, got.Tags)
}

func TestFolderHandler_ListFoldersEmpty(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	ts := newTestServer(t, &folderStub{
		list: func(context.Context, uuid.UUID) ([]*vo.Folder, error) { return nil, nil },
	}, nil, nil)

	resp := doRequest(t, ts, http.MethodGet, "/v1/folders", &userID, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	require.Equal(t, []any{}, resp.Body["folders"])
}

func TestFolderHandler_ServiceErrorsKeepStatusAndReason(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	ts := newTestServer(t, &folderStub{
		get: func(context.Context, uuid.UUID, uuid.UUID) (*vo.Folder, error) {
			return nil, services.ErrFolderNotFound
		},
		importV: func(context.Context, services.ImportVideoInput) (*vo.MembershipResult, error) {
			return nil, services.ErrUpstreamUnavailable
		},
	}, nil, nil)

	resp := doRequest(t, ts, http.MethodGet, "/v1/folders/"+uuid.NewString(), &userID, nil)
	require.Equal(t, http.StatusNotFound, resp.Status)
	require.Equal(t, services.ReasonFolderNotFound, resp.Body["reason"])

	resp = doRequest(t, ts, http.MethodPost, "/v1/imports/video", &userID, map[string]any{"external_id": "abc"})
	require.Equal(t, http.StatusServiceUnavailable, resp.Status)
	require.Equal(t, services.ReasonUpstreamUnavailable, resp.Body["reason"])
}

func TestFolderHandler_InvalidPathID(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	ts := newTestServer(t, &folderStub{}, nil, nil)

	resp := doRequest(t, ts, http.MethodGet, "/v1/folders/not-a-uuid", &userID, nil)
	require.Equal(t, http.StatusBadRequest, resp.Status)
	require.Equal(t, controllers.ReasonBadRequest, resp.Body["reason"])
}

func TestFolderHandler_ImportPlaylistAndCopy(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	sourceID := uuid.New()
	var imported services.ImportPlaylistInput
	var copied services.CopyFolderInput
	ts := newTestServer(t, &folderStub{
		importP: func(_ context.Context, in services.ImportPlaylistInput) (*vo.MembershipResult, error) {
			imported = in
			return &vo.MembershipResult{InsertedCount: 3, PushedCount: 3}, nil
		},
		copy: func(_ context.Context, in services.CopyFolderInput) (*vo.MembershipResult, error) {
			copied = in
			return &vo.MembershipResult{InsertedCount: 1}, nil
		},
	}, nil, nil)

	resp := doRequest(t, ts, http.MethodPost, "/v1/imports/playlist", &userID, map[string]any{
		"external_playlist_id": "PL1",
		"create_folder":        true,
		"visibility":           2,
	})
	require.Equal(t, http.StatusOK, resp.Status)
	require.EqualValues(t, 3, resp.Body["inserted_count"])
	require.Equal(t, "PL1", imported.ExternalPlaylistID)
	require.True(t, imported.CreateFolder)
	require.Equal(t, po.VisibilityLink, imported.Visibility)

	// 无请求体的复制
	resp = doRequest(t, ts, http.MethodPost, "/v1/folders/"+sourceID.String()+"/copy", &userID, nil)
	require.Equal(t, http.StatusCreated, resp.Status)
	require.Equal(t, sourceID, copied.SourceFolderID)
	require.Equal(t, userID, copied.ActorID)
}

func TestVideoHandler_EditTrimAndBookmark(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	videoID := uuid.New()
	var edit services.EditVideoInput
	var bookmarks []bool
	ts := newTestServer(t, nil, &videoStub{
		edit: func(_ context.Context, in services.EditVideoInput) (*vo.Video, error) {
			edit = in
			return &vo.Video{ID: in.VideoID, Duration: 30}, nil
		},
		bookmark: func(_ context.Context, _ uuid.UUID, id uuid.UUID, on bool) (*vo.Video, error) {
			bookmarks = append(bookmarks, on)
			return &vo.Video{ID: id, IsBookmarked: on}, nil
		},
	}, nil)

	resp := doRequest(t, ts, http.MethodPatch, "/v1/videos/"+videoID.String(), &userID, map[string]any{
		"trim": map[string]any{"start": 10, "end": nil},
	})
	require.Equal(t, http.StatusOK, resp.Status)
	require.NotNil(t, edit.Trim)
	require.Equal(t, 10, *edit.Trim.Start)
	require.Nil(t, edit.Trim.End)
	require.Nil(t, edit.Title)

	resp = doRequest(t, ts, http.MethodPut, "/v1/videos/"+videoID.String()+"/bookmark", &userID, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	require.Equal(t, true, resp.Body["is_bookmarked"])
	resp = doRequest(t, ts, http.MethodDelete, "/v1/videos/"+videoID.String()+"/bookmark", &userID, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	require.Equal(t, []bool{true, false}, bookmarks)
}

func TestVideoHandler_MoveAndDelete(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	videoID := uuid.New()
	target := uuid.New()
	var move services.MoveVideoInput
	ts := newTestServer(t, nil, &videoStub{
		move: func(_ context.Context, in services.MoveVideoInput) (*vo.MembershipResult, error) {
			move = in
			return nil, services.ErrAlreadyInFolder
		},
		del: func(context.Context, uuid.UUID, uuid.UUID) error { return nil },
	}, nil)

	resp := doRequest(t, ts, http.MethodPost, "/v1/videos/"+videoID.String()+"/move", &userID, map[string]any{
		"target_folder_id": target.String(),
	})
	require.Equal(t, http.StatusConflict, resp.Status)
	require.Equal(t, services.ReasonAlreadyInFolder, resp.Body["reason"])
	require.Equal(t, target, move.TargetFolderID)

	resp = doRequest(t, ts, http.MethodDelete, "/v1/videos/"+videoID.String(), &userID, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	require.Equal(t, true, resp.Body["deleted"])
}

func TestPlaylistHandler_CreateMapsRoutines(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	videoID := uuid.New()
	var got services.CreatePlaylistInput
	ts := newTestServer(t, nil, nil, &playlistStub{
		create: func(_ context.Context, in services.CreatePlaylistInput) (*vo.Playlist, error) {
			got = in
			return &vo.Playlist{ID: uuid.New(), Title: in.Title, Duration: 120}, nil
		},
	})

	resp := doRequest(t, ts, http.MethodPost, "/v1/playlists", &userID, map[string]any{
		"title": "Morning",
		"routines": []map[string]any{{
			"videos": []map[string]any{{"video_id": videoID.String(), "start": 5, "repeat": 2}},
		}},
	})
	require.Equal(t, http.StatusCreated, resp.Status)
	require.EqualValues(t, 120, resp.Body["duration"])
	require.Len(t, got.Routines, 1)
	require.Len(t, got.Routines[0].Videos, 1)
	occ := got.Routines[0].Videos[0]
	require.Equal(t, videoID, occ.VideoID)
	require.Equal(t, 5, *occ.Start)
	require.Nil(t, occ.End)
	require.Equal(t, 2, occ.Repeat)
}

func TestPlaylistHandler_Sync(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	playlistID := uuid.New()
	var inputs []services.SyncInput
	ts := newTestServer(t, nil, nil, &playlistStub{
		sync: func(_ context.Context, in services.SyncInput) (*vo.SyncResult, error) {
			inputs = append(inputs, in)
			if in.RoutineIndex != nil && *in.RoutineIndex > 3 {
				return nil, services.ErrInvalidRoutineIndex
			}
			return &vo.SyncResult{Outcome: services.SyncOutcomeNothingToSync.String(), RebuiltIndexes: []int{}}, nil
		},
	})

	resp := doRequest(t, ts, http.MethodPost, "/v1/playlists/"+playlistID.String()+"/sync", &userID, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	require.Equal(t, services.SyncOutcomeNothingToSync.String(), resp.Body["outcome"])

	resp = doRequest(t, ts, http.MethodPost, "/v1/playlists/"+playlistID.String()+"/sync", &userID, map[string]any{"routine_index": 9})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	require.Equal(t, services.ReasonRoutineIndexInvalid, resp.Body["reason"])

	require.Len(t, inputs, 2)
	require.Nil(t, inputs[0].RoutineIndex)
	require.Equal(t, 9, *inputs[1].RoutineIndex)
	require.Equal(t, playlistID, inputs[1].PlaylistID)
	require.Equal(t, userID, inputs[1].UserID)
}
