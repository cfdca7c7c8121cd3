package controllers_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bionicotaku/lingo-services-library/internal/controllers"
	"github.com/bionicotaku/lingo-services-library/internal/models/vo"
	"github.com/bionicotaku/lingo-services-library/internal/services"

	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type folderStub struct {
	create    func(context.Context, services.CreateFolderInput) (*vo.Folder, error)
	get       func(context.Context, uuid.UUID, uuid.UUID) (*vo.Folder, error)
	list      func(context.Context, uuid.UUID) ([]*vo.Folder, error)
	update    func(context.Context, services.UpdateFolderInput) (*vo.Folder, error)
	importV   func(context.Context, services.ImportVideoInput) (*vo.MembershipResult, error)
	importP   func(context.Context, services.ImportPlaylistInput) (*vo.MembershipResult, error)
	copy      func(context.Context, services.CopyFolderInput) (*vo.MembershipResult, error)
	reconcile func(context.Context, uuid.UUID, uuid.UUID) (*vo.Folder, error)
}

func (s *folderStub) CreateFolder(ctx context.Context, in services.CreateFolderInput) (*vo.Folder, error) {
	return s.create(ctx, in)
}

func (s *folderStub) GetFolder(ctx context.Context, userID, folderID uuid.UUID) (*vo.Folder, error) {
	return s.get(ctx, userID, folderID)
}

func (s *folderStub) ListFolders(ctx context.Context, userID uuid.UUID) ([]*vo.Folder, error) {
	return s.list(ctx, userID)
}

func (s *folderStub) UpdateFolder(ctx context.Context, in services.UpdateFolderInput) (*vo.Folder, error) {
	return s.update(ctx, in)
}

func (s *folderStub) ImportVideo(ctx context.Context, in services.ImportVideoInput) (*vo.MembershipResult, error) {
	return s.importV(ctx, in)
}

func (s *folderStub) ImportPlaylist(ctx context.Context, in services.ImportPlaylistInput) (*vo.MembershipResult, error) {
	return s.importP(ctx, in)
}

func (s *folderStub) CopyFolder(ctx context.Context, in services.CopyFolderInput) (*vo.MembershipResult, error) {
	return s.copy(ctx, in)
}

func (s *folderStub) ReconcileFolder(ctx context.Context, userID, folderID uuid.UUID) (*vo.Folder, error) {
	return s.reconcile(ctx, userID, folderID)
}

type videoStub struct {
	get      func(context.Context, uuid.UUID, uuid.UUID) (*vo.Video, error)
	move     func(context.Context, services.MoveVideoInput) (*vo.MembershipResult, error)
	copy     func(context.Context, services.CopyVideoInput) (*vo.MembershipResult, error)
	edit     func(context.Context, services.EditVideoInput) (*vo.Video, error)
	bookmark func(context.Context, uuid.UUID, uuid.UUID, bool) (*vo.Video, error)
	del      func(context.Context, uuid.UUID, uuid.UUID) error
}

func (s *videoStub) GetVideo(ctx context.Context, userID, videoID uuid.UUID) (*vo.Video, error) {
	return s.get(ctx, userID, videoID)
}

func (s *videoStub) MoveVideo(ctx context.Context, in services.MoveVideoInput) (*vo.MembershipResult, error) {
	return s.move(ctx, in)
}

func (s *videoStub) CopyVideo(ctx context.Context, in services.CopyVideoInput) (*vo.MembershipResult, error) {
	return s.copy(ctx, in)
}

func (s *videoStub) EditVideo(ctx context.Context, in services.EditVideoInput) (*vo.Video, error) {
	return s.edit(ctx, in)
}

func (s *videoStub) SetBookmark(ctx context.Context, userID, videoID uuid.UUID, bookmarked bool) (*vo.Video, error) {
	return s.bookmark(ctx, userID, videoID, bookmarked)
}

func (s *videoStub) DeleteVideo(ctx context.Context, userID, videoID uuid.UUID) error {
	return s.del(ctx, userID, videoID)
}

type playlistStub struct {
	create func(context.Context, services.CreatePlaylistInput) (*vo.Playlist, error)
	copy   func(context.Context, services.CopyPlaylistInput) (*vo.Playlist, error)
	update func(context.Context, services.UpdatePlaylistInput) (*vo.Playlist, error)
	get    func(context.Context, uuid.UUID, uuid.UUID) (*vo.Playlist, error)
	list   func(context.Context, uuid.UUID) ([]*vo.Playlist, error)
	sync   func(context.Context, services.SyncInput) (*vo.SyncResult, error)
}

func (s *playlistStub) CreatePlaylist(ctx context.Context, in services.CreatePlaylistInput) (*vo.Playlist, error) {
	return s.create(ctx, in)
}

func (s *playlistStub) CopyPlaylist(ctx context.Context, in services.CopyPlaylistInput) (*vo.Playlist, error) {
	return s.copy(ctx, in)
}

func (s *playlistStub) UpdatePlaylist(ctx context.Context, in services.UpdatePlaylistInput) (*vo.Playlist, error) {
	return s.update(ctx, in)
}

func (s *playlistStub) GetPlaylist(ctx context.Context, userID, playlistID uuid.UUID) (*vo.Playlist, error) {
	return s.get(ctx, userID, playlistID)
}

func (s *playlistStub) ListPlaylists(ctx context.Context, userID uuid.UUID) ([]*vo.Playlist, error) {
	return s.list(ctx, userID)
}

func (s *playlistStub) SyncPlaylist(ctx context.Context, in services.SyncInput) (*vo.SyncResult, error) {
	return s.sync(ctx, in)
}

// newTestServer 以真实 Kratos 路由挂载三个 Handler。
func newTestServer(t *testing.T, folders *folderStub, videos *videoStub, playlists *playlistStub) *httptest.Server {
	t.Helper()
	base := controllers.NewBaseHandler(controllers.HandlerTimeouts{})
	srv := khttp.NewServer()
	router := srv.Route("/")
	if folders != nil {
		controllers.NewFolderHandler(folders, base).RegisterRoutes(router)
	}
	if videos != nil {
		controllers.NewVideoHandler(videos, base).RegisterRoutes(router)
	}
	if playlists != nil {
		controllers.NewPlaylistHandler(playlists, base).RegisterRoutes(router)
	}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func userInfoHeader(t *testing.T, userID string) string {
	t.Helper()
	payload, err := json.Marshal(map[string]any{"sub": userID})
	require.NoError(t, err)
	return base64.RawURLEncoding.EncodeToString(payload)
}

type response struct {
	Status int
	Body   map[string]any
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, userID *uuid.UUID, body any) response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != nil {
		req.Header.Set("X-Apigateway-Api-Userinfo", userInfoHeader(t, userID.String()))
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := response{Status: resp.StatusCode}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out.Body), "body: %s", raw)
	}
	return out
}
