package youtube_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-library/internal/clients/youtube"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	playlists     map[string]string
	items         map[string][]map[string]any
	durations     map[string]string
	failVideos    atomic.Int32
	videoCalls    atomic.Int32
	itemPageCalls atomic.Int32
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/youtube/v3/playlists", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		title, ok := f.playlists[id]
		items := []map[string]any{}
		if ok {
			items = append(items, map[string]any{"id": id, "snippet": map[string]any{"title": title}})
		}
		writeJSON(t, w, map[string]any{"items": items})
	})
	mux.HandleFunc("/youtube/v3/playlistItems", func(w http.ResponseWriter, r *http.Request) {
		f.itemPageCalls.Add(1)
		id := r.URL.Query().Get("playlistId")
		all, ok := f.items[id]
		if !ok {
			writeError(t, w, http.StatusNotFound, "playlistNotFound")
			return
		}
		offset := 0
		if tok := r.URL.Query().Get("pageToken"); tok != "" {
			_, err := fmt.Sscanf(tok, "page-%d", &offset)
			require.NoError(t, err)
		}
		size := 2
		end := offset + size
		if end > len(all) {
			end = len(all)
		}
		resp := map[string]any{
			"items":    all[offset:end],
			"pageInfo": map[string]any{"totalResults": len(all), "resultsPerPage": size},
		}
		if end < len(all) {
			resp["nextPageToken"] = fmt.Sprintf("page-%d", end)
		}
		writeJSON(t, w, resp)
	})
	mux.HandleFunc("/youtube/v3/videos", func(w http.ResponseWriter, r *http.Request) {
		f.videoCalls.Add(1)
		if f.failVideos.Load() > 0 {
			f.failVideos.Add(-1)
			writeError(t, w, http.StatusInternalServerError, "backendError")
			return
		}
		var ids []string
		for _, raw := range r.URL.Query()["id"] {
			ids = append(ids, strings.Split(raw, ",")...)
		}
		items := []map[string]any{}
		for _, id := range ids {
			d, ok := f.durations[id]
			if !ok {
				continue
			}
			items = append(items, map[string]any{
				"id": id,
				"snippet": map[string]any{
					"title":      "title-" + id,
					"thumbnails": map[string]any{"medium": map[string]any{"url": "https://img/" + id}},
				},
				"contentDetails": map[string]any{"duration": d},
			})
		}
		writeJSON(t, w, map[string]any{"items": items})
	})
	return mux
}

func writeJSON(t *testing.T, w http.ResponseWriter, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func writeError(t *testing.T, w http.ResponseWriter, code int, reason string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": reason,
			"errors":  []map[string]any{{"reason": reason, "message": reason}},
		},
	}))
}

func playlistItem(videoID, start, end string) map[string]any {
	details := map[string]any{"videoId": videoID}
	if start != "" {
		details["startAt"] = start
	}
	if end != "" {
		details["endAt"] = end
	}
	return map[string]any{
		"snippet": map[string]any{
			"title":      "item-" + videoID,
			"thumbnails": map[string]any{"default": map[string]any{"url": "https://thumb/" + videoID}},
		},
		"contentDetails": details,
	}
}

func httptestServer(t *testing.T, api *fakeAPI) string {
	t.Helper()
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)
	return srv.URL
}

func newFetcher(t *testing.T, api *fakeAPI) *youtube.Fetcher {
	t.Helper()
	fetcher, err := youtube.NewFetcher(context.Background(), youtube.Config{
		APIKey:         "test-key",
		Endpoint:       httptestServer(t, api) + "/",
		MaxRetries:     2,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}, nil, log.NewStdLogger(io.Discard))
	require.NoError(t, err)
	return fetcher
}

func TestFetcher_FetchVideo(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{durations: map[string]string{"v1": "PT2M"}}
	fetcher := newFetcher(t, api)

	video, err := fetcher.FetchVideo(context.Background(), "v1")
	require.NoError(t, err)
	require.Equal(t, youtube.Video{
		ExternalID:     "v1",
		Title:          "title-v1",
		Thumbnail:      "https://img/v1",
		OriginDuration: 120,
	}, video)

	_, err = fetcher.FetchVideo(context.Background(), "missing")
	require.ErrorIs(t, err, youtube.ErrNotFound)
}

func TestFetcher_FetchPlaylist_FollowsPagesInOrder(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{
		playlists: map[string]string{"PL1": "Morning drills"},
		items: map[string][]map[string]any{
			"PL1": {
				playlistItem("a", "10", "100"),
				playlistItem("b", "", ""),
				playlistItem("c", "5", ""),
				playlistItem("d", "", ""),
				playlistItem("e", "", ""),
			},
		},
		durations: map[string]string{"a": "PT2M", "b": "PT30S", "c": "PT1M1S", "d": "PT1H", "e": "P0D"},
	}
	fetcher := newFetcher(t, api)

	playlist, err := fetcher.FetchPlaylist(context.Background(), "PL1")
	require.NoError(t, err)
	require.Equal(t, "Morning drills", playlist.Title)
	require.Len(t, playlist.Items, 5)
	require.Equal(t, int32(3), api.itemPageCalls.Load())

	ids := make([]string, 0, len(playlist.Items))
	for _, item := range playlist.Items {
		ids = append(ids, item.ExternalID)
	}
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, ids)

	first := playlist.Items[0]
	require.Equal(t, 120, first.OriginDuration)
	require.NotNil(t, first.Start)
	require.Equal(t, 10, *first.Start)
	require.NotNil(t, first.End)
	require.Equal(t, 100, *first.End)
	require.Equal(t, "https://thumb/a", first.Thumbnail)

	require.Equal(t, 3600, playlist.Items[3].OriginDuration)
	require.Equal(t, 0, playlist.Items[4].OriginDuration)
	require.Nil(t, playlist.Items[1].Start)
}

func TestFetcher_FetchPlaylist_FailsOnUnavailableVideo(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{
		playlists: map[string]string{"PL2": "Mixed"},
		items: map[string][]map[string]any{
			"PL2": {playlistItem("a", "", ""), playlistItem("gone", "", ""), playlistItem("b", "", "")},
		},
		durations: map[string]string{"a": "PT10S", "b": "PT20S"},
	}
	fetcher := newFetcher(t, api)

	playlist, err := fetcher.FetchPlaylist(context.Background(), "PL2")
	require.ErrorIs(t, err, youtube.ErrNotFound)
	require.ErrorContains(t, err, "gone")
	require.Empty(t, playlist.Items)
}

func TestFetcher_FetchPlaylist_UnknownPlaylist(t *testing.T) {
	t.Parallel()

	fetcher := newFetcher(t, &fakeAPI{})

	_, err := fetcher.FetchPlaylist(context.Background(), "nope")
	require.ErrorIs(t, err, youtube.ErrNotFound)
}

func TestFetcher_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{durations: map[string]string{"v1": "PT5S"}}
	api.failVideos.Store(1)
	fetcher := newFetcher(t, api)

	video, err := fetcher.FetchVideo(context.Background(), "v1")
	require.NoError(t, err)
	require.Equal(t, 5, video.OriginDuration)
	require.Equal(t, int32(2), api.videoCalls.Load())
}

func TestFetcher_UpstreamUnavailableAfterRetries(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{
		playlists: map[string]string{"PL3": "Broken"},
		items:     map[string][]map[string]any{"PL3": {playlistItem("a", "", "")}},
		durations: map[string]string{"a": "PT5S"},
	}
	api.failVideos.Store(10)
	fetcher := newFetcher(t, api)

	_, err := fetcher.FetchPlaylist(context.Background(), "PL3")
	require.ErrorIs(t, err, youtube.ErrUpstreamUnavailable)
	require.Equal(t, int32(3), api.videoCalls.Load())
}
