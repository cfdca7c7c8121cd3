package mappers_test

import (
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/repositories/mappers"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoFromRow(t *testing.T) {
	now := time.Now().UTC()
	folderID := uuid.New()
	row := mappers.VideoRow{
		ID:               uuid.New(),
		UserID:           uuid.New(),
		ExternalID:       "abc123",
		Title:            "Lesson",
		OriginDuration:   300,
		StartSec:         pgtype.Int4{Int32: 10, Valid: true},
		Duration:         290,
		ThumbnailURL:     "https://img/medium.jpg",
		PlayInfo:         []byte(`{"fail_count":2,"success_count":5}`),
		FolderID:         folderID,
		FolderTitle:      "Default",
		FolderVisibility: 1,
		CreatedAt:        pgtype.Timestamptz{Time: now, Valid: true},
		Version:          3,
	}

	video, err := mappers.VideoFromRow(row)
	require.NoError(t, err)
	require.NotNil(t, video.StartSec)
	assert.Equal(t, 10, *video.StartSec)
	assert.Nil(t, video.EndSec)
	assert.Equal(t, 290, video.Duration)
	assert.Equal(t, []string{}, video.Tags)
	assert.Equal(t, int64(2), video.PlayInfo.FailCount)
	assert.Equal(t, int64(5), video.PlayInfo.SuccessCount)
	assert.Equal(t, po.FolderRef{ID: folderID, Title: "Default", Visibility: po.VisibilityOwner}, video.Folder)
	assert.Equal(t, now, video.CreatedAt)
	assert.True(t, video.UpdatedAt.IsZero())

	summary := video.Summary()
	assert.Equal(t, po.FolderVideo{ID: row.ID, Title: "Lesson", Duration: 290, Thumbnail: "https://img/medium.jpg"}, summary)
}

func TestVideoFromRowRejectsBadPlayInfo(t *testing.T) {
	_, err := mappers.VideoFromRow(mappers.VideoRow{ID: uuid.New(), PlayInfo: []byte(`{`)})
	require.Error(t, err)
}

func TestFolderFromRow(t *testing.T) {
	videoID := uuid.New()
	row := mappers.FolderRow{
		ID:                 uuid.New(),
		UserID:             uuid.New(),
		Title:              "Imported",
		ExternalPlaylistID: pgtype.Text{String: "PL123", Valid: true},
		Visibility:         2,
		Videos:             []byte(`[{"id":"` + videoID.String() + `","title":"a","duration":42,"thumbnail":"t","is_bookmarked":true}]`),
	}

	folder, err := mappers.FolderFromRow(row)
	require.NoError(t, err)
	require.NotNil(t, folder.ExternalPlaylistID)
	assert.Equal(t, "PL123", *folder.ExternalPlaylistID)
	assert.True(t, folder.Visibility.Shareable())
	require.Len(t, folder.Videos, 1)
	assert.True(t, folder.Contains(videoID))
	assert.Equal(t, 42, folder.Videos[0].Duration)
	assert.True(t, folder.Videos[0].IsBookmarked)
}

func TestPlaylistRoutinesRoundTrip(t *testing.T) {
	pl := "PLx"
	start := 5
	routines := []po.Routine{
		{ExternalPlaylistID: &pl, Videos: []po.Occurrence{{VideoID: uuid.New(), Title: "a", OriginDuration: 60, Start: &start, Duration: 55, Repeat: 2}}},
		{},
	}
	data, err := mappers.EncodeRoutines(routines)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"videos":[]`)
	assert.Nil(t, routines[1].Videos, "input must not be mutated")

	folderID := uuid.New()
	playlist, err := mappers.PlaylistFromRow(mappers.PlaylistRow{
		ID:       uuid.New(),
		Routines: data,
		FolderID: mappers.ToPgUUID(&folderID),
		Duration: 110,
	})
	require.NoError(t, err)
	require.Len(t, playlist.Routines, 2)
	assert.True(t, playlist.Routines[0].Linked())
	assert.False(t, playlist.Routines[1].Linked())
	assert.Equal(t, 110, po.TotalDuration(playlist.Routines))
	require.NotNil(t, playlist.FolderID)
	assert.Equal(t, folderID, *playlist.FolderID)
	assert.Nil(t, playlist.Routines[0].Videos[0].End)
}
