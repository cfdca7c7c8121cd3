package services_test

import (
	"testing"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func resolved(externalID string, origin, duration int, start, end *int) services.ResolvedVideo {
	return services.ResolvedVideo{
		ID:             uuid.New(),
		ExternalID:     externalID,
		Title:          "video " + externalID,
		OriginDuration: origin,
		Start:          start,
		End:            end,
		Duration:       duration,
		Existed:        true,
		Repeat:         1,
	}
}

func TestBuildRoutineUsesCanonicalTrim(t *testing.T) {
	t.Parallel()

	video := resolved("a", 120, 90, ptrInt(10), ptrInt(100))
	built, err := services.BuildRoutine(nil, []services.ResolvedVideo{video})
	require.NoError(t, err)
	require.Nil(t, built.Routine.ExternalPlaylistID)
	require.Len(t, built.Routine.Videos, 1)

	occ := built.Routine.Videos[0]
	require.Equal(t, video.ID, occ.VideoID)
	require.Equal(t, 90, occ.Duration)
	require.Nil(t, occ.Start)
	require.Nil(t, occ.End)
	require.Equal(t, 90, built.Total)
}

func TestBuildRoutineAppliesOverridePerEndpoint(t *testing.T) {
	t.Parallel()

	video := resolved("a", 120, 90, ptrInt(10), ptrInt(100))
	video.Override = &services.TrimOverride{End: ptrInt(40)}
	video.Repeat = 3

	built, err := services.BuildRoutine(ptrString("PL1"), []services.ResolvedVideo{video})
	require.NoError(t, err)
	require.Equal(t, "PL1", *built.Routine.ExternalPlaylistID)

	occ := built.Routine.Videos[0]
	require.Equal(t, 30, occ.Duration)
	require.Equal(t, 3, occ.Repeat)
	require.Equal(t, 40, *occ.End)
	require.Nil(t, occ.Start)
	require.Equal(t, 90, built.Total)
}

func TestBuildRoutineFallsBackToOverrideWindow(t *testing.T) {
	t.Parallel()

	// 覆盖 end=5 与规范 start=10 合并后非法，改用覆盖区间本身
	video := resolved("a", 120, 90, ptrInt(10), ptrInt(100))
	video.Override = &services.TrimOverride{End: ptrInt(5)}

	built, err := services.BuildRoutine(nil, []services.ResolvedVideo{video})
	require.NoError(t, err)
	require.Equal(t, 5, built.Routine.Videos[0].Duration)
}

func TestBuildRoutineRejectsMissingCanonicalID(t *testing.T) {
	t.Parallel()

	video := resolved("a", 60, 60, nil, nil)
	video.ID = uuid.Nil
	_, err := services.BuildRoutine(nil, []services.ResolvedVideo{video})
	require.Error(t, err)
}

func TestBuildRoutineRejectsInvalidOverride(t *testing.T) {
	t.Parallel()

	video := resolved("a", 60, 60, nil, nil)
	video.Override = &services.TrimOverride{Start: ptrInt(70)}
	_, err := services.BuildRoutine(nil, []services.ResolvedVideo{video})
	require.ErrorIs(t, err, services.ErrInvalidRange)
}

func TestPlaylistTotalAcrossRoutines(t *testing.T) {
	t.Parallel()

	first := resolved("a", 30, 30, nil, nil)
	first.Repeat = 2
	second := resolved("b", 30, 30, nil, nil)
	second.Repeat = 2

	r1, err := services.BuildRoutine(nil, []services.ResolvedVideo{first})
	require.NoError(t, err)
	r2, err := services.BuildRoutine(nil, []services.ResolvedVideo{second})
	require.NoError(t, err)

	require.Equal(t, 120, po.TotalDuration([]po.Routine{r1.Routine, r2.Routine}))
	require.Equal(t, r1.Total+r2.Total, po.TotalDuration([]po.Routine{r1.Routine, r2.Routine}))
}

func TestRefreshOccurrencesFollowsCanonicalVideo(t *testing.T) {
	t.Parallel()

	videoID := uuid.New()
	other := po.Occurrence{VideoID: uuid.New(), Title: "other", Duration: 10, Repeat: 1}
	routines := []po.Routine{{Videos: []po.Occurrence{
		{VideoID: videoID, Title: "old", OriginDuration: 120, Duration: 120, Repeat: 2},
		{VideoID: videoID, Title: "old", OriginDuration: 120, End: ptrInt(20), Duration: 20, Repeat: 1},
		other,
	}}}
	video := &po.Video{ID: videoID, Title: "new", OriginDuration: 120, StartSec: ptrInt(60), Duration: 60, ThumbnailURL: "t"}

	refreshed, changed := services.RefreshOccurrences(routines, video)
	require.True(t, changed)
	require.Equal(t, "old", routines[0].Videos[0].Title)

	occs := refreshed[0].Videos
	require.Equal(t, "new", occs[0].Title)
	require.Equal(t, 60, occs[0].Duration)
	require.Equal(t, "new", occs[1].Title)
	require.Equal(t, 20, occs[1].Duration)
	require.Equal(t, other, occs[2])
	require.Equal(t, 60*2+20+10, po.TotalDuration(refreshed))

	_, changed = services.RefreshOccurrences(refreshed, video)
	require.False(t, changed)
}
