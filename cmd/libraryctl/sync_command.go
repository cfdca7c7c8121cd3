package main

import (
	"strconv"
	"strings"

	"github.com/bionicotaku/lingo-services-library/internal/services"
	playlistsync "github.com/bionicotaku/lingo-services-library/internal/tasks/playlist_sync"

	"github.com/spf13/cobra"
)

func newSyncCommand(cc *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Rebuild playlist routines linked to external playlists",
	}
	cmd.AddCommand(newSyncPlaylistCommand(cc))
	cmd.AddCommand(newSyncRunCommand(cc))
	return cmd
}

func newSyncPlaylistCommand(cc *commandContext) *cobra.Command {
	var (
		userFlag string
		routine  int
	)
	cmd := &cobra.Command{
		Use:   "playlist <playlist-id>",
		Short: "Sync one playlist (all routines or a single one)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseUUIDArg("user id", userFlag)
			if err != nil {
				return err
			}
			playlistID, err := parseUUIDArg("playlist id", args[0])
			if err != nil {
				return err
			}
			toolkit, err := cc.ensureToolkit(cmd.Context())
			if err != nil {
				return err
			}
			input := services.SyncInput{UserID: userID, PlaylistID: playlistID}
			if cmd.Flags().Changed("routine") {
				input.RoutineIndex = &routine
			}
			result, err := toolkit.Sync.SyncPlaylist(cmd.Context(), input)
			if err != nil {
				return err
			}
			return cc.render(cmd.OutOrStdout(), syncView(result), func() string {
				return renderSyncResult(result)
			})
		},
	}
	addUserFlag(cmd, &userFlag)
	cmd.Flags().IntVar(&routine, "routine", 0, "Only sync the routine at this index")
	return cmd
}

func newSyncRunCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one scan of the periodic playlist sync task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			toolkit, err := cc.ensureToolkit(cmd.Context())
			if err != nil {
				return err
			}
			summary, err := toolkit.Runner.RunOnce(cmd.Context())
			if err != nil {
				return err
			}
			return cc.render(cmd.OutOrStdout(), summary, func() string {
				return renderSyncSummary(summary)
			})
		},
	}
}

type syncResultView struct {
	Outcome  string `json:"outcome"`
	Playlist string `json:"playlist_id,omitempty"`
	Rebuilt  []int  `json:"rebuilt_indexes"`
	Inserted int    `json:"inserted_count"`
	Duration int    `json:"duration"`
}

func syncView(result services.SyncResult) syncResultView {
	view := syncResultView{
		Outcome:  result.Outcome.String(),
		Rebuilt:  result.Rebuilt,
		Inserted: result.Inserted,
	}
	if view.Rebuilt == nil {
		view.Rebuilt = []int{}
	}
	if result.Playlist != nil {
		view.Playlist = result.Playlist.ID.String()
		view.Duration = result.Playlist.Duration
	}
	return view
}

func renderSyncResult(result services.SyncResult) string {
	view := syncView(result)
	rebuilt := make([]string, 0, len(view.Rebuilt))
	for _, idx := range view.Rebuilt {
		rebuilt = append(rebuilt, strconv.Itoa(idx))
	}
	rebuiltText := "-"
	if len(rebuilt) > 0 {
		rebuiltText = strings.Join(rebuilt, ", ")
	}
	return renderKeyValues("Sync", [][2]string{
		{"Outcome", view.Outcome},
		{"Playlist", view.Playlist},
		{"Rebuilt routines", rebuiltText},
		{"Inserted videos", strconv.Itoa(view.Inserted)},
		{"Duration", formatSeconds(view.Duration)},
	})
}

func renderSyncSummary(summary playlistsync.Summary) string {
	return renderTable(
		"Sync run",
		[]string{"Scanned", "Synced", "Nothing to sync", "Failed"},
		[][]string{{
			strconv.Itoa(summary.Scanned),
			strconv.Itoa(summary.Synced),
			strconv.Itoa(summary.NothingToSync),
			strconv.Itoa(summary.Failed),
		}},
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
		nil,
	)
}
