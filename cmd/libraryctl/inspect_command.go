package main

import (
	"strconv"
	"strings"

	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/models/vo"

	"github.com/spf13/cobra"
)

func newInspectCommand(cc *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show stored folders and playlists",
	}
	cmd.AddCommand(newInspectFoldersCommand(cc))
	cmd.AddCommand(newInspectFolderCommand(cc))
	cmd.AddCommand(newInspectPlaylistsCommand(cc))
	cmd.AddCommand(newInspectPlaylistCommand(cc))
	return cmd
}

func newInspectFoldersCommand(cc *commandContext) *cobra.Command {
	var userFlag string
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "List the folders of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseUUIDArg("user id", userFlag)
			if err != nil {
				return err
			}
			toolkit, err := cc.ensureToolkit(cmd.Context())
			if err != nil {
				return err
			}
			folders, err := toolkit.Folders.ListFolders(cmd.Context(), userID)
			if err != nil {
				return err
			}
			return cc.render(cmd.OutOrStdout(), folders, func() string {
				return renderFolderList(folders)
			})
		},
	}
	addUserFlag(cmd, &userFlag)
	return cmd
}

func newInspectFolderCommand(cc *commandContext) *cobra.Command {
	var userFlag string
	cmd := &cobra.Command{
		Use:   "folder <folder-id>",
		Short: "Show a folder and its embedded video summaries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseUUIDArg("user id", userFlag)
			if err != nil {
				return err
			}
			folderID, err := parseUUIDArg("folder id", args[0])
			if err != nil {
				return err
			}
			toolkit, err := cc.ensureToolkit(cmd.Context())
			if err != nil {
				return err
			}
			folder, err := toolkit.Folders.GetFolder(cmd.Context(), userID, folderID)
			if err != nil {
				return err
			}
			return cc.render(cmd.OutOrStdout(), folder, func() string {
				return renderFolder(folder)
			})
		},
	}
	addUserFlag(cmd, &userFlag)
	return cmd
}

func newInspectPlaylistsCommand(cc *commandContext) *cobra.Command {
	var userFlag string
	cmd := &cobra.Command{
		Use:   "playlists",
		Short: "List the playlists of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseUUIDArg("user id", userFlag)
			if err != nil {
				return err
			}
			toolkit, err := cc.ensureToolkit(cmd.Context())
			if err != nil {
				return err
			}
			playlists, err := toolkit.Playlists.ListPlaylists(cmd.Context(), userID)
			if err != nil {
				return err
			}
			return cc.render(cmd.OutOrStdout(), playlists, func() string {
				return renderPlaylistList(playlists)
			})
		},
	}
	addUserFlag(cmd, &userFlag)
	return cmd
}

func newInspectPlaylistCommand(cc *commandContext) *cobra.Command {
	var userFlag string
	cmd := &cobra.Command{
		Use:   "playlist <playlist-id>",
		Short: "Show a playlist with its routines",
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
			playlist, err := toolkit.Playlists.GetPlaylist(cmd.Context(), userID, playlistID)
			if err != nil {
				return err
			}
			return cc.render(cmd.OutOrStdout(), playlist, func() string {
				return renderPlaylist(playlist)
			})
		},
	}
	addUserFlag(cmd, &userFlag)
	return cmd
}

func newReconcileCommand(cc *commandContext) *cobra.Command {
	var userFlag string
	cmd := &cobra.Command{
		Use:   "reconcile <folder-id>",
		Short: "Rebuild a folder's embedded summaries from canonical videos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseUUIDArg("user id", userFlag)
			if err != nil {
				return err
			}
			folderID, err := parseUUIDArg("folder id", args[0])
			if err != nil {
				return err
			}
			toolkit, err := cc.ensureToolkit(cmd.Context())
			if err != nil {
				return err
			}
			folder, err := toolkit.Folders.ReconcileFolder(cmd.Context(), userID, folderID)
			if err != nil {
				return err
			}
			return cc.render(cmd.OutOrStdout(), folder, func() string {
				return renderFolder(folder)
			})
		},
	}
	addUserFlag(cmd, &userFlag)
	return cmd
}

func visibilityName(v int16) string {
	switch po.Visibility(v) {
	case po.VisibilityHidden:
		return "hidden"
	case po.VisibilityOwner:
		return "owner"
	case po.VisibilityLink:
		return "link"
	case po.VisibilityPublic:
		return "public"
	default:
		return strconv.Itoa(int(v))
	}
}

func renderFolderList(folders []*vo.Folder) string {
	rows := make([][]string, 0, len(folders))
	for _, folder := range folders {
		total := 0
		for _, video := range folder.Videos {
			total += video.Duration
		}
		rows = append(rows, []string{
			folder.ID.String(),
			folder.Title,
			visibilityName(folder.Visibility),
			formatBool(folder.IsDefault),
			strconv.Itoa(len(folder.Videos)),
			formatSeconds(total),
		})
	}
	return renderTable(
		"Folders",
		[]string{"ID", "Title", "Visibility", "Default", "Videos", "Duration"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
		nil,
	)
}

func renderFolder(folder *vo.Folder) string {
	header := renderKeyValues("Folder", [][2]string{
		{"ID", folder.ID.String()},
		{"Title", folder.Title},
		{"Visibility", visibilityName(folder.Visibility)},
		{"External playlist", formatOptionalString(folder.ExternalPlaylistID)},
		{"Default", formatBool(folder.IsDefault)},
		{"Shared", strconv.FormatInt(folder.SharedCount, 10)},
		{"Tags", strings.Join(folder.Tags, ", ")},
		{"Version", strconv.FormatInt(folder.Version, 10)},
	})
	rows := make([][]string, 0, len(folder.Videos))
	total := 0
	for i, video := range folder.Videos {
		total += video.Duration
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			video.ID.String(),
			video.Title,
			formatSeconds(video.Duration),
			formatBool(video.IsBookmarked),
		})
	}
	videos := renderTable(
		"Videos",
		[]string{"#", "ID", "Title", "Duration", "Bookmarked"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
		[]string{"", "", "Total", formatSeconds(total), ""},
	)
	return header + "\n" + videos
}

func renderPlaylistList(playlists []*vo.Playlist) string {
	rows := make([][]string, 0, len(playlists))
	for _, playlist := range playlists {
		rows = append(rows, []string{
			playlist.ID.String(),
			playlist.Title,
			visibilityName(playlist.Visibility),
			strconv.Itoa(len(playlist.Routines)),
			formatSeconds(playlist.Duration),
		})
	}
	return renderTable(
		"Playlists",
		[]string{"ID", "Title", "Visibility", "Routines", "Duration"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
		nil,
	)
}

func renderPlaylist(playlist *vo.Playlist) string {
	header := renderKeyValues("Playlist", [][2]string{
		{"ID", playlist.ID.String()},
		{"Title", playlist.Title},
		{"Visibility", visibilityName(playlist.Visibility)},
		{"Duration", formatSeconds(playlist.Duration)},
		{"Shared", strconv.FormatInt(playlist.SharedCount, 10)},
		{"Success notification", formatOptionalString(playlist.SuccessNotification)},
		{"Fail notification", formatOptionalString(playlist.FailNotification)},
	})
	rows := make([][]string, 0)
	for ri, routine := range playlist.Routines {
		source := formatOptionalString(routine.ExternalPlaylistID)
		for oi, occ := range routine.Videos {
			repeat := occ.Repeat
			if repeat <= 0 {
				repeat = 1
			}
			rows = append(rows, []string{
				strconv.Itoa(ri),
				strconv.Itoa(oi + 1),
				source,
				occ.Title,
				formatOptionalSeconds(occ.Start),
				formatOptionalSeconds(occ.End),
				formatSeconds(occ.Duration),
				strconv.Itoa(repeat),
			})
		}
	}
	routines := renderTable(
		"Routines",
		[]string{"Routine", "#", "Source", "Title", "Start", "End", "Duration", "Repeat"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
		[]string{"", "", "", "Total", "", "", formatSeconds(playlist.Duration), ""},
	)
	return header + "\n" + routines
}
