package main

import (
	"strconv"

	"github.com/bionicotaku/lingo-services-library/internal/clients/youtube"
	"github.com/bionicotaku/lingo-services-library/internal/services"

	"github.com/spf13/cobra"
)

func newFetchCommand(cc *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch external metadata from YouTube",
	}
	cmd.AddCommand(newFetchVideoCommand(cc))
	cmd.AddCommand(newFetchPlaylistCommand(cc))
	return cmd
}

func newFetchVideoCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "video <external-id>",
		Short: "Fetch a single video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher, err := cc.ensureFetcher(cmd.Context())
			if err != nil {
				return err
			}
			video, err := fetcher.FetchVideo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return cc.render(cmd.OutOrStdout(), video, func() string {
				return renderExternalVideo(video)
			})
		},
	}
}

func newFetchPlaylistCommand(cc *commandContext) *cobra.Command {
	var repeat int
	cmd := &cobra.Command{
		Use:   "playlist <external-id>",
		Short: "Fetch a playlist with all pages and effective durations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher, err := cc.ensureFetcher(cmd.Context())
			if err != nil {
				return err
			}
			playlist, err := fetcher.FetchPlaylist(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			rendered, err := renderExternalPlaylist(playlist, repeat)
			if err != nil {
				return err
			}
			return cc.render(cmd.OutOrStdout(), playlist, func() string { return rendered })
		},
	}
	cmd.Flags().IntVar(&repeat, "repeat", 1, "Repeat count applied when computing the total")
	return cmd
}

func renderExternalVideo(video youtube.Video) string {
	return renderKeyValues("Video", [][2]string{
		{"External ID", video.ExternalID},
		{"Title", video.Title},
		{"Duration", formatSeconds(video.OriginDuration)},
		{"Thumbnail", video.Thumbnail},
	})
}

// renderExternalPlaylist 对每个条目执行裁剪计算，非法裁剪提示会让整个渲染失败。
func renderExternalPlaylist(playlist youtube.Playlist, repeat int) (string, error) {
	rows := make([][]string, 0, len(playlist.Items))
	total := 0
	for i, item := range playlist.Items {
		trim, err := services.ComputeTrim(item.OriginDuration, item.Start, item.End, repeat)
		if err != nil {
			return "", err
		}
		total += trim.Total()
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			item.ExternalID,
			item.Title,
			formatOptionalSeconds(item.Start),
			formatOptionalSeconds(item.End),
			formatSeconds(item.OriginDuration),
			formatSeconds(trim.Duration),
		})
	}
	title := playlist.Title
	if title == "" {
		title = playlist.ExternalID
	}
	return renderTable(
		title,
		[]string{"#", "External ID", "Title", "Start", "End", "Origin", "Effective"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
		[]string{"", "", strconv.Itoa(len(rows)) + " items", "", "", "Total", formatSeconds(total)},
	), nil
}
