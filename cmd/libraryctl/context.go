package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bionicotaku/lingo-services-library/internal/clients/youtube"
	configloader "github.com/bionicotaku/lingo-services-library/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-library/internal/services"
	playlistsync "github.com/bionicotaku/lingo-services-library/internal/tasks/playlist_sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// libraryToolkit 聚合需要数据库的命令所使用的用例。
type libraryToolkit struct {
	Folders   *services.FolderService
	Playlists *services.PlaylistService
	Sync      *services.SyncReconciler
	Runner    *playlistsync.Runner
}

func newLibraryToolkit(
	folders *services.FolderService,
	playlists *services.PlaylistService,
	reconciler *services.SyncReconciler,
	runner *playlistsync.Runner,
) *libraryToolkit {
	return &libraryToolkit{
		Folders:   folders,
		Playlists: playlists,
		Sync:      reconciler,
		Runner:    runner,
	}
}

// commandContext 延迟装配依赖：fetch 子命令只需要 YouTube 客户端，不会连接数据库。
type commandContext struct {
	confPath   string
	jsonOutput bool

	mu       sync.Mutex
	fetcher  *youtube.Fetcher
	toolkit  *libraryToolkit
	cleanups []func()
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

func (c *commandContext) params() configloader.Params {
	return configloader.Params{ConfPath: strings.TrimSpace(c.confPath)}
}

func (c *commandContext) ensureFetcher(ctx context.Context) (*youtube.Fetcher, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fetcher != nil {
		return c.fetcher, nil
	}
	fetcher, cleanup, err := wireFetcher(ctx, c.params())
	if err != nil {
		return nil, fmt.Errorf("init youtube fetcher: %w", err)
	}
	c.fetcher = fetcher
	c.cleanups = append(c.cleanups, cleanup)
	return fetcher, nil
}

func (c *commandContext) ensureToolkit(ctx context.Context) (*libraryToolkit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.toolkit != nil {
		return c.toolkit, nil
	}
	toolkit, cleanup, err := wireToolkit(ctx, c.params())
	if err != nil {
		return nil, fmt.Errorf("init library toolkit: %w", err)
	}
	c.toolkit = toolkit
	c.cleanups = append(c.cleanups, cleanup)
	return toolkit, nil
}

// close 按装配的逆序释放资源。
func (c *commandContext) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.cleanups) - 1; i >= 0; i-- {
		if c.cleanups[i] != nil {
			c.cleanups[i]()
		}
	}
	c.cleanups = nil
}

// render 在 --json 时输出 JSON，否则输出表格。
func (c *commandContext) render(out io.Writer, value any, table func() string) error {
	if c.jsonOutput {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(value)
	}
	_, err := fmt.Fprintln(out, table())
	return err
}

func addUserFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "user", "", "Owner user id (UUID)")
	_ = cmd.MarkFlagRequired("user")
}

func parseUUIDArg(name, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return id, nil
}
