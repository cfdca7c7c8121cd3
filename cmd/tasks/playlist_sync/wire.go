//go:build wireinject
// +build wireinject

package main

import (
	"context"
	"fmt"

	"github.com/bionicotaku/lingo-services-library/internal/clients"
	configloader "github.com/bionicotaku/lingo-services-library/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"
	"github.com/bionicotaku/lingo-services-library/internal/services"
	playlistsync "github.com/bionicotaku/lingo-services-library/internal/tasks/playlist_sync"

	"github.com/bionicotaku/lingo-utils/gclog"
	obswire "github.com/bionicotaku/lingo-utils/observability"
	"github.com/bionicotaku/lingo-utils/pgxpoolx"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

//go:generate go run github.com/google/wire/cmd/wire

func wirePlaylistSyncTask(context.Context, configloader.Params) (*playlistSyncApp, func(), error) {
	panic(wire.Build(
		configloader.ProviderSet,
		gclog.ProviderSet,
		obswire.ProviderSet,
		pgxpoolx.ProviderSet,
		txmanager.ProviderSet,
		clients.ProviderSet,
		repositories.ProviderSet,
		services.ProviderSet,
		playlistsync.ProvideRunner,
		newPlaylistSyncApp,
	))
}

// newPlaylistSyncApp 依赖 observability 组件以保证任务进程同样上报指标与追踪。
func newPlaylistSyncApp(_ *obswire.Component, logger log.Logger, runner *playlistsync.Runner) (*playlistSyncApp, error) {
	if runner == nil {
		return nil, fmt.Errorf("playlist sync runner not initialized")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger not initialized")
	}
	return &playlistSyncApp{
		Runner: runner,
		Logger: logger,
	}, nil
}
