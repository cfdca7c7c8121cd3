//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/bionicotaku/lingo-services-library/internal/clients"
	"github.com/bionicotaku/lingo-services-library/internal/clients/youtube"
	configloader "github.com/bionicotaku/lingo-services-library/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"
	"github.com/bionicotaku/lingo-services-library/internal/services"
	playlistsync "github.com/bionicotaku/lingo-services-library/internal/tasks/playlist_sync"

	"github.com/bionicotaku/lingo-utils/gclog"
	"github.com/bionicotaku/lingo-utils/pgxpoolx"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/google/wire"
)

//go:generate go run github.com/google/wire/cmd/wire

// wireFetcher 只装配 YouTube 客户端，不依赖数据库。
func wireFetcher(context.Context, configloader.Params) (*youtube.Fetcher, func(), error) {
	panic(wire.Build(
		configloader.ProviderSet,
		gclog.ProviderSet,
		clients.ProviderSet,
	))
}

// wireToolkit 装配数据库与业务用例，供 sync/inspect/reconcile 命令使用。
func wireToolkit(context.Context, configloader.Params) (*libraryToolkit, func(), error) {
	panic(wire.Build(
		configloader.ProviderSet,
		gclog.ProviderSet,
		pgxpoolx.ProviderSet,
		txmanager.ProviderSet,
		clients.ProviderSet,
		repositories.ProviderSet,
		services.ProviderSet,
		playlistsync.ProvideRunner,
		newLibraryToolkit,
	))
}
