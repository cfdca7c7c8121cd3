//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

//go:generate go run github.com/google/wire/cmd/wire

package main

import (
	"context"

	"github.com/bionicotaku/lingo-services-library/internal/clients"
	"github.com/bionicotaku/lingo-services-library/internal/controllers"
	configloader "github.com/bionicotaku/lingo-services-library/internal/infrastructure/configloader"
	httpserver "github.com/bionicotaku/lingo-services-library/internal/infrastructure/http_server"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"
	"github.com/bionicotaku/lingo-services-library/internal/services"
	playlistsync "github.com/bionicotaku/lingo-services-library/internal/tasks/playlist_sync"

	"github.com/bionicotaku/lingo-utils/gclog"
	obswire "github.com/bionicotaku/lingo-utils/observability"
	"github.com/bionicotaku/lingo-utils/pgxpoolx"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2"
	"github.com/google/wire"
)

// wireApp 构建整个 Kratos 应用，分阶段装配依赖。
//
// 依赖注入顺序:
//  1. 配置加载: configloader.ProviderSet 解析配置并派生组件配置
//  2. 基础设施: gclog → observability → pgxpoolx → txmanager
//  3. 外部客户端: clients.ProviderSet（YouTube Data API + Redis 元数据缓存）
//  4. 业务层: repositories → services → controllers
//  5. 服务器: httpserver.ProviderSet 组装 HTTP Server
//  6. 应用: newApp 创建 Kratos App（可选内嵌周期同步任务）
func wireApp(context.Context, configloader.Params) (*kratos.App, func(), error) {
	panic(wire.Build(
		configloader.ProviderSet, // 配置加载与解析
		gclog.ProviderSet,        // 结构化日志
		obswire.ProviderSet,      // OpenTelemetry 追踪和指标
		pgxpoolx.ProviderSet,     // PostgreSQL 连接池
		txmanager.ProviderSet,    // 事务管理器
		clients.ProviderSet,      // YouTube 客户端
		repositories.ProviderSet, // 数据访问层（pgx）
		services.ProviderSet,     // 业务逻辑层
		controllers.ProviderSet,  // 控制器层（HTTP handlers）
		httpserver.ProviderSet,   // HTTP Server
		playlistsync.ProvideRunner,
		newApp, // 组装 Kratos 应用
	))
}

// ━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
// 依赖注入详细文档
// ━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
//
// ┌─────────────────────────────────────────────────────────────────────────┐
// │ 1. 配置加载层 (configloader.ProviderSet)                                │
// └─────────────────────────────────────────────────────────────────────────┘
//
//   - configloader.LoadRuntimeConfig(configloader.Params) (configloader.RuntimeConfig, error)
//       解析 YAML、叠加 .env 与环境变量覆盖、执行 validator 校验。
//   - configloader.ProvideLoggerConfig / ProvideObservabilityConfig / ProvideObservabilityInfo
//   - configloader.ProvidePgxConfig / ProvideTxConfig
//   - configloader.ProvideYouTubeConfig(RuntimeConfig) youtube.Config
//   - configloader.ProvideSyncConfig(RuntimeConfig) services.SyncConfig
//   - configloader.ProvidePlaylistSyncTaskConfig(RuntimeConfig) configloader.PlaylistSyncTaskConfig
//   - configloader.ProvideHandlerTimeouts(RuntimeConfig) controllers.HandlerTimeouts
//
// ┌─────────────────────────────────────────────────────────────────────────┐
// │ 2. 外部客户端 (clients.ProviderSet)                                     │
// └─────────────────────────────────────────────────────────────────────────┘
//
//   - youtube.NewCache(youtube.Config, log.Logger) (*youtube.Cache, func(), error)
//       未配置 Redis 时返回 nil Cache，Fetcher 直接访问 API。
//   - youtube.NewFetcher(context.Context, youtube.Config, *youtube.Cache, log.Logger) (*youtube.Fetcher, error)
//
// ┌─────────────────────────────────────────────────────────────────────────┐
// │ 3. 业务层 (repositories/services/controllers)                           │
// └─────────────────────────────────────────────────────────────────────────┘
//
//   - repositories.NewVideoRepository / NewFolderRepository / NewPlaylistRepository(*pgxpool.Pool, log.Logger)
//   - services.NewVideoResolver, NewCatalogWriter, NewProjectionPropagator, NewRoutineBuilder,
//     NewSyncReconciler, NewFolderService, NewVideoService, NewPlaylistService
//       Store 接口通过 wire.Bind 绑定到对应 Repository，ExternalCatalog 绑定到 *youtube.Fetcher。
//   - controllers.NewBaseHandler, NewFolderHandler, NewVideoHandler, NewPlaylistHandler
//       Usecase 接口通过 wire.Bind 绑定到对应 Service。
//
// ┌─────────────────────────────────────────────────────────────────────────┐
// │ 4. HTTP Server 与应用层                                                  │
// └─────────────────────────────────────────────────────────────────────────┘
//
//   - httpserver.NewHTTPServer(configloader.ServerConfig, *controllers.FolderHandler,
//       *controllers.VideoHandler, *controllers.PlaylistHandler, log.Logger) *http.Server
//   - playlistsync.ProvideRunner(*repositories.PlaylistRepository, *services.SyncReconciler,
//       configloader.PlaylistSyncTaskConfig, log.Logger) (*playlistsync.Runner, error)
//   - newApp(*observability.Component, log.Logger, *http.Server, configloader.ServiceInfo,
//       configloader.PlaylistSyncTaskConfig, *playlistsync.Runner) *kratos.App
