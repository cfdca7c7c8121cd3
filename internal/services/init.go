// Package services 包含应用业务用例的编排逻辑。
// 该层负责协调 Repository 和 Clients，实现核心业务规则，不直接依赖传输层或基础设施细节。
package services

import (
	"github.com/bionicotaku/lingo-services-library/internal/clients/youtube"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"

	"github.com/google/wire"
)

// ProviderSet 暴露 Services 层的构造函数供 Wire 依赖注入使用。
// 包含所有 Usecase 的构造器以及仓储接口绑定。
var ProviderSet = wire.NewSet(
	NewVideoResolver,
	NewCatalogWriter,
	NewProjectionPropagator,
	NewRoutineBuilder,
	NewSyncReconciler,
	NewFolderService,
	NewVideoService,
	NewPlaylistService,
	wire.Bind(new(VideoStore), new(*repositories.VideoRepository)),
	wire.Bind(new(FolderStore), new(*repositories.FolderRepository)),
	wire.Bind(new(PlaylistStore), new(*repositories.PlaylistRepository)),
	wire.Bind(new(ExternalCatalog), new(*youtube.Fetcher)),
)
