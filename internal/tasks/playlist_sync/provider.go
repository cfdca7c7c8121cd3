package playlistsync

import (
	"github.com/bionicotaku/lingo-services-library/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"
	"github.com/bionicotaku/lingo-services-library/internal/services"

	"github.com/go-kratos/kratos/v2/log"
)

// ProvideRunner 装配周期同步 Runner。
func ProvideRunner(
	playlists *repositories.PlaylistRepository,
	reconciler *services.SyncReconciler,
	cfg configloader.PlaylistSyncTaskConfig,
	logger log.Logger,
) (*Runner, error) {
	return NewRunner(RunnerParams{
		Lister: playlists,
		Syncer: reconciler,
		Logger: logger,
		Config: Config{
			Interval:    cfg.Interval,
			BatchSize:   cfg.BatchSize,
			Workers:     cfg.Workers,
			StaleAfter:  cfg.StaleAfter,
			SyncTimeout: cfg.SyncTimeout,
			RunOnce:     cfg.RunOnce,
		},
	})
}
