package services

import (
	"context"

	"github.com/bionicotaku/lingo-services-library/internal/clients/youtube"
	"github.com/bionicotaku/lingo-services-library/internal/models/po"
	"github.com/bionicotaku/lingo-services-library/internal/models/vo"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/google/uuid"
)

// VideoStore 抽象规范视频仓储，便于测试替换。
type VideoStore interface {
	Get(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.Video, error)
	FindByExternalIDs(ctx context.Context, sess txmanager.Session, userID uuid.UUID, externalIDs []string) ([]*po.Video, error)
	ListByIDs(ctx context.Context, sess txmanager.Session, userID uuid.UUID, ids []uuid.UUID) ([]*po.Video, error)
	ListByFolder(ctx context.Context, sess txmanager.Session, folderID uuid.UUID) ([]*po.Video, error)
	InsertIfAbsent(ctx context.Context, sess txmanager.Session, input repositories.InsertVideoInput) (*po.Video, bool, error)
	AssignFolder(ctx context.Context, sess txmanager.Session, videoID uuid.UUID, folder po.FolderRef) (*po.Video, bool, error)
	Update(ctx context.Context, sess txmanager.Session, input repositories.UpdateVideoInput) (*po.Video, error)
	Delete(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.Video, error)
	IncrementSharedByExternalIDs(ctx context.Context, sess txmanager.Session, userID uuid.UUID, externalIDs []string) (int64, error)
	RefreshFolderRef(ctx context.Context, sess txmanager.Session, folder po.FolderRef) (int64, error)
}

// FolderStore 抽象文件夹仓储。
type FolderStore interface {
	Create(ctx context.Context, sess txmanager.Session, input repositories.CreateFolderInput) (*po.Folder, error)
	Get(ctx context.Context, sess txmanager.Session, folderID uuid.UUID) (*po.Folder, error)
	GetForUpdate(ctx context.Context, sess txmanager.Session, folderID uuid.UUID) (*po.Folder, error)
	ListByUser(ctx context.Context, sess txmanager.Session, userID uuid.UUID) ([]*po.Folder, error)
	Update(ctx context.Context, sess txmanager.Session, input repositories.UpdateFolderInput) (*po.Folder, error)
	EnsureDefault(ctx context.Context, sess txmanager.Session, userID uuid.UUID) (*po.Folder, error)
	EnsureHidden(ctx context.Context, sess txmanager.Session, userID uuid.UUID) (*po.Folder, error)
	SetExternalPlaylist(ctx context.Context, sess txmanager.Session, folderID uuid.UUID, externalID string) error
	PushVideo(ctx context.Context, sess txmanager.Session, folderID uuid.UUID, video po.FolderVideo) (bool, error)
	PullVideo(ctx context.Context, sess txmanager.Session, folderID, videoID uuid.UUID) (bool, error)
	UpdateVideoSummary(ctx context.Context, sess txmanager.Session, folderID uuid.UUID, video po.FolderVideo) (bool, error)
	ReplaceVideos(ctx context.Context, sess txmanager.Session, folderID uuid.UUID, videos []po.FolderVideo) error
	IncrementShared(ctx context.Context, sess txmanager.Session, folderID uuid.UUID) error
}

// PlaylistStore 抽象播放列表仓储。
type PlaylistStore interface {
	Create(ctx context.Context, sess txmanager.Session, input repositories.CreatePlaylistInput) (*po.Playlist, error)
	Get(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID) (*po.Playlist, error)
	GetForUpdate(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID) (*po.Playlist, error)
	ListByUser(ctx context.Context, sess txmanager.Session, userID uuid.UUID) ([]*po.Playlist, error)
	ListReferencingVideo(ctx context.Context, sess txmanager.Session, userID, videoID uuid.UUID) ([]*po.Playlist, error)
	ListLinked(ctx context.Context, sess txmanager.Session, input repositories.ListLinkedInput) ([]*po.Playlist, error)
	Save(ctx context.Context, sess txmanager.Session, playlist *po.Playlist) (*po.Playlist, error)
	UpdateRoutines(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID, routines []po.Routine, duration int, synced bool) (*po.Playlist, error)
	MarkSynced(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID) error
	IncrementShared(ctx context.Context, sess txmanager.Session, playlistID uuid.UUID) error
}

// ExternalCatalog 抽象外部视频平台读取。
type ExternalCatalog interface {
	FetchVideo(ctx context.Context, externalID string) (youtube.Video, error)
	FetchPlaylist(ctx context.Context, externalID string) (youtube.Playlist, error)
}

// FolderServiceInterface 抽象文件夹用例，供 Controller 依赖。
type FolderServiceInterface interface {
	CreateFolder(ctx context.Context, input CreateFolderInput) (*vo.Folder, error)
	GetFolder(ctx context.Context, userID, folderID uuid.UUID) (*vo.Folder, error)
	ListFolders(ctx context.Context, userID uuid.UUID) ([]*vo.Folder, error)
	UpdateFolder(ctx context.Context, input UpdateFolderInput) (*vo.Folder, error)
	ImportVideo(ctx context.Context, input ImportVideoInput) (*vo.MembershipResult, error)
	ImportPlaylist(ctx context.Context, input ImportPlaylistInput) (*vo.MembershipResult, error)
	CopyFolder(ctx context.Context, input CopyFolderInput) (*vo.MembershipResult, error)
	ReconcileFolder(ctx context.Context, userID, folderID uuid.UUID) (*vo.Folder, error)
}

// VideoServiceInterface 抽象视频用例。
type VideoServiceInterface interface {
	GetVideo(ctx context.Context, userID, videoID uuid.UUID) (*vo.Video, error)
	MoveVideo(ctx context.Context, input MoveVideoInput) (*vo.MembershipResult, error)
	CopyVideo(ctx context.Context, input CopyVideoInput) (*vo.MembershipResult, error)
	EditVideo(ctx context.Context, input EditVideoInput) (*vo.Video, error)
	SetBookmark(ctx context.Context, userID, videoID uuid.UUID, bookmarked bool) (*vo.Video, error)
	DeleteVideo(ctx context.Context, userID, videoID uuid.UUID) error
}

// PlaylistServiceInterface 抽象播放列表用例。
type PlaylistServiceInterface interface {
	CreatePlaylist(ctx context.Context, input CreatePlaylistInput) (*vo.Playlist, error)
	CopyPlaylist(ctx context.Context, input CopyPlaylistInput) (*vo.Playlist, error)
	UpdatePlaylist(ctx context.Context, input UpdatePlaylistInput) (*vo.Playlist, error)
	GetPlaylist(ctx context.Context, userID, playlistID uuid.UUID) (*vo.Playlist, error)
	ListPlaylists(ctx context.Context, userID uuid.UUID) ([]*vo.Playlist, error)
	SyncPlaylist(ctx context.Context, input SyncInput) (*vo.SyncResult, error)
}

var (
	_ VideoStore      = (*repositories.VideoRepository)(nil)
	_ FolderStore     = (*repositories.FolderRepository)(nil)
	_ PlaylistStore   = (*repositories.PlaylistRepository)(nil)
	_ ExternalCatalog = (*youtube.Fetcher)(nil)

	_ FolderServiceInterface   = (*FolderService)(nil)
	_ VideoServiceInterface    = (*VideoService)(nil)
	_ PlaylistServiceInterface = (*PlaylistService)(nil)
)
