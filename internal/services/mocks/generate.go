package mocks

//go:generate go run github.com/golang/mock/mockgen -destination=mock_video_store.go -package=mocks github.com/bionicotaku/lingo-services-library/internal/services VideoStore
//go:generate go run github.com/golang/mock/mockgen -destination=mock_folder_store.go -package=mocks github.com/bionicotaku/lingo-services-library/internal/services FolderStore
//go:generate go run github.com/golang/mock/mockgen -destination=mock_playlist_store.go -package=mocks github.com/bionicotaku/lingo-services-library/internal/services PlaylistStore
//go:generate go run github.com/golang/mock/mockgen -destination=mock_external_catalog.go -package=mocks github.com/bionicotaku/lingo-services-library/internal/services ExternalCatalog
