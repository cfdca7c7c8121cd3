// Package controllers 提供 HTTP 传输层 Handler，负责解析请求、注入调用方身份并调用业务层。
// 业务层返回的 Kratos Error 直接透传，由 Server 的 ErrorEncoder 编码为状态码与 reason。
package controllers

import (
	"github.com/bionicotaku/lingo-services-library/internal/services"

	"github.com/google/wire"
)

// ProviderSet exposes controller/handler constructors for DI.
var ProviderSet = wire.NewSet(
	NewBaseHandler,
	NewFolderHandler,
	NewVideoHandler,
	NewPlaylistHandler,
	wire.Bind(new(FolderUsecase), new(*services.FolderService)),
	wire.Bind(new(VideoUsecase), new(*services.VideoService)),
	wire.Bind(new(PlaylistUsecase), new(*services.PlaylistService)),
)
