package services

import (
	"context"
	stderrors "errors"

	"github.com/bionicotaku/lingo-services-library/internal/clients/youtube"
	"github.com/bionicotaku/lingo-services-library/internal/repositories"

	"github.com/go-kratos/kratos/v2/errors"
)

// 错误原因（Reason）常量，随 Kratos Error 一起下发给调用方。
const (
	ReasonValidation          = "LIBRARY_VALIDATION"
	ReasonVideoNotFound       = "VIDEO_NOT_FOUND"
	ReasonFolderNotFound      = "FOLDER_NOT_FOUND"
	ReasonPlaylistNotFound    = "PLAYLIST_NOT_FOUND"
	ReasonExternalNotFound    = "EXTERNAL_NOT_FOUND"
	ReasonOwnershipConflict   = "OWNERSHIP_CONFLICT"
	ReasonVisibilityForbids   = "VISIBILITY_FORBIDS"
	ReasonUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	ReasonRoutineIndexInvalid = "ROUTINE_INDEX_INVALID"
	ReasonAlreadyInFolder     = "VIDEO_ALREADY_IN_FOLDER"
	ReasonTimeout             = "LIBRARY_TIMEOUT"
)

var (
	// ErrInvalidRange 表示裁剪区间越界或颠倒。
	ErrInvalidRange = errors.BadRequest(ReasonValidation, "invalid trim range")
	// ErrVideoNotFound 表示规范视频不存在。
	ErrVideoNotFound = errors.NotFound(ReasonVideoNotFound, "video not found")
	// ErrFolderNotFound 表示文件夹不存在或已被删除。
	ErrFolderNotFound = errors.NotFound(ReasonFolderNotFound, "folder not found")
	// ErrPlaylistNotFound 表示播放列表不存在。
	ErrPlaylistNotFound = errors.NotFound(ReasonPlaylistNotFound, "playlist not found")
	// ErrExternalNotFound 表示外部平台上找不到对应 id。
	ErrExternalNotFound = errors.NotFound(ReasonExternalNotFound, "external resource not found")
	// ErrOwnershipConflict 表示操作者与资源归属不符。
	ErrOwnershipConflict = errors.Conflict(ReasonOwnershipConflict, "resource not owned by actor")
	// ErrVisibilityForbids 表示可见级别不允许该操作。
	ErrVisibilityForbids = errors.Conflict(ReasonVisibilityForbids, "visibility forbids operation")
	// ErrAlreadyInFolder 表示移动目标即当前文件夹。
	ErrAlreadyInFolder = errors.Conflict(ReasonAlreadyInFolder, "video already in target folder")
	// ErrUpstreamUnavailable 表示外部平台暂不可用，调用方可以重试。
	ErrUpstreamUnavailable = errors.ServiceUnavailable(ReasonUpstreamUnavailable, "external platform unavailable")
	// ErrInvalidRoutineIndex 表示同步指定的 routine 下标越界。
	ErrInvalidRoutineIndex = errors.BadRequest(ReasonRoutineIndexInvalid, "routine index out of range")
)

func validationError(format string, args ...any) error {
	return errors.Newf(400, ReasonValidation, format, args...)
}

// mapFetchError 将 youtube 客户端错误映射为业务错误。
func mapFetchError(err error) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, youtube.ErrNotFound):
		return ErrExternalNotFound.WithCause(err)
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.GatewayTimeout(ReasonTimeout, "external fetch timeout").WithCause(err)
	default:
		return ErrUpstreamUnavailable.WithCause(err)
	}
}

// mapStoreError 将仓储哨兵错误映射为业务错误，其余错误原样返回。
func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, repositories.ErrVideoNotFound):
		return ErrVideoNotFound.WithCause(err)
	case stderrors.Is(err, repositories.ErrFolderNotFound):
		return ErrFolderNotFound.WithCause(err)
	case stderrors.Is(err, repositories.ErrPlaylistNotFound):
		return ErrPlaylistNotFound.WithCause(err)
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.GatewayTimeout(ReasonTimeout, "store timeout").WithCause(err)
	default:
		return err
	}
}
