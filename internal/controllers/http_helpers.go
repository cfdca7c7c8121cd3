package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// userCall 是已解析调用方身份、已绑定超时的业务调用。
type userCall func(ctx context.Context, userID uuid.UUID) (any, error)

// serve 统一处理 operation 标记、Server 中间件链、身份解析、超时与响应编码。
// 业务层返回的 Kratos Error 原样交给 Server 的 ErrorEncoder，状态码与 reason 一一对应。
func (h *BaseHandler) serve(ctx khttp.Context, operation string, kind HandlerType, req any, status int, call userCall) error {
	khttp.SetOperation(ctx, operation)
	handler := ctx.Middleware(func(c context.Context, _ any) (any, error) {
		c, userID, err := h.RequireUser(c)
		if err != nil {
			return nil, err
		}
		timeoutCtx, cancel := h.WithTimeout(c, kind)
		defer cancel()
		return call(timeoutCtx, userID)
	})
	out, err := handler(ctx, req)
	if err != nil {
		return err
	}
	if status == 0 {
		status = http.StatusOK
	}
	return ctx.Result(status, out)
}

// pathID 读取并解析路径参数中的 UUID。
func pathID(ctx khttp.Context, name string) (uuid.UUID, error) {
	return parseID(ctx.Vars().Get(name), name)
}

// bindOptional 仅在请求携带请求体时解码，允许无 body 的 POST。
func bindOptional(ctx khttp.Context, v any) error {
	if req := ctx.Request(); req == nil || req.ContentLength == 0 {
		return nil
	}
	return ctx.Bind(v)
}
