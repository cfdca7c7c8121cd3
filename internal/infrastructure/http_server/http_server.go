// Package httpserver 负责装配入站 HTTP Server 及其中间件栈。
// 包括：追踪、恢复、metadata 传播、限流与日志中间件，以及可选的 HTTP 指标采集。
package httpserver

import (
	"net/http"

	"github.com/bionicotaku/lingo-services-library/internal/controllers"
	configloader "github.com/bionicotaku/lingo-services-library/internal/infrastructure/configloader"

	obsTrace "github.com/bionicotaku/lingo-utils/observability/tracing"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/metadata"
	"github.com/go-kratos/kratos/v2/middleware/ratelimit"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

const healthPath = "/healthz"

// NewHTTPServer 构造配置完整的 Kratos HTTP Server 实例。
//
// 中间件链（按执行顺序）：
// 1. obsTrace.Server() - OpenTelemetry 追踪
// 2. recovery.Recovery() - Panic 恢复
// 3. metadata.Server() - 转发配置中声明前缀的 header
// 4. ratelimit.Server() - BBR 自适应限流（可配置关闭）
// 5. logging.Server() - 结构化请求日志
//
// cfg.Metrics 为 true 时在路由外层包裹 otelhttp Filter，健康检查路径不计入指标。
func NewHTTPServer(
	cfg configloader.ServerConfig,
	folders *controllers.FolderHandler,
	videos *controllers.VideoHandler,
	playlists *controllers.PlaylistHandler,
	logger log.Logger,
) *khttp.Server {
	mws := []middleware.Middleware{
		obsTrace.Server(),
		recovery.Recovery(),
		metadata.Server(metadata.WithPropagatedPrefix(cfg.MetadataKeys...)),
	}
	if cfg.RateLimit {
		mws = append(mws, ratelimit.Server())
	}
	mws = append(mws, logging.Server(logger))

	opts := []khttp.ServerOption{
		khttp.Middleware(mws...),
	}
	if cfg.Metrics {
		opts = append(opts, khttp.Filter(newMetricsFilter()))
	}
	if cfg.Network != "" {
		opts = append(opts, khttp.Network(cfg.Network))
	}
	if cfg.Address != "" {
		opts = append(opts, khttp.Address(cfg.Address))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, khttp.Timeout(cfg.Timeout))
	}
	srv := khttp.NewServer(opts...)
	srv.HandleFunc(healthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router := srv.Route("/")
	if folders != nil {
		folders.RegisterRoutes(router)
	}
	if videos != nil {
		videos.RegisterRoutes(router)
	}
	if playlists != nil {
		playlists.RegisterRoutes(router)
	}
	return srv
}

// newMetricsFilter 构造 otelhttp 指标 Filter，使用全局 MeterProvider。
func newMetricsFilter() khttp.FilterFunc {
	return otelhttp.NewMiddleware("library.http",
		otelhttp.WithMeterProvider(otel.GetMeterProvider()),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != healthPath
		}),
	)
}
