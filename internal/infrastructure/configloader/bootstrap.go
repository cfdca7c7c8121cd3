package configloader

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Duration 接受 YAML 中的 "5s"、"1m30s" 字符串或纳秒整数。
type Duration time.Duration

// UnmarshalJSON 实现 json.Unmarshaler；Kratos config.Scan 以 JSON 解码非 proto 目标。
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*d = 0
	case float64:
		*d = Duration(time.Duration(v))
	case string:
		if strings.TrimSpace(v) == "" {
			*d = 0
			return nil
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	default:
		return fmt.Errorf("invalid duration value %v", raw)
	}
	return nil
}

// Std 返回 time.Duration。
func (d Duration) Std() time.Duration { return time.Duration(d) }

// bootstrap 与 configs/config.yaml 的结构一一对应。
type bootstrap struct {
	Server        serverSection        `json:"server"`
	Data          dataSection          `json:"data"`
	Observability observabilitySection `json:"observability"`
	YouTube       youtubeSection       `json:"youtube"`
	Sync          syncSection          `json:"sync"`
}

type serverSection struct {
	HTTP struct {
		Network   string   `json:"network" validate:"omitempty,oneof=tcp tcp4 tcp6 unix"`
		Addr      string   `json:"addr"`
		Timeout   Duration `json:"timeout" validate:"gte=0"`
		RateLimit *bool    `json:"rate_limit"`
		Metrics   *bool    `json:"metrics"`
	} `json:"http"`
	Handlers struct {
		DefaultTimeout Duration `json:"default_timeout" validate:"gte=0"`
		CommandTimeout Duration `json:"command_timeout" validate:"gte=0"`
		QueryTimeout   Duration `json:"query_timeout" validate:"gte=0"`
	} `json:"handlers"`
	MetadataKeys []string `json:"metadata_keys" validate:"dive,required"`
}

type dataSection struct {
	Postgres struct {
		DSN               string   `json:"dsn" validate:"required"`
		MaxOpenConns      int      `json:"max_open_conns" validate:"gte=0"`
		MinOpenConns      int      `json:"min_open_conns" validate:"gte=0"`
		MaxConnLifetime   Duration `json:"max_conn_lifetime"`
		MaxConnIdleTime   Duration `json:"max_conn_idle_time"`
		HealthCheckPeriod Duration `json:"health_check_period"`
		Schema            string   `json:"schema"`
		PreparedStmts     bool     `json:"enable_prepared_statements"`
		PoolMetrics       bool     `json:"pool_metrics"`
		Transaction       struct {
			DefaultIsolation string   `json:"default_isolation" validate:"omitempty,oneof=read_committed repeatable_read serializable"`
			DefaultTimeout   Duration `json:"default_timeout"`
			LockTimeout      Duration `json:"lock_timeout"`
			MaxRetries       int      `json:"max_retries" validate:"gte=0,lte=10"`
			MetricsEnabled   bool     `json:"metrics_enabled"`
		} `json:"transaction"`
	} `json:"postgres"`
}

type observabilitySection struct {
	GlobalAttributes map[string]string `json:"global_attributes"`
	Tracing          struct {
		Enabled            bool              `json:"enabled"`
		Exporter           string            `json:"exporter" validate:"omitempty,oneof=otlp_grpc otlp_http stdout"`
		Endpoint           string            `json:"endpoint"`
		Headers            map[string]string `json:"headers"`
		Insecure           bool              `json:"insecure"`
		SamplingRatio      float64           `json:"sampling_ratio" validate:"gte=0,lte=1"`
		BatchTimeout       Duration          `json:"batch_timeout"`
		ExportTimeout      Duration          `json:"export_timeout"`
		MaxQueueSize       int               `json:"max_queue_size" validate:"gte=0"`
		MaxExportBatchSize int               `json:"max_export_batch_size" validate:"gte=0"`
		Required           bool              `json:"required"`
		Attributes         map[string]string `json:"attributes"`
	} `json:"tracing"`
	Metrics struct {
		Enabled             bool              `json:"enabled"`
		Exporter            string            `json:"exporter" validate:"omitempty,oneof=otlp_grpc otlp_http stdout"`
		Endpoint            string            `json:"endpoint"`
		Headers             map[string]string `json:"headers"`
		Insecure            bool              `json:"insecure"`
		Interval            Duration          `json:"interval"`
		DisableRuntimeStats bool              `json:"disable_runtime_stats"`
		Required            bool              `json:"required"`
		ResourceAttributes  map[string]string `json:"resource_attributes"`
	} `json:"metrics"`
}

type youtubeSection struct {
	APIKey              string   `json:"api_key"`
	Endpoint            string   `json:"endpoint" validate:"omitempty,url"`
	RequestsPerSecond   float64  `json:"requests_per_second" validate:"gte=0"`
	Burst               int      `json:"burst" validate:"gte=0"`
	MaxRetries          int      `json:"max_retries" validate:"gte=0,lte=10"`
	InitialBackoff      Duration `json:"initial_backoff"`
	MaxBackoff          Duration `json:"max_backoff"`
	DurationConcurrency int      `json:"duration_concurrency" validate:"gte=0,lte=32"`
	RedisURL            string   `json:"redis_url"`
	CacheTTL            Duration `json:"cache_ttl"`
}

type syncSection struct {
	FetchConcurrency int `json:"fetch_concurrency" validate:"gte=0,lte=32"`
	Task             struct {
		Interval    Duration `json:"interval"`
		BatchSize   int      `json:"batch_size" validate:"gte=0,lte=1000"`
		Workers     int      `json:"workers" validate:"gte=0,lte=64"`
		StaleAfter  Duration `json:"stale_after"`
		SyncTimeout Duration `json:"sync_timeout"`
		RunOnce     bool     `json:"run_once"`
		Embedded    bool     `json:"embedded"`
	} `json:"task"`
}

func (b *bootstrap) toRuntime() RuntimeConfig {
	pg := b.Data.Postgres
	tracing := b.Observability.Tracing
	metrics := b.Observability.Metrics
	rateLimit := boolOr(b.Server.HTTP.RateLimit, true)
	httpMetrics := boolOr(b.Server.HTTP.Metrics, true)
	return RuntimeConfig{
		Server: ServerConfig{
			Network:   b.Server.HTTP.Network,
			Address:   b.Server.HTTP.Addr,
			Timeout:   b.Server.HTTP.Timeout.Std(),
			RateLimit: rateLimit,
			Metrics:   httpMetrics,
			Handlers: HandlerTimeoutConfig{
				Default: b.Server.Handlers.DefaultTimeout.Std(),
				Command: b.Server.Handlers.CommandTimeout.Std(),
				Query:   b.Server.Handlers.QueryTimeout.Std(),
			},
			MetadataKeys: append([]string(nil), b.Server.MetadataKeys...),
		},
		Database: DatabaseConfig{
			DSN:               pg.DSN,
			MaxOpenConns:      pg.MaxOpenConns,
			MinOpenConns:      pg.MinOpenConns,
			MaxConnLifetime:   pg.MaxConnLifetime.Std(),
			MaxConnIdleTime:   pg.MaxConnIdleTime.Std(),
			HealthCheckPeriod: pg.HealthCheckPeriod.Std(),
			Schema:            pg.Schema,
			PreparedStmts:     pg.PreparedStmts,
			PoolMetrics:       pg.PoolMetrics,
			Transaction: TransactionConfig{
				DefaultIsolation: pg.Transaction.DefaultIsolation,
				DefaultTimeout:   pg.Transaction.DefaultTimeout.Std(),
				LockTimeout:      pg.Transaction.LockTimeout.Std(),
				MaxRetries:       pg.Transaction.MaxRetries,
				MetricsEnabled:   pg.Transaction.MetricsEnabled,
			},
		},
		Observability: ObservabilityConfig{
			GlobalAttributes: b.Observability.GlobalAttributes,
			Tracing: TracingConfig{
				Enabled:            tracing.Enabled,
				Exporter:           tracing.Exporter,
				Endpoint:           tracing.Endpoint,
				Headers:            tracing.Headers,
				Insecure:           tracing.Insecure,
				SamplingRatio:      tracing.SamplingRatio,
				BatchTimeout:       tracing.BatchTimeout.Std(),
				ExportTimeout:      tracing.ExportTimeout.Std(),
				MaxQueueSize:       tracing.MaxQueueSize,
				MaxExportBatchSize: tracing.MaxExportBatchSize,
				Required:           tracing.Required,
				Attributes:         tracing.Attributes,
			},
			Metrics: MetricsConfig{
				Enabled:             metrics.Enabled,
				Exporter:            metrics.Exporter,
				Endpoint:            metrics.Endpoint,
				Headers:             metrics.Headers,
				Insecure:            metrics.Insecure,
				Interval:            metrics.Interval.Std(),
				DisableRuntimeStats: metrics.DisableRuntimeStats,
				Required:            metrics.Required,
				ResourceAttributes:  metrics.ResourceAttributes,
			},
		},
		YouTube: YouTubeConfig{
			APIKey:              b.YouTube.APIKey,
			Endpoint:            b.YouTube.Endpoint,
			RequestsPerSecond:   b.YouTube.RequestsPerSecond,
			Burst:               b.YouTube.Burst,
			MaxRetries:          b.YouTube.MaxRetries,
			InitialBackoff:      b.YouTube.InitialBackoff.Std(),
			MaxBackoff:          b.YouTube.MaxBackoff.Std(),
			DurationConcurrency: b.YouTube.DurationConcurrency,
			RedisURL:            b.YouTube.RedisURL,
			CacheTTL:            b.YouTube.CacheTTL.Std(),
		},
		Sync: SyncConfig{
			FetchConcurrency: b.Sync.FetchConcurrency,
			Task: PlaylistSyncTaskConfig{
				Interval:    b.Sync.Task.Interval.Std(),
				BatchSize:   b.Sync.Task.BatchSize,
				Workers:     b.Sync.Task.Workers,
				StaleAfter:  b.Sync.Task.StaleAfter.Std(),
				SyncTimeout: b.Sync.Task.SyncTimeout.Std(),
				RunOnce:     b.Sync.Task.RunOnce,
				Embedded:    b.Sync.Task.Embedded,
			},
		},
	}
}

func fillDefaults(cfg *RuntimeConfig) {
	defaultKeys := []string{
		"x-apigateway-api-userinfo",
		"x-md-",
		"x-md-idempotency-key",
		"x-md-if-match",
		"x-md-if-none-match",
	}
	if len(cfg.Server.MetadataKeys) == 0 {
		cfg.Server.MetadataKeys = append([]string(nil), defaultKeys...)
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8000"
	}
	if cfg.Database.Schema == "" {
		cfg.Database.Schema = "library"
	}
	task := &cfg.Sync.Task
	if task.Interval <= 0 {
		task.Interval = 15 * time.Minute
	}
	if task.BatchSize <= 0 {
		task.BatchSize = 100
	}
	if task.Workers <= 0 {
		task.Workers = 4
	}
	if task.StaleAfter <= 0 {
		task.StaleAfter = 6 * time.Hour
	}
	if task.SyncTimeout <= 0 {
		task.SyncTimeout = 2 * time.Minute
	}
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
