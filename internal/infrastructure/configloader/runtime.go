// Package configloader 提供配置加载与归一化能力，供 Wire 装配使用。
package configloader

import "time"

// RuntimeConfig 聚合应用在运行期所需的配置片段。
type RuntimeConfig struct {
	Service       ServiceInfo
	Server        ServerConfig
	Database      DatabaseConfig
	Observability ObservabilityConfig
	YouTube       YouTubeConfig
	Sync          SyncConfig
}

// ServiceInfo 描述服务标识与运行环境。
type ServiceInfo struct {
	Name        string
	Version     string
	Environment string
	InstanceID  string
}

// ServerConfig 收敛入站 HTTP 服务所需的网络与 Handler 配置。
type ServerConfig struct {
	Network      string
	Address      string
	Timeout      time.Duration
	RateLimit    bool
	Metrics      bool
	Handlers     HandlerTimeoutConfig
	MetadataKeys []string
}

// HandlerTimeoutConfig 定义不同类型 Handler 的超时策略。
type HandlerTimeoutConfig struct {
	Default time.Duration
	Command time.Duration
	Query   time.Duration
}

// DatabaseConfig 包含 PostgreSQL 连接池及事务默认值。
type DatabaseConfig struct {
	DSN               string
	MaxOpenConns      int
	MinOpenConns      int
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
	Schema            string
	PreparedStmts     bool
	PoolMetrics       bool
	Transaction       TransactionConfig
}

// TransactionConfig 指定事务默认隔离级别与超时策略。
type TransactionConfig struct {
	DefaultIsolation string
	DefaultTimeout   time.Duration
	LockTimeout      time.Duration
	MaxRetries       int
	MetricsEnabled   bool
}

// ObservabilityConfig 聚合 tracing 与 metrics 的配置。
type ObservabilityConfig struct {
	GlobalAttributes map[string]string
	Tracing          TracingConfig
	Metrics          MetricsConfig
}

// TracingConfig 描述 OpenTelemetry 追踪导出的行为。
type TracingConfig struct {
	Enabled            bool
	Exporter           string
	Endpoint           string
	Headers            map[string]string
	Insecure           bool
	SamplingRatio      float64
	BatchTimeout       time.Duration
	ExportTimeout      time.Duration
	MaxQueueSize       int
	MaxExportBatchSize int
	Required           bool
	Attributes         map[string]string
}

// MetricsConfig 描述 OpenTelemetry 指标导出的行为。
type MetricsConfig struct {
	Enabled             bool
	Exporter            string
	Endpoint            string
	Headers             map[string]string
	Insecure            bool
	Interval            time.Duration
	DisableRuntimeStats bool
	Required            bool
	ResourceAttributes  map[string]string
}

// YouTubeConfig 描述外部目录客户端与元数据缓存。
type YouTubeConfig struct {
	APIKey              string
	Endpoint            string
	RequestsPerSecond   float64
	Burst               int
	MaxRetries          int
	InitialBackoff      time.Duration
	MaxBackoff          time.Duration
	DurationConcurrency int
	RedisURL            string
	CacheTTL            time.Duration
}

// SyncConfig 控制播放列表同步：单次同步的拉取并发，以及周期任务的扫描节奏。
type SyncConfig struct {
	FetchConcurrency int
	Task             PlaylistSyncTaskConfig
}

// PlaylistSyncTaskConfig 配置周期同步任务。
type PlaylistSyncTaskConfig struct {
	Interval    time.Duration
	BatchSize   int
	Workers     int
	StaleAfter  time.Duration
	SyncTimeout time.Duration
	RunOnce     bool
	// Embedded 为 true 时由 HTTP 进程随 App 生命周期运行同步任务。
	Embedded bool
}
