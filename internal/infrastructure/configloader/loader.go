package configloader

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Params 控制配置加载的输入参数。
type Params struct {
	ConfPath string
}

const (
	defaultConfPath       = "configs/config.yaml"
	envConfPath           = "CONF_PATH"
	envDatabaseURL        = "DATABASE_URL"
	envPort               = "PORT"
	envYouTubeAPIKey      = "YOUTUBE_API_KEY"
	envRedisURL           = "REDIS_URL"
	envServiceName        = "SERVICE_NAME"
	envServiceVersion     = "SERVICE_VERSION"
	envEnvironment        = "APP_ENV"
	defaultServiceName    = "library"
	defaultServiceVersion = "dev"
	defaultEnvironment    = "development"
)

var envFileNames = []string{".env.local", ".env"}

// Load 解析配置文件并返回归一化的 RuntimeConfig。
func Load(params Params) (RuntimeConfig, error) {
	confPath := resolveConfPath(params.ConfPath)
	if err := loadEnvFiles(confPath); err != nil {
		return RuntimeConfig{}, fmt.Errorf("load env files: %w", err)
	}

	bootstrap, err := loadBootstrap(confPath)
	if err != nil {
		return RuntimeConfig{}, err
	}

	service := buildServiceInfo()
	runtime := bootstrap.toRuntime()
	runtime.Service = service
	fillDefaults(&runtime)

	return runtime, nil
}

func resolveConfPath(explicit string) string {
	switch {
	case explicit != "":
		return explicit
	case os.Getenv(envConfPath) != "":
		return os.Getenv(envConfPath)
	default:
		return defaultConfPath
	}
}

// loadEnvFiles 依次叠加配置目录与工作目录下的 .env.local / .env，后加载的覆盖先加载的。
func loadEnvFiles(confPath string) error {
	var dirs []string
	if info, err := os.Stat(confPath); err == nil {
		if info.IsDir() {
			dirs = append(dirs, filepath.Clean(confPath))
		} else {
			dirs = append(dirs, filepath.Dir(confPath))
		}
	}
	if cwd, err := os.Getwd(); err == nil && !slices.Contains(dirs, filepath.Clean(cwd)) {
		dirs = append(dirs, filepath.Clean(cwd))
	}

	var files []string
	for _, dir := range dirs {
		for _, name := range envFileNames {
			fp := filepath.Join(dir, name)
			if _, err := os.Stat(fp); err == nil {
				files = append(files, fp)
			}
		}
	}
	if len(files) == 0 {
		return nil
	}
	return godotenv.Overload(files...)
}

func loadBootstrap(confPath string) (*bootstrap, error) {
	c := config.New(config.WithSource(file.NewSource(confPath)))
	if err := c.Load(); err != nil {
		return nil, fmt.Errorf("load config %q: %w", confPath, err)
	}
	defer c.Close()

	var b bootstrap
	if err := c.Scan(&b); err != nil {
		return nil, fmt.Errorf("scan config %q: %w", confPath, err)
	}

	applyEnvOverrides(&b)

	if err := validator.New().Struct(&b); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &b, nil
}

func buildServiceInfo() ServiceInfo {
	instance, err := os.Hostname()
	if err != nil || instance == "" {
		instance = "unknown-instance"
	}
	return ServiceInfo{
		Name:        envOr(envServiceName, defaultServiceName),
		Version:     envOr(envServiceVersion, defaultServiceVersion),
		Environment: normalizeEnvironment(os.Getenv(envEnvironment)),
		InstanceID:  instance,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func normalizeEnvironment(raw string) string {
	switch raw {
	case "", "dev", "development":
		return defaultEnvironment
	case "prod", "production":
		return "production"
	default:
		return raw
	}
}

// envOverrides 列出可由环境变量覆盖的配置项，便于部署平台注入密钥与端口。
var envOverrides = []struct {
	key   string
	apply func(b *bootstrap, value string)
}{
	{envDatabaseURL, func(b *bootstrap, v string) { b.Data.Postgres.DSN = v }},
	{envPort, func(b *bootstrap, v string) { b.Server.HTTP.Addr = replacePort(b.Server.HTTP.Addr, v) }},
	{envYouTubeAPIKey, func(b *bootstrap, v string) { b.YouTube.APIKey = v }},
	{envRedisURL, func(b *bootstrap, v string) { b.YouTube.RedisURL = v }},
}

func applyEnvOverrides(b *bootstrap) {
	if b == nil {
		return
	}
	for _, override := range envOverrides {
		if value := os.Getenv(override.key); value != "" {
			override.apply(b, value)
		}
	}
}

func replacePort(addr, port string) string {
	if addr == "" {
		return ":" + port
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return ":" + port
	}
	return net.JoinHostPort(host, port)
}
