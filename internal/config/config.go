package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// Драйверы хранилища черновиков
const (
	DraftStoreRedis    = "redis"
	DraftStorePostgres = "postgres"
)

var (
	ErrReadConfig    = errors.New("config: failed to read config file")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Logs       LogsConfig       `toml:"logs"`
	Database   DatabaseConfig   `toml:"database"`
	Redis      RedisConfig      `toml:"redis"`
	DraftStore DraftStoreConfig `toml:"draft_store"`
	Sessions   SessionsConfig   `toml:"sessions"`
	Backend    BackendConfig    `toml:"backend"`
	Metrics    MetricsConfig    `toml:"metrics"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type DraftStoreConfig struct {
	Driver         string `toml:"driver"`          // redis | postgres
	KeyPrefix      string `toml:"key_prefix"`      // ключ снапшота: <key_prefix>:<userId>
	TTL            int    `toml:"ttl"`             // секунды, только для redis; 0 - без срока
	QueueSize      int    `toml:"queue_size"`      // сколько ключей может ждать асинхронной записи
	WriteTimeout   int    `toml:"write_timeout"`   // секунды на одну запись
	RestoreTimeout int    `toml:"restore_timeout"` // секунды на восстановление при старте сессии
}

type SessionsConfig struct {
	IdleTimeout   int `toml:"idle_timeout"`   // секунды без запросов до выгрузки сессии
	SweepInterval int `toml:"sweep_interval"` // секунды между проверками
}

type BackendConfig struct {
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
	Timeout int    `toml:"timeout"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load читает конфиг из TOML файла, подставляет значения по умолчанию,
// секреты из окружения и проверяет результат
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}

	if c.DraftStore.Driver == "" {
		c.DraftStore.Driver = DraftStoreRedis
	}
	if c.DraftStore.KeyPrefix == "" {
		c.DraftStore.KeyPrefix = domain.DefaultDraftKeyPrefix
	}
	if c.DraftStore.QueueSize == 0 {
		c.DraftStore.QueueSize = 4096
	}
	if c.DraftStore.WriteTimeout == 0 {
		c.DraftStore.WriteTimeout = 3
	}
	if c.DraftStore.RestoreTimeout == 0 {
		c.DraftStore.RestoreTimeout = 3
	}

	if c.Sessions.IdleTimeout == 0 {
		c.Sessions.IdleTimeout = 1800
	}
	if c.Sessions.SweepInterval == 0 {
		c.Sessions.SweepInterval = 60
	}

	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = 10
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "booking-flow"
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("BACKEND_API_KEY"); v != "" {
		c.Backend.APIKey = v
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Backend.URL == "" {
		problems = append(problems, "backend.url is required")
	} else if u, err := url.Parse(c.Backend.URL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, "backend.url must be an absolute URL")
	}
	if c.Backend.Timeout < 0 {
		problems = append(problems, "backend.timeout must not be negative")
	}
	if c.Sessions.IdleTimeout < 0 || c.Sessions.SweepInterval < 0 {
		problems = append(problems, "sessions.idle_timeout and sessions.sweep_interval must not be negative")
	}

	switch c.DraftStore.Driver {
	case DraftStoreRedis:
	case DraftStorePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			problems = append(problems, "database.host and database.dbname are required for postgres draft store")
		}
	default:
		problems = append(problems, fmt.Sprintf("draft_store.driver %q is not supported", c.DraftStore.Driver))
	}
	if c.DraftStore.TTL < 0 {
		problems = append(problems, "draft_store.ttl must not be negative")
	}
	if c.DraftStore.QueueSize < 0 {
		problems = append(problems, "draft_store.queue_size must not be negative")
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, "metrics.path must start with /")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
