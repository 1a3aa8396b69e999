package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/BurntSushi/toml"
)

var (
	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

const (
	HandoffBackendPostgres = "postgres"
	HandoffBackendRedis    = "redis"
)

// Config конфигурация сервиса
type Config struct {
	Server          ServerConfig     `toml:"server"`
	Logs            LogsConfig       `toml:"logs"`
	Metrics         MetricsConfig    `toml:"metrics"`
	Database        DatabaseConfig   `toml:"database"`
	Redis           RedisConfig      `toml:"redis"`
	Kafka           KafkaConfig      `toml:"kafka"`
	Handoff         HandoffConfig    `toml:"handoff"`
	Reconciler      ReconcilerConfig `toml:"reconciler"`
	BookingService  UpstreamConfig   `toml:"booking_service"`
	PaymentService  UpstreamConfig   `toml:"payment_service"`
	OfferingService UpstreamConfig   `toml:"offering_service"`
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

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
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
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// KafkaConfig если Brokers пуст, события не публикуются
type KafkaConfig struct {
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

// Enabled включена ли публикация событий
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type HandoffConfig struct {
	Backend              string `toml:"backend"`
	TTLMinutes           int    `toml:"ttl_minutes"`
	PurgeIntervalSeconds int    `toml:"purge_interval_seconds"`
}

type ReconcilerConfig struct {
	MaxAttempts int `toml:"max_attempts"`
	BaseDelayMs int `toml:"base_delay_ms"`
	// RunTimeout ограничение на один прогон подтверждения, секунды
	RunTimeout int `toml:"run_timeout"`
}

// UpstreamConfig адрес и таймаут (в секундах) внешнего сервиса
type UpstreamConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Load читает конфигурацию из TOML-файла, подставляет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyDefaults()

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
		c.Server.WriteTimeout = 30
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

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "salon-checkout"
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "salon.checkout.events"
	}

	if c.Handoff.Backend == "" {
		c.Handoff.Backend = HandoffBackendPostgres
	}
	if c.Handoff.TTLMinutes == 0 {
		c.Handoff.TTLMinutes = 30
	}
	if c.Handoff.PurgeIntervalSeconds == 0 {
		c.Handoff.PurgeIntervalSeconds = 300
	}

	if c.Reconciler.MaxAttempts == 0 {
		c.Reconciler.MaxAttempts = 3
	}
	if c.Reconciler.BaseDelayMs == 0 {
		c.Reconciler.BaseDelayMs = 1000
	}
	if c.Reconciler.RunTimeout == 0 {
		c.Reconciler.RunTimeout = 60
	}

	for _, upstream := range []*UpstreamConfig{&c.BookingService, &c.PaymentService, &c.OfferingService} {
		if upstream.Timeout == 0 {
			upstream.Timeout = 10
		}
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Handoff.Backend {
	case HandoffBackendPostgres:
	case HandoffBackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required for handoff backend %q", ErrInvalidConfig, c.Handoff.Backend)
		}
	default:
		return fmt.Errorf("%w: unknown handoff.backend %q", ErrInvalidConfig, c.Handoff.Backend)
	}

	if c.Handoff.TTLMinutes < 0 {
		return fmt.Errorf("%w: handoff.ttl_minutes must be positive", ErrInvalidConfig)
	}
	if c.Handoff.PurgeIntervalSeconds < 0 {
		return fmt.Errorf("%w: handoff.purge_interval_seconds must be positive", ErrInvalidConfig)
	}

	if c.Reconciler.MaxAttempts < 1 {
		return fmt.Errorf("%w: reconciler.max_attempts must be at least 1", ErrInvalidConfig)
	}
	if c.Reconciler.BaseDelayMs < 0 {
		return fmt.Errorf("%w: reconciler.base_delay_ms must not be negative", ErrInvalidConfig)
	}
	if c.Reconciler.RunTimeout < 0 {
		return fmt.Errorf("%w: reconciler.run_timeout must not be negative", ErrInvalidConfig)
	}

	upstreams := map[string]UpstreamConfig{
		"booking_service":  c.BookingService,
		"payment_service":  c.PaymentService,
		"offering_service": c.OfferingService,
	}
	for name, upstream := range upstreams {
		if upstream.URL == "" {
			return fmt.Errorf("%w: %s.url is required", ErrInvalidConfig, name)
		}
		if _, err := url.ParseRequestURI(upstream.URL); err != nil {
			return fmt.Errorf("%w: %s.url is not a valid URL: %v", ErrInvalidConfig, name, err)
		}
		if upstream.Timeout < 0 {
			return fmt.Errorf("%w: %s.timeout must not be negative", ErrInvalidConfig, name)
		}
	}

	return nil
}
