package config

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Бэкенды хранилища session hand-off
const (
	HandoffBackendMemory   = "memory"
	HandoffBackendRedis    = "redis"
	HandoffBackendPostgres = "postgres"
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	BookingAPI BookingAPIConfig `toml:"booking_api"`
	Session    SessionConfig    `toml:"session"`
	Handoff    HandoffConfig    `toml:"handoff"`
	Redis      RedisConfig      `toml:"redis"`
	Database   DatabaseConfig   `toml:"database"`
	Reconcile  ReconcileConfig  `toml:"reconcile"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
	// PublicOrigin внешний адрес сайта для success/cancel URL (например, https://book.nbnesigns.co.uk)
	// Если пусто - вычисляется из запроса
	PublicOrigin string `toml:"public_origin"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingAPIConfig адрес внешнего booking API (таймаут в секундах)
type BookingAPIConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// SessionConfig настройки cookie браузерной сессии
type SessionConfig struct {
	CookieName string `toml:"cookie_name"`
	Secure     bool   `toml:"secure"`
	// TTL время жизни данных hand-off на сервере, в минутах
	TTL int `toml:"ttl"`
}

type HandoffConfig struct {
	Backend string `toml:"backend"`
	// PurgeInterval период чистки истекших записей в PostgreSQL, в секундах
	PurgeInterval int `toml:"purge_interval"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
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

// ReconcileConfig настройки сверки статуса после возврата с оплаты
type ReconcileConfig struct {
	// DelayMS пауза перед запросом статуса, чтобы бэкенд успел обработать webhook
	DelayMS int `toml:"delay_ms"`
	// Attempts количество попыток (1 = один запрос после паузы)
	Attempts int `toml:"attempts"`
	// ConfirmPayment явно вызывать confirm-payment перед запросом статуса
	ConfirmPayment bool `toml:"confirm_payment"`
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
	// TrustedProxies адреса или CIDR прокси, которым доверяется X-Forwarded-For
	TrustedProxies []string `toml:"trusted_proxies"`
}

// DSN строка подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Delay пауза перед сверкой
func (c ReconcileConfig) Delay() time.Duration {
	return time.Duration(c.DelayMS) * time.Millisecond
}

// PurgeEvery период чистки истекших записей
func (c HandoffConfig) PurgeEvery() time.Duration {
	return time.Duration(c.PurgeInterval) * time.Second
}

// SessionTTL время жизни данных hand-off
func (c SessionConfig) SessionTTL() time.Duration {
	return time.Duration(c.TTL) * time.Minute
}

// TrustedPrefixes разбирает trusted_proxies; одиночный адрес становится префиксом /32 или /128
func (c RateLimitConfig) TrustedPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(c.TrustedProxies))
	for _, raw := range c.TrustedProxies {
		if p, err := netip.ParsePrefix(raw); err == nil {
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("config: invalid rate_limit.trusted_proxies entry %q", raw)
		}
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// ReconcileBudget худшее время ответа страницы успеха: все попытки с паузой и таймаутом API
func (c *Config) ReconcileBudget() time.Duration {
	apiTimeout := time.Duration(c.BookingAPI.Timeout) * time.Second
	budget := time.Duration(c.Reconcile.Attempts) * (c.Reconcile.Delay() + apiTimeout)
	if c.Reconcile.ConfirmPayment {
		budget += apiTimeout
	}
	return budget
}

// Load загружает конфигурацию: значения по умолчанию, затем файл (если есть), затем переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
	}

	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "nbne_signs_web",
		},
		BookingAPI: BookingAPIConfig{
			URL:     "http://localhost:8000",
			Timeout: 10,
		},
		Session: SessionConfig{
			CookieName: "nbne_session",
			TTL:        24 * 60,
		},
		Handoff: HandoffConfig{
			Backend:       HandoffBackendMemory,
			PurgeInterval: 300,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "nbne_web",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Reconcile: ReconcileConfig{
			DelayMS:  2000,
			Attempts: 1,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     1,
			Burst:   5,
		},
	}
}

// applyEnv переопределяет значения из переменных окружения
func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("BOOKING_API_URL"); ok && v != "" {
		cfg.BookingAPI.URL = v
	}
	if v, ok := os.LookupEnv("HTTP_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_PORT %q: %w", v, err)
		}
		cfg.Server.HTTPPort = port
	}
	if v, ok := os.LookupEnv("PUBLIC_ORIGIN"); ok {
		cfg.Server.PublicOrigin = v
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		cfg.Logs.Level = v
	}
	if v, ok := os.LookupEnv("HANDOFF_BACKEND"); ok && v != "" {
		cfg.Handoff.Backend = v
	}
	if v, ok := os.LookupEnv("REDIS_ADDR"); ok && v != "" {
		cfg.Redis.Addr = v
	}
	if v, ok := os.LookupEnv("DB_HOST"); ok && v != "" {
		cfg.Database.Host = v
	}
	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		cfg.Database.Password = v
	}
	return nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("config: invalid server.http_port %d", c.Server.HTTPPort)
	}

	u, err := url.Parse(c.BookingAPI.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: invalid booking_api.url %q", c.BookingAPI.URL)
	}
	if c.BookingAPI.Timeout <= 0 {
		return fmt.Errorf("config: booking_api.timeout must be positive")
	}

	if c.Server.PublicOrigin != "" {
		u, err := url.Parse(c.Server.PublicOrigin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: invalid server.public_origin %q", c.Server.PublicOrigin)
		}
	}

	switch c.Handoff.Backend {
	case HandoffBackendMemory, HandoffBackendRedis, HandoffBackendPostgres:
	default:
		return fmt.Errorf("config: unknown handoff.backend %q", c.Handoff.Backend)
	}
	if c.Handoff.Backend == HandoffBackendPostgres && c.Handoff.PurgeInterval <= 0 {
		return fmt.Errorf("config: handoff.purge_interval must be positive")
	}

	if c.Session.CookieName == "" {
		return fmt.Errorf("config: session.cookie_name is required")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("config: session.ttl must be positive")
	}

	if c.Reconcile.DelayMS < 0 {
		return fmt.Errorf("config: reconcile.delay_ms must not be negative")
	}
	if c.Reconcile.Attempts < 1 {
		return fmt.Errorf("config: reconcile.attempts must be at least 1")
	}
	if budget := c.ReconcileBudget(); c.Server.WriteTimeout > 0 &&
		budget >= time.Duration(c.Server.WriteTimeout)*time.Second {
		return fmt.Errorf("config: reconcile budget %s must be below server.write_timeout %ds", budget, c.Server.WriteTimeout)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("config: rate_limit.rps and rate_limit.burst must be positive")
	}
	if _, err := c.RateLimit.TrustedPrefixes(); err != nil {
		return err
	}

	return nil
}
