package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Redis    RedisConfig    `toml:"redis"`
	Kafka    KafkaConfig    `toml:"kafka"`
	Paysafe  PaysafeConfig  `toml:"paysafe"`
	Cron     CronConfig     `toml:"cron"`
	Store    StoreConfig    `toml:"store"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
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

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // секунды
}

type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

type PaysafeConfig struct {
	URL       string `toml:"url"`
	AccountID string `toml:"account_id"`
	APIUser   string `toml:"api_user"`
	APIKey    string `toml:"api_key"`
	Timeout   int    `toml:"timeout"`
}

type CronConfig struct {
	// SchedulerEnabled включает внутренний тик-цикл, без него задачи запускаются внешним триггером
	SchedulerEnabled bool `toml:"scheduler_enabled"`
	TickInterval     int  `toml:"tick_interval"`
	RequestTimeout   int  `toml:"request_timeout"`
	Workers          int  `toml:"workers"`
	// BaseURL адрес этого API для задач, создаваемых самим сервисом (напоминания о ретритах)
	BaseURL string `toml:"base_url"`
	// Token секрет для /api/v1/internal; cron отправляет его в X-Cron-Token только на BaseURL
	Token string `toml:"token"`
}

type StoreConfig struct {
	// RefundHours минимальное число часов до начала таймслота для возврата билетов
	RefundHours int `toml:"refund_hours"`
}

// Load читает конфигурацию из TOML-файла и применяет переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default значения по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "blitz-booking"},
		Redis:   RedisConfig{Addr: "localhost:6379", TTL: 300},
		Kafka:   KafkaConfig{Topic: "blitz.notifications"},
		Paysafe: PaysafeConfig{Timeout: 20},
		Cron: CronConfig{
			TickInterval:   60,
			RequestTimeout: 30,
			Workers:        4,
		},
		Store: StoreConfig{RefundHours: 48},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("PAYSAFE_API_KEY"); v != "" {
		cfg.Paysafe.APIKey = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("CRON_TOKEN"); v != "" {
		cfg.Cron.Token = v
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port %d out of range", c.Server.HTTPPort))
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		errs = append(errs, errors.New("database.host and database.dbname are required"))
	}
	if c.Cron.TickInterval <= 0 || c.Cron.RequestTimeout <= 0 || c.Cron.Workers <= 0 {
		errs = append(errs, errors.New("cron.tick_interval, cron.request_timeout and cron.workers must be positive"))
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("kafka.brokers is required when kafka is enabled"))
	}
	if c.Store.RefundHours < 0 {
		errs = append(errs, errors.New("store.refund_hours must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

func (c ServerConfig) ShutdownDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}
