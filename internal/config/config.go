package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Scheduling SchedulingConfig `toml:"scheduling"`
	Travel     TravelConfig     `toml:"travel"`
	Payment    PaymentConfig    `toml:"payment"`
	Calendar   CalendarConfig   `toml:"calendar"`
	Mail       MailConfig       `toml:"mail"`
}

type ServerConfig struct {
	HTTPPort        int    `toml:"http_port"`
	PublicURL       string `toml:"public_url"` // Базовый URL для ссылок возврата из оплаты
	ReadTimeout     int    `toml:"read_timeout"`
	WriteTimeout    int    `toml:"write_timeout"`
	IdleTimeout     int    `toml:"idle_timeout"`
	ShutdownTimeout int    `toml:"shutdown_timeout"`
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

// DSN returns the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
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

type SchedulingConfig struct {
	StepMinutes          int `toml:"step_minutes"`
	BufferMinutes        int `toml:"buffer_minutes"`
	HoldTTLSeconds       int `toml:"hold_ttl_seconds"`
	SweepIntervalSeconds int `toml:"sweep_interval_seconds"`
}

func (s SchedulingConfig) HoldTTL() time.Duration {
	return time.Duration(s.HoldTTLSeconds) * time.Second
}

func (s SchedulingConfig) SweepInterval() time.Duration {
	return time.Duration(s.SweepIntervalSeconds) * time.Second
}

type TravelConfig struct {
	Enabled        bool   `toml:"enabled"`
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	CacheSize      int    `toml:"cache_size"`
	BucketMinutes  int    `toml:"bucket_minutes"`
	RetryAttempts  int    `toml:"retry_attempts"`
}

func (t TravelConfig) Timeout() time.Duration {
	return time.Duration(t.TimeoutSeconds) * time.Second
}

type PaymentConfig struct {
	SecretKey string `toml:"secret_key"`
	Currency  string `toml:"currency"`
	CancelURL string `toml:"cancel_url"`
}

type CalendarConfig struct {
	Enabled         bool   `toml:"enabled"`
	CredentialsFile string `toml:"credentials_file"`
	RetryAttempts   int    `toml:"retry_attempts"`
	RetryDelayMs    int    `toml:"retry_delay_ms"`
}

func (c CalendarConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMs) * time.Millisecond
}

type MailConfig struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
	FromName string `toml:"from_name"`
	SSL      bool   `toml:"ssl"`
}

// secrets значения, которые не хранятся в config.toml
// Пустые переменные окружения не перетирают значения из файла
type secrets struct {
	DatabasePassword string `envconfig:"DB_PASSWORD"`
	MapsAPIKey       string `envconfig:"GOOGLE_MAPS_API_KEY"`
	StripeSecretKey  string `envconfig:"STRIPE_SECRET_KEY"`
	MailPassword     string `envconfig:"MAIL_PASSWORD"`
	CalendarCreds    string `envconfig:"GOOGLE_CALENDAR_CREDENTIALS_FILE"`
}

// Load загружает конфигурацию из TOML файла и переопределяет секреты из окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if err := applySecrets(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applySecrets(cfg *Config) error {
	var s secrets
	if err := envconfig.Process("smc", &s); err != nil {
		return fmt.Errorf("failed to read env secrets: %w", err)
	}

	if s.DatabasePassword != "" {
		cfg.Database.Password = s.DatabasePassword
	}
	if s.MapsAPIKey != "" {
		cfg.Travel.APIKey = s.MapsAPIKey
	}
	if s.StripeSecretKey != "" {
		cfg.Payment.SecretKey = s.StripeSecretKey
	}
	if s.MailPassword != "" {
		cfg.Mail.Password = s.MailPassword
	}
	if s.CalendarCreds != "" {
		cfg.Calendar.CredentialsFile = s.CalendarCreds
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			PublicURL:       "http://localhost:8080",
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
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "detailing_service",
		},
		Scheduling: SchedulingConfig{
			StepMinutes:          10,
			BufferMinutes:        domain.DefaultBufferMinutes,
			HoldTTLSeconds:       300,
			SweepIntervalSeconds: 60,
		},
		Travel: TravelConfig{
			BaseURL:        "https://maps.googleapis.com",
			TimeoutSeconds: 3,
			CacheSize:      128,
			BucketMinutes:  15,
			RetryAttempts:  2,
		},
		Payment: PaymentConfig{Currency: "usd"},
		Calendar: CalendarConfig{
			RetryAttempts: 3,
			RetryDelayMs:  1000,
		},
		Mail: MailConfig{Port: 465, SSL: true},
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive")
	}
	if c.Scheduling.StepMinutes <= 0 {
		return fmt.Errorf("scheduling.step_minutes must be positive")
	}
	if c.Scheduling.BufferMinutes < domain.DefaultBufferMinutes {
		return fmt.Errorf("scheduling.buffer_minutes must be at least %d", domain.DefaultBufferMinutes)
	}
	if c.Scheduling.HoldTTLSeconds <= 0 {
		return fmt.Errorf("scheduling.hold_ttl_seconds must be positive")
	}
	if c.Travel.Enabled && c.Travel.APIKey == "" {
		return fmt.Errorf("travel.api_key is required when travel is enabled")
	}
	if c.Calendar.Enabled && c.Calendar.CredentialsFile == "" {
		return fmt.Errorf("calendar.credentials_file is required when calendar is enabled")
	}
	if c.Mail.Enabled && (c.Mail.Host == "" || c.Mail.From == "") {
		return fmt.Errorf("mail.host and mail.from are required when mail is enabled")
	}
	return nil
}
