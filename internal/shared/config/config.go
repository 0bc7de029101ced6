package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Gateway    GatewayConfig    `mapstructure:"gateway"`
	Webhook    WebhookConfig    `mapstructure:"webhook"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Module     ModuleConfig     `mapstructure:"module"`
	Recurrence RecurrenceConfig `mapstructure:"recurrence"`
	Log        LogConfig        `mapstructure:"log"`
	Notifier   NotifierConfig   `mapstructure:"notifier"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// DSN returns the database connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GatewayConfig holds the Mundipagg API client configuration.
type GatewayConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	SecretKey        string        `mapstructure:"secret_key"`
	Timeout          time.Duration `mapstructure:"timeout"`
	RetryMax         int           `mapstructure:"retry_max"`
	RetryWaitMin     time.Duration `mapstructure:"retry_wait_min"`
	RetryWaitMax     time.Duration `mapstructure:"retry_wait_max"`
	FailureThreshold uint32        `mapstructure:"failure_threshold"`
	CircuitTimeout   time.Duration `mapstructure:"circuit_timeout"`
}

// WebhookConfig holds inbound webhook configuration.
// When Username is empty the webhook endpoint accepts unauthenticated calls.
type WebhookConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"` // bcrypt
}

// AuthConfig holds admin API authentication configuration.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// ModuleConfig holds the store module behavior switches.
type ModuleConfig struct {
	AntifraudEnabled bool   `mapstructure:"antifraud_enabled"`
	ForceCreateOrder bool   `mapstructure:"force_create_order"`
	Locale           string `mapstructure:"locale"`
	ModuleVersion    string `mapstructure:"module_version"`
	PlatformVersion  string `mapstructure:"platform_version"`
}

// RecurrenceConfig holds the recurrence (subscription) product rules.
type RecurrenceConfig struct {
	Enabled                                               bool   `mapstructure:"enabled"`
	ShowRecurrenceCurrencyWidget                          bool   `mapstructure:"show_recurrence_currency_widget"`
	PurchaseRecurrenceProductWithNormalProduct            bool   `mapstructure:"purchase_recurrence_product_with_normal_product"`
	ConflictMessageRecurrenceProductWithNormalProduct     string `mapstructure:"conflict_message_recurrence_product_with_normal_product"`
	PurchaseRecurrenceProductWithRecurrenceProduct        bool   `mapstructure:"purchase_recurrence_product_with_recurrence_product"`
	ConflictMessageRecurrenceProductWithRecurrenceProduct string `mapstructure:"conflict_message_recurrence_product_with_recurrence_product"`
}

// NotifierConfig holds the SMTP settings for customer order e-mails. An
// empty host disables sending.
type NotifierConfig struct {
	SMTPHost    string `mapstructure:"smtp_host"`
	SMTPPort    int    `mapstructure:"smtp_port"`
	SMTPUser    string `mapstructure:"smtp_user"`
	SMTPPass    string `mapstructure:"smtp_password"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// RateLimitConfig holds admin API rate limiting. A zero limit disables it.
type RateLimitConfig struct {
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from file and environment.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile loads configuration from path, or from the default search paths
// when path is empty.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/mundipagg")
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file not found, use defaults and env
	}

	v.SetEnvPrefix("MUNDIPAGG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Secrets are never expected in the config file.
	if key := os.Getenv("MUNDIPAGG_SECRET_KEY"); key != "" {
		cfg.Gateway.SecretKey = key
	}
	if secret := os.Getenv("MUNDIPAGG_JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if password := os.Getenv("MUNDIPAGG_DB_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}
	if password := os.Getenv("MUNDIPAGG_REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if password := os.Getenv("MUNDIPAGG_SMTP_PASSWORD"); password != "" {
		cfg.Notifier.SMTPPass = password
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.database", "mundipagg")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.conn_max_idle_time", 30*time.Minute)

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("gateway.base_url", "https://api.mundipagg.com/core/v1")
	v.SetDefault("gateway.timeout", 30*time.Second)
	v.SetDefault("gateway.retry_max", 3)
	v.SetDefault("gateway.retry_wait_min", 500*time.Millisecond)
	v.SetDefault("gateway.retry_wait_max", 5*time.Second)
	v.SetDefault("gateway.failure_threshold", 5)
	v.SetDefault("gateway.circuit_timeout", 60*time.Second)

	v.SetDefault("auth.issuer", "mundipagg-store")

	v.SetDefault("module.antifraud_enabled", false)
	v.SetDefault("module.force_create_order", false)
	v.SetDefault("module.locale", "pt-BR")

	v.SetDefault("recurrence.enabled", false)
	v.SetDefault("recurrence.purchase_recurrence_product_with_normal_product", true)
	v.SetDefault("recurrence.purchase_recurrence_product_with_recurrence_product", true)

	v.SetDefault("notifier.smtp_port", 587)
	v.SetDefault("notifier.from_name", "Mundipagg")

	v.SetDefault("rate_limit.limit", 120)
	v.SetDefault("rate_limit.window", time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
