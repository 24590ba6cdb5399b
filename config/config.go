package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DefaultServiceName = "nam-portfolio-api"
	DefaultPort        = "8080"
)

type Config struct {
	Env      string         `mapstructure:"env"`
	Service  string         `mapstructure:"service_name" validate:"required"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port            string `mapstructure:"port" validate:"required,numeric"`
	ReadTimeout     int    `mapstructure:"read_timeout_seconds" validate:"gte=0"`
	WriteTimeout    int    `mapstructure:"write_timeout_seconds" validate:"gte=0"`
	IdleTimeout     int    `mapstructure:"idle_timeout_seconds" validate:"gte=0"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
	CORSOrigin      string `mapstructure:"cors_allowed_origin" validate:"required"`
}

type DatabaseConfig struct {
	URL             string `mapstructure:"url" validate:"required"`
	MaxConns        int32  `mapstructure:"max_conns" validate:"gt=0"`
	MinConns        int32  `mapstructure:"min_conns" validate:"gte=0,ltefield=MaxConns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime_seconds" validate:"gte=0"`
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time_seconds" validate:"gte=0"`
	ConnectTimeout  int    `mapstructure:"connect_timeout_seconds" validate:"gt=0"`
	AutoSchema      bool   `mapstructure:"auto_schema"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

// Load reads config.<ENV>.yaml if one exists, then applies environment
// overrides. ENV defaults to "local".
func Load() (*Config, error) {
	env := os.Getenv("ENV")
	if env == "" {
		env = "local"
	}

	v := viper.New()
	setDefaults(v, env)

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	v.SetConfigType("yaml")
	v.AddConfigPath("/configs")
	v.AddConfigPath("./configs")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Flat names used by the hosting platform
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("server.cors_allowed_origin", "CORS_ALLOWED_ORIGIN")
	_ = v.BindEnv("service_name", "SERVICE_NAME")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("log.format", "LOG_FORMAT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, env string) {
	v.SetDefault("env", env)
	v.SetDefault("service_name", DefaultServiceName)

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 15)
	v.SetDefault("server.idle_timeout_seconds", 60)
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("server.cors_allowed_origin", "*")

	v.SetDefault("database.max_conns", 25)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime_seconds", 3600)
	v.SetDefault("database.conn_max_idle_time_seconds", 1800)
	v.SetDefault("database.connect_timeout_seconds", 10)
	v.SetDefault("database.auto_schema", true)

	v.SetDefault("log.level", "info")
	if env == "local" {
		v.SetDefault("log.format", "console")
	} else {
		v.SetDefault("log.format", "json")
	}

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Validate checks field constraints declared in the struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}

func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

func (d DatabaseConfig) Timeout() time.Duration {
	return time.Duration(d.ConnectTimeout) * time.Second
}
