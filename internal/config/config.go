package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Config содержит настройки приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Retry    RetryConfig
	Log      LogConfig
	CORS     CORSConfig
	Metrics  MetricsConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Port string
}

// DatabaseConfig - настройки подключения к БД
type DatabaseConfig struct {
	Driver   string
	URI      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RetryConfig - повторные попытки инициализации схемы при старте
type RetryConfig struct {
	Count   int
	Delay   time.Duration
	Backoff float64
}

// LogConfig - уровень и формат логов
type LogConfig struct {
	Level  string
	Format string
}

// CORSConfig - настройки CORS
type CORSConfig struct {
	Enabled        bool
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type MetricsConfig struct {
	Enabled bool
}

// DSN возвращает строку подключения; DATABASE_URI имеет приоритет
func (c *DatabaseConfig) DSN() string {
	if c.URI != "" {
		return c.URI
	}

	switch c.Driver {
	case DriverMySQL:
		cfg := mysql.NewConfig()
		cfg.User = c.User
		cfg.Passwd = c.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(c.Host, c.Port)
		cfg.DBName = c.DBName
		cfg.ParseTime = true
		return cfg.FormatDSN()
	case DriverSQLite:
		return c.DBName + ".db"
	default:
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
		)
	}
}

// Validate проверяет значения, которые нельзя исправить молча
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return errors.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Retry.Count < 1 {
		return errors.Errorf("retry count must be at least 1, got %d", c.Retry.Count)
	}
	if c.Retry.Delay < 0 {
		return errors.Errorf("retry delay must not be negative, got %s", c.Retry.Delay)
	}
	if c.Retry.Backoff < 1 {
		return errors.Errorf("retry backoff must be at least 1, got %v", c.Retry.Backoff)
	}
	return nil
}

// Load загружает конфигурацию из переменных окружения и флагов.
// flags может быть nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// PORT оставлен для совместимости с окружениями вроде Heroku/Cloud Run
	if err := v.BindEnv("server.port", "SERVER_PORT", "PORT"); err != nil {
		return nil, errors.Wrap(err, "bind server port")
	}

	if flags != nil {
		for key, flag := range map[string]string{
			"server.port":     "port",
			"database.uri":    "database-uri",
			"database.driver": "database-driver",
			"log.level":       "log-level",
		} {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "bind flag %s", flag)
				}
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("server.port"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("database.driver")),
			URI:      v.GetString("database.uri"),
			Host:     v.GetString("database.host"),
			Port:     v.GetString("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			DBName:   v.GetString("database.name"),
			SSLMode:  v.GetString("database.sslmode"),
		},
		Retry: RetryConfig{
			Count:   v.GetInt("retry.count"),
			Delay:   time.Duration(v.GetFloat64("retry.delay") * float64(time.Second)),
			Backoff: v.GetFloat64("retry.backoff"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
		CORS: CORSConfig{
			Enabled:        v.GetBool("cors.enabled"),
			AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
			AllowedMethods: splitList(v.GetString("cors.allowed_methods")),
			AllowedHeaders: splitList(v.GetString("cors.allowed_headers")),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("metrics.enabled"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.uri", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "employees")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("retry.count", 5)
	v.SetDefault("retry.delay", 1)
	v.SetDefault("retry.backoff", 2)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("cors.enabled", true)
	v.SetDefault("cors.allowed_origins", "*")
	v.SetDefault("cors.allowed_methods", "GET,POST,DELETE")
	v.SetDefault("cors.allowed_headers", "Content-Type")

	v.SetDefault("metrics.enabled", true)
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
