package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/lakeside-hotel/service-booking/internal/platform/database"
)

const envPrefix = "HOTEL"

// RedisConfig holds the optional room-type cache connection.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	RoomTypesTTL time.Duration
}

// Enabled reports whether a Redis address was configured.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// KafkaConfig holds the optional event producer settings.
type KafkaConfig struct {
	Brokers []string
}

// Enabled reports whether any broker was configured.
func (c KafkaConfig) Enabled() bool { return len(c.Brokers) > 0 }

// RateLimitConfig holds the per-client request limit. A zero RPS disables limiting.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// ServiceConfig holds all configuration for the booking service.
type ServiceConfig struct {
	Port               string
	AppEnv             string
	DBConfig           database.Config
	RedisConfig        RedisConfig
	KafkaConfig        KafkaConfig
	RateLimitConfig    RateLimitConfig
	CORSAllowedOrigins []string
	MaxPhotoBytes      int64
}

// Load reads configuration from a local .env file (if present) and HOTEL_* environment variables.
func Load() (*ServiceConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("SERVICE_PORT", "9192")
	v.SetDefault("APP_ENV", "development")

	v.SetDefault("DB_DRIVER", database.DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "lakeside_hotel")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ROOM_TYPES_TTL", 10*time.Minute)

	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("MAX_PHOTO_BYTES", 5<<20)
	// One bucket per client IP, evicted after middleware.DefaultLimiterIdleTTL idle.
	v.SetDefault("RATE_LIMIT_RPS", 0)
	v.SetDefault("RATE_LIMIT_BURST", 5)
	return v
}

// FromViper builds a ServiceConfig from an already populated viper instance.
func FromViper(v *viper.Viper) (*ServiceConfig, error) {
	cfg := &ServiceConfig{
		Port:   normalizePort(v.GetString("SERVICE_PORT")),
		AppEnv: v.GetString("APP_ENV"),
		DBConfig: database.Config{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		RedisConfig: RedisConfig{
			Addr:         v.GetString("REDIS_ADDR"),
			Password:     v.GetString("REDIS_PASSWORD"),
			DB:           v.GetInt("REDIS_DB"),
			RoomTypesTTL: v.GetDuration("ROOM_TYPES_TTL"),
		},
		KafkaConfig:        KafkaConfig{Brokers: splitList(v.GetString("KAFKA_BROKERS"))},
		RateLimitConfig: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		MaxPhotoBytes:      v.GetInt64("MAX_PHOTO_BYTES"),
	}

	switch cfg.DBConfig.Driver {
	case database.DriverPostgres, database.DriverMySQL, database.DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBConfig.Driver)
	}
	if cfg.MaxPhotoBytes <= 0 {
		return nil, fmt.Errorf("MAX_PHOTO_BYTES must be positive, got %d", cfg.MaxPhotoBytes)
	}
	return cfg, nil
}

// normalizePort accepts "9192" or ":9192".
func normalizePort(p string) string {
	if strings.HasPrefix(p, ":") {
		return p
	}
	return ":" + p
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
