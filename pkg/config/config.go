package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Analysis  AnalysisConfig
	Timetable TimetableConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

type RedisConfig struct {
	Enabled   bool
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

type JWTConfig struct {
	Secret     string
	Issuer     string
	Expiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// AnalysisConfig tunes conflict/metrics recomputation and caching.
type AnalysisConfig struct {
	CacheEnabled          bool
	CacheTTL              time.Duration
	ReferenceCacheTTL     time.Duration
	RefreshWorkers        int
	EvaluationConcurrency int
}

// TimetableConfig holds campus calendar settings.
type TimetableConfig struct {
	Timezone string
}

// Location resolves the campus time zone, falling back to UTC.
func (c TimetableConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
		AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
	}

	cfg.Redis = RedisConfig{
		Enabled:   v.GetBool("REDIS_ENABLED"),
		Host:      v.GetString("REDIS_HOST"),
		Port:      v.GetInt("REDIS_PORT"),
		Password:  v.GetString("REDIS_PASSWORD"),
		DB:        v.GetInt("REDIS_DB"),
		KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Issuer:     v.GetString("JWT_ISSUER"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Analysis = AnalysisConfig{
		CacheEnabled:          v.GetBool("ANALYSIS_CACHE_ENABLED"),
		CacheTTL:              parseDuration(v.GetString("ANALYSIS_CACHE_TTL"), 5*time.Minute),
		ReferenceCacheTTL:     parseDuration(v.GetString("REFERENCE_CACHE_TTL"), time.Hour),
		RefreshWorkers:        v.GetInt("ANALYSIS_REFRESH_WORKERS"),
		EvaluationConcurrency: v.GetInt("TIMETABLE_EVALUATION_CONCURRENCY"),
	}

	cfg.Timetable = TimetableConfig{
		Timezone: v.GetString("TIMETABLE_TIMEZONE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks settings that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.Env == EnvProduction && (c.JWT.Secret == "" || c.JWT.Secret == "dev_secret") {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if _, err := time.LoadLocation(c.Timetable.Timezone); err != nil {
		return fmt.Errorf("invalid TIMETABLE_TIMEZONE %q: %w", c.Timetable.Timezone, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "uni_timetable")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY_PREFIX", "uni-timetable")

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_ISSUER", "uni-timetable-api")
	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ANALYSIS_CACHE_ENABLED", true)
	v.SetDefault("ANALYSIS_CACHE_TTL", "5m")
	v.SetDefault("REFERENCE_CACHE_TTL", "1h")
	v.SetDefault("ANALYSIS_REFRESH_WORKERS", 1)
	v.SetDefault("TIMETABLE_EVALUATION_CONCURRENCY", 4)

	v.SetDefault("TIMETABLE_TIMEZONE", "UTC")
}

func isMissingFile(err error) bool {
	return strings.Contains(err.Error(), "no such file or directory")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
