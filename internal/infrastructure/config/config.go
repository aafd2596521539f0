package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	usecasecontract "github.com/mikiasgoitom/articleboard/internal/usecase/contract"
)

// Config holds application configuration values.
type Config struct {
	Port       string
	AppBaseURL string

	MySQLDSN          string
	MySQLMaxOpenConns int
	MySQLMaxIdleConns int

	MongoURI    string
	MongoDBName string

	RedisURL string

	RabbitURL   string
	RabbitQueue string

	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration

	StrictReactions    bool
	ProfilePageSize    int
	RateLimitPerSecond float64

	LogLevel  string
	LogFormat string
}

var _ usecasecontract.IConfigProvider = (*Config)(nil)

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_BASE_URL", "http://localhost:8080")
	v.SetDefault("MYSQL_MAX_OPEN_CONNS", 20)
	v.SetDefault("MYSQL_MAX_IDLE_CONNS", 10)
	v.SetDefault("MONGODB_DB_NAME", "articleboard")
	v.SetDefault("RABBITMQ_QUEUE", "like.queue")
	v.SetDefault("ACCESS_TOKEN_EXPIRY_MINUTES", 15)
	v.SetDefault("REFRESH_TOKEN_EXPIRY_HOURS", 168) // 7 days
	v.SetDefault("REACTIONS_STRICT", true)
	v.SetDefault("PROFILE_PAGE_SIZE", 5)
	v.SetDefault("RATE_LIMIT_PER_SECOND", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// Load reads an optional .env file, an optional config file named by CONFIG_FILE
// and finally the process environment, which wins over both.
func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:               v.GetString("PORT"),
		AppBaseURL:         v.GetString("APP_BASE_URL"),
		MySQLDSN:           v.GetString("MYSQL_DSN"),
		MySQLMaxOpenConns:  v.GetInt("MYSQL_MAX_OPEN_CONNS"),
		MySQLMaxIdleConns:  v.GetInt("MYSQL_MAX_IDLE_CONNS"),
		MongoURI:           v.GetString("MONGODB_URI"),
		MongoDBName:        v.GetString("MONGODB_DB_NAME"),
		RedisURL:           v.GetString("REDIS_URL"),
		RabbitURL:          v.GetString("RABBITMQ_URL"),
		RabbitQueue:        v.GetString("RABBITMQ_QUEUE"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		AccessTokenExpiry:  time.Minute * time.Duration(v.GetInt("ACCESS_TOKEN_EXPIRY_MINUTES")),
		RefreshTokenExpiry: time.Hour * time.Duration(v.GetInt("REFRESH_TOKEN_EXPIRY_HOURS")),
		StrictReactions:    v.GetBool("REACTIONS_STRICT"),
		ProfilePageSize:    v.GetInt("PROFILE_PAGE_SIZE"),
		RateLimitPerSecond: v.GetFloat64("RATE_LIMIT_PER_SECOND"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFormat:          v.GetString("LOG_FORMAT"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MySQLDSN == "" {
		return errors.New("MYSQL_DSN is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.ProfilePageSize < 1 {
		return fmt.Errorf("PROFILE_PAGE_SIZE must be positive, got %d", c.ProfilePageSize)
	}
	if c.AccessTokenExpiry <= 0 || c.RefreshTokenExpiry <= 0 {
		return errors.New("token expiry settings must be positive")
	}
	return nil
}

// GetAppBaseURL returns the base URL of the application.
func (c *Config) GetAppBaseURL() string {
	return c.AppBaseURL
}

func (c *Config) GetAccessTokenExpiry() time.Duration {
	return c.AccessTokenExpiry
}

// GetRefreshTokenExpiry returns the expiry duration for refresh tokens.
func (c *Config) GetRefreshTokenExpiry() time.Duration {
	return c.RefreshTokenExpiry
}

func (c *Config) GetProfilePageSize() int {
	return c.ProfilePageSize
}

// GetStrictReactions reports whether a reaction request without action=post is rejected
// with 400 instead of being ignored with 204.
func (c *Config) GetStrictReactions() bool {
	return c.StrictReactions
}
