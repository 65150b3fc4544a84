// internal/config/config.go

package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	NATS        NATSConfig
	Community   CommunityConfig
	Social      SocialConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	SSLMode      string
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// CommunityConfig holds neighborhood feed configuration
type CommunityConfig struct {
	DefaultCity        string
	DefaultCountry     string
	ActivityWindow     time.Duration
	TrendingFetchLimit int
	TrendingTopN       int
	MaxPostLength      int
	UserSubject        string
	SystemSubject      string
	PostsSubject       string
}

// SocialConfig holds social source configuration
type SocialConfig struct {
	TwitterBearerToken string
	FetchLimit         int
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Database:     getEnv("DB_NAME", "dicilo"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 5*time.Minute),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", "nats://localhost:4222"),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
		},
		Community: CommunityConfig{
			DefaultCity:        getEnv("COMMUNITY_DEFAULT_CITY", "Hamburg"),
			DefaultCountry:     getEnv("COMMUNITY_DEFAULT_COUNTRY", "Germany"),
			ActivityWindow:     getEnvAsDuration("COMMUNITY_ACTIVITY_WINDOW", 7*24*time.Hour),
			TrendingFetchLimit: getEnvAsInt("COMMUNITY_TRENDING_FETCH_LIMIT", 20),
			TrendingTopN:       getEnvAsInt("COMMUNITY_TRENDING_TOP_N", 5),
			MaxPostLength:      getEnvAsInt("COMMUNITY_MAX_POST_LENGTH", 2000),
			UserSubject:        getEnv("COMMUNITY_USER_SUBJECT", "community.neighborhoods.changed"),
			SystemSubject:      getEnv("COMMUNITY_SYSTEM_SUBJECT", "community.locations.changed"),
			PostsSubject:       getEnv("COMMUNITY_POSTS_SUBJECT", "community.posts"),
		},
		Social: SocialConfig{
			TwitterBearerToken: getEnv("TWITTER_BEARER_TOKEN", ""),
			FetchLimit:         getEnvAsInt("SOCIAL_FETCH_LIMIT", 20),
		},
	}

	return config, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
