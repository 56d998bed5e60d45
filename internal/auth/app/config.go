package app

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vidora-app/vidora/internal/auth/media"
	"github.com/vidora-app/vidora/pkg/jwtx"
)

type Config struct {
	Issuer        string // Optional: issuer claim for tokens (default: vidora-auth)
	AccessSecret  string // Required: HMAC secret for access tokens
	RefreshSecret string // Required: HMAC secret for refresh tokens, must differ from AccessSecret

	AccessTTL  time.Duration // Optional: access token lifetime (default: 15m)
	RefreshTTL time.Duration // Optional: refresh token lifetime (default: 168h)

	DatabaseFile string // Optional: path to SQLite database file (default: ./vidora.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	Media media.S3Config // Object store for avatar and cover uploads

	CORSOrigins []string // Optional: allowed browser origins, comma separated in env

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:        getEnvOrDefault("AUTH_ISSUER", "vidora-auth"),
		AccessSecret:  os.Getenv("AUTH_ACCESS_SECRET"),
		RefreshSecret: os.Getenv("AUTH_REFRESH_SECRET"),

		AccessTTL:  getEnvDurationOrDefault("AUTH_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL: getEnvDurationOrDefault("AUTH_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),

		DatabaseFile: getEnvOrDefault("AUTH_DATABASE_FILE", "vidora.db"),
		PepperFile:   getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),

		Media: media.S3Config{
			Region:        getEnvOrDefault("MEDIA_S3_REGION", "us-east-1"),
			Endpoint:      os.Getenv("MEDIA_S3_ENDPOINT"), // Optional: set for MinIO or other S3-compatible stores
			AccessKey:     os.Getenv("MEDIA_S3_ACCESS_KEY"),
			SecretKey:     os.Getenv("MEDIA_S3_SECRET_KEY"),
			Bucket:        os.Getenv("MEDIA_S3_BUCKET"),
			PublicBaseURL: os.Getenv("MEDIA_PUBLIC_BASE_URL"),
		},

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	return cfg
}

// Validate rejects configurations the service cannot safely start with.
// Secret equality is checked again by the token issuer; failing here gives
// a clearer startup error.
func (cfg Config) Validate() error {
	if cfg.AccessSecret == "" {
		return errors.New("AUTH_ACCESS_SECRET is required")
	}
	if cfg.RefreshSecret == "" {
		return errors.New("AUTH_REFRESH_SECRET is required")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return errors.New("AUTH_ACCESS_SECRET and AUTH_REFRESH_SECRET must differ")
	}
	if cfg.Media.Bucket == "" {
		return errors.New("MEDIA_S3_BUCKET is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Accepts duration syntax ("15m", "168h") or bare integer minutes.
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
