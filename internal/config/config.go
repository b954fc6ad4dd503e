package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Render   RenderConfig
	Media    MediaConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	PreviewLogFilePath string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
	WarmupTopic        string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
	LeadInbox  string // where new lead notifications are delivered
}

type RenderConfig struct {
	MaxDepth  int
	MaxNodes  int
	CacheTTL  time.Duration
	Highlight bool
	Style     string // chroma style name
}

type MediaConfig struct {
	PublicBaseURL string
	S3Bucket      string
	S3Region      string
	S3Prefix      string
	PresignTTL    time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	cfg := &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			PreviewLogFilePath: getEnv("PREVIEW_LOG_FILE_PATH", "logs/preview.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			WarmupTopic:        getEnv("RENDER_WARMUP_TOPIC_NAME", "RENDER_WARMUP"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Agency Website"),
			LeadInbox:  getEnv("LEAD_INBOX_EMAIL", ""),
		},
		Render: RenderConfig{
			MaxDepth:  getEnvAsInt("RENDER_MAX_DEPTH", 64),
			MaxNodes:  getEnvAsInt("RENDER_MAX_NODES", 20000),
			CacheTTL:  getEnvAsDuration("RENDER_CACHE_TTL", 10*time.Minute),
			Highlight: getEnvAsBool("RENDER_HIGHLIGHT", true),
			Style:     getEnv("RENDER_HIGHLIGHT_STYLE", "github"),
		},
		Media: MediaConfig{
			PublicBaseURL: getEnv("MEDIA_PUBLIC_BASE_URL", "http://localhost:3000/media"),
			S3Bucket:      getEnv("MEDIA_S3_BUCKET", ""),
			S3Region:      getEnv("MEDIA_S3_REGION", "us-east-1"),
			S3Prefix:      getEnv("MEDIA_S3_PREFIX", "media/"),
			PresignTTL:    getEnvAsDuration("MEDIA_PRESIGN_TTL", 15*time.Minute),
		},
	}
	clampCacheTTL(cfg)
	return cfg
}

// clampCacheTTL keeps cached renders from outliving the presigned media URLs
// embedded in them.
func clampCacheTTL(cfg *Config) {
	if cfg.Media.S3Bucket == "" || cfg.Render.CacheTTL < cfg.Media.PresignTTL {
		return
	}
	clamped := cfg.Media.PresignTTL / 2
	log.Printf("[WARN] RENDER_CACHE_TTL %s is not below MEDIA_PRESIGN_TTL %s, using %s", cfg.Render.CacheTTL, cfg.Media.PresignTTL, clamped)
	cfg.Render.CacheTTL = clamped
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("90s", "15m").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
