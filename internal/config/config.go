package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DatabaseURL     string
	JWTSecret       string
	JWTTTL          time.Duration
	GoogleAudience  string
	AllowOrigins    []string
	LogstashTCPAddr string
	CatalogPath     string
	SearchCacheSize int
	WizardTTL       time.Duration
	MinIOEndpoint   string
	MinIOAccessKey  string
	MinIOSecretKey  string
	MinIOUseSSL     bool
	MinIOPublicURL  string
	AvatarBucket    string
	AvatarMaxBytes  int64
	StripeSecretKey string
	SMTPHost        string
	SMTPPort        string
	SMTPUsername    string
	SMTPPassword    string
	SMTPFrom        string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	avatarMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("AVATAR_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		avatarMax = v
	}

	cacheSize := 512
	if v, err := strconv.Atoi(getenv("SEARCH_CACHE_SIZE", "512")); err == nil && v > 0 {
		cacheSize = v
	}

	return Config{
		Port:            getenv("PORT", "8080"),
		DatabaseURL:     must("DATABASE_URL"),
		JWTSecret:       must("JWT_SECRET"),
		JWTTTL:          duration(getenv("JWT_TTL", "24h"), 24*time.Hour),
		GoogleAudience:  getenv("GOOGLE_AUDIENCE", ""),
		AllowOrigins:    splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),
		CatalogPath:     getenv("CATALOG_PATH", "data/packages.yaml"),
		SearchCacheSize: cacheSize,
		WizardTTL:       duration(getenv("WIZARD_SESSION_TTL", "2h"), 2*time.Hour),
		MinIOEndpoint:   getenv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:  getenv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:  getenv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:     getenv("MINIO_USE_SSL", "false") == "true",
		MinIOPublicURL:  getenv("MINIO_PUBLIC_URL", ""),
		AvatarBucket:    getenv("MINIO_BUCKET_AVATARS", "wandertrails-avatars"),
		AvatarMaxBytes:  avatarMax,
		StripeSecretKey: getenv("STRIPE_SECRET_KEY", ""),
		SMTPHost:        getenv("SMTP_HOST", ""),
		SMTPPort:        getenv("SMTP_PORT", ""),
		SMTPUsername:    getenv("SMTP_USERNAME", ""),
		SMTPPassword:    getenv("SMTP_PASSWORD", ""),
		SMTPFrom:        getenv("SMTP_FROM", ""),
	}
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func duration(raw string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return fallback
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
