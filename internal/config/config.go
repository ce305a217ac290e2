package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName string
	Env     string
	Host    string
	Port    int

	// DBDriver selects the store backend: "sqlite" (default) or "postgres".
	DBDriver    string
	SQLitePath  string
	DatabaseURL string

	JWTSecret          string
	AccessTokenMinutes int

	CORSOrigins []string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	AvatarSize      int
	DefaultPageSize int
}

func Load() (*Config, error) {
	// Local development keeps settings in a .env file; absence is fine.
	_ = godotenv.Load()

	cfg := &Config{
		AppName: getEnv("APP_NAME", "Hoppon API"),
		Env:     getEnv("APP_ENV", "development"),
		Host:    getEnv("HTTP_HOST", "0.0.0.0"),
		Port:    getEnvAsInt("HTTP_PORT", 3000),

		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		SQLitePath: getEnv("SQLITE_PATH", "hoppon.db"),

		JWTSecret:          os.Getenv("JWT_SECRET"),
		AccessTokenMinutes: getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60*24),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnv("SMTP_FROM", os.Getenv("SMTP_USER")),

		AvatarSize:      getEnvAsInt("AVATAR_SIZE", 256),
		DefaultPageSize: getEnvAsInt("MESSAGE_PAGE_SIZE", 50),
	}

	if cfg.DBDriver == "postgres" {
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(getEnv("POSTGRES_USER", "postgres"), getEnv("POSTGRES_PASSWORD", "postgres")),
			Host:     fmt.Sprintf("%s:%s", getEnv("POSTGRES_HOST", "localhost"), getEnv("POSTGRES_PORT", "5432")),
			Path:     getEnv("POSTGRES_DB", "hoppon"),
			RawQuery: "sslmode=disable",
		}
		cfg.DatabaseURL = u.String()
	}

	cors := getEnv("CORS_ORIGINS", "")
	if cors != "" {
		parts := strings.Split(cors, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		cfg.CORSOrigins = parts
	} else {
		cfg.CORSOrigins = []string{"http://localhost:5173"}
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
