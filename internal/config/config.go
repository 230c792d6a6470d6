package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hipotecalia/crm-backend/internal/platform/logger"
	"github.com/hipotecalia/crm-backend/internal/utils"
)

// Config is built once at startup and handed to collaborators explicitly.
// Nothing below main reads the process environment directly.
type Config struct {
	Port    string
	LogMode string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresName     string

	JWTSecret string
	TokenTTL  time.Duration

	UploadDir   string
	CORSOrigins []string
}

func Load(log *logger.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file loaded", "error", err)
	}

	tokenTTLHours := utils.GetEnvAsInt("TOKEN_TTL_HOURS", 24*7, log)

	cfg := &Config{
		Port:             utils.GetEnv("PORT", "8080", log),
		LogMode:          utils.GetEnv("LOG_MODE", "development", log),
		PostgresHost:     utils.GetEnv("POSTGRES_HOST", "localhost", log),
		PostgresPort:     utils.GetEnv("POSTGRES_PORT", "5432", log),
		PostgresUser:     utils.GetEnv("POSTGRES_USER", "postgres", log),
		PostgresPassword: utils.GetEnv("POSTGRES_PASSWORD", "", log),
		PostgresName:     utils.GetEnv("POSTGRES_NAME", "crm", log),
		JWTSecret:        utils.GetEnv("JWT_SECRET", "basicSecret2025", log),
		TokenTTL:         time.Duration(tokenTTLHours) * time.Hour,
		UploadDir:        utils.GetEnv("UPLOAD_DIR", "./uploads", log),
		CORSOrigins:      splitOrigins(utils.GetEnv("CORS_ORIGINS", "http://localhost:3000", log)),
	}
	return cfg
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresName)
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
