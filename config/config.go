package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort  string
	AppEnv   string
	LogLevel string

	JWTSecret string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	KakaoAPIBase  string
	KakaoAdminKey string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	MailFrom string
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		AppPort:  get("APP_PORT", "8080"),
		AppEnv:   get("APP_ENV", "dev"),
		LogLevel: get("LOG_LEVEL", "info"),

		JWTSecret: get("JWT_SECRET", "dev-secret"),

		DBHost:     get("DB_HOST", "localhost"),
		DBPort:     get("DB_PORT", "5432"),
		DBUser:     get("DB_USER", "postgres"),
		DBPassword: get("DB_PASSWORD", "postgres"),
		DBName:     get("DB_NAME", "rgmanager"),
		DBSSLMode:  get("DB_SSLMODE", "disable"),

		KakaoAPIBase:  get("KAKAO_API_BASE", "https://kapi.kakao.com"),
		KakaoAdminKey: os.Getenv("KAKAO_ADMIN_KEY"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: get("SMTP_PORT", "587"),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		MailFrom: os.Getenv("MAIL_FROM"),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}
