package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	JWTSecret     []byte
	JWTExpiration time.Duration
	CookieSecure  bool

	UploadDir       string
	UploadURLPrefix string
}

// Load reads the configuration from the environment. Call it after godotenv.Load
// so values from .env are visible.
func Load() *Config {
	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		secret = "your-secret-key-change-this-in-production"
	}

	expiration, err := time.ParseDuration(getEnv("JWT_EXPIRATION", "24h"))
	if err != nil {
		expiration = 24 * time.Hour
	}

	cookieSecure, _ := strconv.ParseBool(getEnv("COOKIE_SECURE", "false"))

	return &Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "qna_board"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "qna-board.db"),

		JWTSecret:     []byte(secret),
		JWTExpiration: expiration,
		CookieSecure:  cookieSecure,

		UploadDir:       getEnv("UPLOAD_DIR", "public/images/uploads"),
		UploadURLPrefix: getEnv("UPLOAD_URL_PREFIX", "/images/uploads"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
