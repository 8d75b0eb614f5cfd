package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr    string
	TLSCert string
	TLSKey  string

	DatabaseURL string
	PricesFile  string

	TokenKey          string
	AdminLogin        string
	AdminPasswordHash string
	SessionTTL        time.Duration

	CacheSize int
	RateLimit float64
	RateBurst int

	ShutdownTimeout time.Duration
}

// Load reads .env when present, then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("config: .env not loaded: %v", err)
	}
	return FromEnv()
}

func FromEnv() *Config {
	return &Config{
		Addr:              getEnv("ADDR", ":8080"),
		TLSCert:           os.Getenv("TLS_CERT"),
		TLSKey:            os.Getenv("TLS_KEY"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		PricesFile:        os.Getenv("PRICES_FILE"),
		TokenKey:          os.Getenv("TOKEN_KEY"),
		AdminLogin:        getEnv("ADMIN_LOGIN", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		SessionTTL:        getEnvAsDuration("SESSION_TTL", 12*time.Hour),
		CacheSize:         getEnvAsInt("CACHE_SIZE", 256),
		RateLimit:         getEnvAsFloat("RATE_LIMIT", 5),
		RateBurst:         getEnvAsInt("RATE_BURST", 10),
		ShutdownTimeout:   getEnvAsDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
	}
}

// TLS reports whether both certificate and key are configured.
func (c *Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

// AdminEnabled reports whether the price administration endpoints can log anyone in.
func (c *Config) AdminEnabled() bool {
	return c.TokenKey != "" && c.AdminPasswordHash != ""
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("config: %s=%q is not an integer, using %d", key, value, defaultVal)
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("config: %s=%q is not a number, using %v", key, value, defaultVal)
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("config: %s=%q is not a duration, using %v", key, value, defaultVal)
	}
	return defaultVal
}
