package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	defaultDBPassword = "password"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

type Config struct {
	Env      string
	Port     string
	LogLevel string

	DatabaseURL       string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBConnectAttempts int
	DBConnectDelay    time.Duration

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	CORSAllowOrigins string

	LoginRateLimit  int
	LoginRateWindow time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads environment variables, optionally from a .env file if present,
// and validates the result.
func Load() (Config, error) {
	cfg := read()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadStore is Load for tools that only talk to the database; it skips token settings.
func LoadStore() (Config, error) {
	cfg := read()
	if err := cfg.validateStore(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func read() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	return Config{
		Env:      strings.ToLower(getEnv("APP_ENV", EnvDevelopment)),
		Port:     getEnv("PORT", "8000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "admin"),
		DBPassword:        getEnv("DB_PASSWORD", defaultDBPassword),
		DBName:            getEnv("DB_NAME", "users_db"),
		DBConnectAttempts: getEnvInt("DB_CONNECT_ATTEMPTS", 30),
		DBConnectDelay:    time.Duration(getEnvInt("DB_CONNECT_DELAY_SECONDS", 2)) * time.Second,

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTIssuer: getEnv("JWT_ISSUER", "users-api"),
		JWTTTL:    time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,

		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),

		LoginRateLimit:  getEnvInt("LOGIN_RATE_LIMIT", 20),
		LoginRateWindow: time.Duration(getEnvInt("LOGIN_RATE_WINDOW_SECONDS", 60)) * time.Second,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
	}
}

// Validate rejects configurations that must never reach a running server.
func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return ErrMissingJWTSecret
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL_HOURS must be positive")
	}
	return c.validateStore()
}

func (c Config) validateStore() error {
	if c.DBConnectAttempts <= 0 {
		return errors.New("DB_CONNECT_ATTEMPTS must be positive")
	}
	if c.IsProduction() && c.DatabaseURL == "" {
		if c.DBPassword == "" || c.DBPassword == defaultDBPassword {
			return fmt.Errorf("DB_PASSWORD must be set explicitly in %s", EnvProduction)
		}
	}
	return nil
}

func (c Config) IsProduction() bool { return c.Env == EnvProduction }

// DSN returns DATABASE_URL when present, otherwise a postgres URL built from the DB_* parts.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   net.JoinHostPort(c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", "disable")
	u.RawQuery = q.Encode()
	return u.String()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
