package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvProduction = "production"

	// devJWTSecret is only accepted outside production.
	devJWTSecret = "swipe-estate-dev-secret"
)

type Config struct {
	Environment string
	Port        string

	Database struct {
		Driver string
		URL    string
	}

	JWT struct {
		Secret string
		TTL    time.Duration
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	ListingsCacheTTL time.Duration

	Log struct {
		Level  string
		Format string
	}

	Bot struct {
		TelegramToken   string
		BackendBaseURL  string
		TokenStore      string
		TokenStoreLimit int
	}
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{}
	cfg.Environment = getEnv("ENVIRONMENT", "local")
	cfg.Port = getEnv("PORT", "8080")

	cfg.Database.Driver = getEnv("DATABASE_DRIVER", "postgres")
	cfg.Database.URL = getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=swipe_estate port=5432 sslmode=disable")

	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = time.Duration(parseInt(getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "60"), 60)) * time.Minute

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)
	cfg.ListingsCacheTTL = time.Duration(parseInt(getEnv("LISTINGS_CACHE_TTL_SECONDS", "30"), 30)) * time.Second

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Bot.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.Bot.BackendBaseURL = getEnv("BACKEND_BASE_URL", "http://localhost:8080")
	cfg.Bot.TokenStore = getEnv("BOT_TOKEN_STORE", "memory")
	cfg.Bot.TokenStoreLimit = parseInt(getEnv("BOT_TOKEN_STORE_MAX_ENTRIES", "10000"), 10000)

	return cfg
}

// ValidateServer checks the settings the API server cannot run without and
// fills the development JWT secret outside production.
func (c *Config) ValidateServer() error {
	if c.JWT.Secret == "" {
		if c.Environment == EnvProduction {
			return errors.New("JWT_SECRET must be set in production")
		}
		c.JWT.Secret = devJWTSecret
	}
	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return errors.New("DATABASE_DRIVER must be postgres or sqlite")
	}
	return nil
}

func (c *Config) ValidateBot() error {
	if c.Bot.TelegramToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN is not set")
	}
	if c.Bot.TokenStore == "redis" && c.Redis.Addr == "" {
		return errors.New("BOT_TOKEN_STORE=redis requires REDIS_ADDR")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
