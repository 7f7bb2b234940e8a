package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "PORT", "DATABASE_DRIVER", "JWT_SECRET", "ACCESS_TOKEN_EXPIRE_MINUTES", "REDIS_ADDR", "BOT_TOKEN_STORE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "local", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 60*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, 30*time.Second, cfg.ListingsCacheTTL)
	assert.Equal(t, "memory", cfg.Bot.TokenStore)
	assert.Equal(t, 10000, cfg.Bot.TokenStoreLimit)
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := Load()
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 5*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestValidateServer(t *testing.T) {
	cfg := &Config{Environment: "local"}
	cfg.Database.Driver = "sqlite"
	require.NoError(t, cfg.ValidateServer())
	assert.NotEmpty(t, cfg.JWT.Secret)

	prod := &Config{Environment: EnvProduction}
	prod.Database.Driver = "postgres"
	assert.Error(t, prod.ValidateServer())

	prod.JWT.Secret = "s3cret"
	require.NoError(t, prod.ValidateServer())
	assert.Equal(t, "s3cret", prod.JWT.Secret)

	bad := &Config{JWT: cfg.JWT}
	bad.Database.Driver = "mysql"
	assert.Error(t, bad.ValidateServer())
}

func TestValidateBot(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.ValidateBot())

	cfg.Bot.TelegramToken = "123:abc"
	cfg.Bot.TokenStore = "redis"
	assert.Error(t, cfg.ValidateBot())

	cfg.Redis.Addr = "localhost:6379"
	assert.NoError(t, cfg.ValidateBot())
}

func TestConnectDB_RejectsUnknownDriver(t *testing.T) {
	_, err := ConnectDB("oracle", "")
	assert.Error(t, err)
}
