package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/khula/internal/flagx"
	"github.com/joho/godotenv"
)

// loadDotenv is a test seam for godotenv.Load.
var loadDotenv = godotenv.Load

// Environment variables read by parseEnv.
const (
	EnvDataDir       = "KHULA_DATA_DIR"
	EnvDatabaseDSN   = "KHULA_DATABASE_DSN"
	EnvStorage       = "KHULA_STORAGE"
	EnvRedisAddr     = "KHULA_REDIS_ADDR"
	EnvSecretKey     = "KHULA_SECRET_KEY"
	EnvTokenTTL      = "KHULA_TOKEN_TTL"
	EnvLoginDelay    = "KHULA_LOGIN_DELAY"
	EnvRegisterDelay = "KHULA_REGISTER_DELAY"
	EnvProfileDelay  = "KHULA_PROFILE_DELAY"
	EnvSeed          = "KHULA_SEED"
	EnvHashPasswords = "KHULA_HASH_PASSWORDS"
	EnvSnapshot      = "KHULA_SNAPSHOT"
	EnvLogBackend    = "KHULA_LOG_BACKEND"
	EnvLogLevel      = "KHULA_LOG_LEVEL"
)

// parseEnv overlays Config with KHULA_* environment variables.
//
// A dotenv file is loaded first: the path from -env, else ./.env when it
// exists. godotenv never overrides variables already set in the process.
// Unset variables leave the field untouched; malformed values panic.
func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlag(); path != "" {
		if err := loadDotenv(path); err != nil {
			panic(err)
		}
	} else if err := loadDotenv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	envString(EnvDataDir, &cfg.DataDir)
	envString(EnvDatabaseDSN, &cfg.DatabaseDSN)
	envString(EnvStorage, &cfg.StorageBackend)
	envString(EnvRedisAddr, &cfg.RedisAddr)
	envString(EnvSecretKey, &cfg.SecretKey)
	envDuration(EnvTokenTTL, &cfg.TokenTTL)
	envDuration(EnvLoginDelay, &cfg.LoginDelay)
	envDuration(EnvRegisterDelay, &cfg.RegisterDelay)
	envDuration(EnvProfileDelay, &cfg.ProfileDelay)
	envBool(EnvSeed, &cfg.Seed)
	envBool(EnvHashPasswords, &cfg.HashPasswords)
	envBool(EnvSnapshot, &cfg.SnapshotEnabled)
	envString(EnvLogBackend, &cfg.LogBackend)
	envString(EnvLogLevel, &cfg.LogLevel)
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func envBool(key string, dst *bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", key, err))
	}
	*dst = b
}

func envDuration(key string, dst *time.Duration) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", key, err))
	}
	*dst = d
}
