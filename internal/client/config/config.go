package config

import (
	"time"

	"github.com/dmitrijs2005/khula/internal/client/client"
	"github.com/dmitrijs2005/khula/internal/filex"
	"github.com/dmitrijs2005/khula/internal/logging"
)

// Config holds runtime settings for the Khula CLI.
//
// Fields:
//   - DataDir: directory for the SQLite database.
//   - DatabaseDSN: SQLite path; empty means <DataDir>/khula.db.
//   - StorageBackend / RedisAddr: where session data and snapshots live.
//   - SecretKey / TokenTTL: signing key and lifetime of session tokens.
//   - LoginDelay, RegisterDelay, ProfileDelay: simulated backend latency.
//   - Seed: load demo accounts when no snapshot was restored.
//   - HashPasswords: keep bcrypt hashes instead of plaintext passwords.
//   - SnapshotEnabled: mirror the whole store to storage after each change.
type Config struct {
	DataDir        string
	DatabaseDSN    string
	StorageBackend string
	RedisAddr      string

	SecretKey string
	TokenTTL  time.Duration

	LoginDelay    time.Duration
	RegisterDelay time.Duration
	ProfileDelay  time.Duration

	Seed            bool
	HashPasswords   bool
	SnapshotEnabled bool

	LogBackend string
	LogLevel   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = ".khula"
	c.DatabaseDSN = ""
	c.StorageBackend = client.BackendSQLite
	c.RedisAddr = "127.0.0.1:6379"
	c.SecretKey = ""
	c.TokenTTL = 24 * time.Hour
	c.LoginDelay = time.Second
	c.RegisterDelay = 1500 * time.Millisecond
	c.ProfileDelay = 800 * time.Millisecond
	c.Seed = true
	c.HashPasswords = false
	c.SnapshotEnabled = true
	c.LogBackend = logging.BackendZap
	c.LogLevel = "warn"
}

// DSN returns the SQLite path. Without an explicit DatabaseDSN the data
// directory is created and the database file is placed in it.
func (c *Config) DSN() (string, error) {
	if c.DatabaseDSN != "" {
		return c.DatabaseDSN, nil
	}
	return filex.PathIn(c.DataDir, "khula.db")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
