package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/khula/internal/flagx"
)

var (
	knownFlags = []string{
		"-d", "-dsn", "-storage", "-redis", "-s", "-ttl",
		"-login-delay", "-register-delay", "-profile-delay",
		"-seed", "-hash", "-snapshot", "-log-backend", "-log-level",
	}
	boolFlags = []string{"-seed", "-hash", "-snapshot"}
)

// parseFlags populates Config fields from command-line flags; see the
// package doc for the list.
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgsWithBools, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgsWithBools(os.Args[1:], knownFlags, boolFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "SQLite database path")
	fs.StringVar(&cfg.StorageBackend, "storage", cfg.StorageBackend, "storage backend: sqlite, redis or memory")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "token signing secret")
	fs.DurationVar(&cfg.TokenTTL, "ttl", cfg.TokenTTL, "session token lifetime")
	fs.DurationVar(&cfg.LoginDelay, "login-delay", cfg.LoginDelay, "simulated login latency")
	fs.DurationVar(&cfg.RegisterDelay, "register-delay", cfg.RegisterDelay, "simulated registration latency")
	fs.DurationVar(&cfg.ProfileDelay, "profile-delay", cfg.ProfileDelay, "simulated profile update latency")
	fs.BoolVar(&cfg.Seed, "seed", cfg.Seed, "load demo accounts")
	fs.BoolVar(&cfg.HashPasswords, "hash", cfg.HashPasswords, "store bcrypt password hashes")
	fs.BoolVar(&cfg.SnapshotEnabled, "snapshot", cfg.SnapshotEnabled, "save and restore app state")
	fs.StringVar(&cfg.LogBackend, "log-backend", cfg.LogBackend, "logging backend: zap or slog")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
