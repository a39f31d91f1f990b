// Package config loads runtime configuration for the Khula CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed KHULA_, optionally read from a dotenv
//     file (./.env, or the path given with -env).
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string           data directory
//	-dsn string         SQLite database path (default <data dir>/khula.db)
//	-storage string     key/value backend: sqlite, redis or memory
//	-redis string       Redis address (host:port or redis:// URL)
//	-s string           token signing secret (generated and stored when empty)
//	-ttl duration       session token lifetime, 0 for no expiry
//	-login-delay, -register-delay, -profile-delay duration
//	-seed               load the demo accounts when nothing was restored
//	-hash               store passwords as bcrypt hashes
//	-snapshot           save and restore the whole app state
//	-log-backend string zap or slog
//	-log-level string   debug, info, warn or error
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "800ms" or
// integer nanoseconds. Omitted keys keep their earlier value:
//
//	{
//	  "data_dir": ".khula",
//	  "storage": "redis",
//	  "redis_addr": "127.0.0.1:6379",
//	  "token_ttl": "24h",
//	  "login_delay": "1s",
//	  "seed": true,
//	  "log_level": "debug"
//	}
//
// Malformed input in any source panics, as the CLI cannot start without a
// usable configuration.
package config
