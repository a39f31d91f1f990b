package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/khula/internal/flagx"
	"github.com/dmitrijs2005/khula/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Pointer fields tell an omitted key from a zero value, so a partial file
// only overrides what it names.
type JsonConfig struct {
	DataDir        *string `json:"data_dir"`
	DatabaseDSN    *string `json:"database_dsn"`
	StorageBackend *string `json:"storage"`
	RedisAddr      *string `json:"redis_addr"`
	SecretKey      *string `json:"secret_key"`

	TokenTTL      *timex.Duration `json:"token_ttl"`
	LoginDelay    *timex.Duration `json:"login_delay"`
	RegisterDelay *timex.Duration `json:"register_delay"`
	ProfileDelay  *timex.Duration `json:"profile_delay"`

	Seed            *bool `json:"seed"`
	HashPasswords   *bool `json:"hash_passwords"`
	SnapshotEnabled *bool `json:"snapshot"`

	LogBackend *string `json:"log_backend"`
	LogLevel   *string `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from -c or -config (flagx.JsonConfigFlags). Without
// one, nothing is loaded. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.StorageBackend, jc.StorageBackend)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.SecretKey, jc.SecretKey)
	setString(&cfg.LogBackend, jc.LogBackend)
	setString(&cfg.LogLevel, jc.LogLevel)

	for _, d := range []struct {
		dst *time.Duration
		src *timex.Duration
	}{
		{&cfg.TokenTTL, jc.TokenTTL},
		{&cfg.LoginDelay, jc.LoginDelay},
		{&cfg.RegisterDelay, jc.RegisterDelay},
		{&cfg.ProfileDelay, jc.ProfileDelay},
	} {
		if d.src != nil {
			*d.dst = d.src.Duration
		}
	}

	setBool(&cfg.Seed, jc.Seed)
	setBool(&cfg.HashPasswords, jc.HashPasswords)
	setBool(&cfg.SnapshotEnabled, jc.SnapshotEnabled)
}

func setString(dst, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst, src *bool) {
	if src != nil {
		*dst = *src
	}
}
