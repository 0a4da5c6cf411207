// Package config resolves stockdesk settings from flags, environment,
// an optional config file and a local .env file.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment key, e.g. STOCKDESK_STORE.
const EnvPrefix = "STOCKDESK"

// Config is the resolved application configuration.
type Config struct {
	Store     string // memory | file
	StoreFile string
	LogLevel  string
	LogFormat string // console | json
	Seed      bool   // load the sample catalog into an empty store
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("store", "memory")
	v.SetDefault("store-file", "data/products.json")
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "console")
	v.SetDefault("seed", true)
}

// Load reads .env (if present), the file named by the "config" key (if set)
// and the environment, then returns the typed configuration. Flags bound to
// v take precedence over all of these.
func Load(v *viper.Viper) (Config, error) {
	_ = godotenv.Load()

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg := Config{
		Store:     strings.ToLower(v.GetString("store")),
		StoreFile: v.GetString("store-file"),
		LogLevel:  v.GetString("log-level"),
		LogFormat: strings.ToLower(v.GetString("log-format")),
		Seed:      v.GetBool("seed"),
	}
	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("unknown log format: %s", cfg.LogFormat)
	}
	return cfg, nil
}
