// Package config loads storefront settings from flags, environment
// variables (STOREFRONT_ prefix), and an optional config file.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "STOREFRONT"

type Config struct {
	Addr  string `mapstructure:"addr"`
	Debug bool   `mapstructure:"debug"`

	// DatabaseURL switches the catalog to Postgres; empty keeps the
	// in-memory demo catalog.
	DatabaseURL string `mapstructure:"database_url"`

	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
	MetricsToken   string `mapstructure:"metrics_token"`

	SessionSecret string        `mapstructure:"session_secret"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`

	ListDelay time.Duration `mapstructure:"list_delay"`
	ItemDelay time.Duration `mapstructure:"item_delay"`

	RateLimit      int `mapstructure:"rate_limit"`
	RateWindowSecs int `mapstructure:"rate_window_secs"`
}

func Load() (Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (Config, error) {
	fs := pflag.NewFlagSet("storefront", pflag.ContinueOnError)

	fs.String("addr", ":8080", "listen address")
	fs.Bool("debug", false, "debug logging")
	fs.String("database-url", "", "postgres catalog DSN (empty = in-memory catalog)")
	fs.Bool("metrics-enabled", false, "expose /metrics")
	fs.String("metrics-token", "", "bearer token guarding /metrics")
	fs.String("session-secret", "dev-secret-change-me", "cart session token secret")
	fs.Duration("session-ttl", 30*time.Minute, "idle cart session lifetime")
	fs.Duration("list-delay", 800*time.Millisecond, "artificial delay on product listing")
	fs.Duration("item-delay", 500*time.Millisecond, "artificial delay on single product")
	fs.Int("rate-limit", 0, "requests per window per IP (0 = off)")
	fs.Int("rate-window-secs", 60, "rate limit window seconds")
	fs.String("config", "", "config file path")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	// Flag names use dashes, config keys use underscores.
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return Config{}, bindErr
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
