package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "MATCHER"

// Runtime settings shared by the server, the CLI and dbtool. Every key is read
// from MATCHER_<KEY> first and then from the bare <KEY>.
type Config struct {
	Port                string        `mapstructure:"PORT"`
	ModelPath           string        `mapstructure:"MODEL_PATH"`
	DBPath              string        `mapstructure:"DB_PATH"`
	DatabaseURL         string        `mapstructure:"DATABASE_URL"`
	RedisAddr           string        `mapstructure:"REDIS_ADDR"`
	CacheTTL            time.Duration `mapstructure:"CACHE_TTL"`
	SeedPath            string        `mapstructure:"SEED_PATH"`
	RemoteClassifierURL string        `mapstructure:"REMOTE_CLASSIFIER_URL"`
}

var defaults = map[string]any{
	"PORT":                  "8080",
	"MODEL_PATH":            "data/models/match_model.json",
	"DB_PATH":               "data/app.db",
	"DATABASE_URL":          "",
	"REDIS_ADDR":            "",
	"CACHE_TTL":             "15m",
	"SEED_PATH":             "data/seeds/training_examples.json",
	"REMOTE_CLASSIFIER_URL": "",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
		_ = v.BindEnv(key, envPrefix+"_"+key, key)
	}
	return v
}

// LoadDotenv reads .env into the process environment when present.
// It reports whether a file was loaded.
func LoadDotenv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// Load resolves the configuration from the environment and defaults.
func Load() (*Config, error) {
	v := newViper()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("load config: CACHE_TTL must not be negative, got %s", cfg.CacheTTL)
	}

	return &cfg, nil
}

// Get returns a single setting, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	v := viper.New()
	_ = v.BindEnv(key, envPrefix+"_"+key, key)
	if s := strings.TrimSpace(v.GetString(key)); s != "" {
		return s
	}
	return fallback
}

// ModelRef is the classifier reference the server scores with: the remote
// endpoint when configured, otherwise the model file.
func (c *Config) ModelRef() string {
	if strings.TrimSpace(c.RemoteClassifierURL) != "" {
		return c.RemoteClassifierURL
	}
	return c.ModelPath
}
