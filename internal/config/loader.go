package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envBindings maps config keys to the short environment variable names
// that deployments conventionally export (PORT, JWT_SECRET, MONGO_URI).
var envBindings = map[string][]string{
	"environment":          {"APP_ENV"},
	"server.port":          {"PORT"},
	"auth.jwt_secret":      {"JWT_SECRET"},
	"auth.token_ttl_hours": {"TOKEN_TTL_HOURS"},
	"mongo.uri":            {"MONGO_URI"},
	"mongo.database":       {"MONGO_DATABASE"},
	"logging.level":        {"LOG_LEVEL"},
	"logging.format":       {"LOG_FORMAT"},
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*loaderConfig)

type loaderConfig struct {
	configFile string
	envFile    string
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *loaderConfig) { lc.configFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *loaderConfig) { lc.envFile = path }
}

// Load reads configuration into cfg. It loads an optional config.yml, an
// optional .env file, and environment variables, then applies defaults and
// validates. The returned config is ready to use.
func Load(opts ...LoaderOption) (*Config, error) {
	var lc loaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.configFile == "" {
		lc.configFile = findFirst("./config.yml", "./cmd/server/config.yml", "../config.yml")
	}
	if lc.envFile == "" {
		lc.envFile = findFirst("./.env", "../.env")
	}

	// .env values become process env vars before viper binds them.
	if lc.envFile != "" {
		if err := godotenv.Load(lc.envFile); err != nil {
			fmt.Printf("[config] warning: failed to load .env file %s: %v\n", lc.envFile, err)
		}
	}

	v := viper.New()
	if lc.configFile != "" {
		v.SetConfigFile(lc.configFile)
		if err := v.ReadInConfig(); err != nil {
			fmt.Printf("[config] warning: failed to load config file %s: %v\n", lc.configFile, err)
		}
	}

	v.SetEnvPrefix("AUTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envBindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("config: bind env for %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findFirst(paths ...string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
