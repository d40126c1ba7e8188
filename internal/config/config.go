package config

import (
	"fmt"
	"time"

	"github.com/skillsenselab/userauth/internal/logger"
	"github.com/skillsenselab/userauth/internal/server"
)

// Config is the full service configuration. Values come from config.yml,
// a .env file, and environment variables, in increasing precedence.
type Config struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
	Server      server.Config `yaml:"server" mapstructure:"server"`
	Mongo       MongoConfig   `yaml:"mongo" mapstructure:"mongo"`
	Auth        AuthConfig    `yaml:"auth" mapstructure:"auth"`
}

// MongoConfig holds the document store connection settings.
type MongoConfig struct {
	// URI is the MongoDB connection string.
	URI string `yaml:"uri" mapstructure:"uri"`
	// Database is the database holding the users collection.
	Database string `yaml:"database" mapstructure:"database"`
	// ConnectTimeout bounds the initial connection and ping (seconds).
	ConnectTimeout int `yaml:"connect_timeout" mapstructure:"connect_timeout"`
}

// AuthConfig holds token issuance and password hashing settings.
type AuthConfig struct {
	// JWTSecret signs session tokens. Required; startup fails without it.
	JWTSecret string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	// TokenTTLHours is the session token lifetime (default: 24).
	TokenTTLHours int `yaml:"token_ttl_hours" mapstructure:"token_ttl_hours"`
	// BcryptCost is the password hashing work factor (default: 10).
	BcryptCost int `yaml:"bcrypt_cost" mapstructure:"bcrypt_cost"`
}

// TokenTTL returns the session token lifetime as a duration.
func (c *AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// ApplyDefaults applies default values to unset fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "userauth"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
	c.Server.ApplyDefaults()
	if c.Server.Port == 0 {
		c.Server.Port = 4000
	}
	if c.Mongo.URI == "" {
		c.Mongo.URI = "mongodb://localhost:27017"
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "userauth"
	}
	if c.Mongo.ConnectTimeout == 0 {
		c.Mongo.ConnectTimeout = 10
	}
	if c.Auth.TokenTTLHours == 0 {
		c.Auth.TokenTTLHours = 24
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = 10
	}
}

// Validate checks the configuration. A missing JWT secret is a startup
// error, never a silently unsigned token.
func (c *Config) Validate() error {
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config.auth.jwt_secret is required (set JWT_SECRET)")
	}
	if c.Auth.TokenTTLHours < 0 {
		return fmt.Errorf("config.auth.token_ttl_hours must be non-negative (got: %d)", c.Auth.TokenTTLHours)
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("config.mongo.uri is required (set MONGO_URI)")
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
// It controls the Secure attribute on the session cookie.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
