package token

import (
	"errors"
	"time"
)

// DefaultTTL is the session token lifetime.
const DefaultTTL = 24 * time.Hour

// Config configures the token codec. The signing secret is always passed
// in explicitly; the codec never reads ambient environment state.
type Config struct {
	// Secret is the HMAC signing key. Required.
	Secret string

	// TTL is the token lifetime (default: 24h).
	TTL time.Duration

	// Issuer is the "iss" claim (optional).
	Issuer string
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.TTL == 0 {
		c.TTL = DefaultTTL
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("token: signing secret is required")
	}
	return nil
}
