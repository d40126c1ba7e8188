// Package token issues and verifies the signed session tokens that carry a
// user's identity between requests.
//
// Tokens are compact JWTs signed with HMAC-SHA256. Validity is determined
// solely by the signature and the expiration claim; there is no server-side
// revocation, so an issued token stays valid until it expires.
package token

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/skillsenselab/userauth/internal/apperrors"
)

// Claims is the session token payload. The user id is carried both as the
// registered subject and as an explicit "id" claim for compatibility with
// existing clients.
type Claims struct {
	gojwt.RegisteredClaims
	UserID string `json:"id"`
}

// Codec issues and verifies session tokens.
type Codec struct {
	cfg Config
}

// NewCodec creates a token codec. It fails if no signing secret is
// configured so a misconfigured deployment surfaces at startup rather than
// producing unverifiable tokens.
func NewCodec(cfg Config) (*Codec, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Codec{cfg: cfg}, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.cfg.TTL
}

// Issue creates a signed token for the given user id, expiring TTL from now.
func (c *Codec) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    c.cfg.Issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(c.cfg.TTL)),
		},
		UserID: userID,
	}
	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(c.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify decodes and checks a token's signature and expiration. Failures
// are classified: expired tokens, tampered or malformed tokens, and any
// other decode fault each map to their own AppError.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := gojwt.ParseWithClaims(tokenString, claims, c.keyFunc,
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, classify(err)
	}
	if !parsed.Valid {
		return nil, apperrors.InvalidToken()
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	return claims, nil
}

// keyFunc is the gojwt.Keyfunc used during token parsing.
func (c *Codec) keyFunc(t *gojwt.Token) (interface{}, error) {
	if t.Method.Alg() != gojwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("token: unexpected signing method: %s", t.Method.Alg())
	}
	return []byte(c.cfg.Secret), nil
}

// classify maps golang-jwt parse failures onto the service error taxonomy.
func classify(err error) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenExpired):
		return apperrors.TokenExpired().WithCause(err)
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid),
		errors.Is(err, gojwt.ErrTokenMalformed):
		return apperrors.InvalidToken().WithCause(err)
	default:
		return apperrors.AuthenticationFailed().WithCause(err)
	}
}
