package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/userauth/internal/apperrors"
	"github.com/skillsenselab/userauth/internal/auth/authctx"
	"github.com/skillsenselab/userauth/internal/auth/token"
)

// CookieName is the session cookie carrying the token.
const CookieName = "token"

const bearerPrefix = "Bearer "

// SessionAuth returns a Gin middleware that establishes the request
// identity. The token is read from the Authorization header first, falling
// back to the session cookie. Exactly one of {next handler, rejection}
// happens per request.
func SessionAuth(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := extractToken(c)
		if tok == "" {
			reject(c, apperrors.TokenMissing())
			return
		}

		claims, err := codec.Verify(tok)
		if err != nil {
			appErr, ok := apperrors.AsAppError(err)
			if !ok {
				appErr = apperrors.Internal("Internal Server Error.", err)
			}
			reject(c, appErr)
			return
		}

		c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), claims))
		c.Next()
	}
}

// extractToken pulls the bearer token from the Authorization header, or
// from the session cookie when the header carries no token.
func extractToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, bearerPrefix) {
		if tok := strings.TrimPrefix(h, bearerPrefix); tok != "" {
			return tok
		}
	}
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie
	}
	return ""
}
