package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillsenselab/userauth/internal/logger"
)

// HeaderRequestID is the request/response header carrying the request id.
const HeaderRequestID = "X-Request-Id"

// RequestID tags every request with an id, honoring one supplied by the
// client. The request logger picks the id up from the gin context so auth
// failures can be correlated across log lines.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(logger.FieldRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
