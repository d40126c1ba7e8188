// Package middleware provides the Gin middleware stack: panic recovery,
// request IDs, CORS, request logging, and session authentication.
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/userauth/internal/apperrors"
)

// reject aborts the request with the error's status and an envelope body.
// Middleware writes the envelope directly instead of importing the server
// package, which would be an import cycle.
func reject(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, gin.H{
		"success": false,
		"message": appErr.Message,
	})
}
