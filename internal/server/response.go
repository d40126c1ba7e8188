package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/userauth/internal/apperrors"
)

// Response is the uniform API envelope.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Token   string `json:"token,omitempty"`
}

// RespondOK sends a 200 response with a message and optional data.
func RespondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// RespondCreated sends a 201 response with a message.
func RespondCreated(c *gin.Context, message string) {
	c.JSON(http.StatusCreated, Response{Success: true, Message: message})
}

// RespondToken sends a 200 response carrying the session token in the body.
func RespondToken(c *gin.Context, message, token string) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Token: token})
}

// RespondWithError inspects err: if it is an *apperrors.AppError the status
// and safe message are derived from it; otherwise a generic 500 is sent and
// nothing about the fault leaks to the client.
func RespondWithError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		c.JSON(appErr.HTTPStatus, Response{Success: false, Message: appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, Response{Success: false, Message: "Internal Server Error."})
}
