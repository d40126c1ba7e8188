package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/userauth/internal/apperrors"
	"github.com/skillsenselab/userauth/internal/auth/authctx"
	"github.com/skillsenselab/userauth/internal/auth/token"
	"github.com/skillsenselab/userauth/internal/server/middleware"
	"github.com/skillsenselab/userauth/internal/user"
)

// Handler exposes the user API routes.
type Handler struct {
	svc        *user.Service
	codec      *token.Codec
	tokenTTL   time.Duration
	production bool
}

// NewHandler creates the user API handler. The production flag controls the
// Secure attribute on session cookies.
func NewHandler(svc *user.Service, codec *token.Codec, tokenTTL time.Duration, production bool) *Handler {
	if tokenTTL <= 0 {
		tokenTTL = token.DefaultTTL
	}
	return &Handler{
		svc:        svc,
		codec:      codec,
		tokenTTL:   tokenTTL,
		production: production,
	}
}

// RegisterRoutes mounts the user API under /api/v1/user. The profile route
// sits behind session authentication; the rest are public.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1/user")
	api.POST("/register", h.register)
	api.POST("/login", h.login)
	api.POST("/logout", h.logout)
	api.GET("/profile", middleware.SessionAuth(h.codec), h.profile)
}

func (h *Handler) register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, apperrors.Validation("request body must be valid JSON"))
		return
	}

	if err := h.svc.Register(c.Request.Context(), req); err != nil {
		RespondWithError(c, err)
		return
	}

	RespondCreated(c, "Account created successfully.")
}

func (h *Handler) login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, apperrors.Validation("request body must be valid JSON"))
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	h.setSessionCookie(c, res.Token)
	RespondToken(c, res.Greeting, res.Token)
}

func (h *Handler) logout(c *gin.Context) {
	h.clearSessionCookie(c)
	RespondOK(c, "Logged out successfully.", nil)
}

func (h *Handler) profile(c *gin.Context) {
	claims, err := authctx.GetOrError[*token.Claims](c.Request.Context())
	if err != nil {
		RespondWithError(c, apperrors.AuthenticationFailed())
		return
	}

	u, err := h.svc.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	RespondOK(c, "Profile fetched successfully.", u)
}

// setSessionCookie mirrors the token into an HttpOnly cookie so browser
// clients keep their session without handling the bearer token themselves.
func (h *Handler) setSessionCookie(c *gin.Context, tok string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.CookieName, tok, int(h.tokenTTL.Seconds()), "/", "", h.production, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.CookieName, "", -1, "/", "", h.production, true)
}
