package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/skillsenselab/userauth/internal/apperrors"
	"github.com/skillsenselab/userauth/internal/auth/password"
	"github.com/skillsenselab/userauth/internal/auth/token"
	"github.com/skillsenselab/userauth/internal/logger"
	"github.com/skillsenselab/userauth/internal/validation"
)

// Service orchestrates registration, login, and profile retrieval over the
// user store, the password hasher, and the token codec.
//
// Every operation classifies its foreseeable failures as AppErrors; any
// unexpected fault is logged with full detail and surfaced as a generic
// internal error with an operation-specific safe message.
type Service struct {
	store  Store
	hasher password.Hasher
	codec  *token.Codec
	log    *logger.Logger
}

// NewService creates the auth service.
func NewService(store Store, hasher password.Hasher, codec *token.Codec, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		codec:  codec,
		log:    log.WithComponent("user-service"),
	}
}

// Register creates a new account. No token is issued; the user logs in
// separately. A duplicate email fails without touching the existing record.
func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	if err := validation.Validate(req); err != nil {
		return err
	}

	email := normalizeEmail(req.Email)

	_, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		return apperrors.DuplicateUser()
	}
	if !errors.Is(err, ErrNoUser) {
		return s.internal("register", "Failed to register.", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return s.internal("register", "Failed to register.", err)
	}

	u := &User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return apperrors.DuplicateUser()
		}
		return s.internal("register", "Failed to register.", err)
	}

	s.log.Info("user registered", logger.Fields(logger.FieldEmail, email, logger.FieldUserID, u.ID))
	return nil
}

// Login verifies credentials and issues a session token. An unknown email
// and a wrong password produce the identical error so callers cannot tell
// which was wrong.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	u, err := s.store.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, ErrNoUser) {
			return nil, apperrors.InvalidCredentials()
		}
		return nil, s.internal("login", "Failed to login.", err)
	}

	if err := s.hasher.Verify(req.Password, u.PasswordHash); err != nil {
		return nil, apperrors.InvalidCredentials()
	}

	now := time.Now()
	if err := s.store.UpdateLastLogin(ctx, u.ID, now); err != nil {
		return nil, s.internal("login", "Failed to login.", err)
	}

	tok, err := s.codec.Issue(u.ID)
	if err != nil {
		return nil, s.internal("login", "Failed to login.", err)
	}

	name := u.FullName
	if name == "" {
		name = "User"
	}

	s.log.Info("user logged in", logger.Fields(logger.FieldUserID, u.ID))
	return &LoginResult{
		Token:    tok,
		Greeting: "Welcome back " + name,
		UserID:   u.ID,
	}, nil
}

// Profile returns the user record for an authenticated identity, without
// the password hash.
func (s *Service) Profile(ctx context.Context, userID string) (*User, error) {
	u, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoUser) {
			return nil, apperrors.NotFound()
		}
		return nil, s.internal("profile", "Failed to load user profile.", err)
	}
	u.PasswordHash = ""
	return u, nil
}

// internal logs an unexpected fault with full detail and returns the
// client-safe wrapper.
func (s *Service) internal(op, safeMessage string, err error) *apperrors.AppError {
	s.log.Error("operation failed", logger.ErrorFields(op, err))
	return apperrors.Internal(safeMessage, err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
