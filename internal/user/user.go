package user

import "time"

// User is the persistent identity record. The password hash is stored under
// the document's "password" field but is never serialized to JSON.
type User struct {
	ID           string     `bson:"_id,omitempty" json:"id"`
	FullName     string     `bson:"fullName" json:"fullName"`
	Email        string     `bson:"email" json:"email"`
	PasswordHash string     `bson:"password,omitempty" json:"-"`
	LastLogin    *time.Time `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the outcome of a successful login.
type LoginResult struct {
	// Token is the signed session token.
	Token string
	// Greeting is the welcome message, built from the user's stored name.
	Greeting string
	// UserID is the authenticated user's id.
	UserID string
}
