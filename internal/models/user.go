package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// AuthUser mirrors the hosted auth service's notion of an account. The rest
// of the app only ever sees the (ID, Email) pair.
type AuthUser struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	Email             string    `json:"email" gorm:"uniqueIndex"`
	Password          string    `json:"-"` // bcrypt hash, never serialized
	FirebaseUID       string    `json:"-" gorm:"index"`
	EmailConfirmed    bool      `json:"email_confirmed"`
	ConfirmationToken string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
}

func (AuthUser) TableName() string { return "auth_users" }

// SignupRequest defines the request body for registering a new account
type SignupRequest struct {
	Nombre   string `json:"nombre" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SigninRequest defines the request body for email/password sign-in
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
