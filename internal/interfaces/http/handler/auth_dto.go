package handler

import (
	"time"

	"github.com/google/uuid"
)

// =====================
// Auth Request DTOs
// =====================

// SignupRequest represents the request body for account registration
type SignupRequest struct {
	Email          string `json:"email" binding:"required,email,max=200"`
	Password       string `json:"password" binding:"required,min=8,max=128"`
	Name           string `json:"name" binding:"omitempty,max=100"`
	State          string `json:"state" binding:"required,len=2"`
	EducationLevel string `json:"educationLevel" binding:"required"`
}

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents the request body for profile updates
type UpdateProfileRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=100"`
	State *string `json:"state" binding:"omitempty,len=2"`
}

// =====================
// Auth Response DTOs
// =====================

// AuthUserResponse represents user data in auth responses
type AuthUserResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name,omitempty"`
	State          string    `json:"state"`
	EducationLevel string    `json:"educationLevel"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AuthResponse represents the response body for successful signup or login
type AuthResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	User      AuthUserResponse `json:"user"`
}

// LogoutResponse represents the response body for logout
type LogoutResponse struct {
	Message string `json:"message"`
}
