package identity

import (
	"time"

	"github.com/esquire/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// SignupInput contains the input for account registration
type SignupInput struct {
	Email          string
	Password       string
	Name           string
	State          string
	EducationLevel identity.EducationLevel
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult contains the result of a successful signup or login
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      UserInfo
}

// UserInfo contains basic user information returned to callers
type UserInfo struct {
	ID             uuid.UUID
	Email          string
	Name           string
	State          string
	EducationLevel identity.EducationLevel
	CreatedAt      time.Time
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	TokenJTI string
	TokenTTL time.Duration
}

// UpdateProfileInput contains the mutable profile fields
type UpdateProfileInput struct {
	UserID uuid.UUID
	Name   *string
	State  *string
}

// NewUserInfo maps a domain user to the transport representation
func NewUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		State:          u.State,
		EducationLevel: u.EducationLevel,
		CreatedAt:      u.CreatedAt,
	}
}
