package identity

import (
	"regexp"
	"strings"

	"github.com/esquire/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// EducationLevel represents the self-reported education bracket of a user
type EducationLevel string

const (
	EducationGrade4To6     EducationLevel = "GRADE_4_6"
	EducationGrade7To8     EducationLevel = "GRADE_7_8"
	EducationGrade9To10    EducationLevel = "GRADE_9_10"
	EducationGrade11To12   EducationLevel = "GRADE_11_12_GED"
	EducationCollegeOrMore EducationLevel = "COLLEGE_PLUS"
)

// Password cost for bcrypt
const bcryptCost = 12

var educationLevels = map[EducationLevel]struct{}{
	EducationGrade4To6:     {},
	EducationGrade7To8:     {},
	EducationGrade9To10:    {},
	EducationGrade11To12:   {},
	EducationCollegeOrMore: {},
}

// User represents an account in the system. Identity is the email address;
// the demographic fields are collected at signup and mutable afterwards.
type User struct {
	shared.BaseEntity
	Email          string
	PasswordHash   string
	Name           string
	State          string // two-letter jurisdiction code
	EducationLevel EducationLevel
}

// NewUser creates a new user with a hashed credential
func NewUser(email, password, state string, level EducationLevel) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if err := validateState(state); err != nil {
		return nil, err
	}
	if _, ok := educationLevels[level]; !ok {
		return nil, shared.NewDomainError("INVALID_EDUCATION_LEVEL", "Unknown education level")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:     shared.NewBaseEntity(),
		Email:          email,
		PasswordHash:   passwordHash,
		State:          strings.ToUpper(state),
		EducationLevel: level,
	}, nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// SetName sets the user's display name
func (u *User) SetName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	u.Name = name
	u.Touch()
	return nil
}

// SetState sets the user's two-letter jurisdiction code
func (u *User) SetState(state string) error {
	if err := validateState(state); err != nil {
		return err
	}
	u.State = strings.ToUpper(state)
	u.Touch()
	return nil
}

// DisplayName returns the display name if set, otherwise the email
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	return nil
}

var stateRegex = regexp.MustCompile(`^[a-zA-Z]{2}$`)

func validateState(state string) error {
	if !stateRegex.MatchString(state) {
		return shared.NewDomainError("INVALID_STATE", "State must be a two-letter code")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
