package models

import (
	"github.com/esquire/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity
type UserModel struct {
	BaseModel
	Email          string                  `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash   string                  `gorm:"type:varchar(100);not null"`
	Name           string                  `gorm:"type:varchar(200)"`
	State          string                  `gorm:"type:varchar(2);not null"`
	EducationLevel identity.EducationLevel `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:     m.BaseModel.ToDomain(),
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		Name:           m.Name,
		State:          m.State,
		EducationLevel: m.EducationLevel,
	}
}

// FromDomain populates the persistence model from a domain User entity
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Name = u.Name
	m.State = u.State
	m.EducationLevel = u.EducationLevel
}
