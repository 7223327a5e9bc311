package models

import (
	"github.com/esquire/backend/internal/domain/notification"
	"github.com/google/uuid"
)

// NotificationModel is the persistence model for the Notification domain entity
type NotificationModel struct {
	BaseModel
	UserID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	Type      notification.Type `gorm:"type:varchar(20);not null"`
	Content   string            `gorm:"type:text;not null"`
	Read      bool              `gorm:"not null;default:false;index"`
	ActorID   *uuid.UUID        `gorm:"type:uuid"`
	PostID    *uuid.UUID        `gorm:"type:uuid"`
	CommentID *uuid.UUID        `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification entity
func (m *NotificationModel) ToDomain() *notification.Notification {
	return &notification.Notification{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Type:       m.Type,
		Content:    m.Content,
		Read:       m.Read,
		ActorID:    m.ActorID,
		PostID:     m.PostID,
		CommentID:  m.CommentID,
	}
}

// FromDomain populates the persistence model from a domain Notification entity
func (m *NotificationModel) FromDomain(n *notification.Notification) {
	m.FromDomainBaseEntity(n.BaseEntity)
	m.UserID = n.UserID
	m.Type = n.Type
	m.Content = n.Content
	m.Read = n.Read
	m.ActorID = n.ActorID
	m.PostID = n.PostID
	m.CommentID = n.CommentID
}
