package models

import (
	"github.com/esquire/backend/internal/domain/social"
	"github.com/google/uuid"
)

// PostModel is the persistence model for the Post domain entity
type PostModel struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Content string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (PostModel) TableName() string {
	return "posts"
}

// ToDomain converts the persistence model to a domain Post entity
func (m *PostModel) ToDomain() *social.Post {
	return &social.Post{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Content:    m.Content,
	}
}

// FromDomain populates the persistence model from a domain Post entity
func (m *PostModel) FromDomain(p *social.Post) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.UserID = p.UserID
	m.Content = p.Content
}

// PostMediaModel is the persistence model for post media attachments
type PostMediaModel struct {
	BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;not null;index"`
	PostID   uuid.UUID `gorm:"type:uuid;not null;index"`
	URL      string    `gorm:"type:text;not null"`
	Filename string    `gorm:"type:varchar(255)"`
	MimeType string    `gorm:"type:varchar(100)"`
	Size     int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PostMediaModel) TableName() string {
	return "post_media"
}

// ToDomain converts the persistence model to a domain PostMedia entity
func (m *PostMediaModel) ToDomain() *social.PostMedia {
	return &social.PostMedia{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		PostID:     m.PostID,
		URL:        m.URL,
		Filename:   m.Filename,
		MimeType:   m.MimeType,
		Size:       m.Size,
	}
}

// FromDomain populates the persistence model from a domain PostMedia entity
func (m *PostMediaModel) FromDomain(pm *social.PostMedia) {
	m.FromDomainBaseEntity(pm.BaseEntity)
	m.UserID = pm.UserID
	m.PostID = pm.PostID
	m.URL = pm.URL
	m.Filename = pm.Filename
	m.MimeType = pm.MimeType
	m.Size = pm.Size
}

// CommentModel is the persistence model for the Comment domain entity
type CommentModel struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	PostID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Content string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (CommentModel) TableName() string {
	return "comments"
}

// ToDomain converts the persistence model to a domain Comment entity
func (m *CommentModel) ToDomain() *social.Comment {
	return &social.Comment{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		PostID:     m.PostID,
		Content:    m.Content,
	}
}

// FromDomain populates the persistence model from a domain Comment entity
func (m *CommentModel) FromDomain(c *social.Comment) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.UserID = c.UserID
	m.PostID = c.PostID
	m.Content = c.Content
}

// LikeModel is the persistence model for the Like domain entity
type LikeModel struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_user_post,priority:1"`
	PostID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_user_post,priority:2;index"`
}

// TableName returns the table name for GORM
func (LikeModel) TableName() string {
	return "likes"
}

// ToDomain converts the persistence model to a domain Like entity
func (m *LikeModel) ToDomain() *social.Like {
	return &social.Like{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		PostID:     m.PostID,
	}
}

// FromDomain populates the persistence model from a domain Like entity
func (m *LikeModel) FromDomain(l *social.Like) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.UserID = l.UserID
	m.PostID = l.PostID
}

// FollowModel is the persistence model for the Follow domain entity
type FollowModel struct {
	BaseModel
	FollowerID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follow_edge,priority:1"`
	FollowingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follow_edge,priority:2;index"`
}

// TableName returns the table name for GORM
func (FollowModel) TableName() string {
	return "follows"
}

// ToDomain converts the persistence model to a domain Follow entity
func (m *FollowModel) ToDomain() *social.Follow {
	return &social.Follow{
		BaseEntity:  m.BaseModel.ToDomain(),
		FollowerID:  m.FollowerID,
		FollowingID: m.FollowingID,
	}
}

// FromDomain populates the persistence model from a domain Follow entity
func (m *FollowModel) FromDomain(f *social.Follow) {
	m.FromDomainBaseEntity(f.BaseEntity)
	m.FollowerID = f.FollowerID
	m.FollowingID = f.FollowingID
}
