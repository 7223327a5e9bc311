package legal

import (
	"strings"

	"github.com/esquire/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CaseNote is a free-form working note owned by a user
type CaseNote struct {
	shared.BaseEntity
	UserID  uuid.UUID
	Content string
}

// NewCaseNote creates a note for a user
func NewCaseNote(userID uuid.UUID, content string) (*CaseNote, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if strings.TrimSpace(content) == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Case note content cannot be empty")
	}
	return &CaseNote{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Content:    content,
	}, nil
}

// UpdateContent replaces the note content
func (n *CaseNote) UpdateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return shared.NewDomainError("INVALID_CONTENT", "Case note content cannot be empty")
	}
	n.Content = content
	n.Touch()
	return nil
}

// IsOwnedBy reports whether the note belongs to the given user
func (n *CaseNote) IsOwnedBy(userID uuid.UUID) bool {
	return n.UserID == userID
}
