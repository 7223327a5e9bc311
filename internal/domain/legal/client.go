package legal

import (
	"strings"

	"github.com/esquire/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Client is a defense client managed by a user. Clients are private to
// their owning user; every lookup is scoped by owner.
type Client struct {
	shared.BaseEntity
	UserID  uuid.UUID
	Name    string
	Email   string
	Phone   string
	Address string
}

// NewClient creates a client record for a user
func NewClient(userID uuid.UUID, name string) (*Client, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	return &Client{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Name:       name,
	}, nil
}

// UpdateDetails replaces the client's contact fields. An empty name keeps
// the current one.
func (c *Client) UpdateDetails(name, email, phone, address string) error {
	if name != "" {
		if strings.TrimSpace(name) == "" {
			return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
		}
		c.Name = name
	}
	c.Email = email
	c.Phone = phone
	c.Address = address
	c.Touch()
	return nil
}

// IsOwnedBy reports whether the client belongs to the given user
func (c *Client) IsOwnedBy(userID uuid.UUID) bool {
	return c.UserID == userID
}
