package social

import (
	"time"

	"github.com/esquire/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// Search result caps
const (
	MaxSearchResults = 20
)

// ProfileView is a user profile with social counts
type ProfileView struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	State          string    `json:"state"`
	PostCount      int64     `json:"postCount"`
	FollowerCount  int64     `json:"followerCount"`
	FollowingCount int64     `json:"followingCount"`
	FollowedByMe   bool      `json:"followedByMe"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PostMatch is a post returned from content search
type PostMatch struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	AuthorID  uuid.UUID `json:"authorId"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// SearchResult bundles user and post matches for a query
type SearchResult struct {
	Users []ProfileView `json:"users"`
	Posts []PostMatch   `json:"posts"`
}

func newProfileView(u *identity.User) ProfileView {
	return ProfileView{
		ID:        u.ID,
		Name:      u.DisplayName(),
		Email:     u.Email,
		State:     u.State,
		CreatedAt: u.CreatedAt,
	}
}
