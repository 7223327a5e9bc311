package social

import (
	"context"
	"strings"

	"github.com/esquire/backend/internal/domain/identity"
	"github.com/esquire/backend/internal/domain/social"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SearchService finds users and posts by free-text query
type SearchService struct {
	userRepo   identity.UserRepository
	postRepo   social.PostRepository
	followRepo social.FollowRepository
	logger     *zap.Logger
}

// NewSearchService creates a new search service
func NewSearchService(
	userRepo identity.UserRepository,
	postRepo social.PostRepository,
	followRepo social.FollowRepository,
	logger *zap.Logger,
) *SearchService {
	return &SearchService{
		userRepo:   userRepo,
		postRepo:   postRepo,
		followRepo: followRepo,
		logger:     logger,
	}
}

// Search matches the query against user names and emails and post content.
// An empty query returns empty results.
func (s *SearchService) Search(ctx context.Context, viewerID uuid.UUID, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	result := &SearchResult{Users: []ProfileView{}, Posts: []PostMatch{}}
	if query == "" {
		return result, nil
	}

	users, err := s.userRepo.Search(ctx, query, MaxSearchResults)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		view := newProfileView(u)
		if view.PostCount, err = s.postRepo.CountByAuthor(ctx, u.ID); err != nil {
			return nil, err
		}
		if view.FollowerCount, err = s.followRepo.CountFollowers(ctx, u.ID); err != nil {
			return nil, err
		}
		if view.FollowingCount, err = s.followRepo.CountFollowing(ctx, u.ID); err != nil {
			return nil, err
		}
		if u.ID != viewerID {
			if view.FollowedByMe, err = s.followRepo.Exists(ctx, viewerID, u.ID); err != nil {
				return nil, err
			}
		}
		result.Users = append(result.Users, view)
	}

	posts, err := s.postRepo.SearchByContent(ctx, query, MaxSearchResults)
	if err != nil {
		return nil, err
	}
	if len(posts) > 0 {
		authorIDs := make([]uuid.UUID, 0, len(posts))
		seen := make(map[uuid.UUID]struct{})
		for _, p := range posts {
			if _, ok := seen[p.UserID]; !ok {
				seen[p.UserID] = struct{}{}
				authorIDs = append(authorIDs, p.UserID)
			}
		}
		authors, err := s.userRepo.FindByIDs(ctx, authorIDs)
		if err != nil {
			return nil, err
		}
		names := make(map[uuid.UUID]string, len(authors))
		for _, a := range authors {
			names[a.ID] = a.DisplayName()
		}
		for _, p := range posts {
			result.Posts = append(result.Posts, PostMatch{
				ID:        p.ID,
				Content:   p.Content,
				AuthorID:  p.UserID,
				Author:    names[p.UserID],
				CreatedAt: p.CreatedAt,
			})
		}
	}
	return result, nil
}
