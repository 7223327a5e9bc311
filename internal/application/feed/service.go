// Package feed composes the home timeline and handles post interactions.
package feed

import (
	"context"
	"fmt"

	"github.com/esquire/backend/internal/domain/identity"
	"github.com/esquire/backend/internal/domain/notification"
	"github.com/esquire/backend/internal/domain/shared"
	"github.com/esquire/backend/internal/domain/social"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier delivers a notification to its recipient. Delivery failures must
// not fail the triggering operation.
type Notifier interface {
	Notify(ctx context.Context, n *notification.Notification) error
}

// Service composes feeds and manages posts, likes, and comments
type Service struct {
	postRepo    social.PostRepository
	commentRepo social.CommentRepository
	likeRepo    social.LikeRepository
	followRepo  social.FollowRepository
	mediaRepo   social.MediaRepository
	userRepo    identity.UserRepository
	notifier    Notifier
	logger      *zap.Logger
}

// NewService creates a new feed service
func NewService(
	postRepo social.PostRepository,
	commentRepo social.CommentRepository,
	likeRepo social.LikeRepository,
	followRepo social.FollowRepository,
	mediaRepo social.MediaRepository,
	userRepo identity.UserRepository,
	notifier Notifier,
	logger *zap.Logger,
) *Service {
	return &Service{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		followRepo:  followRepo,
		mediaRepo:   mediaRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// Compose returns a page of posts authored by the viewer and everyone they
// follow, newest first, hydrated with authors, media, comments, and like state.
func (s *Service) Compose(ctx context.Context, input ComposeInput) ([]PostView, error) {
	// Zero means unspecified; anything else is clamped, never rejected
	take := input.Take
	switch {
	case take == 0:
		take = DefaultTake
	case take < 1:
		take = 1
	case take > MaxTake:
		take = MaxTake
	}
	skip := input.Skip
	if skip < 0 {
		skip = 0
	}

	following, err := s.followRepo.ListFollowingIDs(ctx, input.ViewerID)
	if err != nil {
		return nil, err
	}
	audience := append(following, input.ViewerID)

	posts, err := s.postRepo.ListByAuthors(ctx, audience, take, skip)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, input.ViewerID, posts)
}

// GetPost returns a single composed post
func (s *Service) GetPost(ctx context.Context, viewerID, postID uuid.UUID) (*PostView, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	views, err := s.hydrate(ctx, viewerID, []*social.Post{post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// CreatePost publishes a post with optional media attachments
func (s *Service) CreatePost(ctx context.Context, input CreatePostInput) (*PostView, error) {
	post, err := social.NewPost(input.UserID, input.Content)
	if err != nil {
		return nil, err
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		s.logger.Error("Failed to create post", zap.Error(err))
		return nil, err
	}

	for _, m := range input.Media {
		media, err := social.NewPostMedia(input.UserID, post.ID, m.URL, m.Filename, m.MimeType, m.Size)
		if err != nil {
			return nil, err
		}
		if err := s.mediaRepo.Create(ctx, media); err != nil {
			s.logger.Error("Failed to attach media",
				zap.String("post_id", post.ID.String()),
				zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("Post created",
		zap.String("post_id", post.ID.String()),
		zap.String("user_id", input.UserID.String()),
	)

	views, err := s.hydrate(ctx, input.UserID, []*social.Post{post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// DeletePost removes a post; only its author may delete it
func (s *Service) DeletePost(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return shared.ErrForbidden
	}
	return s.postRepo.Delete(ctx, postID)
}

// LikePost records a like and notifies the post's author
func (s *Service) LikePost(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return err
	}

	like := social.NewLike(userID, postID)
	if err := s.likeRepo.Create(ctx, like); err != nil {
		return err
	}

	// Liking your own post produces no notification
	if post.UserID != userID {
		s.notifyActivity(ctx, post.UserID, userID, notification.TypeLike,
			"%s liked your post",
			func(n *notification.Notification) { n.WithPost(postID) })
	}
	return nil
}

// UnlikePost removes the caller's like from a post
func (s *Service) UnlikePost(ctx context.Context, userID, postID uuid.UUID) error {
	return s.likeRepo.Delete(ctx, userID, postID)
}

// AddComment adds a comment and notifies the post's author
func (s *Service) AddComment(ctx context.Context, input AddCommentInput) (*CommentView, error) {
	post, err := s.postRepo.FindByID(ctx, input.PostID)
	if err != nil {
		return nil, err
	}

	comment, err := social.NewComment(input.UserID, input.PostID, input.Content)
	if err != nil {
		return nil, err
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		s.logger.Error("Failed to create comment", zap.Error(err))
		return nil, err
	}

	if post.UserID != input.UserID {
		s.notifyActivity(ctx, post.UserID, input.UserID, notification.TypeComment,
			"%s commented on your post",
			func(n *notification.Notification) { n.WithPost(input.PostID).WithComment(comment.ID) })
	}

	author, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	view := newCommentView(comment, author)
	return &view, nil
}

// DeleteComment removes a comment; only its author may delete it
func (s *Service) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return shared.ErrForbidden
	}
	return s.commentRepo.Delete(ctx, commentID)
}

// notifyActivity builds and delivers an activity notification, best effort
func (s *Service) notifyActivity(
	ctx context.Context,
	recipientID, actorID uuid.UUID,
	kind notification.Type,
	format string,
	decorate func(*notification.Notification),
) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		s.logger.Warn("Failed to resolve notification actor", zap.Error(err))
		return
	}

	n, err := notification.New(recipientID, kind, fmt.Sprintf(format, actor.DisplayName()))
	if err != nil {
		s.logger.Warn("Failed to build notification", zap.Error(err))
		return
	}
	n.WithActor(actorID)
	decorate(n)

	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("Failed to deliver notification", zap.Error(err))
	}
}

// hydrate resolves authors, media, comments, and like state for a page of posts
func (s *Service) hydrate(ctx context.Context, viewerID uuid.UUID, posts []*social.Post) ([]PostView, error) {
	if len(posts) == 0 {
		return []PostView{}, nil
	}

	postIDs := make([]uuid.UUID, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	mediaByPost, err := s.mediaRepo.ListByPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	commentsByPost, err := s.commentRepo.ListByPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	likeCounts, err := s.likeRepo.CountByPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	liked, err := s.likeRepo.LikedByUser(ctx, viewerID, postIDs)
	if err != nil {
		return nil, err
	}

	users, err := s.resolveUsers(ctx, posts, commentsByPost)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		view := PostView{
			ID:        p.ID,
			Content:   p.Content,
			Author:    newAuthorView(users[p.UserID]),
			Media:     []MediaView{},
			Comments:  []CommentView{},
			LikeCount: likeCounts[p.ID],
			LikedByMe: liked[p.ID],
			CreatedAt: p.CreatedAt,
		}
		for _, m := range mediaByPost[p.ID] {
			view.Media = append(view.Media, MediaView{
				ID:       m.ID,
				URL:      m.URL,
				Filename: m.Filename,
				MimeType: m.MimeType,
				Size:     m.Size,
			})
		}
		for _, c := range commentsByPost[p.ID] {
			view.Comments = append(view.Comments, newCommentView(c, users[c.UserID]))
		}
		view.CommentCount = int64(len(view.Comments))
		views = append(views, view)
	}
	return views, nil
}

// resolveUsers fetches every post and comment author in one query
func (s *Service) resolveUsers(
	ctx context.Context,
	posts []*social.Post,
	commentsByPost map[uuid.UUID][]*social.Comment,
) (map[uuid.UUID]*identity.User, error) {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0, len(posts))
	add := func(id uuid.UUID) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, p := range posts {
		add(p.UserID)
	}
	for _, comments := range commentsByPost {
		for _, c := range comments {
			add(c.UserID)
		}
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*identity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

func newAuthorView(u *identity.User) AuthorView {
	if u == nil {
		return AuthorView{}
	}
	return AuthorView{
		ID:    u.ID,
		Name:  u.DisplayName(),
		State: u.State,
	}
}

func newCommentView(c *social.Comment, author *identity.User) CommentView {
	return CommentView{
		ID:        c.ID,
		Content:   c.Content,
		Author:    newAuthorView(author),
		CreatedAt: c.CreatedAt,
	}
}
