package social

import (
	"context"
	"time"

	"go.uber.org/zap"

	"sociograph/backend/internal/constants"
	"sociograph/backend/internal/graph"
	"sociograph/backend/internal/sentiment"
	"sociograph/backend/pkg/logger"
)

// Service is the ingestion and read surface over the graph store. Post
// creation classifies sentiment, persists the post, then runs the similarity
// rebuild inline before returning.
type Service struct {
	store      GraphStore
	recomputer *Recomputer
	logger     *zap.Logger
}

// NewService creates a new social service
func NewService(store GraphStore, recomputer *Recomputer) *Service {
	return &Service{
		store:      store,
		recomputer: recomputer,
		logger:     logger.Get(),
	}
}

// CreateUser upserts a user; re-registering an existing id updates the name
func (s *Service) CreateUser(ctx context.Context, userID, name string) (*graph.User, error) {
	return s.store.UpsertUser(ctx, userID, name)
}

// CreatePost classifies the content, persists the post, and triggers a full
// similarity rebuild. The caller blocks until the rebuild has been attempted,
// but a rebuild failure never affects the returned post: by the time the
// rebuild runs, the post has already been committed.
func (s *Service) CreatePost(ctx context.Context, userID, content string) (*graph.Post, error) {
	label := sentiment.Classify(content)

	post, err := s.store.CreatePost(ctx, userID, content, string(label), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.recomputer.Recompute(ctx)

	return post, nil
}

// ListUserPosts returns one user's posts, newest first
func (s *Service) ListUserPosts(ctx context.Context, userID string) ([]graph.Post, error) {
	return s.store.GetUserPosts(ctx, userID)
}

// ListRecentPosts returns the newest non-deleted posts with their authors,
// capped at limit (non-positive limits fall back to the default)
func (s *Service) ListRecentPosts(ctx context.Context, limit int) ([]graph.RecentPost, error) {
	if limit < 1 {
		limit = constants.DefaultRecentPostsLimit
	}
	return s.store.GetRecentPosts(ctx, limit)
}

// ListUsers returns all users ordered by name
func (s *Service) ListUsers(ctx context.Context) ([]graph.User, error) {
	return s.store.GetAllUsers(ctx)
}

// DeletePost soft-deletes a post. The post drops out of the recent feed but
// stays in storage, in per-user listings, and in the similarity corpus.
func (s *Service) DeletePost(ctx context.Context, postID string) error {
	if err := s.store.SoftDeletePost(ctx, postID); err != nil {
		return err
	}
	s.logger.Info("Post deleted", zap.String("post_id", postID))
	return nil
}
