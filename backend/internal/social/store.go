package social

import (
	"context"
	"time"

	"sociograph/backend/internal/graph"
)

// SimilarityStore is the slice of the graph store the recomputation engine
// needs: the full-corpus scan plus the two-phase edge replacement.
type SimilarityStore interface {
	FetchAllUsersWithPostContent(ctx context.Context) ([]graph.UserContent, error)
	ClearSimilarityEdges(ctx context.Context) error
	WriteSimilarityEdges(ctx context.Context, edges []graph.SimilarityEdge) error
}

// GraphStore is the store contract the service layer depends on. It is
// satisfied by *graph.Repository.
type GraphStore interface {
	SimilarityStore

	UpsertUser(ctx context.Context, userID, name string) (*graph.User, error)
	GetAllUsers(ctx context.Context) ([]graph.User, error)

	CreatePost(ctx context.Context, userID, content, sentiment string, timestamp time.Time) (*graph.Post, error)
	GetUserPosts(ctx context.Context, userID string) ([]graph.Post, error)
	GetRecentPosts(ctx context.Context, limit int) ([]graph.RecentPost, error)
	SoftDeletePost(ctx context.Context, postID string) error
}
