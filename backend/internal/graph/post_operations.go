package graph

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	apperrors "sociograph/backend/pkg/errors"
)

// ============================================================================
// Post Operations
// ============================================================================

// CreatePost creates a post node attached to an existing user. The post id
// is generated here; the sentiment tag is computed by the caller once, at
// creation, and never recomputed. Returns ErrUserNotFound when the owning
// user does not exist, in which case no post node is created.
func (r *Repository) CreatePost(ctx context.Context, userID, content, sentiment string, timestamp time.Time) (*Post, error) {
	if err := r.EnsureConnection(ctx); err != nil {
		return nil, err
	}

	session := r.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	postID := uuid.NewString()
	timestampStr := timestamp.UTC().Format(time.RFC3339)

	// The MATCH on the user guards the CREATE: an unknown user yields zero
	// rows and zero created nodes.
	query := `
		MATCH (u:User {user_id: $userID})
		CREATE (p:Post {
			post_id: $postID,
			content: $content,
			sentiment: $sentiment,
			timestamp: $timestamp
		})-[:POSTED_BY]->(u)
		RETURN p.post_id as post_id, p.content as content,
		       p.sentiment as sentiment, p.timestamp as timestamp
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID":    userID,
		"postID":    postID,
		"content":   content,
		"sentiment": sentiment,
		"timestamp": timestampStr,
	})
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("create post", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, apperrors.NewGraphQueryFailed("create post", err)
		}
		return nil, ErrUserNotFound{UserID: userID}
	}

	record := result.Record()
	post := &Post{
		PostID:    getStringFromRecord(record, "post_id"),
		UserID:    userID,
		Content:   getStringFromRecord(record, "content"),
		Sentiment: getStringFromRecord(record, "sentiment"),
		Timestamp: getTimeFromRecord(record, "timestamp"),
	}

	r.logger.Info("Post created",
		zap.String("post_id", post.PostID),
		zap.String("user_id", userID),
		zap.String("sentiment", post.Sentiment),
	)

	return post, nil
}

// GetUserPosts returns one user's posts, newest first. Soft-deleted posts
// are included here; only the recent-posts feed filters them.
func (r *Repository) GetUserPosts(ctx context.Context, userID string) ([]Post, error) {
	if err := r.EnsureConnection(ctx); err != nil {
		return nil, err
	}

	session := r.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query := `
		MATCH (p:Post)-[:POSTED_BY]->(u:User {user_id: $userID})
		RETURN p.post_id AS post_id,
		       p.content AS content,
		       p.sentiment AS sentiment,
		       p.timestamp AS timestamp,
		       p.deleted AS deleted
		ORDER BY p.timestamp DESC
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
	})
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("list user posts", err)
	}

	var posts []Post
	for result.Next(ctx) {
		record := result.Record()
		posts = append(posts, Post{
			PostID:    getStringFromRecord(record, "post_id"),
			UserID:    userID,
			Content:   getStringFromRecord(record, "content"),
			Sentiment: getStringFromRecord(record, "sentiment"),
			Timestamp: getTimeFromRecord(record, "timestamp"),
			Deleted:   getBoolFromRecord(record, "deleted"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewGraphQueryFailed("list user posts", err)
	}

	return posts, nil
}

// GetRecentPosts returns the newest posts across all users with their
// authors, excluding soft-deleted posts, capped at limit
func (r *Repository) GetRecentPosts(ctx context.Context, limit int) ([]RecentPost, error) {
	if err := r.EnsureConnection(ctx); err != nil {
		return nil, err
	}

	session := r.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query := `
		MATCH (p:Post)-[:POSTED_BY]->(u:User)
		WHERE p.deleted IS NULL
		RETURN p.post_id AS post_id,
		       p.content AS content,
		       p.sentiment AS sentiment,
		       p.timestamp AS timestamp,
		       u.name AS user_name,
		       u.user_id AS user_id
		ORDER BY p.timestamp DESC
		LIMIT $limit
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"limit": limit,
	})
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("list recent posts", err)
	}

	var posts []RecentPost
	for result.Next(ctx) {
		record := result.Record()
		posts = append(posts, RecentPost{
			Post: Post{
				PostID:    getStringFromRecord(record, "post_id"),
				UserID:    getStringFromRecord(record, "user_id"),
				Content:   getStringFromRecord(record, "content"),
				Sentiment: getStringFromRecord(record, "sentiment"),
				Timestamp: getTimeFromRecord(record, "timestamp"),
			},
			UserName: getStringFromRecord(record, "user_name"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewGraphQueryFailed("list recent posts", err)
	}

	return posts, nil
}

// SoftDeletePost marks a post deleted without removing its node. The post
// drops out of the recent-posts feed but keeps its storage record.
func (r *Repository) SoftDeletePost(ctx context.Context, postID string) error {
	if err := r.EnsureConnection(ctx); err != nil {
		return err
	}

	session := r.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	query := `
		MATCH (p:Post {post_id: $postID})
		SET p.deleted = true
		RETURN p.post_id as post_id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"postID": postID,
	})
	if err != nil {
		return apperrors.NewGraphQueryFailed("soft delete post", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return apperrors.NewGraphQueryFailed("soft delete post", err)
		}
		return ErrPostNotFound{PostID: postID}
	}

	r.logger.Info("Post soft-deleted", zap.String("post_id", postID))
	return nil
}
