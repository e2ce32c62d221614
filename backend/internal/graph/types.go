package graph

import "time"

// User represents a user node in the graph
type User struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// Post represents a post node in the graph
type Post struct {
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id,omitempty"`
	Content   string    `json:"content"`
	Sentiment string    `json:"sentiment"`
	Timestamp time.Time `json:"timestamp"`
	Deleted   bool      `json:"deleted,omitempty"`
}

// RecentPost is a post joined with its author for the recent-posts feed
type RecentPost struct {
	Post
	UserName string `json:"user_name"`
}

// UserContent is one user's raw post contents, as returned by the
// full-corpus scan that feeds the similarity rebuild
type UserContent struct {
	UserID   string
	Contents []string
}

// SimilarityEdge is a directed SIMILAR_CONTENT relationship between two users
type SimilarityEdge struct {
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
}
