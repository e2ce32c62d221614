package constants

// Similarity policy constants
const (
	// DefaultMinCommonWords is the minimum number of shared vocabulary
	// tokens for two users to be linked by a SIMILAR_CONTENT edge
	DefaultMinCommonWords = 1
)

// Query constants
const (
	// DefaultRecentPostsLimit caps the recent-posts feed
	DefaultRecentPostsLimit = 10
)
