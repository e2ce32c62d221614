package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	apperrors "sociograph/backend/pkg/errors"
)

// ============================================================================
// Similarity Operations
// ============================================================================

// FetchAllUsersWithPostContent returns, for every user that has at least one
// post, that user's raw post contents. Users with zero posts are omitted.
// This is the full-corpus scan behind every similarity rebuild.
func (r *Repository) FetchAllUsersWithPostContent(ctx context.Context) ([]UserContent, error) {
	if err := r.EnsureConnection(ctx); err != nil {
		return nil, err
	}

	session := r.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query := `
		MATCH (u:User)
		OPTIONAL MATCH (u)<-[:POSTED_BY]-(p:Post)
		WITH u, collect(p.content) AS contents
		WHERE size(contents) > 0
		RETURN u.user_id AS user_id, contents
	`

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("fetch user corpus", err)
	}

	var users []UserContent
	for result.Next(ctx) {
		record := result.Record()
		users = append(users, UserContent{
			UserID:   getStringFromRecord(record, "user_id"),
			Contents: getStringSliceFromRecord(record, "contents"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewGraphQueryFailed("fetch user corpus", err)
	}

	return users, nil
}

// ClearSimilarityEdges removes every SIMILAR_CONTENT relationship, and only
// those. The caller rebuilds the full edge set afterwards.
func (r *Repository) ClearSimilarityEdges(ctx context.Context) error {
	if err := r.EnsureConnection(ctx); err != nil {
		return err
	}

	session := r.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.Run(ctx, "MATCH ()-[r:SIMILAR_CONTENT]->() DELETE r", nil)
	if err != nil {
		return apperrors.NewGraphQueryFailed("clear similarity edges", err)
	}

	return nil
}

// WriteSimilarityEdges inserts the given directed edges in one batch. MERGE
// makes duplicate insertion an idempotent ensure-present.
func (r *Repository) WriteSimilarityEdges(ctx context.Context, edges []SimilarityEdge) error {
	if len(edges) == 0 {
		return nil
	}

	if err := r.EnsureConnection(ctx); err != nil {
		return err
	}

	session := r.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	batch := make([]interface{}, 0, len(edges))
	for _, edge := range edges {
		batch = append(batch, map[string]interface{}{
			"source": edge.SourceID,
			"target": edge.TargetID,
		})
	}

	query := `
		UNWIND $edges AS edge
		MATCH (a:User {user_id: edge.source})
		MATCH (b:User {user_id: edge.target})
		MERGE (a)-[:SIMILAR_CONTENT]->(b)
	`

	_, err := session.Run(ctx, query, map[string]interface{}{
		"edges": batch,
	})
	if err != nil {
		return apperrors.NewGraphQueryFailed("write similarity edges", err)
	}

	r.logger.Debug("Similarity edges written", zap.Int("count", len(edges)))
	return nil
}
