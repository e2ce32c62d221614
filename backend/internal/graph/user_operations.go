package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	apperrors "sociograph/backend/pkg/errors"
)

// ============================================================================
// User Operations
// ============================================================================

// UpsertUser creates a user node or updates its name if it already exists.
// The name is last-write-wins on repeated upserts of the same id.
func (r *Repository) UpsertUser(ctx context.Context, userID, name string) (*User, error) {
	if err := r.EnsureConnection(ctx); err != nil {
		return nil, err
	}

	session := r.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	query := `
		MERGE (u:User {user_id: $userID})
		ON CREATE SET u.name = $name
		ON MATCH SET u.name = $name
		RETURN u.user_id as user_id, u.name as name
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
		"name":   name,
	})
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("upsert user", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("upsert user", err)
	}

	r.logger.Info("User upserted",
		zap.String("user_id", userID),
		zap.String("name", name),
	)

	return &User{
		UserID: getStringFromRecord(record, "user_id"),
		Name:   getStringFromRecord(record, "name"),
	}, nil
}

// GetAllUsers returns every user, ordered by name
func (r *Repository) GetAllUsers(ctx context.Context) ([]User, error) {
	if err := r.EnsureConnection(ctx); err != nil {
		return nil, err
	}

	session := r.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query := `
		MATCH (u:User)
		RETURN u.user_id AS user_id, u.name AS name
		ORDER BY u.name
	`

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("list users", err)
	}

	var users []User
	for result.Next(ctx) {
		record := result.Record()
		users = append(users, User{
			UserID: getStringFromRecord(record, "user_id"),
			Name:   getStringFromRecord(record, "name"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewGraphQueryFailed("list users", err)
	}

	return users, nil
}

// GetUser returns a single user by id
func (r *Repository) GetUser(ctx context.Context, userID string) (*User, error) {
	if err := r.EnsureConnection(ctx); err != nil {
		return nil, err
	}

	session := r.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query := `
		MATCH (u:User {user_id: $userID})
		RETURN u.user_id as user_id, u.name as name
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
	})
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("get user", err)
	}

	if result.Next(ctx) {
		record := result.Record()
		return &User{
			UserID: getStringFromRecord(record, "user_id"),
			Name:   getStringFromRecord(record, "name"),
		}, nil
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch record: %w", err)
	}

	return nil, ErrUserNotFound{UserID: userID}
}
