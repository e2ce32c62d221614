package graph

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	apperrors "sociograph/backend/pkg/errors"
	"sociograph/backend/pkg/logger"
)

// Repository handles all Neo4j database operations. It owns the driver and
// re-establishes it transparently when the connection goes dead, under a
// bounded exponential-backoff retry budget.
type Repository struct {
	uri          string
	user         string
	password     string
	maxRetryTime time.Duration

	mu     sync.Mutex
	driver neo4j.DriverWithContext

	logger *zap.Logger
}

// NewRepository creates a new graph repository. No connection is made until
// Connect or the first operation.
func NewRepository(uri, user, password string, maxRetryTime time.Duration) *Repository {
	return &Repository{
		uri:          uri,
		user:         user,
		password:     password,
		maxRetryTime: maxRetryTime,
		logger:       logger.Get(),
	}
}

// Connect establishes the Neo4j driver, retrying with exponential backoff
// until the retry budget is exhausted
func (r *Repository) Connect(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connectLocked(ctx)
}

func (r *Repository) connectLocked(ctx context.Context) error {
	if r.driver != nil {
		return nil
	}

	attempt := func() error {
		driver, err := neo4j.NewDriverWithContext(
			r.uri,
			neo4j.BasicAuth(r.user, r.password, ""),
		)
		if err != nil {
			return err
		}
		if err := driver.VerifyConnectivity(ctx); err != nil {
			_ = driver.Close(ctx)
			return err
		}
		r.driver = driver
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = r.maxRetryTime

	if err := backoff.Retry(attempt, backoff.WithContext(policy, ctx)); err != nil {
		r.logger.Error("Failed to connect to Neo4j",
			zap.String("uri", r.uri),
			zap.Error(err),
		)
		return apperrors.NewGraphConnectionFailed(r.uri, err)
	}

	r.logger.Info("Connected to Neo4j", zap.String("uri", r.uri))
	return nil
}

// HealthCheck runs a trivial query to verify the connection is alive
func (r *Repository) HealthCheck(ctx context.Context) error {
	r.mu.Lock()
	driver := r.driver
	r.mu.Unlock()

	if driver == nil {
		return apperrors.NewGraphConnectionFailed(r.uri, fmt.Errorf("not connected"))
	}

	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, "RETURN 1", nil)
	if err != nil {
		return err
	}
	if _, err := result.Single(ctx); err != nil {
		return err
	}
	return nil
}

// EnsureConnection health-checks the current connection and reconnects if it
// is missing or dead. Every operation calls this before opening a session.
func (r *Repository) EnsureConnection(ctx context.Context) error {
	r.mu.Lock()
	connected := r.driver != nil
	r.mu.Unlock()

	if !connected {
		return r.Connect(ctx)
	}

	if err := r.HealthCheck(ctx); err != nil {
		r.logger.Warn("Connection check failed, reconnecting", zap.Error(err))
		_ = r.Close()
		return r.Connect(ctx)
	}
	return nil
}

// Close closes the Neo4j driver connection
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.driver == nil {
		return nil
	}
	err := r.driver.Close(context.Background())
	r.driver = nil
	return err
}

// session opens a new session in the given access mode. EnsureConnection
// must have succeeded first.
func (r *Repository) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	r.mu.Lock()
	driver := r.driver
	r.mu.Unlock()
	return driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: mode})
}

// RunSchemaStatements executes constraint/index DDL statements one by one.
// Individual failures are skipped; statements may already exist.
func (r *Repository) RunSchemaStatements(ctx context.Context, statements []string) error {
	if err := r.EnsureConnection(ctx); err != nil {
		return err
	}

	session := r.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	for _, stmt := range statements {
		if _, err := session.Run(ctx, stmt, nil); err != nil {
			r.logger.Warn("Schema statement failed", zap.String("statement", stmt), zap.Error(err))
			continue
		}
	}

	return nil
}

// Errors

// ErrUserNotFound is returned when an operation references a user that does
// not exist in the graph
type ErrUserNotFound struct {
	UserID string
}

func (e ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPostNotFound is returned when an operation references a post that does
// not exist in the graph
type ErrPostNotFound struct {
	PostID string
}

func (e ErrPostNotFound) Error() string {
	return fmt.Sprintf("post not found: %s", e.PostID)
}
