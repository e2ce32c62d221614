package graph

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// These tests require a running Neo4j instance at bolt://localhost:7687
// with the default neo4j/password credentials.

func newTestRepository(t *testing.T) (*Repository, func()) {
	t.Helper()

	repo := NewRepository("bolt://localhost:7687", "neo4j", "password", 10*time.Second)
	if err := repo.Connect(context.Background()); err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	return repo, func() { _ = repo.Close() }
}

// cleanupDriver opens a raw driver for test teardown
func cleanupDriver(t *testing.T) neo4j.DriverWithContext {
	t.Helper()

	driver, err := neo4j.NewDriverWithContext("bolt://localhost:7687", neo4j.BasicAuth("neo4j", "password", ""))
	if err != nil {
		t.Fatalf("Failed to create cleanup driver: %v", err)
	}
	return driver
}

func deleteUser(ctx context.Context, driver neo4j.DriverWithContext, userID string) {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)
	_, _ = session.Run(ctx,
		"MATCH (u:User {user_id: $id}) OPTIONAL MATCH (u)<-[:POSTED_BY]-(p:Post) DETACH DELETE u, p",
		map[string]interface{}{"id": userID})
}

func TestRepository_UpsertUser_Idempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	repo, closeRepo := newTestRepository(t)
	defer closeRepo()

	driver := cleanupDriver(t)
	defer driver.Close(ctx)

	userID := "test-user-" + time.Now().Format("20060102150405")
	defer deleteUser(ctx, driver, userID)

	first, err := repo.UpsertUser(ctx, userID, "First Name")
	if err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}
	if first.Name != "First Name" {
		t.Errorf("Expected name 'First Name', got '%s'", first.Name)
	}

	second, err := repo.UpsertUser(ctx, userID, "Second Name")
	if err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}
	if second.Name != "Second Name" {
		t.Errorf("Expected name 'Second Name', got '%s'", second.Name)
	}

	// Still exactly one record for the id
	user, err := repo.GetUser(ctx, userID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.Name != "Second Name" {
		t.Errorf("Expected latest name to win, got '%s'", user.Name)
	}
}

func TestRepository_CreatePost_UserNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	repo, closeRepo := newTestRepository(t)
	defer closeRepo()

	_, err := repo.CreatePost(ctx, "no-such-user", "hello", "neutral", time.Now())
	var notFound ErrUserNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestRepository_SimilarityEdges_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	repo, closeRepo := newTestRepository(t)
	defer closeRepo()

	driver := cleanupDriver(t)
	defer driver.Close(ctx)

	suffix := time.Now().Format("20060102150405")
	userA := "test-a-" + suffix
	userB := "test-b-" + suffix
	defer deleteUser(ctx, driver, userA)
	defer deleteUser(ctx, driver, userB)

	for _, id := range []string{userA, userB} {
		if _, err := repo.UpsertUser(ctx, id, id); err != nil {
			t.Fatalf("UpsertUser failed: %v", err)
		}
	}
	if _, err := repo.CreatePost(ctx, userA, "shared vocabulary", "neutral", time.Now()); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if _, err := repo.CreatePost(ctx, userB, "shared vocabulary", "neutral", time.Now()); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	edges := []SimilarityEdge{
		{SourceID: userA, TargetID: userB},
		{SourceID: userB, TargetID: userA},
	}
	if err := repo.WriteSimilarityEdges(ctx, edges); err != nil {
		t.Fatalf("WriteSimilarityEdges failed: %v", err)
	}
	// Duplicate insertion must be an idempotent ensure-present
	if err := repo.WriteSimilarityEdges(ctx, edges); err != nil {
		t.Fatalf("Duplicate WriteSimilarityEdges failed: %v", err)
	}

	users, err := repo.FetchAllUsersWithPostContent(ctx)
	if err != nil {
		t.Fatalf("FetchAllUsersWithPostContent failed: %v", err)
	}
	found := 0
	for _, u := range users {
		if u.UserID == userA || u.UserID == userB {
			found++
			if len(u.Contents) != 1 {
				t.Errorf("Expected one content string for %s, got %d", u.UserID, len(u.Contents))
			}
		}
	}
	if found != 2 {
		t.Errorf("Expected both test users in the corpus, found %d", found)
	}

	if err := repo.ClearSimilarityEdges(ctx); err != nil {
		t.Fatalf("ClearSimilarityEdges failed: %v", err)
	}
}

func TestRepository_GetRecentPosts_ExcludesSoftDeleted(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	repo, closeRepo := newTestRepository(t)
	defer closeRepo()

	driver := cleanupDriver(t)
	defer driver.Close(ctx)

	userID := "test-recent-" + time.Now().Format("20060102150405")
	defer deleteUser(ctx, driver, userID)

	if _, err := repo.UpsertUser(ctx, userID, "Recent Tester"); err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}

	kept, err := repo.CreatePost(ctx, userID, "kept post", "neutral", time.Now())
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	dropped, err := repo.CreatePost(ctx, userID, "dropped post", "neutral", time.Now().Add(time.Second))
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	if err := repo.SoftDeletePost(ctx, dropped.PostID); err != nil {
		t.Fatalf("SoftDeletePost failed: %v", err)
	}

	recent, err := repo.GetRecentPosts(ctx, 100)
	if err != nil {
		t.Fatalf("GetRecentPosts failed: %v", err)
	}
	sawKept := false
	for _, p := range recent {
		if p.PostID == dropped.PostID {
			t.Error("Expected soft-deleted post to be excluded from recent feed")
		}
		if p.PostID == kept.PostID {
			sawKept = true
			if p.UserName != "Recent Tester" {
				t.Errorf("Expected author name, got '%s'", p.UserName)
			}
		}
	}
	if !sawKept {
		t.Error("Expected the kept post in the recent feed")
	}

	// Soft-deleted posts stay visible in the per-user listing
	posts, err := repo.GetUserPosts(ctx, userID)
	if err != nil {
		t.Fatalf("GetUserPosts failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("Expected both posts in per-user listing, got %d", len(posts))
	}
	if posts[0].PostID != dropped.PostID {
		t.Errorf("Expected newest-first ordering, got %s first", posts[0].PostID)
	}
}
