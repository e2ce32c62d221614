package main

import (
	"context"
	"flag"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sociograph/backend/internal/graph"
	"sociograph/backend/internal/social"
	"sociograph/backend/pkg/config"
	"sociograph/backend/pkg/logger"
)

func main() {
	force := flag.Bool("force", false, "Seed demo data even if users already exist")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	repo := graph.NewRepository(cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jMaxRetryTime)

	ctx := context.Background()
	if err := repo.Connect(ctx); err != nil {
		log.Fatal("Failed to connect to Neo4j", zap.Error(err))
	}
	defer repo.Close()

	// Create constraints
	log.Info("Creating constraints...")
	if err := createConstraints(ctx, repo); err != nil {
		log.Warn("Failed to create some constraints (may already exist)", zap.Error(err))
	}

	// Create indexes for better query performance
	log.Info("Creating indexes...")
	if err := createIndexes(ctx, repo); err != nil {
		log.Warn("Failed to create some indexes (may already exist)", zap.Error(err))
	}

	// Skip demo data if users already exist
	existing, err := repo.GetAllUsers(ctx)
	if err != nil {
		log.Fatal("Failed to list users", zap.Error(err))
	}
	if len(existing) > 0 && !*force {
		log.Info("Users already exist, skipping demo data (use -force to seed anyway)",
			zap.Int("users", len(existing)),
		)
		return
	}

	demoUsers := []struct {
		id   string
		name string
	}{
		{"alice", "Alice"},
		{"bob", "Bob"},
		{"carol", "Carol"},
	}

	// Upserts are independent per user, so create them concurrently
	g, gctx := errgroup.WithContext(ctx)
	for _, u := range demoUsers {
		u := u
		g.Go(func() error {
			_, err := repo.UpsertUser(gctx, u.id, u.name)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal("Failed to seed users", zap.Error(err))
	}

	// Posts go through the service so sentiment tags and similarity edges
	// come out the same way they would in production
	recomputer := social.NewRecomputer(repo, cfg.MinCommonWords)
	svc := social.NewService(repo, recomputer)

	demoPosts := []struct {
		userID  string
		content string
	}{
		{"alice", "I love hiking in the mountains, the views are amazing"},
		{"bob", "Terrible weather ruined my hiking trip, so sad"},
		{"carol", "Happy to announce my new sourdough starter is alive"},
	}

	for _, p := range demoPosts {
		post, err := svc.CreatePost(ctx, p.userID, p.content)
		if err != nil {
			log.Fatal("Failed to seed post",
				zap.String("user_id", p.userID),
				zap.Error(err),
			)
		}
		log.Info("Seeded post",
			zap.String("post_id", post.PostID),
			zap.String("user_id", p.userID),
			zap.String("sentiment", post.Sentiment),
		)
	}

	log.Info("Seed completed",
		zap.Int("users", len(demoUsers)),
		zap.Int("posts", len(demoPosts)),
	)
}

// createConstraints creates Neo4j constraints for data integrity
func createConstraints(ctx context.Context, repo *graph.Repository) error {
	constraints := []string{
		"CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.user_id IS UNIQUE",
		"CREATE CONSTRAINT post_id_unique IF NOT EXISTS FOR (p:Post) REQUIRE p.post_id IS UNIQUE",
	}
	return repo.RunSchemaStatements(ctx, constraints)
}

// createIndexes creates Neo4j indexes for the hot query paths
func createIndexes(ctx context.Context, repo *graph.Repository) error {
	indexes := []string{
		"CREATE INDEX user_name IF NOT EXISTS FOR (u:User) ON (u.name)",
		"CREATE INDEX post_timestamp IF NOT EXISTS FOR (p:Post) ON (p.timestamp)",
	}
	return repo.RunSchemaStatements(ctx, indexes)
}
