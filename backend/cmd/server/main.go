package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sociograph/backend/internal/graph"
	"sociograph/backend/internal/social"
	"sociograph/backend/pkg/config"
	apperrors "sociograph/backend/pkg/errors"
	"sociograph/backend/pkg/logger"
)

func main() {
	// Initialize logger
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting HTTP API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize graph repository and establish the connection up front
	repo := graph.NewRepository(cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jMaxRetryTime)
	if err := repo.Connect(context.Background()); err != nil {
		log.Fatal("Failed to connect to Neo4j", zap.Error(err))
	}
	defer repo.Close()

	// Initialize services
	recomputer := social.NewRecomputer(repo, cfg.MinCommonWords)
	svc := social.NewService(repo, recomputer)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		if err := repo.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api")
	{
		// Create or update a user
		api.POST("/users", func(c *gin.Context) {
			var req struct {
				UserID string `json:"user_id" binding:"required"`
				Name   string `json:"name" binding:"required"`
			}

			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			user, err := svc.CreateUser(c.Request.Context(), req.UserID, req.Name)
			if err != nil {
				respondStoreError(c, log, "Failed to upsert user", err)
				return
			}

			c.JSON(http.StatusOK, user)
		})

		// List users ordered by name
		api.GET("/users", func(c *gin.Context) {
			users, err := svc.ListUsers(c.Request.Context())
			if err != nil {
				respondStoreError(c, log, "Failed to list users", err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"users": users})
		})

		// Create a post; triggers the similarity rebuild before responding
		api.POST("/posts", func(c *gin.Context) {
			var req struct {
				UserID  string `json:"user_id" binding:"required"`
				Content string `json:"content" binding:"required"`
			}

			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			post, err := svc.CreatePost(c.Request.Context(), req.UserID, req.Content)
			if err != nil {
				var notFound graph.ErrUserNotFound
				if errors.As(err, &notFound) {
					c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
					return
				}
				respondStoreError(c, log, "Failed to create post", err)
				return
			}

			c.JSON(http.StatusCreated, post)
		})

		// List one user's posts, newest first
		api.GET("/users/:id/posts", func(c *gin.Context) {
			posts, err := svc.ListUserPosts(c.Request.Context(), c.Param("id"))
			if err != nil {
				respondStoreError(c, log, "Failed to list user posts", err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"posts": posts})
		})

		// Recent non-deleted posts with authors
		api.GET("/posts/recent", func(c *gin.Context) {
			limit := 0
			if raw := c.Query("limit"); raw != "" {
				parsed, err := strconv.Atoi(raw)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
					return
				}
				limit = parsed
			}

			posts, err := svc.ListRecentPosts(c.Request.Context(), limit)
			if err != nil {
				respondStoreError(c, log, "Failed to list recent posts", err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"posts": posts})
		})

		// Soft-delete a post
		api.DELETE("/posts/:id", func(c *gin.Context) {
			err := svc.DeletePost(c.Request.Context(), c.Param("id"))
			if err != nil {
				var notFound graph.ErrPostNotFound
				if errors.As(err, &notFound) {
					c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
					return
				}
				respondStoreError(c, log, "Failed to delete post", err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "deleted"})
		})
	}

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// respondStoreError maps store failures to HTTP statuses: connectivity
// exhaustion becomes 503, everything else 500
func respondStoreError(c *gin.Context, log *zap.Logger, msg string, err error) {
	log.Error(msg, zap.Error(err))

	var connErr *apperrors.ErrGraphConnectionFailed
	if errors.As(err, &connErr) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store unavailable"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// ginLogger is a custom logger middleware for Gin
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}
