package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4jURI)
	assert.Equal(t, 30*time.Second, cfg.Neo4jMaxRetryTime)
	assert.Equal(t, 1, cfg.MinCommonWords)
	assert.Equal(t, 10, cfg.RecentPostsLimit)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MIN_COMMON_WORDS", "3")
	t.Setenv("NEO4J_MAX_RETRY_TIME", "5")
	t.Setenv("ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	assert.Equal(t, 3, cfg.MinCommonWords)
	assert.Equal(t, 5*time.Second, cfg.Neo4jMaxRetryTime)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}

func TestValidate_RejectsBadThreshold(t *testing.T) {
	t.Setenv("MIN_COMMON_WORDS", "0")

	_, err := Load()
	assert.Error(t, err)
}
