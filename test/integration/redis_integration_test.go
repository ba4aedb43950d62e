package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	redisrepo "ai-docchat-be/internal/repository/redis"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisReferenceRepository(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}
	client := redis.NewClient(opt)
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Skipping integration test: redis unreachable: %v", err)
	}

	repo := redisrepo.NewReferenceRepository(client, time.Minute)
	sessionID := "it-" + uuid.NewString()
	defer repo.Clear(ctx, sessionID)

	assert.NoError(t, repo.AddReference(ctx, sessionID, "b.txt", "hash-b"))
	assert.NoError(t, repo.AddReference(ctx, sessionID, "a.txt", "hash-a"))

	t.Run("Resolve All Sorted", func(t *testing.T) {
		refs, err := repo.Resolve(ctx, sessionID, nil)
		assert.NoError(t, err)
		assert.Len(t, refs, 2)
		assert.Equal(t, "a.txt", refs[0].DisplayName)
		assert.Equal(t, "b.txt", refs[1].DisplayName)
	})

	t.Run("Resolve Subset Preserves Order", func(t *testing.T) {
		refs, err := repo.Resolve(ctx, sessionID, []string{"b.txt", "missing.txt", "a.txt"})
		assert.NoError(t, err)
		assert.Len(t, refs, 2)
		assert.Equal(t, "b.txt", refs[0].DisplayName)
		assert.Equal(t, "a.txt", refs[1].DisplayName)
	})

	t.Run("Last Write Wins", func(t *testing.T) {
		assert.NoError(t, repo.AddReference(ctx, sessionID, "a.txt", "hash-a2"))
		refs, err := repo.Resolve(ctx, sessionID, []string{"a.txt"})
		assert.NoError(t, err)
		assert.Len(t, refs, 1)
		assert.Equal(t, "hash-a2", refs[0].ContentHash)
	})

	t.Run("Remove And Clear", func(t *testing.T) {
		assert.NoError(t, repo.RemoveReference(ctx, sessionID, "a.txt"))
		refs, err := repo.Resolve(ctx, sessionID, nil)
		assert.NoError(t, err)
		assert.Len(t, refs, 1)

		assert.NoError(t, repo.Clear(ctx, sessionID))
		refs, err = repo.Resolve(ctx, sessionID, nil)
		assert.NoError(t, err)
		assert.Empty(t, refs)
	})
}
