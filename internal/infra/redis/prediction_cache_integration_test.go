package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jinford/jobscope/pkg/models"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis は使い捨ての Redis コンテナを起動します
// Docker が利用できない環境ではテストをスキップします
func setupTestRedis(t *testing.T) *goredis.Client {
	t.Helper()

	dockerPool, err := dockertest.NewPool("")
	if err != nil {
		t.Skip("Docker に接続できません。統合テストをスキップします:", err)
	}
	if err := dockerPool.Client.Ping(); err != nil {
		t.Skip("Docker に接続できません。統合テストをスキップします:", err)
	}

	resource, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7-alpine",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = dockerPool.Purge(resource)
	})

	addr := fmt.Sprintf("localhost:%s", resource.GetPort("6379/tcp"))

	var client *goredis.Client
	err = dockerPool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var retryErr error
		client, retryErr = NewClient(ctx, Config{Addr: addr})
		return retryErr
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func testPredictionSet() *models.PredictionSet {
	return &models.PredictionSet{
		UserID:      uuid.MustParse("9a3b1c2d-4e5f-6071-8293-a4b5c6d7e8f9"),
		Fingerprint: "v1_deadbeef",
		Predictions: []models.PredictionResult{
			{
				Kind:       models.PredictionInterviewProbability,
				Score:      0.44,
				Confidence: 0.6,
				Interval:   &models.ConfidenceInterval{Lower: 0.34, Upper: 0.54},
				Simulated:  true,
			},
		},
		Simulated:   true,
		GeneratedAt: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
	}
}

// TestPredictionCache_Integration は Redis キャッシュアダプタの統合テストです
func TestPredictionCache_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("統合テストをスキップします")
	}

	client := setupTestRedis(t)
	ctx := context.Background()

	t.Run("保存した予測一式をJSON経由で復元できる", func(t *testing.T) {
		cache := NewPredictionCache(client, time.Minute)

		want := testPredictionSet()
		require.NoError(t, cache.Set(ctx, "prediction:u1:v1_deadbeef", want))

		got, err := cache.Get(ctx, "prediction:u1:v1_deadbeef")
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, want.UserID, got.UserID)
		assert.Equal(t, want.Fingerprint, got.Fingerprint)
		require.Len(t, got.Predictions, 1)
		assert.Equal(t, want.Predictions[0].Kind, got.Predictions[0].Kind)
		assert.InDelta(t, want.Predictions[0].Score, got.Predictions[0].Score, 1e-9)
		require.NotNil(t, got.Predictions[0].Interval)
		assert.InDelta(t, 0.34, got.Predictions[0].Interval.Lower, 1e-9)
		assert.True(t, got.Simulated)
		assert.True(t, want.GeneratedAt.Equal(got.GeneratedAt))
	})

	t.Run("存在しないキーはミスとしてnilを返す", func(t *testing.T) {
		cache := NewPredictionCache(client, time.Minute)

		got, err := cache.Get(ctx, "prediction:u1:missing")
		require.NoError(t, err, "redis.Nil はエラーではなくミスとして扱うべき")
		assert.Nil(t, got)
	})

	t.Run("TTL経過後はエントリが失効する", func(t *testing.T) {
		cache := NewPredictionCache(client, time.Second)

		require.NoError(t, cache.Set(ctx, "prediction:u1:short", testPredictionSet()))

		got, err := cache.Get(ctx, "prediction:u1:short")
		require.NoError(t, err)
		require.NotNil(t, got)

		time.Sleep(1500 * time.Millisecond)

		got, err = cache.Get(ctx, "prediction:u1:short")
		require.NoError(t, err)
		assert.Nil(t, got, "TTL経過後はミスになるべき")
	})
}
