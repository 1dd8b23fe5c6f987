package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jinford/jobscope/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePredictionSet() *models.PredictionSet {
	return &models.PredictionSet{
		UserID:      uuid.MustParse("9a3b1c2d-4e5f-6071-8293-a4b5c6d7e8f9"),
		Fingerprint: "v1_deadbeef",
		Predictions: []models.PredictionResult{
			{Kind: models.PredictionInterviewProbability, Score: 0.44, Confidence: 0.6, Simulated: true},
		},
		Simulated:   true,
		GeneratedAt: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
	}
}

func TestPredictionCache_SetAndGet(t *testing.T) {
	cache := NewPredictionCache(time.Minute)
	ctx := context.Background()

	want := samplePredictionSet()
	require.NoError(t, cache.Set(ctx, "prediction:u:v1_deadbeef", want))

	got, err := cache.Get(ctx, "prediction:u:v1_deadbeef")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Fingerprint, got.Fingerprint)
	assert.Equal(t, want.Predictions, got.Predictions)
}

func TestPredictionCache_Miss(t *testing.T) {
	cache := NewPredictionCache(time.Minute)

	got, err := cache.Get(context.Background(), "prediction:u:missing")
	require.NoError(t, err, "ミスはエラーではないべき")
	assert.Nil(t, got)
}

func TestPredictionCache_Expiry(t *testing.T) {
	cache := NewPredictionCache(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", samplePredictionSet()))

	time.Sleep(30 * time.Millisecond)

	got, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.Nil(t, got, "有効期間を過ぎたエントリはミスになるべき")
}

func TestPredictionCache_Overwrite(t *testing.T) {
	cache := NewPredictionCache(time.Minute)
	ctx := context.Background()

	first := samplePredictionSet()
	require.NoError(t, cache.Set(ctx, "key", first))

	second := samplePredictionSet()
	second.Fingerprint = "v1_cafebabe"
	require.NoError(t, cache.Set(ctx, "key", second))

	got, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "v1_cafebabe", got.Fingerprint)
}

func TestPredictionCache_ZeroTTLFallsBack(t *testing.T) {
	cache := NewPredictionCache(0)
	assert.Equal(t, DefaultTTL, cache.ttl)
}

func TestPredictionCache_ConcurrentAccess(t *testing.T) {
	cache := NewPredictionCache(time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = cache.Set(ctx, "shared", samplePredictionSet())
		}()
		go func() {
			defer wg.Done()
			_, _ = cache.Get(ctx, "shared")
		}()
	}
	wg.Wait()

	got, err := cache.Get(ctx, "shared")
	require.NoError(t, err)
	assert.NotNil(t, got)
}
