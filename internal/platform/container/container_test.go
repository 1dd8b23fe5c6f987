package container

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinford/jobscope/internal/platform/config"
	"github.com/jinford/jobscope/pkg/models"
)

type stubContainerStore struct{}

func (s *stubContainerStore) ListJobRecords(ctx context.Context, userID uuid.UUID) ([]models.JobRecord, error) {
	return nil, nil
}

func (s *stubContainerStore) ListActivityEvents(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.ActivityEvent, error) {
	return nil, nil
}

type stubContainerLLM struct{}

func (s *stubContainerLLM) GenerateCompletion(ctx context.Context, prompt string) (string, error) {
	return "ok", nil
}

type stubContainerTokenCounter struct{}

func (s *stubContainerTokenCounter) CountTokens(text string) int {
	return len(text)
}

func (s *stubContainerTokenCounter) TrimToTokenLimit(text string, maxTokens int) string {
	return text
}

func testContainerConfig() *config.Config {
	return &config.Config{
		Redis: config.RedisConfig{
			TTLHours: 1,
		},
		Forecast: config.ForecastConfig{
			TimeoutSeconds: 5,
		},
	}
}

func TestNewContainerWithDB(t *testing.T) {
	t.Run("ストアを注入すればDBなしで構築できる", func(t *testing.T) {
		c, err := NewContainerWithDB(context.Background(), testContainerConfig(), nil,
			WithContainerJobStore(&stubContainerStore{}),
		)
		require.NoError(t, err)
		defer c.Close()

		assert.NotNil(t, c.AnalyticsService, "AnalyticsService が構築されるべき")
		assert.NotNil(t, c.PredictionService, "PredictionService が構築されるべき")
		assert.NotNil(t, c.DigestService, "DigestService が構築されるべき")
		assert.NotNil(t, c.JobStore, "JobStore が保持されるべき")
	})

	t.Run("ストアもDBもない場合はエラーになる", func(t *testing.T) {
		_, err := NewContainerWithDB(context.Background(), testContainerConfig(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "イベントストアが構成されていません")
	})

	t.Run("APIキーなしではCoachServiceはnilになる", func(t *testing.T) {
		c, err := NewContainerWithDB(context.Background(), testContainerConfig(), nil,
			WithContainerJobStore(&stubContainerStore{}),
		)
		require.NoError(t, err)
		defer c.Close()

		assert.Nil(t, c.CoachService, "LLMが構成されていなければ CoachService は nil であるべき")
	})

	t.Run("LLMクライアントを注入すればCoachServiceが構築される", func(t *testing.T) {
		c, err := NewContainerWithDB(context.Background(), testContainerConfig(), nil,
			WithContainerJobStore(&stubContainerStore{}),
			WithContainerLLMClient(&stubContainerLLM{}),
			WithContainerTokenCounter(&stubContainerTokenCounter{}),
		)
		require.NoError(t, err)
		defer c.Close()

		assert.NotNil(t, c.CoachService, "LLMクライアントがあれば CoachService が構築されるべき")
	})

	t.Run("存在しないベンチマークファイルはエラーになる", func(t *testing.T) {
		cfg := testContainerConfig()
		cfg.Benchmarks.FilePath = "/nonexistent/benchmarks.yaml"

		_, err := NewContainerWithDB(context.Background(), cfg, nil,
			WithContainerJobStore(&stubContainerStore{}),
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ベンチマークテーブルの読み込みに失敗しました")
	})

	t.Run("Redis未設定ならインメモリキャッシュで動作する", func(t *testing.T) {
		cfg := testContainerConfig()
		cfg.Redis.Addr = ""

		c, err := NewContainerWithDB(context.Background(), cfg, nil,
			WithContainerJobStore(&stubContainerStore{}),
		)
		require.NoError(t, err)
		defer c.Close()

		assert.NotNil(t, c.PredictionService)
	})
}

func TestServiceContainer_Logger(t *testing.T) {
	t.Run("nilコンテナでもデフォルトロガーを返す", func(t *testing.T) {
		var c *ServiceContainer
		assert.NotNil(t, c.Logger(), "nil レシーバでも Logger は nil を返さないべき")
	})
}

func TestServiceContainer_Close(t *testing.T) {
	t.Run("nilコンテナのCloseはパニックしない", func(t *testing.T) {
		var c *ServiceContainer
		assert.NotPanics(t, func() { c.Close() })
	})
}
