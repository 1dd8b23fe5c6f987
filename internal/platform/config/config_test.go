package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "jobscope", cfg.Database.DBName)

	// Redisは未設定がデフォルト（インメモリキャッシュを選択）
	assert.Equal(t, "", cfg.Redis.Addr)
	assert.Equal(t, 24, cfg.Redis.TTLHours)

	// 予測APIも未設定がデフォルト（常にシミュレーション）
	assert.Equal(t, "", cfg.Forecast.BaseURL)
	assert.Equal(t, 10, cfg.Forecast.TimeoutSeconds)

	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.InDelta(t, 0.7, cfg.OpenAI.Temperature, 1e-9)

	assert.Equal(t, "0 9 * * 1", cfg.Review.CronSchedule)
	assert.Equal(t, 1, cfg.Review.WeekRange)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.example.com")
	t.Setenv("DB_PORT", "15432")
	t.Setenv("REDIS_ADDR", "cache.example.com:6379")
	t.Setenv("FORECAST_BASE_URL", "https://forecast.example.com")
	t.Setenv("OPENAI_TEMPERATURE", "0.2")
	t.Setenv("REVIEW_WEEK_RANGE", "2")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "db.example.com", cfg.Database.Host)
	assert.Equal(t, 15432, cfg.Database.Port)
	assert.Equal(t, "cache.example.com:6379", cfg.Redis.Addr)
	assert.Equal(t, "https://forecast.example.com", cfg.Forecast.BaseURL)
	assert.InDelta(t, 0.2, cfg.OpenAI.Temperature, 1e-9)
	assert.Equal(t, 2, cfg.Review.WeekRange)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("OPENAI_TEMPERATURE", "warm")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port, "数値として解釈できない値はデフォルトに戻るべき")
	assert.InDelta(t, 0.7, cfg.OpenAI.Temperature, 1e-9)
}

func TestLoad_EnvFile(t *testing.T) {
	tmpDir := t.TempDir()
	envPath := filepath.Join(tmpDir, ".env")

	content := "DB_NAME=jobscope_staging\nREVIEW_CRON_SCHEDULE=0 8 * * 5\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0644))

	// godotenv は既存の環境変数を上書きしないため、先に消しておく
	t.Setenv("DB_NAME", "")
	os.Unsetenv("DB_NAME")
	t.Setenv("REVIEW_CRON_SCHEDULE", "")
	os.Unsetenv("REVIEW_CRON_SCHEDULE")

	cfg, err := Load(envPath)
	require.NoError(t, err)

	assert.Equal(t, "jobscope_staging", cfg.Database.DBName)
	assert.Equal(t, "0 8 * * 5", cfg.Review.CronSchedule)
}

func TestLoad_MissingEnvFileIsNotAnError(t *testing.T) {
	cfg, err := Load("/nonexistent/.env")
	require.NoError(t, err, "存在しない.envは環境変数のみで動作すべき")
	assert.NotNil(t, cfg)
}
