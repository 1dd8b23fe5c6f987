package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定を保持します
type Config struct {
	// Database設定（イベントストア）
	Database DatabaseConfig

	// Redis設定（未設定の場合はインメモリキャッシュを使用）
	Redis RedisConfig

	// リモート予測API設定
	Forecast ForecastConfig

	// OpenAI設定（コーチ用LLM）
	OpenAI OpenAIConfig

	// 週次ダイジェスト設定
	Review ReviewConfig

	// ベンチマークテーブル設定
	Benchmarks BenchmarksConfig

	// ログ設定
	Log LogConfig
}

// DatabaseConfig はデータベース接続設定
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig は予測キャッシュ用のRedis設定
type RedisConfig struct {
	Addr     string // 空文字の場合はインメモリキャッシュにフォールバック
	Password string
	DB       int
	TTLHours int
}

// ForecastConfig はリモート予測APIの設定
type ForecastConfig struct {
	BaseURL        string // 空文字の場合はリモート予測を無効化（常にシミュレーション）
	APIKey         string
	TimeoutSeconds int
}

// OpenAIConfig はOpenAI API設定（コーチ用LLM）
type OpenAIConfig struct {
	APIKey      string
	Model       string
	Temperature float64
}

// ReviewConfig は週次ダイジェストジョブの設定
type ReviewConfig struct {
	CronSchedule string
	WeekRange    int
	OutputFile   string // 空文字の場合は標準出力のみに通知
}

// BenchmarksConfig は業界ベンチマークテーブルの設定
type BenchmarksConfig struct {
	FilePath string // 空文字の場合は組み込みのデフォルトテーブル
}

// LogConfig はログ出力の設定
type LogConfig struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "json" or "text"
}

// Load は環境変数または.envファイルから設定を読み込みます
func Load(envFilePath string) (*Config, error) {
	// .envファイルが存在する場合は読み込む
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			// ファイルが存在しない場合はエラーとしない（環境変数のみで動作可能）
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load .env file: %w", err)
			}
		}
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "jobscope"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "jobscope"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTLHours: getEnvAsInt("PREDICTION_CACHE_TTL_HOURS", 24),
		},
		Forecast: ForecastConfig{
			BaseURL:        getEnv("FORECAST_BASE_URL", ""),
			APIKey:         getEnv("FORECAST_API_KEY", ""),
			TimeoutSeconds: getEnvAsInt("FORECAST_TIMEOUT_SECONDS", 10),
		},
		OpenAI: OpenAIConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Model:       getEnv("OPENAI_LLM_MODEL", "gpt-4o-mini"),
			Temperature: getEnvAsFloat("OPENAI_TEMPERATURE", 0.7),
		},
		Review: ReviewConfig{
			CronSchedule: getEnv("REVIEW_CRON_SCHEDULE", "0 9 * * 1"), // 毎週月曜9:00
			WeekRange:    getEnvAsInt("REVIEW_WEEK_RANGE", 1),
			OutputFile:   getEnv("REVIEW_OUTPUT_FILE", ""),
		},
		Benchmarks: BenchmarksConfig{
			FilePath: getEnv("BENCHMARKS_FILE", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt は環境変数を整数として取得します
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsFloat は環境変数を浮動小数点数として取得します
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
