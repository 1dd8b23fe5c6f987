package container

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkoukk/tiktoken-go"
	goredis "github.com/redis/go-redis/v9"

	coreanalytics "github.com/jinford/jobscope/internal/core/analytics"
	corecoach "github.com/jinford/jobscope/internal/core/coach"
	coreprediction "github.com/jinford/jobscope/internal/core/prediction"
	corereview "github.com/jinford/jobscope/internal/core/review"
	"github.com/jinford/jobscope/internal/infra/forecast"
	"github.com/jinford/jobscope/internal/infra/memory"
	"github.com/jinford/jobscope/internal/infra/openai"
	"github.com/jinford/jobscope/internal/infra/postgres"
	infraredis "github.com/jinford/jobscope/internal/infra/redis"
	"github.com/jinford/jobscope/internal/platform/config"
	"github.com/jinford/jobscope/internal/platform/database"
)

// ServiceContainer は core/infra の依存関係を保持する。
// CoachService は OpenAI API キーが未設定の場合 nil になる（他のサービスは動作する）。
type ServiceContainer struct {
	AnalyticsService  *coreanalytics.Service
	PredictionService *coreprediction.Service
	CoachService      *corecoach.Service
	DigestService     *corereview.DigestService
	JobStore          coreanalytics.JobStore

	logger   *slog.Logger
	database *database.DB
	redis    *goredis.Client
}

type containerOptions struct {
	logger       *slog.Logger
	jobStore     coreanalytics.JobStore
	cache        coreprediction.Cache
	forecaster   coreprediction.Forecaster
	llmClient    corecoach.LLMClient
	tokenCounter corecoach.TokenCounter
	sampler      coreanalytics.CustomizationSampler
}

// ContainerOption は ServiceContainer 構築時のオプション
type ContainerOption func(*containerOptions)

// WithContainerLogger はロガーを差し替える
func WithContainerLogger(logger *slog.Logger) ContainerOption {
	return func(opts *containerOptions) {
		opts.logger = logger
	}
}

// WithContainerJobStore はイベントストアアクセサを差し替える
func WithContainerJobStore(store coreanalytics.JobStore) ContainerOption {
	return func(opts *containerOptions) {
		opts.jobStore = store
	}
}

// WithContainerCache は予測キャッシュを差し替える
func WithContainerCache(cache coreprediction.Cache) ContainerOption {
	return func(opts *containerOptions) {
		opts.cache = cache
	}
}

// WithContainerForecaster はリモート予測クライアントを差し替える
func WithContainerForecaster(forecaster coreprediction.Forecaster) ContainerOption {
	return func(opts *containerOptions) {
		opts.forecaster = forecaster
	}
}

// WithContainerLLMClient は LLM クライアントを差し替える
func WithContainerLLMClient(client corecoach.LLMClient) ContainerOption {
	return func(opts *containerOptions) {
		opts.llmClient = client
	}
}

// WithContainerTokenCounter は TokenCounter を差し替える
func WithContainerTokenCounter(counter corecoach.TokenCounter) ContainerOption {
	return func(opts *containerOptions) {
		opts.tokenCounter = counter
	}
}

// WithContainerSampler は書類カスタマイズのサンプラーを差し替える
func WithContainerSampler(sampler coreanalytics.CustomizationSampler) ContainerOption {
	return func(opts *containerOptions) {
		opts.sampler = sampler
	}
}

// NewContainer は設定からコンテナを生成する。
func NewContainer(ctx context.Context, cfg *config.Config, opts ...ContainerOption) (*ServiceContainer, error) {
	db, err := database.New(ctx, database.ConnectionParams{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return nil, fmt.Errorf("データベース初期化に失敗しました: %w", err)
	}

	return NewContainerWithDB(ctx, cfg, db, opts...)
}

// NewContainerWithDB は既存の DB を受け取りコンテナを生成する。
// JobStore をオプションで注入する場合は db が nil でもよい。
func NewContainerWithDB(ctx context.Context, cfg *config.Config, db *database.DB, opts ...ContainerOption) (*ServiceContainer, error) {
	options := containerOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	// JobStore (PostgreSQL)
	jobStore := options.jobStore
	if jobStore == nil {
		if db == nil {
			return nil, fmt.Errorf("イベントストアが構成されていません")
		}
		jobStore = postgres.NewJobStore(db.Pool)
	}

	// AnalyticsService
	analyticsOpts := []coreanalytics.ServiceOption{
		coreanalytics.WithAnalyticsLogger(options.logger),
	}
	if cfg.Benchmarks.FilePath != "" {
		table, err := coreanalytics.LoadBenchmarks(cfg.Benchmarks.FilePath)
		if err != nil {
			return nil, fmt.Errorf("ベンチマークテーブルの読み込みに失敗しました: %w", err)
		}
		analyticsOpts = append(analyticsOpts, coreanalytics.WithBenchmarkTable(table))
	}
	if options.sampler != nil {
		analyticsOpts = append(analyticsOpts, coreanalytics.WithCustomizationSampler(options.sampler))
	}
	analyticsService := coreanalytics.NewService(jobStore, analyticsOpts...)

	// PredictionCache (Redis、未設定ならインメモリ)
	var redisClient *goredis.Client
	cache := options.cache
	if cache == nil {
		ttl := time.Duration(cfg.Redis.TTLHours) * time.Hour
		if cfg.Redis.Addr != "" {
			client, err := infraredis.NewClient(ctx, infraredis.Config{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			if err != nil {
				return nil, fmt.Errorf("Redis初期化に失敗しました: %w", err)
			}
			redisClient = client
			cache = infraredis.NewPredictionCache(client, ttl)
		} else {
			cache = memory.NewPredictionCache(ttl)
		}
	}

	// Forecaster (ベースURL未設定ならリモート予測なし = 常にシミュレーション)
	forecaster := options.forecaster
	if forecaster == nil && cfg.Forecast.BaseURL != "" {
		client, err := forecast.NewClient(
			cfg.Forecast.BaseURL,
			cfg.Forecast.APIKey,
			forecast.WithTimeout(time.Duration(cfg.Forecast.TimeoutSeconds)*time.Second),
		)
		if err != nil {
			return nil, fmt.Errorf("予測APIクライアント初期化に失敗しました: %w", err)
		}
		forecaster = client
	}

	// PredictionService
	predictionService := coreprediction.NewService(
		cache,
		forecaster,
		coreprediction.WithPredictionLogger(options.logger),
	)

	// CoachService (APIキーが無ければ組み立てない)
	llmClient := options.llmClient
	if llmClient == nil && cfg.OpenAI.APIKey != "" {
		openaiClient, err := openai.NewClientWithAPIKey(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		if err != nil {
			return nil, fmt.Errorf("OpenAI LLMクライアント初期化に失敗しました: %w", err)
		}
		openaiClient.SetTemperature(cfg.OpenAI.Temperature)
		llmClient = openaiClient
	}

	var coachService *corecoach.Service
	if llmClient != nil {
		counter := options.tokenCounter
		if counter == nil {
			var err error
			counter, err = newTokenCounter()
			if err != nil {
				return nil, fmt.Errorf("TokenCounter 初期化に失敗しました: %w", err)
			}
		}

		coachService = corecoach.NewService(
			analyticsService,
			llmClient,
			corecoach.WithCoachLogger(options.logger),
			corecoach.WithTokenCounter(counter),
		)
	}

	// DigestService
	digestService := corereview.NewDigestService(
		analyticsService,
		corereview.WithDigestLogger(options.logger),
	)

	return &ServiceContainer{
		AnalyticsService:  analyticsService,
		PredictionService: predictionService,
		CoachService:      coachService,
		DigestService:     digestService,
		JobStore:          jobStore,
		logger:            options.logger,
		database:          db,
		redis:             redisClient,
	}, nil
}

// Close は内部リソースを解放する。
func (c *ServiceContainer) Close() {
	if c == nil {
		return
	}
	if c.redis != nil {
		_ = c.redis.Close()
	}
	if c.database != nil {
		c.database.Close()
	}
}

// Logger はロガーを返す。
func (c *ServiceContainer) Logger() *slog.Logger {
	if c == nil || c.logger == nil {
		return slog.Default()
	}
	return c.logger
}

// tokenCounter は tiktoken を利用した TokenCounter 実装。
type tokenCounter struct {
	encoding *tiktoken.Tiktoken
}

func newTokenCounter() (*tokenCounter, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to load tiktoken encoding: %w", err)
	}
	return &tokenCounter{encoding: enc}, nil
}

func (t *tokenCounter) CountTokens(text string) int {
	if t.encoding == nil {
		return 0
	}
	return len(t.encoding.Encode(text, nil, nil))
}

func (t *tokenCounter) TrimToTokenLimit(text string, maxTokens int) string {
	if t.encoding == nil {
		return text
	}
	tokens := t.encoding.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return t.encoding.Decode(tokens[:maxTokens])
}
