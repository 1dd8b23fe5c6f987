package coach

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jinford/jobscope/internal/core/analytics"
	"github.com/jinford/jobscope/internal/core/insight"
	"github.com/jinford/jobscope/internal/core/streak"
)

// LLMClient はLLM通信インターフェース
type LLMClient interface {
	GenerateCompletion(ctx context.Context, prompt string) (string, error)
}

// Service は求職コーチングのビジネスロジックを提供する
type Service struct {
	analytics *analytics.Service
	llm       LLMClient
	tokens    TokenCounter // nil の場合はトリムとカウントを行わない
	logger    *slog.Logger
}

type ServiceOption func(*Service)

// WithCoachLogger は Service にロガーを設定する
func WithCoachLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTokenCounter はトークンカウンタを設定する
func WithTokenCounter(counter TokenCounter) ServiceOption {
	return func(s *Service) {
		s.tokens = counter
	}
}

// NewService は新しい Service を作成する
func NewService(analyticsService *analytics.Service, llm LLMClient, opts ...ServiceOption) *Service {
	svc := &Service{
		analytics: analyticsService,
		llm:       llm,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(svc)
	}

	if svc.logger == nil {
		svc.logger = slog.Default()
	}

	return svc
}

// Advise は応募履歴の集計からコーチングアドバイスを生成する
func (s *Service) Advise(ctx context.Context, params AdviceParams) (*Advice, error) {
	// 1. バリデーション
	if params.UserID == uuid.Nil {
		return nil, fmt.Errorf("userID is required")
	}
	if s.llm == nil {
		return nil, fmt.Errorf("LLM client is not configured")
	}

	// 2. 集計データの準備
	now := time.Now()
	report, err := s.analytics.BuildReport(ctx, params.UserID, now, analytics.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to build analytics report: %w", err)
	}

	records, err := s.analytics.Records(ctx, params.UserID, analytics.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list job records: %w", err)
	}

	events, err := s.analytics.Activities(ctx, params.UserID, now.AddDate(0, 0, -streak.LookbackDays))
	if err != nil {
		return nil, fmt.Errorf("failed to list activity events: %w", err)
	}

	streakData := streak.Calculate(events, now)
	patterns := insight.IdentifyPatterns(records)

	// 3. プロンプト構築（上限トークンまで切り詰め）
	prompt := BuildCoachPrompt(report, streakData, patterns, params)
	promptTokens := 0
	if s.tokens != nil {
		prompt = s.tokens.TrimToTokenLimit(prompt, PromptTokenBudget)
		promptTokens = s.tokens.CountTokens(prompt)
	}

	s.logger.Info("generating coach advice",
		"userID", params.UserID.String(),
		"promptTokens", promptTokens,
		"patterns", len(patterns),
	)

	// 4. LLMでアドバイス生成
	summary, err := s.llm.GenerateCompletion(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate advice: %w", err)
	}

	return &Advice{
		Summary:      summary,
		PromptTokens: promptTokens,
	}, nil
}
