package review

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jinford/jobscope/internal/core/analytics"
	"github.com/jinford/jobscope/internal/core/insight"
	"github.com/jinford/jobscope/internal/core/streak"
	"github.com/jinford/jobscope/pkg/models"
)

// maxDigestInsights はダイジェストに掲載するインサイトの上限件数です
const maxDigestInsights = 3

// WeekRange は集計対象の期間を表します
type WeekRange struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// WeeklyDigest は週次ダイジェストの内容を表します
type WeeklyDigest struct {
	Period          WeekRange         `json:"period"`
	NewApplications int               `json:"newApplications"`
	StatusChanges   int               `json:"statusChanges"`
	Streak          models.StreakData `json:"streak"`
	TopInsights     []models.Insight  `json:"topInsights"`
	Recommendations []string          `json:"recommendations"`
	GeneratedAt     time.Time         `json:"generatedAt"`
}

// ToJSON は WeeklyDigest を JSON 文字列に変換します
func (d *WeeklyDigest) ToJSON() (string, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal weekly digest: %w", err)
	}
	return string(data), nil
}

// DigestService は応募履歴と活動イベントから週次ダイジェストを組み立てるサービスです
type DigestService struct {
	analytics *analytics.Service
	logger    *slog.Logger
}

// DigestServiceOption は DigestService の設定オプションです
type DigestServiceOption func(*DigestService)

// WithDigestLogger はロガーを設定します
func WithDigestLogger(logger *slog.Logger) DigestServiceOption {
	return func(s *DigestService) {
		s.logger = logger
	}
}

// NewDigestService は新しい DigestService を作成します
func NewDigestService(analyticsService *analytics.Service, opts ...DigestServiceOption) *DigestService {
	s := &DigestService{
		analytics: analyticsService,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Build は直近 weeks 週間分の週次ダイジェストを組み立てます
// weeks が 1 未満の場合は 1 週間として扱います
func (s *DigestService) Build(ctx context.Context, userID uuid.UUID, weeks int) (*WeeklyDigest, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id is required")
	}
	if weeks < 1 {
		weeks = 1
	}

	now := time.Now()
	start := now.AddDate(0, 0, -7*weeks)

	// 1. 応募レコードとレポートを取得
	records, err := s.analytics.Records(ctx, userID, analytics.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list job records: %w", err)
	}

	report, err := s.analytics.BuildReport(ctx, userID, now, analytics.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to build analytics report: %w", err)
	}

	// 2. 活動イベントを取得
	// ストリーク算出には集計期間より長い観測窓が必要になることがある
	since := start
	if lookback := now.AddDate(0, 0, -streak.LookbackDays); lookback.Before(since) {
		since = lookback
	}

	events, err := s.analytics.Activities(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity events: %w", err)
	}

	// 3. 期間内の件数を集計
	newApplications := 0
	for _, r := range records {
		if !r.CreatedAt.Before(start) && !r.CreatedAt.After(now) {
			newApplications++
		}
	}

	statusChanges := 0
	goalsCompleted := 0
	for _, ev := range events {
		if ev.OccurredAt.Before(start) {
			continue
		}
		switch ev.Type {
		case models.ActivityStatusChanged:
			statusChanges++
		case models.ActivityGoalCompleted:
			goalsCompleted++
		}
	}

	// 4. ストリークとインサイトを組み立て
	streakData := streak.Calculate(events, now)

	insights := insight.BuildNarrative(insight.InputFromReport(report, goalsCompleted))
	if len(insights) > maxDigestInsights {
		insights = insights[:maxDigestInsights]
	}

	patterns := insight.IdentifyPatterns(records)
	recommendations := insight.GenerateRecommendations(records, patterns)

	digest := &WeeklyDigest{
		Period: WeekRange{
			StartDate: start,
			EndDate:   now,
		},
		NewApplications: newApplications,
		StatusChanges:   statusChanges,
		Streak:          streakData,
		TopInsights:     insights,
		Recommendations: recommendations,
		GeneratedAt:     now,
	}

	s.logger.Debug("weekly digest built",
		"user_id", userID,
		"weeks", weeks,
		"new_applications", newApplications,
		"status_changes", statusChanges)

	return digest, nil
}
