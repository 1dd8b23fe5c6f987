package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jinford/jobscope/pkg/models"
)

// TrendWindowDays は日次トレンドの集計ウィンドウ（日数）です
const TrendWindowDays = 14

// Service は応募履歴の集計ロジックを提供するサービスです
// イベントストアから取得したレコードを純粋関数群に渡してレポートを組み立てます
type Service struct {
	store      JobStore
	benchmarks BenchmarkTable
	sampler    CustomizationSampler
	logger     *slog.Logger
}

// ServiceOption は Service 構築時のオプション
type ServiceOption func(*Service)

// WithAnalyticsLogger はロガーを差し替えます
func WithAnalyticsLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithBenchmarkTable は組み込みの代わりに使うベンチマークテーブルを設定します
func WithBenchmarkTable(table BenchmarkTable) ServiceOption {
	return func(s *Service) {
		s.benchmarks = table
	}
}

// WithCustomizationSampler は書類カスタマイズ率のサンプラーを差し替えます
func WithCustomizationSampler(sampler CustomizationSampler) ServiceOption {
	return func(s *Service) {
		s.sampler = sampler
	}
}

// NewService は新しい Service を作成します
func NewService(store JobStore, opts ...ServiceOption) *Service {
	s := &Service{
		store:      store,
		benchmarks: DefaultBenchmarks(),
		sampler:    NewHeuristicSampler(time.Now().UnixNano()),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BenchmarkTable は設定済みのベンチマークテーブルを返します
func (s *Service) BenchmarkTable() BenchmarkTable {
	return s.benchmarks
}

// Records は応募レコードを取得してフィルタを適用します
// 未認証（userID が Nil）の場合はエラーにせず空を返します
func (s *Service) Records(ctx context.Context, userID uuid.UUID, filter Filter) ([]models.JobRecord, error) {
	if userID == uuid.Nil {
		return nil, nil
	}

	records, err := s.store.ListJobRecords(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list job records: %w", err)
	}
	return filter.Apply(records), nil
}

// Activities は since 以降の活動イベントを取得します
func (s *Service) Activities(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.ActivityEvent, error) {
	if userID == uuid.Nil {
		return nil, nil
	}

	events, err := s.store.ListActivityEvents(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity events: %w", err)
	}
	return events, nil
}

// SuccessRates は指定の軸で成功率を集計します
func (s *Service) SuccessRates(ctx context.Context, userID uuid.UUID, groupBy GroupBy, filter Filter) ([]models.GroupRate, error) {
	records, err := s.Records(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return SuccessRateByGroup(records, groupBy), nil
}

// ResponseTimings は指定の軸で平均応答日数を集計します
func (s *Service) ResponseTimings(ctx context.Context, userID uuid.UUID, groupBy GroupBy, filter Filter) ([]models.GroupTiming, error) {
	records, err := s.Records(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return AverageResponseDaysByGroup(records, groupBy), nil
}

// BenchmarkComparison は業界別成功率をベンチマークと比較します
func (s *Service) BenchmarkComparison(ctx context.Context, userID uuid.UUID, filter Filter) ([]models.BenchmarkDelta, error) {
	records, err := s.Records(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return CompareWithBenchmarks(records, s.benchmarks), nil
}

// BuildReport はユーザーの応募履歴から統合レポートを組み立てます
func (s *Service) BuildReport(ctx context.Context, userID uuid.UUID, now time.Time, filter Filter) (*models.AnalyticsReport, error) {
	records, err := s.Records(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("building analytics report", "user_id", userID, "records", len(records))

	return &models.AnalyticsReport{
		TotalApplications: len(records),
		SuccessByIndustry: SuccessRateByGroup(records, GroupByIndustry),
		SuccessByJobType:  SuccessRateByGroup(records, GroupByJobType),
		TimingByIndustry:  AverageResponseDaysByGroup(records, GroupByIndustry),
		ResponseRate:      ResponseRate(records),
		Funnel:            FunnelStages(records),
		DailySeries:       DailySeries(records, now),
		Deadlines:         DeadlineAdherence(records),
		TimeToOfferDays:   TimeToOffer(records),
		Materials:         materialStats(records, s.sampler),
		Benchmarks:        CompareWithBenchmarks(records, s.benchmarks),
		GeneratedAt:       now,
	}, nil
}

// SuccessRateByGroup は指定の軸ごとに内定率を集計します
// 成功率の降順、同率ならグループ名の昇順で返します
func SuccessRateByGroup(records []models.JobRecord, groupBy GroupBy) []models.GroupRate {
	type bucket struct {
		offers int
		total  int
	}

	// 集計
	buckets := make(map[string]*bucket)
	for i := range records {
		key := groupKey(&records[i], groupBy)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.total++
		if records[i].IsOffer() {
			b.offers++
		}
	}

	rates := make([]models.GroupRate, 0, len(buckets))
	for group, b := range buckets {
		// ゼロ除算を避けるため分母は最低 1 とする
		total := b.total
		if total < 1 {
			total = 1
		}
		rates = append(rates, models.GroupRate{
			Group:  group,
			Offers: b.offers,
			Total:  b.total,
			Rate:   clamp01(float64(b.offers) / float64(total)),
		})
	}

	sort.Slice(rates, func(i, j int) bool {
		if rates[i].Rate != rates[j].Rate {
			return rates[i].Rate > rates[j].Rate
		}
		return rates[i].Group < rates[j].Group
	})
	return rates
}

// AverageResponseDaysByGroup は指定の軸ごとに平均応答日数を集計します
// 応答日数が計算できないレコードは集計から除外します
func AverageResponseDaysByGroup(records []models.JobRecord, groupBy GroupBy) []models.GroupTiming {
	type bucket struct {
		totalDays float64
		samples   int
	}

	buckets := make(map[string]*bucket)
	for i := range records {
		days := records[i].ResponseDays()
		if days == nil {
			continue
		}
		key := groupKey(&records[i], groupBy)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.totalDays += *days
		b.samples++
	}

	timings := make([]models.GroupTiming, 0, len(buckets))
	for group, b := range buckets {
		timings = append(timings, models.GroupTiming{
			Group:       group,
			AverageDays: b.totalDays / float64(b.samples),
			Samples:     b.samples,
		})
	}

	// 応答が早い順、同値ならグループ名の昇順
	sort.Slice(timings, func(i, j int) bool {
		if timings[i].AverageDays != timings[j].AverageDays {
			return timings[i].AverageDays < timings[j].AverageDays
		}
		return timings[i].Group < timings[j].Group
	})
	return timings
}

// CompareWithBenchmarks は業界別成功率とベンチマークの差分を計算します
// 差分の降順（ユーザーが上回っている業界が先頭）で返します
func CompareWithBenchmarks(records []models.JobRecord, table BenchmarkTable) []models.BenchmarkDelta {
	rates := SuccessRateByGroup(records, GroupByIndustry)

	deltas := make([]models.BenchmarkDelta, 0, len(rates))
	for _, rate := range rates {
		entry := table.Lookup(rate.Group)
		deltas = append(deltas, models.BenchmarkDelta{
			Group:         rate.Group,
			UserRate:      rate.Rate,
			BenchmarkRate: entry.OfferRate,
			Delta:         rate.Rate - entry.OfferRate,
		})
	}

	sort.Slice(deltas, func(i, j int) bool {
		if deltas[i].Delta != deltas[j].Delta {
			return deltas[i].Delta > deltas[j].Delta
		}
		return deltas[i].Group < deltas[j].Group
	})
	return deltas
}

// ResponseRate は応募済みレコードのうち企業から反応があった割合を返します
// 分母は Interested を除く全レコード、分子は書類通過以降に進んだレコードです
func ResponseRate(records []models.JobRecord) float64 {
	applied := 0
	progressed := 0
	for i := range records {
		if !records[i].ReachedApplied() {
			continue
		}
		applied++
		if records[i].ProgressedBeyondApplied() {
			progressed++
		}
	}

	if applied == 0 {
		return 0
	}
	return clamp01(float64(progressed) / float64(applied))
}

// FunnelStages は選考ステージごとの滞留数と平均経過日数を返します
// すべての正規ステージを必ず含み、該当レコードがないステージは 0 になります
func FunnelStages(records []models.JobRecord) []models.FunnelStage {
	stages := make([]models.FunnelStage, 0, len(models.CanonicalStages))
	for _, stage := range models.CanonicalStages {
		count := 0
		totalDays := 0.0
		samples := 0
		for i := range records {
			if !records[i].Status.Equals(stage) {
				continue
			}
			count++
			if days := records[i].ResponseDays(); days != nil {
				totalDays += *days
				samples++
			}
		}

		avg := 0.0
		if samples > 0 {
			avg = totalDays / float64(samples)
		}
		stages = append(stages, models.FunnelStage{
			Stage:       stage,
			Count:       count,
			AverageDays: avg,
		})
	}
	return stages
}

// DailySeries は今日を含む直近 TrendWindowDays 日分の応募数を日別に返します
// 応募がない日も件数 0 の要素として必ず含まれます
func DailySeries(records []models.JobRecord, now time.Time) []models.DailyCount {
	loc := now.Location()

	// 作成日時をローカルの暦日でバケット化する
	counts := make(map[string]int)
	for i := range records {
		counts[records[i].CreatedAt.In(loc).Format("2006-01-02")]++
	}

	start := now.In(loc).AddDate(0, 0, -(TrendWindowDays - 1))
	series := make([]models.DailyCount, 0, TrendWindowDays)
	for i := 0; i < TrendWindowDays; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		series = append(series, models.DailyCount{
			Date:  date,
			Count: counts[date],
		})
	}
	return series
}

// DeadlineAdherence は応募締切に対する遵守状況を集計します
// 締切とステータス変更日時の両方を持つレコードのみが対象です
func DeadlineAdherence(records []models.JobRecord) models.DeadlineAdherence {
	var adherence models.DeadlineAdherence
	for i := range records {
		r := &records[i]
		if r.ApplicationDeadline == nil || r.StatusChangedAt == nil {
			continue
		}
		if r.StatusChangedAt.After(*r.ApplicationDeadline) {
			adherence.Missed++
		} else {
			adherence.Met++
		}
	}

	total := adherence.Met + adherence.Missed
	if total > 0 {
		adherence.Rate = float64(adherence.Met) / float64(total)
	}
	return adherence
}

// TimeToOffer は内定に至ったレコードの平均応答日数を返します
// 内定がない場合は 0 を返します
func TimeToOffer(records []models.JobRecord) float64 {
	totalDays := 0.0
	samples := 0
	for i := range records {
		if !records[i].IsOffer() {
			continue
		}
		if days := records[i].ResponseDays(); days != nil {
			totalDays += *days
			samples++
		}
	}

	if samples == 0 {
		return 0
	}
	return totalDays / float64(samples)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
