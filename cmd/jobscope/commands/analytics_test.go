package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jinford/jobscope/pkg/models"
)

func TestDisplayReportTables(t *testing.T) {
	report := &models.AnalyticsReport{
		TotalApplications: 5,
		SuccessByIndustry: []models.GroupRate{
			{Group: "Technology", Offers: 2, Total: 3, Rate: 0.667},
			{Group: "Finance", Offers: 0, Total: 2, Rate: 0},
		},
		SuccessByJobType: []models.GroupRate{
			{Group: "Full-time", Offers: 2, Total: 5, Rate: 0.4},
		},
		TimingByIndustry: []models.GroupTiming{
			{Group: "Technology", AverageDays: 5.5, Samples: 2},
			{Group: "Finance", AverageDays: 0, Samples: 0},
		},
		ResponseRate: 0.6,
		Funnel: []models.FunnelStage{
			{Stage: models.StatusApplied, Count: 3, AverageDays: 10.2},
			{Stage: models.StatusOffer, Count: 2, AverageDays: 0},
		},
		Deadlines:       models.DeadlineAdherence{Met: 3, Missed: 1, Rate: 0.75},
		TimeToOfferDays: 21.3,
		Materials: models.MaterialStats{
			TrackedApplications: 5,
			CoverLetterRate:     0.42,
			TailoredResumeRate:  0.31,
			Estimated:           true,
		},
		Benchmarks: []models.BenchmarkDelta{
			{Group: "Technology", UserRate: 0.667, BenchmarkRate: 0.15, Delta: 0.517},
		},
		GeneratedAt: time.Now(),
	}

	// パニックが発生しないことを確認
	assert.NotPanics(t, func() {
		displayReportTables(report)
	})
}

func TestDisplayReportTables_EmptyReport(t *testing.T) {
	report := &models.AnalyticsReport{
		GeneratedAt: time.Now(),
	}

	// 空のレポートでもパニックが発生しないことを確認
	assert.NotPanics(t, func() {
		displayReportTables(report)
	})
}

func TestRenderTimingsTable(t *testing.T) {
	timings := []models.GroupTiming{
		{Group: "Technology", AverageDays: 7.2, Samples: 3},
		{Group: "Finance", AverageDays: 0, Samples: 0},
	}

	// サンプル数ゼロのグループが混ざっていても表示できることを確認
	assert.NotPanics(t, func() {
		renderTimingsTable("industry", timings)
	})
}

func TestRenderBenchmarkTable(t *testing.T) {
	deltas := []models.BenchmarkDelta{
		{Group: "Technology", UserRate: 0.4, BenchmarkRate: 0.15, Delta: 0.25},
		{Group: "Finance", UserRate: 0.05, BenchmarkRate: 0.12, Delta: -0.07},
	}

	assert.NotPanics(t, func() {
		renderBenchmarkTable(deltas)
	})
}
