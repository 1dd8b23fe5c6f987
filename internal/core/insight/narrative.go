package insight

import (
	"github.com/jinford/jobscope/pkg/models"
)

// NarrativeInput はインサイト文生成に使う集計値をまとめた入力です
type NarrativeInput struct {
	TotalApplications int
	Offers            int
	ResponseRate      float64
	Deadlines         models.DeadlineAdherence
	TimeToOfferDays   float64
	GoalsCompleted    int
}

// InputFromReport は統合レポートと目標達成数から NarrativeInput を組み立てます
func InputFromReport(report *models.AnalyticsReport, goalsCompleted int) NarrativeInput {
	offers := 0
	for _, stage := range report.Funnel {
		if stage.Stage.Equals(models.StatusOffer) {
			offers = stage.Count
		}
	}

	return NarrativeInput{
		TotalApplications: report.TotalApplications,
		Offers:            offers,
		ResponseRate:      report.ResponseRate,
		Deadlines:         report.Deadlines,
		TimeToOfferDays:   report.TimeToOfferDays,
		GoalsCompleted:    goalsCompleted,
	}
}

// BuildNarrative は集計値からランク付きのインサイト文を生成します
// 固定閾値のルールを順に評価し、どれにも該当しない場合でも
// 励ましのメッセージを1件返します（空にはなりません）
func BuildNarrative(in NarrativeInput) []models.Insight {
	insights := make([]models.Insight, 0, 6)

	offerRate := 0.0
	if in.TotalApplications > 0 {
		offerRate = float64(in.Offers) / float64(in.TotalApplications)
	}

	// 内定率が低い場合は書類の質を優先して提案する
	if offerRate < 0.05 && in.TotalApplications > 10 {
		insights = append(insights, models.Insight{
			Category: "conversion",
			Message:  "内定率が5%を下回っています。応募書類を求人ごとに調整して質を高めましょう。",
		})
	}

	if offerRate >= 0.10 && in.TotalApplications > 5 {
		insights = append(insights, models.Insight{
			Category: "conversion",
			Message:  "内定率が10%を超えています。この調子で続けましょう。",
		})
	}

	if in.ResponseRate < 0.2 && in.TotalApplications > 10 {
		insights = append(insights, models.Insight{
			Category: "response",
			Message:  "企業からの反応率が20%未満です。応募後のフォローアップを検討しましょう。",
		})
	}

	if in.Deadlines.Missed > in.Deadlines.Met && in.Deadlines.Missed > 0 {
		insights = append(insights, models.Insight{
			Category: "deadlines",
			Message:  "締切に間に合わなかった応募が目立ちます。リマインダーの活用を検討しましょう。",
		})
	}

	if in.TimeToOfferDays > 60 {
		insights = append(insights, models.Insight{
			Category: "timing",
			Message:  "内定まで平均60日以上かかっています。選考の早い企業も織り交ぜましょう。",
		})
	}

	if in.GoalsCompleted >= 5 {
		insights = append(insights, models.Insight{
			Category: "engagement",
			Message:  "目標を着実に達成できています。小さな積み重ねが成果につながります。",
		})
	}

	if len(insights) == 0 {
		insights = append(insights, models.Insight{
			Category: "general",
			Message:  "活動は着実に前進しています。今週も一歩ずつ進めましょう。",
		})
	}

	// 発火順にランクを振る
	for i := range insights {
		insights[i].Rank = i + 1
	}
	return insights
}
