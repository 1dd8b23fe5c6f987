package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/jinford/jobscope/internal/core/analytics"
	"github.com/jinford/jobscope/pkg/models"
)

// PredictRunAction は応募履歴から成功予測を生成するコマンドのアクション
func PredictRunAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")
	exportFile := cmd.String("export")
	forceSimulate := cmd.Bool("force-simulate")

	userID, err := userIDFromFlags(cmd)
	if err != nil {
		return err
	}

	// 共通コンテキストの初期化
	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	records, err := appCtx.Container.AnalyticsService.Records(ctx, userID, analytics.Filter{})
	if err != nil {
		return fmt.Errorf("応募レコードの取得に失敗: %w", err)
	}

	// 準備セッション数の集計には全期間の活動履歴を使う
	activities, err := appCtx.Container.AnalyticsService.Activities(ctx, userID, time.Time{})
	if err != nil {
		return fmt.Errorf("活動イベントの取得に失敗: %w", err)
	}

	var set *models.PredictionSet
	if forceSimulate {
		set = appCtx.Container.PredictionService.RunSimulated(userID, records)
	} else {
		set = appCtx.Container.PredictionService.Run(ctx, userID, records, activities)
	}

	// JSON形式でエクスポート
	if exportFile != "" {
		return exportToJSON(set, exportFile)
	}

	displayPredictionSet(set)

	return nil
}

// displayPredictionSet は予測一式をテーブル形式で表示します
func displayPredictionSet(set *models.PredictionSet) {
	fmt.Println("\n=== 成功予測 ===")
	fmt.Printf("フィンガープリント: %s\n", set.Fingerprint)
	fmt.Printf("生成日時: %s\n", set.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("モード: %s\n\n", predictionMode(set.Simulated))

	if len(set.Predictions) == 0 {
		fmt.Println("応募レコードがないため、予測は生成されませんでした")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("種別", "スコア", "信頼度", "信頼区間")
	for _, p := range set.Predictions {
		interval := "-"
		if p.Interval != nil {
			interval = fmt.Sprintf("%s 〜 %s",
				formatScore(p.Kind, p.Interval.Lower),
				formatScore(p.Kind, p.Interval.Upper),
			)
		}
		table.Append(
			kindLabel(p.Kind),
			formatScore(p.Kind, p.Score),
			fmt.Sprintf("%.0f%%", p.Confidence*100),
			interval,
		)
	}
	table.Render()

	// 推奨アクション
	for _, p := range set.Predictions {
		if p.Recommendation != "" {
			fmt.Printf("[%s] %s\n", kindLabel(p.Kind), p.Recommendation)
		}
	}

	// シナリオ予測
	for _, p := range set.Predictions {
		if len(p.Scenarios) == 0 {
			continue
		}
		fmt.Printf("\n=== シナリオ予測 (%s) ===\n", kindLabel(p.Kind))
		scenarioTable := tablewriter.NewWriter(os.Stdout)
		scenarioTable.Header("シナリオ", "説明", "予測スコア")
		for _, s := range p.Scenarios {
			scenarioTable.Append(s.Name, s.Description, formatScore(p.Kind, s.ProjectedScore))
		}
		scenarioTable.Render()
	}

	fmt.Println()
}

// kindLabel は予測種別を表示用ラベルに変換します
func kindLabel(kind models.PredictionKind) string {
	switch kind {
	case models.PredictionInterviewProbability:
		return "面接到達確率"
	case models.PredictionOfferProbability:
		return "内定確率"
	case models.PredictionTimelineWeeks:
		return "内定までの期間"
	default:
		return string(kind)
	}
}

// formatScore は予測種別に応じてスコアを整形します
// 確率はパーセント、期間は週数で表示します
func formatScore(kind models.PredictionKind, score float64) string {
	if kind == models.PredictionTimelineWeeks {
		return fmt.Sprintf("%.1f 週", score)
	}
	return fmt.Sprintf("%.0f%%", score*100)
}

// predictionMode は予測一式の由来を表示用ラベルに変換します
func predictionMode(simulated bool) string {
	if simulated {
		return "ローカルシミュレーション"
	}
	return "リモートモデル"
}
