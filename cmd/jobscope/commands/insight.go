package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/jinford/jobscope/internal/core/analytics"
	"github.com/jinford/jobscope/internal/core/insight"
	"github.com/jinford/jobscope/internal/core/streak"
	"github.com/jinford/jobscope/pkg/models"
)

// insightAnalysis は insight analyze のエクスポート用構造体です
type insightAnalysis struct {
	Patterns          []models.Pattern          `json:"patterns"`
	SignificanceTests []models.SignificanceTest `json:"significanceTests"`
	Recommendations   []string                  `json:"recommendations"`
}

// InsightAnalyzeAction は行動パターンと統計的有意性を分析するコマンドのアクション
func InsightAnalyzeAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")
	exportFile := cmd.String("export")

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

	patterns := insight.IdentifyPatterns(records)
	tests := insight.RunSignificanceTests(records, appCtx.Container.AnalyticsService.BenchmarkTable())
	recommendations := insight.GenerateRecommendations(records, patterns)

	analysis := insightAnalysis{
		Patterns:          patterns,
		SignificanceTests: tests,
		Recommendations:   recommendations,
	}

	// JSON形式でエクスポート
	if exportFile != "" {
		return exportToJSON(analysis, exportFile)
	}

	// テーブル形式で表示
	displayInsightAnalysis(&analysis)

	return nil
}

// InsightNarrativeAction はランク付きインサイト文を生成するコマンドのアクション
func InsightNarrativeAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")
	exportFile := cmd.String("export")

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

	now := time.Now()

	report, err := appCtx.Container.AnalyticsService.BuildReport(ctx, userID, now, analytics.Filter{})
	if err != nil {
		return fmt.Errorf("レポートの組み立てに失敗: %w", err)
	}

	// 目標達成数は直近の活動履歴から数える
	since := now.AddDate(0, 0, -streak.LookbackDays)
	activities, err := appCtx.Container.AnalyticsService.Activities(ctx, userID, since)
	if err != nil {
		return fmt.Errorf("活動イベントの取得に失敗: %w", err)
	}

	goalsCompleted := 0
	for i := range activities {
		if activities[i].Type == models.ActivityGoalCompleted {
			goalsCompleted++
		}
	}

	insights := insight.BuildNarrative(insight.InputFromReport(report, goalsCompleted))

	// JSON形式でエクスポート
	if exportFile != "" {
		return exportToJSON(insights, exportFile)
	}

	renderInsightsList(insights)

	return nil
}

// === 表示ヘルパー ===

// displayInsightAnalysis は分析結果をテーブル形式で表示します
func displayInsightAnalysis(analysis *insightAnalysis) {
	// 行動パターン
	fmt.Println("\n=== 行動パターン ===")
	if len(analysis.Patterns) == 0 {
		fmt.Println("検出されたパターンはありません")
	} else {
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("パターン", "影響", "詳細")
		for _, pattern := range analysis.Patterns {
			table.Append(pattern.Title, impactLabel(pattern.Impact), pattern.Description)
		}
		table.Render()
	}

	// 統計的有意性
	if len(analysis.SignificanceTests) > 0 {
		fmt.Println("\n=== 統計的有意性 ===")
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("テスト", "統計量", "p値", "効果量", "サンプル数", "有意")
		for _, test := range analysis.SignificanceTests {
			significant := "-"
			if test.Significant {
				significant = "✓"
			}
			table.Append(
				test.Name,
				fmt.Sprintf("%.3f", test.Statistic),
				fmt.Sprintf("%.3f", test.PValue),
				fmt.Sprintf("%.3f", test.EffectSize),
				fmt.Sprintf("%d", test.SampleSize),
				significant,
			)
		}
		table.Render()
	}

	// 推奨アクション
	fmt.Println("\n=== 推奨アクション ===")
	if len(analysis.Recommendations) == 0 {
		fmt.Println("推奨アクションはありません")
	} else {
		for i, rec := range analysis.Recommendations {
			fmt.Printf("%d. %s\n", i+1, rec)
		}
	}

	fmt.Println()
}

// renderInsightsList はランク付きインサイトを一覧表示します
func renderInsightsList(insights []models.Insight) {
	fmt.Println("\n=== インサイト ===")
	for _, in := range insights {
		fmt.Printf("%d. (%s) %s\n", in.Rank, in.Category, in.Message)
	}
	fmt.Println()
}

// impactLabel はパターンの影響を表示用ラベルに変換します
func impactLabel(impact models.PatternImpact) string {
	switch impact {
	case models.ImpactPositive:
		return "ポジティブ"
	case models.ImpactNegative:
		return "ネガティブ"
	default:
		return string(impact)
	}
}
