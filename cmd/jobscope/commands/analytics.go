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

// AnalyticsSuccessAction はグループ別の成功率を表示するコマンドのアクション
func AnalyticsSuccessAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")
	exportFile := cmd.String("export")

	userID, err := userIDFromFlags(cmd)
	if err != nil {
		return err
	}

	groupBy, err := analytics.ParseGroupBy(cmd.String("group-by"))
	if err != nil {
		return fmt.Errorf("集計キーのパースに失敗: %w", err)
	}

	// 共通コンテキストの初期化
	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	rates, err := appCtx.Container.AnalyticsService.SuccessRates(ctx, userID, groupBy, filterFromFlags(cmd))
	if err != nil {
		return fmt.Errorf("成功率の集計に失敗: %w", err)
	}

	if exportFile != "" {
		return exportToJSON(rates, exportFile)
	}

	if len(rates) == 0 {
		fmt.Println("応募レコードがありません")
		return nil
	}

	renderSuccessRatesTable(string(groupBy), rates)

	return nil
}

// AnalyticsTimingAction はグループ別の平均応答日数を表示するコマンドのアクション
func AnalyticsTimingAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")
	exportFile := cmd.String("export")

	userID, err := userIDFromFlags(cmd)
	if err != nil {
		return err
	}

	groupBy, err := analytics.ParseGroupBy(cmd.String("group-by"))
	if err != nil {
		return fmt.Errorf("集計キーのパースに失敗: %w", err)
	}

	// 共通コンテキストの初期化
	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	timings, err := appCtx.Container.AnalyticsService.ResponseTimings(ctx, userID, groupBy, filterFromFlags(cmd))
	if err != nil {
		return fmt.Errorf("応答日数の集計に失敗: %w", err)
	}

	if exportFile != "" {
		return exportToJSON(timings, exportFile)
	}

	if len(timings) == 0 {
		fmt.Println("応募レコードがありません")
		return nil
	}

	renderTimingsTable(string(groupBy), timings)

	return nil
}

// AnalyticsFunnelAction は応募ファネルを表示するコマンドのアクション
func AnalyticsFunnelAction(ctx context.Context, cmd *cli.Command) error {
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

	stages := analytics.FunnelStages(records)

	if exportFile != "" {
		return exportToJSON(stages, exportFile)
	}

	renderFunnelTable(stages)

	return nil
}

// AnalyticsSeriesAction は日別の応募数トレンドを表示するコマンドのアクション
func AnalyticsSeriesAction(ctx context.Context, cmd *cli.Command) error {
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

	series := analytics.DailySeries(records, time.Now())

	if exportFile != "" {
		return exportToJSON(series, exportFile)
	}

	fmt.Printf("\n=== 日別応募数（直近%d日） ===\n", analytics.TrendWindowDays)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("日付", "応募数")
	for _, point := range series {
		table.Append(point.Date, fmt.Sprintf("%d", point.Count))
	}
	table.Render()

	return nil
}

// AnalyticsBenchmarkAction は業界ベンチマークとの比較を表示するコマンドのアクション
func AnalyticsBenchmarkAction(ctx context.Context, cmd *cli.Command) error {
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

	deltas, err := appCtx.Container.AnalyticsService.BenchmarkComparison(ctx, userID, analytics.Filter{})
	if err != nil {
		return fmt.Errorf("ベンチマーク比較に失敗: %w", err)
	}

	if exportFile != "" {
		return exportToJSON(deltas, exportFile)
	}

	if len(deltas) == 0 {
		fmt.Println("応募レコードがありません")
		return nil
	}

	renderBenchmarkTable(deltas)

	return nil
}

// AnalyticsReportAction は全メトリクスをまとめたレポートを表示するコマンドのアクション
func AnalyticsReportAction(ctx context.Context, cmd *cli.Command) error {
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

	report, err := appCtx.Container.AnalyticsService.BuildReport(ctx, userID, time.Now(), filterFromFlags(cmd))
	if err != nil {
		return fmt.Errorf("レポートの組み立てに失敗: %w", err)
	}

	// JSON形式でエクスポート
	if exportFile != "" {
		return exportToJSON(report, exportFile)
	}

	// テーブル形式で表示
	displayReportTables(report)

	return nil
}

// === 表示ヘルパー ===

// renderSuccessRatesTable はグループ別成功率をテーブル形式で表示します
func renderSuccessRatesTable(groupBy string, rates []models.GroupRate) {
	fmt.Printf("\n=== グループ別成功率 (%s) ===\n", groupBy)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("グループ", "オファー", "応募数", "成功率")
	for _, rate := range rates {
		table.Append(
			rate.Group,
			fmt.Sprintf("%d", rate.Offers),
			fmt.Sprintf("%d", rate.Total),
			fmt.Sprintf("%.1f%%", rate.Rate*100),
		)
	}
	table.Render()
}

// renderTimingsTable はグループ別平均応答日数をテーブル形式で表示します
// 有効サンプルのないグループは「データ不足」と表示します
func renderTimingsTable(groupBy string, timings []models.GroupTiming) {
	fmt.Printf("\n=== グループ別平均応答日数 (%s) ===\n", groupBy)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("グループ", "平均日数", "サンプル数")
	for _, timing := range timings {
		avg := fmt.Sprintf("%.1f", timing.AverageDays)
		if timing.Samples == 0 {
			avg = "データ不足"
		}
		table.Append(timing.Group, avg, fmt.Sprintf("%d", timing.Samples))
	}
	table.Render()
}

// renderFunnelTable は応募ファネルをテーブル形式で表示します
func renderFunnelTable(stages []models.FunnelStage) {
	fmt.Println("\n=== 応募ファネル ===")

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ステージ", "件数", "平均滞留日数")
	for _, stage := range stages {
		table.Append(
			string(stage.Stage),
			fmt.Sprintf("%d", stage.Count),
			fmt.Sprintf("%.1f", stage.AverageDays),
		)
	}
	table.Render()
}

// renderBenchmarkTable はベンチマーク比較をテーブル形式で表示します
func renderBenchmarkTable(deltas []models.BenchmarkDelta) {
	fmt.Println("\n=== ベンチマーク比較 ===")

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("グループ", "実績", "ベンチマーク", "差分")
	for _, delta := range deltas {
		table.Append(
			delta.Group,
			fmt.Sprintf("%.1f%%", delta.UserRate*100),
			fmt.Sprintf("%.1f%%", delta.BenchmarkRate*100),
			fmt.Sprintf("%+.1f%%", delta.Delta*100),
		)
	}
	table.Render()
}

// displayReportTables はレポート全体をテーブル形式で表示します
func displayReportTables(report *models.AnalyticsReport) {
	fmt.Println("\n=== 応募分析レポート ===")
	fmt.Printf("生成日時: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))

	// サマリーテーブル
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("メトリクス", "値")

	table.Append("総応募数", fmt.Sprintf("%d", report.TotalApplications))
	table.Append("応答率", fmt.Sprintf("%.1f%%", report.ResponseRate*100))

	if report.TimeToOfferDays > 0 {
		table.Append("平均オファー日数", fmt.Sprintf("%.1f", report.TimeToOfferDays))
	} else {
		table.Append("平均オファー日数", "データ不足")
	}

	if report.Deadlines.Met+report.Deadlines.Missed > 0 {
		table.Append("締切遵守率", fmt.Sprintf("%.1f%% (%d/%d)",
			report.Deadlines.Rate*100,
			report.Deadlines.Met,
			report.Deadlines.Met+report.Deadlines.Missed,
		))
	}

	if report.Materials.Estimated {
		table.Append("カバーレター添付率（推定）", fmt.Sprintf("%.1f%%", report.Materials.CoverLetterRate*100))
		table.Append("レジュメ調整率（推定）", fmt.Sprintf("%.1f%%", report.Materials.TailoredResumeRate*100))
	}

	table.Render()

	// ファネル
	if len(report.Funnel) > 0 {
		renderFunnelTable(report.Funnel)
	}

	// 業界別成功率
	if len(report.SuccessByIndustry) > 0 {
		renderSuccessRatesTable("industry", report.SuccessByIndustry)
	}

	// 雇用形態別成功率
	if len(report.SuccessByJobType) > 0 {
		renderSuccessRatesTable("job_type", report.SuccessByJobType)
	}

	// 業界別応答日数
	if len(report.TimingByIndustry) > 0 {
		renderTimingsTable("industry", report.TimingByIndustry)
	}

	// ベンチマーク比較
	if len(report.Benchmarks) > 0 {
		renderBenchmarkTable(report.Benchmarks)
	}
}
