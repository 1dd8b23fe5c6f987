package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/jinford/jobscope/internal/core/streak"
	"github.com/jinford/jobscope/pkg/models"
)

// StreakShowAction は活動ストリークを表示するコマンドのアクション
func StreakShowAction(ctx context.Context, cmd *cli.Command) error {
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
	since := now.AddDate(0, 0, -streak.LookbackDays)

	activities, err := appCtx.Container.AnalyticsService.Activities(ctx, userID, since)
	if err != nil {
		return fmt.Errorf("活動イベントの取得に失敗: %w", err)
	}

	data := streak.Calculate(activities, now)

	// JSON形式でエクスポート
	if exportFile != "" {
		return exportToJSON(data, exportFile)
	}

	renderStreakTable(data)

	return nil
}

// StreakQuoteAction は今日のモチベーション引用を表示するコマンドのアクション
// 引用は日付から決定的に選ばれ、同じ日は常に同じ文になる
func StreakQuoteAction(ctx context.Context, cmd *cli.Command) error {
	fmt.Printf("今日のひとこと: %s\n", streak.QuoteOfTheDay(time.Now()))
	return nil
}

// renderStreakTable はストリーク集計をテーブル形式で表示します
func renderStreakTable(data models.StreakData) {
	fmt.Println("\n=== 活動ストリーク ===")

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("メトリクス", "値")

	table.Append("現在のストリーク", fmt.Sprintf("%d 日", data.CurrentStreak))
	table.Append("最長ストリーク", fmt.Sprintf("%d 日", data.LongestStreak))
	table.Append("直近7日間の活動日数", fmt.Sprintf("%d 日", data.WeeklyActiveDays))
	table.Append("当月の活動日数", fmt.Sprintf("%d 日", data.MonthlyActiveDays))
	table.Append("観測期間内の活動日数", fmt.Sprintf("%d 日", data.TotalActiveDays))

	if data.CurrentStreak > 0 {
		table.Append("ストリーク開始日", data.StreakStartDate.Format("2006-01-02"))
	}
	if data.LastActivityDate != nil {
		table.Append("最終活動日時", data.LastActivityDate.Format("2006-01-02 15:04"))
	}

	table.Render()
}
