package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/jinford/jobscope/internal/core/review"
)

// ReviewRunAction は週次ダイジェストを手動実行するコマンドのアクション
func ReviewRunAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")
	weeks := cmd.Int("weeks")
	notifyFile := cmd.String("notify-file")

	userID, err := userIDFromFlags(cmd)
	if err != nil {
		return err
	}

	if weeks == 0 {
		weeks = 1 // デフォルト1週間
	}

	slog.Info("週次ダイジェストを実行します", "userID", userID, "weeks", weeks)

	// AppContextの初期化
	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return fmt.Errorf("AppContextの初期化に失敗: %w", err)
	}
	defer appCtx.Close()

	job := review.NewDigestJob(&review.DigestJobConfig{
		UserID:    userID,
		WeekRange: weeks,
		Notifier:  buildDigestNotifier(notifyFile),
	}, appCtx.Container.DigestService, appCtx.Logger())

	if err := job.Run(ctx); err != nil {
		return err
	}

	slog.Info("週次ダイジェストが正常に完了しました")
	return nil
}

// ReviewScheduleAction は週次ダイジェストをスケジュール実行するコマンドのアクション
// シグナル (SIGINT/SIGTERM) を受け取るまでフォアグラウンドで動き続ける
func ReviewScheduleAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")
	cronSchedule := cmd.String("cron")
	weeks := cmd.Int("weeks")
	notifyFile := cmd.String("notify-file")

	userID, err := userIDFromFlags(cmd)
	if err != nil {
		return err
	}

	if weeks == 0 {
		weeks = 1 // デフォルト1週間
	}

	// AppContextの初期化
	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return fmt.Errorf("AppContextの初期化に失敗: %w", err)
	}
	defer appCtx.Close()

	// スケジュール未指定時は設定ファイルの値に従う
	if cronSchedule == "" {
		cronSchedule = appCtx.Config.Review.CronSchedule
	}
	if notifyFile == "" {
		notifyFile = appCtx.Config.Review.OutputFile
	}

	job := review.NewDigestJob(&review.DigestJobConfig{
		CronSchedule: cronSchedule,
		UserID:       userID,
		WeekRange:    weeks,
		Notifier:     buildDigestNotifier(notifyFile),
	}, appCtx.Container.DigestService, appCtx.Logger())

	if err := job.Start(); err != nil {
		return fmt.Errorf("スケジューラの起動に失敗: %w", err)
	}

	slog.Info("週次ダイジェストのスケジュール実行を開始しました",
		"cronSchedule", cronSchedule,
		"weeks", weeks,
		"notifyFile", notifyFile)

	// シグナルを受け取るまで待機する
	<-ctx.Done()

	job.Stop()
	slog.Info("週次ダイジェストのスケジュール実行を停止しました")

	return nil
}

// buildDigestNotifier は通知先を構築します
// ファイルパスが指定されていれば標準出力とファイルの両方に通知します
func buildDigestNotifier(notifyFile string) review.Notifier {
	if notifyFile != "" {
		return review.NewMultiNotifier(
			review.NewStandardOutputNotifier(),
			review.NewFileNotifier(notifyFile),
		)
	}
	return review.NewStandardOutputNotifier()
}
