package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// DigestJobConfig は週次ダイジェストジョブの設定です
type DigestJobConfig struct {
	CronSchedule string    // Cron形式のスケジュール（例: "0 9 * * 1" = 毎週月曜9:00）
	UserID       uuid.UUID // ダイジェストの対象ユーザー
	WeekRange    int       // 集計対象の週数（例: 1 = 過去1週間）
	Notifier     Notifier  // 通知先
}

// DigestJob は週次ダイジェストを自動実行するジョブです
type DigestJob struct {
	config *DigestJobConfig
	digest *DigestService
	cron   *cron.Cron
	logger *slog.Logger
}

// NewDigestJob は新しいDigestJobを作成します
func NewDigestJob(config *DigestJobConfig, digest *DigestService, logger *slog.Logger) *DigestJob {
	if logger == nil {
		logger = slog.Default()
	}

	return &DigestJob{
		config: config,
		digest: digest,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start はスケジューラーを起動します
func (j *DigestJob) Start() error {
	_, err := j.cron.AddFunc(j.config.CronSchedule, func() {
		if err := j.Run(context.Background()); err != nil {
			j.logger.Error("週次ダイジェストジョブの実行に失敗しました", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("cron ジョブの登録に失敗: %w", err)
	}

	j.cron.Start()
	j.logger.Info("週次ダイジェストジョブを開始しました", "schedule", j.config.CronSchedule)

	return nil
}

// Stop はスケジューラーを停止します
func (j *DigestJob) Stop() {
	j.cron.Stop()
	j.logger.Info("週次ダイジェストジョブを停止しました")
}

// Run は週次ダイジェストを実行します（手動実行可能）
func (j *DigestJob) Run(ctx context.Context) error {
	j.logger.Info("週次ダイジェストの作成を開始します")

	weeks := j.config.WeekRange
	if weeks < 1 {
		weeks = 1
	}

	digest, err := j.digest.Build(ctx, j.config.UserID, weeks)
	if err != nil {
		return fmt.Errorf("週次ダイジェストの組み立てに失敗: %w", err)
	}

	j.logger.Info("週次ダイジェストを組み立てました",
		"start", digest.Period.StartDate.Format("2006-01-02"),
		"end", digest.Period.EndDate.Format("2006-01-02"),
		"new_applications", digest.NewApplications,
		"status_changes", digest.StatusChanges)

	// 通知を送信
	if j.config.Notifier != nil {
		if err := j.config.Notifier.Notify(digest); err != nil {
			j.logger.Error("通知の送信に失敗しました", "error", err)
			return fmt.Errorf("通知の送信に失敗: %w", err)
		}
		j.logger.Info("通知を送信しました")
	}

	j.logger.Info("週次ダイジェストが完了しました")

	return nil
}
