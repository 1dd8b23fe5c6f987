package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jinford/jobscope/cmd/jobscope/commands"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 構造化ログの設定（設定読み込み後に AppContext が上書きする）
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	app := &cli.Command{
		Name:  "jobscope",
		Usage: "求人応募履歴の分析・予測エンジン",
		Commands: []*cli.Command{
			{
				Name:  "analytics",
				Usage: "応募メトリクス集計コマンド",
				Commands: []*cli.Command{
					{
						Name:  "success",
						Usage: "グループ別の成功率を表示",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.StringFlag{
								Name:     "user",
								Usage:    "ユーザーID (UUID)",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "group-by",
								Usage: "集計キー (industry/job_type/company_size/role_type)",
								Value: "industry",
							},
							&cli.StringFlag{
								Name:  "company",
								Usage: "会社名でフィルタ（完全一致）",
							},
							&cli.StringFlag{
								Name:  "role",
								Usage: "役職名でフィルタ（部分一致）",
							},
							&cli.StringFlag{
								Name:  "industry",
								Usage: "業界でフィルタ（完全一致）",
							},
							&cli.StringFlag{
								Name:  "export",
								Usage: "JSON形式でエクスポート (ファイルパス)",
							},
						},
						Action: commands.AnalyticsSuccessAction,
					},
					{
						Name:  "timing",
						Usage: "グループ別の平均応答日数を表示",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.StringFlag{
								Name:     "user",
								Usage:    "ユーザーID (UUID)",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "group-by",
								Usage: "集計キー (industry/job_type/company_size/role_type)",
								Value: "industry",
							},
							&cli.StringFlag{
								Name:  "company",
								Usage: "会社名でフィルタ（完全一致）",
							},
							&cli.StringFlag{
								Name:  "role",
								Usage: "役職名でフィルタ（部分一致）",
							},
							&cli.StringFlag{
								Name:  "industry",
								Usage: "業界でフィルタ（完全一致）",
							},
							&cli.StringFlag{
								Name:  "export",
								Usage: "JSON形式でエクスポート (ファイルパス)",
							},
						},
						Action: commands.AnalyticsTimingAction,
					},
					{
						Name:  "funnel",
						Usage: "応募ファネルを表示",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.StringFlag{
								Name:     "user",
								Usage:    "ユーザーID (UUID)",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "export",
								Usage: "JSON形式でエクスポート (ファイルパス)",
							},
						},
						Action: commands.AnalyticsFunnelAction,
					},
					{
						Name:  "series",
						Usage: "日別の応募数トレンドを表示",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.StringFlag{
								Name:     "user",
								Usage:    "ユーザーID (UUID)",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "export",
								Usage: "JSON形式でエクスポート (ファイルパス)",
							},
						},
						Action: commands.AnalyticsSeriesAction,
					},
					{
						Name:  "benchmark",
						Usage: "業界ベンチマークとの比較を表示",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.StringFlag{
								Name:     "user",
								Usage:    "ユーザーID (UUID)",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "export",
								Usage: "JSON形式でエクスポート (ファイルパス)",
							},
						},
						Action: commands.AnalyticsBenchmarkAction,
					},
					{
						Name:  "report",
						Usage: "全メトリクスをまとめたレポートを表示",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.StringFlag{
								Name:     "user",
								Usage:    "ユーザーID (UUID)",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "company",
								Usage: "会社名でフィルタ（完全一致）",
							},
							&cli.StringFlag{
								Name:  "role",
								Usage: "役職名でフィルタ（部分一致）",
							},
							&cli.StringFlag{
								Name:  "industry",
								Usage: "業界でフィルタ（完全一致）",
							},
							&cli.StringFlag{
								Name:  "export",
								Usage: "JSON形式でエクスポート (ファイルパス)",
							},
						},
						Action: commands.AnalyticsReportAction,
					},
				},
			},
			{
				Name:  "insight",
				Usage: "パターン分析・インサイト生成コマンド",
				Commands: []*cli.Command{
					{
						Name:  "analyze",
						Usage: "行動パターンと統計的有意性を分析",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.StringFlag{
								Name:     "user",
								Usage:    "ユーザーID (UUID)",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "export",
								Usage: "JSON形式でエクスポート (ファイルパス)",
							},
						},
						Action: commands.InsightAnalyzeAction,
					},
					{
						Name:  "narrative",
						Usage: "ランク付きインサイト文を生成",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.StringFlag{
								Name:     "user",
								Usage:    "ユーザーID (UUID)",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "export",
								Usage: "JSON形式でエクスポート (ファイルパス)",
							},
						},
						Action: commands.InsightNarrativeAction,
					},
				},
			},
			{
				Name:  "streak",
				Usage: "活動ストリーク管理コマンド",
				Commands: []*cli.Command{
					{
						Name:  "show",
						Usage: "活動ストリークを表示",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.StringFlag{
								Name:     "user",
								Usage:    "ユーザーID (UUID)",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "export",
								Usage: "JSON形式でエクスポート (ファイルパス)",
							},
						},
						Action: commands.StreakShowAction,
					},
					{
						Name:   "quote",
						Usage:  "今日のモチベーション引用を表示",
						Action: commands.StreakQuoteAction,
					},
				},
			},
			{
				Name:  "predict",
				Usage: "成功予測コマンド",
				Commands: []*cli.Command{
					{
						Name:  "run",
						Usage: "応募履歴から成功予測を生成",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.StringFlag{
								Name:     "user",
								Usage:    "ユーザーID (UUID)",
								Required: true,
							},
							&cli.BoolFlag{
								Name:  "force-simulate",
								Usage: "リモートモデルを使わずローカルシミュレーションを強制",
							},
							&cli.StringFlag{
								Name:  "export",
								Usage: "JSON形式でエクスポート (ファイルパス)",
							},
						},
						Action: commands.PredictRunAction,
					},
				},
			},
			{
				Name:  "review",
				Usage: "週次ダイジェスト管理コマンド",
				Commands: []*cli.Command{
					{
						Name:  "run",
						Usage: "週次ダイジェストを手動実行",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.StringFlag{
								Name:     "user",
								Usage:    "ユーザーID (UUID)",
								Required: true,
							},
							&cli.IntFlag{
								Name:  "weeks",
								Usage: "集計対象の週数",
								Value: 1,
							},
							&cli.StringFlag{
								Name:  "notify-file",
								Usage: "通知を記録するファイルパス",
							},
						},
						Action: commands.ReviewRunAction,
					},
					{
						Name:  "schedule",
						Usage: "週次ダイジェストをスケジュール実行",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.StringFlag{
								Name:     "user",
								Usage:    "ユーザーID (UUID)",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "cron",
								Usage: "Cron形式のスケジュール (例: 0 9 * * 1 = 毎週月曜9:00)",
							},
							&cli.IntFlag{
								Name:  "weeks",
								Usage: "集計対象の週数",
								Value: 1,
							},
							&cli.StringFlag{
								Name:  "notify-file",
								Usage: "通知を記録するファイルパス",
							},
						},
						Action: commands.ReviewScheduleAction,
					},
				},
			},
			{
				Name:  "coach",
				Usage: "AIコーチングコマンド",
				Commands: []*cli.Command{
					{
						Name:  "ask",
						Usage: "応募状況をもとにAIコーチへ相談",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.StringFlag{
								Name:     "user",
								Usage:    "ユーザーID (UUID)",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "focus",
								Usage: "重点領域 (書類/面接/戦略など)",
							},
							&cli.StringFlag{
								Name:  "question",
								Usage: "コーチへの質問",
							},
							&cli.BoolFlag{
								Name:  "interactive",
								Usage: "インタラクティブモードで入力",
							},
						},
						Action: commands.CoachAskAction,
					},
				},
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
