package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/urfave/cli/v3"

	"github.com/jinford/jobscope/internal/core/analytics"
	"github.com/jinford/jobscope/internal/platform/config"
	"github.com/jinford/jobscope/internal/platform/container"
	"github.com/jinford/jobscope/internal/platform/logger"
)

// AppContext はコマンド実行に必要な共通コンテキストを保持する
type AppContext struct {
	Config    *config.Config
	Container *container.ServiceContainer
}

// NewAppContext は設定ファイルを読み込み、DBに接続して AppContext を作成する
func NewAppContext(ctx context.Context, envFile string) (*AppContext, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("設定の読み込みに失敗: %w", err)
	}

	appLogger := logger.FromStrings(cfg.Log.Level, cfg.Log.Format)

	cont, err := container.NewContainer(ctx, cfg, container.WithContainerLogger(appLogger))
	if err != nil {
		return nil, fmt.Errorf("コンテナの初期化に失敗: %w", err)
	}

	return &AppContext{
		Config:    cfg,
		Container: cont,
	}, nil
}

// Close はAppContextが保持するリソースをクリーンアップする
func (ac *AppContext) Close() {
	if ac.Container != nil {
		ac.Container.Close()
	}
}

// Logger はAppContextのロガーを返す
func (ac *AppContext) Logger() *slog.Logger {
	if ac.Container != nil {
		return ac.Container.Logger()
	}
	return slog.Default()
}

// userIDFromFlags は --user フラグをUUIDとしてパースします
func userIDFromFlags(cmd *cli.Command) (uuid.UUID, error) {
	raw := cmd.String("user")
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("ユーザーIDのパースに失敗: %w", err)
	}
	return userID, nil
}

// filterFromFlags は --company/--role/--industry フラグからフィルタを構築します
func filterFromFlags(cmd *cli.Command) analytics.Filter {
	filter := analytics.Filter{}
	if v := cmd.String("company"); v != "" {
		filter.Company = mo.Some(v)
	}
	if v := cmd.String("role"); v != "" {
		filter.Role = mo.Some(v)
	}
	if v := cmd.String("industry"); v != "" {
		filter.Industry = mo.Some(v)
	}
	return filter
}

// exportToJSON は任意の結果をJSON形式でファイルにエクスポートします
func exportToJSON(v any, filename string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("JSONエンコードに失敗: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("ファイル書き込みに失敗: %w", err)
	}

	fmt.Printf("✓ 結果を %s にエクスポートしました\n", filename)
	return nil
}
