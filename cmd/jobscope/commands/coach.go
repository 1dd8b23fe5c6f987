package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/samber/mo"
	"github.com/urfave/cli/v3"

	"github.com/jinford/jobscope/internal/core/coach"
)

// CoachAskAction は応募状況をもとにAIコーチへ相談するコマンドのアクション
func CoachAskAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")
	interactive := cmd.Bool("interactive")

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

	if appCtx.Container.CoachService == nil {
		return fmt.Errorf("コーチ機能が構成されていません。OPENAI_API_KEY を設定してください")
	}

	var params coach.AdviceParams

	if interactive {
		// インタラクティブモード
		params, err = promptAdviceParams(userID)
		if err != nil {
			return fmt.Errorf("入力エラー: %w", err)
		}
	} else {
		// フラグベースモード
		params = adviceParamsFromFlags(cmd, userID)
	}

	fmt.Println("コーチが応募状況を分析しています...")

	advice, err := appCtx.Container.CoachService.Advise(ctx, params)
	if err != nil {
		return fmt.Errorf("アドバイスの生成に失敗: %w", err)
	}

	fmt.Println("\n=== コーチからのアドバイス ===")
	fmt.Println(advice.Summary)

	if advice.PromptTokens > 0 {
		fmt.Printf("\n(プロンプトトークン数: %d)\n", advice.PromptTokens)
	}

	slog.Info("コーチングアドバイスを生成", "userID", userID, "promptTokens", advice.PromptTokens)

	return nil
}

// promptAdviceParams はインタラクティブにコーチへの相談内容を受け付けます
func promptAdviceParams(userID uuid.UUID) (coach.AdviceParams, error) {
	params := coach.AdviceParams{UserID: userID}

	// 重点領域
	promptFocus := promptui.Select{
		Label: "重点領域",
		Items: []string{"全般", "書類", "面接", "戦略"},
	}
	_, focus, err := promptFocus.Run()
	if err != nil {
		return params, err
	}
	if focus != "全般" {
		params.FocusArea = mo.Some(focus)
	}

	// 質問 (オプション)
	promptQuestion := promptui.Prompt{
		Label:   "コーチへの質問 (オプション)",
		Default: "",
	}
	question, err := promptQuestion.Run()
	if err != nil {
		return params, err
	}
	if question != "" {
		params.Question = mo.Some(question)
	}

	return params, nil
}

// adviceParamsFromFlags はフラグから相談内容を組み立てます
func adviceParamsFromFlags(cmd *cli.Command, userID uuid.UUID) coach.AdviceParams {
	params := coach.AdviceParams{UserID: userID}

	if focus := cmd.String("focus"); focus != "" {
		params.FocusArea = mo.Some(focus)
	}
	if question := cmd.String("question"); question != "" {
		params.Question = mo.Some(question)
	}

	return params
}
