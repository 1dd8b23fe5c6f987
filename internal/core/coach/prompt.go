package coach

import (
	"fmt"
	"strings"

	"github.com/jinford/jobscope/pkg/models"
)

// PromptTokenBudget はコーチングプロンプトの上限トークン数
const PromptTokenBudget = 3000

// TokenCounter はプロンプトのトークン数を数えて切り詰めるインターフェース
type TokenCounter interface {
	CountTokens(text string) int
	TrimToTokenLimit(text string, maxTokens int) string
}

// BuildCoachPrompt は集計結果からコーチング用プロンプトを構築する
func BuildCoachPrompt(
	report *models.AnalyticsReport,
	streak models.StreakData,
	patterns []models.Pattern,
	params AdviceParams,
) string {
	var sb strings.Builder

	// システムプロンプトとガイドライン
	sb.WriteString("あなたは求職活動を支援する経験豊富なキャリアコーチです。\n")
	sb.WriteString("以下の活動データを踏まえ、具体的で実行可能なアドバイスを簡潔に伝えてください。\n\n")

	sb.WriteString("## アドバイスのガイドライン\n")
	sb.WriteString("- データに基づいた指摘を優先してください\n")
	sb.WriteString("- 批判ではなく、次の一歩を提案する形で伝えてください\n")
	sb.WriteString("- 箇条書きで3〜5項目にまとめてください\n\n")

	// 応募状況
	sb.WriteString("## 応募状況\n")
	sb.WriteString(fmt.Sprintf("- 総応募数: %d 件\n", report.TotalApplications))
	sb.WriteString(fmt.Sprintf("- 企業からの反応率: %.0f%%\n", report.ResponseRate*100))
	if report.TimeToOfferDays > 0 {
		sb.WriteString(fmt.Sprintf("- 内定までの平均日数: %.1f 日\n", report.TimeToOfferDays))
	}
	for _, stage := range report.Funnel {
		if stage.Count > 0 {
			sb.WriteString(fmt.Sprintf("- ステージ %s: %d 件\n", stage.Stage, stage.Count))
		}
	}
	sb.WriteString("\n")

	// 活動ストリーク
	sb.WriteString("## 活動の継続状況\n")
	sb.WriteString(fmt.Sprintf("- 現在のストリーク: %d 日\n", streak.CurrentStreak))
	sb.WriteString(fmt.Sprintf("- 最長ストリーク: %d 日\n", streak.LongestStreak))
	sb.WriteString(fmt.Sprintf("- 直近7日間の活動日数: %d 日\n\n", streak.WeeklyActiveDays))

	// 検出されたパターン
	sb.WriteString("## 検出されたパターン\n")
	if len(patterns) > 0 {
		for _, p := range patterns {
			sb.WriteString(fmt.Sprintf("- [%s] %s: %s\n", p.Impact, p.Title, p.Description))
		}
	} else {
		sb.WriteString("(顕著なパターンはまだ検出されていません)\n")
	}
	sb.WriteString("\n")

	// 重点領域
	if focus, ok := params.FocusArea.Get(); ok {
		sb.WriteString("## 重点領域\n")
		sb.WriteString(focus)
		sb.WriteString("\n\n")
	}

	// ユーザーの質問
	sb.WriteString("## 質問\n")
	if question, ok := params.Question.Get(); ok {
		sb.WriteString(question)
	} else {
		sb.WriteString("今週の活動で最も改善すべき点は何ですか？")
	}
	sb.WriteString("\n\n")

	sb.WriteString("## アドバイス\n")

	return sb.String()
}
