package insight

import (
	"fmt"
	"strings"

	"github.com/jinford/jobscope/pkg/models"
)

const (
	lowSuccessRateThreshold  = 0.10
	highSuccessRateThreshold = 0.20
	lowVolumeThreshold       = 10
)

// GenerateRecommendations は応募履歴とパターンから改善提案を生成します
// ルールは固定順で評価され、同じ入力に対して常に同じ並びを返します
func GenerateRecommendations(records []models.JobRecord, patterns []models.Pattern) []string {
	if len(records) == 0 {
		return nil
	}

	c := classify(records)
	rate := c.successRate()

	recommendations := make([]string, 0, 8)

	// 成功率が低い場合の警告（サンプルが少なすぎる場合は出さない）
	if rate < lowSuccessRateThreshold && c.total > 5 {
		recommendations = append(recommendations,
			fmt.Sprintf("選考通過率が %d%% と低めです。応募書類の見直しとターゲットの絞り込みを検討しましょう。", int(rate*100)))
	}

	// 成功率が高い場合の称賛
	if rate >= highSuccessRateThreshold {
		recommendations = append(recommendations,
			fmt.Sprintf("選考通過率 %d%% は好調です。現在のアプローチを継続しましょう。", int(rate*100)))
	}

	// 不採用が選考通過を上回っている場合の警告
	if c.rejected > len(c.successes) && len(c.successes) > 0 {
		recommendations = append(recommendations,
			"不採用が選考通過を上回っています。応募先の選定基準を見直しましょう。")
	}

	// 応募数が少ない場合の提案
	if c.total < lowVolumeThreshold {
		recommendations = append(recommendations,
			fmt.Sprintf("応募数が %d 件とまだ少なめです。母数を増やすと統計が安定し、チャンスも広がります。", c.total))
	}

	// 常に含める基本ガイダンス
	recommendations = append(recommendations,
		"応募書類は求人ごとにカスタマイズしましょう。",
		"応募は平日の午前中など、採用担当者が確認しやすいタイミングを狙いましょう。",
		"カバーレターを添付すると書類通過率が上がる傾向があります。",
	)

	// ポジティブなパターンがあれば強みとして締めくくる
	positives := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p.Impact == models.ImpactPositive {
			positives = append(positives, p.Title)
		}
	}
	if len(positives) > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("強みを活かしましょう: %s", strings.Join(positives, "、")))
	}

	return recommendations
}
