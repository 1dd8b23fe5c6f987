package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jinford/jobscope/pkg/models"
)

func TestImpactLabel(t *testing.T) {
	tests := []struct {
		name     string
		impact   models.PatternImpact
		expected string
	}{
		{
			name:     "ポジティブ",
			impact:   models.ImpactPositive,
			expected: "ポジティブ",
		},
		{
			name:     "ネガティブ",
			impact:   models.ImpactNegative,
			expected: "ネガティブ",
		},
		{
			name:     "未知の値はそのまま返す",
			impact:   models.PatternImpact("neutral"),
			expected: "neutral",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, impactLabel(tt.impact))
		})
	}
}

func TestDisplayInsightAnalysis(t *testing.T) {
	analysis := &insightAnalysis{
		Patterns: []models.Pattern{
			{
				Title:       "業界の偏り",
				Description: "成功 3 件中 2 件が Technology 業界です",
				Impact:      models.ImpactPositive,
			},
		},
		SignificanceTests: []models.SignificanceTest{
			{
				Name:        "Offer Rate by Industry",
				Statistic:   4.21,
				PValue:      0.12,
				EffectSize:  0.3,
				SampleSize:  10,
				Significant: false,
			},
		},
		Recommendations: []string{
			"Technology 業界の応募比率を増やしましょう。",
		},
	}

	// パニックが発生しないことを確認
	assert.NotPanics(t, func() {
		displayInsightAnalysis(analysis)
	})
}

func TestDisplayInsightAnalysis_Empty(t *testing.T) {
	analysis := &insightAnalysis{}

	// 空の分析結果でもパニックが発生しないことを確認
	assert.NotPanics(t, func() {
		displayInsightAnalysis(analysis)
	})
}

func TestRenderInsightsList(t *testing.T) {
	insights := []models.Insight{
		{Rank: 1, Category: "momentum", Message: "応募ペースが好調です。"},
		{Rank: 2, Category: "general", Message: "書類のカスタマイズを検討しましょう。"},
	}

	assert.NotPanics(t, func() {
		renderInsightsList(insights)
	})
}
