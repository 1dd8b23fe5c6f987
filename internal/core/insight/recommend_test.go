package insight

import (
	"testing"

	"github.com/jinford/jobscope/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRecommendations_Empty(t *testing.T) {
	assert.Nil(t, GenerateRecommendations(nil, nil))
}

func TestGenerateRecommendations_LowSuccessRate(t *testing.T) {
	// 10件中成功0件: 低成功率警告 + 基本ガイダンス3件
	records := make([]models.JobRecord, 0, 10)
	for i := 0; i < 10; i++ {
		records = append(records, newRecord(models.StatusRejected, "Technology", 5))
	}

	got := GenerateRecommendations(records, nil)

	require.Len(t, got, 4)
	assert.Contains(t, got[0], "選考通過率")
	assert.Contains(t, got[1], "カスタマイズ")
	assert.Contains(t, got[2], "タイミング")
	assert.Contains(t, got[3], "カバーレター")
}

func TestGenerateRecommendations_HighSuccessRate(t *testing.T) {
	records := []models.JobRecord{
		newRecord(models.StatusInterview, "Technology", 5),
		newRecord(models.StatusOffer, "Technology", 10),
		newRecord(models.StatusApplied, "Finance", 0),
		newRecord(models.StatusApplied, "Finance", 0),
	}
	patterns := []models.Pattern{
		{Title: "得意業界", Impact: models.ImpactPositive},
		{Title: "不採用が先行", Impact: models.ImpactNegative},
	}

	got := GenerateRecommendations(records, patterns)

	// 称賛 + 低応募数 + 基本ガイダンス3件 + 強みの締め
	require.Len(t, got, 6)
	assert.Contains(t, got[0], "好調")
	assert.Contains(t, got[1], "応募数")
	assert.Contains(t, got[5], "得意業界")
	assert.NotContains(t, got[5], "不採用が先行", "ネガティブなパターンは強みに含めないべき")
}

func TestGenerateRecommendations_RejectionDominance(t *testing.T) {
	records := []models.JobRecord{
		newRecord(models.StatusInterview, "Technology", 5),
		newRecord(models.StatusRejected, "Technology", 3),
		newRecord(models.StatusRejected, "Finance", 3),
	}

	got := GenerateRecommendations(records, nil)

	found := false
	for _, r := range got {
		if r == "不採用が選考通過を上回っています。応募先の選定基準を見直しましょう。" {
			found = true
		}
	}
	assert.True(t, found, "不採用優勢の警告が含まれるべき")
}

func TestGenerateRecommendations_Deterministic(t *testing.T) {
	records := []models.JobRecord{
		newRecord(models.StatusOffer, "Technology", 10),
		newRecord(models.StatusRejected, "Finance", 5),
	}
	patterns := IdentifyPatterns(records)

	assert.Equal(t,
		GenerateRecommendations(records, patterns),
		GenerateRecommendations(records, patterns),
		"同じ入力には同じ並びを返すべき")
}
