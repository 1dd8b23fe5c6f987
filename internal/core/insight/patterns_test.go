package insight

import (
	"testing"
	"time"

	"github.com/jinford/jobscope/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findPattern(patterns []models.Pattern, title string) *models.Pattern {
	for i := range patterns {
		if patterns[i].Title == title {
			return &patterns[i]
		}
	}
	return nil
}

func TestIdentifyPatterns_Empty(t *testing.T) {
	assert.Empty(t, IdentifyPatterns(nil))
	assert.Empty(t, IdentifyPatterns([]models.JobRecord{}))
}

func TestIdentifyPatterns_DominantIndustry(t *testing.T) {
	records := []models.JobRecord{
		newRecord(models.StatusInterview, "Technology", 5),
		newRecord(models.StatusOffer, "Technology", 10),
		newRecord(models.StatusInterview, "Finance", 5),
		newRecord(models.StatusRejected, "Retail", 5),
	}

	patterns := IdentifyPatterns(records)

	p := findPattern(patterns, "得意業界")
	require.NotNil(t, p)
	assert.Equal(t, models.ImpactPositive, p.Impact)
	assert.Contains(t, p.Description, "Technology")
	assert.Contains(t, p.Description, "3 件のうち 2 件")
}

func TestIdentifyPatterns_EngineerRoles(t *testing.T) {
	engineer := newRecord(models.StatusInterview, "Technology", 5)
	engineer.Title = "Platform Engineer"

	designer := newRecord(models.StatusOffer, "Technology", 10)
	designer.Title = "UX Designer"

	patterns := IdentifyPatterns([]models.JobRecord{engineer, designer})

	p := findPattern(patterns, "エンジニア職での強さ")
	require.NotNil(t, p)
	assert.Contains(t, p.Description, "1 件")
}

func TestIdentifyPatterns_WeekendShare(t *testing.T) {
	// 土曜日に作成された成功レコード（2026-08-01 は土曜日）
	weekend := newRecord(models.StatusInterview, "Technology", 5)
	weekend.CreatedAt = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	weekday := newRecord(models.StatusOffer, "Technology", 10)

	patterns := IdentifyPatterns([]models.JobRecord{weekend, weekday})

	p := findPattern(patterns, "週末応募の成功率")
	require.NotNil(t, p, "週末比率50%はパターンとして検出されるべき")
	assert.Equal(t, models.ImpactPositive, p.Impact)
	assert.Contains(t, p.Description, "1/2 件")
}

func TestIdentifyPatterns_RejectionDominance(t *testing.T) {
	records := []models.JobRecord{
		newRecord(models.StatusInterview, "Technology", 5),
		newRecord(models.StatusRejected, "Technology", 3),
		newRecord(models.StatusRejected, "Finance", 3),
	}

	patterns := IdentifyPatterns(records)

	p := findPattern(patterns, "不採用が先行")
	require.NotNil(t, p)
	assert.Equal(t, models.ImpactNegative, p.Impact)
	assert.Contains(t, p.Description, "不採用 2 件")
}

func TestIdentifyPatterns_RejectionDominanceRequiresSuccess(t *testing.T) {
	// 成功が0件の場合は不採用優勢パターンを出さない
	records := []models.JobRecord{
		newRecord(models.StatusRejected, "Technology", 3),
		newRecord(models.StatusRejected, "Finance", 3),
	}

	assert.Nil(t, findPattern(IdentifyPatterns(records), "不採用が先行"))
}

func TestIdentifyPatterns_LargeCompanyShare(t *testing.T) {
	large := newRecord(models.StatusOffer, "Technology", 10)
	large.CompanySize = "Enterprise"

	alsoLarge := newRecord(models.StatusInterview, "Finance", 5)
	alsoLarge.CompanySize = "large"

	startup := newRecord(models.StatusInterview, "Technology", 5)
	startup.CompanySize = "startup"

	patterns := IdentifyPatterns([]models.JobRecord{large, alsoLarge, startup})

	p := findPattern(patterns, "大企業との相性")
	require.NotNil(t, p, "大企業比率2/3はパターンとして検出されるべき")
	assert.Contains(t, p.Description, "2/3 件")
}

func TestIdentifyPatterns_Deterministic(t *testing.T) {
	records := []models.JobRecord{
		newRecord(models.StatusInterview, "Technology", 5),
		newRecord(models.StatusRejected, "Technology", 3),
		newRecord(models.StatusRejected, "Finance", 3),
	}

	assert.Equal(t, IdentifyPatterns(records), IdentifyPatterns(records), "同じ入力には同じ結果を返すべき")
}
