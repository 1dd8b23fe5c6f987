package insight

import (
	"fmt"
	"time"

	"github.com/jinford/jobscope/pkg/models"
)

const (
	weekendShareThreshold      = 0.3
	largeCompanyShareThreshold = 0.5
)

// classification は応募レコードを成功・不採用・選考中に分類した結果です
type classification struct {
	successes []models.JobRecord
	rejected  int
	total     int
}

// successRate は全応募に対する成功の割合を返します
func (c classification) successRate() float64 {
	if c.total == 0 {
		return 0
	}
	return float64(len(c.successes)) / float64(c.total)
}

// classify はレコードを成功（Offer/Interview）、不採用（Rejected）、
// それ以外（選考中）に分類します
func classify(records []models.JobRecord) classification {
	c := classification{total: len(records)}
	for i := range records {
		switch {
		case records[i].Status.Equals(models.StatusOffer) || records[i].Status.Equals(models.StatusInterview):
			c.successes = append(c.successes, records[i])
		case records[i].Status.Equals(models.StatusRejected):
			c.rejected++
		}
	}
	return c
}

// IdentifyPatterns は応募履歴から行動パターンを導出します
// ルールは固定順で評価され、同じ入力に対して常に同じ結果を返します
func IdentifyPatterns(records []models.JobRecord) []models.Pattern {
	if len(records) == 0 {
		return nil
	}

	c := classify(records)
	patterns := make([]models.Pattern, 0, 5)

	// 成功した応募が集中している業界
	if industry, count := dominantIndustry(c.successes); count > 0 {
		patterns = append(patterns, models.Pattern{
			Title:       "得意業界",
			Description: fmt.Sprintf("選考通過 %d 件のうち %d 件が %s に集中しています", len(c.successes), count, industry),
			Impact:      models.ImpactPositive,
		})
	}

	// エンジニア職での選考通過
	engineerCount := 0
	for i := range c.successes {
		if c.successes[i].RoleType() == "Engineer" {
			engineerCount++
		}
	}
	if engineerCount > 0 {
		patterns = append(patterns, models.Pattern{
			Title:       "エンジニア職での強さ",
			Description: fmt.Sprintf("エンジニア職で %d 件の選考通過があります", engineerCount),
			Impact:      models.ImpactPositive,
		})
	}

	// 週末に提出した応募の成功
	weekendCount := 0
	for i := range c.successes {
		switch c.successes[i].CreatedAt.Weekday() {
		case time.Saturday, time.Sunday:
			weekendCount++
		}
	}
	if len(c.successes) > 0 {
		share := float64(weekendCount) / float64(len(c.successes))
		if share > weekendShareThreshold {
			patterns = append(patterns, models.Pattern{
				Title:       "週末応募の成功率",
				Description: fmt.Sprintf("選考通過の %d%% が週末の応募です（%d/%d 件）", int(share*100), weekendCount, len(c.successes)),
				Impact:      models.ImpactPositive,
			})
		}
	}

	// 不採用が選考通過を上回っている
	if c.rejected > len(c.successes) && len(c.successes) > 0 {
		patterns = append(patterns, models.Pattern{
			Title:       "不採用が先行",
			Description: fmt.Sprintf("不採用 %d 件が選考通過 %d 件を上回っています", c.rejected, len(c.successes)),
			Impact:      models.ImpactNegative,
		})
	}

	// 大企業向け応募の成功
	largeCount := 0
	for i := range c.successes {
		if c.successes[i].IsLargeCompany() {
			largeCount++
		}
	}
	if len(c.successes) > 0 {
		share := float64(largeCount) / float64(len(c.successes))
		if share > largeCompanyShareThreshold {
			patterns = append(patterns, models.Pattern{
				Title:       "大企業との相性",
				Description: fmt.Sprintf("選考通過の %d%% が大企業向けです（%d/%d 件）", int(share*100), largeCount, len(c.successes)),
				Impact:      models.ImpactPositive,
			})
		}
	}

	return patterns
}

// dominantIndustry は成功した応募の中で最も件数の多い業界を返します
// 同数の場合は業界名の昇順で先頭のものを選びます
func dominantIndustry(successes []models.JobRecord) (string, int) {
	counts := make(map[string]int)
	for i := range successes {
		industry := successes[i].Industry
		if industry == "" {
			industry = models.UnknownGroup
		}
		counts[industry]++
	}

	best := ""
	bestCount := 0
	for industry, count := range counts {
		if count > bestCount || (count == bestCount && industry < best) {
			best = industry
			bestCount = count
		}
	}
	return best, bestCount
}
