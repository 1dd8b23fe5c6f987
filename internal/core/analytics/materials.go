package analytics

import (
	"math/rand"

	"github.com/jinford/jobscope/pkg/models"
)

// CustomizationSampler は応募書類のカスタマイズ率を推定するポートです
// 書類トラッキングが未導入のため、実績値の代わりに推定値を返します
type CustomizationSampler interface {
	// SampleCoverLetterRate はカバーレター添付率の推定値を返す
	SampleCoverLetterRate(total int) float64

	// SampleTailoredResumeRate は職務経歴書カスタマイズ率の推定値を返す
	SampleTailoredResumeRate(total int) float64
}

// heuristicSampler は固定の基準値に乱数の揺らぎを加えるサンプラーです
type heuristicSampler struct {
	rng *rand.Rand
}

const (
	baseCoverLetterRate    = 0.7
	baseTailoredResumeRate = 0.5
	sampleJitter           = 0.1
)

// NewHeuristicSampler はシード値から決定的なサンプラーを生成します
func NewHeuristicSampler(seed int64) CustomizationSampler {
	return &heuristicSampler{rng: rand.New(rand.NewSource(seed))}
}

func (s *heuristicSampler) SampleCoverLetterRate(total int) float64 {
	return s.sample(baseCoverLetterRate)
}

func (s *heuristicSampler) SampleTailoredResumeRate(total int) float64 {
	return s.sample(baseTailoredResumeRate)
}

func (s *heuristicSampler) sample(base float64) float64 {
	return clamp01(base + (s.rng.Float64()-0.5)*sampleJitter)
}

func materialStats(records []models.JobRecord, sampler CustomizationSampler) models.MaterialStats {
	stats := models.MaterialStats{Estimated: true}
	if len(records) == 0 {
		return stats
	}

	stats.TrackedApplications = len(records)
	stats.CoverLetterRate = sampler.SampleCoverLetterRate(len(records))
	stats.TailoredResumeRate = sampler.SampleTailoredResumeRate(len(records))
	return stats
}
