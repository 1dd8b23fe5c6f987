package insight

import (
	"math"

	"github.com/jinford/jobscope/internal/core/analytics"
	"github.com/jinford/jobscope/pkg/models"
)

const (
	// significanceLevel は有意と判定するp値の閾値です
	significanceLevel = 0.05

	// insufficientDataName はデータ不足時に返すセンチネルテストの名前です
	insufficientDataName = "Insufficient Data"

	chiSquareTestName = "Offer Rate by Industry"
	tTestName         = "Time to Offer vs Benchmark"
)

// RunSignificanceTests は応募履歴に対して統計的有意性テストを実行します
//
// p値は exp(-χ²/2) および 2*exp(-|t|) という粗い近似式で計算します
// 正確な分布関数ではありませんが、下流の閾値判定はこの近似に合わせて
// 調整されているため、式を変更してはいけません
func RunSignificanceTests(records []models.JobRecord, benchmarks analytics.BenchmarkTable) []models.SignificanceTest {
	rates := analytics.SuccessRateByGroup(records, analytics.GroupByIndustry)

	totalRecords := 0
	totalOffers := 0
	for _, rate := range rates {
		totalRecords += rate.Total
		totalOffers += rate.Offers
	}

	// グループが2未満、または内定が3件未満の場合は検定できない
	if len(rates) < 2 || totalOffers < 3 {
		return []models.SignificanceTest{
			{
				Name:       insufficientDataName,
				PValue:     1.0,
				EffectSize: 0,
				SampleSize: totalRecords,
			},
		}
	}

	tests := []models.SignificanceTest{
		chiSquareTest(rates, totalRecords, totalOffers),
	}
	if tTest, ok := timeToOfferTest(records, benchmarks); ok {
		tests = append(tests, tTest)
	}
	return tests
}

// chiSquareTest は業界別の内定率に対するカイ二乗風の検定です
// 期待値は全体の内定率から計算し、分母は最低 1 に切り上げます
func chiSquareTest(rates []models.GroupRate, totalRecords, totalOffers int) models.SignificanceTest {
	overallRate := float64(totalOffers) / float64(totalRecords)

	chi := 0.0
	for _, rate := range rates {
		expected := float64(rate.Total) * overallRate
		denom := expected
		if denom < 1 {
			denom = 1
		}
		diff := float64(rate.Offers) - expected
		chi += diff * diff / denom
	}

	pValue := clamp01(math.Exp(-chi / 2))
	return models.SignificanceTest{
		Name:        chiSquareTestName,
		Statistic:   chi,
		PValue:      pValue,
		EffectSize:  math.Sqrt(chi / float64(totalRecords)),
		SampleSize:  totalRecords,
		Significant: pValue < significanceLevel,
	}
}

// timeToOfferTest は内定までの日数をベンチマーク平均と比較する一標本のt検定風テストです
// 有効サンプルが2件未満、または分散が0の場合は実行しません
func timeToOfferTest(records []models.JobRecord, benchmarks analytics.BenchmarkTable) (models.SignificanceTest, bool) {
	samples := make([]float64, 0, len(records))
	for i := range records {
		if !records[i].IsOffer() {
			continue
		}
		if days := records[i].ResponseDays(); days != nil {
			samples = append(samples, *days)
		}
	}
	if len(samples) < 2 {
		return models.SignificanceTest{}, false
	}

	mean := meanOf(samples)
	sd := math.Sqrt(sampleVariance(samples, mean))
	if sd == 0 {
		return models.SignificanceTest{}, false
	}

	mu := benchmarks.Lookup(models.UnknownGroup).AvgResponseDays
	se := sd / math.Sqrt(float64(len(samples)))
	tStat := (mean - mu) / se
	pValue := clamp01(2 * math.Exp(-math.Abs(tStat)))

	return models.SignificanceTest{
		Name:        tTestName,
		Statistic:   tStat,
		PValue:      pValue,
		EffectSize:  math.Abs(mean-mu) / sd,
		SampleSize:  len(samples),
		Significant: pValue < significanceLevel,
	}, true
}

func meanOf(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// sampleVariance は不偏分散を返します（len(values) >= 2 が前提）
func sampleVariance(values []float64, mean float64) float64 {
	total := 0.0
	for _, v := range values {
		diff := v - mean
		total += diff * diff
	}
	return total / float64(len(values)-1)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
