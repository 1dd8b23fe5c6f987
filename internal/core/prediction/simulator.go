package prediction

import (
	"github.com/jinford/jobscope/pkg/models"
)

// シミュレーションの係数と境界値
// 係数は実トラッキングデータ到着前の暫定値で、スコアは必ず境界内に収まる
const (
	interviewProbBase  = 0.2
	interviewProbSlope = 0.6
	interviewProbMin   = 0.05
	interviewProbMax   = 0.95

	offerProbBase  = 0.05
	offerProbSlope = 0.5
	offerProbMin   = 0.02
	offerProbMax   = 0.85

	timelineBaseWeeks     = 16
	timelineWeeksPerRound = 2
	timelineFloorWeeks    = 4

	intervalWidth = 0.1

	interviewConfidence = 0.6
	offerConfidence     = 0.55
	timelineConfidence  = 0.5
)

// Simulate は応募実績から決定的なフォールバック予測を生成する
// 常に3種類（面接確率・内定確率・期間見込み）を固定順で返す
func Simulate(records []models.JobRecord) []models.PredictionResult {
	total := len(records)

	interviews := 0
	offers := 0
	for i := range records {
		if records[i].IsOffer() {
			interviews++
			offers++
			continue
		}
		if records[i].Status.Equals(models.StatusInterview) {
			interviews++
		}
	}

	interviewShare := 0.0
	offerShare := 0.0
	if total > 0 {
		interviewShare = float64(interviews) / float64(total)
		offerShare = float64(offers) / float64(total)
	}

	interviewProb := clampRange(interviewProbBase+interviewProbSlope*interviewShare, interviewProbMin, interviewProbMax)
	offerProb := clampRange(offerProbBase+offerProbSlope*offerShare, offerProbMin, offerProbMax)

	// 面接が進んでいるほど見込み期間は短くなる（下限4週間）
	timelineWeeks := float64(timelineBaseWeeks - timelineWeeksPerRound*interviews)
	if timelineWeeks < timelineFloorWeeks {
		timelineWeeks = timelineFloorWeeks
	}

	return []models.PredictionResult{
		{
			Kind:           models.PredictionInterviewProbability,
			Score:          interviewProb,
			Confidence:     interviewConfidence,
			Interval:       interval(interviewProb),
			Recommendation: "応募書類を求人ごとに調整すると、面接に進む確率が上がります。",
			Simulated:      true,
		},
		{
			Kind:           models.PredictionOfferProbability,
			Score:          offerProb,
			Confidence:     offerConfidence,
			Interval:       interval(offerProb),
			Recommendation: "面接ごとの振り返りを記録すると、内定率の改善につながります。",
			Simulated:      true,
		},
		{
			Kind:           models.PredictionTimelineWeeks,
			Score:          timelineWeeks,
			Confidence:     timelineConfidence,
			Interval:       interval(timelineWeeks),
			Recommendation: "週ごとの応募ペースを保つと、内定までの期間が安定します。",
			Simulated:      true,
		},
	}
}

// interval は score±0.1 を [0,1] にクランプした固定幅の信頼区間を返す
// timeline_weeks のスコアにも同じクランプを適用する（互換動作）
func interval(score float64) *models.ConfidenceInterval {
	return &models.ConfidenceInterval{
		Lower: clamp01(score - intervalWidth),
		Upper: clamp01(score + intervalWidth),
	}
}

func clamp01(v float64) float64 {
	return clampRange(v, 0, 1)
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
