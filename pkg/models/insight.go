package models

// PatternImpact はパターンが成功に与える影響の向きを表します
type PatternImpact string

const (
	ImpactPositive PatternImpact = "positive"
	ImpactNegative PatternImpact = "negative"
)

// SignificanceTest は統計的有意性テストの結果を表します
// p値は粗い近似式によるもので、方向性の目安としてのみ扱います
type SignificanceTest struct {
	Name        string  `json:"name"`
	Statistic   float64 `json:"statistic"`
	PValue      float64 `json:"pValue"` // [0,1]
	EffectSize  float64 `json:"effectSize"`
	SampleSize  int     `json:"sampleSize"`
	Significant bool    `json:"significant"` // pValue < 0.05
}

// Pattern は応募履歴から導出された行動パターンを表します
type Pattern struct {
	Title       string        `json:"title"`
	Description string        `json:"description"` // 具体的な件数を含む説明文
	Impact      PatternImpact `json:"impact"`
}

// Insight はランク付けされた自由記述のインサイトを表します
type Insight struct {
	Rank     int    `json:"rank"` // 小さいほど優先度が高い
	Category string `json:"category"`
	Message  string `json:"message"`
}
