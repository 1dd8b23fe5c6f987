package models

import "time"

// GroupRate はグループ別の成功率を表します
type GroupRate struct {
	Group  string  `json:"group"`
	Offers int     `json:"offers"`
	Total  int     `json:"total"`
	Rate   float64 `json:"rate"` // offers / max(1, total)、常に [0,1]
}

// GroupTiming はグループ別の平均応答日数を表します
type GroupTiming struct {
	Group       string  `json:"group"`
	AverageDays float64 `json:"averageDays"` // 正の差分のみの平均、常に >= 0
	Samples     int     `json:"samples"`     // 平均に寄与した有効レコード数
}

// BenchmarkEntry は外部ベンチマークテーブルの1エントリです
// テーブルは必ず UnknownGroup キーのフォールバックエントリを含みます
type BenchmarkEntry struct {
	AvgResponseDays float64 `json:"avgResponseDays" yaml:"avgResponseDays"`
	OfferRate       float64 `json:"offerRate" yaml:"offerRate"`
}

// BenchmarkDelta はユーザー実績とベンチマークの差分を表します
type BenchmarkDelta struct {
	Group         string  `json:"group"`
	UserRate      float64 `json:"userRate"`
	BenchmarkRate float64 `json:"benchmarkRate"`
	Delta         float64 `json:"delta"` // userRate - benchmarkRate
}

// FunnelStage はファネル1ステージの件数と平均滞留日数を表します
// 滞留日数は現在そのステージにいるレコードの created_at からの近似値です
type FunnelStage struct {
	Stage       JobStatus `json:"stage"`
	Count       int       `json:"count"`
	AverageDays float64   `json:"averageDays"` // 有効データがなければ 0（NaN は返さない）
}

// DailyCount は1暦日分の応募件数を表します
type DailyCount struct {
	Date  string `json:"date"` // ローカル暦日 "2006-01-02"
	Count int    `json:"count"`
}

// DeadlineAdherence は応募締切の遵守状況を表します
type DeadlineAdherence struct {
	Met    int     `json:"met"`
	Missed int     `json:"missed"`
	Rate   float64 `json:"rate"` // met/(met+missed)、締切なしなら 0
}

// MaterialStats は応募書類のカスタマイズ状況の推定値を表します
// Estimated が true の間は実トラッキングではなくヒューリスティックサンプリング由来です
type MaterialStats struct {
	TrackedApplications int     `json:"trackedApplications"`
	CoverLetterRate     float64 `json:"coverLetterRate"` // [0,1]
	TailoredResumeRate  float64 `json:"tailoredResumeRate"`
	Estimated           bool    `json:"estimated"`
}

// AnalyticsReport は全アグリゲータ出力をまとめたレポートです
// エクスポート・週次ダイジェスト・コーチ要約の入力として使用します
type AnalyticsReport struct {
	TotalApplications int                 `json:"totalApplications"`
	SuccessByIndustry []GroupRate         `json:"successByIndustry"`
	SuccessByJobType  []GroupRate         `json:"successByJobType"`
	TimingByIndustry  []GroupTiming       `json:"timingByIndustry"`
	ResponseRate      float64             `json:"responseRate"`
	Funnel            []FunnelStage       `json:"funnel"`
	DailySeries       []DailyCount        `json:"dailySeries"`
	Deadlines         DeadlineAdherence   `json:"deadlines"`
	TimeToOfferDays   float64             `json:"timeToOfferDays"`
	Materials         MaterialStats       `json:"materials"`
	Benchmarks        []BenchmarkDelta    `json:"benchmarks,omitempty"`
	GeneratedAt       time.Time           `json:"generatedAt"`
}
