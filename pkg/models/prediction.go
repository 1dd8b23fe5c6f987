package models

import (
	"time"

	"github.com/google/uuid"
)

// PredictionKind は予測の種別を表します
type PredictionKind string

const (
	PredictionInterviewProbability PredictionKind = "interview_probability"
	PredictionOfferProbability     PredictionKind = "offer_probability"
	PredictionTimelineWeeks        PredictionKind = "timeline_weeks"
)

// ConfidenceInterval は予測スコアの信頼区間を表します
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ScenarioProjection は行動変化に対するスコア予測を表します
type ScenarioProjection struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	ProjectedScore float64 `json:"projectedScore"`
}

// PredictionResult は1種別分の予測結果を表します
// リモートモデル由来かローカルシミュレーション由来かは Simulated フラグのみで区別され、
// 形状は完全に同一です
type PredictionResult struct {
	Kind           PredictionKind       `json:"kind"`
	Score          float64              `json:"score"`
	Confidence     float64              `json:"confidence"` // [0,1]
	Interval       *ConfidenceInterval  `json:"interval,omitempty"`
	Recommendation string               `json:"recommendation,omitempty"`
	Scenarios      []ScenarioProjection `json:"scenarios,omitempty"`
	Simulated      bool                 `json:"simulated"`
}

// PredictionSet は (ユーザー, フィンガープリント) 単位でキャッシュされる予測一式です
type PredictionSet struct {
	UserID      uuid.UUID          `json:"userID"`
	Fingerprint string             `json:"fingerprint"`
	Predictions []PredictionResult `json:"predictions"`
	Simulated   bool               `json:"simulated"` // 一式がローカルシミュレーション由来かどうか
	GeneratedAt time.Time          `json:"generatedAt"`
}

// CompactJobRecord はリモート予測モデルへ送るリクエストの1レコードです
// フル JobRecord から識別・分類フィールドと準備活動の集計のみを抜き出します
type CompactJobRecord struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	Industry  string    `json:"industry,omitempty"`
	Status    JobStatus `json:"status"`
	PrepCount int       `json:"prepCount"` // 紐づく準備セッション数
}
