package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UnknownGroup はグループ値が欠損している場合に使用するキーです
// ベンチマークテーブルも必ずこのキーのフォールバックエントリを持ちます
const UnknownGroup = "(unknown)"

// JobStatus は応募の現在ステータスを表します
type JobStatus string

const (
	StatusInterested  JobStatus = "Interested"
	StatusApplied     JobStatus = "Applied"
	StatusPhoneScreen JobStatus = "Phone Screen"
	StatusInterview   JobStatus = "Interview"
	StatusOffer       JobStatus = "Offer"
	StatusRejected    JobStatus = "Rejected"
	StatusAccepted    JobStatus = "Accepted"
	StatusDeclined    JobStatus = "Declined"
)

// CanonicalStages は応募ファネルの標準ステージ一覧です（表示順）
// Accepted/Declined はオファー後の終端状態のためファネルには含めません
var CanonicalStages = []JobStatus{
	StatusInterested,
	StatusApplied,
	StatusPhoneScreen,
	StatusInterview,
	StatusOffer,
	StatusRejected,
}

// Equals はステータスを大文字小文字を無視して比較します
func (s JobStatus) Equals(other JobStatus) bool {
	return strings.EqualFold(string(s), string(other))
}

// JobRecord は1件の求人応募を表します
// イベントストアから読み取られる追記専用レコードで、このエンジンは変更しません
type JobRecord struct {
	ID                  uuid.UUID  `json:"id"`
	UserID              uuid.UUID  `json:"userID"`
	Title               string     `json:"title"`
	Company             string     `json:"company"`
	Industry            string     `json:"industry,omitempty"`
	JobType             string     `json:"jobType,omitempty"`     // 雇用形態（Full-time/Contract等）
	CompanySize         string     `json:"companySize,omitempty"` // startup/small/medium/large/enterprise
	Status              JobStatus  `json:"status"`
	CreatedAt           time.Time  `json:"createdAt"`                     // 応募トラッキング開始時刻
	StatusChangedAt     *time.Time `json:"statusChangedAt,omitempty"`     // 最終ステータス遷移時刻
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"` // 応募締切（任意）
}

// IsOffer はステータスがOfferかどうかを返します（大文字小文字を無視）
func (j *JobRecord) IsOffer() bool {
	return j.Status.Equals(StatusOffer)
}

// ReachedApplied は応募が提出済み段階に到達しているかどうかを返します
// Interested 以外のすべてのステータスが該当します
func (j *JobRecord) ReachedApplied() bool {
	return !j.Status.Equals(StatusInterested)
}

// ProgressedBeyondApplied は応募がAppliedより先に進んだかどうかを返します
// レスポンス率の分子は Phone Screen / Interview / Offer の3ステータスのみです
func (j *JobRecord) ProgressedBeyondApplied() bool {
	return j.Status.Equals(StatusPhoneScreen) ||
		j.Status.Equals(StatusInterview) ||
		j.Status.Equals(StatusOffer)
}

// ResponseDays は作成からステータス変更までの経過日数を返します
// 両方のタイムスタンプが存在し、かつ差分が正の場合のみ値を返します
// 非正の差分は不正データのため平均を歪めないよう nil を返します
func (j *JobRecord) ResponseDays() *float64 {
	if j.StatusChangedAt == nil || j.CreatedAt.IsZero() {
		return nil
	}
	delta := j.StatusChangedAt.Sub(j.CreatedAt).Hours() / 24
	if delta <= 0 {
		return nil
	}
	return &delta
}

// RoleType は求人タイトルから職種区分を導出します
// 先頭一致したキーワードを返し、どれにも一致しない場合は UnknownGroup を返します
func (j *JobRecord) RoleType() string {
	keywords := []string{
		"Engineer",
		"Developer",
		"Manager",
		"Designer",
		"Analyst",
		"Scientist",
		"Consultant",
		"Recruiter",
	}
	title := strings.ToLower(j.Title)
	for _, kw := range keywords {
		if strings.Contains(title, strings.ToLower(kw)) {
			return kw
		}
	}
	return UnknownGroup
}

// IsLargeCompany は大企業への応募かどうかを返します
func (j *JobRecord) IsLargeCompany() bool {
	switch strings.ToLower(strings.TrimSpace(j.CompanySize)) {
	case "large", "enterprise":
		return true
	default:
		return false
	}
}
