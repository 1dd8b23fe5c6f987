package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType は求職活動イベントの種別を表します
type ActivityType string

const (
	ActivityJobCreated     ActivityType = "job_created"
	ActivityStatusChanged  ActivityType = "status_changed"
	ActivityDocumentEdited ActivityType = "document_edited"
	ActivityPrepSession    ActivityType = "prep_session"
	ActivityGoalCompleted  ActivityType = "goal_completed"
)

// ActivityEvent は求職活動の1イベントを表します
// 作成後に変更されることはなく、ストリーク計算と予測エンリッチにのみ使用します
type ActivityEvent struct {
	ID         uuid.UUID    `json:"id"`
	UserID     uuid.UUID    `json:"userID"`
	JobID      *uuid.UUID   `json:"jobID,omitempty"` // 特定の応募に紐づかないイベントは nil
	Type       ActivityType `json:"type"`
	OccurredAt time.Time    `json:"occurredAt"`
}
