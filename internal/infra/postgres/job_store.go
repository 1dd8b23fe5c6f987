package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jinford/jobscope/internal/core/analytics"
	"github.com/jinford/jobscope/pkg/models"
)

// JobStore は analytics.JobStore インターフェースを実装する PostgreSQL アクセサです
// 応募レコードと活動ログはトラッカー側が書き込むため、ここでは読み取りしか行いません
type JobStore struct {
	pool *pgxpool.Pool
}

// NewJobStore は新しい JobStore を作成します
func NewJobStore(pool *pgxpool.Pool) *JobStore {
	return &JobStore{pool: pool}
}

// コンパイル時の型チェック
var _ analytics.JobStore = (*JobStore)(nil)

const listJobRecordsQuery = `
SELECT id, user_id, title, company, industry, job_type, company_size,
       status, created_at, status_changed_at, application_deadline
FROM job_records
WHERE user_id = $1
ORDER BY created_at ASC`

// ListJobRecords はユーザーの全応募レコードを作成日時昇順で返します
// レコードが存在しない場合はエラーではなく空スライスを返します
func (s *JobStore) ListJobRecords(ctx context.Context, userID uuid.UUID) ([]models.JobRecord, error) {
	rows, err := s.pool.Query(ctx, listJobRecordsQuery, UUIDToPgtype(userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []models.JobRecord{}, nil
		}
		return nil, fmt.Errorf("failed to query job records: %w", err)
	}
	defer rows.Close()

	records := make([]models.JobRecord, 0)
	for rows.Next() {
		var (
			id, rowUserID                  pgtype.UUID
			title, company                 string
			industry, jobType, companySize pgtype.Text
			status                         string
			createdAt                      pgtype.Timestamptz
			statusChangedAt, deadline      pgtype.Timestamptz
		)

		if err := rows.Scan(&id, &rowUserID, &title, &company, &industry, &jobType,
			&companySize, &status, &createdAt, &statusChangedAt, &deadline); err != nil {
			return nil, fmt.Errorf("failed to scan job record: %w", err)
		}

		records = append(records, models.JobRecord{
			ID:                  PgtypeToUUID(id),
			UserID:              PgtypeToUUID(rowUserID),
			Title:               title,
			Company:             company,
			Industry:            PgtextToString(industry),
			JobType:             PgtextToString(jobType),
			CompanySize:         PgtextToString(companySize),
			Status:              models.JobStatus(status),
			CreatedAt:           PgtypeToTime(createdAt),
			StatusChangedAt:     PgtypeToTimePtr(statusChangedAt),
			ApplicationDeadline: PgtypeToTimePtr(deadline),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read job records: %w", err)
	}

	return records, nil
}

const listActivityEventsQuery = `
SELECT id, user_id, job_id, type, occurred_at
FROM activity_events
WHERE user_id = $1 AND occurred_at >= $2
ORDER BY occurred_at ASC`

// ListActivityEvents は since 以降の活動イベントを発生日時昇順で返します
func (s *JobStore) ListActivityEvents(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.ActivityEvent, error) {
	rows, err := s.pool.Query(ctx, listActivityEventsQuery, UUIDToPgtype(userID), TimeToPgtype(since))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []models.ActivityEvent{}, nil
		}
		return nil, fmt.Errorf("failed to query activity events: %w", err)
	}
	defer rows.Close()

	events := make([]models.ActivityEvent, 0)
	for rows.Next() {
		var (
			id, rowUserID pgtype.UUID
			jobID         pgtype.UUID
			eventType     string
			occurredAt    pgtype.Timestamptz
		)

		if err := rows.Scan(&id, &rowUserID, &jobID, &eventType, &occurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity event: %w", err)
		}

		events = append(events, models.ActivityEvent{
			ID:         PgtypeToUUID(id),
			UserID:     PgtypeToUUID(rowUserID),
			JobID:      PgtypeToUUIDPtr(jobID),
			Type:       models.ActivityType(eventType),
			OccurredAt: PgtypeToTime(occurredAt),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity events: %w", err)
	}

	return events, nil
}
