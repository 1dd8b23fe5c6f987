package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinford/jobscope/pkg/models"
	"github.com/samber/mo"
)

// JobStore はイベントストアへの読み取り専用アクセスを表すポートです
// 応募レコードと活動ログはこのエンジンの外で管理され、ここでは一切変更しません
type JobStore interface {
	// ListJobRecords はユーザーの全応募レコードを作成日時昇順で返す
	ListJobRecords(ctx context.Context, userID uuid.UUID) ([]models.JobRecord, error)

	// ListActivityEvents は since 以降の活動イベントを発生日時昇順で返す
	ListActivityEvents(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.ActivityEvent, error)
}

// GroupBy は成功率・応答日数の集計軸を表します
type GroupBy string

const (
	GroupByIndustry    GroupBy = "industry"
	GroupByJobType     GroupBy = "job_type"
	GroupByCompanySize GroupBy = "company_size"
	GroupByRoleType    GroupBy = "role_type"
)

// ParseGroupBy は文字列を GroupBy に変換します
func ParseGroupBy(s string) (GroupBy, error) {
	switch GroupBy(s) {
	case GroupByIndustry, GroupByJobType, GroupByCompanySize, GroupByRoleType:
		return GroupBy(s), nil
	default:
		return "", fmt.Errorf("unknown group-by key: %s", s)
	}
}

// groupKey はレコードから集計キーを取り出します
// 欠損値は UnknownGroup に正規化します
func groupKey(r *models.JobRecord, groupBy GroupBy) string {
	var value string
	switch groupBy {
	case GroupByIndustry:
		value = r.Industry
	case GroupByJobType:
		value = r.JobType
	case GroupByCompanySize:
		value = r.CompanySize
	case GroupByRoleType:
		value = r.RoleType()
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return models.UnknownGroup
	}
	return value
}

// Filter は集計前の絞り込み条件を表します
// 指定のないフィールドはすべてのレコードを通します
type Filter struct {
	Company  mo.Option[string] // 会社名の完全一致（大文字小文字を無視）
	Role     mo.Option[string] // タイトルの部分一致（大文字小文字を無視）
	Industry mo.Option[string] // 業界の完全一致（大文字小文字を無視）
}

// Apply はフィルタ条件に合致するレコードのみを返します
// すべての条件が未指定なら入力をそのまま返します
func (f Filter) Apply(records []models.JobRecord) []models.JobRecord {
	if f.Company.IsAbsent() && f.Role.IsAbsent() && f.Industry.IsAbsent() {
		return records
	}

	filtered := make([]models.JobRecord, 0, len(records))
	for _, r := range records {
		if company, ok := f.Company.Get(); ok && !strings.EqualFold(r.Company, company) {
			continue
		}
		if role, ok := f.Role.Get(); ok && !strings.Contains(strings.ToLower(r.Title), strings.ToLower(role)) {
			continue
		}
		if industry, ok := f.Industry.Get(); ok && !strings.EqualFold(r.Industry, industry) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}
