package streak

import (
	"sort"
	"time"

	"github.com/jinford/jobscope/pkg/models"
)

const (
	// LookbackDays はストリーク計算に渡す活動履歴の参照期間（日数）
	// 現在のストリークはこれより古い履歴に影響されない
	LookbackDays = 30

	dateLayout = "2006-01-02"
)

// Calculate は活動イベントからストリーク集計を算出する
// 同じ暦日に複数のイベントがあっても活動日としては1日と数える
func Calculate(events []models.ActivityEvent, now time.Time) models.StreakData {
	loc := now.Location()
	localNow := now.In(loc)
	today := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, loc)

	// 活動があった暦日の集合と最終活動時刻を集める
	seen := make(map[string]bool)
	var last *time.Time
	for i := range events {
		occurred := events[i].OccurredAt.In(loc)
		seen[occurred.Format(dateLayout)] = true
		if last == nil || occurred.After(*last) {
			t := occurred
			last = &t
		}
	}

	data := models.StreakData{
		LastActivityDate: last,
		StreakStartDate:  today,
		TotalActiveDays:  len(seen),
	}
	if len(seen) == 0 {
		return data
	}

	// 今日または昨日を起点として、活動日が続く限り1日ずつ遡る
	cursor := today
	if !seen[cursor.Format(dateLayout)] {
		cursor = cursor.AddDate(0, 0, -1)
	}
	for seen[cursor.Format(dateLayout)] {
		data.CurrentStreak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	if data.CurrentStreak > 0 {
		data.StreakStartDate = today.AddDate(0, 0, -(data.CurrentStreak - 1))
	}

	// 活動日を昇順に並べ、暦日がちょうど1日ずつ連続する区間の最長を求める
	dates := make([]time.Time, 0, len(seen))
	for key := range seen {
		if d, err := time.ParseInLocation(dateLayout, key, loc); err == nil {
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest := 0
	run := 0
	for i := range dates {
		if i > 0 && dates[i-1].AddDate(0, 0, 1).Equal(dates[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	if data.CurrentStreak > longest {
		longest = data.CurrentStreak
	}
	data.LongestStreak = longest

	// 直近7日間と当月の活動日数
	weekStart := today.AddDate(0, 0, -6)
	for _, d := range dates {
		if !d.Before(weekStart) && !d.After(today) {
			data.WeeklyActiveDays++
		}
		if d.Year() == today.Year() && d.Month() == today.Month() {
			data.MonthlyActiveDays++
		}
	}

	return data
}
