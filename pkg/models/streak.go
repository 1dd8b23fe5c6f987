package models

import "time"

// StreakData は連続活動日数と活動量の集計を表します
// 活動日付の集合から都度算出され、このエンジンが永続化することはありません
type StreakData struct {
	CurrentStreak     int        `json:"currentStreak"`     // 今日または昨日を起点とする連続日数
	LongestStreak     int        `json:"longestStreak"`     // 過去最長の連続日数
	LastActivityDate  *time.Time `json:"lastActivityDate,omitempty"`
	StreakStartDate   time.Time  `json:"streakStartDate"`   // 現ストリークの開始日（ストリーク0なら今日）
	TotalActiveDays   int        `json:"totalActiveDays"`   // 観測期間内の活動日数
	WeeklyActiveDays  int        `json:"weeklyActiveDays"`  // 直近7日間の活動日数
	MonthlyActiveDays int        `json:"monthlyActiveDays"` // 当月の活動日数
}
