package review

import (
	"fmt"
	"os"
	"strings"
)

// Notifier は週次ダイジェストを通知するインターフェースです
type Notifier interface {
	Notify(digest *WeeklyDigest) error
}

// StandardOutputNotifier は標準出力に通知するNotifierです
type StandardOutputNotifier struct{}

// NewStandardOutputNotifier は新しいStandardOutputNotifierを作成します
func NewStandardOutputNotifier() *StandardOutputNotifier {
	return &StandardOutputNotifier{}
}

// Notify は標準出力にダイジェストを表示します
func (n *StandardOutputNotifier) Notify(digest *WeeklyDigest) error {
	fmt.Println("\n========================================")
	fmt.Println("週次ダイジェスト")
	fmt.Printf("期間: %s 〜 %s\n",
		digest.Period.StartDate.Format("2006-01-02"),
		digest.Period.EndDate.Format("2006-01-02"))
	fmt.Println("========================================")

	fmt.Printf("新規応募: %d 件\n", digest.NewApplications)
	fmt.Printf("ステータス更新: %d 件\n", digest.StatusChanges)
	fmt.Printf("現在のストリーク: %d 日（最長 %d 日）\n",
		digest.Streak.CurrentStreak, digest.Streak.LongestStreak)
	fmt.Println()

	if len(digest.TopInsights) == 0 {
		fmt.Println("今週のインサイトはありません。")
	} else {
		fmt.Println("[インサイト]")
		for i, ins := range digest.TopInsights {
			fmt.Printf("  %d. %s\n", i+1, ins.Message)
		}
	}

	if len(digest.Recommendations) > 0 {
		fmt.Println("\n[推奨アクション]")
		for i, rec := range digest.Recommendations {
			fmt.Printf("  %d. %s\n", i+1, rec)
		}
	}

	fmt.Println("========================================")
	return nil
}

// FileNotifier はファイルに通知するNotifierです
type FileNotifier struct {
	FilePath string
}

// NewFileNotifier は新しいFileNotifierを作成します
func NewFileNotifier(filePath string) *FileNotifier {
	return &FileNotifier{
		FilePath: filePath,
	}
}

// Notify はファイルにダイジェストを書き込みます
func (n *FileNotifier) Notify(digest *WeeklyDigest) error {
	var sb strings.Builder

	sb.WriteString("========================================\n")
	sb.WriteString("週次ダイジェスト\n")
	sb.WriteString(fmt.Sprintf("期間: %s 〜 %s\n",
		digest.Period.StartDate.Format("2006-01-02"),
		digest.Period.EndDate.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("作成日時: %s\n", digest.GeneratedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString("========================================\n\n")

	sb.WriteString(fmt.Sprintf("新規応募: %d 件\n", digest.NewApplications))
	sb.WriteString(fmt.Sprintf("ステータス更新: %d 件\n", digest.StatusChanges))
	sb.WriteString(fmt.Sprintf("現在のストリーク: %d 日（最長 %d 日）\n", digest.Streak.CurrentStreak, digest.Streak.LongestStreak))
	sb.WriteString(fmt.Sprintf("今週の活動日数: %d 日\n\n", digest.Streak.WeeklyActiveDays))

	if len(digest.TopInsights) == 0 {
		sb.WriteString("今週のインサイトはありません。\n")
	} else {
		sb.WriteString("[インサイト]\n")
		for i, ins := range digest.TopInsights {
			sb.WriteString(fmt.Sprintf("  %d. (%s) %s\n", i+1, ins.Category, ins.Message))
		}
	}

	if len(digest.Recommendations) > 0 {
		sb.WriteString("\n[推奨アクション]\n")
		for i, rec := range digest.Recommendations {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, rec))
		}
	}

	sb.WriteString("========================================\n")

	// ファイルに書き込み（追記モード）
	f, err := os.OpenFile(n.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("ファイルを開けませんでした: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(sb.String()); err != nil {
		return fmt.Errorf("ファイルへの書き込みに失敗: %w", err)
	}

	return nil
}

// MultiNotifier は複数のNotifierに通知するNotifierです
type MultiNotifier struct {
	Notifiers []Notifier
}

// NewMultiNotifier は新しいMultiNotifierを作成します
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{
		Notifiers: notifiers,
	}
}

// Notify はすべてのNotifierに通知します
func (n *MultiNotifier) Notify(digest *WeeklyDigest) error {
	var errors []string

	for _, notifier := range n.Notifiers {
		if err := notifier.Notify(digest); err != nil {
			errors = append(errors, err.Error())
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("一部の通知に失敗しました: %s", strings.Join(errors, "; "))
	}

	return nil
}
