package fingerprint

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jinford/jobscope/pkg/models"
)

// EmptyFingerprint は応募レコードが1件もない場合の予約センチネルです
const EmptyFingerprint = "no-jobs"

// versionPrefix はハッシュ形式のバージョン識別子です
// キーの互換性が壊れる変更をした場合はここを上げます
const versionPrefix = "v1_"

// Compute は応募レコード集合から順序非依存のフィンガープリントを計算します
// 同一内容のレコード集合は並び順によらず同一の値になり、いずれかのフィールドが
// 変化すればほぼ確実に異なる値になります（キャッシュキー用途のため衝突は許容）
func Compute(records []models.JobRecord) string {
	if len(records) == 0 {
		return EmptyFingerprint
	}

	keys := make([]string, 0, len(records))
	for i := range records {
		keys = append(keys, recordKey(&records[i]))
	}

	// 辞書順ソートで順序非依存性を保証する
	sort.Strings(keys)
	joined := strings.Join(keys, "\n")

	return fmt.Sprintf("%s%08x", versionPrefix, djb2(joined))
}

// recordKey は1レコード分の区切り文字列を構築します
// 欠損フィールドは空文字列として扱います
func recordKey(r *models.JobRecord) string {
	id := ""
	if r.ID != uuid.Nil {
		id = r.ID.String()
	}
	changed := ""
	if r.StatusChangedAt != nil {
		changed = strconv.FormatInt(r.StatusChangedAt.UnixMilli(), 10)
	}
	created := ""
	if !r.CreatedAt.IsZero() {
		created = strconv.FormatInt(r.CreatedAt.UnixMilli(), 10)
	}
	return id + "|" + string(r.Status) + "|" + changed + "|" + created
}

// djb2 は DJB2 方式のローリングハッシュを計算します
// 暗号学的強度は不要で、性能キャッシュのキーを分散させるだけの用途です
func djb2(s string) uint32 {
	h := uint32(5381)
	for i := 0; i < len(s); i++ {
		h = (h * 33) ^ uint32(s[i])
	}
	return h
}
