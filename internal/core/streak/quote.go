package streak

import "time"

// quotes は日替わりで表示する応援メッセージの一覧
var quotes = []string{
	"小さな一歩の積み重ねが、大きな結果につながります。",
	"昨日の自分より一歩前へ。今日も活動を続けましょう。",
	"不採用は終わりではなく、合う場所を探す過程です。",
	"準備を続けた人にチャンスは訪れます。",
	"焦らず、止まらず。自分のペースで進みましょう。",
	"今日の応募が、未来の内定をつくります。",
	"振り返りは前進の一部です。数字を味方につけましょう。",
	"続けること自体が、すでに強みです。",
}

// QuoteOfTheDay は日付から決定的に選ばれる応援メッセージを返す
// 乱数は使わず、同じ暦日には必ず同じメッセージを返す
func QuoteOfTheDay(now time.Time) string {
	return quotes[now.YearDay()%len(quotes)]
}
