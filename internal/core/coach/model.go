package coach

import (
	"github.com/google/uuid"
	"github.com/samber/mo"
)

// AdviceParams はコーチングアドバイス生成のパラメータを表す
type AdviceParams struct {
	UserID    uuid.UUID
	FocusArea mo.Option[string] // 重点的に見てほしい領域（書類・面接など）
	Question  mo.Option[string] // ユーザーからの自由質問
}

// Advice はコーチングアドバイスの結果を表す
type Advice struct {
	Summary      string // LLMによるアドバイス本文
	PromptTokens int    // 送信したプロンプトのトークン数（カウンタ未設定なら0）
}
