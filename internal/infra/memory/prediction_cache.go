package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jinford/jobscope/internal/core/prediction"
	"github.com/jinford/jobscope/pkg/models"
)

// DefaultTTL はエントリのデフォルト有効期間
const DefaultTTL = time.Hour

// PredictionCache は prediction.Cache インターフェースのインメモリ実装です
// Redis が構成されていない環境向けのプロセスローカルなキャッシュで、
// 有効期間を過ぎたエントリは次回アクセス時に破棄されます
type PredictionCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
}

type entry struct {
	set       *models.PredictionSet
	expiresAt time.Time
}

// NewPredictionCache は新しい PredictionCache を作成します
// ttl が 0 以下の場合は DefaultTTL を使用します
func NewPredictionCache(ttl time.Duration) *PredictionCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &PredictionCache{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

// コンパイル時の型チェック
var _ prediction.Cache = (*PredictionCache)(nil)

// Get はキーに対応する予測一式を返します（ミス時は nil, nil）
func (c *PredictionCache) Get(ctx context.Context, key string) (*models.PredictionSet, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, nil
	}

	return e.set, nil
}

// Set は予測一式を有効期間付きで保存します
func (c *PredictionCache) Set(ctx context.Context, key string, set *models.PredictionSet) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		set:       set,
		expiresAt: time.Now().Add(c.ttl),
	}

	return nil
}
