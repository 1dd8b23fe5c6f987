package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jinford/jobscope/internal/core/prediction"
	"github.com/jinford/jobscope/pkg/models"
)

// DefaultTTL はキャッシュエントリのデフォルト有効期間
// フィンガープリントが変われば別キーになるため、長めでも安全です
const DefaultTTL = 24 * time.Hour

// Config は Redis 接続の設定です
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient は Redis クライアントを作成し疎通を確認します
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// PredictionCache は prediction.Cache インターフェースの Redis 実装です
// 値は JSON で直列化され、有効期間の管理は Redis 側に任せます
type PredictionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPredictionCache は新しい PredictionCache を作成します
// ttl が 0 以下の場合は DefaultTTL を使用します
func NewPredictionCache(client *redis.Client, ttl time.Duration) *PredictionCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &PredictionCache{
		client: client,
		ttl:    ttl,
	}
}

// コンパイル時の型チェック
var _ prediction.Cache = (*PredictionCache)(nil)

// Get はキーに対応する予測一式を返します（ミス時は nil, nil）
func (c *PredictionCache) Get(ctx context.Context, key string) (*models.PredictionSet, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prediction set: %w", err)
	}

	var set models.PredictionSet
	if err := json.Unmarshal(payload, &set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prediction set: %w", err)
	}

	return &set, nil
}

// Set は予測一式を有効期間付きで保存します
func (c *PredictionCache) Set(ctx context.Context, key string, set *models.PredictionSet) error {
	payload, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to marshal prediction set: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store prediction set: %w", err)
	}

	return nil
}
