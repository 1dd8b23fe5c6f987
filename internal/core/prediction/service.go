package prediction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/jinford/jobscope/internal/core/fingerprint"
	"github.com/jinford/jobscope/pkg/models"
)

// Forecaster はリモート予測モデルへの呼び出しインターフェース
type Forecaster interface {
	// Predict はコンパクトなレコード一式から予測を生成する
	Predict(ctx context.Context, jobs []models.CompactJobRecord) ([]models.PredictionResult, error)
}

// Cache は (ユーザー, フィンガープリント) 単位の予測キャッシュインターフェース
// Get はミス時に (nil, nil) を返す。エントリの失効はキャッシュ実装側の責務で、
// このサービスが無効化することはない
type Cache interface {
	Get(ctx context.Context, key string) (*models.PredictionSet, error)
	Set(ctx context.Context, key string, set *models.PredictionSet) error
}

// CacheKey は予測キャッシュのキーを組み立てる
func CacheKey(userID uuid.UUID, fp string) string {
	return fmt.Sprintf("prediction:%s:%s", userID, fp)
}

// Service は予測の取得とフォールバックのビジネスロジックを提供する
// 同一フィンガープリントに対する計算は高々1回で、以降はキャッシュが応答する
type Service struct {
	cache      Cache
	forecaster Forecaster // nil の場合は常にローカルシミュレーション
	group      singleflight.Group
	logger     *slog.Logger
}

// ServiceOption は Service 構築時のオプション
type ServiceOption func(*Service)

// WithPredictionLogger はロガーを差し替える
func WithPredictionLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService は新しい Service を作成する
// forecaster に nil を渡すとリモート呼び出しを行わない構成になる
func NewService(cache Cache, forecaster Forecaster, opts ...ServiceOption) *Service {
	s := &Service{
		cache:      cache,
		forecaster: forecaster,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run は応募レコード一式に対する予測一式を返す
// キャッシュヒット時はリモート呼び出しもシミュレーションも行わない
// リモートが失敗しても必ず使用可能な予測を返し、失敗はログにのみ現れる
func (s *Service) Run(ctx context.Context, userID uuid.UUID, records []models.JobRecord, activities []models.ActivityEvent) *models.PredictionSet {
	fp := fingerprint.Compute(records)

	// 未認証またはレコードなしの場合は中立の空結果を返す
	if userID == uuid.Nil || len(records) == 0 {
		return &models.PredictionSet{
			UserID:      userID,
			Fingerprint: fp,
			Predictions: []models.PredictionResult{},
			Simulated:   true,
			GeneratedAt: time.Now(),
		}
	}

	key := CacheKey(userID, fp)
	if cached := s.lookup(ctx, key); cached != nil {
		return cached
	}

	// 同一キーの同時リクエストは1回の計算に合流させる
	v, _, _ := s.group.Do(key, func() (interface{}, error) {
		// 合流待ちの間に他のリクエストが書き込んだ結果を拾う
		if cached := s.lookup(ctx, key); cached != nil {
			return cached, nil
		}

		set := s.compute(ctx, userID, fp, records, activities)
		if err := s.cache.Set(ctx, key, set); err != nil {
			s.logger.Warn("failed to cache prediction set", "key", key, "error", err)
		}
		return set, nil
	})
	return v.(*models.PredictionSet)
}

// RunSimulated はリモート呼び出しを行わず、シミュレーション予測のみを生成する
// 強制シミュレーションの結果はキャッシュを汚染しないよう書き込まない
func (s *Service) RunSimulated(userID uuid.UUID, records []models.JobRecord) *models.PredictionSet {
	return &models.PredictionSet{
		UserID:      userID,
		Fingerprint: fingerprint.Compute(records),
		Predictions: Simulate(records),
		Simulated:   true,
		GeneratedAt: time.Now(),
	}
}

// lookup はキャッシュを確認する。参照エラーはミスとして扱い、ログにのみ残す
func (s *Service) lookup(ctx context.Context, key string) *models.PredictionSet {
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("prediction cache lookup failed", "key", key, "error", err)
		return nil
	}
	return cached
}

// compute はリモート予測を試み、失敗時はシミュレーションへ落とす
func (s *Service) compute(ctx context.Context, userID uuid.UUID, fp string, records []models.JobRecord, activities []models.ActivityEvent) *models.PredictionSet {
	if s.forecaster != nil {
		predictions, err := s.forecaster.Predict(ctx, CompactRecords(records, activities))
		switch {
		case err != nil:
			s.logger.Warn("remote prediction failed, falling back to simulation", "error", err)
		case len(predictions) == 0:
			s.logger.Warn("remote prediction returned no results, falling back to simulation")
		default:
			for i := range predictions {
				predictions[i].Simulated = false
			}
			return &models.PredictionSet{
				UserID:      userID,
				Fingerprint: fp,
				Predictions: predictions,
				Simulated:   false,
				GeneratedAt: time.Now(),
			}
		}
	}

	return &models.PredictionSet{
		UserID:      userID,
		Fingerprint: fp,
		Predictions: Simulate(records),
		Simulated:   true,
		GeneratedAt: time.Now(),
	}
}

// CompactRecords はフルレコードをリモート予測モデル向けの形に圧縮する
// 準備セッション数は応募に紐づく prep_session イベントから数える
func CompactRecords(records []models.JobRecord, activities []models.ActivityEvent) []models.CompactJobRecord {
	prepCounts := make(map[uuid.UUID]int)
	for i := range activities {
		if activities[i].Type == models.ActivityPrepSession && activities[i].JobID != nil {
			prepCounts[*activities[i].JobID]++
		}
	}

	compact := make([]models.CompactJobRecord, 0, len(records))
	for i := range records {
		r := &records[i]
		compact = append(compact, models.CompactJobRecord{
			ID:        r.ID,
			Title:     r.Title,
			Company:   r.Company,
			Industry:  r.Industry,
			Status:    r.Status,
			PrepCount: prepCounts[r.ID],
		})
	}
	return compact
}
