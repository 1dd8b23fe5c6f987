package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/jinford/jobscope/internal/core/prediction"
	"github.com/jinford/jobscope/pkg/models"
)

const (
	// DefaultTimeout はAPI呼び出しのデフォルトタイムアウト
	DefaultTimeout = 10 * time.Second

	// MaxRetries はレート制限・サーバーエラー時の最大リトライ回数
	MaxRetries = 3

	// BaseBackoff はExponential Backoffの基底時間
	BaseBackoff = 500 * time.Millisecond

	// MaxBackoff はExponential Backoffの最大待機時間
	MaxBackoff = 8 * time.Second
)

var (
	// ErrBaseURLNotSet はベースURLが設定されていない場合のエラー
	ErrBaseURLNotSet = errors.New("forecast base URL not set")

	// ErrForecastUnavailable はリトライしても予測APIが応答しない場合のエラー
	ErrForecastUnavailable = errors.New("forecast service unavailable")

	// ErrInvalidResponse は不正なレスポンス形式のエラー
	ErrInvalidResponse = errors.New("invalid forecast response")

	// ErrEmptyPredictions は予測が1件も返らなかった場合のエラー
	ErrEmptyPredictions = errors.New("forecast returned no predictions")
)

// Client は外部予測モデルAPIのHTTPクライアントです
// 呼び出しが失敗した場合のフォールバックは prediction.Service 側が担うため、
// ここでは分類済みのエラーを返すことだけに責任を持ちます
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	baseBackoff time.Duration
}

// ClientOption は Client 構築時のオプションです
type ClientOption func(*Client)

// WithHTTPClient はHTTPクライアントを差し替えます
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout はAPI呼び出しのタイムアウトを設定します
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithBackoff はリトライ間隔の基底時間を設定します
func WithBackoff(backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.baseBackoff = backoff
	}
}

// NewClient は新しい Client を作成します
func NewClient(baseURL, apiKey string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, ErrBaseURLNotSet
	}

	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		baseBackoff: BaseBackoff,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// コンパイル時の型チェック
var _ prediction.Forecaster = (*Client)(nil)

type predictRequest struct {
	Jobs []models.CompactJobRecord `json:"jobs"`
}

type predictResponse struct {
	Predictions []models.PredictionResult `json:"predictions"`
}

// Predict はコンパクトなレコード一式を予測APIへ送り、予測結果を返します
// 429 と 5xx はExponential Backoffでリトライし、それ以外の失敗は即時に返します
func (c *Client) Predict(ctx context.Context, jobs []models.CompactJobRecord) ([]models.PredictionResult, error) {
	payload, err := json.Marshal(predictRequest{Jobs: jobs})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal forecast request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * c.baseBackoff
			if backoff > MaxBackoff {
				backoff = MaxBackoff
			}

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		results, retryable, err := c.predictOnce(ctx, payload)
		if err == nil {
			return results, nil
		}

		lastErr = err
		if !retryable {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrForecastUnavailable, lastErr)
}

// predictOnce は1回分のAPI呼び出しを行い、リトライ可能かどうかを合わせて返します
func (c *Client) predictOnce(ctx context.Context, payload []byte) ([]models.PredictionResult, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predictions", bytes.NewReader(payload))
	if err != nil {
		return nil, false, fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response body: %w", err)
	}

	// 429 と 5xx は一時障害としてリトライ対象
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("forecast API returned status %d: %s", resp.StatusCode, string(body))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("forecast API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed predictResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if len(parsed.Predictions) == 0 {
		return nil, false, ErrEmptyPredictions
	}

	return parsed.Predictions, false, nil
}
