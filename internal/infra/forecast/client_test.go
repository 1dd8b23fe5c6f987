package forecast

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jinford/jobscope/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJobs() []models.CompactJobRecord {
	return []models.CompactJobRecord{
		{
			ID:        uuid.MustParse("11111111-2222-3333-4444-555555555555"),
			Title:     "Backend Engineer",
			Company:   "Acme",
			Industry:  "Technology",
			Status:    models.StatusInterview,
			PrepCount: 2,
		},
	}
}

func successBody() string {
	return `{
		"predictions": [
			{"kind": "interview_probability", "score": 0.52, "confidence": 0.8},
			{"kind": "offer_probability", "score": 0.21, "confidence": 0.75},
			{"kind": "timeline_weeks", "score": 9, "confidence": 0.7}
		]
	}`
}

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()

	client, err := NewClient(serverURL, "test-key", WithBackoff(time.Millisecond))
	require.NoError(t, err)
	return client
}

func TestClient_Predict(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(successBody()))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	results, err := client.Predict(context.Background(), testJobs())
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, models.PredictionInterviewProbability, results[0].Kind)
	assert.InDelta(t, 0.52, results[0].Score, 1e-9)
	assert.Equal(t, models.PredictionTimelineWeeks, results[2].Kind)

	// リクエストの形を確認
	assert.Equal(t, "/predictions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)

	var req predictRequest
	require.NoError(t, json.Unmarshal(gotBody, &req))
	require.Len(t, req.Jobs, 1)
	assert.Equal(t, "Backend Engineer", req.Jobs[0].Title)
	assert.Equal(t, 2, req.Jobs[0].PrepCount)
}

func TestClient_Predict_RetriesOnServerError(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			http.Error(w, "temporarily down", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(successBody()))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	results, err := client.Predict(context.Background(), testJobs())
	require.NoError(t, err, "5xxはリトライで回復すべき")
	assert.Len(t, results, 3)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Predict_RetriesOnRateLimit(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(successBody()))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Predict(context.Background(), testJobs())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_Predict_ExhaustsRetries(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "still down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Predict(context.Background(), testJobs())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForecastUnavailable)
	assert.Equal(t, int32(MaxRetries+1), calls.Load(), "初回+最大リトライ回数だけ呼ぶべき")
}

func TestClient_Predict_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Predict(context.Background(), testJobs())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Equal(t, int32(1), calls.Load(), "4xxはリトライしないべき")
}

func TestClient_Predict_EmptyPredictions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"predictions": []}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Predict(context.Background(), testJobs())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyPredictions)
}

func TestClient_Predict_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Predict(context.Background(), testJobs())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Predict_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "", WithBackoff(time.Hour))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err = client.Predict(ctx, testJobs())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled, "バックオフ待機中のキャンセルを尊重すべき")
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient("", "key")
	assert.ErrorIs(t, err, ErrBaseURLNotSet)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predictions", r.URL.Path)
		_, _ = w.Write([]byte(successBody()))
	}))
	defer server.Close()

	client, err := NewClient(server.URL+"/", "key")
	require.NoError(t, err)

	_, err = client.Predict(context.Background(), testJobs())
	assert.NoError(t, err)
}
