package fplapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond, Multiplier: 2, MaxDelay: 5 * time.Millisecond}
}

func TestClient_FetchBootstrap(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bootstrap-static/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{
			"events": [{"id": 3, "is_current": true}],
			"teams": [{"id": 1, "name": "Arsenal"}],
			"elements": [{"id": 10, "code": 223094}]
		}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Retry: testRetryPolicy()})

	doc, raw, err := client.FetchBootstrap(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	require.Len(t, doc.Events, 1)
	require.Len(t, doc.Teams, 1)
	require.Len(t, doc.Elements, 1)
	assert.Equal(t, true, doc.Events[0]["is_current"])
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"fixtures": [], "history": [], "history_past": []}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Retry: testRetryPolicy()})

	doc, err := client.FetchPlayerDetail(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_ExhaustedRetriesAreTerminal(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Retry: testRetryPolicy()})

	_, err := client.FetchPlayerDetail(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_NonRetryableStatusFailsFast(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Retry: testRetryPolicy()})

	_, err := client.FetchPlayerDetail(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "non-retryable status must not be retried")
}

func TestClient_FetchPlayerDetails_PartialFailureIsolation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/element-summary/5/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"fixtures": [{"id": 1}], "history": [], "history_past": []}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Retry: testRetryPolicy()})

	ids := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	results := client.FetchPlayerDetails(context.Background(), ids)
	require.Len(t, results, len(ids))

	failed := 0
	for idx, result := range results {
		assert.Equal(t, ids[idx], result.PlayerID, "results must align with input order")
		if result.Failed() {
			failed++
			assert.Equal(t, int64(5), result.PlayerID)
			assert.Nil(t, result.Doc)
			continue
		}
		require.NotNil(t, result.Doc)
		assert.Len(t, result.Doc.Fixtures, 1)
	}
	assert.Equal(t, 1, failed)
}

func TestClient_FetchPlayerDetails_ConcurrencyCeiling(t *testing.T) {
	t.Parallel()

	var inFlight, peak atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		current := inFlight.Add(1)
		for {
			observed := peak.Load()
			if current <= observed || peak.CompareAndSwap(observed, current) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		_, _ = w.Write([]byte(`{"fixtures": [], "history": [], "history_past": []}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Retry: testRetryPolicy(), Concurrency: 2})

	results := client.FetchPlayerDetails(context.Background(), []int64{1, 2, 3, 4, 5})
	for _, result := range results {
		require.NoError(t, result.Err)
	}
	assert.LessOrEqual(t, peak.Load(), int32(2), "no more than 2 fetches may be in flight")
}

func TestRetryPolicy_Delay(t *testing.T) {
	t.Parallel()

	policy := RetryPolicy{MaxAttempts: 5, BaseDelay: time.Second, Multiplier: 2, MaxDelay: 5 * time.Second}
	assert.Equal(t, time.Second, policy.Delay(0))
	assert.Equal(t, 2*time.Second, policy.Delay(1))
	assert.Equal(t, 4*time.Second, policy.Delay(2))
	assert.Equal(t, 5*time.Second, policy.Delay(3), "delay is capped")
	assert.Equal(t, 5*time.Second, policy.Delay(10))
}
