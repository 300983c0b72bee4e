package fplapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fplarchive/pipeline/internal/platform/logging"
	"github.com/fplarchive/pipeline/internal/platform/resilience"
)

const (
	defaultBaseURL     = "https://fantasy.premierleague.com/api"
	defaultTimeout     = 30 * time.Second
	defaultConcurrency = 20
	maxResponseBytes   = 16 << 20
)

var errFPLTransient = crerr.New("fpl transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Retry          RetryPolicy
	Concurrency    int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches the bulk snapshot document and per-player detail documents
// from the upstream API. Detail fan-out respects a global concurrency
// ceiling and retries transient failures per request.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	retry          RetryPolicy
	concurrency    int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = cfg.Timeout
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		retry:          cfg.Retry.normalize(),
		concurrency:    concurrency,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchBootstrap retrieves the bulk snapshot. It is the prerequisite for a
// run: the caller derives the active scheduling round from it before any
// per-player fan-out begins.
func (c *Client) FetchBootstrap(ctx context.Context) (BootstrapDocument, []byte, error) {
	var doc BootstrapDocument
	raw, err := c.doJSON(ctx, "/bootstrap-static/", &doc)
	if err != nil {
		return BootstrapDocument{}, nil, fmt.Errorf("fetch bootstrap: %w", err)
	}
	return doc, raw, nil
}

// FetchPlayerDetail retrieves one player's detail document.
func (c *Client) FetchPlayerDetail(ctx context.Context, playerID int64) (*ElementSummary, error) {
	var doc ElementSummary
	path := fmt.Sprintf("/element-summary/%d/", playerID)
	if _, err := c.doJSON(ctx, path, &doc); err != nil {
		return nil, fmt.Errorf("fetch player detail player_id=%d: %w", playerID, err)
	}
	return &doc, nil
}

// FetchPlayerDetails fans out detail fetches for every id through a worker
// pool sized to the concurrency ceiling. The returned slice is aligned 1:1
// with ids: each position holds either the decoded document or the terminal
// failure for that player. One player's failure never cancels the others,
// and the batch itself never fails because of an individual player.
func (c *Client) FetchPlayerDetails(ctx context.Context, ids []int64) []DetailResult {
	results := make([]DetailResult, len(ids))
	if len(ids) == 0 {
		return results
	}

	pool, err := ants.NewPool(c.concurrency)
	if err != nil {
		for idx, id := range ids {
			results[idx] = DetailResult{PlayerID: id, Err: fmt.Errorf("create worker pool: %w", err)}
		}
		return results
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for idx, id := range ids {
		workers.Add(1)
		if submitErr := pool.Submit(func() {
			defer workers.Done()
			doc, fetchErr := c.FetchPlayerDetail(ctx, id)
			results[idx] = DetailResult{PlayerID: id, Doc: doc, Err: fetchErr}
		}); submitErr != nil {
			workers.Done()
			results[idx] = DetailResult{PlayerID: id, Err: fmt.Errorf("submit fetch task: %w", submitErr)}
		}
	}
	workers.Wait()

	return results
}

func (c *Client) doJSON(ctx context.Context, path string, target any) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "fpl circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: upstream is temporarily unavailable", err)
		}
	}

	raw, err := c.executeRequest(ctx, c.baseURL+path)
	if c.circuitEnabled {
		if err != nil && stderrors.Is(err, errFPLTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return nil, err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}

	return raw, nil
}

// executeRequest runs one logical request with the client's retry policy.
// Transport errors and retryable statuses are retried with backoff; other
// statuses fail immediately.
func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.retry.MaxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errFPLTransient, err)
		} else {
			raw, readErr := readBody(resp.Body)
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errFPLTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errFPLTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.retry.MaxAttempts-1 {
			break
		}

		timer := time.NewTimer(c.retry.Delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "fpl request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func readBody(body io.ReadCloser) ([]byte, error) {
	defer func() {
		_ = body.Close()
	}()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := io.Copy(buf, io.LimitReader(body, maxResponseBytes)); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.Bytes()...), nil
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
