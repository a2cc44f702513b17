package triage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pars-health/triage-api/models"
)

// Client mediates one risk-assessment request per submission. It prefers
// the remote scoring model but guarantees a usable result by falling back to
// the local scorer on any failure, so intake never blocks on the model
// being up.
type Client struct {
	endpoint string
	http     *http.Client

	mu         sync.Mutex
	loading    bool
	lastErr    error
	lastResult *models.TriageResult
}

// NewClient returns a scoring client for the given endpoint base URL. The
// timeout bounds the remote call before the local scorer takes over.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// Assess scores one patient. The returned result is always usable; a
// non-nil error means the remote model was unavailable and the result came
// from the local fallback scorer. The error is advisory, surfaced to the
// user as a banner, never as a failed submission.
func (c *Client) Assess(ctx context.Context, in models.TriageInput) (models.TriageResult, error) {
	c.mu.Lock()
	c.loading = true
	c.lastErr = nil
	c.mu.Unlock()

	result, err := c.predict(ctx, in)
	if err != nil {
		zap.S().With(err).Warn("remote scoring unavailable, using local fallback")
		result = Score(in)
	}

	c.mu.Lock()
	c.loading = false
	c.lastErr = err
	snapshot := result
	c.lastResult = &snapshot
	c.mu.Unlock()

	return result, err
}

func (c *Client) predict(ctx context.Context, in models.TriageInput) (models.TriageResult, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return models.TriageResult{}, fmt.Errorf("failed to marshal scoring request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/predict", bytes.NewReader(body))
	if err != nil {
		return models.TriageResult{}, fmt.Errorf("failed to build scoring request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.TriageResult{}, fmt.Errorf("scoring request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.TriageResult{}, fmt.Errorf("scoring API error: %v", resp.StatusCode)
	}

	var result models.TriageResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.TriageResult{}, fmt.Errorf("malformed scoring response: %w", err)
	}
	if err := validateResult(result); err != nil {
		return models.TriageResult{}, err
	}
	return result, nil
}

// validateResult rejects responses that do not match the expected shape so
// they route through the fallback instead of reaching the queue.
func validateResult(r models.TriageResult) error {
	switch r.RiskLabel {
	case models.RiskLabelHigh, models.RiskLabelMedium, models.RiskLabelLow:
	default:
		return fmt.Errorf("malformed scoring response: unknown risk label %q", r.RiskLabel)
	}
	if r.RiskScore < 0 || r.RiskScore > 1 {
		return fmt.Errorf("malformed scoring response: risk score %v out of range", r.RiskScore)
	}
	return nil
}

// Loading reports whether a remote call is outstanding.
func (c *Client) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// LastError returns the failure reason of the most recent assessment, or
// nil if it was served remotely. Cleared at the start of each attempt.
func (c *Client) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// LastResult returns the most recent assessment, remote or fallback.
// Concurrent assessments are independent; the newest resolution wins.
func (c *Client) LastResult() *models.TriageResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastResult
}
