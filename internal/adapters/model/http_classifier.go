package model

import (
	"bytes"
	"carrier-match-service/internal/domain"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// HTTPClassifier delegates scoring to a remote endpoint that accepts
// {"features": [...]} and answers {"probability": p}.
type HTTPClassifier struct {
	URL     string
	session *http.Client
	backoff time.Duration
}

func NewHTTPClassifier(url string, client *http.Client) *HTTPClassifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClassifier{URL: url, session: client, backoff: 200 * time.Millisecond}
}

type scoreRequest struct {
	Features []float64 `json:"features"`
}

type scoreResponse struct {
	Probability *float64 `json:"probability"`
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (h *HTTPClassifier) PredictProbability(ctx context.Context, f domain.FeatureVector) (float64, error) {
	payload, err := json.Marshal(scoreRequest{Features: f.Slice()})
	if err != nil {
		return 0, fmt.Errorf("remote classifier: encode request: %w", err)
	}

	resp, err := h.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return 0, fmt.Errorf("remote classifier: %w", err)
	}
	defer resp.Body.Close()

	var out scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("remote classifier: decode response: %w", err)
	}
	if out.Probability == nil {
		return 0, errors.New("remote classifier: response has no probability")
	}

	return *out.Probability, nil
}

func (h *HTTPClassifier) do(req *http.Request) (*http.Response, error) {
	resp, err := h.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429 and 5xx) with
// exponential backoff while respecting context cancellation.
func (h *HTTPClassifier) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 4
	backoff := h.backoff

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := h.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
