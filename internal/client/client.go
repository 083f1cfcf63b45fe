// Package client calls the mangala HTTP API. Unless configured strict, a
// failed call is logged and answered with canned mock data so that
// interactive callers keep working offline.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/mangala/internal/conflict"
	"github.com/alexanderramin/mangala/internal/domain"
	"github.com/alexanderramin/mangala/internal/generator"
)

type Client struct {
	cfg      Config
	http     *http.Client
	observer Observer
	logger   *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: NoopObserver{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cfg.Endpoint = strings.TrimRight(c.cfg.Endpoint, "/")
	return c
}

type successResponse struct {
	Success bool `json:"success"`
}

type conflictListResponse struct {
	Conflicts []domain.Conflict `json:"conflicts"`
}

func (c *Client) GenerateRitualTasks(ctx context.Context, req generator.GenerationRequest) (*generator.GenerationResponse, error) {
	var resp generator.GenerationResponse
	err := c.call(ctx, "generate-ritual-tasks", http.MethodPost, "/api/rituals/tasks", req, &resp)
	if err != nil {
		if c.cfg.Strict {
			return nil, err
		}
		c.fallback(ctx, "generate-ritual-tasks", err)
		return mockGenerationResponse(req.WeddingDate), nil
	}
	return &resp, nil
}

func (c *Client) DetectConflicts(ctx context.Context, req conflict.DetectionRequest) (*conflict.DetectionResponse, error) {
	var resp conflict.DetectionResponse
	err := c.call(ctx, "detect-conflicts", http.MethodPost, "/api/conflicts/detect", req, &resp)
	if err != nil {
		if c.cfg.Strict {
			return nil, err
		}
		c.fallback(ctx, "detect-conflicts", err)
		return mockDetectionResponse(req.WeddingID), nil
	}
	return &resp, nil
}

// ListConflicts has no mock fallback; stored conflicts only exist on the
// server.
func (c *Client) ListConflicts(ctx context.Context, weddingID string, status domain.ConflictStatus) ([]domain.Conflict, error) {
	q := url.Values{"wedding_id": {weddingID}}
	if status != "" {
		q.Set("status", string(status))
	}
	var resp conflictListResponse
	if err := c.call(ctx, "list-conflicts", http.MethodGet, "/api/conflicts?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Conflicts, nil
}

// GetConflict fetches one stored conflict. Like ListConflicts it never
// falls back to mock data.
func (c *Client) GetConflict(ctx context.Context, conflictID string) (*domain.Conflict, error) {
	var out domain.Conflict
	if err := c.call(ctx, "get-conflict", http.MethodGet, "/api/conflicts/"+url.PathEscape(conflictID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResolveConflict(ctx context.Context, conflictID, resolutionID string) (bool, error) {
	body := map[string]string{"resolutionId": resolutionID}
	return c.transition(ctx, "resolve-conflict", conflictID, "resolve", body)
}

func (c *Client) DismissConflict(ctx context.Context, conflictID, reason string) (bool, error) {
	body := map[string]string{"reason": reason}
	return c.transition(ctx, "dismiss-conflict", conflictID, "dismiss", body)
}

func (c *Client) transition(ctx context.Context, op, conflictID, action string, body any) (bool, error) {
	var resp successResponse
	path := "/api/conflicts/" + url.PathEscape(conflictID) + "/" + action
	if err := c.call(ctx, op, http.MethodPost, path, body, &resp); err != nil {
		if c.cfg.Strict {
			return false, err
		}
		c.fallback(ctx, op, err)
		return true, nil
	}
	return resp.Success, nil
}

func (c *Client) fallback(ctx context.Context, op string, err error) {
	c.logger.WarnContext(ctx, "planning server call failed, using mock data",
		"operation", op, "error", err)
}

// call sends one request with the configured timeout and retries. Retries
// stop once the context is done or the server rejects the request.
func (c *Client) call(ctx context.Context, op, method, path string, in, out any) error {
	start := time.Now()

	var payload []byte
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		payload = data
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var lastErr error
	attempts := max(1+c.cfg.MaxRetries, 1)
	made := 0
	for range attempts {
		made++
		err := c.doRequest(ctx, method, path, payload, out)
		if err == nil {
			c.observer.OnCallComplete(ctx, CallEvent{
				Operation: op,
				Attempts:  made,
				LatencyMs: time.Since(start).Milliseconds(),
				Success:   true,
			})
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
		var se *StatusError
		if errors.As(err, &se) && !se.retryable() {
			break
		}
	}

	err := classify(ctx, lastErr, made)
	c.observer.OnCallComplete(ctx, CallEvent{
		Operation: op,
		Attempts:  made,
		LatencyMs: time.Since(start).Milliseconds(),
		ErrorCode: errorCode(err),
		Fallback:  !c.cfg.Strict,
	})
	return err
}

func classify(ctx context.Context, err error, attempts int) error {
	var se *StatusError
	switch {
	case ctx.Err() != nil:
		return ErrTimeout
	case errors.As(err, &se) && !se.retryable():
		return err
	case isConnectionError(err):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	case attempts > 1:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
	return err
}

func (c *Client) doRequest(ctx context.Context, method, path string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Endpoint+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Message: errorMessage(data)}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// errorMessage extracts the api's {"error": "..."} body, falling back to
// the raw text.
func errorMessage(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(data))
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	var se *StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	case errors.As(err, &se):
		return fmt.Sprintf("HTTP_%d", se.Code)
	default:
		return "UNKNOWN"
	}
}
