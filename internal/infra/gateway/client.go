package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"storefront-checkout/internal/infra"

	"github.com/sony/gobreaker/v2"
)

// client is the shared HTTP plumbing for the collaborator gateways. Every
// call goes through a per-service circuit breaker so one failing collaborator
// cannot exhaust the checkout worker pool.
type client struct {
	http    *http.Client
	baseURL string
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *slog.Logger
}

func newClient(name, baseURL string, timeout time.Duration, logger *slog.Logger) *client {
	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "service", name, "from", from.String(), "to", to.String())
		},
	})

	return &client{
		http:    &http.Client{},
		baseURL: baseURL,
		timeout: timeout,
		breaker: cb,
		logger:  logger,
	}
}

// statusError carries a non-2xx response so callers can classify by code.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.code, e.body)
}

// do executes one request through the breaker. A 404 maps to KindNotFound;
// everything else non-2xx or transport-level maps to KindUnavailable.
func (c *client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to serialize request", err, infra.KindSerialization)
		}
		payload = bytes.NewReader(raw)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(callCtx, method, c.baseURL+path, payload)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")

		res, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
		if err != nil {
			return nil, err
		}
		if res.StatusCode < 200 || res.StatusCode >= 300 {
			return nil, &statusError{code: res.StatusCode, body: string(raw)}
		}
		return raw, nil
	})
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusNotFound {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("service call failed", err, infra.KindUnavailable)
	}

	return resp, nil
}

func (c *client) postJSON(ctx context.Context, path string, body, out any) error {
	raw, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return infra.WrapRepoErr("failed to deserialize response", err, infra.KindSerialization)
	}
	return nil
}

func (c *client) getJSON(ctx context.Context, path string, out any) error {
	raw, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return infra.WrapRepoErr("failed to deserialize response", err, infra.KindSerialization)
	}
	return nil
}

func (c *client) deleteJSON(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}
