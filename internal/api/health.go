package api

import (
	"context"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
)

// Ping issues a single GET against path and discards the body.
func (c *Client) Ping(ctx context.Context, path string) error {
	return c.Request(ctx, http.MethodGet, path, Options{}, nil)
}

// WaitReady polls path once per second until the backend answers or the
// timeout elapses. Only used at startup; regular calls never retry.
func (c *Client) WaitReady(ctx context.Context, path string, timeout time.Duration) error {
	attempts := uint(timeout.Seconds())
	if attempts == 0 {
		attempts = 1
	}
	return retry.Do(
		func() error {
			return c.Ping(ctx, path)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(1*time.Second),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Info("waiting for backend", "attempt", n+1, "url", c.URL(path, nil), "error", err)
		}),
	)
}
