package client

import (
	"context"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   250 * time.Millisecond,
		MaxDelay:    2 * time.Second,
	}
}

// delay is the wait before the given retry, starting at 1.
func (p RetryPolicy) delay(retry int) time.Duration {
	d := p.BaseDelay << (retry - 1)
	if p.MaxDelay > 0 && (d > p.MaxDelay || d <= 0) {
		return p.MaxDelay
	}
	return d
}

// retryable reports whether another attempt could succeed. Client errors
// other than 408 and 429 will not change on retry.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	switch status := StatusCode(err); {
	case status == 0:
		return true
	case status == http.StatusRequestTimeout, status == http.StatusTooManyRequests:
		return true
	default:
		return status >= http.StatusInternalServerError
	}
}

func (c *Client) withRetry(ctx context.Context, op string, fn func(context.Context) error) error {
	attempts := c.retry.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx); err == nil || !retryable(err) || attempt == attempts {
			return err
		}

		wait := c.retry.delay(attempt)
		log.WithFields(log.Fields{
			"op":      op,
			"attempt": attempt,
			"wait":    wait.String(),
			"error":   err.Error(),
		}).Warn("Request failed, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return err
}
