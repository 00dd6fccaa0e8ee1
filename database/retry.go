package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun/driver/pgdriver"
)

// RetryConfig defines retry behavior
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultRetryConfig returns sensible defaults for retry behavior
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
	}
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Don't retry context errors (timeout, cancellation)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}

	// Don't retry "no rows" errors
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}

	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		switch code := pgErr.Field('C'); {
		case strings.HasPrefix(code, "23"): // integrity violations
			return false
		case strings.HasPrefix(code, "42"): // syntax / access rule violations
			return false
		case code == "40001" || code == "40P01": // serialization failure, deadlock
			return true
		case strings.HasPrefix(code, "08"): // connection errors
			return true
		case strings.HasPrefix(code, "53"): // insufficient resources
			return true
		case code == "57P03": // cannot_connect_now
			return true
		default:
			return false
		}
	}

	// Driver-level connection failures surface as plain errors
	msg := err.Error()
	for _, transient := range []string{"connection refused", "connection reset", "broken pipe", "unexpected EOF", "EOF"} {
		if strings.Contains(msg, transient) {
			return true
		}
	}

	return false
}

// WithRetry runs op, retrying transient failures with exponential backoff.
func WithRetry(ctx context.Context, op func() error) error {
	cfg := DefaultRetryConfig()

	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}

		if attempt == cfg.MaxAttempts || !isRetryableError(lastErr) {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return lastErr
}
