package gemini

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	"google.golang.org/genai"
)

// Default backoff parameters for calls to the Gemini API.
const (
	DefaultMaxAttempts = 8
	DefaultBaseDelay   = 2 * time.Second
)

// RetryPolicy retries calls that fail with a transient error using
// exponential backoff. The delay before retry n (0-indexed) is
// BaseDelay*2^n plus a jitter in [0, 1s).
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration

	// Jitter returns the random component added to each delay.
	Jitter func() time.Duration

	// Sleep waits for d or until ctx is done.
	Sleep func(ctx context.Context, d time.Duration) error

	// Logger, if set, receives a Warn record before each retry.
	Logger *slog.Logger
}

// DefaultRetryPolicy returns the policy used for enrichment calls:
// 8 attempts with a 2s base delay.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		Jitter:      defaultJitter,
		Sleep:       sleepContext,
	}
}

// Delay returns the wait before retry n (0-indexed), excluding jitter.
func (p RetryPolicy) Delay(n int) time.Duration {
	return p.BaseDelay * time.Duration(1<<n)
}

// Do calls fn until it succeeds, fails with a non-retryable error, or
// MaxAttempts calls have been made. The last error is returned.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsRetryable(err) || attempt >= maxAttempts-1 {
			break
		}

		delay := p.Delay(attempt)
		if p.Jitter != nil {
			delay += p.Jitter()
		}

		if p.Logger != nil {
			p.Logger.Warn("gemini retry",
				"attempt", attempt+2,
				"maxAttempts", maxAttempts,
				"backoff", delay,
				"err", err,
			)
		}

		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}

	return lastErr
}

// IsRetryable reports whether err is a transient failure: an HTTP 503
// from the API or a network-level error.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusServiceUnavailable
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code == http.StatusServiceUnavailable
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func defaultJitter() time.Duration {
	return rand.N(time.Second)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
