package netsuite

import (
	"context"
	"errors"
	"io"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/suitegate/go-suitetalk/soap"
	"github.com/suitegate/go-suitetalk/soap/transport"
)

// RetryPolicy controls how failed requests are retried.
type RetryPolicy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int

	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps the exponential backoff.
	MaxDelay time.Duration

	// Multiplier is the backoff growth factor between attempts.
	Multiplier float64

	// Jitter spreads each delay by ±Jitter (0.1 = ±10%) so synchronized
	// clients do not hammer the account's concurrency governance in
	// lockstep.
	Jitter float64
}

// DefaultRetryPolicy returns the policy applied when none is configured.
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
		Jitter:       0.1,
	}
}

// isRetryableError determines if an error should trigger a retry.
//
// Retryable errors are transient network issues and NetSuite's request
// governance faults, which clear once concurrent requests drain. Credential
// and permission faults are never retryable: replaying them only walks the
// account toward a lockout.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var fault *soap.Fault
	if errors.As(err, &fault) {
		return fault.IsConcurrencyLimit()
	}

	// Non-retryable: rejected credentials
	if errors.Is(err, transport.ErrUnauthorized) {
		return false
	}

	// Non-retryable: user cancelled
	if errors.Is(err, context.Canceled) {
		return false
	}

	// Retryable: network timeout
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// Retryable: connection closed/reset
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	// Fallback: string matching for stdlib network errors
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "i/o timeout") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "no route to host") ||
		strings.Contains(errStr, "broken pipe")
}

// calculateRetryBackoff computes exponential backoff with cap and jitter.
func calculateRetryBackoff(attempt int, policy *RetryPolicy) time.Duration {
	if policy == nil {
		return time.Second
	}

	delay := policy.InitialDelay
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}

	if attempt <= 1 {
		return applyJitter(delay, policy.Jitter)
	}

	multiplier := policy.Multiplier
	if multiplier < 1.0 {
		multiplier = 2.0
	}

	// Compute in float64 so large attempts cannot overflow before capping.
	backoff := float64(delay) * math.Pow(multiplier, float64(attempt-1))

	if backoff > float64(policy.MaxDelay) || backoff > float64(math.MaxInt64) {
		capped := policy.MaxDelay
		if capped <= 0 {
			capped = 5 * time.Second
		}
		return applyJitter(capped, policy.Jitter)
	}

	return applyJitter(time.Duration(backoff), policy.Jitter)
}

// applyJitter spreads d by a uniform factor in [1-jitter, 1+jitter].
// Jitter outside (0, 1] returns d unchanged.
func applyJitter(d time.Duration, jitter float64) time.Duration {
	if jitter <= 0 || jitter > 1 {
		return d
	}
	factor := 1 + (rand.Float64()*2-1)*jitter
	return time.Duration(float64(d) * factor)
}
