package netsuite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/suitegate/go-suitetalk/soap"
	"github.com/suitegate/go-suitetalk/soap/transport"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name: "concurrency limit fault",
			err: &soap.Fault{
				Type:       "exceededConcurrentRequestLimitFault",
				DetailCode: "EXCEEDED_CONCURRENT_REQUEST_LIMIT",
			},
			expected: true,
		},
		{
			name:     "request limit fault",
			err:      &soap.Fault{DetailCode: "EXCEEDED_REQUEST_LIMIT"},
			expected: true,
		},
		{
			name: "invalid credentials fault",
			err: &soap.Fault{
				Type:       "invalidCredentialsFault",
				DetailCode: "INVALID_LOGIN_CREDENTIALS",
			},
			expected: false,
		},
		{
			name:     "insufficient permission fault",
			err:      &soap.Fault{DetailCode: "INSUFFICIENT_PERMISSION"},
			expected: false,
		},
		{
			name:     "unauthorized",
			err:      transport.ErrUnauthorized,
			expected: false,
		},
		{
			name:     "wrapped unauthorized",
			err:      fmt.Errorf("post https://example.com: %w", transport.ErrUnauthorized),
			expected: false,
		},
		{
			name:     "context cancelled",
			err:      context.Canceled,
			expected: false,
		},
		{
			name:     "deadline exceeded",
			err:      context.DeadlineExceeded,
			expected: true,
		},
		{
			name:     "EOF",
			err:      io.EOF,
			expected: true,
		},
		{
			name:     "ErrUnexpectedEOF",
			err:      io.ErrUnexpectedEOF,
			expected: true,
		},
		{
			name:     "net i/o timeout",
			err:      errors.New("read tcp 10.0.0.5:54321->203.0.113.7:443: i/o timeout"),
			expected: true,
		},
		{
			name:     "connection reset",
			err:      errors.New("read: connection reset by peer"),
			expected: true,
		},
		{
			name:     "connection refused",
			err:      errors.New("dial tcp 203.0.113.7:443: connection refused"),
			expected: true,
		},
		{
			name:     "generic error",
			err:      errors.New("something went wrong"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.expected {
				t.Errorf("isRetryableError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCalculateRetryBackoff(t *testing.T) {
	// No jitter for exact assertions.
	policy := &RetryPolicy{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     1 * time.Second,
		Multiplier:   2.0,
		Jitter:       0,
	}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, 1 * time.Second}, // capped
		{50, 1 * time.Second},
	}

	for _, tt := range tests {
		if got := calculateRetryBackoff(tt.attempt, policy); got != tt.want {
			t.Errorf("calculateRetryBackoff(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestCalculateRetryBackoff_Defaults(t *testing.T) {
	if got := calculateRetryBackoff(1, nil); got != time.Second {
		t.Errorf("calculateRetryBackoff(nil policy) = %v, want 1s", got)
	}

	// The default policy carries 10% jitter, so accept the spread.
	got := calculateRetryBackoff(1, DefaultRetryPolicy())
	base := 100 * time.Millisecond
	min := time.Duration(float64(base) * 0.9)
	max := time.Duration(float64(base) * 1.1)
	if got < min || got > max {
		t.Errorf("calculateRetryBackoff(1) = %v, want [%v, %v]", got, min, max)
	}
}

func TestCalculateRetryBackoff_Jitter(t *testing.T) {
	policy := &RetryPolicy{
		InitialDelay: 1 * time.Second,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
		Jitter:       0.2,
	}

	results := make(map[time.Duration]bool)
	for i := 0; i < 100; i++ {
		got := calculateRetryBackoff(1, policy)
		results[got] = true

		min := time.Duration(float64(time.Second) * 0.8)
		max := time.Duration(float64(time.Second) * 1.2)
		if got < min || got > max {
			t.Errorf("calculateRetryBackoff() = %v, want [%v, %v]", got, min, max)
		}
	}

	if len(results) < 2 {
		t.Errorf("jitter produced only %d unique values in 100 draws", len(results))
	}
}

func TestApplyJitter(t *testing.T) {
	// Jitter outside (0, 1] returns the value unchanged.
	for _, jitter := range []float64{0, -0.1, 1.5} {
		if got := applyJitter(100*time.Millisecond, jitter); got != 100*time.Millisecond {
			t.Errorf("applyJitter(100ms, %v) = %v, want 100ms", jitter, got)
		}
	}
}
