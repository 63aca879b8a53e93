package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errNetwork = errors.New("network error")

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(errNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != errNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if !errors.Is(err, errNetwork) {
		t.Error("wrapped error should unwrap to the cause")
	}
	if IsRetryable(errNetwork) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()
	errFatal := errors.New("rejected")

	tests := []struct {
		name      string
		attempts  int
		failures  int // retryable failures before success
		fatal     bool
		wantCalls int
		wantErr   error
	}{
		{"success first try", 3, 0, false, 1, nil},
		{"success after retry", 3, 2, false, 3, nil},
		{"exhausted", 3, 5, false, 3, errNetwork},
		{"fatal stops", 3, 0, true, 1, errFatal},
		{"zero attempts runs once", 0, 5, false, 1, errNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(ctx, tt.attempts, time.Millisecond, func() error {
				calls++
				if tt.fatal {
					return errFatal
				}
				if calls <= tt.failures {
					return Retryable(errNetwork)
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil && err != nil) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Hour, func() error {
		return Retryable(errNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
