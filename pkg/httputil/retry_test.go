package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

var fast = Policy{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestRetry_SucceedsFirstAttempt(t *testing.T) {
	n, err := Retry(context.Background(), fast, func(int) error { return nil })
	if err != nil || n != 1 {
		t.Errorf("Retry() = %d, %v; want 1, nil", n, err)
	}
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	calls := 0
	n, err := Retry(context.Background(), fast, func(attempt int) error {
		calls++
		if attempt != calls {
			t.Errorf("attempt = %d, want %d", attempt, calls)
		}
		if attempt < 3 {
			return Retryable(errors.New("503"))
		}
		return nil
	})
	if err != nil || n != 3 {
		t.Errorf("Retry() = %d, %v; want 3, nil", n, err)
	}
}

func TestRetry_ExhaustsBudget(t *testing.T) {
	transient := errors.New("timeout")
	n, err := Retry(context.Background(), fast, func(int) error { return Retryable(transient) })
	if n != 3 {
		t.Errorf("attempts = %d, want 3", n)
	}
	if !errors.Is(err, transient) || !IsRetryable(err) {
		t.Errorf("err = %v, want wrapped transient error", err)
	}
}

func TestRetry_PermanentErrorStops(t *testing.T) {
	permanent := errors.New("conflict")
	calls := 0
	n, err := Retry(context.Background(), fast, func(int) error {
		calls++
		return permanent
	})
	if n != 1 || calls != 1 || !errors.Is(err, permanent) {
		t.Errorf("Retry() = %d, %v (calls %d); want 1, permanent", n, err, calls)
	}
}

func TestRetry_CancelledStopsNewAttempts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	slow := Policy{MaxAttempts: 5, InitialDelay: time.Hour}

	n, err := Retry(ctx, slow, func(int) error {
		cancel()
		return Retryable(errors.New("503"))
	})
	if n != 1 || !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() = %d, %v; want 1, context.Canceled", n, err)
	}

	n, err = Retry(ctx, slow, func(int) error {
		t.Error("fn called after cancellation")
		return nil
	})
	if n != 0 || !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() = %d, %v; want 0, context.Canceled", n, err)
	}
}

func TestRetry_ZeroAttemptsMeansOne(t *testing.T) {
	n, _ := Retry(context.Background(), Policy{}, func(int) error { return Retryable(errors.New("x")) })
	if n != 1 {
		t.Errorf("attempts = %d, want 1", n)
	}
}
