package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBackoff_ZeroForFirstAttempt(t *testing.T) {
	if d := Backoff(time.Second, 0); d != 0 {
		t.Errorf("expected no delay for attempt 0, got %v", d)
	}
	if d := Backoff(time.Second, -1); d != 0 {
		t.Errorf("expected no delay for negative attempt, got %v", d)
	}
}

func TestBackoff_GrowsWithAttempts(t *testing.T) {
	base := 100 * time.Millisecond

	// Jitter is at most 25%, so attempt 3 (4x base) must exceed
	// attempt 1's (1x base) worst case.
	d1 := Backoff(base, 1)
	d3 := Backoff(base, 3)
	if d3 <= d1 {
		t.Errorf("expected backoff to grow: attempt1=%v attempt3=%v", d1, d3)
	}
}

func TestBackoff_Capped(t *testing.T) {
	d := Backoff(time.Second, 30)
	// 30s cap plus at most 25% jitter.
	if d > 38*time.Second {
		t.Errorf("backoff exceeded cap: %v", d)
	}
}

func TestDo_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), 3, time.Millisecond, func(context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), 3, time.Millisecond, func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	wantErr := errors.New("permanent")
	calls := 0
	err := Do(context.Background(), 3, time.Millisecond, func(context.Context) error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDo_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, 5, time.Millisecond, func(context.Context) error {
		calls++
		cancel()
		return errors.New("transient")
	})
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
	if calls != 1 {
		t.Errorf("expected no retries after cancellation, got %d calls", calls)
	}
}
