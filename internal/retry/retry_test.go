package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoExhausted(t *testing.T) {
	calls := 0
	n, err := Do(context.Background(), Policy{Attempts: 4, Delay: time.Millisecond}, func(attempt int) (bool, error) {
		calls++
		return false, nil
	})
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("want ErrExhausted, got %v", err)
	}
	if n != 4 || calls != 4 {
		t.Fatalf("want 4 attempts, got n=%d calls=%d", n, calls)
	}
}

func TestDoDone(t *testing.T) {
	n, err := Do(context.Background(), Policy{Attempts: 5, Delay: time.Millisecond}, func(attempt int) (bool, error) {
		return attempt == 2, nil
	})
	if err != nil || n != 2 {
		t.Fatalf("n=%d err=%v", n, err)
	}
}

func TestDoStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	n, err := Do(context.Background(), Policy{Attempts: 5, Delay: time.Millisecond}, func(attempt int) (bool, error) {
		return false, boom
	})
	if !errors.Is(err, boom) || n != 1 {
		t.Fatalf("n=%d err=%v", n, err)
	}
}

func TestDoContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n, err := Do(ctx, Policy{Attempts: 3, Delay: time.Hour}, func(attempt int) (bool, error) {
		return false, nil
	})
	if !errors.Is(err, context.Canceled) || n != 1 {
		t.Fatalf("n=%d err=%v", n, err)
	}
}

func TestPolicyWait(t *testing.T) {
	p := Policy{Delay: time.Second, Linear: true}
	if p.wait(3) != 3*time.Second {
		t.Fatal("linear wait")
	}
	p.Linear = false
	if p.wait(3) != time.Second {
		t.Fatal("fixed wait")
	}
}

func TestDoZeroAttempts(t *testing.T) {
	n, err := Do(context.Background(), Policy{}, func(attempt int) (bool, error) {
		return false, nil
	})
	if n != 1 || !errors.Is(err, ErrExhausted) {
		t.Fatalf("n=%d err=%v", n, err)
	}
}
