package retry

import (
	"context"
	"errors"
	"time"
)

var ErrExhausted = errors.New("retry attempts exhausted")

type Policy struct {
	Attempts int
	Delay    time.Duration
	// Linear spaces attempts by Delay*attempt instead of a fixed Delay.
	Linear bool
}

func (p Policy) wait(attempt int) time.Duration {
	if p.Linear {
		return p.Delay * time.Duration(attempt)
	}
	return p.Delay
}

// Do calls fn until it reports done, returns an error, or the policy runs out of
// attempts. It returns the number of attempts made. Running out yields ErrExhausted.
func Do(ctx context.Context, p Policy, fn func(attempt int) (bool, error)) (int, error) {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	for i := 1; i <= attempts; i++ {
		done, err := fn(i)
		if err != nil {
			return i, err
		}
		if done {
			return i, nil
		}
		if i == attempts {
			break
		}
		timer := time.NewTimer(p.wait(i))
		select {
		case <-ctx.Done():
			timer.Stop()
			return i, ctx.Err()
		case <-timer.C:
		}
	}
	return attempts, ErrExhausted
}
