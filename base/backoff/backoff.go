package backoff

import (
	"context"
	"time"
)

// Strategy returns the wait before retry n, counted from 0.
type Strategy func(n int, start time.Duration) time.Duration

func Exponential(n int, start time.Duration) time.Duration {
	if n > 30 {
		n = 30
	}
	return start << uint(n)
}

func Linear(n int, start time.Duration) time.Duration {
	return time.Duration(n+1) * start
}

// Backoff hands out growing waits capped at limit. A zero limit means no cap.
type Backoff struct {
	strategy Strategy
	start    time.Duration
	limit    time.Duration
	count    int
}

func New(strategy Strategy, start, limit time.Duration) *Backoff {
	return &Backoff{strategy: strategy, start: start, limit: limit}
}

func NewExponential(start, limit time.Duration) *Backoff {
	return New(Exponential, start, limit)
}

func NewLinear(start, limit time.Duration) *Backoff {
	return New(Linear, start, limit)
}

// Next returns the next wait and advances the counter.
func (b *Backoff) Next() time.Duration {
	d := b.strategy(b.count, b.start)
	if b.limit > 0 && d > b.limit {
		d = b.limit
	}
	b.count++
	return d
}

func (b *Backoff) Reset() {
	b.count = 0
}

// Wait sleeps for the next wait or until c is done.
func (b *Backoff) Wait(c context.Context) error {
	t := time.NewTimer(b.Next())
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-c.Done():
		return c.Err()
	}
}

// Retry calls fn until it succeeds, attempts calls were made or c is done,
// waiting between failures. It returns the last error of fn.
func Retry(c context.Context, b *Backoff, attempts int, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		if werr := b.Wait(c); werr != nil {
			return err
		}
	}
	return err
}
