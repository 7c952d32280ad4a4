package backoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponentialCapped(t *testing.T) {
	b := NewExponential(time.Second, 5*time.Second)
	require.Equal(t, time.Second, b.Next())
	require.Equal(t, 2*time.Second, b.Next())
	require.Equal(t, 4*time.Second, b.Next())
	require.Equal(t, 5*time.Second, b.Next())

	b.Reset()
	require.Equal(t, time.Second, b.Next())
}

func TestLinear(t *testing.T) {
	b := NewLinear(time.Second, 0)
	require.Equal(t, time.Second, b.Next())
	require.Equal(t, 2*time.Second, b.Next())
	require.Equal(t, 3*time.Second, b.Next())
}

func TestRetry(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), NewLinear(time.Millisecond, 0), 3, func() error {
		calls++
		if calls < 2 {
			return errors.New("flaky")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestRetryReturnsLastError(t *testing.T) {
	calls := 0
	boom := errors.New("down")
	err := Retry(context.Background(), NewLinear(time.Millisecond, 0), 3, func() error {
		calls++
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 3, calls)
}

func TestRetryStopsOnDone(t *testing.T) {
	c, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err := Retry(c, NewLinear(time.Hour, 0), 5, func() error {
		calls++
		return errors.New("down")
	})
	require.Error(t, err)
	require.Equal(t, 1, calls)
}
