package utils

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRetry(t *testing.T) {
	testCases := []struct {
		attempts  int
		succeedAt int
		calls     int
		ok        bool
	}{
		{attempts: 5, succeedAt: 1, calls: 1, ok: true},
		{attempts: 5, succeedAt: 5, calls: 5, ok: true},
		{attempts: 5, succeedAt: 6, calls: 5, ok: false},
		{attempts: 4, succeedAt: 5, calls: 4, ok: false},
		{attempts: 0, succeedAt: 2, calls: 1, ok: false},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d_%d", tc.attempts, tc.succeedAt), func(t *testing.T) {
			calls := 0
			err := Retry(context.Background(), RetryPolicy{Attempts: tc.attempts}, func(attempt int) error {
				calls++
				assert.Equal(t, calls, attempt)
				if attempt == tc.succeedAt {
					return nil
				}
				return errors.New("busy")
			})
			assert.Equal(t, tc.calls, calls)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrRetryExhausted)
				assert.Contains(t, err.Error(), "busy")
			}
		})
	}
}

func TestRetryDelay(t *testing.T) {
	var starts []time.Time
	err := Retry(context.Background(), RetryPolicy{Attempts: 3, Delay: 20 * time.Millisecond}, func(int) error {
		starts = append(starts, time.Now())
		return errors.New("busy")
	})
	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Len(t, starts, 3)
	for i := 1; i < len(starts); i++ {
		assert.GreaterOrEqual(t, starts[i].Sub(starts[i-1]), 15*time.Millisecond)
	}
}

func TestRetryDelayAfterSlowAttempt(t *testing.T) {
	var ends, starts []time.Time
	err := Retry(context.Background(), RetryPolicy{Attempts: 2, Delay: 30 * time.Millisecond}, func(int) error {
		starts = append(starts, time.Now())
		time.Sleep(25 * time.Millisecond)
		ends = append(ends, time.Now())
		return errors.New("busy")
	})
	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Len(t, starts, 2)
	assert.GreaterOrEqual(t, starts[1].Sub(ends[0]), 25*time.Millisecond)
}

func TestRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry(ctx, RetryPolicy{Attempts: 5, Delay: time.Hour}, func(int) error {
		calls++
		cancel()
		return errors.New("busy")
	})
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrRetryExhausted)
}
