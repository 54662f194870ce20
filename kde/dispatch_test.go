package kde

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunParallelPreservesOrder(t *testing.T) {
	got, err := runParallel(context.Background(), 7, 100, func(i int) int {
		return 3*i + 1
	})
	require.NoError(t, err)
	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, 3*i+1, v, "unit %d", i)
	}
}

func TestRunParallelHonorsWorkerCap(t *testing.T) {
	var cur, peak int64
	got, err := runParallel(context.Background(), 3, 30, func(i int) int {
		c := atomic.AddInt64(&cur, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if c <= p || atomic.CompareAndSwapInt64(&peak, p, c) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt64(&cur, -1)
		return i
	})
	require.NoError(t, err)
	require.Len(t, got, 30)
	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(3))
	assert.Greater(t, atomic.LoadInt64(&peak), int64(0))
}

func TestRunParallelDefaultWorkerCount(t *testing.T) {
	for _, workers := range []int{0, -1} {
		got, err := runParallel(context.Background(), workers, 16, func(i int) int {
			return i * i
		})
		require.NoError(t, err)
		for i, v := range got {
			assert.Equal(t, i*i, v)
		}
	}
}

func TestRunParallelMoreWorkersThanUnits(t *testing.T) {
	got, err := runParallel(context.Background(), 64, 3, func(i int) int {
		return i
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestRunParallelZeroUnits(t *testing.T) {
	var ran int64
	got, err := runParallel(context.Background(), 4, 0, func(i int) int {
		atomic.AddInt64(&ran, 1)
		return 0
	})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, atomic.LoadInt64(&ran))
}

func TestRunParallelPanicFailsBatch(t *testing.T) {
	got, err := runParallel(context.Background(), 2, 12, func(i int) int {
		if i == 7 {
			panic("boom")
		}
		return i
	})
	assert.Nil(t, got)
	assert.ErrorContains(t, err, "unit 7 panicked")
	assert.ErrorContains(t, err, "boom")
}

func TestRunParallelCanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran int64
	got, err := runParallel(ctx, 2, 8, func(i int) int {
		atomic.AddInt64(&ran, 1)
		return i
	})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, atomic.LoadInt64(&ran))
}
