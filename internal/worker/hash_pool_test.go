package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingHasher struct {
	active  atomic.Int32
	maxSeen atomic.Int32
	delay   time.Duration
}

func (h *countingHasher) enter() {
	n := h.active.Add(1)
	for {
		seen := h.maxSeen.Load()
		if n <= seen || h.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	time.Sleep(h.delay)
	h.active.Add(-1)
}

func (h *countingHasher) Hash(password string) (string, error) {
	h.enter()
	return "hashed:" + password, nil
}

func (h *countingHasher) Verify(password, hash string) bool {
	h.enter()
	return hash == "hashed:"+password
}

func TestHashPool_BoundsConcurrency(t *testing.T) {
	hasher := &countingHasher{delay: 10 * time.Millisecond}
	pool := NewHashPool(hasher, 2)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := pool.Hash(context.Background(), "pw")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, hasher.maxSeen.Load(), int32(2))
}

func TestHashPool_Verify(t *testing.T) {
	pool := NewHashPool(&countingHasher{}, 1)

	ok, err := pool.Verify(context.Background(), "pw", "hashed:pw")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = pool.Verify(context.Background(), "other", "hashed:pw")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPool_RespectsContext(t *testing.T) {
	hasher := &countingHasher{delay: 200 * time.Millisecond}
	pool := NewHashPool(hasher, 1)

	started := make(chan struct{})
	go func() {
		close(started)
		_, _ = pool.Hash(context.Background(), "slow")
	}()
	<-started
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := pool.Hash(ctx, "pw")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = pool.Verify(ctx, "pw", "hashed:pw")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
