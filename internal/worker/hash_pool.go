package worker

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"

	"github.com/spec-kit/auth-service/internal/auth"
)

// HashPool bounds how many password hash operations run at once.
type HashPool struct {
	hasher auth.PasswordHasher
	slots  *semaphore.Weighted
}

// NewHashPool wraps hasher with a pool of size workers (GOMAXPROCS when <= 0).
func NewHashPool(hasher auth.PasswordHasher, workers int) *HashPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &HashPool{hasher: hasher, slots: semaphore.NewWeighted(int64(workers))}
}

// Hash waits for a free slot, then hashes password.
func (p *HashPool) Hash(ctx context.Context, password string) (string, error) {
	if err := p.slots.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer p.slots.Release(1)
	return p.hasher.Hash(password)
}

// Verify waits for a free slot, then checks password against hash.
func (p *HashPool) Verify(ctx context.Context, password, hash string) (bool, error) {
	if err := p.slots.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer p.slots.Release(1)
	return p.hasher.Verify(password, hash), nil
}
