package repository

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/auth-service/internal/domain"
)

type memoryUserRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[string]domain.UserRecord
}

// NewMemoryUserRepository returns a process-local store used when no database is configured.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]domain.UserRecord)}
}

func (r *memoryUserRepository) Insert(ctx context.Context, user *domain.UserRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return ErrDuplicateUser
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now().UTC()
	r.users[user.Username] = *user
	return nil
}

func (r *memoryUserRepository) FindByUsername(ctx context.Context, username string) (*domain.UserRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}
