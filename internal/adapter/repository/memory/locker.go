package memory

import (
	"context"
	"sync"
)

// UserLocker implements usecase.UserLocker with one single-slot channel per
// user, so waiting honors context cancellation.
type UserLocker struct {
	mu    sync.Mutex
	locks map[int64]chan struct{}
}

// NewUserLocker creates a UserLocker.
func NewUserLocker() *UserLocker {
	return &UserLocker{locks: make(map[int64]chan struct{})}
}

// Lock blocks until userID's slot is free or ctx is done.
func (l *UserLocker) Lock(ctx context.Context, userID int64) (func(), error) {
	l.mu.Lock()
	slot, ok := l.locks[userID]
	if !ok {
		slot = make(chan struct{}, 1)
		l.locks[userID] = slot
	}
	l.mu.Unlock()

	select {
	case slot <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() { <-slot })
	}, nil
}
