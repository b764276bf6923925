package application

import (
	"sync"

	"github.com/google/uuid"
)

// UserLocks serializes mutations per user. Slot and task state is
// read-modify-written as a unit, so two commands for the same user must not
// interleave; commands for different users run concurrently.
type UserLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewUserLocks creates an empty lock table.
func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (l *UserLocks) lockFor(userID uuid.UUID) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[userID] = lock
	}
	return lock
}

// WithUser runs fn while holding the user's lock.
func (l *UserLocks) WithUser(userID uuid.UUID, fn func() error) error {
	lock := l.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()
	return fn()
}
