package service

import "sync"

// UserLocks is a keyed mutex: one lock per username, created on demand and
// dropped once nobody holds or waits for it.
type UserLocks struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[string]*userLock)}
}

// Lock blocks until the lock for username is held and returns its release
// function.
func (l *UserLocks) Lock(username string) func() {
	l.mu.Lock()
	lock, ok := l.locks[username]
	if !ok {
		lock = &userLock{}
		l.locks[username] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, username)
		}
		l.mu.Unlock()
	}
}
