package service

import "sync"

// userLocks serializes progress writes per user so read-modify-write cycles never interleave.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{
		locks: make(map[string]*userLock),
	}
}

// Lock acquires the user's lock and returns its release func.
func (l *userLocks) Lock(email string) func() {
	l.mu.Lock()
	lock, ok := l.locks[email]
	if !ok {
		lock = &userLock{}
		l.locks[email] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.Lock()

	return func() {
		lock.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, email)
		}
		l.mu.Unlock()
	}
}
