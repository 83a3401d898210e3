package service

import "sync"

// activityLocks hands out one mutex per activity so conflicting draws and
// resets serialize against each other while unrelated activities proceed
// concurrently. Locks are never reclaimed; the universe of activities is
// small and admin-curated.
type activityLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newActivityLocks() *activityLocks {
	return &activityLocks{locks: make(map[uint]*sync.Mutex)}
}

func (l *activityLocks) get(activityID uint) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[activityID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[activityID] = lock
	}

	return lock
}
