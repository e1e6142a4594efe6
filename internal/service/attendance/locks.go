package attendance

import "sync"

// cellLocks serializes mutations per (employee, date) cell. Granularity
// is a single cell so edits to different days or employees never block
// each other. Entries are reference counted and removed once the last
// holder releases, so the map does not grow with history.
type cellLocks struct {
	mu    sync.Mutex
	locks map[string]*cellLock
}

type cellLock struct {
	mu   sync.Mutex
	refs int
}

func newCellLocks() *cellLocks {
	return &cellLocks{locks: make(map[string]*cellLock)}
}

// acquire blocks until the cell lock is held and returns the release
// function.
func (l *cellLocks) acquire(key string) func() {
	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &cellLock{}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}
