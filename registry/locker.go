package registry

import (
	"sync"

	"github.com/farmpool/poold/types"
)

// Locker is a set of mutexes keyed by launcher id. Entries are dropped once nobody
// holds or waits for them.
type Locker struct {
	mu    sync.Mutex
	locks map[types.Bytes32]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func NewLocker() *Locker {
	return &Locker{locks: make(map[types.Bytes32]*keyLock)}
}

func (l *Locker) Lock(id types.Bytes32) (unlock func()) {
	l.mu.Lock()
	lock, ok := l.locks[id]
	if !ok {
		lock = &keyLock{}
		l.locks[id] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()
	var once sync.Once
	return func() {
		once.Do(func() {
			lock.mu.Unlock()
			l.mu.Lock()
			lock.refs--
			if lock.refs == 0 {
				delete(l.locks, id)
			}
			l.mu.Unlock()
		})
	}
}

func (l *Locker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
