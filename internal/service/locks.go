package service

import "sync"

// ChainLocks serializes chain mutations per project. Each project's chain is
// read, recomputed and written under its own lock; projects never block each
// other. The project and task services must share one instance.
type ChainLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewChainLocks() *ChainLocks {
	return &ChainLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the lock for projectID and returns its release func.
// Locks are never reclaimed; the set is bounded by the number of projects
// touched in a process lifetime.
func (l *ChainLocks) Lock(projectID string) func() {
	l.mu.Lock()
	m, ok := l.locks[projectID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[projectID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
