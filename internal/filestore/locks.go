package filestore

import (
	"context"
	"path/filepath"
	"sync"
)

// Locks is a keyed mutex. Keys are cleaned absolute paths, so "a/../b.txt"
// and "b.txt" share one lock.
type Locks struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func NewLocks() *Locks {
	return &Locks{slots: make(map[string]chan struct{})}
}

func (l *Locks) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[key] = ch
	}
	return ch
}

// Lock acquires the lock for path, giving up when ctx is done.
// The returned func releases it.
func (l *Locks) Lock(ctx context.Context, path string) (func(), error) {
	ch := l.slot(Key(path))

	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Key normalises path into a lock key.
func Key(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
