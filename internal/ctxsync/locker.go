package ctxsync

import (
	"context"
	"sync"
)

// Mutex is a sync.Mutex that can be locked with a context.
// The zero value is an unlocked mutex.
type Mutex struct {
	mu sync.Mutex
}

// Lock locks m.
func (m *Mutex) Lock() {
	m.mu.Lock()
}

// Unlock unlocks m.
func (m *Mutex) Unlock() {
	m.mu.Unlock()
}

// LockCtx locks m, giving up when ctx is done first.
// If the context is canceled before the lock is acquired, it returns the context error
// and the lock is released as soon as it is obtained in the background.
func (m *Mutex) LockCtx(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.mu.TryLock() {
		return nil
	}

	locked := make(chan struct{})
	go func() {
		defer close(locked)
		m.mu.Lock()
	}()

	select {
	case <-locked:
		return nil
	case <-ctx.Done():
		go func() {
			<-locked
			m.mu.Unlock()
		}()
		return ctx.Err()
	}
}
