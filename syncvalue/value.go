package syncvalue

import (
	"context"

	expiringvalue "github.com/karupanerura/expiring-value"
	"github.com/karupanerura/expiring-value/internal/ctxsync"
	"github.com/karupanerura/expiring-value/refresher"
)

// Value guards an expiringvalue.Value with a mutex.
type Value[V expiringvalue.ValueConstraint] struct {
	mu    ctxsync.Mutex
	value *expiringvalue.Value[V]
}

var _ refresher.Refreshable = (*Value[struct{}])(nil)

// New wraps value. The caller must not use value directly afterwards.
func New[V expiringvalue.ValueConstraint](value *expiringvalue.Value[V]) *Value[V] {
	return &Value[V]{value: value}
}

// Get returns the held value, refreshing it first if it has expired.
func (v *Value[V]) Get(ctx context.Context) (V, error) {
	if err := v.mu.LockCtx(ctx); err != nil {
		var zero V
		return zero, err
	}
	defer v.mu.Unlock()
	return v.value.GetOrRefresh()
}

// Peek returns the held value without checking whether it has expired.
func (v *Value[V]) Peek() (V, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value.Peek()
}

// Set stores value and restarts the expiry clock.
func (v *Value[V]) Set(value V) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value.Set(value)
}

// Reset restores the value given at construction.
func (v *Value[V]) Reset() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value.Reset()
}

// Refresh invokes the updater if the held value has expired.
func (v *Value[V]) Refresh(ctx context.Context) error {
	if err := v.mu.LockCtx(ctx); err != nil {
		return err
	}
	defer v.mu.Unlock()
	return v.value.EnsureFresh()
}

// Do calls f with the wrapped value while holding the lock.
// It is the way to register observers or inspect the expiry state.
func (v *Value[V]) Do(ctx context.Context, f func(*expiringvalue.Value[V]) error) error {
	if err := v.mu.LockCtx(ctx); err != nil {
		return err
	}
	defer v.mu.Unlock()
	return f(v.value)
}

// Dispose disposes the wrapped value.
func (v *Value[V]) Dispose() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value.Dispose()
}
