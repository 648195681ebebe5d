package ctxsync_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/karupanerura/expiring-value/internal/ctxsync"
)

func TestMutex_LockCtx(t *testing.T) {
	t.Parallel()

	t.Run("acquires an unlocked mutex", func(t *testing.T) {
		t.Parallel()

		var m ctxsync.Mutex
		if err := m.LockCtx(context.Background()); err != nil {
			t.Fatalf("Lock failed: %v", err)
		}
		m.Unlock()
	})

	t.Run("fails fast with a canceled context", func(t *testing.T) {
		t.Parallel()

		var m ctxsync.Mutex
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := m.LockCtx(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("Lock did not return expected error for canceled context: got=%+v", err)
		}

		// the mutex must still be available
		m.Lock()
		m.Unlock()
	})

	t.Run("gives up while waiting", func(t *testing.T) {
		t.Parallel()

		var m ctxsync.Mutex
		m.Lock()

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := m.LockCtx(ctx); !errors.Is(err, context.Canceled) {
				t.Errorf("Lock did not return expected error for canceled context: got=%+v", err)
			}
		}()

		time.Sleep(100 * time.Millisecond)
		cancel()
		<-done
		m.Unlock()

		// the abandoned waiter releases the lock once it gets it
		lockCtx, lockCancel := context.WithTimeout(context.Background(), time.Second)
		defer lockCancel()
		if err := m.LockCtx(lockCtx); err != nil {
			t.Fatalf("Lock failed after abandoned waiter: %v", err)
		}
		m.Unlock()
	})

	t.Run("waits for the holder", func(t *testing.T) {
		t.Parallel()

		var m ctxsync.Mutex
		m.Lock()
		go func() {
			time.Sleep(50 * time.Millisecond)
			m.Unlock()
		}()

		if err := m.LockCtx(context.Background()); err != nil {
			t.Fatalf("Lock failed: %v", err)
		}
		m.Unlock()
	})
}
