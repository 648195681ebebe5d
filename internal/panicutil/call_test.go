package panicutil_test

import (
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/karupanerura/expiring-value/internal/panicutil"
	"github.com/sourcegraph/conc/panics"
)

func TestCall(t *testing.T) {
	t.Parallel()

	t.Run("Normal return", func(t *testing.T) {
		t.Parallel()

		v, err := panicutil.Call(func() (int, error) {
			return 42, nil
		})
		if err != nil {
			t.Errorf("expected no error, got: %v", err)
		}
		if v != 42 {
			t.Errorf("expected 42, got: %d", v)
		}
	})

	t.Run("Normal return with error", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("expected error")
		_, err := panicutil.Call(func() (int, error) {
			return 1, expectedErr
		})
		if err != expectedErr {
			t.Errorf("expected error %v, got: %v", expectedErr, err)
		}
	})

	t.Run("Panic with string", func(t *testing.T) {
		t.Parallel()

		v, err := panicutil.Call(func() (string, error) {
			panic("test panic")
		})
		var recoveredErr *panics.ErrRecovered
		if !errors.As(err, &recoveredErr) {
			t.Fatalf("expected error to be of type *panics.ErrRecovered, got: %T", err)
		}
		if recoveredErr.Value != "test panic" {
			t.Errorf("expected panic value 'test panic', got: %v", err)
		}
		if v != "" {
			t.Errorf("expected zero value, got: %q", v)
		}
	})

	t.Run("Panic with error", func(t *testing.T) {
		t.Parallel()

		customErr := errors.New("custom error")
		_, err := panicutil.Call(func() (int, error) {
			panic(customErr)
		})
		var recoveredErr *panics.ErrRecovered
		if !errors.As(err, &recoveredErr) {
			t.Fatalf("expected error to be of type *panics.ErrRecovered, got: %T", err)
		}
		if recoveredErr.Value != customErr {
			t.Errorf("expected panic value custom error, got: %v", err)
		}
	})

	t.Run("Runtime.Goexit", func(t *testing.T) {
		t.Parallel()

		var wg sync.WaitGroup
		returned := false

		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = panicutil.Call(func() (int, error) {
				runtime.Goexit()
				return 0, nil // unreachable
			})
			returned = true
		}()
		wg.Wait()

		if returned {
			t.Error("Goexit must not be intercepted")
		}
	})
}
