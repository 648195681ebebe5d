package panicutil

import (
	"github.com/sourcegraph/conc/panics"
)

// Call invokes f and returns its results.
// If f panics, the panic is recovered and returned as *panics.ErrRecovered
// together with the zero value of V.
// If f calls runtime.Goexit, the goroutine keeps exiting; Call does not intercept it.
func Call[V any](f func() (V, error)) (v V, err error) {
	var (
		normalReturn bool
		recovered    panics.Recovered
	)
	defer func() {
		if !normalReturn && recovered.Value != nil {
			var zero V
			v, err = zero, recovered.AsError()
		}
	}()
	func() {
		defer func() {
			if normalReturn {
				return
			}
			recovered = panics.NewRecovered(2, recover())
		}()
		v, err = f()
		normalReturn = true
	}()
	return
}
