package refresher

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Refreshable is implemented by values that can refresh themselves.
// syncvalue.Value implements it.
// Implementations must be thread-safe.
type Refreshable interface {
	Refresh(context.Context) error
}

// RefreshableFunc is a function type that implements the Refreshable interface.
type RefreshableFunc func(context.Context) error

// Refresh calls the function.
func (f RefreshableFunc) Refresh(ctx context.Context) error {
	return f(ctx)
}

// IntervalRefresher refreshes a target at a fixed interval.
type IntervalRefresher struct {
	target            Refreshable
	interval          time.Duration
	onBackgroundError func(error)
}

// NewIntervalRefresher creates a new IntervalRefresher.
// onBackgroundError receives every error returned by the target's Refresh.
func NewIntervalRefresher(target Refreshable, interval time.Duration, onBackgroundError func(error)) *IntervalRefresher {
	if interval <= 0 {
		panic("interval must be positive")
	}
	return &IntervalRefresher{
		target:            target,
		interval:          interval,
		onBackgroundError: onBackgroundError,
	}
}

// LaunchBackgroundRefresher starts refreshing in a new goroutine.
// The first refresh happens immediately.
// It stops when ctx is canceled.
func (r *IntervalRefresher) LaunchBackgroundRefresher(ctx context.Context) {
	go r.poll(ctx)
}

func (r *IntervalRefresher) poll(ctx context.Context) {
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *IntervalRefresher) refresh(ctx context.Context) {
	if err := r.target.Refresh(ctx); err != nil && ctx.Err() == nil {
		r.onBackgroundError(err)
	}
}

// RefreshAll refreshes every target concurrently and returns the first error.
// The context passed to the remaining targets is canceled on the first failure.
func RefreshAll(ctx context.Context, targets ...Refreshable) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, target := range targets {
		eg.Go(func() error {
			return target.Refresh(ctx)
		})
	}
	return eg.Wait()
}
