package expiringvalue

import (
	"time"

	"github.com/karupanerura/expiring-value/expiration"
)

// Option is the interface for the options of Value.
type Option[V ValueConstraint] interface {
	apply(*options[V])
}

type optionFunc[V ValueConstraint] func(*options[V])

func (f optionFunc[V]) apply(o *options[V]) {
	f(o)
}

// WithClock sets the clock used to timestamp updates and check expiry.
func WithClock[V ValueConstraint](clock Clock) Option[V] {
	return optionFunc[V](func(o *options[V]) {
		o.clock = clock
	})
}

// WithExpirationPolicy sets the policy that decides whether lastUpdate + timeToLive has passed.
// The default is expiration.GeneralExpirationPolicy.
func WithExpirationPolicy[V ValueConstraint](policy expiration.ExpirationPolicy) Option[V] {
	return optionFunc[V](func(o *options[V]) {
		o.policy = policy
	})
}

// WithNotifyOnChange sets whether Set emits change notifications. It is enabled by default.
func WithNotifyOnChange[V ValueConstraint](notify bool) Option[V] {
	return optionFunc[V](func(o *options[V]) {
		o.silent = !notify
	})
}

// WithCloner sets the value cloner used to keep the initial value apart from the current one.
// The default value cloner is NopValueCloner.
func WithCloner[V ValueConstraint](cloner ValueCloner[V]) Option[V] {
	return optionFunc[V](func(o *options[V]) {
		o.cloner = cloner
	})
}

// WithErrorHandler installs the error handler slot at construction.
// See Value.SetErrorHandler.
func WithErrorHandler[V ValueConstraint](handler func(error)) Option[V] {
	return optionFunc[V](func(o *options[V]) {
		o.errorHandler = handler
	})
}

// options is valid as its zero value, so that the zero Value is usable.
type options[V ValueConstraint] struct {
	clock        Clock
	policy       expiration.ExpirationPolicy
	silent       bool
	cloner       ValueCloner[V]
	errorHandler func(error)
}

func (o *options[V]) now() time.Time {
	if o.clock == nil {
		return SystemClock.Now()
	}
	return o.clock.Now()
}

func (o *options[V]) isExpired(now, deadline time.Time) bool {
	if o.policy == nil {
		return expiration.GeneralExpirationPolicy{}.IsExpired(now, deadline)
	}
	return o.policy.IsExpired(now, deadline)
}

func (o *options[V]) clone(v V) V {
	if o.cloner == nil {
		return v
	}
	return o.cloner.CloneValue(v)
}
