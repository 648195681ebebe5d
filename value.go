// Package expiringvalue provides a single value holder that lazily refreshes
// its contents once a time-to-live has passed.
//
// A Value is read through GetOrRefresh. When the held value has expired, the
// configured Updater is invoked synchronously and its result is stored before
// being returned. Update failures are returned to the caller unless an error
// handler or error observer is registered, in which case they are reported
// there and the stale value keeps being served.
//
// The zero Value holds the zero value of V, has no updater and no
// time-to-live, and has never been timestamped.
//
// A Value is not safe for concurrent use. See the syncvalue package for a
// guarded variant.
package expiringvalue

import (
	"fmt"
	"io"
	"time"
	"unsafe"

	"github.com/karupanerura/expiring-value/internal/observer"
	"github.com/karupanerura/expiring-value/internal/panicutil"
	"github.com/karupanerura/expiring-value/internal/valuehash"
)

// ChangedAttributeName is the attribute name carried by every ChangeEvent.
const ChangedAttributeName = "Value"

// Value holds a single value and refreshes it on read once it has expired.
type Value[V ValueConstraint] struct {
	current V
	initial V

	// lastUpdate is meaningful only when updated is true.
	lastUpdate time.Time
	updated    bool

	// ttl is meaningful only when hasTTL is true.
	ttl    time.Duration
	hasTTL bool

	updater  Updater[V]
	disposed bool
	options  options[V]

	changeObservers observer.List[func(ChangeEvent[V])]
	errorObservers  observer.List[func(error)]
}

// NewConstant creates a Value that never expires and never updates itself.
func NewConstant[V ValueConstraint](value V, opts ...Option[V]) *Value[V] {
	v := newValue(value, nil, NoExpiration, opts)
	v.lastUpdate = v.options.now()
	v.updated = true
	return v
}

// NewWithUpdater creates a Value without an initial value.
// It is expired from birth, so the first read invokes the updater.
// A negative ttl (NoExpiration) disables expiry.
func NewWithUpdater[V ValueConstraint](updater Updater[V], ttl time.Duration, opts ...Option[V]) *Value[V] {
	if updater == nil {
		panic("updater must not be nil")
	}

	var zero V
	v := newValue(zero, updater, ttl, opts)
	v.lastUpdate = time.Time{}
	v.updated = true
	return v
}

// New creates a Value seeded with value, valid until ttl elapses.
// A negative ttl (NoExpiration) disables expiry.
func New[V ValueConstraint](value V, updater Updater[V], ttl time.Duration, opts ...Option[V]) *Value[V] {
	v := newValue(value, updater, ttl, opts)
	v.lastUpdate = v.options.now()
	v.updated = true
	return v
}

func newValue[V ValueConstraint](value V, updater Updater[V], ttl time.Duration, opts []Option[V]) *Value[V] {
	var o options[V]
	for _, opt := range opts {
		opt.apply(&o)
	}

	return &Value[V]{
		current: value,
		initial: o.clone(value),
		ttl:     ttl,
		hasTTL:  ttl >= 0,
		updater: updater,
		options: o,
	}
}

// GetOrRefresh returns the held value, invoking the updater first if it has expired.
func (v *Value[V]) GetOrRefresh() (V, error) {
	var zero V
	if v.disposed {
		return zero, ErrDisposed
	}
	if err := v.EnsureFresh(); err != nil {
		return zero, err
	}
	return v.current, nil
}

// Peek returns the held value without checking whether it has expired.
func (v *Value[V]) Peek() (V, error) {
	if v.disposed {
		var zero V
		return zero, ErrDisposed
	}
	return v.current, nil
}

// Set stores value, restarts the expiry clock and emits a change notification
// when notification is enabled.
func (v *Value[V]) Set(value V) error {
	if v.disposed {
		return ErrDisposed
	}

	v.current = value
	v.lastUpdate = v.options.now()
	v.updated = true
	if !v.options.silent {
		ev := ChangeEvent[V]{Name: ChangedAttributeName, Value: value}
		v.changeObservers.Each(func(f func(ChangeEvent[V])) {
			f(ev)
		})
	}
	return nil
}

// SetSilent stores value without touching the expiry clock and without notification.
func (v *Value[V]) SetSilent(value V) error {
	if v.disposed {
		return ErrDisposed
	}
	v.current = value
	return nil
}

// Reset restores the value given at construction.
// The expiry clock is started only if it was never started; a running clock is kept.
func (v *Value[V]) Reset() error {
	if v.disposed {
		return ErrDisposed
	}

	v.current = v.options.clone(v.initial)
	if !v.updated {
		v.lastUpdate = v.options.now()
		v.updated = true
	}
	return nil
}

// EnsureFresh invokes the updater if the held value has expired.
//
// A failing (or panicking) updater leaves the stale value and the expiry clock
// untouched, so the next read retries. The failure is returned as *UpdateError
// when no error handler or observer is registered. Otherwise it is delivered to
// the handler and then to every observer, and EnsureFresh returns nil.
func (v *Value[V]) EnsureFresh() error {
	if v.disposed {
		return ErrDisposed
	}
	if v.updater == nil || !v.expired() {
		return nil
	}

	value, err := panicutil.Call(v.updater.Update)
	if err != nil {
		updateErr := &UpdateError{Err: err}
		if v.options.errorHandler == nil && v.errorObservers.Len() == 0 {
			return updateErr
		}
		v.notifyUpdateError(updateErr)
		return nil
	}
	return v.Set(value)
}

func (v *Value[V]) notifyUpdateError(err error) {
	if v.options.errorHandler != nil {
		v.options.errorHandler(err)
	}
	v.errorObservers.Each(func(f func(error)) {
		f(err)
	})
}

// HasExpired reports whether the next read will invoke the updater.
// It is always false when either the timestamp or the time-to-live is absent.
func (v *Value[V]) HasExpired() (bool, error) {
	if v.disposed {
		return false, ErrDisposed
	}
	return v.expired(), nil
}

func (v *Value[V]) expired() bool {
	if !v.updated || !v.hasTTL {
		return false
	}
	return v.options.isExpired(v.options.now(), v.lastUpdate.Add(v.ttl))
}

// State returns the current state of the value. It never fails.
func (v *Value[V]) State() State {
	switch {
	case v.disposed:
		return StateDisposed
	case v.expired():
		return StateExpired
	default:
		return StateFresh
	}
}

// LastUpdate returns when the value was last set.
// The boolean is false if the value was never timestamped.
func (v *Value[V]) LastUpdate() (time.Time, bool, error) {
	if v.disposed {
		return time.Time{}, false, ErrDisposed
	}
	return v.lastUpdate, v.updated, nil
}

// TimeToLive returns the time-to-live.
// The boolean is false if expiry is disabled.
func (v *Value[V]) TimeToLive() (time.Duration, bool, error) {
	if v.disposed {
		return 0, false, ErrDisposed
	}
	if !v.hasTTL {
		return 0, false, nil
	}
	return v.ttl, true, nil
}

// SetNotifyOnChange enables or disables change notifications of Set.
func (v *Value[V]) SetNotifyOnChange(notify bool) error {
	if v.disposed {
		return ErrDisposed
	}
	v.options.silent = !notify
	return nil
}

// OnChange registers an observer of value changes and returns a function that unregisters it.
// Observers are called synchronously in registration order.
func (v *Value[V]) OnChange(f func(ChangeEvent[V])) (func(), error) {
	if v.disposed {
		return nil, ErrDisposed
	}
	return v.changeObservers.Add(f), nil
}

// SetErrorHandler replaces the error handler slot. A nil handler clears it.
// The handler is called before any observer registered with OnUpdateError.
func (v *Value[V]) SetErrorHandler(handler func(error)) error {
	if v.disposed {
		return ErrDisposed
	}
	v.options.errorHandler = handler
	return nil
}

// OnUpdateError registers an observer of update failures and returns a function that unregisters it.
// While at least one observer or an error handler is registered, update failures are not returned to readers.
func (v *Value[V]) OnUpdateError(f func(error)) (func(), error) {
	if v.disposed {
		return nil, ErrDisposed
	}
	return v.errorObservers.Add(f), nil
}

// Dispose releases the held value and makes the Value unusable.
// The held value is disposed through Disposer or io.Closer, exactly once.
// Later calls are no-ops and return nil.
func (v *Value[V]) Dispose() error {
	if v.disposed {
		return nil
	}
	v.disposed = true

	var err error
	if !isNil(v.current) {
		switch d := any(v.current).(type) {
		case Disposer:
			err = d.Dispose()
		case io.Closer:
			err = d.Close()
		}
	}

	var zero V
	v.current = zero
	v.initial = zero
	v.updater = nil
	v.options.errorHandler = nil
	v.changeObservers.Clear()
	v.errorObservers.Clear()
	return err
}

// IsDisposed reports whether Dispose has been called.
func (v *Value[V]) IsDisposed() bool {
	return v.disposed
}

// Equal reports whether other holds an equal value.
//
// other may be another *Value[V], whose held value is unwrapped, or a raw V.
// Held values are compared by the element type's equality without refreshing.
// When either held value is nil, only the same holder is equal.
//
// Equal cannot report ErrDisposed; a disposed Value is equal to nothing,
// not even itself.
func (v *Value[V]) Equal(other any) bool {
	if v.disposed {
		return false
	}

	switch o := other.(type) {
	case *Value[V]:
		if o == v {
			return true
		}
		if o == nil || o.disposed || isNil(v.current) || isNil(o.current) {
			return false
		}
		return equalValues(v.current, o.current)
	case V:
		if isNil(v.current) {
			return false
		}
		return equalValues(v.current, o)
	default:
		return false
	}
}

// Hash returns the hash of the held value. Values reported equal by Equal
// hash alike. The element's Hash method is used when present. An element with
// only an Equal method hashes by its type alone.
//
// Hash cannot report ErrDisposed; a disposed Value, like one holding nil,
// returns an identity hash of the holder.
func (v *Value[V]) Hash() int {
	if v.disposed || isNil(v.current) {
		return int(uintptr(unsafe.Pointer(v)))
	}
	switch h := any(v.current).(type) {
	case hasher:
		return h.Hash()
	case equaler[V]:
		return valuehash.TypeHash[V]()
	default:
		return valuehash.GetOrCreateValueHash[V]()(v.current)
	}
}

// String returns the string form of the held value, or "" when it is nil.
//
// String cannot report ErrDisposed; a disposed Value returns "".
func (v *Value[V]) String() string {
	if v.disposed || isNil(v.current) {
		return ""
	}
	return fmt.Sprint(v.current)
}

var _ fmt.Stringer = (*Value[struct{}])(nil)
