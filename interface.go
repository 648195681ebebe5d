package expiringvalue

import "time"

// ValueConstraint is an interface for value constraints.
type ValueConstraint interface {
	any
}

// NoExpiration disables expiry when passed as a time-to-live.
const NoExpiration time.Duration = -1

// Updater produces a fresh value when the held one has expired.
type Updater[V ValueConstraint] interface {
	// Update returns the new value.
	// A non-nil error leaves the stale value in place.
	Update() (V, error)
}

// UpdaterFunc is a function type that implements the Updater interface.
type UpdaterFunc[V ValueConstraint] func() (V, error)

// Update calls the function.
func (f UpdaterFunc[V]) Update() (V, error) {
	return f()
}

// Disposer is implemented by held values that own a resource.
// Value.Dispose forwards to it exactly once.
// Values implementing io.Closer are closed instead.
type Disposer interface {
	Dispose() error
}

// ChangeEvent describes a value change notification.
type ChangeEvent[V ValueConstraint] struct {
	// Name is the name of the changed attribute. It is always "Value".
	Name string

	// Value is the newly assigned value.
	Value V
}

// State is the refresh state of a Value.
type State int

const (
	// StateFresh means the held value is within its time-to-live.
	StateFresh State = iota
	// StateExpired means the next read invokes the updater.
	StateExpired
	// StateDisposed is terminal.
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "Fresh"
	case StateExpired:
		return "Expired"
	case StateDisposed:
		return "Disposed"
	default:
		return "Unknown"
	}
}
