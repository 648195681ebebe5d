package observer

// List is an ordered list of subscribers.
// It is not safe for concurrent use.
type List[F any] struct {
	nextID  uint64
	entries []entry[F]
}

type entry[F any] struct {
	id uint64
	fn F
}

// Add appends fn and returns a function that removes it.
// Calling the returned function more than once is a no-op.
func (l *List[F]) Add(fn F) (remove func()) {
	id := l.nextID
	l.nextID++
	l.entries = append(l.entries, entry[F]{id: id, fn: fn})
	return func() {
		l.remove(id)
	}
}

func (l *List[F]) remove(id uint64) {
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return
		}
	}
}

// Len returns the number of subscribers.
func (l *List[F]) Len() int {
	return len(l.entries)
}

// Each calls f for every subscriber in registration order.
// Subscribers added or removed during the iteration take effect on the next call.
func (l *List[F]) Each(f func(F)) {
	entries := l.entries
	for _, e := range entries {
		f(e.fn)
	}
}

// Clear removes every subscriber.
func (l *List[F]) Clear() {
	l.entries = nil
}
