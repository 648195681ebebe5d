// Package syncvalue provides a goroutine-safe wrapper of expiringvalue.Value.
//
// Every operation holds a mutex for its whole duration, so a refresh triggered
// by an expired value runs at most once no matter how many goroutines read
// concurrently: the first reader invokes the updater and the others observe
// the fresh value once they acquire the lock. Context-aware operations give up
// waiting for the lock when their context is done. The updater itself is not
// interrupted.
//
// Observers registered on the wrapped value run while the lock is held and
// must not call back into the same syncvalue.Value.
package syncvalue
