// Package expiration provides policies that decide when a held value has gone stale.
//
// A Value computes the deadline of its current value as lastUpdate + timeToLive
// and asks its ExpirationPolicy whether that deadline has passed. The default
// GeneralExpirationPolicy treats a value as expired strictly after the deadline.
package expiration
