package expiration

import (
	"math/rand/v2"
	"time"
)

// ExpirationPolicy decides whether a value with the given deadline is stale.
type ExpirationPolicy interface {
	// IsExpired returns true if the value is expired.
	// The now parameter is the current time, and deadline is lastUpdate + timeToLive.
	IsExpired(now, deadline time.Time) bool
}

// GeneralExpirationPolicy expires a value once the current time is strictly after its deadline.
type GeneralExpirationPolicy struct{}

var _ ExpirationPolicy = GeneralExpirationPolicy{}

// IsExpired returns true if now > deadline.
// A value read exactly at its deadline is still fresh.
func (GeneralExpirationPolicy) IsExpired(now, deadline time.Time) bool {
	return now.After(deadline)
}

// NeverExpirationPolicy is a policy that never expires a value.
// It pins the value until it is replaced explicitly, whatever its time-to-live.
type NeverExpirationPolicy struct{}

var _ ExpirationPolicy = NeverExpirationPolicy{}

// IsExpired always returns false.
func (NeverExpirationPolicy) IsExpired(now, deadline time.Time) bool {
	return false
}

// EarlyExpirationPolicy may expire a value before its deadline.
// When several processes hold values with the same time-to-live, it spreads their
// refreshes over the Duration window preceding the deadline.
type EarlyExpirationPolicy struct {
	// Duration is how much earlier the value can expire.
	Duration time.Duration

	// Percentage is the chance (between 0 and 1) that a check applies the early window.
	// 0 never expires early, 1 always does.
	Percentage float64

	// Random is the random number generator to decide early expiration.
	// If nil, the default system random generator is used.
	Random *rand.Rand
}

var _ ExpirationPolicy = (*EarlyExpirationPolicy)(nil)

// IsExpired checks whether the value is expired.
// With probability (1-Percentage) it behaves like GeneralExpirationPolicy.
// With probability Percentage it checks (now + Duration) > deadline instead.
func (p *EarlyExpirationPolicy) IsExpired(now, deadline time.Time) bool {
	if p.randFloat64() >= p.Percentage {
		return now.After(deadline)
	}
	return now.Add(p.Duration).After(deadline)
}

func (p *EarlyExpirationPolicy) randFloat64() float64 {
	if p.Random == nil {
		return rand.Float64()
	}
	return p.Random.Float64()
}
