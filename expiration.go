package statefun

import "time"

// ExpirationMode selects how a ValueSpec's time-to-live timer resets.
type ExpirationMode int

const (
	// ExpirationNone means the cell never expires.
	ExpirationNone ExpirationMode = iota
	// ExpirationAfterWrite resets the timer on every write.
	ExpirationAfterWrite
	// ExpirationAfterInvoke resets the timer on every read or write.
	ExpirationAfterInvoke
)

// Expiration specifies the time-to-live policy for a persisted ValueSpec.
type Expiration struct {
	Mode ExpirationMode
	TTL  time.Duration
}

// NeverExpires returns an Expiration that keeps a cell forever.
func NeverExpires() Expiration {
	return Expiration{Mode: ExpirationNone}
}

// ExpireAfterWrite returns an Expiration whose timer resets on every write.
func ExpireAfterWrite(ttl time.Duration) Expiration {
	return Expiration{Mode: ExpirationAfterWrite, TTL: ttl}
}

// ExpireAfterInvoke returns an Expiration whose timer resets on every read
// or write.
func ExpireAfterInvoke(ttl time.Duration) Expiration {
	return Expiration{Mode: ExpirationAfterInvoke, TTL: ttl}
}

func (e Expiration) expireAfterMillis() int64 {
	return e.TTL.Milliseconds()
}

// wireMode maps ExpirationMode to the coordinator's own enum ordering
// (None=0, AfterInvoke=1, AfterWrite=2), which does not match this
// package's ordering — mapping by position instead of by explicit switch
// would silently swap AfterWrite and AfterInvoke on the wire.
func (m ExpirationMode) wireMode() int32 {
	switch m {
	case ExpirationAfterWrite:
		return 2
	case ExpirationAfterInvoke:
		return 1
	default:
		return 0
	}
}
