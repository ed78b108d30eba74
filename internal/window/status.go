package window

import "time"

// DefaultStatusTTL is how long a status banner stays up.
const DefaultStatusTTL = 5 * time.Second

// Status is a one-line banner that expires after a TTL. It never removes
// itself; the owner polls Stale.
type Status struct {
	text    string
	created time.Time
	ttl     time.Duration
	clock   func() time.Time
}

// NewStatus creates a banner aged from now. A nil clock uses time.Now and a
// non-positive ttl uses DefaultStatusTTL.
func NewStatus(text string, ttl time.Duration, clock func() time.Time) *Status {
	if clock == nil {
		clock = time.Now
	}
	if ttl <= 0 {
		ttl = DefaultStatusTTL
	}
	return &Status{text: text, created: clock(), ttl: ttl, clock: clock}
}

// Set replaces the text and restarts the TTL.
func (s *Status) Set(text string) {
	s.text = text
	s.created = s.clock()
}

func (s *Status) Text() string { return s.text }

// Stale reports whether the banner has been up for at least its TTL.
func (s *Status) Stale() bool {
	return s.clock().Sub(s.created) >= s.ttl
}
