package resilience

import (
	"errors"
	"sync"
	"time"
)

// ErrBreakerOpen is returned while the breaker refuses calls.
var ErrBreakerOpen = errors.New("upstream breaker open")

// BreakerSettings tunes the upstream-store breaker. Zero values fall
// back to defaults sized for the Supabase REST surface.
type BreakerSettings struct {
	Enabled    bool
	TripAfter  int           // consecutive failures before calls are refused
	Cooldown   time.Duration // refusal window before probing resumes
	ProbeQuota int           // probes allowed through while recovering
}

func (s BreakerSettings) withDefaults() BreakerSettings {
	if s.TripAfter < 1 {
		s.TripAfter = 5
	}
	if s.Cooldown <= 0 {
		s.Cooldown = 15 * time.Second
	}
	if s.ProbeQuota < 1 {
		s.ProbeQuota = 2
	}
	return s
}

// Breaker stops calls to a failing upstream until a cooldown passes,
// then lets a bounded number of probe calls through. The path fully
// reopens once every probe succeeds; a failed probe restarts the
// cooldown.
type Breaker struct {
	settings BreakerSettings
	clock    func() time.Time

	mu        sync.Mutex
	failures  int
	trippedAt time.Time // zero while the path is healthy
	probing   bool
	probes    int
	probeWins int
}

func NewBreaker(settings BreakerSettings) *Breaker {
	return &Breaker{
		settings: settings.withDefaults(),
		clock:    time.Now,
	}
}

// Allow reports whether a call may proceed right now.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.trippedAt.IsZero() && !b.probing {
		return nil
	}

	if !b.probing {
		if b.clock().Sub(b.trippedAt) < b.settings.Cooldown {
			return ErrBreakerOpen
		}
		b.probing = true
		b.probes = 0
		b.probeWins = 0
	}

	if b.probes >= b.settings.ProbeQuota {
		return ErrBreakerOpen
	}
	b.probes++

	return nil
}

// Report feeds a call outcome back into the breaker.
func (b *Breaker) Report(ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ok {
		b.reportSuccess()
	} else {
		b.reportFailure()
	}
}

func (b *Breaker) reportSuccess() {
	if b.probing {
		if b.probes > 0 {
			b.probes--
		}
		b.probeWins++
		if b.probeWins >= b.settings.ProbeQuota && b.probes == 0 {
			b.reset()
		}
		return
	}
	b.failures = 0
}

func (b *Breaker) reportFailure() {
	if b.probing {
		b.trip()
		return
	}
	if b.trippedAt.IsZero() {
		b.failures++
		if b.failures >= b.settings.TripAfter {
			b.trip()
		}
		return
	}
	// A failure reported while refusing calls extends the cooldown.
	b.trippedAt = b.clock()
}

func (b *Breaker) trip() {
	b.trippedAt = b.clock()
	b.probing = false
	b.probes = 0
	b.probeWins = 0
}

func (b *Breaker) reset() {
	b.trippedAt = time.Time{}
	b.failures = 0
	b.probing = false
	b.probes = 0
	b.probeWins = 0
}
