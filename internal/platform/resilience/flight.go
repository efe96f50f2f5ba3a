package resilience

import "sync"

// FlightGroup collapses concurrent calls that share a key into one
// upstream call. Followers block until the leader finishes and then
// share its result.
type FlightGroup struct {
	mu      sync.Mutex
	pending map[string]*flightResult
}

type flightResult struct {
	done  chan struct{}
	value any
	err   error
}

// Do runs fn once per key among concurrent callers. The shared
// boolean is true for callers that reused another call's result.
func (g *FlightGroup) Do(key string, fn func() (any, error)) (value any, err error, shared bool) {
	g.mu.Lock()
	if g.pending == nil {
		g.pending = make(map[string]*flightResult)
	}
	if r, ok := g.pending[key]; ok {
		g.mu.Unlock()
		<-r.done
		return r.value, r.err, true
	}
	r := &flightResult{done: make(chan struct{})}
	g.pending[key] = r
	g.mu.Unlock()

	r.value, r.err = fn()

	g.mu.Lock()
	delete(g.pending, key)
	g.mu.Unlock()
	close(r.done)

	return r.value, r.err, false
}
