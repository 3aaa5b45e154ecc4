package submit

import "sync"

// inFlightGuard enforces mutual exclusion on the submission control:
// at most max submissions in flight, and the dashboard uses max=1.
// Safe for concurrent use.
type inFlightGuard struct {
	mu       sync.Mutex
	inFlight int
	max      int
}

func newInFlightGuard(max int) *inFlightGuard {
	return &inFlightGuard{max: max}
}

func (g *inFlightGuard) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight
}

// TryAcquire increments the in-flight counter if under the limit.
func (g *inFlightGuard) TryAcquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.max > 0 && g.inFlight >= g.max {
		return false
	}
	g.inFlight++
	return true
}

// Release decrements the in-flight counter, clamping at zero.
func (g *inFlightGuard) Release() {
	g.mu.Lock()
	if g.inFlight > 0 {
		g.inFlight--
	}
	g.mu.Unlock()
}
