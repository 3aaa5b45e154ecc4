package sigchan

// Chan is a non-blocking signal channel: it notifies that an event
// happened without carrying data. Emit never blocks; coalescing
// multiple emits into one pending signal is intended.
type Chan struct {
	c chan struct{}
}

// New creates a signal channel with the given buffer size.
func New(bufferSize int) *Chan {
	return &Chan{
		c: make(chan struct{}, bufferSize),
	}
}

// Emit sends a signal. If the buffer is full the signal is dropped,
// which is fine: one pending signal already guarantees a wakeup.
func (c *Chan) Emit() {
	select {
	case c.c <- struct{}{}:
	default:
	}
}

// C exposes the underlying channel for select loops.
func (c *Chan) C() <-chan struct{} {
	return c.c
}
