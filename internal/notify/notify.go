package notify

import (
	"sync"
	"time"
)

// Kind classifies a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is a single transient user-facing message.
type Notification struct {
	Text string
	Kind Kind
}

// Notifier shows one auto-expiring notification at a time. Show replaces
// the visible notification and restarts the expiry timer; Clear is
// idempotent. Driven by submission outcomes, read by the render layer.
type Notifier struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *Notification
	timer   *time.Timer
	seq     uint64
}

// NewNotifier creates a notifier whose messages expire after ttl.
func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return &Notifier{ttl: ttl}
}

// Show displays a notification, replacing any visible one and
// restarting the auto-clear timer.
func (n *Notifier) Show(text string, kind Kind) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	n.current = &Notification{Text: text, Kind: kind}
	n.seq++
	seq := n.seq
	n.timer = time.AfterFunc(n.ttl, func() {
		n.expire(seq)
	})
}

// expire clears the notification only if no newer Show superseded the
// timer that fired.
func (n *Notifier) expire(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.seq != seq {
		return
	}
	n.current = nil
	n.timer = nil
}

// Clear removes the visible notification, if any.
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.current = nil
	n.seq++
}

// Current returns the visible notification, or ok=false when none.
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}

// TTL returns the configured auto-clear duration.
func (n *Notifier) TTL() time.Duration {
	return n.ttl
}
