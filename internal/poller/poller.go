package poller

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/papertrade/tradedash/internal/domain"
	"github.com/papertrade/tradedash/internal/state"
	"github.com/papertrade/tradedash/pkg/sigchan"
)

var log = logrus.WithField("module", "poller")

// Fetcher is the read side of the gateway client.
type Fetcher interface {
	GetPositions(ctx context.Context) (map[domain.Symbol]domain.Position, error)
	GetTradesToday(ctx context.Context) ([]domain.Trade, error)
	GetDailyAnalytics(ctx context.Context) (map[domain.Symbol]domain.DailyAnalytic, error)
}

// Scheduler drives the periodic refresh of all three views. Its
// lifecycle is tied to the dashboard: Start on mount, Stop on unmount.
// One refresh cycle fires the three fetches concurrently; each fetch
// updates only its own store slot and failures are absorbed locally,
// so a dead backend just freezes the views at their last-good state
// until polling recovers.
type Scheduler struct {
	fetcher  Fetcher
	store    *state.Store
	interval time.Duration
	kick     *sigchan.Chan

	stopCh   chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	running bool

	// cycleWG tracks in-flight fetches so tests can wait for a cycle
	// to settle. Stop does not wait: a dangling fetch is allowed to
	// resolve into the store after unmount.
	cycleWG sync.WaitGroup
}

// NewScheduler creates a scheduler polling at the given interval.
func NewScheduler(fetcher Fetcher, store *state.Store, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Scheduler{
		fetcher:  fetcher,
		store:    store,
		interval: interval,
		kick:     sigchan.New(1),
		stopCh:   make(chan struct{}),
	}
}

// Start enters the active state: one immediate refresh cycle, then one
// cycle per interval until Stop or context cancellation. Calling Start
// twice is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	go s.loop(ctx)
}

// Stop leaves the active state. Idempotent; the timer is cancelled
// exactly once and no further refresh cycle starts afterward.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

// Kick requests one out-of-band refresh cycle, coalescing with any
// already-pending request. Used after a submission settles.
func (s *Scheduler) Kick() {
	s.kick.Emit()
}

func (s *Scheduler) loop(ctx context.Context) {
	log.WithField("interval", s.interval).Info("polling started")

	s.refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("polling stopped: context cancelled")
			return
		case <-s.stopCh:
			log.Info("polling stopped")
			return
		case <-ticker.C:
			s.refresh(ctx)
		case <-s.kick.C():
			s.refresh(ctx)
		}
	}
}

// refresh fires one concurrent batch of the three read fetches and
// returns without waiting for them.
func (s *Scheduler) refresh(ctx context.Context) {
	s.cycleWG.Add(3)

	go func() {
		defer s.cycleWG.Done()
		positions, err := s.fetcher.GetPositions(ctx)
		if err != nil {
			log.WithError(err).Warn("positions fetch failed, keeping last snapshot")
			return
		}
		s.store.SetPositions(positions)
	}()

	go func() {
		defer s.cycleWG.Done()
		trades, err := s.fetcher.GetTradesToday(ctx)
		if err != nil {
			log.WithError(err).Warn("trades fetch failed, keeping last snapshot")
			return
		}
		s.store.SetTrades(trades)
	}()

	go func() {
		defer s.cycleWG.Done()
		analytics, err := s.fetcher.GetDailyAnalytics(ctx)
		if err != nil {
			log.WithError(err).Warn("analytics fetch failed, keeping last snapshot")
			return
		}
		s.store.SetAnalytics(analytics)
	}()
}

// WaitIdle blocks until every fetch launched so far has completed.
// Test helper; production code never waits on a cycle.
func (s *Scheduler) WaitIdle() {
	s.cycleWG.Wait()
}
