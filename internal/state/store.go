package state

import (
	"sync"

	"github.com/papertrade/tradedash/internal/domain"
)

// slot holds the last completed fetch result for one view. Set is an
// unconditional replace (last write wins across overlapping fetches);
// the version counter lets readers detect changes cheaply.
type slot[T any] struct {
	mu      sync.RWMutex
	value   T
	version uint64
}

func (s *slot[T]) set(value T) {
	s.mu.Lock()
	s.value = value
	s.version++
	s.mu.Unlock()
}

func (s *slot[T]) read() (T, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.version
}

// Store is the single read model for rendering: the latest successfully
// fetched snapshot of positions, today's trades and daily analytics.
// The three slots are fully independent; a fetch failure on one view never
// touches the others. Each slot is either its initial empty state or the
// complete result of one successful fetch, never a partial merge.
type Store struct {
	positions slot[map[domain.Symbol]domain.Position]
	trades    slot[[]domain.Trade]
	analytics slot[map[domain.Symbol]domain.DailyAnalytic]
}

// NewStore returns a store with all three views in their empty state.
func NewStore() *Store {
	s := &Store{}
	s.positions.value = map[domain.Symbol]domain.Position{}
	s.trades.value = []domain.Trade{}
	s.analytics.value = map[domain.Symbol]domain.DailyAnalytic{}
	return s
}

// SetPositions replaces the positions view with one fetch's result.
func (s *Store) SetPositions(positions map[domain.Symbol]domain.Position) {
	s.positions.set(positions)
}

// SetTrades replaces the trades-today view with one fetch's result.
func (s *Store) SetTrades(trades []domain.Trade) {
	s.trades.set(trades)
}

// SetAnalytics replaces the daily-analytics view with one fetch's result.
func (s *Store) SetAnalytics(analytics map[domain.Symbol]domain.DailyAnalytic) {
	s.analytics.set(analytics)
}

// Positions returns the positions view and its version.
func (s *Store) Positions() (map[domain.Symbol]domain.Position, uint64) {
	return s.positions.read()
}

// Trades returns the trades-today view and its version.
func (s *Store) Trades() ([]domain.Trade, uint64) {
	return s.trades.read()
}

// Analytics returns the daily-analytics view and its version.
func (s *Store) Analytics() (map[domain.Symbol]domain.DailyAnalytic, uint64) {
	return s.analytics.read()
}

// Snapshot is one consistent read of all three views, used by the
// render layer.
type Snapshot struct {
	Positions map[domain.Symbol]domain.Position
	Trades    []domain.Trade
	Analytics map[domain.Symbol]domain.DailyAnalytic

	// Version changes whenever any view changes.
	Version uint64
}

// Snapshot reads all three views. Each view is internally consistent
// (one fetch's complete result); staleness across views is the accepted
// polling tradeoff.
func (s *Store) Snapshot() Snapshot {
	positions, pv := s.positions.read()
	trades, tv := s.trades.read()
	analytics, av := s.analytics.read()
	return Snapshot{
		Positions: positions,
		Trades:    trades,
		Analytics: analytics,
		Version:   pv + tv + av,
	}
}
