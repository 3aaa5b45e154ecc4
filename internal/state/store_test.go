package state

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/papertrade/tradedash/internal/domain"
)

func TestStoreStartsEmpty(t *testing.T) {
	s := NewStore()

	positions, _ := s.Positions()
	if len(positions) != 0 {
		t.Fatalf("expected empty positions, got %v", positions)
	}
	trades, _ := s.Trades()
	if len(trades) != 0 {
		t.Fatalf("expected empty trades, got %v", trades)
	}
	analytics, _ := s.Analytics()
	if len(analytics) != 0 {
		t.Fatalf("expected empty analytics, got %v", analytics)
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	s := NewStore()

	s.SetPositions(map[domain.Symbol]domain.Position{
		domain.SymbolSBIN: {Symbol: domain.SymbolSBIN, NetQuantity: 10},
	})
	s.SetTrades([]domain.Trade{{TradeID: "t-1", Symbol: domain.SymbolSBIN}})

	// A later trades update must not touch positions.
	s.SetTrades([]domain.Trade{
		{TradeID: "t-1", Symbol: domain.SymbolSBIN},
		{TradeID: "t-2", Symbol: domain.SymbolNifty},
	})

	positions, _ := s.Positions()
	if positions[domain.SymbolSBIN].NetQuantity != 10 {
		t.Fatalf("positions slot changed by trades update: %v", positions)
	}
	trades, _ := s.Trades()
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}
}

func TestSetIsUnconditionalReplace(t *testing.T) {
	s := NewStore()

	first := map[domain.Symbol]domain.Position{
		domain.SymbolSBIN:  {Symbol: domain.SymbolSBIN, NetQuantity: 10},
		domain.SymbolNifty: {Symbol: domain.SymbolNifty, NetQuantity: -5},
	}
	second := map[domain.Symbol]domain.Position{
		domain.SymbolSBIN: {Symbol: domain.SymbolSBIN, NetQuantity: 20, PnL: decimal.RequireFromString("130.10")},
	}

	s.SetPositions(first)
	s.SetPositions(second)

	positions, _ := s.Positions()
	if len(positions) != 1 {
		t.Fatalf("expected full replacement, got %v", positions)
	}
	if positions[domain.SymbolSBIN].NetQuantity != 20 {
		t.Fatalf("expected second snapshot to win, got %v", positions)
	}
}

func TestVersionAdvancesPerSet(t *testing.T) {
	s := NewStore()

	_, v0 := s.Positions()
	s.SetPositions(map[domain.Symbol]domain.Position{})
	_, v1 := s.Positions()
	if v1 != v0+1 {
		t.Fatalf("expected version bump, got %d -> %d", v0, v1)
	}

	// Other slots' versions are untouched.
	_, tv := s.Trades()
	if tv != 0 {
		t.Fatalf("trades version moved without a write: %d", tv)
	}
}

func TestSnapshotVersionChangesOnAnyWrite(t *testing.T) {
	s := NewStore()
	before := s.Snapshot()

	s.SetAnalytics(map[domain.Symbol]domain.DailyAnalytic{
		domain.SymbolReliance: {Symbol: domain.SymbolReliance, TotalQuantity: 3},
	})

	after := s.Snapshot()
	if after.Version == before.Version {
		t.Fatalf("snapshot version did not change")
	}
	if len(after.Analytics) != 1 || len(after.Positions) != 0 {
		t.Fatalf("unexpected snapshot: %+v", after)
	}
}
