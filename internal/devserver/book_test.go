package devserver

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/papertrade/tradedash/internal/domain"
)

func record(t *testing.T, b *Book, symbol domain.Symbol, side domain.Side, qty int, price string) domain.Trade {
	t.Helper()
	return b.Record(domain.TradeRequest{
		Symbol:   symbol,
		Side:     side,
		Quantity: qty,
		Price:    decimal.RequireFromString(price),
	})
}

func TestRecordCashFlowConvention(t *testing.T) {
	b := NewBook()
	record(t, b, domain.SymbolSBIN, domain.SideBuy, 10, "650.50")
	record(t, b, domain.SymbolSBIN, domain.SideSell, 4, "651.00")

	positions := b.Positions()
	p := positions[domain.SymbolSBIN]
	if p.NetQuantity != -6 {
		t.Fatalf("net quantity = %d, want -6", p.NetQuantity)
	}
	// -10*650.50 + 4*651.00 = -3901.00
	if !p.PnL.Equal(decimal.RequireFromString("-3901")) {
		t.Fatalf("pnl = %s, want -3901", p.PnL)
	}
}

func TestRecordAssignsIDAndTime(t *testing.T) {
	b := NewBook()
	fixed := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return fixed }

	trade := record(t, b, domain.SymbolNifty, domain.SideBuy, 1, "100")
	if trade.TradeID == "" {
		t.Fatal("empty trade id")
	}
	if !trade.TradeTime.Equal(fixed) {
		t.Fatalf("trade time = %s", trade.TradeTime)
	}
}

func TestTradesTodayNewestFirstAndSameDayOnly(t *testing.T) {
	b := NewBook()
	day := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return day.Add(-24 * time.Hour) }
	record(t, b, domain.SymbolSBIN, domain.SideBuy, 1, "100") // yesterday

	b.now = func() time.Time { return day }
	first := record(t, b, domain.SymbolSBIN, domain.SideBuy, 2, "100")
	b.now = func() time.Time { return day.Add(time.Hour) }
	second := record(t, b, domain.SymbolSBIN, domain.SideSell, 3, "100")

	trades := b.TradesToday()
	if len(trades) != 2 {
		t.Fatalf("len = %d, want 2", len(trades))
	}
	if trades[0].TradeID != second.TradeID || trades[1].TradeID != first.TradeID {
		t.Fatalf("not newest first: %v", trades)
	}
}

func TestDailyAnalyticsSignedSums(t *testing.T) {
	b := NewBook()
	record(t, b, domain.SymbolSBIN, domain.SideBuy, 10, "650.50")
	record(t, b, domain.SymbolSBIN, domain.SideSell, 4, "651.00")
	record(t, b, domain.SymbolNifty, domain.SideSell, 5, "200")

	analytics := b.DailyAnalytics()
	sbin := analytics[domain.SymbolSBIN]
	if sbin.TotalQuantity != -6 {
		t.Fatalf("SBIN total quantity = %d, want -6", sbin.TotalQuantity)
	}
	if !sbin.TotalPnL.Equal(decimal.RequireFromString("-3901")) {
		t.Fatalf("SBIN total pnl = %s, want -3901", sbin.TotalPnL)
	}
	nifty := analytics[domain.SymbolNifty]
	if nifty.TotalQuantity != 5 {
		t.Fatalf("NIFTY total quantity = %d, want 5", nifty.TotalQuantity)
	}
}
