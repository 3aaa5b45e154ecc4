package devserver

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/papertrade/tradedash/internal/domain"
)

// Book is the in-memory paper-trading ledger behind the dev server.
// It mirrors the production backend's cash-flow convention: a BUY
// subtracts quantity and notional from the running totals, a SELL adds
// them. Trades are reported newest-first, matching the backend's
// ordering.
type Book struct {
	mu        sync.RWMutex
	positions map[domain.Symbol]domain.Position
	trades    []domain.Trade

	now func() time.Time
}

// NewBook creates an empty ledger.
func NewBook() *Book {
	return &Book{
		positions: make(map[domain.Symbol]domain.Position),
		now:       time.Now,
	}
}

// Record applies one accepted trade to the ledger and returns it.
func (b *Book) Record(req domain.TradeRequest) domain.Trade {
	b.mu.Lock()
	defer b.mu.Unlock()

	trade := domain.Trade{
		TradeID:   uuid.NewString(),
		TradeTime: domain.Timestamp{Time: b.now()},
		Symbol:    req.Symbol,
		Side:      req.Side,
		Quantity:  req.Quantity,
		Price:     req.Price,
	}
	b.trades = append(b.trades, trade)

	position := b.positions[req.Symbol]
	position.Symbol = req.Symbol
	notional := req.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))
	if req.Side == domain.SideBuy {
		position.NetQuantity -= req.Quantity
		position.PnL = position.PnL.Sub(notional)
	} else {
		position.NetQuantity += req.Quantity
		position.PnL = position.PnL.Add(notional)
	}
	b.positions[req.Symbol] = position

	return trade
}

// Positions returns a copy of the positions map.
func (b *Book) Positions() map[domain.Symbol]domain.Position {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[domain.Symbol]domain.Position, len(b.positions))
	for symbol, position := range b.positions {
		out[symbol] = position
	}
	return out
}

// TradesToday returns today's trades, newest first.
func (b *Book) TradesToday() []domain.Trade {
	b.mu.RLock()
	defer b.mu.RUnlock()

	today := b.now()
	out := make([]domain.Trade, 0, len(b.trades))
	for i := len(b.trades) - 1; i >= 0; i-- {
		if sameDay(b.trades[i].TradeTime.Time, today) {
			out = append(out, b.trades[i])
		}
	}
	return out
}

// DailyAnalytics aggregates today's trades per symbol with the same
// signed quantities as the position ledger.
func (b *Book) DailyAnalytics() map[domain.Symbol]domain.DailyAnalytic {
	b.mu.RLock()
	defer b.mu.RUnlock()

	today := b.now()
	out := make(map[domain.Symbol]domain.DailyAnalytic)
	for _, trade := range b.trades {
		if !sameDay(trade.TradeTime.Time, today) {
			continue
		}
		row := out[trade.Symbol]
		row.Symbol = trade.Symbol
		notional := trade.Price.Mul(decimal.NewFromInt(int64(trade.Quantity)))
		if trade.Side == domain.SideBuy {
			row.TotalQuantity -= trade.Quantity
			row.TotalPnL = row.TotalPnL.Sub(notional)
		} else {
			row.TotalQuantity += trade.Quantity
			row.TotalPnL = row.TotalPnL.Add(notional)
		}
		out[trade.Symbol] = row
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
