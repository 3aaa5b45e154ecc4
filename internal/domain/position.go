package domain

import "github.com/shopspring/decimal"

// Position is the net open exposure for one symbol.
// Positive NetQuantity is long, negative is short. A symbol with no
// position simply has no entry in the positions map.
type Position struct {
	Symbol      Symbol          `json:"symbol"`
	NetQuantity int             `json:"netQuantity"`
	PnL         decimal.Decimal `json:"pnl"`
}

// IsFlat reports whether the position carries no net exposure.
func (p Position) IsFlat() bool {
	return p.NetQuantity == 0
}

// DailyAnalytic aggregates one symbol's activity for the trading day.
type DailyAnalytic struct {
	Symbol        Symbol          `json:"symbol"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalPnL      decimal.Decimal `json:"totalPnl"`
}
